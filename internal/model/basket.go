package model

// Basket is an ordered group of keywords assigned to the same category.
// Index is zero-based and reflects the order in which category names were
// first produced while scanning keywords, not the declaration order of
// categories in the rule set.
type Basket struct {
	Name     string
	Keywords []string
	Index    int
}

// Count returns the number of keywords in the basket.
func (b Basket) Count() int {
	return len(b.Keywords)
}

// Baskets is an ordered basket collection produced by one classification run.
type Baskets []Basket

// Summary holds aggregate counts for a basket collection.
type Summary struct {
	TotalKeywords int
	Assigned      int
	Uncategorized int
	BasketCount   int
}

// Summary computes aggregate counts over the collection.
func (bs Baskets) Summary() Summary {
	var s Summary
	s.BasketCount = len(bs)
	for _, b := range bs {
		s.TotalKeywords += len(b.Keywords)
		if b.Name == Uncategorized {
			s.Uncategorized += len(b.Keywords)
		} else {
			s.Assigned += len(b.Keywords)
		}
	}
	return s
}

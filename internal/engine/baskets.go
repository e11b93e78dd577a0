package engine

import (
	"context"

	"github.com/kwbasket/kwbasket/internal/model"
	"github.com/kwbasket/kwbasket/internal/pattern"
)

// Builder groups classified keywords into an ordered basket collection.
type Builder struct {
	classifier *Classifier

	// OnProgress, when set, is called after each keyword is classified.
	OnProgress func(done, total int)
}

// NewBuilder creates a basket builder for the given rule set.
func NewBuilder(rules *pattern.RuleSet) *Builder {
	return &Builder{classifier: NewClassifier(rules)}
}

// Build classifies every keyword in input order and groups the results
// into baskets. A basket is created, with the next sequential index, the
// first time its category name is produced by the classifier; categories
// that match no keyword get no basket. Within a basket, keyword order is
// the subsequence of input order, duplicates included.
func (b *Builder) Build(ctx context.Context, keywords []string) (model.Baskets, error) {
	baskets := model.Baskets{}
	byName := make(map[string]int)

	for i, kw := range keywords {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		name := b.classifier.Classify(kw)
		idx, ok := byName[name]
		if !ok {
			idx = len(baskets)
			byName[name] = idx
			baskets = append(baskets, model.Basket{Index: idx, Name: name})
		}
		baskets[idx].Keywords = append(baskets[idx].Keywords, kw)

		if b.OnProgress != nil {
			b.OnProgress(i+1, len(keywords))
		}
	}

	return baskets, nil
}

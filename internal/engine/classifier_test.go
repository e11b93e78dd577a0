package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kwbasket/kwbasket/internal/model"
	"github.com/kwbasket/kwbasket/internal/pattern"
)

func newClassifier(t *testing.T, defs []model.CategoryDefinition) *Classifier {
	t.Helper()
	rs, _ := pattern.NewRuleSet(defs)
	return NewClassifier(rs)
}

func TestClassifyFirstMatchWins(t *testing.T) {
	c := newClassifier(t, []model.CategoryDefinition{
		{Name: "A", Patterns: []string{"cat"}},
		{Name: "B", Patterns: []string{"cat|dog"}},
	})

	// Both categories match; the one declared first wins.
	assert.Equal(t, "A", c.Classify("cat food"))
	assert.Equal(t, "B", c.Classify("dog food"))
}

func TestClassifyUncategorizedFallback(t *testing.T) {
	c := newClassifier(t, []model.CategoryDefinition{
		{Name: "Men Clothing", Patterns: []string{"lederhosen.*men|mens"}},
		{Name: "Accessories", Patterns: []string{"belt"}},
	})

	tests := []struct {
		keyword string
		want    string
	}{
		// Unanchored search: ".*men" matches inside "women".
		{"german lederhosen women", "Men Clothing"},
		{"men's shirt", model.Uncategorized},
		{"leather belt", "Accessories"},
		{"mens lederhosen", "Men Clothing"},
	}

	for _, tt := range tests {
		t.Run(tt.keyword, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.keyword))
		})
	}
}

func TestClassifyNegativeLookahead(t *testing.T) {
	c := newClassifier(t, []model.CategoryDefinition{
		{Name: "Shirts", Patterns: []string{`shirt(?!.*dress)`}},
	})

	assert.Equal(t, "Shirts", c.Classify("t-shirt"))
	assert.Equal(t, model.Uncategorized, c.Classify("shirt dress"))
}

func TestClassifyInvalidPatternCategory(t *testing.T) {
	rs, diags := pattern.NewRuleSet([]model.CategoryDefinition{
		{Name: "X", Patterns: []string{"("}},
	})
	require.Len(t, diags, 1)

	c := NewClassifier(rs)
	assert.Equal(t, model.Uncategorized, c.Classify("anything"))
	assert.Equal(t, model.Uncategorized, c.Classify("("))
}

func TestClassifyEmptyRuleSet(t *testing.T) {
	c := newClassifier(t, nil)

	assert.Equal(t, model.Uncategorized, c.Classify("shirt"))
	assert.Equal(t, model.Uncategorized, c.Classify(""))
}

func TestClassifyCaseInsensitive(t *testing.T) {
	c := newClassifier(t, []model.CategoryDefinition{
		{Name: "Shirts", Patterns: []string{"shirt"}},
	})

	assert.Equal(t, "Shirts", c.Classify("SHIRT"))
	assert.Equal(t, "Shirts", c.Classify("Blue Shirt"))
}

func TestClassifyUserDefinedUncategorizedCategory(t *testing.T) {
	// A literal "Uncategorized" category participates in ordered matching
	// like any other; the sentinel only applies after all categories miss.
	c := newClassifier(t, []model.CategoryDefinition{
		{Name: "Uncategorized", Patterns: []string{"misc"}},
		{Name: "Shirts", Patterns: []string{"shirt"}},
	})

	assert.Equal(t, "Uncategorized", c.Classify("misc items"))
	assert.Equal(t, "Shirts", c.Classify("blue shirt"))
	assert.Equal(t, model.Uncategorized, c.Classify("red dress"))
}

func TestClassifyDeterministic(t *testing.T) {
	c := newClassifier(t, []model.CategoryDefinition{
		{Name: "Shirts", Patterns: []string{"shirt"}},
		{Name: "Shoes", Patterns: []string{"shoe"}},
	})

	first := c.Classify("running shoe")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, c.Classify("running shoe"))
	}
}

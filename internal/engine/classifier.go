// Package engine implements keyword classification and basket building on
// top of a compiled rule set.
package engine

import (
	"github.com/kwbasket/kwbasket/internal/model"
	"github.com/kwbasket/kwbasket/internal/pattern"
)

// Classifier assigns a keyword to the first category whose patterns match.
type Classifier struct {
	rules *pattern.RuleSet
	memo  map[string]string
}

// NewClassifier creates a classifier for the given rule set.
func NewClassifier(rules *pattern.RuleSet) *Classifier {
	return &Classifier{
		rules: rules,
		memo:  make(map[string]string),
	}
}

// Classify returns the name of the first category, in declaration order,
// with at least one pattern matching the keyword. The Uncategorized
// sentinel is returned only after every declared category has been tried,
// so a user-defined category literally named "Uncategorized" still wins.
// Results for identical keywords are memoized; classification is
// deterministic, so the cache cannot change an outcome.
func (c *Classifier) Classify(keyword string) string {
	if name, ok := c.memo[keyword]; ok {
		return name
	}

	name := model.Uncategorized
	for _, cat := range c.rules.Categories {
		if cat.Matches(keyword) {
			name = cat.Name
			break
		}
	}

	c.memo[keyword] = name
	return name
}

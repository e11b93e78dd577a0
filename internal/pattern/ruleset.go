package pattern

import (
	"time"

	"github.com/kwbasket/kwbasket/internal/model"
)

// Category holds the compiled patterns of one category, in rule order.
type Category struct {
	Name     string
	Patterns []CompiledPattern
}

// Matches reports whether the keyword matches any valid pattern in the
// category. Evaluation short-circuits on the first matching pattern.
func (c Category) Matches(keyword string) bool {
	for _, p := range c.Patterns {
		if p.Matches(keyword) {
			return true
		}
	}
	return false
}

// RuleSet is an ordered collection of categories. Category order and
// pattern order within a category are preserved exactly as supplied;
// classification correctness depends on both.
type RuleSet struct {
	Categories []Category
}

// Option configures rule set construction.
type Option func(*settings)

type settings struct {
	matchTimeout time.Duration
}

// WithMatchTimeout bounds the evaluation time of a single pattern match.
// Patterns with catastrophic backtracking are not detected up front; a
// timed-out match is treated as a non-match.
func WithMatchTimeout(d time.Duration) Option {
	return func(s *settings) {
		s.matchTimeout = d
	}
}

// NewRuleSet compiles the category definitions into a rule set.
// Patterns that fail to compile are reported once in the returned
// diagnostics and skipped for matching; the rest of the category stays
// active, so a usable rule set is produced from the valid subset.
func NewRuleSet(defs []model.CategoryDefinition, opts ...Option) (*RuleSet, []model.InvalidPattern) {
	var s settings
	for _, opt := range opts {
		opt(&s)
	}

	rs := &RuleSet{Categories: make([]Category, 0, len(defs))}
	var diags []model.InvalidPattern

	for _, def := range defs {
		cat := Category{
			Name:     def.Name,
			Patterns: make([]CompiledPattern, 0, len(def.Patterns)),
		}
		for _, raw := range def.Patterns {
			cp, err := compile(raw, s.matchTimeout)
			if err != nil {
				diags = append(diags, model.InvalidPattern{
					Category: def.Name,
					Pattern:  raw,
					Reason:   err.Error(),
				})
			}
			cat.Patterns = append(cat.Patterns, cp)
		}
		rs.Categories = append(rs.Categories, cat)
	}

	return rs, diags
}

// Empty reports whether the rule set contains no valid patterns at all.
// Classifying against an empty rule set is not an error; every keyword
// falls to the Uncategorized basket.
func (rs *RuleSet) Empty() bool {
	for _, cat := range rs.Categories {
		for _, p := range cat.Patterns {
			if p.Valid {
				return false
			}
		}
	}
	return true
}

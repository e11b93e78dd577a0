// Package model defines the core domain models used throughout the application.
package model

// Uncategorized is the sentinel basket name for keywords that match no
// defined category. It is applied only after every declared category has
// been tried, so a user-defined category with the same name still wins.
const Uncategorized = "Uncategorized"

// CategoryDefinition is a named, ordered list of raw pattern strings.
// The order of definitions in a slice and the order of patterns within a
// definition are both significant: classification is first-match-wins.
type CategoryDefinition struct {
	Name     string   `yaml:"name" json:"name"`
	Patterns []string `yaml:"patterns" json:"patterns"`
}

package model

import "fmt"

// InvalidPattern reports a pattern string that failed to compile.
// It is collected once per bad pattern at rule set construction time;
// classification proceeds on the remaining valid patterns.
type InvalidPattern struct {
	Category string
	Pattern  string
	Reason   string
}

func (p InvalidPattern) String() string {
	return fmt.Sprintf("category %q: pattern %q: %s", p.Category, p.Pattern, p.Reason)
}

// Package pattern compiles category pattern rules and holds them in an
// ordered rule set for first-match-wins classification.
package pattern

import (
	"log/slog"
	"time"

	"github.com/dlclark/regexp2"
)

// CompiledPattern pairs a raw pattern string with its compiled matcher.
// An invalid pattern never matches and never panics during classification.
type CompiledPattern struct {
	re    *regexp2.Regexp
	Raw   string
	Valid bool
}

// compile builds a case-insensitive matcher from a raw pattern string.
// The regexp2 engine is used instead of the standard library because
// category rules rely on negative lookahead (e.g. "shirt(?!.*dress)"),
// which RE2 cannot express.
func compile(raw string, timeout time.Duration) (CompiledPattern, error) {
	re, err := regexp2.Compile(raw, regexp2.IgnoreCase)
	if err != nil {
		return CompiledPattern{Raw: raw}, err
	}
	if timeout > 0 {
		re.MatchTimeout = timeout
	}
	return CompiledPattern{re: re, Raw: raw, Valid: true}, nil
}

// Matches reports whether the pattern finds a match anywhere in text.
// Matching is unanchored unless the pattern itself uses ^ or $.
func (p CompiledPattern) Matches(text string) bool {
	if !p.Valid {
		return false
	}
	ok, err := p.re.MatchString(text)
	if err != nil {
		// Only a match timeout reaches here. Treat the pattern as
		// non-matching rather than aborting the run.
		slog.Warn("pattern match timed out", "pattern", p.Raw, "text_length", len(text))
		return false
	}
	return ok
}

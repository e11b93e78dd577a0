package model

import "time"

// Run records one classification run for the history stored in SQLite.
type Run struct {
	CreatedAt     time.Time
	ID            string
	Source        string
	RuleSetName   string
	KeywordCount  int
	BasketCount   int
	Uncategorized int
}

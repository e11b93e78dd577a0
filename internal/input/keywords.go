// Package input parses the keyword and category files consumed by the
// classification engine. Structural problems are surfaced here, before
// classification runs.
package input

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/kwbasket/kwbasket/internal/common"
)

// DefaultKeywordColumn is the expected header of the keyword column.
const DefaultKeywordColumn = "Keyword"

// ReadKeywords reads the named column from a CSV file with a header row.
// Blank cells are dropped; order and duplicates are preserved.
func ReadKeywords(r io.Reader, column string) ([]string, error) {
	if column == "" {
		column = DefaultKeywordColumn
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: keyword file is empty", common.ErrMalformedInput)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrMalformedInput, err)
	}

	col := -1
	for i, name := range header {
		if strings.EqualFold(strings.TrimSpace(stripBOM(name)), column) {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, fmt.Errorf("%w: keyword file has no %q column", common.ErrMalformedInput, column)
	}

	var keywords []string
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrMalformedInput, err)
		}
		if col >= len(record) {
			continue
		}
		kw := strings.TrimSpace(record[col])
		if kw == "" {
			continue
		}
		keywords = append(keywords, kw)
	}

	return keywords, nil
}

// stripBOM removes a UTF-8 byte order mark, common in spreadsheet exports.
func stripBOM(s string) string {
	return strings.TrimPrefix(s, "\uFEFF")
}

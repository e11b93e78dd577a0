package input

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kwbasket/kwbasket/internal/common"
	"github.com/kwbasket/kwbasket/internal/model"
)

// ReadCategoryRules parses the YAML rules file: an ordered sequence of
// {name, patterns} entries. A sequence is used rather than a mapping so
// category order survives parsing.
func ReadCategoryRules(r io.Reader) ([]model.CategoryDefinition, error) {
	var defs []model.CategoryDefinition
	if err := yaml.NewDecoder(r).Decode(&defs); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrMalformedInput, err)
	}

	if len(defs) == 0 {
		return nil, fmt.Errorf("%w: rules file defines no categories", common.ErrMalformedInput)
	}
	for i, def := range defs {
		if strings.TrimSpace(def.Name) == "" {
			return nil, fmt.Errorf("%w: category %d has no name", common.ErrMalformedInput, i)
		}
	}

	return defs, nil
}

// ReadCategoryNames parses the names-only CSV format (a single Category
// column) and derives one pattern per word of each category name, so a
// keyword containing any word of the name is assigned to it.
func ReadCategoryNames(r io.Reader) ([]model.CategoryDefinition, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: category file is empty", common.ErrMalformedInput)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrMalformedInput, err)
	}

	col := -1
	for i, name := range header {
		if strings.EqualFold(strings.TrimSpace(stripBOM(name)), "Category") {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, fmt.Errorf("%w: category file has no %q column", common.ErrMalformedInput, "Category")
	}

	var defs []model.CategoryDefinition
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
		name := strings.TrimSpace(record[col])
		if name == "" {
			continue
		}
		defs = append(defs, model.CategoryDefinition{
			Name:     name,
			Patterns: wordPatterns(name),
		})
	}

	if len(defs) == 0 {
		return nil, fmt.Errorf("%w: category file defines no categories", common.ErrMalformedInput)
	}

	return defs, nil
}

// wordPatterns turns each word of a category name into a literal pattern.
func wordPatterns(name string) []string {
	words := strings.Fields(name)
	patterns := make([]string, 0, len(words))
	for _, w := range words {
		patterns = append(patterns, regexp.QuoteMeta(w))
	}
	return patterns
}

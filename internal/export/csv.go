// Package export serializes a basket collection into its supported output
// shapes: tabular CSV rows, indented human-readable text, and a nested
// JSON structure. Formatters never mutate the collection.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/kwbasket/kwbasket/internal/model"
)

// WriteCSV writes one row per (basket index, basket name, keyword) triple,
// in basket-then-keyword order, preceded by a header row.
func WriteCSV(w io.Writer, baskets model.Baskets) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"Basket", "Basket Name", "Keyword"}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, b := range baskets {
		for _, kw := range b.Keywords {
			if err := cw.Write([]string{strconv.Itoa(b.Index), b.Name, kw}); err != nil {
				return fmt.Errorf("failed to write row: %w", err)
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

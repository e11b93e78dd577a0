package export

import (
	"bufio"
	"fmt"
	"io"

	"github.com/kwbasket/kwbasket/internal/model"
)

// WriteText writes one block per basket: a header line with index and
// name, one indented line per keyword, and a blank line after the block.
func WriteText(w io.Writer, baskets model.Baskets) error {
	bw := bufio.NewWriter(w)

	for _, b := range baskets {
		fmt.Fprintf(bw, "Basket %d: %s\n", b.Index, b.Name)
		for _, kw := range b.Keywords {
			fmt.Fprintf(bw, "  - %s\n", kw)
		}
		fmt.Fprintln(bw)
	}

	return bw.Flush()
}

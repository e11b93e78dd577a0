package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/kwbasket/kwbasket/internal/model"
)

// RenderSummary writes the per-basket count table and aggregate totals.
func RenderSummary(w io.Writer, baskets model.Baskets) error {
	summary := baskets.Summary()

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "%s\t%s\t%s\n",
		BoldStyle.Render("Basket"),
		BoldStyle.Render("Name"),
		BoldStyle.Render("Keywords"))
	fmt.Fprintf(tw, "%s\t%s\t%s\n",
		strings.Repeat("-", 6),
		strings.Repeat("-", 24),
		strings.Repeat("-", 8))

	for _, b := range baskets {
		name := b.Name
		if name == model.Uncategorized {
			name = SubtleStyle.Render(name)
		}
		fmt.Fprintf(tw, "%d\t%s\t%d\n", b.Index, name, b.Count())
	}

	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s %d keywords in %d baskets (%d assigned, %d uncategorized)\n",
		InfoStyle.Render("Σ"),
		summary.TotalKeywords, summary.BasketCount,
		summary.Assigned, summary.Uncategorized)

	return nil
}

// RenderDiagnostics writes the invalid pattern report, one line per pattern.
func RenderDiagnostics(w io.Writer, diags []model.InvalidPattern) {
	if len(diags) == 0 {
		return
	}

	fmt.Fprintln(w, FormatWarning(fmt.Sprintf("%d pattern(s) failed to compile and were skipped:", len(diags))))
	for _, d := range diags {
		fmt.Fprintf(w, "  %s\n", SubtleStyle.Render(d.String()))
	}
}

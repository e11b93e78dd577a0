package sheets

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kwbasket/kwbasket/internal/model"
	"github.com/kwbasket/kwbasket/internal/service"
)

var _ service.ReportWriter = (*Writer)(nil)

func TestPrepareBasketData(t *testing.T) {
	w := &Writer{config: DefaultConfig(), logger: slog.Default()}

	baskets := model.Baskets{
		{Index: 0, Name: "Shoes", Keywords: []string{"running shoe", "boot"}},
		{Index: 1, Name: model.Uncategorized, Keywords: []string{"garden hose"}},
	}
	summary := baskets.Summary()

	values := w.prepareBasketData(baskets, summary)

	// Title, blank, four summary rows, blank, column header, three keyword rows.
	require.Len(t, values, 11)

	assert.Equal(t, "Keyword Baskets", values[0][0])
	assert.Equal(t, []any{"Total Keywords", 3}, values[2])
	assert.Equal(t, []any{"Assigned", 2}, values[3])
	assert.Equal(t, []any{"Uncategorized", 1}, values[4])
	assert.Equal(t, []any{"Baskets", 2}, values[5])
	assert.Equal(t, []any{"Basket", "Basket Name", "Keyword"}, values[7])

	assert.Equal(t, []any{0, "Shoes", "running shoe"}, values[8])
	assert.Equal(t, []any{0, "Shoes", "boot"}, values[9])
	assert.Equal(t, []any{1, model.Uncategorized, "garden hose"}, values[10])
}

func TestPrepareBasketDataEmpty(t *testing.T) {
	w := &Writer{config: DefaultConfig(), logger: slog.Default()}

	values := w.prepareBasketData(nil, model.Summary{})

	// Only the header block.
	require.Len(t, values, 8)
	assert.Equal(t, []any{"Total Keywords", 0}, values[2])
}

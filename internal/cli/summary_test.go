package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kwbasket/kwbasket/internal/model"
)

func TestRenderSummary(t *testing.T) {
	baskets := model.Baskets{
		{Index: 0, Name: "Shoes", Keywords: []string{"running shoe", "boot"}},
		{Index: 1, Name: model.Uncategorized, Keywords: []string{"garden hose"}},
	}

	var buf bytes.Buffer
	require.NoError(t, RenderSummary(&buf, baskets))

	out := buf.String()
	assert.Contains(t, out, "Shoes")
	assert.Contains(t, out, "Uncategorized")
	assert.Contains(t, out, "3 keywords in 2 baskets")
	assert.Contains(t, out, "2 assigned, 1 uncategorized")
}

func TestRenderDiagnostics(t *testing.T) {
	var buf bytes.Buffer
	RenderDiagnostics(&buf, []model.InvalidPattern{
		{Category: "Shirts", Pattern: "[bad", Reason: "missing closing ]"},
	})

	out := buf.String()
	assert.Contains(t, out, "1 pattern(s) failed to compile")
	assert.Contains(t, out, "Shirts")
	assert.Contains(t, out, "[bad")
}

func TestRenderDiagnosticsEmpty(t *testing.T) {
	var buf bytes.Buffer
	RenderDiagnostics(&buf, nil)
	assert.Empty(t, buf.String())
}

package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kwbasket/kwbasket/internal/model"
)

func TestNewRuleSetPreservesOrder(t *testing.T) {
	defs := []model.CategoryDefinition{
		{Name: "Dresses", Patterns: []string{"dress", "gown"}},
		{Name: "Shirts", Patterns: []string{"shirt"}},
		{Name: "Shoes", Patterns: []string{"shoe", "boot"}},
	}

	rs, diags := NewRuleSet(defs)
	require.Empty(t, diags)
	require.Len(t, rs.Categories, 3)

	assert.Equal(t, "Dresses", rs.Categories[0].Name)
	assert.Equal(t, "Shirts", rs.Categories[1].Name)
	assert.Equal(t, "Shoes", rs.Categories[2].Name)

	assert.Equal(t, "dress", rs.Categories[0].Patterns[0].Raw)
	assert.Equal(t, "gown", rs.Categories[0].Patterns[1].Raw)
}

func TestNewRuleSetCollectsDiagnostics(t *testing.T) {
	defs := []model.CategoryDefinition{
		{Name: "Shirts", Patterns: []string{"shirt", "[bad", "tee"}},
		{Name: "Shoes", Patterns: []string{"*also bad"}},
	}

	rs, diags := NewRuleSet(defs)

	require.Len(t, diags, 2)
	assert.Equal(t, "Shirts", diags[0].Category)
	assert.Equal(t, "[bad", diags[0].Pattern)
	assert.NotEmpty(t, diags[0].Reason)
	assert.Equal(t, "Shoes", diags[1].Category)
	assert.Equal(t, "*also bad", diags[1].Pattern)

	// The valid patterns of a partially broken category stay active.
	assert.True(t, rs.Categories[0].Matches("graphic tee"))
	assert.True(t, rs.Categories[0].Matches("dress shirt"))
	assert.False(t, rs.Categories[1].Matches("also bad"))
}

func TestCategoryMatchesShortCircuits(t *testing.T) {
	defs := []model.CategoryDefinition{
		{Name: "Mixed", Patterns: []string{"[broken", "shirt"}},
	}

	rs, diags := NewRuleSet(defs)
	require.Len(t, diags, 1)

	// The invalid first pattern is skipped, the second still matches.
	assert.True(t, rs.Categories[0].Matches("shirt"))
}

func TestRuleSetEmpty(t *testing.T) {
	tests := []struct {
		name string
		defs []model.CategoryDefinition
		want bool
	}{
		{
			name: "no categories",
			defs: nil,
			want: true,
		},
		{
			name: "category with no patterns",
			defs: []model.CategoryDefinition{{Name: "Bare"}},
			want: true,
		},
		{
			name: "only invalid patterns",
			defs: []model.CategoryDefinition{{Name: "Broken", Patterns: []string{"[", "("}}},
			want: true,
		},
		{
			name: "one valid pattern",
			defs: []model.CategoryDefinition{
				{Name: "Broken", Patterns: []string{"["}},
				{Name: "Fine", Patterns: []string{"shirt"}},
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rs, _ := NewRuleSet(tt.defs)
			assert.Equal(t, tt.want, rs.Empty())
		})
	}
}

package storage_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kwbasket/kwbasket/internal/common"
	"github.com/kwbasket/kwbasket/internal/model"
	"github.com/kwbasket/kwbasket/internal/testutil"
)

func TestSaveAndGetRuleSet(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()

	defs := testutil.ApparelDefinitions()
	require.NoError(t, db.Storage.SaveRuleSet(ctx, "apparel", defs))

	got, err := db.Storage.GetRuleSet(ctx, "apparel")
	require.NoError(t, err)

	// Category and pattern order round-trips exactly.
	assert.Equal(t, defs, got)
}

func TestSaveRuleSetDuplicate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()

	defs := testutil.ApparelDefinitions()
	require.NoError(t, db.Storage.SaveRuleSet(ctx, "apparel", defs))

	err := db.Storage.SaveRuleSet(ctx, "apparel", defs)
	assert.ErrorIs(t, err, common.ErrDuplicateEntry)
}

func TestSaveRuleSetValidation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		setName string
		defs    []model.CategoryDefinition
	}{
		{
			name:    "empty name",
			setName: "",
			defs:    testutil.ApparelDefinitions(),
		},
		{
			name:    "no definitions",
			setName: "empty",
			defs:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, db.Storage.SaveRuleSet(ctx, tt.setName, tt.defs))
		})
	}
}

func TestGetRuleSetNotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)

	_, err := db.Storage.GetRuleSet(context.Background(), "missing")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestListRuleSets(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()

	names, err := db.Storage.ListRuleSets(ctx)
	require.NoError(t, err)
	assert.Empty(t, names)

	db.SeedRuleSet(ctx, "first", testutil.ApparelDefinitions())
	db.SeedRuleSet(ctx, "second", testutil.ApparelDefinitions())

	names, err = db.Storage.ListRuleSets(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, names)
}

func TestDeleteRuleSet(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()

	db.SeedRuleSet(ctx, "apparel", testutil.ApparelDefinitions())
	require.NoError(t, db.Storage.DeleteRuleSet(ctx, "apparel"))

	_, err := db.Storage.GetRuleSet(ctx, "apparel")
	assert.ErrorIs(t, err, common.ErrNotFound)

	// A second delete reports not found.
	assert.ErrorIs(t, db.Storage.DeleteRuleSet(ctx, "apparel"), common.ErrNotFound)
}

func TestDeleteRuleSetLeavesOthers(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()

	db.SeedRuleSet(ctx, "keep", testutil.ApparelDefinitions())
	db.SeedRuleSet(ctx, "drop", testutil.ApparelDefinitions())

	require.NoError(t, db.Storage.DeleteRuleSet(ctx, "drop"))

	got, err := db.Storage.GetRuleSet(ctx, "keep")
	require.NoError(t, err)
	assert.Equal(t, testutil.ApparelDefinitions(), got)
}

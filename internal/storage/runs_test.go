package storage_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kwbasket/kwbasket/internal/common"
	"github.com/kwbasket/kwbasket/internal/model"
	"github.com/kwbasket/kwbasket/internal/testutil"
)

func sampleRun() (*model.Run, model.Baskets) {
	baskets := model.Baskets{
		{Index: 0, Name: "Shoes", Keywords: []string{"running shoe", "boot"}},
		{Index: 1, Name: model.Uncategorized, Keywords: []string{"garden hose"}},
	}
	summary := baskets.Summary()
	run := &model.Run{
		ID:            uuid.New().String(),
		CreatedAt:     time.Now().Truncate(time.Second),
		Source:        "keywords.csv",
		RuleSetName:   "apparel",
		KeywordCount:  summary.TotalKeywords,
		BasketCount:   summary.BasketCount,
		Uncategorized: summary.Uncategorized,
	}
	return run, baskets
}

func TestSaveAndGetRun(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()

	run, baskets := sampleRun()
	require.NoError(t, db.Storage.SaveRun(ctx, run, baskets))

	gotRun, gotBaskets, err := db.Storage.GetRun(ctx, run.ID)
	require.NoError(t, err)

	assert.Equal(t, run.ID, gotRun.ID)
	assert.Equal(t, run.Source, gotRun.Source)
	assert.Equal(t, run.RuleSetName, gotRun.RuleSetName)
	assert.Equal(t, run.KeywordCount, gotRun.KeywordCount)
	assert.Equal(t, baskets, gotBaskets)
}

func TestGetRunByPrefix(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()

	run, baskets := sampleRun()
	require.NoError(t, db.Storage.SaveRun(ctx, run, baskets))

	gotRun, _, err := db.Storage.GetRun(ctx, run.ID[:8])
	require.NoError(t, err)
	assert.Equal(t, run.ID, gotRun.ID)
}

func TestGetRunAmbiguousPrefix(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()

	first, baskets := sampleRun()
	first.ID = "abc11111-0000-0000-0000-000000000001"
	require.NoError(t, db.Storage.SaveRun(ctx, first, baskets))

	second, baskets2 := sampleRun()
	second.ID = "abc22222-0000-0000-0000-000000000002"
	require.NoError(t, db.Storage.SaveRun(ctx, second, baskets2))

	_, _, err := db.Storage.GetRun(ctx, "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ambiguous")

	// A longer, unique prefix still resolves.
	got, _, err := db.Storage.GetRun(ctx, "abc1")
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)
}

func TestGetRunExactMatchBeatsPrefix(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()

	short, baskets := sampleRun()
	short.ID = "abc"
	require.NoError(t, db.Storage.SaveRun(ctx, short, baskets))

	long, baskets2 := sampleRun()
	long.ID = "abcdef"
	require.NoError(t, db.Storage.SaveRun(ctx, long, baskets2))

	got, _, err := db.Storage.GetRun(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, short.ID, got.ID)
}

func TestGetRunNotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)

	_, _, err := db.Storage.GetRun(context.Background(), "nope")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestSaveRunValidation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()

	assert.Error(t, db.Storage.SaveRun(ctx, nil, nil))

	run, baskets := sampleRun()
	run.ID = ""
	assert.Error(t, db.Storage.SaveRun(ctx, run, baskets))
}

func TestListRuns(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()

	runs, err := db.Storage.ListRuns(ctx)
	require.NoError(t, err)
	assert.Empty(t, runs)

	older, baskets := sampleRun()
	older.CreatedAt = time.Now().Add(-time.Hour)
	require.NoError(t, db.Storage.SaveRun(ctx, older, baskets))

	newer, baskets2 := sampleRun()
	require.NoError(t, db.Storage.SaveRun(ctx, newer, baskets2))

	runs, err = db.Storage.ListRuns(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	// Newest first.
	assert.Equal(t, newer.ID, runs[0].ID)
	assert.Equal(t, older.ID, runs[1].ID)
}

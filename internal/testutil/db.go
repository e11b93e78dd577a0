// Package testutil provides shared helpers for tests that need a real
// database or canned category fixtures.
package testutil

import (
	"context"
	"testing"

	"github.com/kwbasket/kwbasket/internal/model"
	"github.com/kwbasket/kwbasket/internal/service"
	"github.com/kwbasket/kwbasket/internal/storage"
)

// TestDB wraps an in-memory storage instance for a single test. The
// Storage field is the service interface so tests exercise the same
// contract the rest of the application depends on.
type TestDB struct {
	Storage service.Storage
	t       *testing.T
}

// SetupTestDB creates a migrated in-memory database and registers
// cleanup with the test.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close test database: %v", err)
		}
	})

	return &TestDB{Storage: store, t: t}
}

// SeedRuleSet stores a named rule set, failing the test on error.
func (db *TestDB) SeedRuleSet(ctx context.Context, name string, defs []model.CategoryDefinition) {
	db.t.Helper()

	if err := db.Storage.SaveRuleSet(ctx, name, defs); err != nil {
		db.t.Fatalf("failed to seed rule set %q: %v", name, err)
	}
}

// ApparelDefinitions returns the ordered category fixture used across
// engine and storage tests.
func ApparelDefinitions() []model.CategoryDefinition {
	return []model.CategoryDefinition{
		{Name: "Dresses", Patterns: []string{`dress(?!.*shirt)`, `gown`}},
		{Name: "Shirts", Patterns: []string{`shirt`, `\btee\b`, `t-shirt`}},
		{Name: "Shoes", Patterns: []string{`shoe`, `sneaker`, `boot`}},
	}
}

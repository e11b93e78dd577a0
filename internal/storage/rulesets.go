package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/kwbasket/kwbasket/internal/common"
	"github.com/kwbasket/kwbasket/internal/model"
)

// SaveRuleSet stores a named rule set, preserving category and pattern
// order. Saving under an existing name fails with ErrDuplicateEntry;
// delete the old set first to replace it.
func (s *SQLiteStorage) SaveRuleSet(ctx context.Context, name string, defs []model.CategoryDefinition) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(name, "name"); err != nil {
		return err
	}
	if err := validateDefinitions(defs); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var existing int64
	err = tx.QueryRowContext(ctx, `SELECT id FROM rulesets WHERE name = ?`, name).Scan(&existing)
	if err == nil {
		return fmt.Errorf("%w: rule set %q", common.ErrDuplicateEntry, name)
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("failed to check existing rule set: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO rulesets (name, created_at) VALUES (?, ?)`, name, time.Now())
	if err != nil {
		return fmt.Errorf("failed to insert rule set: %w", err)
	}
	rulesetID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get rule set id: %w", err)
	}

	for pos, def := range defs {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO ruleset_categories (ruleset_id, position, name) VALUES (?, ?, ?)`,
			rulesetID, pos, def.Name)
		if err != nil {
			return fmt.Errorf("failed to insert category %q: %w", def.Name, err)
		}
		categoryID, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get category id: %w", err)
		}

		for ppos, pat := range def.Patterns {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO ruleset_patterns (category_id, position, pattern) VALUES (?, ?, ?)`,
				categoryID, ppos, pat); err != nil {
				return fmt.Errorf("failed to insert pattern for %q: %w", def.Name, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit rule set: %w", err)
	}

	slog.Debug("saved rule set", "name", name, "categories", len(defs))
	return nil
}

// GetRuleSet returns a stored rule set with its original category and
// pattern order.
func (s *SQLiteStorage) GetRuleSet(ctx context.Context, name string) ([]model.CategoryDefinition, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(name, "name"); err != nil {
		return nil, err
	}

	var rulesetID int64
	err := s.db.QueryRowContext(ctx, `SELECT id FROM rulesets WHERE name = ?`, name).Scan(&rulesetID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: rule set %q", common.ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query rule set: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name
		FROM ruleset_categories
		WHERE ruleset_id = ?
		ORDER BY position`, rulesetID)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var defs []model.CategoryDefinition
	var categoryIDs []int64
	for rows.Next() {
		var id int64
		var catName string
		if err := rows.Scan(&id, &catName); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categoryIDs = append(categoryIDs, id)
		defs = append(defs, model.CategoryDefinition{Name: catName})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	for i, categoryID := range categoryIDs {
		prows, err := s.db.QueryContext(ctx, `
			SELECT pattern
			FROM ruleset_patterns
			WHERE category_id = ?
			ORDER BY position`, categoryID)
		if err != nil {
			return nil, fmt.Errorf("failed to query patterns: %w", err)
		}
		for prows.Next() {
			var pat string
			if err := prows.Scan(&pat); err != nil {
				_ = prows.Close()
				return nil, fmt.Errorf("failed to scan pattern: %w", err)
			}
			defs[i].Patterns = append(defs[i].Patterns, pat)
		}
		if err := prows.Err(); err != nil {
			_ = prows.Close()
			return nil, fmt.Errorf("error iterating patterns: %w", err)
		}
		_ = prows.Close()
	}

	return defs, nil
}

// ListRuleSets returns the names of all stored rule sets, oldest first.
func (s *SQLiteStorage) ListRuleSets(ctx context.Context) ([]string, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT name FROM rulesets ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query rule sets: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan rule set name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rule sets: %w", err)
	}

	return names, nil
}

// DeleteRuleSet removes a stored rule set and all its categories and patterns.
func (s *SQLiteStorage) DeleteRuleSet(ctx context.Context, name string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(name, "name"); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var rulesetID int64
	err = tx.QueryRowContext(ctx, `SELECT id FROM rulesets WHERE name = ?`, name).Scan(&rulesetID)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: rule set %q", common.ErrNotFound, name)
	}
	if err != nil {
		return fmt.Errorf("failed to query rule set: %w", err)
	}

	// Delete children explicitly; the DSN does not enable foreign keys.
	if _, err := tx.ExecContext(ctx, `
		DELETE FROM ruleset_patterns
		WHERE category_id IN (SELECT id FROM ruleset_categories WHERE ruleset_id = ?)`, rulesetID); err != nil {
		return fmt.Errorf("failed to delete patterns: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM ruleset_categories WHERE ruleset_id = ?`, rulesetID); err != nil {
		return fmt.Errorf("failed to delete categories: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM rulesets WHERE id = ?`, rulesetID); err != nil {
		return fmt.Errorf("failed to delete rule set: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit delete: %w", err)
	}

	slog.Debug("deleted rule set", "name", name)
	return nil
}

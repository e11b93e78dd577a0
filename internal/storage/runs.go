package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/kwbasket/kwbasket/internal/common"
	"github.com/kwbasket/kwbasket/internal/model"
)

// SaveRun stores a classification run and its full basket membership.
func (s *SQLiteStorage) SaveRun(ctx context.Context, run *model.Run, baskets model.Baskets) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateRun(run); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO runs (id, created_at, source, ruleset_name, keyword_count, basket_count, uncategorized_count)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.CreatedAt, run.Source, run.RuleSetName,
		run.KeywordCount, run.BasketCount, run.Uncategorized); err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	for _, b := range baskets {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO run_baskets (run_id, basket_index, name) VALUES (?, ?, ?)`,
			run.ID, b.Index, b.Name); err != nil {
			return fmt.Errorf("failed to insert basket %d: %w", b.Index, err)
		}
		for pos, kw := range b.Keywords {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO run_keywords (run_id, basket_index, position, keyword)
				VALUES (?, ?, ?, ?)`,
				run.ID, b.Index, pos, kw); err != nil {
				return fmt.Errorf("failed to insert keyword in basket %d: %w", b.Index, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run: %w", err)
	}

	slog.Debug("saved run", "id", run.ID, "baskets", len(baskets))
	return nil
}

// GetRun loads a run record and reconstructs its basket collection in
// original basket and keyword order.
func (s *SQLiteStorage) GetRun(ctx context.Context, id string) (*model.Run, model.Baskets, error) {
	if err := validateContext(ctx); err != nil {
		return nil, nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, nil, err
	}

	// Accept an ID prefix so short IDs from run listings work. An exact
	// match always wins; otherwise the prefix must identify one run.
	idRows, err := s.db.QueryContext(ctx,
		`SELECT id FROM runs WHERE id = ? OR id LIKE ? || '%'`, id, id)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to resolve run id: %w", err)
	}
	var matches []string
	exact := false
	for idRows.Next() {
		var match string
		if err := idRows.Scan(&match); err != nil {
			_ = idRows.Close()
			return nil, nil, fmt.Errorf("failed to scan run id: %w", err)
		}
		if match == id {
			exact = true
		}
		matches = append(matches, match)
	}
	if err := idRows.Err(); err != nil {
		_ = idRows.Close()
		return nil, nil, fmt.Errorf("error iterating run ids: %w", err)
	}
	_ = idRows.Close()

	switch {
	case exact:
	case len(matches) == 0:
		return nil, nil, fmt.Errorf("%w: run %q", common.ErrNotFound, id)
	case len(matches) > 1:
		return nil, nil, fmt.Errorf("ambiguous run ID %q matches %d runs", id, len(matches))
	default:
		id = matches[0]
	}

	var run model.Run
	err = s.db.QueryRowContext(ctx, `
		SELECT id, created_at, source, ruleset_name, keyword_count, basket_count, uncategorized_count
		FROM runs WHERE id = ?`, id).Scan(
		&run.ID, &run.CreatedAt, &run.Source, &run.RuleSetName,
		&run.KeywordCount, &run.BasketCount, &run.Uncategorized)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, fmt.Errorf("%w: run %q", common.ErrNotFound, id)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query run: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT basket_index, name FROM run_baskets
		WHERE run_id = ? ORDER BY basket_index`, id)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query baskets: %w", err)
	}
	defer rows.Close()

	var baskets model.Baskets
	for rows.Next() {
		var b model.Basket
		if err := rows.Scan(&b.Index, &b.Name); err != nil {
			return nil, nil, fmt.Errorf("failed to scan basket: %w", err)
		}
		baskets = append(baskets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating baskets: %w", err)
	}

	for i := range baskets {
		krows, err := s.db.QueryContext(ctx, `
			SELECT keyword FROM run_keywords
			WHERE run_id = ? AND basket_index = ?
			ORDER BY position`, id, baskets[i].Index)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to query keywords: %w", err)
		}
		for krows.Next() {
			var kw string
			if err := krows.Scan(&kw); err != nil {
				_ = krows.Close()
				return nil, nil, fmt.Errorf("failed to scan keyword: %w", err)
			}
			baskets[i].Keywords = append(baskets[i].Keywords, kw)
		}
		if err := krows.Err(); err != nil {
			_ = krows.Close()
			return nil, nil, fmt.Errorf("error iterating keywords: %w", err)
		}
		_ = krows.Close()
	}

	return &run, baskets, nil
}

// ListRuns returns all run records, newest first.
func (s *SQLiteStorage) ListRuns(ctx context.Context) ([]model.Run, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, source, ruleset_name, keyword_count, basket_count, uncategorized_count
		FROM runs ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []model.Run
	for rows.Next() {
		var run model.Run
		if err := rows.Scan(&run.ID, &run.CreatedAt, &run.Source, &run.RuleSetName,
			&run.KeywordCount, &run.BasketCount, &run.Uncategorized); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}

	return runs, nil
}

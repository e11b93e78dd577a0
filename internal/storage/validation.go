package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kwbasket/kwbasket/internal/model"
)

// Validation errors.
var (
	ErrNilContext   = errors.New("context cannot be nil")
	ErrEmptyString  = errors.New("string parameter cannot be empty")
	ErrNilParameter = errors.New("parameter cannot be nil")
	ErrEmptySlice   = errors.New("slice cannot be empty")
	ErrInvalidRun   = errors.New("invalid run")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateDefinitions validates a slice of category definitions.
func validateDefinitions(defs []model.CategoryDefinition) error {
	if defs == nil {
		return fmt.Errorf("%w: definitions", ErrNilParameter)
	}
	if len(defs) == 0 {
		return fmt.Errorf("%w: definitions", ErrEmptySlice)
	}
	for i, def := range defs {
		if strings.TrimSpace(def.Name) == "" {
			return fmt.Errorf("definition at index %d: %w: name", i, ErrEmptyString)
		}
	}
	return nil
}

// validateRun validates a run record before saving.
func validateRun(run *model.Run) error {
	if run == nil {
		return fmt.Errorf("%w: run", ErrNilParameter)
	}
	if strings.TrimSpace(run.ID) == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidRun)
	}
	if run.KeywordCount < 0 || run.BasketCount < 0 {
		return fmt.Errorf("%w: negative counts", ErrInvalidRun)
	}
	return nil
}

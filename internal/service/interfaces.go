// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/kwbasket/kwbasket/internal/model"
)

// Storage defines the contract for our persistence layer.
type Storage interface {
	// Rule set operations
	SaveRuleSet(ctx context.Context, name string, defs []model.CategoryDefinition) error
	GetRuleSet(ctx context.Context, name string) ([]model.CategoryDefinition, error)
	ListRuleSets(ctx context.Context) ([]string, error)
	DeleteRuleSet(ctx context.Context, name string) error

	// Run history operations
	SaveRun(ctx context.Context, run *model.Run, baskets model.Baskets) error
	GetRun(ctx context.Context, id string) (*model.Run, model.Baskets, error)
	ListRuns(ctx context.Context) ([]model.Run, error)

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// RetryOptions configures retry behavior for external calls.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}

// ReportWriter exports a basket collection to an external destination.
type ReportWriter interface {
	Write(ctx context.Context, baskets model.Baskets, summary model.Summary) error
}

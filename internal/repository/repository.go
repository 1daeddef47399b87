package repository

import (
	"context"
	"time"

	"signalx/internal/models"
)

type ListSignalsParams struct {
	// Status filters by lifecycle state when set ("active" / "completed").
	Status *string
}

// SignalCounts is the aggregate snapshot behind /api/stats.
type SignalCounts struct {
	Total     int64
	Active    int64
	Completed int64
	Wins      int64
	Losses    int64
}

// Repository is the durable record store for signals and strategies.
// Implementations must make each mutation a single atomic write; partial
// updates must never be observable.
type Repository interface {
	InsertSignal(ctx context.Context, item *models.Signal) error
	// GetSignalByID returns (nil, nil) when the id does not exist.
	GetSignalByID(ctx context.Context, id string) (*models.Signal, error)
	// ListSignals returns signals newest first.
	ListSignals(ctx context.Context, params ListSignalsParams) ([]models.Signal, error)
	// MarkSignalCompleted performs the active -> completed transition as one
	// conditional update guarded by the current status. The returned count is
	// 0 when the id is missing or the signal is already completed, so exactly
	// one of two concurrent resolves can win.
	MarkSignalCompleted(ctx context.Context, id, result string, resolvedAt time.Time) (int64, error)
	SignalCounts(ctx context.Context) (SignalCounts, error)

	InsertStrategy(ctx context.Context, item *models.Strategy) error
	// ListStrategies returns strategies newest first.
	ListStrategies(ctx context.Context) ([]models.Strategy, error)
	// DeleteStrategy returns the number of rows removed (0 when absent).
	DeleteStrategy(ctx context.Context, id string) (int64, error)
	DeleteAllStrategies(ctx context.Context) error
	CountStrategies(ctx context.Context) (int64, error)
}

package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"signalx/internal/broadcast"
	"signalx/internal/models"
	"signalx/internal/repository"
)

// SignalService owns the signal lifecycle: create active, resolve once to
// completed. Successful mutations publish an event after the write commits.
type SignalService struct {
	Repo      repository.Repository
	Publisher broadcast.Publisher
	Logger    *zap.Logger
}

type CreateSignalInput struct {
	Pair      string `json:"pair"`
	Direction string `json:"direction"`
	Duration  int    `json:"duration"`
}

func (s *SignalService) Create(ctx context.Context, in CreateSignalInput) (*models.Signal, error) {
	pair := strings.TrimSpace(in.Pair)
	if pair == "" {
		return nil, invalidf("pair is required")
	}
	direction := strings.ToLower(strings.TrimSpace(in.Direction))
	if direction != models.DirectionBuy && direction != models.DirectionSell {
		return nil, invalidf("direction must be %q or %q", models.DirectionBuy, models.DirectionSell)
	}
	if in.Duration <= 0 {
		return nil, invalidf("duration must be a positive number of minutes")
	}

	item := &models.Signal{
		ID:        uuid.NewString(),
		Pair:      pair,
		Direction: direction,
		Duration:  in.Duration,
		Status:    models.StatusActive,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Repo.InsertSignal(ctx, item); err != nil {
		return nil, err
	}

	s.publish(broadcast.EventNewSignal, *item)
	if s.Logger != nil {
		s.Logger.Info("signal created",
			zap.String("id", item.ID),
			zap.String("pair", item.Pair),
			zap.String("direction", item.Direction),
			zap.Int("duration_min", item.Duration),
		)
	}
	return item, nil
}

// Resolve transitions a signal from active to completed. The store applies
// the transition as a conditional update, so of two concurrent resolves for
// the same id exactly one wins and the other gets ErrAlreadyResolved.
func (s *SignalService) Resolve(ctx context.Context, id, result string) (*models.Signal, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrSignalNotFound
	}
	result = strings.ToLower(strings.TrimSpace(result))
	if result != models.ResultWin && result != models.ResultLoss {
		return nil, invalidf("result must be %q or %q", models.ResultWin, models.ResultLoss)
	}

	affected, err := s.Repo.MarkSignalCompleted(ctx, id, result, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		existing, err := s.Repo.GetSignalByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			return nil, ErrSignalNotFound
		}
		return nil, ErrAlreadyResolved
	}

	item, err := s.Repo.GetSignalByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrSignalNotFound
	}

	s.publish(broadcast.EventSignalResolved, *item)
	if s.Logger != nil {
		s.Logger.Info("signal resolved",
			zap.String("id", item.ID),
			zap.String("result", result),
		)
	}
	return item, nil
}

func (s *SignalService) ListAll(ctx context.Context) ([]models.Signal, error) {
	return s.Repo.ListSignals(ctx, repository.ListSignalsParams{})
}

func (s *SignalService) ListActive(ctx context.Context) ([]models.Signal, error) {
	status := models.StatusActive
	return s.Repo.ListSignals(ctx, repository.ListSignalsParams{Status: &status})
}

func (s *SignalService) publish(typ broadcast.EventType, item models.Signal) {
	if s.Publisher == nil {
		return
	}
	s.Publisher.Publish(broadcast.Event{Type: typ, Signal: item})
}

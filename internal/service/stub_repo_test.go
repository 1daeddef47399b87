package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"signalx/internal/broadcast"
	"signalx/internal/models"
	"signalx/internal/repository"
)

// stubRepo is a test-only in-memory implementation of repository.Repository.
type stubRepo struct {
	mu         sync.Mutex
	signals    map[string]models.Signal
	strategies map[string]models.Strategy
	failWith   error
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		signals:    map[string]models.Signal{},
		strategies: map[string]models.Strategy{},
	}
}

func (s *stubRepo) InsertSignal(ctx context.Context, item *models.Signal) error {
	if s.failWith != nil {
		return s.failWith
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.signals[item.ID]; ok {
		return errors.New("duplicate id")
	}
	s.signals[item.ID] = *item
	return nil
}

func (s *stubRepo) GetSignalByID(ctx context.Context, id string) (*models.Signal, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.signals[id]
	if !ok {
		return nil, nil
	}
	return &item, nil
}

func (s *stubRepo) ListSignals(ctx context.Context, params repository.ListSignalsParams) ([]models.Signal, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var items []models.Signal
	for _, item := range s.signals {
		if params.Status != nil && item.Status != *params.Status {
			continue
		}
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

func (s *stubRepo) MarkSignalCompleted(ctx context.Context, id, result string, resolvedAt time.Time) (int64, error) {
	if s.failWith != nil {
		return 0, s.failWith
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.signals[id]
	if !ok || item.Status != models.StatusActive {
		return 0, nil
	}
	item.Status = models.StatusCompleted
	item.Result = &result
	item.ResolvedAt = &resolvedAt
	s.signals[id] = item
	return 1, nil
}

func (s *stubRepo) SignalCounts(ctx context.Context) (repository.SignalCounts, error) {
	if s.failWith != nil {
		return repository.SignalCounts{}, s.failWith
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var counts repository.SignalCounts
	for _, item := range s.signals {
		counts.Total++
		switch item.Status {
		case models.StatusActive:
			counts.Active++
		case models.StatusCompleted:
			counts.Completed++
		}
		if item.Result != nil {
			switch *item.Result {
			case models.ResultWin:
				counts.Wins++
			case models.ResultLoss:
				counts.Losses++
			}
		}
	}
	return counts, nil
}

func (s *stubRepo) InsertStrategy(ctx context.Context, item *models.Strategy) error {
	if s.failWith != nil {
		return s.failWith
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.strategies[item.ID] = *item
	return nil
}

func (s *stubRepo) ListStrategies(ctx context.Context) ([]models.Strategy, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var items []models.Strategy
	for _, item := range s.strategies {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

func (s *stubRepo) DeleteStrategy(ctx context.Context, id string) (int64, error) {
	if s.failWith != nil {
		return 0, s.failWith
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.strategies[id]; !ok {
		return 0, nil
	}
	delete(s.strategies, id)
	return 1, nil
}

func (s *stubRepo) DeleteAllStrategies(ctx context.Context) error {
	if s.failWith != nil {
		return s.failWith
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.strategies = map[string]models.Strategy{}
	return nil
}

func (s *stubRepo) CountStrategies(ctx context.Context) (int64, error) {
	if s.failWith != nil {
		return 0, s.failWith
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.strategies)), nil
}

// recordingPublisher captures published events for assertions.
type recordingPublisher struct {
	mu     sync.Mutex
	events []broadcast.Event
}

func (p *recordingPublisher) Publish(ev broadcast.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
}

func (p *recordingPublisher) all() []broadcast.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]broadcast.Event, len(p.events))
	copy(out, p.events)
	return out
}

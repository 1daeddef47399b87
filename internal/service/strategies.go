package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"signalx/internal/models"
	"signalx/internal/repository"
)

// StrategyService manages the educational content catalog. Strategies are
// write-once: created, listed, deleted, never updated.
type StrategyService struct {
	Repo   repository.Repository
	Logger *zap.Logger
}

type CreateStrategyInput struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Images  []string `json:"images"`
}

func (s *StrategyService) Create(ctx context.Context, in CreateStrategyInput) (*models.Strategy, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, invalidf("title is required")
	}
	if strings.TrimSpace(in.Content) == "" {
		return nil, invalidf("content is required")
	}
	images := in.Images
	if images == nil {
		images = []string{}
	}

	item := &models.Strategy{
		ID:        uuid.NewString(),
		Title:     title,
		Content:   in.Content,
		Images:    images,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Repo.InsertStrategy(ctx, item); err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.Info("strategy created",
			zap.String("id", item.ID),
			zap.String("title", item.Title),
			zap.Int("images", len(item.Images)),
		)
	}
	return item, nil
}

func (s *StrategyService) ListAll(ctx context.Context) ([]models.Strategy, error) {
	return s.Repo.ListStrategies(ctx)
}

func (s *StrategyService) Delete(ctx context.Context, id string) error {
	affected, err := s.Repo.DeleteStrategy(ctx, strings.TrimSpace(id))
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrStrategyNotFound
	}
	return nil
}

// DeleteAll empties the catalog. Deleting an already empty catalog is fine.
func (s *StrategyService) DeleteAll(ctx context.Context) error {
	return s.Repo.DeleteAllStrategies(ctx)
}

package gormrepository

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"signalx/internal/models"
	"signalx/internal/repository"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) InsertSignal(ctx context.Context, item *models.Signal) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) GetSignalByID(ctx context.Context, id string) (*models.Signal, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var item models.Signal
	err := s.db.WithContext(ctx).First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) ListSignals(ctx context.Context, params repository.ListSignalsParams) ([]models.Signal, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := s.db.WithContext(ctx).Model(&models.Signal{})
	if params.Status != nil && strings.TrimSpace(*params.Status) != "" {
		query = query.Where("status = ?", strings.TrimSpace(*params.Status))
	}
	var items []models.Signal
	if err := query.Order("created_at DESC, id DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) MarkSignalCompleted(ctx context.Context, id, result string, resolvedAt time.Time) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	res := s.db.WithContext(ctx).Model(&models.Signal{}).
		Where("id = ? AND status = ?", id, models.StatusActive).
		Updates(map[string]any{
			"status":      models.StatusCompleted,
			"result":      result,
			"resolved_at": resolvedAt,
		})
	return res.RowsAffected, res.Error
}

func (s *Store) SignalCounts(ctx context.Context) (repository.SignalCounts, error) {
	var counts repository.SignalCounts
	if s == nil || s.db == nil {
		return counts, nil
	}
	var rows []struct {
		Status string
		Result *string
		N      int64
	}
	err := s.db.WithContext(ctx).Model(&models.Signal{}).
		Select("status, result, COUNT(*) AS n").
		Group("status").Group("result").
		Scan(&rows).Error
	if err != nil {
		return counts, err
	}
	for _, row := range rows {
		counts.Total += row.N
		switch row.Status {
		case models.StatusActive:
			counts.Active += row.N
		case models.StatusCompleted:
			counts.Completed += row.N
		}
		if row.Result != nil {
			switch *row.Result {
			case models.ResultWin:
				counts.Wins += row.N
			case models.ResultLoss:
				counts.Losses += row.N
			}
		}
	}
	return counts, nil
}

func (s *Store) InsertStrategy(ctx context.Context, item *models.Strategy) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	raw, err := encodeImages(item.Images)
	if err != nil {
		return err
	}
	item.ImagesRaw = raw
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) ListStrategies(ctx context.Context) ([]models.Strategy, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.Strategy
	err := s.db.WithContext(ctx).Model(&models.Strategy{}).
		Order("created_at DESC, id DESC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	for i := range items {
		items[i].Images = decodeImages(items[i].ImagesRaw)
	}
	return items, nil
}

func (s *Store) DeleteStrategy(ctx context.Context, id string) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	res := s.db.WithContext(ctx).Delete(&models.Strategy{}, "id = ?", id)
	return res.RowsAffected, res.Error
}

func (s *Store) DeleteAllStrategies(ctx context.Context) error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.WithContext(ctx).Where("1 = 1").Delete(&models.Strategy{}).Error
}

func (s *Store) CountStrategies(ctx context.Context) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Strategy{}).Count(&count).Error
	return count, err
}

func encodeImages(items []string) (datatypes.JSON, error) {
	if items == nil {
		items = []string{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

// decodeImages degrades malformed or absent stored JSON to an empty list;
// a bad row must not break strategy listings.
func decodeImages(raw datatypes.JSON) []string {
	if len(raw) == 0 {
		return []string{}
	}
	var items []string
	if err := json.Unmarshal(raw, &items); err != nil || items == nil {
		return []string{}
	}
	return items
}

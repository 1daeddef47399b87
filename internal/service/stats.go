package service

import (
	"context"

	"github.com/shopspring/decimal"

	"signalx/internal/repository"
)

// Stats is the dashboard overview served by /api/stats.
type Stats struct {
	ActiveUsers     int     `json:"active_users"`
	OpenTrades      int64   `json:"open_trades"`
	WinRate         float64 `json:"win_rate"`
	StrategiesCount int64   `json:"strategies_count"`
	TotalSignals    int64   `json:"total_signals"`
	Wins            int64   `json:"wins"`
	Losses          int64   `json:"losses"`
}

type StatsService struct {
	Repo repository.Repository
	// ActiveUsers is a configured display placeholder, not a measurement.
	ActiveUsers int
}

func (s *StatsService) Overview(ctx context.Context) (Stats, error) {
	counts, err := s.Repo.SignalCounts(ctx)
	if err != nil {
		return Stats{}, err
	}
	strategies, err := s.Repo.CountStrategies(ctx)
	if err != nil {
		return Stats{}, err
	}
	return Stats{
		ActiveUsers:     s.ActiveUsers,
		OpenTrades:      counts.Active,
		WinRate:         winRate(counts.Wins, counts.Completed),
		StrategiesCount: strategies,
		TotalSignals:    counts.Total,
		Wins:            counts.Wins,
		Losses:          counts.Losses,
	}, nil
}

// winRate is wins/completed*100 rounded to one decimal, 0 with nothing
// completed yet.
func winRate(wins, completed int64) float64 {
	if completed <= 0 {
		return 0
	}
	rate := decimal.NewFromInt(wins).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(completed)).
		Round(1)
	f, _ := rate.Float64()
	return f
}

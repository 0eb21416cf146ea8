package service

import (
	"context"
	"fmt"

	"github.com/sahiljoster32/stock-monitor-backend/internal/domain/models"
	"github.com/sahiljoster32/stock-monitor-backend/internal/logger"
	"github.com/sahiljoster32/stock-monitor-backend/internal/storage"
)

// WatchListService serves symbols data and keeps the user's watch list in sync with it.
type WatchListService interface {
	FetchSymbolsData(ctx context.Context, userID int64, symbols []string) (*models.Aggregation, error)
	GetSymbols(ctx context.Context, userID int64) ([]string, error)
}

type watchListService struct {
	aggregator SymbolsAggregator
	repo       storage.WatchListRepository
	interval   string
}

func NewWatchListService(aggregator SymbolsAggregator, repo storage.WatchListRepository, interval string) WatchListService {
	return &watchListService{aggregator: aggregator, repo: repo, interval: interval}
}

// FetchSymbolsData aggregates the requested symbols and, unless the quota was
// hit, replaces the stored watch list with the symbols that returned data.
// A rate-limited result leaves storage untouched.
func (s *watchListService) FetchSymbolsData(ctx context.Context, userID int64, symbols []string) (*models.Aggregation, error) {
	agg, err := s.aggregator.GetSymbolsLatestAndGraphData(ctx, symbols, s.interval)
	if err != nil {
		return nil, err
	}
	if agg.RateLimited {
		return agg, nil
	}

	if err := s.repo.ReplaceSymbols(ctx, userID, agg.Symbols); err != nil {
		return nil, fmt.Errorf("save watch list for user %d: %w", userID, err)
	}
	logger.FromContext(ctx).Info().
		Int64("user_id", userID).
		Strs("symbols", agg.Symbols).
		Msg("watch list replaced")
	return agg, nil
}

func (s *watchListService) GetSymbols(ctx context.Context, userID int64) ([]string, error) {
	return s.repo.GetSymbols(ctx, userID)
}

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sahiljoster32/stock-monitor-backend/internal/domain/models"
	"github.com/sahiljoster32/stock-monitor-backend/internal/logger"
	"github.com/sahiljoster32/stock-monitor-backend/internal/marketdata"
	"github.com/sahiljoster32/stock-monitor-backend/internal/metrics"
)

// MarketDataFetcher retrieves raw intraday payloads for a batch of symbols.
// result[i] must correspond to symbols[i].
type MarketDataFetcher interface {
	FetchIntraday(ctx context.Context, symbols []string, interval string) []marketdata.FetchResult
}

// FetchRecorder receives one outcome per symbol and the duration of each batch.
type FetchRecorder interface {
	RecordSymbolFetch(outcome string)
	RecordFetchBatch(seconds float64)
}

type nopRecorder struct{}

func (nopRecorder) RecordSymbolFetch(string) {}
func (nopRecorder) RecordFetchBatch(float64) {}

// SymbolsAggregator combines per-symbol intraday data into one response.
type SymbolsAggregator interface {
	GetSymbolsLatestAndGraphData(ctx context.Context, symbols []string, interval string) (*models.Aggregation, error)
}

type symbolsAggregator struct {
	fetcher         MarketDataFetcher
	recorder        FetchRecorder
	defaultInterval string
	partialResults  bool
}

// NewSymbolsAggregator builds the aggregator.
//
// With partialResults false a transport failure or malformed payload for any
// symbol fails the whole call. With partialResults true that symbol is dropped
// and the rest of the batch is still returned.
func NewSymbolsAggregator(fetcher MarketDataFetcher, recorder FetchRecorder, defaultInterval string, partialResults bool) SymbolsAggregator {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	if defaultInterval == "" {
		defaultInterval = "5min"
	}
	return &symbolsAggregator{
		fetcher:         fetcher,
		recorder:        recorder,
		defaultInterval: defaultInterval,
		partialResults:  partialResults,
	}
}

func (s *symbolsAggregator) GetSymbolsLatestAndGraphData(ctx context.Context, symbols []string, interval string) (*models.Aggregation, error) {
	if interval == "" {
		interval = s.defaultInterval
	}
	log := logger.FromContext(ctx)

	unique := dedupe(symbols)
	if len(unique) == 0 {
		return models.NewAggregation(), nil
	}

	start := time.Now()
	results := s.fetcher.FetchIntraday(ctx, unique, interval)
	s.recorder.RecordFetchBatch(time.Since(start).Seconds())

	if !s.partialResults {
		for _, r := range results {
			if r.Err != nil {
				s.recorder.RecordSymbolFetch(metrics.OutcomeTransport)
				log.Error().Err(r.Err).Str("symbol", r.Symbol).Msg("market-data fetch failed")
				return nil, fmt.Errorf("fetch %s: %w", r.Symbol, r.Err)
			}
		}
	}

	agg := models.NewAggregation()
	for _, r := range results {
		if r.Err != nil {
			s.recorder.RecordSymbolFetch(metrics.OutcomeTransport)
			log.Error().Err(r.Err).Str("symbol", r.Symbol).Msg("market-data fetch failed, symbol dropped")
			continue
		}

		kind, err := marketdata.Classify(r.Body)
		if err != nil {
			if dropErr := s.malformed(ctx, r.Symbol, err); dropErr != nil {
				return nil, dropErr
			}
			continue
		}

		switch kind {
		case marketdata.KindQuotaExceeded:
			s.recorder.RecordSymbolFetch(metrics.OutcomeQuota)
			log.Warn().Str("symbol", r.Symbol).Msg("market-data quota exhausted")
			return models.RateLimitedAggregation(), nil

		case marketdata.KindErrorMessage:
			s.recorder.RecordSymbolFetch(metrics.OutcomeNoData)
			log.Debug().Str("symbol", r.Symbol).Msg("no market data for symbol, skipped")

		case marketdata.KindSuccess:
			series, err := marketdata.Normalize(r.Body, interval)
			if errors.Is(err, marketdata.ErrEmptySeries) {
				s.recorder.RecordSymbolFetch(metrics.OutcomeNoData)
				log.Debug().Str("symbol", r.Symbol).Msg("empty time series, skipped")
				continue
			}
			if err != nil {
				if dropErr := s.malformed(ctx, r.Symbol, err); dropErr != nil {
					return nil, dropErr
				}
				continue
			}
			s.recorder.RecordSymbolFetch(metrics.OutcomeSuccess)
			log.Debug().Str("symbol", series.Symbol).Int("rows", len(series.Rows)).Msg("symbol normalized")
			agg.Add(series)
		}
	}
	return agg, nil
}

// malformed records an unparseable payload and returns the error to fail with,
// or nil when the symbol should just be dropped.
func (s *symbolsAggregator) malformed(ctx context.Context, symbol string, err error) error {
	s.recorder.RecordSymbolFetch(metrics.OutcomeMalformed)
	log := logger.FromContext(ctx)
	if s.partialResults {
		log.Error().Err(err).Str("symbol", symbol).Msg("malformed market-data payload, symbol dropped")
		return nil
	}
	log.Error().Err(err).Str("symbol", symbol).Msg("malformed market-data payload")
	return fmt.Errorf("parse %s: %w", symbol, err)
}

// dedupe drops repeated symbols, keeping first-seen order.
func dedupe(symbols []string) []string {
	seen := make(map[string]struct{}, len(symbols))
	out := make([]string, 0, len(symbols))
	for _, s := range symbols {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

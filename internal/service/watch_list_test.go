package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sahiljoster32/stock-monitor-backend/internal/domain/models"
	"github.com/sahiljoster32/stock-monitor-backend/internal/marketdata"
	"github.com/sahiljoster32/stock-monitor-backend/internal/storage"
)

type stubWatchListRepo struct {
	symbols    map[int64][]string
	replaceErr error
	replaces   int
}

func newStubWatchListRepo() *stubWatchListRepo {
	return &stubWatchListRepo{symbols: map[int64][]string{}}
}

func (r *stubWatchListRepo) GetSymbols(_ context.Context, userID int64) ([]string, error) {
	s, ok := r.symbols[userID]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return s, nil
}

func (r *stubWatchListRepo) ReplaceSymbols(_ context.Context, userID int64, symbols []string) error {
	r.replaces++
	if r.replaceErr != nil {
		return r.replaceErr
	}
	r.symbols[userID] = append([]string{}, symbols...)
	return nil
}

func newTestWatchListService(f *stubFetcher, repo *stubWatchListRepo) WatchListService {
	return NewWatchListService(NewSymbolsAggregator(f, nil, "5min", false), repo, "5min")
}

func TestFetchSymbolsData_ReplacesWatchList(t *testing.T) {
	repo := newStubWatchListRepo()
	repo.symbols[1] = []string{"TSLA"}
	f := &stubFetcher{responses: map[string]marketdata.FetchResult{
		"MSFT":  intraday("MSFT", "t1"),
		"BOGUS": ok(errorPayload),
	}}

	agg, err := newTestWatchListService(f, repo).FetchSymbolsData(context.Background(), 1, []string{"MSFT", "BOGUS"})
	require.NoError(t, err)
	assert.Equal(t, []string{"MSFT"}, agg.Symbols)
	assert.Equal(t, agg.Symbols, repo.symbols[1], "stored list equals result.symbols")
}

func TestFetchSymbolsData_EmptyResultClearsWatchList(t *testing.T) {
	repo := newStubWatchListRepo()
	repo.symbols[1] = []string{"TSLA"}
	f := &stubFetcher{responses: map[string]marketdata.FetchResult{"BOGUS": ok(errorPayload)}}

	agg, err := newTestWatchListService(f, repo).FetchSymbolsData(context.Background(), 1, []string{"BOGUS"})
	require.NoError(t, err)
	assert.Empty(t, agg.Symbols)
	assert.Empty(t, repo.symbols[1])
}

func TestFetchSymbolsData_QuotaLeavesWatchListUntouched(t *testing.T) {
	repo := newStubWatchListRepo()
	repo.symbols[1] = []string{"TSLA"}
	f := &stubFetcher{responses: map[string]marketdata.FetchResult{"MSFT": ok(quotaPayload)}}

	agg, err := newTestWatchListService(f, repo).FetchSymbolsData(context.Background(), 1, []string{"MSFT"})
	require.NoError(t, err)
	assert.True(t, agg.RateLimited)
	assert.Equal(t, models.QuotaNote, agg.Note)
	assert.Equal(t, 0, repo.replaces)
	assert.Equal(t, []string{"TSLA"}, repo.symbols[1])
}

func TestFetchSymbolsData_UpstreamFailureLeavesWatchListUntouched(t *testing.T) {
	repo := newStubWatchListRepo()
	f := &stubFetcher{responses: map[string]marketdata.FetchResult{"MSFT": {Err: marketdata.ErrTransport}}}

	_, err := newTestWatchListService(f, repo).FetchSymbolsData(context.Background(), 1, []string{"MSFT"})
	require.ErrorIs(t, err, marketdata.ErrTransport)
	assert.Equal(t, 0, repo.replaces)
}

func TestFetchSymbolsData_StorageError(t *testing.T) {
	repo := newStubWatchListRepo()
	repo.replaceErr = errors.New("db down")
	f := &stubFetcher{responses: map[string]marketdata.FetchResult{"MSFT": intraday("MSFT", "t1")}}

	agg, err := newTestWatchListService(f, repo).FetchSymbolsData(context.Background(), 1, []string{"MSFT"})
	require.Error(t, err)
	assert.Nil(t, agg)
}

func TestGetSymbols(t *testing.T) {
	repo := newStubWatchListRepo()
	repo.symbols[1] = []string{"MSFT", "IBM"}
	svc := newTestWatchListService(&stubFetcher{}, repo)

	got, err := svc.GetSymbols(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"MSFT", "IBM"}, got)

	_, err = svc.GetSymbols(context.Background(), 2)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

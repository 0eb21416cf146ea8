package dto

// SymbolsRequest is the body of POST /api/v1/watch-list/symbols-data.
//
// The max entry count is checked by the handler against config.WatchList.MaxSymbols,
// because the limit follows the market-data subscription and is configurable.
// Each entry must be a non-empty string; a JSON null decodes to "" and is rejected too.
type SymbolsRequest struct {
	Symbols []string `json:"symbols" binding:"required,dive,required" example:"MSFT,IBM"`
}

// SymbolsDataResponse is the 200 body of the symbols-data endpoint.
type SymbolsDataResponse struct {
	Symbols              []string              `json:"symbols" example:"MSFT"`
	Values               []string              `json:"values" example:"open,high,low,close,volume,date_time"`
	LatestPrices         map[string][]string   `json:"latest_prices"`
	CandleStickGraphData map[string][][]string `json:"candle_stick_graph_data"`
}

// QuotaExceededResponse is the 429 body returned when the market-data quota is exhausted.
type QuotaExceededResponse struct {
	Note string `json:"note" example:"You have reached the limit of 5 calls per minute."`
}

// WatchListResponse is the body of GET /api/v1/watch-list.
type WatchListResponse struct {
	Symbols []string `json:"symbols" example:"MSFT,IBM"`
}

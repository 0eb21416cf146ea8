package models

// DateTimeField is the derived column appended to every normalized row; it holds
// the timestamp key the row was read from.
const DateTimeField = "date_time"

// QuotaNote is the only content returned when the market-data API signals that the
// request quota is exhausted.
const QuotaNote = "You have reached the limit of 5 calls per minute."

// SymbolSeries is one symbol's intraday time series after normalization.
//
// Fields lists the column names (numeric prefixes stripped, date_time last).
// Rows keep the order in which the API returned them; each row has one value per field.
// Latest is the last row in that order.
type SymbolSeries struct {
	Symbol string
	Fields []string
	Rows   [][]string
}

// Latest returns the last row, or nil when the series is empty.
func (s *SymbolSeries) Latest() []string {
	if s == nil || len(s.Rows) == 0 {
		return nil
	}
	return s.Rows[len(s.Rows)-1]
}

// Aggregation is the transient result of one symbols-data request.
//
// When RateLimited is true only Note is meaningful; nothing else is populated and
// the caller must not touch the watch list.
//
// Otherwise every entry of Symbols has a matching key in LatestPrices and
// CandleStickGraphData, and Values is the field list of the last symbol processed.
type Aggregation struct {
	Symbols              []string              `json:"symbols"`
	Values               []string              `json:"values"`
	LatestPrices         map[string][]string   `json:"latest_prices"`
	CandleStickGraphData map[string][][]string `json:"candle_stick_graph_data"`

	RateLimited bool   `json:"-"`
	Note        string `json:"-"`
}

// NewAggregation returns an empty, non-rate-limited result with all collections allocated,
// so an empty request still serializes as [] and {}.
func NewAggregation() *Aggregation {
	return &Aggregation{
		Symbols:              []string{},
		Values:               []string{},
		LatestPrices:         map[string][]string{},
		CandleStickGraphData: map[string][][]string{},
	}
}

// RateLimitedAggregation returns the short-circuit result used when the quota is exhausted.
func RateLimitedAggregation() *Aggregation {
	return &Aggregation{RateLimited: true, Note: QuotaNote}
}

// Add records a normalized symbol. Values is overwritten, so the last symbol wins.
// Two requested spellings that resolve to the same canonical symbol are listed once.
func (a *Aggregation) Add(s *SymbolSeries) {
	if _, seen := a.CandleStickGraphData[s.Symbol]; !seen {
		a.Symbols = append(a.Symbols, s.Symbol)
	}
	a.Values = s.Fields
	a.LatestPrices[s.Symbol] = s.Latest()
	a.CandleStickGraphData[s.Symbol] = s.Rows
}

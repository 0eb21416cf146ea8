package marketdata

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/sahiljoster32/stock-monitor-backend/internal/domain/models"
)

// Kind classifies a raw intraday payload.
type Kind int

const (
	// KindSuccess carries metadata and a time-series object.
	KindSuccess Kind = iota
	// KindErrorMessage means the symbol is unknown or has no data.
	KindErrorMessage
	// KindQuotaExceeded means the API key ran out of calls.
	KindQuotaExceeded
)

func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindErrorMessage:
		return "error_message"
	case KindQuotaExceeded:
		return "quota_exceeded"
	default:
		return "unknown"
	}
}

var (
	// ErrMalformedPayload is returned for bodies matching none of the known shapes.
	ErrMalformedPayload = errors.New("malformed market-data payload")
	// ErrEmptySeries is returned when a success payload holds no rows.
	ErrEmptySeries = errors.New("market-data time series is empty")
)

const (
	keyErrorMessage = "Error Message"
	keyMetaData     = "Meta Data"
	seriesKeyPrefix = "Time Series"
	quotaMarker     = "Thank you"
)

// The quota message arrives under "Note" (and under "Information" in newer API versions).
var quotaKeys = []string{"Note", "Information"}

var fieldPrefix = regexp.MustCompile(`^\d+\.\s*`)

// Classify inspects a raw body without decoding it fully.
func Classify(raw []byte) (Kind, error) {
	if !gjson.ValidBytes(raw) {
		return 0, fmt.Errorf("%w: invalid json", ErrMalformedPayload)
	}
	root := gjson.ParseBytes(raw)
	if !root.IsObject() {
		return 0, fmt.Errorf("%w: top level is not an object", ErrMalformedPayload)
	}

	for _, key := range quotaKeys {
		if v := root.Get(key); v.Type == gjson.String && strings.Contains(v.Str, quotaMarker) {
			return KindQuotaExceeded, nil
		}
	}
	if root.Get(keyErrorMessage).Exists() {
		return KindErrorMessage, nil
	}
	if root.Get(keyMetaData).IsObject() && seriesObject(root, "").IsObject() {
		return KindSuccess, nil
	}
	return 0, fmt.Errorf("%w: missing %q or time series", ErrMalformedPayload, keyMetaData)
}

// Normalize turns a success payload into a SymbolSeries.
//
// Rows keep the document order of the time-series object; the API's numeric
// prefixes are stripped from field names ("1. open" → "open") and date_time is
// appended holding each row's timestamp key. The symbol is the canonical name
// from the metadata, which may differ from the requested spelling.
func Normalize(raw []byte, interval string) (*models.SymbolSeries, error) {
	root := gjson.ParseBytes(raw)

	symbol := metaSymbol(root.Get(keyMetaData))
	if symbol == "" {
		return nil, fmt.Errorf("%w: metadata has no symbol", ErrMalformedPayload)
	}

	series := seriesObject(root, interval)
	if !series.IsObject() {
		return nil, fmt.Errorf("%w: %s: no time series", ErrMalformedPayload, symbol)
	}

	type sample struct {
		timestamp string
		values    map[string]string
	}

	var (
		fields  []string
		seen    = map[string]bool{}
		samples []sample
		bad     error
	)
	series.ForEach(func(ts, row gjson.Result) bool {
		if !row.IsObject() {
			bad = fmt.Errorf("%w: %s: row %q is not an object", ErrMalformedPayload, symbol, ts.String())
			return false
		}
		s := sample{timestamp: ts.String(), values: map[string]string{}}
		row.ForEach(func(k, v gjson.Result) bool {
			name := FieldName(k.String())
			if !seen[name] {
				seen[name] = true
				fields = append(fields, name)
			}
			s.values[name] = v.String()
			return true
		})
		samples = append(samples, s)
		return true
	})
	if bad != nil {
		return nil, bad
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptySeries, symbol)
	}

	fields = append(fields, models.DateTimeField)
	rows := make([][]string, 0, len(samples))
	for _, s := range samples {
		row := make([]string, len(fields))
		for i, f := range fields[:len(fields)-1] {
			row[i] = s.values[f]
		}
		row[len(fields)-1] = s.timestamp
		rows = append(rows, row)
	}

	return &models.SymbolSeries{Symbol: symbol, Fields: fields, Rows: rows}, nil
}

// FieldName strips the API's "N. " ordering prefix.
func FieldName(key string) string {
	return fieldPrefix.ReplaceAllString(key, "")
}

// seriesObject finds "Time Series (<interval>)", falling back to the first
// "Time Series ..." key when the interval is empty or does not match.
func seriesObject(root gjson.Result, interval string) gjson.Result {
	want := seriesKeyPrefix + " (" + interval + ")"
	var exact, first gjson.Result
	root.ForEach(func(k, v gjson.Result) bool {
		key := k.String()
		if interval != "" && key == want {
			exact = v
			return false
		}
		if !first.Exists() && strings.HasPrefix(key, seriesKeyPrefix) {
			first = v
		}
		return true
	})
	if exact.Exists() {
		return exact
	}
	return first
}

func metaSymbol(meta gjson.Result) string {
	var symbol string
	meta.ForEach(func(k, v gjson.Result) bool {
		if strings.EqualFold(FieldName(k.String()), "symbol") {
			symbol = v.String()
			return false
		}
		return true
	})
	return symbol
}

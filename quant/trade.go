package quant

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/theapemachine/errnie"
)

var (
	// ErrEmpty is returned for a file with a header and no rows.
	ErrEmpty = errors.New("returns file is empty")
	// ErrMissingColumns is returned when a required column is absent.
	ErrMissingColumns = errors.New("returns file missing columns")
)

// Required CSV columns.
const (
	ColumnTimestamp = "Timestamp"
	ColumnROI       = "Rebated_ROI"
	ColumnProfit    = "Rebated_Net_Profit"
	ColumnSymbol    = "Symbol"
)

var requiredColumns = []string{ColumnProfit, ColumnROI, ColumnSymbol, ColumnTimestamp}

// Trade is one closed position.
type Trade struct {
	Timestamp time.Time
	ROI       float64 // fractional, 0.01 is 1%
	NetProfit float64
	Symbol    string
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04",
	"2006-01-02",
}

// parseTimestamp accepts the usual ISO-8601 spellings. Values without a
// zone are taken as UTC.
func parseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", s)
}

/*
Load reads trades from CSV with a header row. Columns are matched by name,
extra columns are ignored, and the result is sorted by timestamp with ties
kept in file order.
*/
func Load(r io.Reader) ([]Trade, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}

	var missing []string
	for _, name := range requiredColumns {
		if _, ok := index[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}

	var trades []Trade
	for line := 2; ; line++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		trade, err := parseRow(row, index)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		trades = append(trades, trade)
	}

	if len(trades) == 0 {
		return nil, ErrEmpty
	}

	sort.SliceStable(trades, func(i, j int) bool {
		return trades[i].Timestamp.Before(trades[j].Timestamp)
	})

	errnie.Info("Load - %d trades", len(trades))
	return trades, nil
}

func parseRow(row []string, index map[string]int) (Trade, error) {
	field := func(name string) string {
		return strings.TrimSpace(row[index[name]])
	}

	ts, err := parseTimestamp(field(ColumnTimestamp))
	if err != nil {
		return Trade{}, err
	}

	roi, err := strconv.ParseFloat(field(ColumnROI), 64)
	if err != nil {
		return Trade{}, fmt.Errorf("%s: %w", ColumnROI, err)
	}

	profit, err := strconv.ParseFloat(field(ColumnProfit), 64)
	if err != nil {
		return Trade{}, fmt.Errorf("%s: %w", ColumnProfit, err)
	}

	return Trade{
		Timestamp: ts,
		ROI:       roi,
		NetProfit: profit,
		Symbol:    field(ColumnSymbol),
	}, nil
}

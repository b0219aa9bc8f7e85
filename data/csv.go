package data

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// supported timestamp layouts for CSV data
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// SeriesFromCSV loads a candle series from a CSV file. The header must
// contain timestamp, open, high, low, close and volume columns in any
// order, extra columns are ignored. A missing required column fails with
// ErrMissingColumn before any bar is parsed
func SeriesFromCSV(symbol, path string) (*Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("could not read header of %v: %w", path, err)
	}

	cols := make(map[string]int, len(header))
	for i := range header {
		cols[strings.ToLower(strings.TrimSpace(header[i]))] = i
	}
	tsCol, ok := cols["timestamp"]
	if !ok {
		if tsCol, ok = cols["date"]; !ok {
			return nil, fmt.Errorf("%w: timestamp", ErrMissingColumn)
		}
	}
	for _, col := range requiredColumns {
		if _, ok := cols[col]; !ok {
			return nil, fmt.Errorf("%w: %v", ErrMissingColumn, col)
		}
	}

	var bars []Bar
	for line := 2; ; line++ {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%v line %d: %w", path, line, err)
		}
		ts, err := parseTime(record[tsCol])
		if err != nil {
			return nil, fmt.Errorf("%v line %d: %w", path, line, err)
		}
		bar := Bar{Symbol: symbol, Time: ts}
		for col, dst := range map[string]*float64{
			"open":   &bar.Open,
			"high":   &bar.High,
			"low":    &bar.Low,
			"close":  &bar.Close,
			"volume": &bar.Volume,
		} {
			v, err := strconv.ParseFloat(strings.TrimSpace(record[cols[col]]), 64)
			if err != nil {
				return nil, fmt.Errorf("%v line %d column %v: %w", path, line, col, err)
			}
			*dst = v
		}
		bars = append(bars, bar)
	}

	return NewSeries(symbol, bars)
}

func parseTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", value)
}

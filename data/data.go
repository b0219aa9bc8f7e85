package data

import (
	"sort"
	"time"
)

// NewSeries creates a sorted series for a symbol from a slice of bars
func NewSeries(symbol string, bars []Bar) (*Series, error) {
	if len(bars) == 0 {
		return nil, ErrNoCandleData
	}
	sorted := make([]Bar, len(bars))
	copy(sorted, bars)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Time.Before(sorted[j].Time)
	})
	for i := range sorted {
		sorted[i].Symbol = symbol
	}
	return &Series{symbol: symbol, bars: sorted}, nil
}

// Symbol returns the symbol the series belongs to
func (s *Series) Symbol() string {
	return s.symbol
}

// Len returns the number of bars held
func (s *Series) Len() int {
	return len(s.bars)
}

// Bars returns the underlying bar slice
func (s *Series) Bars() []Bar {
	return s.bars
}

// First returns the earliest bar
func (s *Series) First() Bar {
	return s.bars[0]
}

// Last returns the most recent bar
func (s *Series) Last() Bar {
	return s.bars[len(s.bars)-1]
}

// At returns the bar with the exact timestamp t
func (s *Series) At(t time.Time) (Bar, bool) {
	i := sort.Search(len(s.bars), func(i int) bool {
		return !s.bars[i].Time.Before(t)
	})
	if i < len(s.bars) && s.bars[i].Time.Equal(t) {
		return s.bars[i], true
	}
	return Bar{}, false
}

// Window returns the view of the series visible at time t, every bar
// with a timestamp at or before t and nothing later. A nil return means
// no data is visible yet
func (s *Series) Window(t time.Time) *Series {
	i := sort.Search(len(s.bars), func(i int) bool {
		return s.bars[i].Time.After(t)
	})
	if i == 0 {
		return nil
	}
	return &Series{symbol: s.symbol, bars: s.bars[:i]}
}

// Truncate returns a series restricted to [start, end]. Zero times leave
// the respective bound open
func (s *Series) Truncate(start, end time.Time) *Series {
	bars := s.bars
	if !start.IsZero() {
		i := sort.Search(len(bars), func(i int) bool {
			return !bars[i].Time.Before(start)
		})
		bars = bars[i:]
	}
	if !end.IsZero() {
		i := sort.Search(len(bars), func(i int) bool {
			return bars[i].Time.After(end)
		})
		bars = bars[:i]
	}
	return &Series{symbol: s.symbol, bars: bars}
}

// Closes returns the close price stream
func (s *Series) Closes() []float64 {
	ret := make([]float64, len(s.bars))
	for x := range s.bars {
		ret[x] = s.bars[x].Close
	}
	return ret
}

// Timestamps returns every bar timestamp in order
func (s *Series) Timestamps() []time.Time {
	ret := make([]time.Time, len(s.bars))
	for x := range s.bars {
		ret[x] = s.bars[x].Time
	}
	return ret
}

// NewStore returns an empty store
func NewStore() *Store {
	return &Store{series: make(map[string]*Series)}
}

// Add registers a series under its symbol, replacing any previous entry
func (s *Store) Add(series *Series) error {
	if series == nil || series.Len() == 0 {
		return ErrNoCandleData
	}
	s.series[series.Symbol()] = series
	return nil
}

// Get returns the series for a symbol
func (s *Store) Get(symbol string) (*Series, error) {
	series, ok := s.series[symbol]
	if !ok {
		return nil, ErrSymbolNotFound
	}
	return series, nil
}

// Len returns the number of registered symbols
func (s *Store) Len() int {
	return len(s.series)
}

// Symbols returns all registered symbols sorted alphabetically
func (s *Store) Symbols() []string {
	ret := make([]string, 0, len(s.series))
	for symbol := range s.series {
		ret = append(ret, symbol)
	}
	sort.Strings(ret)
	return ret
}

// Timestamps returns the sorted union of distinct timestamps across all
// registered series. This drives the engine's replay loop
func (s *Store) Timestamps() []time.Time {
	seen := make(map[int64]struct{})
	var ret []time.Time
	for _, series := range s.series {
		for i := range series.bars {
			key := series.bars[i].Time.UnixNano()
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			ret = append(ret, series.bars[i].Time)
		}
	}
	sort.Slice(ret, func(i, j int) bool {
		return ret[i].Before(ret[j])
	})
	return ret
}

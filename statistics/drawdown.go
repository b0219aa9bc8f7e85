package statistics

// calculateDrawdownMetrics derives the drawdown series from the running
// peak of the equity curve and segments it into contiguous sub-zero runs
func (a *Analyzer) calculateDrawdownMetrics(m *Metrics, equity []EquityPoint) {
	if len(equity) == 0 {
		return
	}

	drawdowns := make([]float64, len(equity))
	peaks := make([]float64, len(equity))
	peak := equity[0].Value
	for i := range equity {
		if equity[i].Value > peak {
			peak = equity[i].Value
		}
		peaks[i] = peak
		if peak != 0 {
			drawdowns[i] = (equity[i].Value - peak) / peak
		}
	}

	maxIdx := 0
	for i := range drawdowns {
		if drawdowns[i] < drawdowns[maxIdx] {
			maxIdx = i
		}
	}
	m.MaxDrawdown = drawdowns[maxIdx]
	m.MaxDrawdownDate = equity[maxIdx].Time
	m.CurrentDrawdown = drawdowns[len(drawdowns)-1]
	m.maxDrawdownPeak = peaks[maxIdx]
	m.maxDrawdownTrough = equity[maxIdx].Value

	// a period opens when drawdown turns negative and closes on the
	// recovery to the prior peak. A run still open at the end of the
	// curve is not counted as a completed period
	var periods []DrawdownPeriod
	inDrawdown := false
	var current DrawdownPeriod
	for i := range drawdowns {
		switch {
		case drawdowns[i] < 0 && !inDrawdown:
			inDrawdown = true
			current = DrawdownPeriod{Start: equity[i].Time, MaxDrawdown: drawdowns[i]}
		case drawdowns[i] < 0 && inDrawdown:
			if drawdowns[i] < current.MaxDrawdown {
				current.MaxDrawdown = drawdowns[i]
			}
		case drawdowns[i] >= 0 && inDrawdown:
			inDrawdown = false
			current.End = equity[i].Time
			current.DurationDays = int(current.End.Sub(current.Start).Hours() / 24)
			periods = append(periods, current)
		}
	}

	m.Drawdowns = periods
	m.DrawdownPeriods = len(periods)
	if len(periods) == 0 {
		return
	}
	var totalDuration int
	for i := range periods {
		totalDuration += periods[i].DurationDays
		if periods[i].DurationDays > m.MaxDrawdownDuration {
			m.MaxDrawdownDuration = periods[i].DurationDays
		}
	}
	m.AvgDrawdownDuration = float64(totalDuration) / float64(len(periods))
}

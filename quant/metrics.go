package quant

import (
	"math"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

const (
	hoursPerYear = 24 * 365
	minSpan      = time.Minute
)

// Report holds the dashboard statistics for a trade sequence. Ratios that
// cannot be formed are NaN, and ProfitFactor is +Inf without losses.
type Report struct {
	TradeCount    int
	Wins          int
	Losses        int
	TotalReturn   float64
	WinRate       float64
	ProfitFactor  float64
	MeanROI       float64
	TradesPerYear float64
	AnnualReturn  float64
	MonthlyReturn float64
	Sharpe        float64
	Sortino       float64
	MaxDrawdown   float64
	DurationHours float64
	LastTrade     time.Time
	Series        []Point
	Months        []MonthReturn
}

// Point is one trade on the cumulative curve.
type Point struct {
	Trade         int       `json:"trade"`
	Timestamp     time.Time `json:"timestamp"`
	Symbol        string    `json:"symbol"`
	ROI           float64   `json:"roi"`
	ROIPct        float64   `json:"roi_pct"`
	Cumulative    float64   `json:"cumulative"`
	CumulativePct float64   `json:"cumulative_pct"`
}

// MonthReturn is the summed ROI of one calendar month.
type MonthReturn struct {
	Month  string
	Return float64
}

// Compute derives the report from trades sorted by timestamp. Returns are
// simple: the cumulative curve is the running sum of ROI.
func Compute(trades []Trade) Report {
	n := len(trades)
	rep := Report{
		TradeCount: n,
		Sharpe:     math.NaN(),
		Sortino:    math.NaN(),
	}

	roi := make([]float64, n)
	for i, t := range trades {
		roi[i] = t.ROI
	}
	cumulative := floats.CumSum(make([]float64, n), roi)

	rep.DurationHours, rep.TradesPerYear = span(trades)

	var gains, losses float64
	var downside []float64
	for _, r := range roi {
		switch {
		case r > 0:
			rep.Wins++
			gains += r
		case r < 0:
			losses += r
			downside = append(downside, r)
		}
	}
	rep.Losses = n - rep.Wins

	rep.ProfitFactor = math.Inf(1)
	if losses != 0 {
		rep.ProfitFactor = gains / math.Abs(losses)
	}

	if n == 0 {
		return rep
	}

	rep.TotalReturn = cumulative[n-1]
	rep.WinRate = float64(rep.Wins) / float64(n)
	rep.MeanROI = stat.Mean(roi, nil)
	rep.AnnualReturn = rep.MeanROI * rep.TradesPerYear
	rep.MonthlyReturn = rep.AnnualReturn / 12
	rep.LastTrade = trades[n-1].Timestamp

	annualised := rep.MeanROI * math.Sqrt(rep.TradesPerYear)
	if sd := popStdDev(roi); sd > 0 && rep.TradesPerYear > 0 {
		rep.Sharpe = annualised / sd
	}
	if sd := popStdDev(downside); sd > 0 && rep.TradesPerYear > 0 {
		rep.Sortino = annualised / sd
	}

	rep.MaxDrawdown = maxDrawdown(cumulative)
	rep.Series = series(trades, cumulative)
	rep.Months = months(trades)

	return rep
}

// span is the covered time, floored at one minute, and the trade frequency
// it implies.
func span(trades []Trade) (hours, perYear float64) {
	if len(trades) == 0 {
		return 0, 0
	}

	d := trades[len(trades)-1].Timestamp.Sub(trades[0].Timestamp)
	if d < minSpan {
		d = minSpan
	}
	hours = d.Hours()
	years := math.Max(hours/hoursPerYear, 1.0/hoursPerYear)

	return hours, float64(len(trades)) / years
}

// popStdDev is the population (ddof=0) standard deviation; fewer than two
// values have none.
func popStdDev(x []float64) float64 {
	if len(x) < 2 {
		return 0
	}
	return math.Sqrt(stat.PopVariance(x, nil))
}

// maxDrawdown is the deepest fall of the curve below its running maximum,
// as a non-positive number.
func maxDrawdown(curve []float64) float64 {
	var worst float64
	peak := math.Inf(-1)
	for _, v := range curve {
		peak = math.Max(peak, v)
		worst = math.Min(worst, v-peak)
	}
	return worst
}

func series(trades []Trade, cumulative []float64) []Point {
	out := make([]Point, len(trades))
	for i, t := range trades {
		out[i] = Point{
			Trade:         i + 1,
			Timestamp:     t.Timestamp,
			Symbol:        t.Symbol,
			ROI:           t.ROI,
			ROIPct:        t.ROI * 100,
			Cumulative:    cumulative[i],
			CumulativePct: cumulative[i] * 100,
		}
	}
	return out
}

// months sums ROI per calendar month in chronological order.
func months(trades []Trade) []MonthReturn {
	var out []MonthReturn
	seen := make(map[string]int)
	for _, t := range trades {
		label := t.Timestamp.Format("Jan 2006")
		i, ok := seen[label]
		if !ok {
			i = len(out)
			seen[label] = i
			out = append(out, MonthReturn{Month: label})
		}
		out[i].Return += t.ROI
	}
	return out
}

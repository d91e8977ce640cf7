package quant

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Card is one formatted dashboard tile.
type Card struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Note  string `json:"note"`
}

// Month is a formatted monthly row.
type Month struct {
	Month  string `json:"month"`
	Return string `json:"return"`
}

// Overview summarises the data set for the page header.
type Overview struct {
	TradeCount   int     `json:"trade_count"`
	DurationDays float64 `json:"duration_days"`
	LastUpdated  string  `json:"last_updated"`
}

var printer = message.NewPrinter(language.English)

func pct(v float64, digits int) string {
	return fmt.Sprintf("%.*f%%", digits, v*100)
}

func ratio(v float64) string {
	if math.IsNaN(v) {
		return "N/A"
	}
	return fmt.Sprintf("%.2f", v)
}

// Cards renders the headline metrics.
func (r Report) Cards() []Card {
	factor := "∞"
	if !math.IsInf(r.ProfitFactor, 0) {
		factor = fmt.Sprintf("%.2f", r.ProfitFactor)
	}

	return []Card{
		{Label: "Total trades", Value: printer.Sprintf("%d", r.TradeCount), Note: fmt.Sprintf("over %.1f days", r.DurationHours/24)},
		{Label: "Cumulative return", Value: pct(r.TotalReturn, 2), Note: "simple"},
		{Label: "Win rate", Value: pct(r.WinRate, 1), Note: fmt.Sprintf("%d won / %d lost", r.Wins, r.Losses)},
		{Label: "Profit factor", Value: factor, Note: "gross gain / gross loss"},
		{Label: "Monthly return", Value: pct(r.MonthlyReturn, 2), Note: "from trade frequency"},
		{Label: "Annual return", Value: pct(r.AnnualReturn, 2), Note: "from trade frequency"},
		{Label: "Sharpe Ratio", Value: ratio(r.Sharpe), Note: "annualised"},
		{Label: "Sortino Ratio", Value: ratio(r.Sortino), Note: "annualised"},
		{Label: "Max Drawdown", Value: pct(r.MaxDrawdown, 2), Note: "deepest fall"},
	}
}

// MonthlyTable renders per-month returns.
func (r Report) MonthlyTable() []Month {
	out := make([]Month, len(r.Months))
	for i, m := range r.Months {
		out[i] = Month{Month: m.Month, Return: pct(m.Return, 2)}
	}
	return out
}

func (r Report) Overview() Overview {
	o := Overview{
		TradeCount:   r.TradeCount,
		DurationDays: math.Round(r.DurationHours/24*10) / 10,
	}
	if !r.LastTrade.IsZero() {
		o.LastUpdated = r.LastTrade.Format("2006-01-02")
	}
	return o
}

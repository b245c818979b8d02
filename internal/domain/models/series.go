package models

import "time"

// Bar is one OHLCV observation in a price series.
type Bar struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// PriceSeries is an ordered OHLCV history for one asset, strictly
// increasing by date with no duplicates. The technical calculator only
// reads it; ownership stays with the caller.
type PriceSeries struct {
	Symbol string `json:"symbol"`
	Source string `json:"source"`
	Bars   []Bar  `json:"bars"`
}

// Closes extracts the close column.
func (s PriceSeries) Closes() []float64 {
	out := make([]float64, len(s.Bars))
	for i := range s.Bars {
		out[i] = s.Bars[i].Close
	}
	return out
}

// Len returns the number of bars.
func (s PriceSeries) Len() int { return len(s.Bars) }

// Measure is a technical indicator output with an availability flag.
// Unavailable means the series is too short, not that the value is zero.
type Measure struct {
	Value     float64 `json:"value"`
	Available bool    `json:"available"`
}

// RSIZone labels an RSI reading.
type RSIZone string

const (
	RSIOversold   RSIZone = "oversold"
	RSIOverbought RSIZone = "overbought"
	RSINeutral    RSIZone = "neutral"
)

// TechnicalSummary holds the derived analytics for one asset, each
// output flagged available or not depending on series length.
type TechnicalSummary struct {
	Symbol         string    `json:"symbol"`
	AsOf           time.Time `json:"as_of"`
	LastClose      float64   `json:"last_close"`
	ChangePct      Measure   `json:"change_pct"`
	SMA20          Measure   `json:"sma_20"`
	SMA50          Measure   `json:"sma_50"`
	SMA100         Measure   `json:"sma_100"`
	SMA200         Measure   `json:"sma_200"`
	RSI14          Measure   `json:"rsi_14"`
	RSIZone        RSIZone   `json:"rsi_zone,omitempty"`
	Drawdown       Measure   `json:"drawdown_pct"`
	Volatility20   Measure   `json:"volatility_20d_pct"`
	BarsConsidered int       `json:"bars_considered"`
}

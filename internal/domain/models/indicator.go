package models

import "time"

// IndicatorName identifies one of the six tracked valuation indicators.
type IndicatorName string

const (
	IndicatorCAPE          IndicatorName = "cape"
	IndicatorPERatio       IndicatorName = "pe_ratio"
	IndicatorBuffett       IndicatorName = "buffett"
	IndicatorMarginDebt    IndicatorName = "margin_debt"
	IndicatorConcentration IndicatorName = "concentration"
	IndicatorSentiment     IndicatorName = "sentiment"
)

// IndicatorNames lists every known indicator in display order.
var IndicatorNames = []IndicatorName{
	IndicatorCAPE,
	IndicatorPERatio,
	IndicatorBuffett,
	IndicatorMarginDebt,
	IndicatorConcentration,
	IndicatorSentiment,
}

// IsValid reports whether the name belongs to the fixed enumeration.
func (n IndicatorName) IsValid() bool {
	switch n {
	case IndicatorCAPE, IndicatorPERatio, IndicatorBuffett,
		IndicatorMarginDebt, IndicatorConcentration, IndicatorSentiment:
		return true
	}
	return false
}

// State is the traffic-light classification of an indicator reading.
type State string

const (
	StateGreen  State = "green"
	StateYellow State = "yellow"
	StateRed    State = "red"
)

// IndicatorReading is one snapshot of a named indicator. Constructed
// fresh by a provider on each refresh and immutable afterwards.
type IndicatorReading struct {
	Name       IndicatorName `json:"name"`
	Value      float64       `json:"value"`
	Source     string        `json:"source"`
	ObservedAt time.Time     `json:"observed_at"`

	// Optional historical series, populated only when a chart is requested.
	Series []SeriesPoint `json:"series,omitempty"`

	// Per-indicator auxiliary fields. Each indicator fills its own subset.
	Percentile   *float64 `json:"percentile,omitempty"`     // cape
	IndexPrice   *float64 `json:"index_price,omitempty"`    // pe_ratio
	MarketCap    *float64 `json:"market_cap,omitempty"`     // buffett, billions USD
	GDP          *float64 `json:"gdp,omitempty"`            // buffett, billions USD
	VIX          *float64 `json:"vix,omitempty"`            // sentiment
	PutCallRatio *float64 `json:"put_call_ratio,omitempty"` // sentiment
	HYSpread     *float64 `json:"hy_spread,omitempty"`      // sentiment, basis points
}

// SeriesPoint is one dated observation in an indicator's history.
type SeriesPoint struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// ClassifiedIndicator pairs a reading with its derived state. The state
// is recomputed from the reading on every refresh, never cached.
type ClassifiedIndicator struct {
	Reading     IndicatorReading `json:"reading"`
	State       State            `json:"state"`
	Description string           `json:"description,omitempty"`
}

// Float64Ptr returns a pointer to v, for the optional reading fields.
func Float64Ptr(v float64) *float64 { return &v }

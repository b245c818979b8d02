package scoring

import "MarketPulse/internal/domain/models"

// band describes one contiguous classification rule evaluated in order.
// The first matching band wins, so together the bands of an indicator
// cover the full real line with no gaps or overlaps.
type band struct {
	state models.State
	match func(v float64) bool
}

// thresholds maps each indicator to its ordered bands. All indicators
// except sentiment are monotonic (higher = worse). Sentiment is
// contrarian: extreme fear is a buy signal (green), extreme greed a
// top signal (red).
var thresholds = map[models.IndicatorName][]band{
	models.IndicatorCAPE: {
		{models.StateGreen, func(v float64) bool { return v < 20 }},
		{models.StateYellow, func(v float64) bool { return v < 30 }},
		{models.StateRed, always},
	},
	models.IndicatorPERatio: {
		{models.StateGreen, func(v float64) bool { return v < 18 }},
		{models.StateYellow, func(v float64) bool { return v < 24 }},
		{models.StateRed, always},
	},
	models.IndicatorBuffett: {
		{models.StateGreen, func(v float64) bool { return v < 120 }},
		{models.StateYellow, func(v float64) bool { return v < 150 }},
		{models.StateRed, always},
	},
	models.IndicatorMarginDebt: {
		{models.StateGreen, func(v float64) bool { return v <= 0 }},
		{models.StateYellow, func(v float64) bool { return v <= 10 }},
		{models.StateRed, always},
	},
	models.IndicatorConcentration: {
		{models.StateGreen, func(v float64) bool { return v < 25 }},
		{models.StateYellow, func(v float64) bool { return v < 35 }},
		{models.StateRed, always},
	},
	models.IndicatorSentiment: {
		{models.StateGreen, func(v float64) bool { return v <= 25 }},
		{models.StateYellow, func(v float64) bool { return v < 75 }},
		{models.StateRed, always},
	},
}

func always(float64) bool { return true }

// Descriptions for the presentation layer, keyed by indicator and state.
var descriptions = map[models.IndicatorName]map[models.State]string{
	models.IndicatorCAPE: {
		models.StateGreen:  "Undervalued",
		models.StateYellow: "Fairly valued",
		models.StateRed:    "Overvalued",
	},
	models.IndicatorPERatio: {
		models.StateGreen:  "Undervalued",
		models.StateYellow: "Fairly valued",
		models.StateRed:    "Overvalued",
	},
	models.IndicatorBuffett: {
		models.StateGreen:  "Undervalued",
		models.StateYellow: "Fairly valued",
		models.StateRed:    "Overvalued",
	},
	models.IndicatorMarginDebt: {
		models.StateGreen:  "Decreasing leverage",
		models.StateYellow: "Moderate growth",
		models.StateRed:    "Rapid leverage growth",
	},
	models.IndicatorConcentration: {
		models.StateGreen:  "Diversified market",
		models.StateYellow: "Moderate concentration",
		models.StateRed:    "High concentration",
	},
	models.IndicatorSentiment: {
		models.StateGreen:  "Extreme fear (contrarian opportunity)",
		models.StateYellow: "Neutral sentiment",
		models.StateRed:    "Extreme greed (potential top)",
	},
}

// Describe returns the human label for an indicator state.
func Describe(name models.IndicatorName, state models.State) string {
	if m, ok := descriptions[name]; ok {
		return m[state]
	}
	return ""
}

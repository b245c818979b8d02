package scoring

import (
	"time"

	"MarketPulse/internal/domain/models"
)

// State proxies for the valuation score. The three-level quantization
// is a deliberate policy choice, not an approximation.
const (
	proxyGreen  = 25.0
	proxyYellow = 50.0
	proxyRed    = 75.0

	// neutralScore is the documented fallback when no indicator
	// produced a valid reading; the composite must stay displayable.
	neutralScore = 50.0
)

// Composite score bucket boundaries.
const (
	undervaluedMax = 30.0
	overvaluedMin  = 70.0
	bearishMax     = 40.0
	bullishMin     = 60.0
)

// ScoreValuation averages the state proxies of the classified
// indicators. Missing indicators are simply absent from the input.
func ScoreValuation(classified []models.ClassifiedIndicator) float64 {
	if len(classified) == 0 {
		return neutralScore
	}
	sum := 0.0
	for _, ci := range classified {
		switch ci.State {
		case models.StateGreen:
			sum += proxyGreen
		case models.StateYellow:
			sum += proxyYellow
		default:
			sum += proxyRed
		}
	}
	return sum / float64(len(classified))
}

// ValuationBucket labels the valuation-score axis of the action matrix.
func ValuationBucket(score float64) string {
	switch {
	case score <= undervaluedMax:
		return "Undervalued"
	case score >= overvaluedMin:
		return "Overvalued"
	default:
		return "Fair Value"
	}
}

// TrendBucket labels the trend-score axis of the action matrix.
func TrendBucket(score float64) string {
	switch {
	case score <= bearishMax:
		return "Bearish"
	case score >= bullishMin:
		return "Bullish"
	default:
		return "Neutral"
	}
}

// DecideAction resolves the 3x3 valuation x trend policy matrix.
// Overvalued+Bullish resolves to Wait, not Trim: overvaluation is not
// acted on while the trend is still strongly positive.
func DecideAction(valuationScore, trendScore float64) models.Action {
	switch ValuationBucket(valuationScore) {
	case "Undervalued":
		return models.ActionAccumulate
	case "Overvalued":
		if TrendBucket(trendScore) == "Bullish" {
			return models.ActionWait
		}
		return models.ActionTrim
	default:
		return models.ActionNeutral
	}
}

// Compose builds the full composite from classified indicators and the
// externally supplied trend score.
func Compose(classified []models.ClassifiedIndicator, trendScore float64, now time.Time) models.CompositeScore {
	valuation := ScoreValuation(classified)
	return models.CompositeScore{
		ValuationScore: valuation,
		TrendScore:     trendScore,
		Action:         DecideAction(valuation, trendScore),
		CalculatedAt:   now,
	}
}

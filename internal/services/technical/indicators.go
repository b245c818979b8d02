package technical

import (
	"math"
	"time"

	"MarketPulse/internal/domain/models"
)

const (
	// RSIPeriod is the standard lookback for the relative strength index.
	RSIPeriod = 14

	// DrawdownWindow is one year of trading days for the rolling peak.
	DrawdownWindow = 252

	// VolatilityWindow is the trailing window for realized volatility.
	VolatilityWindow = 20

	// tradingDaysPerYear annualizes daily volatility.
	tradingDaysPerYear = 252
)

// SMAWindows are the moving averages the dashboard displays.
var SMAWindows = []int{20, 50, 100, 200}

// SMA computes the simple moving average of the last window closes.
// Returns false when the series is shorter than the window.
func SMA(closes []float64, window int) (float64, bool) {
	if window <= 0 || len(closes) < window {
		return 0, false
	}
	sum := 0.0
	for i := len(closes) - window; i < len(closes); i++ {
		sum += closes[i]
	}
	return sum / float64(window), true
}

// RSI computes the relative strength index over the trailing period
// deltas: average gain over average loss mapped to 100 - 100/(1+rs).
// Needs period+1 closes. A lossless window returns 100, a gainless
// window 0.
func RSI(closes []float64, period int) (float64, bool) {
	if period <= 0 || len(closes) < period+1 {
		return 0, false
	}
	var gainSum, lossSum float64
	for i := len(closes) - period; i < len(closes); i++ {
		delta := closes[i] - closes[i-1]
		if delta > 0 {
			gainSum += delta
		} else {
			lossSum -= delta
		}
	}
	avgGain := gainSum / float64(period)
	avgLoss := lossSum / float64(period)
	if avgLoss == 0 {
		if avgGain == 0 {
			return 50, true
		}
		return 100, true
	}
	rs := avgGain / avgLoss
	return 100 - 100/(1+rs), true
}

// ClassifyRSI labels an RSI value per the usual 30/70 zones.
func ClassifyRSI(rsi float64) models.RSIZone {
	switch {
	case rsi < 30:
		return models.RSIOversold
	case rsi > 70:
		return models.RSIOverbought
	default:
		return models.RSINeutral
	}
}

// Drawdown computes the latest percent distance from the rolling peak
// over the trailing window (capped by available history, min one bar).
// The figure is only considered meaningful with a full window of
// history, so availability requires len(closes) >= window.
func Drawdown(closes []float64, window int) (float64, bool) {
	if window <= 0 || len(closes) < window {
		return 0, false
	}
	peak := rollingMax(closes, window)
	if peak <= 0 {
		return 0, false
	}
	last := closes[len(closes)-1]
	return (last - peak) / peak * 100, true
}

// DrawdownSeries computes the full drawdown curve with the rolling
// window capped by available history (min-periods = 1).
func DrawdownSeries(closes []float64, window int) []float64 {
	out := make([]float64, len(closes))
	for i := range closes {
		lo := i - window + 1
		if lo < 0 {
			lo = 0
		}
		peak := closes[lo]
		for j := lo + 1; j <= i; j++ {
			if closes[j] > peak {
				peak = closes[j]
			}
		}
		if peak > 0 {
			out[i] = (closes[i] - peak) / peak * 100
		}
	}
	return out
}

// RealizedVolatility computes the annualized sample standard deviation
// of daily percent returns over the trailing window, as a percent.
// Needs window+1 closes to form window returns.
func RealizedVolatility(closes []float64, window int) (float64, bool) {
	if window <= 1 || len(closes) < window+1 {
		return 0, false
	}
	returns := make([]float64, 0, window)
	for i := len(closes) - window; i < len(closes); i++ {
		prev := closes[i-1]
		if prev == 0 {
			return 0, false
		}
		returns = append(returns, (closes[i]-prev)/prev)
	}
	mean := 0.0
	for _, r := range returns {
		mean += r
	}
	mean /= float64(len(returns))
	variance := 0.0
	for _, r := range returns {
		d := r - mean
		variance += d * d
	}
	variance /= float64(len(returns) - 1)
	return math.Sqrt(variance) * math.Sqrt(tradingDaysPerYear) * 100, true
}

// ChangePct computes the percent change between the last two closes.
func ChangePct(closes []float64) (float64, bool) {
	n := len(closes)
	if n < 2 || closes[n-2] == 0 {
		return 0, false
	}
	return (closes[n-1] - closes[n-2]) / closes[n-2] * 100, true
}

func rollingMax(closes []float64, window int) float64 {
	lo := len(closes) - window
	if lo < 0 {
		lo = 0
	}
	peak := closes[lo]
	for _, v := range closes[lo+1:] {
		if v > peak {
			peak = v
		}
	}
	return peak
}

// Summarize computes every dashboard analytic for one series, flagging
// each output unavailable rather than guessing when history is short.
func Summarize(series models.PriceSeries, now time.Time) models.TechnicalSummary {
	closes := series.Closes()
	sum := models.TechnicalSummary{
		Symbol:         series.Symbol,
		AsOf:           now,
		BarsConsidered: len(closes),
	}
	if len(closes) == 0 {
		return sum
	}
	sum.LastClose = closes[len(closes)-1]

	sum.ChangePct = measure(ChangePct(closes))
	sum.SMA20 = measure(SMA(closes, 20))
	sum.SMA50 = measure(SMA(closes, 50))
	sum.SMA100 = measure(SMA(closes, 100))
	sum.SMA200 = measure(SMA(closes, 200))

	sum.RSI14 = measure(RSI(closes, RSIPeriod))
	if sum.RSI14.Available {
		sum.RSIZone = ClassifyRSI(sum.RSI14.Value)
	}

	sum.Drawdown = measure(Drawdown(closes, DrawdownWindow))
	sum.Volatility20 = measure(RealizedVolatility(closes, VolatilityWindow))
	return sum
}

func measure(v float64, ok bool) models.Measure {
	return models.Measure{Value: v, Available: ok}
}

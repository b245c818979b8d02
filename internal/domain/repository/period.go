package repository

import "time"

// Period represents a lookback window for historical series.
type Period string

const (
	Period1M Period = "1mo"
	Period3M Period = "3mo"
	Period6M Period = "6mo"
	Period1Y Period = "1y"
	Period2Y Period = "2y"
	Period5Y Period = "5y"
)

// IsValidPeriod returns true if p is a supported period.
func IsValidPeriod(p Period) bool {
	switch p {
	case Period1M, Period3M, Period6M, Period1Y, Period2Y, Period5Y:
		return true
	default:
		return false
	}
}

// DefaultPeriod returns the default lookback window.
func DefaultPeriod() Period { return Period1Y }

// NormalizePeriod converts a raw string to a valid period (or default).
func NormalizePeriod(s string) Period {
	if s == "" {
		return DefaultPeriod()
	}
	p := Period(s)
	if IsValidPeriod(p) {
		return p
	}
	return DefaultPeriod()
}

// Days returns the approximate calendar length of the period in days.
func (p Period) Days() int {
	switch p {
	case Period1M:
		return 30
	case Period3M:
		return 91
	case Period6M:
		return 182
	case Period2Y:
		return 730
	case Period5Y:
		return 1825
	default:
		return 365
	}
}

// Duration returns the period as a time.Duration.
func (p Period) Duration() time.Duration {
	return time.Duration(p.Days()) * 24 * time.Hour
}

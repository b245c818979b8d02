package marketdata

import "context"

// StaticTrendSource serves a configured trend score. Trend is an input
// to the composite, not something derived from the valuation
// indicators, so a fixed configured value is a valid source.
type StaticTrendSource struct {
	score float64
}

func NewStaticTrendSource(score float64) *StaticTrendSource {
	return &StaticTrendSource{score: score}
}

func (s *StaticTrendSource) TrendScore(_ context.Context) (float64, error) {
	return s.score, nil
}

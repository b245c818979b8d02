package scoring

import (
	"errors"
	"fmt"
	"math"

	"MarketPulse/internal/domain/models"
)

var (
	// ErrUnknownIndicator is returned when classification is requested
	// for a name outside the fixed enumeration.
	ErrUnknownIndicator = errors.New("scoring: unknown indicator")

	// ErrInvalidValue is returned for NaN or infinite readings.
	ErrInvalidValue = errors.New("scoring: non-finite value")
)

// Classify maps a raw indicator value to its traffic-light state using
// the static threshold bands. Pure function: same inputs always yield
// the same state.
func Classify(name models.IndicatorName, value float64) (models.State, error) {
	bands, ok := thresholds[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownIndicator, name)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return "", fmt.Errorf("%w: %s=%v", ErrInvalidValue, name, value)
	}
	for _, b := range bands {
		if b.match(value) {
			return b.state, nil
		}
	}
	// Unreachable: the last band of every indicator matches everything.
	return "", fmt.Errorf("%w: %s=%v uncovered", ErrInvalidValue, name, value)
}

// ClassifyReading classifies a full reading. A failed classification
// never aborts the caller's refresh cycle; the indicator is skipped.
func ClassifyReading(r models.IndicatorReading) (models.ClassifiedIndicator, error) {
	state, err := Classify(r.Name, r.Value)
	if err != nil {
		return models.ClassifiedIndicator{}, err
	}
	return models.ClassifiedIndicator{Reading: r, State: state, Description: Describe(r.Name, state)}, nil
}

package spinner

import (
	"errors"
	"fmt"
)

var (
	ErrNoSegments          = errors.New("wheel has no segments")
	ErrNoCallback          = errors.New("finished callback is required")
	ErrNegativeProbability = errors.New("segment probability must not be negative")
)

// Segment is one wedge of the wheel. Probability is a relative weight on a
// nominal 100-point scale.
type Segment struct {
	Name        string
	Color       string
	Probability float64
}

// ValidateSegments checks the segment list a wheel is built from.
func ValidateSegments(segments []Segment) error {
	if len(segments) == 0 {
		return ErrNoSegments
	}
	for i, s := range segments {
		if s.Probability < 0 {
			return fmt.Errorf("segment %d (%q): %w", i, s.Name, ErrNegativeProbability)
		}
		if _, err := ParseColor(s.Color); err != nil {
			return fmt.Errorf("segment %d (%q): %w", i, s.Name, err)
		}
	}
	return nil
}

// WeightSum returns the sum of all segment weights.
func WeightSum(segments []Segment) float64 {
	var sum float64
	for _, s := range segments {
		sum += s.Probability
	}
	return sum
}

package spinner

import (
	"math/rand/v2"
)

// Scale is the nominal total weight the selector draws against.
const Scale = 100.0

// RandomSource yields uniform values in [0, 1).
type RandomSource interface {
	Float64() float64
}

type globalSource struct{}

func (globalSource) Float64() float64 { return rand.Float64() }

// DefaultSource draws from the process-wide math/rand generator.
var DefaultSource RandomSource = globalSource{}

// NewSeededSource returns a reproducible source, mostly for tests and replays.
func NewSeededSource(seed uint64) RandomSource {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// FixedSource always returns the same draw. Value is on the [0, 100) scale.
type FixedSource float64

func (f FixedSource) Float64() float64 { return float64(f) / Scale }

// SelectWinner picks a segment name by walking the cumulative weights against
// a draw in [0, 100). Weights are not normalised: when no boundary covers the
// draw the first segment wins.
func SelectWinner(segments []Segment, rnd RandomSource) string {
	if len(segments) == 0 {
		return ""
	}
	return segments[selectIndex(segments, rnd)].Name
}

func selectIndex(segments []Segment, rnd RandomSource) int {
	if rnd == nil {
		rnd = DefaultSource
	}
	r := rnd.Float64() * Scale

	var cumulative float64
	for i, s := range segments {
		cumulative += s.Probability
		if r <= cumulative {
			return i
		}
	}
	return 0
}

// ExpectedShares returns the probability each segment actually wins with under
// SelectWinner, in percent like the weights. Under-summed weights push the remainder onto the
// first segment; anything past cumulative 100 is unreachable.
func ExpectedShares(segments []Segment) []float64 {
	shares := make([]float64, len(segments))
	if len(segments) == 0 {
		return shares
	}

	var prev float64
	for i, s := range segments {
		next := min(prev+s.Probability, Scale)
		shares[i] = next - prev
		prev = next
	}
	shares[0] += Scale - prev
	return shares
}

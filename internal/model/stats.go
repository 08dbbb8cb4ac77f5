package model

import "time"

// WheelStats compares what a wheel actually paid out against the odds its
// weights imply.
type WheelStats struct {
	WheelID    int64
	TotalSpins int
	WindowSize int
	Segments   []SegmentStats
	Drifting   bool
	Drifts     []DriftLog
}

type SegmentStats struct {
	Name string
	// Expected share from the selector, in percent.
	Expected float64
	// Observed share over the window, in percent.
	Observed float64
	Wins     int
}

// DriftLog records a check that found observed odds too far from expected.
type DriftLog struct {
	Timestamp time.Time
	Segment   string
	Expected  float64
	Observed  float64
	Spins     int
}

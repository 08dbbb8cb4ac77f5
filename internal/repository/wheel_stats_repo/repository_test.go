package wheel_stats_repo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	names    = []string{"A", "B"}
	expected = []float64{50, 50}
)

func TestStats_Empty(t *testing.T) {
	r := NewWheelStatsRepository(10, 5, 5)
	st := r.Stats(7)
	assert.Equal(t, int64(7), st.WheelID)
	assert.Zero(t, st.TotalSpins)
	assert.Equal(t, 10, st.WindowSize)
	assert.Empty(t, st.Segments)
	assert.False(t, r.CheckDrift(7))
}

func TestUpdateState_Window(t *testing.T) {
	r := NewWheelStatsRepository(4, 100, 5)
	for _, w := range []string{"A", "A", "B", "B", "B", "B"} {
		r.UpdateState(1, names, expected, w)
	}

	st := r.Stats(1)
	assert.Equal(t, 6, st.TotalSpins)
	require.Len(t, st.Segments, 2)
	// Only the last four spins are in the window.
	assert.Equal(t, 0, st.Segments[0].Wins)
	assert.Equal(t, 4, st.Segments[1].Wins)
	assert.InDelta(t, 100, st.Segments[1].Observed, 1e-9)
	assert.InDelta(t, 50, st.Segments[1].Expected, 1e-9)
}

func TestUpdateState_UnknownWinnerIgnored(t *testing.T) {
	r := NewWheelStatsRepository(4, 1, 5)
	r.UpdateState(1, names, expected, "Z")
	assert.Zero(t, r.Stats(1).TotalSpins)
}

func TestUpdateState_NewSegmentsResetWindow(t *testing.T) {
	r := NewWheelStatsRepository(10, 100, 5)
	r.UpdateState(1, names, expected, "A")
	r.UpdateState(1, names, expected, "A")
	r.UpdateState(1, []string{"A", "C"}, expected, "C")

	st := r.Stats(1)
	assert.Equal(t, 1, st.TotalSpins)
	assert.Equal(t, "C", st.Segments[1].Name)
	assert.Equal(t, 1, st.Segments[1].Wins)
}

func TestCheckDrift(t *testing.T) {
	r := NewWheelStatsRepository(10, 4, 5)
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return fixed }

	// Balanced outcomes: no drift at the check point.
	for _, w := range []string{"A", "B", "A", "B"} {
		r.UpdateState(1, names, expected, w)
	}
	assert.False(t, r.CheckDrift(1))

	// Checks only run every period spins.
	r.UpdateState(1, names, expected, "A")
	assert.False(t, r.CheckDrift(1))

	for _, w := range []string{"A", "A", "A"} {
		r.UpdateState(1, names, expected, w)
	}
	assert.True(t, r.CheckDrift(1))

	st := r.Stats(1)
	assert.True(t, st.Drifting)
	require.Len(t, st.Drifts, 1)
	d := st.Drifts[0]
	assert.Equal(t, fixed, d.Timestamp)
	assert.Equal(t, "A", d.Segment)
	assert.InDelta(t, 75, d.Observed, 1e-9)
	assert.Equal(t, 8, d.Spins)
}

func TestReset(t *testing.T) {
	r := NewWheelStatsRepository(10, 1, 5)
	r.UpdateState(1, names, expected, "A")
	r.Reset(1)
	assert.Zero(t, r.Stats(1).TotalSpins)
}

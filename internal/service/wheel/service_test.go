package wheel

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"reward_wheel/internal/model"
	"reward_wheel/internal/repository/wheel_stats_repo"
	"reward_wheel/internal/spinner"
	"reward_wheel/pkg/token"
)

const spinID = "5f0c6d8e-2b1a-4c3d-9e8f-7a6b5c4d3e2f"

type harness struct {
	s      *serv
	wheels *wheelRepoMock
	spins  *spinRepoMock
	stats  *wheel_stats_repo.StatsRepo
	tx     *txManager
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		wheels: &wheelRepoMock{},
		spins:  &spinRepoMock{},
		stats:  wheel_stats_repo.NewWheelStatsRepository(100, 10, 5),
		tx:     &txManager{},
	}
	h.s = NewWheelService(wheelConfig{}, claimConfig{}, h.wheels, h.spins, h.stats, h.tx).(*serv)
	h.s.rnd = spinner.FixedSource(10)
	h.s.newID = func() string { return spinID }
	t.Cleanup(func() {
		h.wheels.AssertExpectations(t)
		h.spins.AssertExpectations(t)
	})
	return h
}

func testWheel(onlyOnce bool) *model.Wheel {
	return &model.Wheel{
		ID:         7,
		CampaignID: 3,
		Name:       "Spring promo",
		OnlyOnce:   onlyOnce,
		Segments: []model.Segment{
			{Position: 0, Name: "Coffee", Color: "#6f4e37", Probability: 30},
			{Position: 1, Name: "Cake", Color: "pink", Probability: 70},
		},
	}
}

func TestCreateWheel_Validation(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	_, err := h.s.CreateWheel(ctx, model.Wheel{Name: "x", Segments: testWheel(false).Segments})
	assert.ErrorIs(t, err, model.ErrCampaignRequired)

	cases := map[string]func(w *model.Wheel){
		"no name":           func(w *model.Wheel) { w.Name = "  " },
		"no segments":       func(w *model.Wheel) { w.Segments = nil },
		"bad color":         func(w *model.Wheel) { w.Segments[0].Color = "sparkly" },
		"negative weight":   func(w *model.Wheel) { w.Segments[1].Probability = -1 },
		"duplicate pos":     func(w *model.Wheel) { w.Segments[1].Position = 0 },
		"blank segment":     func(w *model.Wheel) { w.Segments[1].Name = "" },
		"bad primary color": func(w *model.Wheel) { w.Settings.PrimaryColor = "#12" },
		"negative size":     func(w *model.Wheel) { w.Settings.Size = -5 },
		"oversized wheel":   func(w *model.Wheel) { w.Settings.Size = 1e6 },
		"slow spin up":      func(w *model.Wheel) { w.Settings.UpDuration = 1000 * time.Hour },
		"slow spin down":    func(w *model.Wheel) { w.Settings.DownDuration = model.MaxSegmentDuration + time.Millisecond },
	}
	for name, mutate := range cases {
		w := testWheel(false)
		mutate(w)
		_, err := h.s.CreateWheel(ctx, *w)
		assert.ErrorIs(t, err, model.ErrInvalidWheel, name)
	}
	assert.Zero(t, h.tx.calls)
}

type tightConfig struct {
	wheelConfig
}

func (tightConfig) MaxTicks() int { return 1000 }

func TestCreateWheel_RejectsSpinsOverTickLimit(t *testing.T) {
	h := newHarness(t)
	h.s.cfg = tightConfig{}

	w := testWheel(false)
	w.Settings.UpDuration = 5 * time.Second
	_, err := h.s.CreateWheel(context.Background(), *w)
	assert.ErrorIs(t, err, model.ErrInvalidWheel)
	assert.Greater(t, spinner.WorstCaseTicks(h.s.engineConfig(w)), 1000)

	h.wheels.On("CreateWheel", mock.Anything, mock.Anything).Return(int64(1), nil).Once()
	w.Settings.UpDuration = 100 * time.Millisecond
	_, err = h.s.CreateWheel(context.Background(), *w)
	assert.NoError(t, err)
}

// Wheels stored before the limits existed are refused instead of spun or drawn.
func TestSpinAndRender_RefuseUnusableStoredWheel(t *testing.T) {
	h := newHarness(t)
	stored := testWheel(false)
	stored.Settings.Size = 1e6
	stored.Settings.UpDuration = 1000 * time.Hour

	h.wheels.On("GetWheel", mock.Anything, int64(7)).Return(stored, nil).Twice()

	_, err := h.s.Spin(context.Background(), 7, "alice")
	assert.ErrorIs(t, err, model.ErrInvalidWheel)
	assert.Zero(t, h.tx.calls)

	_, err = h.s.Render(context.Background(), 7, 0)
	assert.ErrorIs(t, err, model.ErrInvalidWheel)
	h.spins.AssertNotCalled(t, "CreateSpin", mock.Anything, mock.Anything)
}

func TestCreateWheel_SortsSegments(t *testing.T) {
	h := newHarness(t)
	w := testWheel(false)
	w.ID = 0
	w.Segments[0].Position, w.Segments[1].Position = 5, 2

	h.wheels.On("CreateWheel", mock.Anything, mock.MatchedBy(func(w *model.Wheel) bool {
		return w.Segments[0].Name == "Cake" && w.Segments[1].Name == "Coffee"
	})).Return(int64(11), nil).Once()

	created, err := h.s.CreateWheel(context.Background(), *w)
	require.NoError(t, err)
	assert.Equal(t, int64(11), created.ID)
	assert.Equal(t, 1, h.tx.calls)
	// the caller's slice is left alone
	assert.Equal(t, "Coffee", w.Segments[0].Name)
}

func TestCreateWheel_AcceptsUnevenWeights(t *testing.T) {
	h := newHarness(t)
	w := testWheel(false)
	w.Segments[1].Probability = 20

	h.wheels.On("CreateWheel", mock.Anything, mock.Anything).Return(int64(1), nil).Once()
	_, err := h.s.CreateWheel(context.Background(), *w)
	assert.NoError(t, err)
}

func TestListWheels(t *testing.T) {
	h := newHarness(t)
	_, err := h.s.ListWheels(context.Background(), 0)
	assert.ErrorIs(t, err, model.ErrCampaignRequired)

	h.wheels.On("ListWheels", mock.Anything, int64(3)).Return([]model.Wheel{*testWheel(false)}, nil).Once()
	list, err := h.s.ListWheels(context.Background(), 3)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestSpin(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	h.wheels.On("GetWheel", mock.Anything, int64(7)).Return(testWheel(true), nil).Once()
	h.spins.On("LockParticipant", mock.Anything, int64(7), "alice").Return(nil).Once()
	h.spins.On("CountParticipantSpins", mock.Anything, int64(7), "alice").Return(0, nil).Once()
	h.spins.On("CreateSpin", mock.Anything, mock.AnythingOfType("*model.SpinRecord")).Return(nil).Once()

	res, err := h.s.Spin(ctx, 7, " alice ")
	require.NoError(t, err)

	// r = 10 falls into the first segment.
	assert.Equal(t, "Coffee", res.Spin.Winner)
	assert.Equal(t, spinID, res.Spin.ID)
	assert.Equal(t, "alice", res.Spin.Participant)
	assert.Equal(t, 0, spinner.SegmentUnderPointer(res.Spin.FinalAngle, 2))
	assert.Positive(t, res.Spin.Frames)
	assert.Equal(t, 1, h.tx.calls)

	require.NotEmpty(t, res.Timeline)
	last := res.Timeline[len(res.Timeline)-1]
	assert.True(t, last.Final)
	assert.Equal(t, res.Spin.Frames, last.Index)

	code, err := token.RedemptionCode(spinID, claimConfig{}.SecretKey())
	require.NoError(t, err)
	assert.Equal(t, code, res.Spin.RedemptionCode)

	claim, err := token.VerifyClaimToken(res.ClaimToken, claimConfig{}.SecretKey())
	require.NoError(t, err)
	assert.Equal(t, "Coffee", claim.Reward)
	assert.Equal(t, int64(7), claim.WheelID)
	assert.Equal(t, spinID, claim.SpinID)

	stats := h.stats.Stats(7)
	assert.Equal(t, 1, stats.TotalSpins)
	assert.Equal(t, 1, stats.Segments[0].Wins)
}

func TestSpin_AlreadySpun(t *testing.T) {
	h := newHarness(t)

	h.wheels.On("GetWheel", mock.Anything, int64(7)).Return(testWheel(true), nil).Once()
	h.spins.On("LockParticipant", mock.Anything, int64(7), "alice").Return(nil).Once()
	h.spins.On("CountParticipantSpins", mock.Anything, int64(7), "alice").Return(1, nil).Once()

	_, err := h.s.Spin(context.Background(), 7, "alice")
	assert.ErrorIs(t, err, model.ErrAlreadySpun)
	h.spins.AssertNotCalled(t, "CreateSpin", mock.Anything, mock.Anything)
	assert.Zero(t, h.stats.Stats(7).TotalSpins)
}

func TestSpin_RepeatableWheelSkipsOnceCheck(t *testing.T) {
	h := newHarness(t)

	h.wheels.On("GetWheel", mock.Anything, int64(7)).Return(testWheel(false), nil).Twice()
	h.spins.On("CreateSpin", mock.Anything, mock.Anything).Return(nil).Twice()

	for range 2 {
		_, err := h.s.Spin(context.Background(), 7, "alice")
		require.NoError(t, err)
	}
	h.spins.AssertNotCalled(t, "CountParticipantSpins", mock.Anything, mock.Anything, mock.Anything)
	assert.Equal(t, 2, h.stats.Stats(7).TotalSpins)
}

func TestSpin_Errors(t *testing.T) {
	h := newHarness(t)

	_, err := h.s.Spin(context.Background(), 7, "  ")
	assert.ErrorIs(t, err, model.ErrParticipantRequired)

	h.wheels.On("GetWheel", mock.Anything, int64(8)).Return(nil, model.ErrWheelNotFound).Once()
	_, err = h.s.Spin(context.Background(), 8, "alice")
	assert.ErrorIs(t, err, model.ErrWheelNotFound)
}

func TestSpinLive(t *testing.T) {
	h := newHarness(t)

	h.wheels.On("GetWheel", mock.Anything, int64(7)).Return(testWheel(true), nil).Once()
	h.spins.On("LockParticipant", mock.Anything, int64(7), "bob").Return(nil).Twice()
	h.spins.On("CountParticipantSpins", mock.Anything, int64(7), "bob").Return(0, nil).Twice()
	h.spins.On("CreateSpin", mock.Anything, mock.Anything).Return(nil).Once()

	var frames []spinner.Frame
	res, err := h.s.SpinLive(context.Background(), 7, "bob", func(f spinner.Frame) {
		frames = append(frames, f)
	})
	require.NoError(t, err)

	assert.Equal(t, "Coffee", res.Spin.Winner)
	assert.NotEmpty(t, res.ClaimToken)
	assert.Empty(t, res.Timeline)
	require.NotEmpty(t, frames)
	assert.True(t, frames[len(frames)-1].Final)
	assert.Equal(t, len(frames), res.Spin.Frames)
}

func TestSpinLive_Cancelled(t *testing.T) {
	h := newHarness(t)
	h.wheels.On("GetWheel", mock.Anything, int64(7)).Return(testWheel(false), nil).Once()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := h.s.SpinLive(ctx, 7, "bob", func(spinner.Frame) {})
	assert.ErrorIs(t, err, context.Canceled)
	h.spins.AssertNotCalled(t, "CreateSpin", mock.Anything, mock.Anything)
}

func TestUpdateSegments(t *testing.T) {
	h := newHarness(t)
	segments := []model.Segment{
		{Position: 2, Name: "Mug", Color: "white", Probability: 50},
		{Position: 1, Name: "Pen", Color: "blue", Probability: 50},
	}

	h.wheels.On("GetWheel", mock.Anything, int64(7)).Return(testWheel(false), nil).Twice()
	h.wheels.On("ReplaceSegments", mock.Anything, int64(7), mock.MatchedBy(func(s []model.Segment) bool {
		return len(s) == 2 && s[0].Name == "Pen"
	})).Return(nil).Once()

	w, err := h.s.UpdateSegments(context.Background(), 7, segments)
	require.NoError(t, err)
	assert.Equal(t, "Pen", w.Segments[0].Name)

	_, err = h.s.UpdateSegments(context.Background(), 7, nil)
	assert.ErrorIs(t, err, model.ErrInvalidWheel)
}

func TestUpdateSegments_ResetsStats(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	h.wheels.On("GetWheel", mock.Anything, int64(7)).Return(testWheel(false), nil).Once()
	h.spins.On("CreateSpin", mock.Anything, mock.Anything).Return(nil).Once()
	_, err := h.s.Spin(ctx, 7, "alice")
	require.NoError(t, err)
	require.Equal(t, 1, h.stats.Stats(7).TotalSpins)

	tea := []model.Segment{{Position: 0, Name: "Tea", Color: "green", Probability: 100}}
	h.wheels.On("GetWheel", mock.Anything, int64(7)).Return(testWheel(false), nil).Once()
	h.wheels.On("ReplaceSegments", mock.Anything, int64(7), mock.Anything).Return(nil).Once()
	_, err = h.s.UpdateSegments(ctx, 7, tea)
	require.NoError(t, err)

	updated := testWheel(false)
	updated.Segments = tea
	h.wheels.On("GetWheel", mock.Anything, int64(7)).Return(updated, nil).Once()
	stats, err := h.s.Stats(ctx, 7)
	require.NoError(t, err)
	assert.Zero(t, stats.TotalSpins)
	require.Len(t, stats.Segments, 1)
	assert.Equal(t, "Tea", stats.Segments[0].Name)
	assert.InDelta(t, 100, stats.Segments[0].Expected, 1e-9)
	assert.Zero(t, stats.Segments[0].Wins)
}

func TestUpdateSegments_FailureKeepsStats(t *testing.T) {
	h := newHarness(t)
	h.stats.UpdateState(7, []string{"Coffee"}, []float64{100}, "Coffee")

	h.wheels.On("GetWheel", mock.Anything, int64(7)).Return(testWheel(false), nil).Once()
	_, err := h.s.UpdateSegments(context.Background(), 7, nil)
	assert.ErrorIs(t, err, model.ErrInvalidWheel)
	assert.Equal(t, 1, h.stats.Stats(7).TotalSpins)
}

func TestDeleteWheel_ResetsStats(t *testing.T) {
	h := newHarness(t)
	h.stats.UpdateState(7, []string{"Coffee"}, []float64{100}, "Coffee")

	h.wheels.On("DeleteWheel", mock.Anything, int64(7)).Return(nil).Once()
	h.wheels.On("DeleteWheel", mock.Anything, int64(8)).Return(model.ErrWheelNotFound).Once()

	require.NoError(t, h.s.DeleteWheel(context.Background(), 7))
	assert.Zero(t, h.stats.Stats(7).TotalSpins)
	assert.ErrorIs(t, h.s.DeleteWheel(context.Background(), 8), model.ErrWheelNotFound)
}

func TestRender(t *testing.T) {
	h := newHarness(t)
	h.wheels.On("GetWheel", mock.Anything, int64(7)).Return(testWheel(false), nil).Once()

	img, err := h.s.Render(context.Background(), 7, 1.2)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(img, []byte("\x89PNG")))
}

func TestStats_BeforeFirstSpin(t *testing.T) {
	h := newHarness(t)
	h.wheels.On("GetWheel", mock.Anything, int64(7)).Return(testWheel(false), nil).Once()

	stats, err := h.s.Stats(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, stats.Segments, 2)
	assert.InDelta(t, 30, stats.Segments[0].Expected, 1e-9)
	assert.InDelta(t, 70, stats.Segments[1].Expected, 1e-9)
	assert.Zero(t, stats.TotalSpins)
}

func TestListSpins_Limit(t *testing.T) {
	h := newHarness(t)
	h.wheels.On("GetWheel", mock.Anything, int64(7)).Return(testWheel(false), nil).Times(3)
	h.spins.On("ListSpins", mock.Anything, int64(7), defaultSpinsLimit).Return([]model.SpinRecord{}, nil).Once()
	h.spins.On("ListSpins", mock.Anything, int64(7), maxSpinsLimit).Return([]model.SpinRecord{}, nil).Once()
	h.spins.On("ListSpins", mock.Anything, int64(7), 5).Return([]model.SpinRecord{{ID: spinID}}, nil).Once()

	_, err := h.s.ListSpins(context.Background(), 7, 0)
	require.NoError(t, err)
	_, err = h.s.ListSpins(context.Background(), 7, 1000)
	require.NoError(t, err)
	spins, err := h.s.ListSpins(context.Background(), 7, 5)
	require.NoError(t, err)
	assert.Len(t, spins, 1)
}

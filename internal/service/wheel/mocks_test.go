package wheel

import (
	"context"
	"time"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/stretchr/testify/mock"

	"reward_wheel/internal/model"
	"reward_wheel/internal/spinner"
)

type wheelRepoMock struct {
	mock.Mock
}

func (m *wheelRepoMock) CreateWheel(ctx context.Context, wheel *model.Wheel) (int64, error) {
	args := m.Called(ctx, wheel)
	if id := args.Get(0).(int64); id != 0 {
		wheel.ID = id
	}
	return args.Get(0).(int64), args.Error(1)
}

func (m *wheelRepoMock) GetWheel(ctx context.Context, id int64) (*model.Wheel, error) {
	args := m.Called(ctx, id)
	w, _ := args.Get(0).(*model.Wheel)
	if w != nil {
		// callers may mutate the wheel
		cp := *w
		w = &cp
	}
	return w, args.Error(1)
}

func (m *wheelRepoMock) ListWheels(ctx context.Context, campaignID int64) ([]model.Wheel, error) {
	args := m.Called(ctx, campaignID)
	w, _ := args.Get(0).([]model.Wheel)
	return w, args.Error(1)
}

func (m *wheelRepoMock) ReplaceSegments(ctx context.Context, wheelID int64, segments []model.Segment) error {
	return m.Called(ctx, wheelID, segments).Error(0)
}

func (m *wheelRepoMock) DeleteWheel(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type spinRepoMock struct {
	mock.Mock
}

func (m *spinRepoMock) LockParticipant(ctx context.Context, wheelID int64, participant string) error {
	return m.Called(ctx, wheelID, participant).Error(0)
}

func (m *spinRepoMock) CountParticipantSpins(ctx context.Context, wheelID int64, participant string) (int, error) {
	args := m.Called(ctx, wheelID, participant)
	return args.Int(0), args.Error(1)
}

func (m *spinRepoMock) CreateSpin(ctx context.Context, spin *model.SpinRecord) error {
	return m.Called(ctx, spin).Error(0)
}

func (m *spinRepoMock) ListSpins(ctx context.Context, wheelID int64, limit int) ([]model.SpinRecord, error) {
	args := m.Called(ctx, wheelID, limit)
	s, _ := args.Get(0).([]model.SpinRecord)
	return s, args.Error(1)
}

// txManager runs the callback inline and counts transactions.
type txManager struct {
	calls int
}

func (t *txManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	return fn(ctx)
}

func (t *txManager) DoWithSettings(ctx context.Context, _ trm.Settings, fn func(ctx context.Context) error) error {
	return t.Do(ctx, fn)
}

type wheelConfig struct{}

func (wheelConfig) PrimaryColor() string        { return spinner.DefaultPrimaryColor }
func (wheelConfig) ContrastColor() string       { return spinner.DefaultContrastColor }
func (wheelConfig) ButtonText() string          { return spinner.DefaultButtonText }
func (wheelConfig) Size() float64               { return 120 }
func (wheelConfig) UpDuration() time.Duration   { return 10 * time.Millisecond }
func (wheelConfig) DownDuration() time.Duration { return 50 * time.Millisecond }
func (wheelConfig) TickUnit() time.Duration     { return time.Millisecond }
func (wheelConfig) FontFamily() string          { return spinner.DefaultFontFamily }
func (wheelConfig) FontSize() float64           { return spinner.DefaultFontSize }
func (wheelConfig) OutlineWidth() float64       { return spinner.DefaultOutlineWidth }
func (wheelConfig) SampleEvery() int            { return 5 }
func (wheelConfig) MaxTicks() int               { return 100_000 }
func (wheelConfig) DriftWindow() int            { return 100 }
func (wheelConfig) DriftPeriod() int            { return 10 }
func (wheelConfig) DriftMaxDeviation() float64  { return 5 }

type claimConfig struct{}

func (claimConfig) SecretKey() []byte       { return []byte("test-secret") }
func (claimConfig) TokenTTL() time.Duration { return time.Hour }

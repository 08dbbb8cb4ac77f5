package repository

import (
	"context"

	"reward_wheel/internal/model"
)

type WheelRepository interface {
	CreateWheel(ctx context.Context, wheel *model.Wheel) (id int64, err error)
	GetWheel(ctx context.Context, id int64) (*model.Wheel, error)
	ListWheels(ctx context.Context, campaignID int64) ([]model.Wheel, error)
	ReplaceSegments(ctx context.Context, wheelID int64, segments []model.Segment) error
	DeleteWheel(ctx context.Context, id int64) error
}

type SpinRepository interface {
	// LockParticipant сериализует спины одного участника до конца транзакции
	LockParticipant(ctx context.Context, wheelID int64, participant string) error
	CountParticipantSpins(ctx context.Context, wheelID int64, participant string) (int, error)
	CreateSpin(ctx context.Context, spin *model.SpinRecord) error
	ListSpins(ctx context.Context, wheelID int64, limit int) ([]model.SpinRecord, error)
}

// WheelStatsRepository - мониторинг фактических шансов колёс в памяти
type WheelStatsRepository interface {
	UpdateState(wheelID int64, names []string, expected []float64, winner string)
	CheckDrift(wheelID int64) bool
	Stats(wheelID int64) model.WheelStats
	Reset(wheelID int64)
}

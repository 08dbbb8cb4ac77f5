package service

import (
	"context"

	"reward_wheel/internal/model"
	"reward_wheel/internal/spinner"
)

type WheelService interface {
	CreateWheel(ctx context.Context, wheel model.Wheel) (*model.Wheel, error)
	GetWheel(ctx context.Context, id int64) (*model.Wheel, error)
	ListWheels(ctx context.Context, campaignID int64) ([]model.Wheel, error)
	UpdateSegments(ctx context.Context, id int64, segments []model.Segment) (*model.Wheel, error)
	DeleteWheel(ctx context.Context, id int64) error

	// Spin крутит колесо на сервере целиком и возвращает таймлайн для проигрывания
	Spin(ctx context.Context, wheelID int64, participant string) (*model.SpinResult, error)
	// SpinLive крутит колесо в реальном времени, onFrame вызывается на каждом тике
	SpinLive(ctx context.Context, wheelID int64, participant string, onFrame func(spinner.Frame)) (*model.SpinResult, error)

	Render(ctx context.Context, wheelID int64, angle float64) ([]byte, error)
	Stats(ctx context.Context, wheelID int64) (*model.WheelStats, error)
	ListSpins(ctx context.Context, wheelID int64, limit int) ([]model.SpinRecord, error)
}

type ClaimService interface {
	Verify(ctx context.Context, token string) (*model.Claim, error)
}

package wheel

import (
	"bytes"
	"context"
	"fmt"

	"reward_wheel/internal/model"
	"reward_wheel/internal/render/raster"
	"reward_wheel/internal/spinner"
)

// Render PNG колеса, повёрнутого на angle радиан
func (s *serv) Render(ctx context.Context, wheelID int64, angle float64) ([]byte, error) {
	wheel, err := s.wheelRepo.GetWheel(ctx, wheelID)
	if err != nil {
		return nil, err
	}

	cfg := s.engineConfig(wheel)
	if err := s.checkLimits(cfg); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := raster.RenderPNG(&buf, cfg, angle, ""); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrInvalidWheel, err)
	}
	return buf.Bytes(), nil
}

// Stats Статистика колеса. До первого спина содержит только ожидаемые доли
func (s *serv) Stats(ctx context.Context, wheelID int64) (*model.WheelStats, error) {
	wheel, err := s.wheelRepo.GetWheel(ctx, wheelID)
	if err != nil {
		return nil, err
	}

	stats := s.statsRepo.Stats(wheelID)
	if stats.TotalSpins == 0 {
		cfg := s.engineConfig(wheel)
		shares := spinner.ExpectedShares(cfg.Segments)
		stats.Segments = make([]model.SegmentStats, len(cfg.Segments))
		for i, seg := range cfg.Segments {
			stats.Segments[i] = model.SegmentStats{Name: seg.Name, Expected: shares[i]}
		}
	}
	return &stats, nil
}

func (s *serv) ListSpins(ctx context.Context, wheelID int64, limit int) ([]model.SpinRecord, error) {
	if _, err := s.wheelRepo.GetWheel(ctx, wheelID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultSpinsLimit
	}
	limit = min(limit, maxSpinsLimit)
	return s.spinRepo.ListSpins(ctx, wheelID, limit)
}

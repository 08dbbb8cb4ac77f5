package wheel

import (
	"context"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/rs/zerolog/log"

	"reward_wheel/internal/model"
	"reward_wheel/internal/spinner"
)

// CreateWheel Создаёт колесо после проверки того, что движок сможет его крутить
func (s *serv) CreateWheel(ctx context.Context, wheel model.Wheel) (*model.Wheel, error) {
	wheel.Name = strings.TrimSpace(wheel.Name)
	if wheel.CampaignID <= 0 {
		return nil, model.ErrCampaignRequired
	}
	if wheel.Name == "" {
		return nil, fmt.Errorf("%w: name is required", model.ErrInvalidWheel)
	}
	if err := s.validate(&wheel); err != nil {
		return nil, err
	}

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		_, err := s.wheelRepo.CreateWheel(txCtx, &wheel)
		return err
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Int64("wheel_id", wheel.ID).
		Int64("campaign_id", wheel.CampaignID).
		Int("segments", len(wheel.Segments)).
		Msg("wheel created")
	return &wheel, nil
}

func (s *serv) GetWheel(ctx context.Context, id int64) (*model.Wheel, error) {
	return s.wheelRepo.GetWheel(ctx, id)
}

func (s *serv) ListWheels(ctx context.Context, campaignID int64) ([]model.Wheel, error) {
	if campaignID <= 0 {
		return nil, model.ErrCampaignRequired
	}
	return s.wheelRepo.ListWheels(ctx, campaignID)
}

// UpdateSegments Полностью заменяет сегменты колеса. Статистика колеса
// сбрасывается после коммита
func (s *serv) UpdateSegments(ctx context.Context, id int64, segments []model.Segment) (*model.Wheel, error) {
	var wheel *model.Wheel
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		current, err := s.wheelRepo.GetWheel(txCtx, id)
		if err != nil {
			return err
		}
		current.Segments = segments
		if err := s.validate(current); err != nil {
			return err
		}
		if err := s.wheelRepo.ReplaceSegments(txCtx, id, current.Segments); err != nil {
			return err
		}
		wheel = current
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.statsRepo.Reset(id)
	log.Info().Int64("wheel_id", id).Int("segments", len(wheel.Segments)).Msg("wheel segments replaced")
	return wheel, nil
}

func (s *serv) DeleteWheel(ctx context.Context, id int64) error {
	if err := s.wheelRepo.DeleteWheel(ctx, id); err != nil {
		return err
	}
	s.statsRepo.Reset(id)
	log.Info().Int64("wheel_id", id).Msg("wheel deleted")
	return nil
}

// validate Проверка колеса через конфиг движка. Сегменты сортируются по позиции.
// Сумма весов не равная 100 допустима, но шансы при этом смещаются, поэтому пишем предупреждение
func (s *serv) validate(wheel *model.Wheel) error {
	st := wheel.Settings
	if st.Size < 0 || st.UpDuration < 0 || st.DownDuration < 0 {
		return fmt.Errorf("%w: settings must not be negative", model.ErrInvalidWheel)
	}
	if st.Size > model.MaxWheelSize {
		return fmt.Errorf("%w: size must not exceed %d", model.ErrInvalidWheel, model.MaxWheelSize)
	}
	if st.UpDuration > model.MaxSegmentDuration || st.DownDuration > model.MaxSegmentDuration {
		return fmt.Errorf("%w: durations must not exceed %s per segment", model.ErrInvalidWheel, model.MaxSegmentDuration)
	}

	wheel.Segments = slices.Clone(wheel.Segments)
	slices.SortStableFunc(wheel.Segments, func(a, b model.Segment) int {
		return a.Position - b.Position
	})
	for i := range wheel.Segments {
		wheel.Segments[i].Name = strings.TrimSpace(wheel.Segments[i].Name)
		if wheel.Segments[i].Name == "" {
			return fmt.Errorf("%w: segment %d has no name", model.ErrInvalidWheel, wheel.Segments[i].Position)
		}
		if i > 0 && wheel.Segments[i].Position == wheel.Segments[i-1].Position {
			return fmt.Errorf("%w: duplicate segment position %d", model.ErrInvalidWheel, wheel.Segments[i].Position)
		}
	}

	cfg := s.engineConfig(wheel)
	if err := cfg.ValidateDrawing(); err != nil {
		return fmt.Errorf("%w: %v", model.ErrInvalidWheel, err)
	}
	if err := s.checkLimits(cfg); err != nil {
		return err
	}

	if sum := spinner.WeightSum(cfg.Segments); math.Abs(sum-spinner.Scale) > 1e-9 {
		log.Warn().
			Int64("wheel_id", wheel.ID).
			Float64("weight_sum", sum).
			Floats64("effective_odds", spinner.ExpectedShares(cfg.Segments)).
			Msg("segment weights do not sum to 100")
	}
	return nil
}

// checkLimits Отсекает колёса, которые нельзя отрисовать или докрутить за MaxTicks.
// Проверяется итоговый конфиг, то есть и значения по умолчанию из WheelConfig
func (s *serv) checkLimits(cfg spinner.Config) error {
	cfg = cfg.WithDefaults()
	if cfg.Size > model.MaxWheelSize {
		return fmt.Errorf("%w: size must not exceed %d", model.ErrInvalidWheel, model.MaxWheelSize)
	}
	maxTicks := s.cfg.MaxTicks()
	if maxTicks <= 0 {
		maxTicks = spinner.DefaultMaxTicks
	}
	if need := spinner.WorstCaseTicks(cfg); need > maxTicks {
		return fmt.Errorf("%w: spin may take %d ticks, limit is %d", model.ErrInvalidWheel, need, maxTicks)
	}
	return nil
}

// engineConfig Конфиг движка: значения по умолчанию из WheelConfig, поверх них настройки колеса
func (s *serv) engineConfig(wheel *model.Wheel) spinner.Config {
	cfg := spinner.Config{
		PrimaryColor:  s.cfg.PrimaryColor(),
		ContrastColor: s.cfg.ContrastColor(),
		ButtonText:    s.cfg.ButtonText(),
		Size:          s.cfg.Size(),
		UpDuration:    s.cfg.UpDuration(),
		DownDuration:  s.cfg.DownDuration(),
		TickUnit:      s.cfg.TickUnit(),
		FontFamily:    s.cfg.FontFamily(),
		FontSize:      s.cfg.FontSize(),
		OutlineWidth:  s.cfg.OutlineWidth(),
	}

	st := wheel.Settings
	if st.PrimaryColor != "" {
		cfg.PrimaryColor = st.PrimaryColor
	}
	if st.ContrastColor != "" {
		cfg.ContrastColor = st.ContrastColor
	}
	if st.ButtonText != "" {
		cfg.ButtonText = st.ButtonText
	}
	if st.Size > 0 {
		cfg.Size = st.Size
	}
	if st.UpDuration > 0 {
		cfg.UpDuration = st.UpDuration
	}
	if st.DownDuration > 0 {
		cfg.DownDuration = st.DownDuration
	}

	cfg.Segments = make([]spinner.Segment, len(wheel.Segments))
	for i, seg := range wheel.Segments {
		cfg.Segments[i] = spinner.Segment{Name: seg.Name, Color: seg.Color, Probability: seg.Probability}
	}
	return cfg
}

package wheel

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"reward_wheel/internal/model"
	"reward_wheel/internal/spinner"
	"reward_wheel/pkg/token"
)

// Spin Спин на стороне сервера: исход и анимация считаются симуляцией движка,
// клиент только проигрывает таймлайн
func (s *serv) Spin(ctx context.Context, wheelID int64, participant string) (*model.SpinResult, error) {
	participant = strings.TrimSpace(participant)
	if participant == "" {
		return nil, model.ErrParticipantRequired
	}

	wheel, err := s.wheelRepo.GetWheel(ctx, wheelID)
	if err != nil {
		return nil, err
	}
	cfg := s.engineConfig(wheel)
	if err := s.checkLimits(cfg); err != nil {
		return nil, err
	}

	var res *model.SpinResult

	// Проверка "один раз", симуляция и запись спина в одной транзакции
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.checkOnce(txCtx, wheel, participant); err != nil {
			return err
		}

		sim, err := spinner.Simulate(cfg, s.rnd, spinner.SimulateOptions{
			SampleEvery: s.cfg.SampleEvery(),
			MaxTicks:    s.cfg.MaxTicks(),
			Logger:      log.Logger,
		})
		if errors.Is(err, spinner.ErrSimulationStalled) {
			return fmt.Errorf("%w: %v", model.ErrInvalidWheel, err)
		}
		if err != nil {
			return err
		}

		record, err := s.saveSpin(txCtx, wheel.ID, participant, sim.Result)
		if err != nil {
			return err
		}

		res = &model.SpinResult{Spin: *record, Timeline: sim.Timeline}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.finishSpin(wheel, cfg, res)
}

// SpinLive Спин в реальном времени. Блокирует вызывающего до остановки колеса.
// Транзакция не держится всё время анимации: проверка "один раз" повторяется при записи
func (s *serv) SpinLive(ctx context.Context, wheelID int64, participant string, onFrame func(spinner.Frame)) (*model.SpinResult, error) {
	participant = strings.TrimSpace(participant)
	if participant == "" {
		return nil, model.ErrParticipantRequired
	}

	wheel, err := s.wheelRepo.GetWheel(ctx, wheelID)
	if err != nil {
		return nil, err
	}
	if err := s.checkOnce(ctx, wheel, participant); err != nil {
		return nil, err
	}
	cfg := s.engineConfig(wheel)
	if err := s.checkLimits(cfg); err != nil {
		return nil, err
	}

	result, err := s.runLive(ctx, cfg, onFrame)
	if err != nil {
		return nil, err
	}

	var res *model.SpinResult
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.checkOnce(txCtx, wheel, participant); err != nil {
			return err
		}
		record, err := s.saveSpin(txCtx, wheel.ID, participant, result)
		if err != nil {
			return err
		}
		res = &model.SpinResult{Spin: *record}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.finishSpin(wheel, cfg, res)
}

// runLive Крутит движок на настоящих часах. Отмена контекста останавливает колесо
func (s *serv) runLive(ctx context.Context, cfg spinner.Config, onFrame func(spinner.Frame)) (spinner.Result, error) {
	finished := make(chan struct{})
	cfg.OnFinished = func(string) { close(finished) }

	e, err := spinner.New(cfg, spinner.Deps{
		Random:    s.rnd,
		Clock:     s.clock,
		Scheduler: s.newScheduler(),
		OnFrame:   onFrame,
		Logger:    log.Logger,
	})
	if err != nil {
		return spinner.Result{}, fmt.Errorf("%w: %v", model.ErrInvalidWheel, err)
	}
	if !e.Spin() {
		return spinner.Result{}, errors.New("spin was not started")
	}

	select {
	case <-finished:
		return e.LastResult(), nil
	case <-ctx.Done():
		e.Close()
		return spinner.Result{}, ctx.Err()
	}
}

// checkOnce Для колёс "один раз" блокирует участника и проверяет, что он ещё не крутил
func (s *serv) checkOnce(ctx context.Context, wheel *model.Wheel, participant string) error {
	if !wheel.OnlyOnce {
		return nil
	}
	if err := s.spinRepo.LockParticipant(ctx, wheel.ID, participant); err != nil {
		return err
	}
	count, err := s.spinRepo.CountParticipantSpins(ctx, wheel.ID, participant)
	if err != nil {
		return err
	}
	if count > 0 {
		return model.ErrAlreadySpun
	}
	return nil
}

func (s *serv) saveSpin(ctx context.Context, wheelID int64, participant string, result spinner.Result) (*model.SpinRecord, error) {
	id := s.newID()
	code, err := token.RedemptionCode(id, s.claimCfg.SecretKey())
	if err != nil {
		return nil, err
	}

	record := &model.SpinRecord{
		ID:             id,
		WheelID:        wheelID,
		Participant:    participant,
		Winner:         result.Winner,
		Frames:         result.Frames,
		FinalAngle:     result.FinalAngle,
		DurationMS:     result.Elapsed.Milliseconds(),
		RedemptionCode: code,
	}
	if err := s.spinRepo.CreateSpin(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// finishSpin После коммита: статистика, проверка шансов и токен выигрыша
func (s *serv) finishSpin(wheel *model.Wheel, cfg spinner.Config, res *model.SpinResult) (*model.SpinResult, error) {
	names := make([]string, len(cfg.Segments))
	for i, seg := range cfg.Segments {
		names[i] = seg.Name
	}
	s.statsRepo.UpdateState(wheel.ID, names, spinner.ExpectedShares(cfg.Segments), res.Spin.Winner)
	s.statsRepo.CheckDrift(wheel.ID)

	claimToken, err := token.GenerateClaimToken(model.Claim{
		SpinID:         res.Spin.ID,
		WheelID:        wheel.ID,
		Participant:    res.Spin.Participant,
		Reward:         res.Spin.Winner,
		RedemptionCode: res.Spin.RedemptionCode,
	}, s.claimCfg.SecretKey(), s.claimCfg.TokenTTL())
	if err != nil {
		return nil, fmt.Errorf("issue claim token: %w", err)
	}
	res.ClaimToken = claimToken

	log.Info().
		Int64("wheel_id", wheel.ID).
		Str("spin_id", res.Spin.ID).
		Str("participant", res.Spin.Participant).
		Str("winner", res.Spin.Winner).
		Int("frames", res.Spin.Frames).
		Msg("wheel spun")
	return res, nil
}

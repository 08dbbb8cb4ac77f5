package wheel

import (
	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/google/uuid"

	"reward_wheel/internal/config"
	"reward_wheel/internal/repository"
	"reward_wheel/internal/service"
	"reward_wheel/internal/spinner"
)

const (
	defaultSpinsLimit = 20
	maxSpinsLimit     = 100
)

type serv struct {
	cfg      config.WheelConfig
	claimCfg config.ClaimConfig

	wheelRepo repository.WheelRepository
	spinRepo  repository.SpinRepository
	statsRepo repository.WheelStatsRepository
	txManager trm.Manager

	rnd   spinner.RandomSource
	newID func() string
	// newScheduler - планировщик для живых спинов
	newScheduler func() spinner.Scheduler
	clock        spinner.Clock
}

// NewWheelService Сервис колёс призов
func NewWheelService(
	cfg config.WheelConfig,
	claimCfg config.ClaimConfig,
	wheelRepo repository.WheelRepository,
	spinRepo repository.SpinRepository,
	statsRepo repository.WheelStatsRepository,
	txManager trm.Manager,
) service.WheelService {
	return &serv{
		cfg:          cfg,
		claimCfg:     claimCfg,
		wheelRepo:    wheelRepo,
		spinRepo:     spinRepo,
		statsRepo:    statsRepo,
		txManager:    txManager,
		rnd:          spinner.DefaultSource,
		newID:        uuid.NewString,
		newScheduler: func() spinner.Scheduler { return spinner.NewTickerScheduler() },
		clock:        spinner.SystemClock{},
	}
}

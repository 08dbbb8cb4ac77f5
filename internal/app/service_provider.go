package app

import (
	"context"

	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	claimAPI "reward_wheel/internal/api/claim"
	wheelAPI "reward_wheel/internal/api/wheel"
	"reward_wheel/internal/config"
	"reward_wheel/internal/config/env"
	"reward_wheel/internal/middleware"
	"reward_wheel/internal/repository"
	"reward_wheel/internal/repository/spin_repo"
	"reward_wheel/internal/repository/wheel_repo"
	"reward_wheel/internal/repository/wheel_stats_repo"
	"reward_wheel/internal/service"
	"reward_wheel/internal/service/claim"
	"reward_wheel/internal/service/wheel"
)

const wheelConfigPath = "config.yaml"

type ServiceProvider struct {
	//TXManager
	txManager trm.Manager

	// Database
	pgConfig config.PGConfig
	dbClient *pgxpool.Pool

	// Logging
	logCfg config.LogConfig

	// Wheel bits
	wheelCfg       config.WheelConfig
	wheelRepo      repository.WheelRepository
	spinRepo       repository.SpinRepository
	wheelStatsRepo repository.WheelStatsRepository
	wheelServ      service.WheelService
	wheelHand      *wheelAPI.Handler

	// Claim bits
	claimCfg  config.ClaimConfig
	claimServ service.ClaimService
	claimHand *claimAPI.Handler

	// Router and HTTP config
	httpCfg config.HTTPConfig
	router  chi.Router
}

func newServiceProvider() *ServiceProvider {
	return &ServiceProvider{}
}

func (sp *ServiceProvider) PgConfig() config.PGConfig {
	if sp.pgConfig == nil {
		cfg, err := env.NewPGConfig()
		if err != nil {
			panic("failed to get database config: " + err.Error())
		}
		sp.pgConfig = cfg
	}
	return sp.pgConfig
}

func (sp *ServiceProvider) DBClient(ctx context.Context) *pgxpool.Pool {
	if sp.dbClient == nil {
		dbc, err := pgxpool.New(ctx, sp.PgConfig().DSN())
		if err != nil {
			panic("failed to create db pool: " + err.Error())
		}
		err = dbc.Ping(ctx)
		if err != nil {
			panic("failed to ping db: " + err.Error())
		}
		sp.dbClient = dbc
	}
	return sp.dbClient
}

func (sp *ServiceProvider) TXManager(ctx context.Context) trm.Manager {
	if sp.txManager == nil {
		m, err := manager.New(trmpgx.NewDefaultFactory(sp.DBClient(ctx)))
		if err != nil {
			panic("failed to create tx manager: " + err.Error())
		}

		sp.txManager = m
	}

	return sp.txManager
}

func (sp *ServiceProvider) LogCfg() config.LogConfig {
	if sp.logCfg == nil {
		cfg, err := env.NewLogConfig()
		if err != nil {
			panic("failed to get log config: " + err.Error())
		}
		sp.logCfg = cfg
	}
	return sp.logCfg
}

func (sp *ServiceProvider) WheelCfg() config.WheelConfig {
	if sp.wheelCfg == nil {
		cfg, err := env.NewWheelConfigFromYAML(wheelConfigPath)
		if err != nil {
			panic("failed to get wheel config: " + err.Error())
		}
		sp.wheelCfg = cfg
	}
	return sp.wheelCfg
}

func (sp *ServiceProvider) ClaimCfg() config.ClaimConfig {
	if sp.claimCfg == nil {
		cfg, err := env.NewClaimConfig()
		if err != nil {
			panic("failed to get claim config: " + err.Error())
		}
		sp.claimCfg = cfg
	}
	return sp.claimCfg
}

func (sp *ServiceProvider) WheelRepository(ctx context.Context) repository.WheelRepository {
	if sp.wheelRepo == nil {
		sp.wheelRepo = wheel_repo.NewWheelRepository(sp.DBClient(ctx))
	}
	return sp.wheelRepo
}

func (sp *ServiceProvider) SpinRepository(ctx context.Context) repository.SpinRepository {
	if sp.spinRepo == nil {
		sp.spinRepo = spin_repo.NewSpinRepository(sp.DBClient(ctx))
	}
	return sp.spinRepo
}

func (sp *ServiceProvider) WheelStatsRepository() repository.WheelStatsRepository {
	if sp.wheelStatsRepo == nil {
		cfg := sp.WheelCfg()
		sp.wheelStatsRepo = wheel_stats_repo.NewWheelStatsRepository(cfg.DriftWindow(), cfg.DriftPeriod(), cfg.DriftMaxDeviation())
	}
	return sp.wheelStatsRepo
}

func (sp *ServiceProvider) WheelService(ctx context.Context) service.WheelService {
	if sp.wheelServ == nil {
		sp.wheelServ = wheel.NewWheelService(
			sp.WheelCfg(),
			sp.ClaimCfg(),
			sp.WheelRepository(ctx),
			sp.SpinRepository(ctx),
			sp.WheelStatsRepository(),
			sp.TXManager(ctx),
		)
	}
	return sp.wheelServ
}

func (sp *ServiceProvider) WheelHandler(ctx context.Context) *wheelAPI.Handler {
	if sp.wheelHand == nil {
		sp.wheelHand = wheelAPI.NewHandler(wheelAPI.HandlerDeps{
			Serv:           sp.WheelService(ctx),
			AllowedOrigins: sp.HTTPCfg().AllowedOrigins(),
		})
	}
	return sp.wheelHand
}

func (sp *ServiceProvider) ClaimService() service.ClaimService {
	if sp.claimServ == nil {
		sp.claimServ = claim.NewClaimService(sp.ClaimCfg())
	}
	return sp.claimServ
}

func (sp *ServiceProvider) ClaimHandler() *claimAPI.Handler {
	if sp.claimHand == nil {
		sp.claimHand = claimAPI.NewHandler(claimAPI.HandlerDeps{Serv: sp.ClaimService()})
	}
	return sp.claimHand
}

func (sp *ServiceProvider) HTTPCfg() config.HTTPConfig {
	if sp.httpCfg == nil {
		cfg, err := env.NewHTTPConfig()
		if err != nil {
			panic("failed to get http config: " + err.Error())
		}
		sp.httpCfg = cfg
	}

	return sp.httpCfg
}

func (sp *ServiceProvider) Router(ctx context.Context) chi.Router {
	if sp.router == nil {
		r := chi.NewRouter()

		r.Use(chimw.RequestID)
		r.Use(middleware.Logger(log.Logger))
		r.Use(chimw.Recoverer)

		// CORS middleware. Тот же список источников проверяет вебсокет живого спина
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   sp.HTTPCfg().AllowedOrigins(),
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
			ExposedHeaders:   []string{"Link"},
			AllowCredentials: false,
			MaxAge:           60 * 15,
		}))

		// Wheel endpoints
		wheelHandler := sp.WheelHandler(ctx)
		r.Route("/wheels", func(rr chi.Router) {
			rr.Post("/", wheelHandler.Create)
			rr.Get("/", wheelHandler.List)
			rr.Get("/{id}", wheelHandler.Get)
			rr.Delete("/{id}", wheelHandler.Delete)
			rr.Put("/{id}/segments", wheelHandler.UpdateSegments)
			rr.Post("/{id}/spin", wheelHandler.Spin)
			rr.Get("/{id}/spin/live", wheelHandler.SpinLive)
			rr.Get("/{id}/image.png", wheelHandler.Image)
			rr.Get("/{id}/stats", wheelHandler.Stats)
			rr.Get("/{id}/spins", wheelHandler.Spins)
		})

		// Claim endpoints
		claimHandler := sp.ClaimHandler()
		r.Route("/claims", func(rr chi.Router) {
			rr.Post("/verify", claimHandler.Verify)
		})

		sp.router = r
	}

	return sp.router
}

package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/postie/waitlist/config/router"
	"github.com/postie/waitlist/internal/log"
	"github.com/postie/waitlist/internal/models"
	"github.com/postie/waitlist/pkg/constants"
	"github.com/postie/waitlist/pkg/utils"
	"gorm.io/gorm"
)

type ApplicationConfig struct {
	DB              *gorm.DB
	RouterService   *router.RouterService
	Logger          *log.Logger
	Cache           Cache
	Config          *AppConfig
	TracingShutdown func(context.Context) error
}

type AppConfig struct {
	RequestTimeout time.Duration
	WaitlistStore  string
}

func NewAppConfig() *AppConfig {
	return &AppConfig{
		RequestTimeout: utils.GetEnvPositiveDuration("REQUEST_TIMEOUT", constants.DefaultRequestTimeout),
		WaitlistStore:  strings.ToLower(utils.GetEnvTrimmedOrDefault("WAITLIST_STORE", constants.WaitlistStoreDatabase)),
	}
}

func (ac *AppConfig) Validate() error {
	switch ac.WaitlistStore {
	case constants.WaitlistStoreDatabase, constants.WaitlistStoreRedis:
		return nil
	default:
		return fmt.Errorf("unsupported WAITLIST_STORE %q (supported: %s, %s)", ac.WaitlistStore, constants.WaitlistStoreDatabase, constants.WaitlistStoreRedis)
	}
}

func (ac *ApplicationConfig) Cleanup() {
	if ac.TracingShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := ac.TracingShutdown(ctx); err != nil {
			ac.Logger.Error("Failed to shutdown tracer provider", "error", err)
		}
	}

	if ac.DB != nil {
		CloseDatabase(ac.DB, ac.Logger)
	}

	if ac.RouterService != nil {
		ac.RouterService.Cleanup()
	}

	if ac.Cache != nil {
		_ = CloseCache(ac.Cache, ac.Logger)
	}

	ac.Logger.Info("Application cleanup completed")
}

func LoadApplicationConfiguration(logger *log.Logger, autoMigrate bool) (*ApplicationConfig, error) {
	InitializeEnvFile(logger)

	appConfig := NewAppConfig()
	if err := appConfig.Validate(); err != nil {
		return nil, err
	}

	if autoMigrate {
		appEnv := GetAppEnv()
		if err := ValidateAutoMigrateAllowed(appEnv); err != nil {
			return nil, err
		}
		if appEnv == "" {
			logger.Warn("APP_ENV not set; allowing --auto-migrate as development")
		}
	}

	tracingShutdown, err := SetupTracing(logger, appConfig)
	if err != nil {
		return nil, err
	}

	ac := &ApplicationConfig{
		Logger:          logger,
		Config:          appConfig,
		TracingShutdown: tracingShutdown,
	}

	if err := ac.connectStores(autoMigrate); err != nil {
		ac.Cleanup()
		return nil, err
	}

	ac.RouterService = router.CreateRouterService(logger, &router.RouterConfig{
		RequestTimeout: appConfig.RequestTimeout,
	})

	logger.Info("Application configuration loaded successfully", "waitlist_store", appConfig.WaitlistStore)

	return ac, nil
}

// connectStores opens the backend named by WAITLIST_STORE as a hard dependency.
// Redis stays optional for the database store, where it only feeds the health check.
func (ac *ApplicationConfig) connectStores(autoMigrate bool) error {
	cacheConfig := NewCacheConfig()

	if ac.Config.WaitlistStore == constants.WaitlistStoreRedis {
		cache, err := cacheConfig.NewCache(ac.Logger)
		if err != nil {
			return fmt.Errorf("WAITLIST_STORE=redis requires a reachable Redis: %w", err)
		}
		ac.Cache = cache
		return nil
	}

	db, err := NewDatabase(ac.Logger, NewDBConfig())
	if err != nil {
		return err
	}
	ac.DB = db

	if autoMigrate {
		if err := AutoMigrate(ac.Logger, db, models.ModelRegistry...); err != nil {
			return err
		}
	}

	ac.Cache = cacheConfig.NewCacheOrNil(ac.Logger)
	return nil
}

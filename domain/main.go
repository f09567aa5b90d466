package domain

import (
	"github.com/postie/waitlist/config"
	"github.com/postie/waitlist/domain/monitoring"
	"github.com/postie/waitlist/domain/waitlist"
)

func SetupCoreDomain(appConfig *config.ApplicationConfig) error {
	appConfig.RouterService.MountController(
		monitoring.NewMonitoringControllerFactory(appConfig.DB, appConfig.Logger, appConfig.Cache).CreateController(),
	)

	waitlistController, err := waitlist.NewWaitlistServiceFactory(
		appConfig.Config.WaitlistStore,
		appConfig.DB,
		config.GetRedisClient(appConfig.Cache),
		appConfig.Logger,
	).CreateController()
	if err != nil {
		return err
	}

	appConfig.RouterService.MountController(waitlistController)
	return nil
}

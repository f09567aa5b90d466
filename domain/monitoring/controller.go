package monitoring

import (
	"context"
	"time"

	"github.com/postie/waitlist/config/router"
	"github.com/postie/waitlist/internal/log"
	"gorm.io/gorm"
)

const healthCheckTimeout = 2 * time.Second

type Cache interface {
	Ping(ctx context.Context) error
}

type HealthStatus struct {
	Database int `json:"database"` // 1 = healthy, 0 = unhealthy/not configured
	Cache    int `json:"cache"`    // 1 = healthy, 0 = unhealthy/not configured
	Uptime   int `json:"uptime"`   // seconds
}

type MonitoringController struct {
	db        *gorm.DB
	logger    *log.Logger
	cache     Cache
	startTime time.Time
}

func NewMonitoringController(db *gorm.DB, logger *log.Logger, cache Cache) *router.RESTController {
	ctrl := &MonitoringController{
		db:        db,
		logger:    logger,
		cache:     cache,
		startTime: time.Now(),
	}

	return router.NewRESTController(
		"MonitoringController",
		"/",
		func(routerService *router.RouterService, controller *router.RESTController) {
			routerService.AddGetHandler(controller, "health", func(c *router.RequestContext) *router.ServiceResult {
				return ctrl.healthCheck(routerService, c)
			})
		},
	)
}

func (ctrl *MonitoringController) healthCheck(
	routerService *router.RouterService,
	c *router.RequestContext,
) *router.ServiceResult {
	logger := routerService.GetLogger(c)

	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	healthStatus, degraded := ctrl.performHealthChecks(ctx, logger)
	if degraded {
		return router.ServiceUnavailableResult(healthStatus, "waitlist health check failed")
	}

	return router.OKResult(healthStatus, "waitlist health check completed")
}

// performHealthChecks reports degraded when a configured dependency is unreachable.
// A dependency that is not configured is reported as 0 without degrading.
func (ctrl *MonitoringController) performHealthChecks(ctx context.Context, logger *log.Logger) (HealthStatus, bool) {
	status := HealthStatus{
		Uptime: int(time.Since(ctrl.startTime).Seconds()),
	}

	var dbFailed, cacheFailed bool
	status.Database, dbFailed = ctrl.probe(ctx, logger, "Database", ctrl.checkDatabase)
	status.Cache, cacheFailed = ctrl.probe(ctx, logger, "Cache", ctrl.checkCache)

	return status, dbFailed || cacheFailed
}

// probe returns 1 when check passes, 0 when it fails or the dependency is absent.
func (ctrl *MonitoringController) probe(ctx context.Context, logger *log.Logger, name string, check func(context.Context) (configured, healthy bool)) (int, bool) {
	configured, healthy := check(ctx)

	switch {
	case !configured:
		logger.Debug(name + " not configured, health check skipped")
		return 0, false
	case healthy:
		logger.Debug(name + " health check passed")
		return 1, false
	default:
		logger.Error(name + " health check failed")
		return 0, true
	}
}

func (ctrl *MonitoringController) checkDatabase(ctx context.Context) (bool, bool) {
	if ctrl.db == nil {
		return false, false
	}

	sqlDB, err := ctrl.db.DB()
	if err != nil {
		return true, false
	}

	return true, sqlDB.PingContext(ctx) == nil
}

func (ctrl *MonitoringController) checkCache(ctx context.Context) (bool, bool) {
	if ctrl.cache == nil {
		return false, false
	}

	return true, ctrl.cache.Ping(ctx) == nil
}

package monitoring

import (
	"github.com/postie/waitlist/config/router"
	"github.com/postie/waitlist/internal/log"
	"gorm.io/gorm"
)

type MonitoringControllerFactory interface {
	CreateController() *router.RESTController
}

type DefaultMonitoringControllerFactory struct {
	db     *gorm.DB
	logger *log.Logger
	cache  Cache
}

// NewMonitoringControllerFactory accepts a nil db or cache; the health check then
// reports that dependency as 0.
func NewMonitoringControllerFactory(db *gorm.DB, logger *log.Logger, cache Cache) MonitoringControllerFactory {
	return &DefaultMonitoringControllerFactory{
		db:     db,
		logger: logger,
		cache:  cache,
	}
}

func (f *DefaultMonitoringControllerFactory) CreateController() *router.RESTController {
	return NewMonitoringController(f.db, f.logger, f.cache)
}

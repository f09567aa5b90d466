package waitlist

import (
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/postie/waitlist/config/router"
	"github.com/postie/waitlist/internal/log"
	"github.com/postie/waitlist/pkg/constants"
	"gorm.io/gorm"
)

type WaitlistServiceFactory interface {
	CreateRepository() (WaitlistRepository, error)
	CreateService() (WaitlistService, error)
	CreateController() (*router.RESTController, error)
}

type DefaultWaitlistServiceFactory struct {
	store       string
	db          *gorm.DB
	redisClient *redis.Client
	logger      *log.Logger
}

// NewWaitlistServiceFactory builds waitlist components on top of the backend named by
// store (constants.WaitlistStoreDatabase or constants.WaitlistStoreRedis).
func NewWaitlistServiceFactory(store string, db *gorm.DB, redisClient *redis.Client, logger *log.Logger) WaitlistServiceFactory {
	return &DefaultWaitlistServiceFactory{
		store:       store,
		db:          db,
		redisClient: redisClient,
		logger:      logger,
	}
}

func (f *DefaultWaitlistServiceFactory) CreateRepository() (WaitlistRepository, error) {
	switch f.store {
	case constants.WaitlistStoreRedis:
		if f.redisClient == nil {
			return nil, fmt.Errorf("waitlist store %q requires a Redis client", f.store)
		}
		return NewRedisWaitlistRepository(f.redisClient), nil
	case constants.WaitlistStoreDatabase, "":
		if f.db == nil {
			return nil, fmt.Errorf("waitlist store %q requires a database", constants.WaitlistStoreDatabase)
		}
		return NewWaitlistRepository(f.db), nil
	default:
		return nil, fmt.Errorf("unsupported waitlist store %q", f.store)
	}
}

func (f *DefaultWaitlistServiceFactory) CreateService() (WaitlistService, error) {
	repository, err := f.CreateRepository()
	if err != nil {
		return nil, err
	}
	return NewWaitlistService(f.logger, repository), nil
}

func (f *DefaultWaitlistServiceFactory) CreateController() (*router.RESTController, error) {
	repository, err := f.CreateRepository()
	if err != nil {
		return nil, err
	}
	return NewWaitlistController(repository, f.logger), nil
}

package waitlist

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/postie/waitlist/internal/models"
	"github.com/postie/waitlist/pkg/constants"
	apperrors "github.com/postie/waitlist/pkg/errors"
)

// redisWaitlistRepository keeps every entry as a field of one hash, so HSETNX
// gives the same insert-if-absent guarantee as the unique index.
type redisWaitlistRepository struct {
	client *redis.Client
	key    string
	now    func() time.Time
}

func NewRedisWaitlistRepository(client *redis.Client) WaitlistRepository {
	return &redisWaitlistRepository{
		client: client,
		key:    constants.WaitlistRedisKey,
		now:    time.Now,
	}
}

func (rr *redisWaitlistRepository) InsertIfAbsent(ctx context.Context, email EmailAddress) (*models.WaitlistEntry, error) {
	if email.IsZero() {
		return nil, apperrors.NewInvalidRequestError(constants.WaitlistInvalidEmailMessage, ErrInvalidEmail)
	}

	createdAt := rr.now().UTC()

	inserted, err := rr.client.HSetNX(ctx, rr.key, email.String(), createdAt.Format(constants.RFC3339DateTimeFormat)).Result()
	if err != nil {
		return nil, apperrors.NewDatabaseError(constants.WaitlistFailureMessage, err)
	}

	if !inserted {
		return nil, apperrors.NewConflictError(constants.WaitlistDuplicateMessage, ErrAlreadyRegistered)
	}

	return &models.WaitlistEntry{Email: email.String(), CreatedAt: createdAt}, nil
}

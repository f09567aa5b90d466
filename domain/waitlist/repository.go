package waitlist

//go:generate mockgen -source=repository.go -destination=mock_repository.go -package=waitlist

import (
	"context"

	"github.com/postie/waitlist/internal/models"
	"github.com/postie/waitlist/pkg/constants"
	apperrors "github.com/postie/waitlist/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type WaitlistRepository interface {
	// InsertIfAbsent records email in a single conditional write. An address that is
	// already stored yields a conflict error wrapping ErrAlreadyRegistered.
	InsertIfAbsent(ctx context.Context, email EmailAddress) (*models.WaitlistEntry, error)
}

type waitlistRepository struct {
	db *gorm.DB
}

func NewWaitlistRepository(db *gorm.DB) WaitlistRepository {
	return &waitlistRepository{db: db}
}

func (wr *waitlistRepository) InsertIfAbsent(ctx context.Context, email EmailAddress) (*models.WaitlistEntry, error) {
	if email.IsZero() {
		return nil, apperrors.NewInvalidRequestError(constants.WaitlistInvalidEmailMessage, ErrInvalidEmail)
	}

	entry := &models.WaitlistEntry{Email: email.String()}

	result := wr.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoNothing: true,
		}).
		Create(entry)

	if result.Error != nil {
		if apperrors.IsDuplicateKeyError(result.Error) {
			return nil, apperrors.NewConflictError(constants.WaitlistDuplicateMessage, ErrAlreadyRegistered)
		}
		return nil, apperrors.NewDatabaseError(constants.WaitlistFailureMessage, result.Error)
	}

	if result.RowsAffected == 0 {
		return nil, apperrors.NewConflictError(constants.WaitlistDuplicateMessage, ErrAlreadyRegistered)
	}

	return entry, nil
}

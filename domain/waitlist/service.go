package waitlist

import (
	"context"

	"github.com/postie/waitlist/internal/log"
	apperrors "github.com/postie/waitlist/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type WaitlistService interface {
	// Join validates rawEmail, normalizes it and records it. Errors are *apperrors.AppError
	// wrapping ErrInvalidEmail, ErrAlreadyRegistered, or the store failure.
	Join(ctx context.Context, rawEmail string) (*JoinWaitlistResponse, error)
}

type waitlistService struct {
	logger     *log.Logger
	repository WaitlistRepository
}

func NewWaitlistService(logger *log.Logger, repository WaitlistRepository) WaitlistService {
	return &waitlistService{logger: logger, repository: repository}
}

func (s *waitlistService) Join(ctx context.Context, rawEmail string) (*JoinWaitlistResponse, error) {
	ctx, span := otel.Tracer("domain/waitlist").Start(ctx, "waitlist.Join")
	defer span.End()

	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	email, err := ParseEmailAddress(rawEmail)
	if err != nil {
		logger.Warn("Waitlist submission rejected", "reason", "invalid email")
		span.SetAttributes(attribute.String("waitlist.outcome", OutcomeInvalid))
		return nil, err
	}

	entry, err := s.repository.InsertIfAbsent(ctx, email)
	if err != nil {
		if apperrors.Is(err, ErrAlreadyRegistered) {
			logger.Warn("Waitlist submission rejected", "reason", "already registered")
			span.SetAttributes(attribute.String("waitlist.outcome", OutcomeDuplicate))
			return nil, err
		}

		logger.Error("Failed to record waitlist entry", "error", err)
		span.SetAttributes(attribute.String("waitlist.outcome", OutcomeError))
		span.RecordError(err)
		span.SetStatus(codes.Error, "waitlist insert failed")
		return nil, err
	}

	span.AddEvent("waitlist.entry_recorded", trace.WithAttributes(attribute.Int64("waitlist.entry_id", int64(entry.ID))))
	span.SetAttributes(attribute.String("waitlist.outcome", OutcomeJoined))
	logger.Info("Waitlist entry recorded", "entry_id", entry.ID)

	response := joinedResponse()
	return &response, nil
}

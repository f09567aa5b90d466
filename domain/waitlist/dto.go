package waitlist

import (
	"strings"

	"github.com/postie/waitlist/pkg/constants"
	apperrors "github.com/postie/waitlist/pkg/errors"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// JoinWaitlistRequest is the body of POST /api/waitlist. Any non-empty string
// containing "@" is accepted.
type JoinWaitlistRequest struct {
	Email string `json:"email" binding:"required,contains=@"`
}

type JoinWaitlistResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// EmailAddress is a lower-cased address that has passed validation.
// Only ParseEmailAddress constructs a non-zero value.
type EmailAddress struct {
	value string
}

func (e EmailAddress) String() string {
	return e.value
}

func (e EmailAddress) IsZero() bool {
	return e.value == ""
}

// ParseEmailAddress accepts raw when it is non-empty and contains "@", and
// lower-cases it. Surrounding whitespace is kept.
func ParseEmailAddress(raw string) (EmailAddress, error) {
	if raw == "" || !strings.Contains(raw, "@") {
		return EmailAddress{}, apperrors.NewInvalidRequestError(constants.WaitlistInvalidEmailMessage, ErrInvalidEmail)
	}

	// cases.Caser is stateful; one per call.
	return EmailAddress{value: cases.Lower(language.Und).String(raw)}, nil
}

func joinedResponse() JoinWaitlistResponse {
	return JoinWaitlistResponse{Success: true, Message: constants.WaitlistJoinedMessage}
}

package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestIsDuplicateKeyError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"gorm translated", fmt.Errorf("create: %w", gorm.ErrDuplicatedKey), true},
		{"postgres unique violation", &pgconn.PgError{Code: "23505"}, true},
		{"postgres other code", &pgconn.PgError{Code: "23502"}, false},
		{"sqlite message", errors.New("UNIQUE constraint failed: waitlist.email"), true},
		{"postgres message", errors.New(`ERROR: duplicate key value violates unique constraint "waitlist_email_key"`), true},
		{"connection refused", errors.New("dial tcp 127.0.0.1:5432: connect: connection refused"), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsDuplicateKeyError(tc.err))
		})
	}
}

func TestHTTPStatusCode(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"invalid request", NewInvalidRequestError("bad", nil), StatusBadRequest},
		{"conflict is a rejected submission", NewConflictError("dup", nil), StatusBadRequest},
		{"wrapped conflict", fmt.Errorf("insert: %w", NewConflictError("dup", nil)), StatusBadRequest},
		{"database", NewDatabaseError("db", nil), StatusInternalServerError},
		{"plain", errors.New("plain"), StatusInternalServerError},
		{"nil", nil, StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, HTTPStatusCode(tc.err))
		})
	}
}

func TestGetHumanReadableMessage_DoesNotLeakWrappedDetail(t *testing.T) {
	err := NewDatabaseError("Failed to join waitlist", errors.New("pq: password authentication failed"))

	assert.Equal(t, "Failed to join waitlist", GetHumanReadableMessage(err))
	assert.Equal(t, "An unexpected error occurred", GetHumanReadableMessage(errors.New("pq: secret")))
}

func TestGetErrorType_UnwrapsThroughFmtErrorf(t *testing.T) {
	err := fmt.Errorf("service: %w", NewConflictError("dup", nil))

	assert.Equal(t, ErrorTypeConflict, GetErrorType(err))
	assert.Equal(t, ErrorTypeUnknown, GetErrorType(errors.New("plain")))
	assert.Equal(t, "", GetErrorType(nil))
}

type formatterModel struct {
	Email string `json:"email" validate:"required,contains=@"`
}

func TestFormatValidationErrors_UsesJSONFieldNames(t *testing.T) {
	v := validator.New()
	err := v.Struct(&formatterModel{Email: "no-at-sign"})

	got := FormatValidationErrors(err, &formatterModel{})

	assert.Len(t, got, 1)
	assert.Equal(t, "email", got[0].Field)
	assert.Equal(t, `Must contain "@"`, got[0].Message)
}

func TestFormatValidationErrors_TypeMismatch(t *testing.T) {
	var m formatterModel
	err := json.Unmarshal([]byte(`{"email": 42}`), &m)

	got := FormatValidationErrors(err, &m)

	assert.Len(t, got, 1)
	assert.Equal(t, "email", got[0].Field)
}

func TestFormatValidationErrors_Nil(t *testing.T) {
	assert.Empty(t, FormatValidationErrors(nil, nil))
}

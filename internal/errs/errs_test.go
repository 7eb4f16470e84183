package errs_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelune/formgate/internal/errs"
)

func TestMakeUpperCaseWithUnderscores(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Bad Request", "BAD_REQUEST"},
		{"Not Found", "NOT_FOUND"},
		{"Internal Server Error", "INTERNAL_SERVER_ERROR"},
		{"already_upper", "ALREADY_UPPER"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, errs.MakeUpperCaseWithUnderscores(tt.in))
		})
	}
}

func TestNewUnauthorizedError(t *testing.T) {
	err := errs.NewUnauthorizedError("Token expired", true)

	assert.Equal(t, "UNAUTHORIZED", err.Code)
	assert.Equal(t, "Token expired", err.Message)
	assert.Equal(t, http.StatusUnauthorized, err.Status)
	assert.True(t, err.Override)
	assert.Equal(t, "Token expired", err.Error())
}

func TestNewForbiddenError(t *testing.T) {
	err := errs.NewForbiddenError("Admin role required", false)

	assert.Equal(t, "FORBIDDEN", err.Code)
	assert.Equal(t, http.StatusForbidden, err.Status)
	assert.False(t, err.Override)
}

func TestNewBadRequestError(t *testing.T) {
	t.Run("default code", func(t *testing.T) {
		err := errs.NewBadRequestError("Validation failed", true, nil, nil, nil)

		assert.Equal(t, "BAD_REQUEST", err.Code)
		assert.Equal(t, http.StatusBadRequest, err.Status)
	})

	t.Run("custom code and field errors", func(t *testing.T) {
		code := "LANDINGPAGE_FORM_REQUIRED"
		fieldErrors := []errs.FieldError{{Field: "comment", Error: "is required"}}

		err := errs.NewBadRequestError("The Comment is required", true, &code, fieldErrors, nil)

		assert.Equal(t, code, err.Code)
		require.Len(t, err.Errors, 1)
		assert.Equal(t, "comment", err.Errors[0].Field)
	})

	t.Run("action is carried through", func(t *testing.T) {
		action := &errs.Action{
			Type:    errs.ActionTypeRedirect,
			Message: "Sign in again",
			Value:   "/login",
		}

		err := errs.NewBadRequestError("Session invalid", false, nil, nil, action)

		require.NotNil(t, err.Action)
		assert.Equal(t, errs.ActionTypeRedirect, err.Action.Type)
		assert.Equal(t, "/login", err.Action.Value)
	})
}

func TestNewNotFoundError(t *testing.T) {
	err := errs.NewNotFoundError("Landingpage Form not found", true, nil)

	assert.Equal(t, "NOT_FOUND", err.Code)
	assert.Equal(t, http.StatusNotFound, err.Status)

	code := "FORM_ENTRY_MISSING"
	err = errs.NewNotFoundError("gone", false, &code)
	assert.Equal(t, code, err.Code)
}

func TestNewInternalServerError(t *testing.T) {
	err := errs.NewInternalServerError()

	assert.Equal(t, "INTERNAL_SERVER_ERROR", err.Code)
	assert.Equal(t, http.StatusText(http.StatusInternalServerError), err.Message)
	assert.Equal(t, http.StatusInternalServerError, err.Status)
	assert.False(t, err.Override)
}

func TestHTTPError_Is(t *testing.T) {
	err := errs.NewBadRequestError("nope", false, nil, nil, nil)

	// Matching is on type, not on code/status, so any HTTPError
	// target matches any HTTPError in the chain.
	assert.True(t, errors.Is(err, &errs.HTTPError{}))
	assert.True(t, errors.Is(fmt.Errorf("wrapped: %w", err), &errs.HTTPError{}))
	assert.False(t, errors.Is(errors.New("plain"), &errs.HTTPError{}))
}

func TestHTTPError_WithMessage(t *testing.T) {
	code := "CUSTOM"
	original := errs.NewBadRequestError("original", true, &code, []errs.FieldError{{Field: "x", Error: "bad"}}, nil)

	replaced := original.WithMessage("replaced")

	assert.Equal(t, "replaced", replaced.Message)
	assert.Equal(t, original.Code, replaced.Code)
	assert.Equal(t, original.Status, replaced.Status)
	assert.Equal(t, original.Override, replaced.Override)
	assert.Equal(t, original.Errors, replaced.Errors)

	// The template must not be mutated.
	assert.Equal(t, "original", original.Message)
}

func TestValidationError(t *testing.T) {
	err := errs.ValidationError(errors.New("comment too long"))

	assert.Equal(t, http.StatusBadRequest, err.Status)
	assert.Equal(t, "Validation failed: comment too long", err.Message)
}

// Package validation contains the logic for validating request data.
//
// It uses the validator library to enforce rules (required fields,
// numeric ranges, formats) declared in struct tags, and extracts
// validation failures into a shape the client can understand.
package validation

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/avelune/formgate/internal/errs"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Validatable is implemented by request payload types that know how
// to validate themselves.
//
// The usual pattern: declare validator tags on the request struct and
// implement Validate as validator.Struct(req). Custom rules that tags
// cannot express return CustomValidationErrors instead.
type Validatable interface {
	Validate() error
}

// CustomValidationError represents a single validation issue for a
// specific field that could not be expressed via validator tags.
type CustomValidationError struct {
	Field   string
	Message string
}

// CustomValidationErrors is a slice of custom validation errors that
// satisfies error.
type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	return "Validation failed"
}

// BindAndValidate binds request data into payload and validates it.
//
// payload must be a pointer so echo's Bind can populate it. Binding
// failures and validation failures both surface as 400 HTTPErrors,
// the latter with field-level errors attached.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := c.Bind(payload); err != nil {
		return errs.NewBadRequestError("Malformed request payload", false, nil, nil, nil)
	}

	if msg, fieldErrors := validateStruct(payload); fieldErrors != nil {
		return errs.NewBadRequestError(msg, true, nil, fieldErrors, nil)
	}

	return nil
}

// validateStruct runs v.Validate and extracts field errors on failure.
func validateStruct(v Validatable) (string, []errs.FieldError) {
	if err := v.Validate(); err != nil {
		return extractValidationError(err)
	}
	return "", nil
}

func extractValidationError(err error) (string, []errs.FieldError) {
	var fieldErrors []errs.FieldError

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		var customErrors CustomValidationErrors
		if ok := errorsAs(err, &customErrors); ok {
			for _, cerr := range customErrors {
				fieldErrors = append(fieldErrors, errs.FieldError{
					Field: cerr.Field,
					Error: cerr.Message,
				})
			}
			return "Validation failed", fieldErrors
		}

		// Unknown validation error type: report it as a single
		// payload-level failure rather than dropping it.
		return "Validation failed", []errs.FieldError{{Field: "payload", Error: err.Error()}}
	}

	for _, verr := range validationErrors {
		field := strings.ToLower(verr.Field())
		var msg string

		switch verr.Tag() {
		case "required":
			msg = "is required"

		case "min":
			// min means minimum length for strings, minimum value
			// for numbers.
			if verr.Type().Kind() == reflect.String {
				msg = fmt.Sprintf("must be at least %s characters", verr.Param())
			} else {
				msg = fmt.Sprintf("must be at least %s", verr.Param())
			}

		case "max":
			if verr.Type().Kind() == reflect.String {
				msg = fmt.Sprintf("must not exceed %s characters", verr.Param())
			} else {
				msg = fmt.Sprintf("must not exceed %s", verr.Param())
			}

		case "oneof":
			msg = fmt.Sprintf("must be one of: %s", verr.Param())

		case "email":
			msg = "must be a valid email address"

		case "uuid":
			msg = "must be a valid UUID"

		case "gt":
			msg = fmt.Sprintf("must be greater than %s", verr.Param())

		case "gte":
			msg = fmt.Sprintf("must be at least %s", verr.Param())

		default:
			if verr.Param() != "" {
				msg = fmt.Sprintf("%s: %s:%s", field, verr.Tag(), verr.Param())
			} else {
				msg = fmt.Sprintf("%s: %s", field, verr.Tag())
			}
		}

		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: field,
			Error: msg,
		})
	}

	return "Validation failed", fieldErrors
}

// errorsAs is a tiny assertion helper for the value-typed
// CustomValidationErrors, which errors.As cannot target directly when
// the error was returned bare.
func errorsAs(err error, target *CustomValidationErrors) bool {
	cerrs, ok := err.(CustomValidationErrors)
	if ok {
		*target = cerrs
	}
	return ok
}

// uuidRegex matches the canonical textual UUID format.
var uuidRegex = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

// IsValidUUID checks whether a string matches UUID format. Format
// only; version/variant semantics are not validated.
func IsValidUUID(uuid string) bool {
	return uuidRegex.MatchString(uuid)
}

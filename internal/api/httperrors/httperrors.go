package httperrors

import (
	"fmt"

	"github.com/go-openapi/swag"

	"github/vaultbridge/hw-wallet/internal/types"
)

// HTTPError is the internal representation of an API error, carrying the
// public wire payload plus internal-only context.
type HTTPError struct {
	types.PublicHTTPError
	Internal       error                  `json:"-"`
	AdditionalData map[string]interface{} `json:"-"`
}

// NewHTTPError creates a new HTTPError with the given code, type and title.
func NewHTTPError(code int, errorType, title string) *HTTPError {
	return &HTTPError{
		PublicHTTPError: *types.NewPublicHTTPError(code, errorType, title),
	}
}

// NewHTTPErrorWithDetail creates a new HTTPError with an additional detail message.
func NewHTTPErrorWithDetail(code int, errorType, title, detail string) *HTTPError {
	e := NewHTTPError(code, errorType, title)
	e.Detail = detail
	return e
}

func (e *HTTPError) Error() string {
	var detail string
	if e.Detail != "" {
		detail = fmt.Sprintf(" - %s", e.Detail)
	}
	return fmt.Sprintf("HTTPError %d (%s): %s%s", swag.Int64Value(e.Code), swag.StringValue(e.Type), swag.StringValue(e.Title), detail)
}

// HTTPValidationError carries per-field validation failures.
type HTTPValidationError struct {
	types.PublicHTTPValidationError
	Internal       error                  `json:"-"`
	AdditionalData map[string]interface{} `json:"-"`
}

// NewHTTPValidationError creates a new HTTPValidationError with the given details.
func NewHTTPValidationError(code int, errorType, title string, validationErrors []*types.HTTPValidationErrorDetail) *HTTPValidationError {
	return &HTTPValidationError{
		PublicHTTPValidationError: types.PublicHTTPValidationError{
			PublicHTTPError:  *types.NewPublicHTTPError(code, errorType, title),
			ValidationErrors: validationErrors,
		},
	}
}

func (e *HTTPValidationError) Error() string {
	return fmt.Sprintf("HTTPValidationError %d (%s): %s (%d validation errors)",
		swag.Int64Value(e.Code), swag.StringValue(e.Type), swag.StringValue(e.Title), len(e.ValidationErrors))
}

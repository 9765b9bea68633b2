package types

import (
	"github.com/go-openapi/errors"
	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/swag"
	"github.com/go-openapi/validate"
)

// Public error type identifiers returned to API consumers.
const (
	PublicHTTPErrorTypeGeneric                 = "generic"
	PublicHTTPErrorTypeInvalidDevice           = "HARDWARE_WALLET_INVALID_DEVICE"
	PublicHTTPErrorTypeLimitExceeded           = "HARDWARE_WALLET_LIMIT_EXCEEDED"
	PublicHTTPErrorTypeUnsupportedDeviceType   = "HARDWARE_WALLET_UNSUPPORTED_DEVICE_TYPE"
	PublicHTTPErrorTypeUnsupportedChain        = "HARDWARE_WALLET_UNSUPPORTED_CHAIN"
	PublicHTTPErrorTypeRequestNotProcessable   = "SIGNING_REQUEST_NOT_PROCESSABLE"
	PublicHTTPErrorTypeInvalidSignature        = "SIGNING_REQUEST_INVALID_SIGNATURE"
	PublicHTTPErrorTypeMalformedSignature      = "SIGNING_REQUEST_MALFORMED_SIGNATURE"
	PublicHTTPErrorTypeAssociationNotFound     = "HARDWARE_WALLET_NOT_FOUND"
	PublicHTTPErrorTypeSigningRequestNotFound  = "SIGNING_REQUEST_NOT_FOUND"
)

// PublicHTTPError is the wire representation of an API error.
type PublicHTTPError struct {
	// HTTP status code
	// Required: true
	Code *int64 `json:"status"`

	// Machine readable error type
	// Required: true
	Type *string `json:"type"`

	// Human readable error title
	// Required: true
	Title *string `json:"title"`

	// Additional human readable detail
	Detail string `json:"detail,omitempty"`
}

// Validate validates this public HTTP error
func (m *PublicHTTPError) Validate(_ strfmt.Registry) error {
	var res []error

	if err := validate.Required("status", "body", m.Code); err != nil {
		res = append(res, err)
	}
	if err := validate.Required("type", "body", m.Type); err != nil {
		res = append(res, err)
	}
	if err := validate.Required("title", "body", m.Title); err != nil {
		res = append(res, err)
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}
	return nil
}

// HTTPValidationErrorDetail pinpoints one failed validation.
type HTTPValidationErrorDetail struct {
	// Key of the field failing validation
	// Required: true
	Key *string `json:"key"`

	// Location of the failing field (body, query, path)
	// Required: true
	In *string `json:"in"`

	// Error describing the failed validation
	// Required: true
	Error *string `json:"error"`
}

// Validate validates this HTTP validation error detail
func (m *HTTPValidationErrorDetail) Validate(_ strfmt.Registry) error {
	var res []error

	if err := validate.Required("key", "body", m.Key); err != nil {
		res = append(res, err)
	}
	if err := validate.Required("in", "body", m.In); err != nil {
		res = append(res, err)
	}
	if err := validate.Required("error", "body", m.Error); err != nil {
		res = append(res, err)
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}
	return nil
}

// PublicHTTPValidationError extends PublicHTTPError with per-field details.
type PublicHTTPValidationError struct {
	PublicHTTPError

	// List of failed validations
	ValidationErrors []*HTTPValidationErrorDetail `json:"validationErrors"`
}

// Validate validates this public HTTP validation error
func (m *PublicHTTPValidationError) Validate(formats strfmt.Registry) error {
	var res []error

	if err := m.PublicHTTPError.Validate(formats); err != nil {
		res = append(res, err)
	}
	for _, detail := range m.ValidationErrors {
		if detail == nil {
			continue
		}
		if err := detail.Validate(formats); err != nil {
			res = append(res, err)
		}
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}
	return nil
}

// NewPublicHTTPError constructs the wire error payload.
func NewPublicHTTPError(code int, errorType, title string) *PublicHTTPError {
	return &PublicHTTPError{
		Code:  swag.Int64(int64(code)),
		Type:  swag.String(errorType),
		Title: swag.String(title),
	}
}

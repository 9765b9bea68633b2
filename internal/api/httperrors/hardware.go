package httperrors

import (
	"net/http"

	"github.com/pkg/errors"

	"github/vaultbridge/hw-wallet/internal/hardware"
	"github/vaultbridge/hw-wallet/internal/types"
)

var (
	ErrNotFoundAssociation    = NewHTTPError(http.StatusNotFound, types.PublicHTTPErrorTypeAssociationNotFound, "The hardware wallet association does not exist.")
	ErrNotFoundSigningRequest = NewHTTPError(http.StatusNotFound, types.PublicHTTPErrorTypeSigningRequestNotFound, "The signing request does not exist.")

	ErrConflictLimitExceeded  = NewHTTPError(http.StatusConflict, types.PublicHTTPErrorTypeLimitExceeded, "The per-user limit has been reached.")
	ErrConflictNotProcessable = NewHTTPError(http.StatusConflict, types.PublicHTTPErrorTypeRequestNotProcessable, "The signing request is no longer processable.")

	ErrBadRequestInvalidDevice         = NewHTTPError(http.StatusBadRequest, types.PublicHTTPErrorTypeInvalidDevice, "The device does not support the requested chain.")
	ErrBadRequestUnsupportedDeviceType = NewHTTPError(http.StatusBadRequest, types.PublicHTTPErrorTypeUnsupportedDeviceType, "The device type is not supported.")
	ErrBadRequestUnsupportedChain      = NewHTTPError(http.StatusBadRequest, types.PublicHTTPErrorTypeUnsupportedChain, "The chain is not supported by this device family.")
	ErrBadRequestInvalidSignature      = NewHTTPError(http.StatusBadRequest, types.PublicHTTPErrorTypeInvalidSignature, "The signature failed validation.")
	ErrBadRequestMalformedSignature    = NewHTTPError(http.StatusBadRequest, types.PublicHTTPErrorTypeMalformedSignature, "The signature is structurally malformed.")
)

// MapHardwareError translates domain sentinels into their public HTTP error.
// Unmapped errors pass through untouched and surface as internal server errors.
func MapHardwareError(err error) error {
	switch {
	case errors.Is(err, hardware.ErrAssociationNotFound):
		return ErrNotFoundAssociation
	case errors.Is(err, hardware.ErrRequestNotFound):
		return ErrNotFoundSigningRequest
	case errors.Is(err, hardware.ErrLimitExceeded):
		return ErrConflictLimitExceeded
	case errors.Is(err, hardware.ErrNotProcessable), errors.Is(err, hardware.ErrInvalidTransition):
		return ErrConflictNotProcessable
	case errors.Is(err, hardware.ErrInvalidDevice):
		return ErrBadRequestInvalidDevice
	case errors.Is(err, hardware.ErrUnsupportedDeviceType):
		return ErrBadRequestUnsupportedDeviceType
	case errors.Is(err, hardware.ErrUnsupportedChain):
		return ErrBadRequestUnsupportedChain
	case errors.Is(err, hardware.ErrMalformedSignature):
		return ErrBadRequestMalformedSignature
	case errors.Is(err, hardware.ErrInvalidSignature):
		return ErrBadRequestInvalidSignature
	default:
		return err
	}
}

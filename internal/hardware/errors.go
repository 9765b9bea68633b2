package hardware

import "github.com/pkg/errors"

var (
	// ErrInvalidDevice signals a device/chain mismatch at registration time.
	ErrInvalidDevice = errors.New("device does not support the requested chain")

	// ErrLimitExceeded signals that a per-user association or pending-request cap was hit.
	ErrLimitExceeded = errors.New("per-user limit exceeded")

	// ErrUnsupportedDeviceType signals that no signer family exists for a stored
	// device type. This is a programmer error, not a user error.
	ErrUnsupportedDeviceType = errors.New("unsupported device type")

	// ErrUnsupportedChain signals that the selected signer has no handler for the chain.
	ErrUnsupportedChain = errors.New("unsupported chain")

	// ErrNotProcessable signals a signature submission against a request that is
	// terminal, expired or otherwise not awaiting a signature.
	ErrNotProcessable = errors.New("signing request is not processable")

	// ErrInvalidSignature signals that the device signature failed validation.
	// The request is durably marked failed before this is raised.
	ErrInvalidSignature = errors.New("invalid signature")

	// ErrMalformedSignature signals a device signature that cannot be parsed
	// into its r/s/v components (or family equivalent).
	ErrMalformedSignature = errors.New("malformed signature")

	// ErrInvalidTransition signals a state machine transition that is not defined.
	ErrInvalidTransition = errors.New("invalid state transition")

	// ErrAssociationNotFound signals an unknown or inactive association.
	ErrAssociationNotFound = errors.New("hardware wallet association not found")

	// ErrRequestNotFound signals an unknown signing request.
	ErrRequestNotFound = errors.New("signing request not found")
)

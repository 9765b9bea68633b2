package hardware

import (
	"time"

	"github.com/aarondl/null/v8"
	"github.com/pkg/errors"
)

// SigningStatus is the lifecycle state of a signing request.
type SigningStatus string

const (
	SigningStatusPending        SigningStatus = "pending"
	SigningStatusAwaitingDevice SigningStatus = "awaiting_device"
	SigningStatusSigning        SigningStatus = "signing"
	SigningStatusCompleted      SigningStatus = "completed"
	SigningStatusFailed         SigningStatus = "failed"
	SigningStatusExpired        SigningStatus = "expired"
	SigningStatusCancelled      SigningStatus = "cancelled"
)

// IsTerminal reports whether the status is a sink with no further transitions.
func (s SigningStatus) IsTerminal() bool {
	switch s {
	case SigningStatusCompleted, SigningStatusFailed, SigningStatusExpired, SigningStatusCancelled:
		return true
	case SigningStatusPending, SigningStatusAwaitingDevice, SigningStatusSigning:
		return false
	default:
		return false
	}
}

// IsOpen reports whether the status counts against the per-user pending cap
// and is subject to expiry. awaiting_device is treated identically to pending.
func (s SigningStatus) IsOpen() bool {
	return s == SigningStatusPending || s == SigningStatusAwaitingDevice
}

// OpenStatuses are the states counted by admission control and swept by expiry.
func OpenStatuses() []SigningStatus {
	return []SigningStatus{SigningStatusPending, SigningStatusAwaitingDevice}
}

// CanTransition reports whether the state machine defines an edge from current
// to next. Terminal states are sinks.
func CanTransition(current, next SigningStatus) bool {
	switch current {
	case SigningStatusPending:
		return next == SigningStatusAwaitingDevice ||
			next == SigningStatusSigning ||
			next == SigningStatusExpired ||
			next == SigningStatusCancelled
	case SigningStatusAwaitingDevice:
		return next == SigningStatusSigning ||
			next == SigningStatusExpired ||
			next == SigningStatusCancelled
	case SigningStatusSigning:
		return next == SigningStatusCompleted ||
			next == SigningStatusFailed ||
			next == SigningStatusCancelled
	case SigningStatusCompleted, SigningStatusFailed, SigningStatusExpired, SigningStatusCancelled:
		return false
	default:
		return false
	}
}

// SigningRequest tracks one signing attempt from creation to a terminal state.
//
// RawDataToSign is produced exactly once at creation and never recomputed:
// re-deriving it later would let the payload shown to the user drift from what
// the device actually signs.
type SigningRequest struct {
	ID            string
	UserID        string
	AssociationID string
	Status        SigningStatus
	Transaction   TransactionData
	Chain         Chain

	RawDataToSign string
	DisplayData   map[string]string
	Encoding      Encoding
	DeviceType    DeviceType

	ExpiresAt time.Time

	// set on completion
	Signature       null.String
	PublicKey       null.String
	TransactionHash null.String

	// set on failure
	Error null.String

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsExpired reports whether the request has outlived its TTL at the given time.
func (r *SigningRequest) IsExpired(now time.Time) bool {
	return !r.ExpiresAt.After(now)
}

// TransitionTo moves the request into the next status, guarded by the state
// machine. The caller persists the request afterwards.
func (r *SigningRequest) TransitionTo(next SigningStatus) error {
	if !CanTransition(r.Status, next) {
		return errors.Wrapf(ErrInvalidTransition, "from %s to %s", r.Status, next)
	}
	r.Status = next
	return nil
}

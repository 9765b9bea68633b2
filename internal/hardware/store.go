package hardware

import (
	"context"
	"time"
)

// Store is the persistence boundary of the signing orchestration subsystem.
//
// Implementations must provide transactional count-then-insert semantics for
// the two Create operations: the per-user count has to be taken under a write
// lock on that user's existing rows, inside the same transaction as the
// insert, so two concurrent creations cannot both observe a free slot and
// jointly exceed the cap. All other mutations act on a single identified row
// and rely on the row-level update semantics of the backing store.
type Store interface {
	// CreateAssociation persists a new association, enforcing the per-user cap
	// under a write lock. Returns ErrLimitExceeded when the cap would be hit.
	CreateAssociation(ctx context.Context, association *Association, maxPerUser int) error

	// GetAssociation looks up an association by ID. Returns ErrAssociationNotFound.
	GetAssociation(ctx context.Context, id string) (*Association, error)

	// UpdateAssociation persists changed association fields.
	UpdateAssociation(ctx context.Context, association *Association) error

	// ListAssociations returns all active associations of the user.
	ListAssociations(ctx context.Context, userID string) ([]*Association, error)

	// CreateSigningRequest persists a new request, enforcing the per-user cap
	// of requests in {pending, awaiting_device} under a write lock.
	// Returns ErrLimitExceeded when the cap would be hit.
	CreateSigningRequest(ctx context.Context, request *SigningRequest, maxOpenPerUser int) error

	// GetSigningRequest looks up a request by ID. Returns ErrRequestNotFound.
	GetSigningRequest(ctx context.Context, id string) (*SigningRequest, error)

	// UpdateSigningRequest persists changed request fields.
	UpdateSigningRequest(ctx context.Context, request *SigningRequest) error

	// ListSigningRequests returns all requests of the user, newest first.
	ListSigningRequests(ctx context.Context, userID string) ([]*SigningRequest, error)

	// ListOpenRequestsByAssociation returns the association's requests in
	// {pending, awaiting_device, signing}, used for the cancel cascade.
	ListOpenRequestsByAssociation(ctx context.Context, associationID string) ([]*SigningRequest, error)

	// ExpireRequests transitions every request in {pending, awaiting_device}
	// with expiresAt <= cutoff to expired and returns the count. Idempotent;
	// safe to run concurrently with request creation and submission.
	ExpireRequests(ctx context.Context, cutoff time.Time) (int, error)
}

// Package memstore provides an in-memory hardware.Store used by tests and
// single-node development setups. All operations are serialized by one mutex,
// which trivially satisfies the locked count-then-insert contract of the
// persistence boundary.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github/vaultbridge/hw-wallet/internal/hardware"
)

// Store is an in-memory hardware.Store. Entities are copied on the way in and
// out, so mutations only become visible through Update calls, matching the
// semantics of a database-backed implementation.
type Store struct {
	mu           sync.Mutex
	associations map[string]*hardware.Association
	requests     map[string]*hardware.SigningRequest
}

// New creates an empty store.
func New() *Store {
	return &Store{
		associations: make(map[string]*hardware.Association),
		requests:     make(map[string]*hardware.SigningRequest),
	}
}

func cloneAssociation(a *hardware.Association) *hardware.Association {
	out := *a
	out.SupportedChains = append([]hardware.Chain(nil), a.SupportedChains...)
	if a.Metadata != nil {
		out.Metadata = make(map[string]string, len(a.Metadata))
		for k, v := range a.Metadata {
			out.Metadata[k] = v
		}
	}
	return &out
}

func cloneRequest(r *hardware.SigningRequest) *hardware.SigningRequest {
	out := *r
	if r.DisplayData != nil {
		out.DisplayData = make(map[string]string, len(r.DisplayData))
		for k, v := range r.DisplayData {
			out.DisplayData[k] = v
		}
	}
	return &out
}

// CreateAssociation implements hardware.Store.
func (s *Store) CreateAssociation(_ context.Context, association *hardware.Association, maxPerUser int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, a := range s.associations {
		if a.UserID == association.UserID && a.IsActive {
			count++
		}
	}
	if count >= maxPerUser {
		return errors.Wrapf(hardware.ErrLimitExceeded, "user has %d of %d allowed associations", count, maxPerUser)
	}

	if _, exists := s.associations[association.ID]; exists {
		return errors.Errorf("association %s already exists", association.ID)
	}

	s.associations[association.ID] = cloneAssociation(association)
	return nil
}

// GetAssociation implements hardware.Store.
func (s *Store) GetAssociation(_ context.Context, id string) (*hardware.Association, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.associations[id]
	if !ok {
		return nil, hardware.ErrAssociationNotFound
	}
	return cloneAssociation(a), nil
}

// UpdateAssociation implements hardware.Store.
func (s *Store) UpdateAssociation(_ context.Context, association *hardware.Association) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.associations[association.ID]; !ok {
		return hardware.ErrAssociationNotFound
	}
	association.UpdatedAt = time.Now()
	s.associations[association.ID] = cloneAssociation(association)
	return nil
}

// ListAssociations implements hardware.Store.
func (s *Store) ListAssociations(_ context.Context, userID string) ([]*hardware.Association, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*hardware.Association, 0)
	for _, a := range s.associations {
		if a.UserID == userID && a.IsActive {
			out = append(out, cloneAssociation(a))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// CreateSigningRequest implements hardware.Store.
func (s *Store) CreateSigningRequest(_ context.Context, request *hardware.SigningRequest, maxOpenPerUser int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, r := range s.requests {
		if r.UserID == request.UserID && r.Status.IsOpen() {
			count++
		}
	}
	if count >= maxOpenPerUser {
		return errors.Wrapf(hardware.ErrLimitExceeded, "user has %d of %d allowed pending requests", count, maxOpenPerUser)
	}

	if _, exists := s.requests[request.ID]; exists {
		return errors.Errorf("signing request %s already exists", request.ID)
	}

	s.requests[request.ID] = cloneRequest(request)
	return nil
}

// GetSigningRequest implements hardware.Store.
func (s *Store) GetSigningRequest(_ context.Context, id string) (*hardware.SigningRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.requests[id]
	if !ok {
		return nil, hardware.ErrRequestNotFound
	}
	return cloneRequest(r), nil
}

// UpdateSigningRequest implements hardware.Store.
func (s *Store) UpdateSigningRequest(_ context.Context, request *hardware.SigningRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.requests[request.ID]; !ok {
		return hardware.ErrRequestNotFound
	}
	request.UpdatedAt = time.Now()
	s.requests[request.ID] = cloneRequest(request)
	return nil
}

// ListSigningRequests implements hardware.Store.
func (s *Store) ListSigningRequests(_ context.Context, userID string) ([]*hardware.SigningRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*hardware.SigningRequest, 0)
	for _, r := range s.requests {
		if r.UserID == userID {
			out = append(out, cloneRequest(r))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// ListOpenRequestsByAssociation implements hardware.Store.
func (s *Store) ListOpenRequestsByAssociation(_ context.Context, associationID string) ([]*hardware.SigningRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*hardware.SigningRequest, 0)
	for _, r := range s.requests {
		if r.AssociationID == associationID && !r.Status.IsTerminal() {
			out = append(out, cloneRequest(r))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// ExpireRequests implements hardware.Store.
func (s *Store) ExpireRequests(_ context.Context, cutoff time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, r := range s.requests {
		if r.Status.IsOpen() && !r.ExpiresAt.After(cutoff) {
			r.Status = hardware.SigningStatusExpired
			r.UpdatedAt = time.Now()
			count++
		}
	}
	return count, nil
}

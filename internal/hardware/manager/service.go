package manager

import (
	"context"

	"github.com/aarondl/null/v8"
	"github.com/dropbox/godropbox/time2"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github/vaultbridge/hw-wallet/internal/config"
	"github/vaultbridge/hw-wallet/internal/hardware"
	"github/vaultbridge/hw-wallet/internal/hardware/signer"
	"github/vaultbridge/hw-wallet/internal/metrics"
	"github/vaultbridge/hw-wallet/internal/push"
	"github/vaultbridge/hw-wallet/internal/util"
)

// DeviceRegistration is the caller-supplied description of a physical device.
type DeviceRegistration struct {
	DeviceType      hardware.DeviceType
	DeviceID        string
	DeviceLabel     string
	FirmwareVersion string
	PublicKey       string
	Address         string
	Metadata        map[string]string
}

// Service orchestrates hardware wallet signing: device registration, request
// lifecycle, signer dispatch and lifecycle notifications. It is the only
// entry point callers use.
type Service interface {
	// RegisterDevice binds a device to a user for one chain. Enforces the
	// per-user association cap and validates chain support of the device class.
	RegisterDevice(ctx context.Context, userID string, device DeviceRegistration, chain hardware.Chain, derivationPath string) (*hardware.Association, error)

	// CreateSigningRequest prepares the device payload for a transaction and
	// admits a new pending request under the per-user cap.
	CreateSigningRequest(ctx context.Context, associationID string, tx hardware.TransactionData) (*hardware.SigningRequest, error)

	// MarkRequestDispatched moves a pending request to awaiting_device once the
	// payload was handed to a connected device.
	MarkRequestDispatched(ctx context.Context, requestID string) (*hardware.SigningRequest, error)

	// SubmitSignature validates the device signature and assembles the final
	// signed transaction, driving the request to completed or failed.
	SubmitSignature(ctx context.Context, requestID, signature, publicKey string) (*hardware.SignedTransaction, error)

	// CancelSigningRequest cancels a request. Silent no-op on terminal states
	// so client retries stay idempotent.
	CancelSigningRequest(ctx context.Context, requestID string) error

	// ExpireOldRequests sweeps all overdue open requests into expired state and
	// returns the count. Idempotent; driven by an external scheduler.
	ExpireOldRequests(ctx context.Context) (int, error)

	// RemoveAssociation cancels the association's outstanding requests and
	// soft-deletes the association.
	RemoveAssociation(ctx context.Context, associationID string) error

	// VerifyDevice marks the association as verified. The challenge/response
	// exchange itself happens at the device bridge, outside this subsystem.
	VerifyDevice(ctx context.Context, associationID string) (*hardware.Association, error)

	// GetSupportedChains returns the chains available for a device type; empty
	// for unknown types since this is a UI capability query.
	GetSupportedChains(deviceType hardware.DeviceType) []hardware.Chain

	// GetConfirmationSteps returns the family's ordered user instructions.
	GetConfirmationSteps(deviceType hardware.DeviceType) ([]string, error)

	// GetAssociation returns one association by ID.
	GetAssociation(ctx context.Context, id string) (*hardware.Association, error)

	// ListAssociations returns the user's active associations.
	ListAssociations(ctx context.Context, userID string) ([]*hardware.Association, error)

	// GetSigningRequest returns one signing request by ID.
	GetSigningRequest(ctx context.Context, id string) (*hardware.SigningRequest, error)

	// ListSigningRequests returns the user's signing requests, newest first.
	ListSigningRequests(ctx context.Context, userID string) ([]*hardware.SigningRequest, error)
}

type service struct {
	cfg      config.HardwareWallet
	store    hardware.Store
	registry *signer.Registry
	pusher   *push.Service
	metrics  *metrics.Service
	clock    time2.Clock
}

// NewService creates the orchestrator.
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewService(
	cfg config.HardwareWallet,
	store hardware.Store,
	registry *signer.Registry,
	pusher *push.Service,
	m *metrics.Service,
	clock time2.Clock,
) Service {
	return &service{
		cfg:      cfg,
		store:    store,
		registry: registry,
		pusher:   pusher,
		metrics:  m,
		clock:    clock,
	}
}

// RegisterDevice binds a device to a user for one chain.
func (s *service) RegisterDevice(ctx context.Context, userID string, device DeviceRegistration, chain hardware.Chain, derivationPath string) (*hardware.Association, error) {
	log := util.LogFromContext(ctx).With().
		Str("user_id", userID).
		Str("device_type", string(device.DeviceType)).
		Str("chain", string(chain)).
		Logger()

	deviceSigner, err := s.registry.ForDeviceType(device.DeviceType)
	if err != nil {
		return nil, err
	}

	if !deviceSigner.SupportsChain(chain) {
		return nil, errors.Wrapf(hardware.ErrInvalidDevice, "device type %q does not support chain %q", device.DeviceType, chain)
	}

	if derivationPath == "" {
		derivationPath = deviceSigner.DerivationPath(chain, 0)
	}

	now := s.clock.Now()
	association := &hardware.Association{
		ID:              uuid.New().String(),
		UserID:          userID,
		DeviceType:      device.DeviceType,
		DeviceID:        device.DeviceID,
		DeviceLabel:     device.DeviceLabel,
		FirmwareVersion: device.FirmwareVersion,
		PublicKey:       device.PublicKey,
		Address:         device.Address,
		Chain:           chain,
		DerivationPath:  derivationPath,
		SupportedChains: deviceSigner.SupportedChains(),
		Metadata:        device.Metadata,
		IsActive:        true,
		IsVerified:      false,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.store.CreateAssociation(ctx, association, s.cfg.MaxAssociationsPerUser); err != nil {
		return nil, err
	}

	s.metrics.AssociationsRegistered.Inc()
	s.pusher.Publish(ctx, hardware.EventTypeConnected, hardware.ConnectedEvent{
		AssociationID:   association.ID,
		UserID:          association.UserID,
		DeviceType:      association.DeviceType,
		DeviceID:        association.DeviceID,
		DeviceLabel:     association.DeviceLabel,
		PublicKey:       association.PublicKey,
		Address:         association.Address,
		Chain:           association.Chain,
		DerivationPath:  association.DerivationPath,
		SupportedChains: association.SupportedChains,
		Metadata:        association.Metadata,
	})

	log.Info().Str("association_id", association.ID).Msg("Hardware wallet registered")

	return association, nil
}

// CreateSigningRequest prepares a payload and admits a new pending request.
func (s *service) CreateSigningRequest(ctx context.Context, associationID string, tx hardware.TransactionData) (*hardware.SigningRequest, error) {
	log := util.LogFromContext(ctx).With().
		Str("association_id", associationID).
		Str("chain", string(tx.Chain)).
		Logger()

	association, err := s.store.GetAssociation(ctx, associationID)
	if err != nil {
		return nil, err
	}
	if !association.IsActive {
		return nil, errors.Wrap(hardware.ErrAssociationNotFound, "association is deactivated")
	}

	deviceSigner, err := s.registry.ForDeviceType(association.DeviceType)
	if err != nil {
		return nil, err
	}

	prepared, err := deviceSigner.PrepareForSigning(&tx)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	request := &hardware.SigningRequest{
		ID:            uuid.New().String(),
		UserID:        association.UserID,
		AssociationID: association.ID,
		Status:        hardware.SigningStatusPending,
		Transaction:   tx,
		Chain:         tx.Chain,
		RawDataToSign: prepared.RawData,
		DisplayData:   prepared.DisplayData,
		Encoding:      prepared.Encoding,
		DeviceType:    association.DeviceType,
		ExpiresAt:     now.Add(s.cfg.SigningRequestTTL),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.store.CreateSigningRequest(ctx, request, s.cfg.MaxPendingRequestsPerUser); err != nil {
		return nil, err
	}

	s.metrics.SigningRequestsCreated.Inc()
	s.pusher.Publish(ctx, hardware.EventTypeSigningRequested, hardware.SigningRequestedEvent{
		RequestID:     request.ID,
		AssociationID: request.AssociationID,
		UserID:        request.UserID,
		Chain:         request.Chain,
		Transaction:   request.Transaction,
		RawDataToSign: request.RawDataToSign,
		ExpiresAt:     request.ExpiresAt,
		Encoding:      request.Encoding,
		DeviceType:    request.DeviceType,
		DisplayData:   request.DisplayData,
	})

	log.Info().
		Str("request_id", request.ID).
		Str("encoding", string(request.Encoding)).
		Time("expires_at", request.ExpiresAt).
		Msg("Signing request created")

	return request, nil
}

// MarkRequestDispatched moves a pending request to awaiting_device.
func (s *service) MarkRequestDispatched(ctx context.Context, requestID string) (*hardware.SigningRequest, error) {
	request, err := s.store.GetSigningRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if request.Status == hardware.SigningStatusAwaitingDevice {
		return request, nil
	}
	if request.Status != hardware.SigningStatusPending {
		return nil, errors.Wrapf(hardware.ErrNotProcessable, "request is %s", request.Status)
	}

	if err := request.TransitionTo(hardware.SigningStatusAwaitingDevice); err != nil {
		return nil, err
	}
	if err := s.store.UpdateSigningRequest(ctx, request); err != nil {
		return nil, err
	}

	return request, nil
}

// SubmitSignature validates and assembles the device's returned signature.
func (s *service) SubmitSignature(ctx context.Context, requestID, signature, publicKey string) (*hardware.SignedTransaction, error) {
	log := util.LogFromContext(ctx).With().
		Str("request_id", requestID).
		Logger()

	request, err := s.store.GetSigningRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if !request.Status.IsOpen() {
		return nil, errors.Wrapf(hardware.ErrNotProcessable, "request is %s", request.Status)
	}
	if request.IsExpired(s.clock.Now()) {
		return nil, errors.Wrap(hardware.ErrNotProcessable, "request has expired")
	}

	if err := request.TransitionTo(hardware.SigningStatusSigning); err != nil {
		return nil, err
	}
	if err := s.store.UpdateSigningRequest(ctx, request); err != nil {
		return nil, err
	}

	deviceSigner, err := s.registry.ForDeviceType(request.DeviceType)
	if err != nil {
		return nil, s.failRequest(ctx, request, err)
	}

	if !deviceSigner.ValidateSignature(&request.Transaction, signature, publicKey) {
		err := errors.Wrap(hardware.ErrInvalidSignature, "signature validation failed")
		return nil, s.failRequest(ctx, request, err)
	}

	signed, err := deviceSigner.ConstructSignedTransaction(&request.Transaction, signature, publicKey)
	if err != nil {
		return nil, s.failRequest(ctx, request, err)
	}

	request.Signature = null.StringFrom(signature)
	request.PublicKey = null.StringFrom(publicKey)
	request.TransactionHash = null.StringFrom(signed.Hash)
	if err := request.TransitionTo(hardware.SigningStatusCompleted); err != nil {
		return nil, err
	}
	if err := s.store.UpdateSigningRequest(ctx, request); err != nil {
		return nil, err
	}

	s.touchAssociation(ctx, request.AssociationID)

	s.metrics.SigningCompleted.WithLabelValues("true").Inc()
	s.pusher.Publish(ctx, hardware.EventTypeSigningCompleted, hardware.SigningCompletedEvent{
		RequestID:       request.ID,
		AssociationID:   request.AssociationID,
		UserID:          request.UserID,
		Signature:       signature,
		PublicKey:       publicKey,
		TransactionHash: signed.Hash,
		Chain:           request.Chain,
		Success:         true,
	})

	log.Info().
		Str("transaction_hash", signed.Hash).
		Msg("Signing request completed")

	return signed, nil
}

// failRequest durably marks the request failed with the error's message, emits
// the completion event and hands the error back for re-raising to the caller.
func (s *service) failRequest(ctx context.Context, request *hardware.SigningRequest, cause error) error {
	log := util.LogFromContext(ctx).With().
		Str("request_id", request.ID).
		Logger()

	request.Error = null.StringFrom(cause.Error())
	if err := request.TransitionTo(hardware.SigningStatusFailed); err != nil {
		log.Error().Err(err).Msg("Failed to transition request to failed")
		return cause
	}
	if err := s.store.UpdateSigningRequest(ctx, request); err != nil {
		log.Error().Err(err).Msg("Failed to persist failed request")
		return cause
	}

	s.metrics.SigningCompleted.WithLabelValues("false").Inc()
	s.pusher.Publish(ctx, hardware.EventTypeSigningCompleted, hardware.SigningCompletedEvent{
		RequestID:     request.ID,
		AssociationID: request.AssociationID,
		UserID:        request.UserID,
		Chain:         request.Chain,
		Success:       false,
		ErrorMessage:  cause.Error(),
	})

	log.Info().Err(cause).Msg("Signing request failed")

	return cause
}

// touchAssociation updates lastUsedAt; best effort, a stale timestamp is not
// worth failing a completed signature over.
func (s *service) touchAssociation(ctx context.Context, associationID string) {
	association, err := s.store.GetAssociation(ctx, associationID)
	if err != nil {
		util.LogFromContext(ctx).Warn().Err(err).Str("association_id", associationID).Msg("Failed to load association for lastUsedAt update")
		return
	}
	association.LastUsedAt = null.TimeFrom(s.clock.Now())
	if err := s.store.UpdateAssociation(ctx, association); err != nil {
		util.LogFromContext(ctx).Warn().Err(err).Str("association_id", associationID).Msg("Failed to update association lastUsedAt")
	}
}

// CancelSigningRequest cancels a request, silently ignoring terminal states.
func (s *service) CancelSigningRequest(ctx context.Context, requestID string) error {
	request, err := s.store.GetSigningRequest(ctx, requestID)
	if err != nil {
		return err
	}

	// cancel is deliberately idempotent: terminal states are left untouched
	if request.Status.IsTerminal() {
		return nil
	}

	if err := request.TransitionTo(hardware.SigningStatusCancelled); err != nil {
		return err
	}
	if err := s.store.UpdateSigningRequest(ctx, request); err != nil {
		return err
	}

	s.metrics.SigningCancelled.Inc()
	util.LogFromContext(ctx).Info().Str("request_id", requestID).Msg("Signing request cancelled")

	return nil
}

// ExpireOldRequests sweeps overdue open requests into expired state.
func (s *service) ExpireOldRequests(ctx context.Context) (int, error) {
	count, err := s.store.ExpireRequests(ctx, s.clock.Now())
	if err != nil {
		return 0, errors.Wrap(err, "failed to expire signing requests")
	}

	if count > 0 {
		s.metrics.SigningExpired.Add(float64(count))
		util.LogFromContext(ctx).Info().Int("count", count).Msg("Expired overdue signing requests")
	}

	return count, nil
}

// RemoveAssociation cancels outstanding requests and soft-deletes the association.
func (s *service) RemoveAssociation(ctx context.Context, associationID string) error {
	log := util.LogFromContext(ctx).With().
		Str("association_id", associationID).
		Logger()

	association, err := s.store.GetAssociation(ctx, associationID)
	if err != nil {
		return err
	}

	open, err := s.store.ListOpenRequestsByAssociation(ctx, associationID)
	if err != nil {
		return errors.Wrap(err, "failed to list outstanding requests")
	}

	for _, request := range open {
		if err := request.TransitionTo(hardware.SigningStatusCancelled); err != nil {
			return err
		}
		if err := s.store.UpdateSigningRequest(ctx, request); err != nil {
			return err
		}
		s.metrics.SigningCancelled.Inc()
	}

	association.IsActive = false
	if err := s.store.UpdateAssociation(ctx, association); err != nil {
		return err
	}

	log.Info().Int("cancelled_requests", len(open)).Msg("Hardware wallet association removed")

	return nil
}

// VerifyDevice flags the association as verified.
func (s *service) VerifyDevice(ctx context.Context, associationID string) (*hardware.Association, error) {
	association, err := s.store.GetAssociation(ctx, associationID)
	if err != nil {
		return nil, err
	}

	association.IsVerified = true
	if err := s.store.UpdateAssociation(ctx, association); err != nil {
		return nil, err
	}

	util.LogFromContext(ctx).Info().Str("association_id", associationID).Msg("Hardware wallet verified")

	return association, nil
}

// GetSupportedChains returns the chains available for a device type.
func (s *service) GetSupportedChains(deviceType hardware.DeviceType) []hardware.Chain {
	return s.registry.SupportedChains(deviceType)
}

// GetConfirmationSteps returns the family's user instructions.
func (s *service) GetConfirmationSteps(deviceType hardware.DeviceType) ([]string, error) {
	deviceSigner, err := s.registry.ForDeviceType(deviceType)
	if err != nil {
		return nil, err
	}
	return deviceSigner.ConfirmationSteps(), nil
}

// GetAssociation returns one association by ID.
func (s *service) GetAssociation(ctx context.Context, id string) (*hardware.Association, error) {
	return s.store.GetAssociation(ctx, id)
}

// ListAssociations returns the user's active associations.
func (s *service) ListAssociations(ctx context.Context, userID string) ([]*hardware.Association, error) {
	return s.store.ListAssociations(ctx, userID)
}

// GetSigningRequest returns one signing request by ID.
func (s *service) GetSigningRequest(ctx context.Context, id string) (*hardware.SigningRequest, error) {
	return s.store.GetSigningRequest(ctx, id)
}

// ListSigningRequests returns the user's signing requests, newest first.
func (s *service) ListSigningRequests(ctx context.Context, userID string) ([]*hardware.SigningRequest, error) {
	return s.store.ListSigningRequests(ctx, userID)
}

// Package pgstore provides the postgres-backed hardware.Store. Admission
// control serializes on a per-user transaction-scoped advisory lock, so the
// count-then-insert sequence can never admit more rows than the cap even under
// concurrent writers.
package pgstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/aarondl/sqlboiler/v4/boil"
	"github.com/aarondl/sqlboiler/v4/queries"
	"github.com/dropbox/godropbox/time2"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github/vaultbridge/hw-wallet/internal/hardware"
	"github/vaultbridge/hw-wallet/internal/util/db"
)

// Store is the postgres hardware.Store.
type Store struct {
	db    *sql.DB
	clock time2.Clock
}

// New creates a postgres store.
func New(database *sql.DB, clock time2.Clock) *Store {
	return &Store{db: database, clock: clock}
}

const associationColumns = `id, user_id, device_type, device_id, device_label, firmware_version,
	public_key, address, chain, derivation_path, supported_chains, metadata,
	is_active, is_verified, last_used_at, created_at, updated_at`

const requestColumns = `id, user_id, association_id, status, chain, transaction_data,
	raw_data_to_sign, display_data, encoding, device_type, expires_at,
	signature, public_key, transaction_hash, error, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAssociation(row rowScanner) (*hardware.Association, error) {
	var (
		a               hardware.Association
		deviceType      string
		chain           string
		supportedChains pq.StringArray
		metadata        []byte
	)

	err := row.Scan(
		&a.ID, &a.UserID, &deviceType, &a.DeviceID, &a.DeviceLabel, &a.FirmwareVersion,
		&a.PublicKey, &a.Address, &chain, &a.DerivationPath, &supportedChains, &metadata,
		&a.IsActive, &a.IsVerified, &a.LastUsedAt, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	a.DeviceType = hardware.DeviceType(deviceType)
	a.Chain = hardware.Chain(chain)
	a.SupportedChains = make([]hardware.Chain, 0, len(supportedChains))
	for _, c := range supportedChains {
		a.SupportedChains = append(a.SupportedChains, hardware.Chain(c))
	}
	if len(metadata) > 0 {
		if err := json.Unmarshal(metadata, &a.Metadata); err != nil {
			return nil, errors.Wrap(err, "failed to decode association metadata")
		}
	}

	return &a, nil
}

func scanRequest(row rowScanner) (*hardware.SigningRequest, error) {
	var (
		r           hardware.SigningRequest
		status      string
		chain       string
		encoding    string
		deviceType  string
		txData      []byte
		displayData []byte
	)

	err := row.Scan(
		&r.ID, &r.UserID, &r.AssociationID, &status, &chain, &txData,
		&r.RawDataToSign, &displayData, &encoding, &deviceType, &r.ExpiresAt,
		&r.Signature, &r.PublicKey, &r.TransactionHash, &r.Error, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	r.Status = hardware.SigningStatus(status)
	r.Chain = hardware.Chain(chain)
	r.Encoding = hardware.Encoding(encoding)
	r.DeviceType = hardware.DeviceType(deviceType)
	if err := json.Unmarshal(txData, &r.Transaction); err != nil {
		return nil, errors.Wrap(err, "failed to decode transaction data")
	}
	if len(displayData) > 0 {
		if err := json.Unmarshal(displayData, &r.DisplayData); err != nil {
			return nil, errors.Wrap(err, "failed to decode display data")
		}
	}

	return &r, nil
}

func encodeJSON(v interface{}) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	encoded, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode json column")
	}
	return encoded, nil
}

// lockUser takes the transaction-scoped advisory lock serializing all
// admission-controlled writes of one user.
func lockUser(ctx context.Context, exec boil.ContextExecutor, userID string) error {
	_, err := queries.Raw("SELECT pg_advisory_xact_lock(hashtextextended($1, 0))", userID).ExecContext(ctx, exec)
	return errors.Wrap(err, "failed to acquire user admission lock")
}

func chainStrings(chains []hardware.Chain) pq.StringArray {
	out := make(pq.StringArray, 0, len(chains))
	for _, c := range chains {
		out = append(out, string(c))
	}
	return out
}

// CreateAssociation implements hardware.Store.
func (s *Store) CreateAssociation(ctx context.Context, association *hardware.Association, maxPerUser int) error {
	return db.WithTransaction(ctx, s.db, func(exec boil.ContextExecutor) error {
		if err := lockUser(ctx, exec, association.UserID); err != nil {
			return err
		}

		var count int
		err := queries.Raw(
			"SELECT COUNT(*) FROM hardware_wallet_associations WHERE user_id = $1 AND is_active",
			association.UserID,
		).QueryRowContext(ctx, exec).Scan(&count)
		if err != nil {
			return errors.Wrap(err, "failed to count active associations")
		}
		if count >= maxPerUser {
			return errors.Wrapf(hardware.ErrLimitExceeded, "user has %d of %d allowed associations", count, maxPerUser)
		}

		metadata, err := encodeJSON(association.Metadata)
		if err != nil {
			return err
		}

		_, err = queries.Raw(
			`INSERT INTO hardware_wallet_associations (`+associationColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
			association.ID, association.UserID, string(association.DeviceType), association.DeviceID,
			association.DeviceLabel, association.FirmwareVersion, association.PublicKey, association.Address,
			string(association.Chain), association.DerivationPath, chainStrings(association.SupportedChains),
			metadata, association.IsActive, association.IsVerified, association.LastUsedAt,
			association.CreatedAt, association.UpdatedAt,
		).ExecContext(ctx, exec)

		return errors.Wrap(err, "failed to insert association")
	})
}

// GetAssociation implements hardware.Store.
func (s *Store) GetAssociation(ctx context.Context, id string) (*hardware.Association, error) {
	row := queries.Raw(
		"SELECT "+associationColumns+" FROM hardware_wallet_associations WHERE id = $1", id,
	).QueryRowContext(ctx, s.db)

	association, err := scanAssociation(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, hardware.ErrAssociationNotFound
		}
		return nil, errors.Wrap(err, "failed to load association")
	}
	return association, nil
}

// UpdateAssociation implements hardware.Store.
func (s *Store) UpdateAssociation(ctx context.Context, association *hardware.Association) error {
	metadata, err := encodeJSON(association.Metadata)
	if err != nil {
		return err
	}

	association.UpdatedAt = s.clock.Now()

	result, err := queries.Raw(
		`UPDATE hardware_wallet_associations SET
			device_label = $2, firmware_version = $3, derivation_path = $4,
			supported_chains = $5, metadata = $6, is_active = $7, is_verified = $8,
			last_used_at = $9, updated_at = $10
		WHERE id = $1`,
		association.ID, association.DeviceLabel, association.FirmwareVersion, association.DerivationPath,
		chainStrings(association.SupportedChains), metadata, association.IsActive, association.IsVerified,
		association.LastUsedAt, association.UpdatedAt,
	).ExecContext(ctx, s.db)
	if err != nil {
		return errors.Wrap(err, "failed to update association")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "failed to read affected rows")
	}
	if affected == 0 {
		return hardware.ErrAssociationNotFound
	}
	return nil
}

// ListAssociations implements hardware.Store.
func (s *Store) ListAssociations(ctx context.Context, userID string) ([]*hardware.Association, error) {
	rows, err := queries.Raw(
		"SELECT "+associationColumns+" FROM hardware_wallet_associations WHERE user_id = $1 AND is_active ORDER BY created_at",
		userID,
	).QueryContext(ctx, s.db)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list associations")
	}
	defer rows.Close()

	out := make([]*hardware.Association, 0)
	for rows.Next() {
		association, err := scanAssociation(rows)
		if err != nil {
			return nil, errors.Wrap(err, "failed to scan association")
		}
		out = append(out, association)
	}
	return out, errors.Wrap(rows.Err(), "failed to iterate associations")
}

// CreateSigningRequest implements hardware.Store.
func (s *Store) CreateSigningRequest(ctx context.Context, request *hardware.SigningRequest, maxOpenPerUser int) error {
	return db.WithTransaction(ctx, s.db, func(exec boil.ContextExecutor) error {
		if err := lockUser(ctx, exec, request.UserID); err != nil {
			return err
		}

		var count int
		err := queries.Raw(
			"SELECT COUNT(*) FROM signing_requests WHERE user_id = $1 AND status = ANY($2)",
			request.UserID, openStatusArray(),
		).QueryRowContext(ctx, exec).Scan(&count)
		if err != nil {
			return errors.Wrap(err, "failed to count open signing requests")
		}
		if count >= maxOpenPerUser {
			return errors.Wrapf(hardware.ErrLimitExceeded, "user has %d of %d allowed pending requests", count, maxOpenPerUser)
		}

		txData, err := encodeJSON(request.Transaction)
		if err != nil {
			return err
		}
		displayData, err := encodeJSON(request.DisplayData)
		if err != nil {
			return err
		}

		_, err = queries.Raw(
			`INSERT INTO signing_requests (`+requestColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
			request.ID, request.UserID, request.AssociationID, string(request.Status), string(request.Chain),
			txData, request.RawDataToSign, displayData, string(request.Encoding), string(request.DeviceType),
			request.ExpiresAt, request.Signature, request.PublicKey, request.TransactionHash, request.Error,
			request.CreatedAt, request.UpdatedAt,
		).ExecContext(ctx, exec)

		return errors.Wrap(err, "failed to insert signing request")
	})
}

func openStatusArray() pq.StringArray {
	statuses := hardware.OpenStatuses()
	out := make(pq.StringArray, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, string(s))
	}
	return out
}

// GetSigningRequest implements hardware.Store.
func (s *Store) GetSigningRequest(ctx context.Context, id string) (*hardware.SigningRequest, error) {
	row := queries.Raw(
		"SELECT "+requestColumns+" FROM signing_requests WHERE id = $1", id,
	).QueryRowContext(ctx, s.db)

	request, err := scanRequest(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, hardware.ErrRequestNotFound
		}
		return nil, errors.Wrap(err, "failed to load signing request")
	}
	return request, nil
}

// UpdateSigningRequest implements hardware.Store. The row is locked before the
// status write so concurrent submissions serialize on the request.
func (s *Store) UpdateSigningRequest(ctx context.Context, request *hardware.SigningRequest) error {
	request.UpdatedAt = s.clock.Now()

	return db.WithTransaction(ctx, s.db, func(exec boil.ContextExecutor) error {
		var id string
		err := queries.Raw(
			"SELECT id FROM signing_requests WHERE id = $1 FOR UPDATE", request.ID,
		).QueryRowContext(ctx, exec).Scan(&id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return hardware.ErrRequestNotFound
			}
			return errors.Wrap(err, "failed to lock signing request")
		}

		_, err = queries.Raw(
			`UPDATE signing_requests SET
				status = $2, signature = $3, public_key = $4, transaction_hash = $5,
				error = $6, updated_at = $7
			WHERE id = $1`,
			request.ID, string(request.Status), request.Signature, request.PublicKey,
			request.TransactionHash, request.Error, request.UpdatedAt,
		).ExecContext(ctx, exec)

		return errors.Wrap(err, "failed to update signing request")
	})
}

// ListSigningRequests implements hardware.Store.
func (s *Store) ListSigningRequests(ctx context.Context, userID string) ([]*hardware.SigningRequest, error) {
	return s.listRequests(ctx,
		"SELECT "+requestColumns+" FROM signing_requests WHERE user_id = $1 ORDER BY created_at DESC",
		userID,
	)
}

// ListOpenRequestsByAssociation implements hardware.Store.
func (s *Store) ListOpenRequestsByAssociation(ctx context.Context, associationID string) ([]*hardware.SigningRequest, error) {
	return s.listRequests(ctx,
		`SELECT `+requestColumns+` FROM signing_requests
		WHERE association_id = $1 AND status NOT IN ('completed', 'failed', 'expired', 'cancelled')
		ORDER BY created_at`,
		associationID,
	)
}

func (s *Store) listRequests(ctx context.Context, query string, args ...interface{}) ([]*hardware.SigningRequest, error) {
	rows, err := queries.Raw(query, args...).QueryContext(ctx, s.db)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list signing requests")
	}
	defer rows.Close()

	out := make([]*hardware.SigningRequest, 0)
	for rows.Next() {
		request, err := scanRequest(rows)
		if err != nil {
			return nil, errors.Wrap(err, "failed to scan signing request")
		}
		out = append(out, request)
	}
	return out, errors.Wrap(rows.Err(), "failed to iterate signing requests")
}

// ExpireRequests implements hardware.Store.
func (s *Store) ExpireRequests(ctx context.Context, cutoff time.Time) (int, error) {
	result, err := queries.Raw(
		`UPDATE signing_requests SET status = $1, updated_at = $2
		WHERE status = ANY($3) AND expires_at <= $4`,
		string(hardware.SigningStatusExpired), s.clock.Now(), openStatusArray(), cutoff,
	).ExecContext(ctx, s.db)
	if err != nil {
		return 0, errors.Wrap(err, "failed to expire signing requests")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, errors.Wrap(err, "failed to read affected rows")
	}
	return int(affected), nil
}

var _ hardware.Store = (*Store)(nil)

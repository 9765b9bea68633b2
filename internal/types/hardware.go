package types

import (
	"github.com/go-openapi/errors"
	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/validate"
)

// PostRegisterDevicePayload is the request body for registering a hardware wallet.
type PostRegisterDevicePayload struct {
	// ID of the user the device is registered for
	// Required: true
	UserID *string `json:"userId"`

	// Device model identifier (e.g. ledger_nano_x, trezor_model_t)
	// Required: true
	DeviceType *string `json:"deviceType"`

	// Stable identifier of the physical device
	// Required: true
	DeviceID *string `json:"deviceId"`

	// Optional user-chosen label
	DeviceLabel string `json:"deviceLabel,omitempty"`

	// Firmware version reported by the device
	FirmwareVersion string `json:"firmwareVersion,omitempty"`

	// Public key exported by the device for the derivation path
	// Required: true
	PublicKey *string `json:"publicKey"`

	// On-chain address derived from the public key
	// Required: true
	Address *string `json:"address"`

	// Chain the association is created for
	// Required: true
	Chain *string `json:"chain"`

	// BIP44 derivation path; defaults to the device family standard when omitted
	DerivationPath string `json:"derivationPath,omitempty"`

	// Free-form device metadata
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Validate validates this post register device payload
func (m *PostRegisterDevicePayload) Validate(_ strfmt.Registry) error {
	var res []error

	if err := validate.Required("userId", "body", m.UserID); err != nil {
		res = append(res, err)
	}
	if err := validate.Required("deviceType", "body", m.DeviceType); err != nil {
		res = append(res, err)
	}
	if err := validate.Required("deviceId", "body", m.DeviceID); err != nil {
		res = append(res, err)
	}
	if err := validate.Required("publicKey", "body", m.PublicKey); err != nil {
		res = append(res, err)
	}
	if err := validate.Required("address", "body", m.Address); err != nil {
		res = append(res, err)
	}
	if err := validate.Required("chain", "body", m.Chain); err != nil {
		res = append(res, err)
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}
	return nil
}

// HardwareWalletAssociationResponse is the wire shape of one association.
type HardwareWalletAssociationResponse struct {
	// Required: true
	ID *string `json:"id"`
	// Required: true
	UserID *string `json:"userId"`
	// Required: true
	DeviceType *string `json:"deviceType"`
	// Required: true
	DeviceID *string `json:"deviceId"`

	DeviceLabel     string `json:"deviceLabel,omitempty"`
	FirmwareVersion string `json:"firmwareVersion,omitempty"`

	// Required: true
	PublicKey *string `json:"publicKey"`
	// Required: true
	Address *string `json:"address"`
	// Required: true
	Chain *string `json:"chain"`
	// Required: true
	DerivationPath *string `json:"derivationPath"`

	SupportedChains []string          `json:"supportedChains"`
	Metadata        map[string]string `json:"metadata,omitempty"`

	// Required: true
	IsActive *bool `json:"isActive"`
	// Required: true
	IsVerified *bool `json:"isVerified"`

	LastUsedAt *strfmt.DateTime `json:"lastUsedAt,omitempty"`

	// Required: true
	CreatedAt *strfmt.DateTime `json:"createdAt"`
	// Required: true
	UpdatedAt *strfmt.DateTime `json:"updatedAt"`
}

// Validate validates this hardware wallet association response
func (m *HardwareWalletAssociationResponse) Validate(_ strfmt.Registry) error {
	var res []error

	if err := validate.Required("id", "body", m.ID); err != nil {
		res = append(res, err)
	}
	if err := validate.Required("userId", "body", m.UserID); err != nil {
		res = append(res, err)
	}
	if err := validate.Required("deviceType", "body", m.DeviceType); err != nil {
		res = append(res, err)
	}
	if err := validate.Required("deviceId", "body", m.DeviceID); err != nil {
		res = append(res, err)
	}
	if err := validate.Required("publicKey", "body", m.PublicKey); err != nil {
		res = append(res, err)
	}
	if err := validate.Required("address", "body", m.Address); err != nil {
		res = append(res, err)
	}
	if err := validate.Required("chain", "body", m.Chain); err != nil {
		res = append(res, err)
	}
	if err := validate.Required("derivationPath", "body", m.DerivationPath); err != nil {
		res = append(res, err)
	}
	if err := validate.Required("isActive", "body", m.IsActive); err != nil {
		res = append(res, err)
	}
	if err := validate.Required("isVerified", "body", m.IsVerified); err != nil {
		res = append(res, err)
	}
	if err := validate.Required("createdAt", "body", m.CreatedAt); err != nil {
		res = append(res, err)
	}
	if err := validate.Required("updatedAt", "body", m.UpdatedAt); err != nil {
		res = append(res, err)
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}
	return nil
}

// GetAssociationListResponse wraps the association list of one user.
type GetAssociationListResponse struct {
	Associations []*HardwareWalletAssociationResponse `json:"associations"`
}

// Validate validates this get association list response
func (m *GetAssociationListResponse) Validate(formats strfmt.Registry) error {
	var res []error

	for _, a := range m.Associations {
		if a == nil {
			continue
		}
		if err := a.Validate(formats); err != nil {
			res = append(res, err)
		}
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}
	return nil
}

// TransactionDataPayload is the transaction portion of a signing request.
type TransactionDataPayload struct {
	// Required: true
	Chain *string `json:"chain"`

	From string `json:"from,omitempty"`

	// Required: true
	To *string `json:"to"`

	// Amount in the chain's smallest unit, decimal string
	// Required: true
	Value *string `json:"value"`

	// Hex-encoded call data
	Data string `json:"data,omitempty"`

	Nonce    *int64 `json:"nonce,omitempty"`
	GasLimit *int64 `json:"gasLimit,omitempty"`

	GasPrice             string `json:"gasPrice,omitempty"`
	MaxFeePerGas         string `json:"maxFeePerGas,omitempty"`
	MaxPriorityFeePerGas string `json:"maxPriorityFeePerGas,omitempty"`
}

// Validate validates this transaction data payload
func (m *TransactionDataPayload) Validate(_ strfmt.Registry) error {
	var res []error

	if err := validate.Required("chain", "body", m.Chain); err != nil {
		res = append(res, err)
	}
	if err := validate.Required("to", "body", m.To); err != nil {
		res = append(res, err)
	}
	if err := validate.Required("value", "body", m.Value); err != nil {
		res = append(res, err)
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}
	return nil
}

// PostSigningRequestPayload is the request body for creating a signing request.
type PostSigningRequestPayload struct {
	// Required: true
	AssociationID *string `json:"associationId"`

	// Required: true
	Transaction *TransactionDataPayload `json:"transaction"`
}

// Validate validates this post signing request payload
func (m *PostSigningRequestPayload) Validate(formats strfmt.Registry) error {
	var res []error

	if err := validate.Required("associationId", "body", m.AssociationID); err != nil {
		res = append(res, err)
	}
	if err := validate.Required("transaction", "body", m.Transaction); err != nil {
		res = append(res, err)
	} else if m.Transaction != nil {
		if err := m.Transaction.Validate(formats); err != nil {
			res = append(res, err)
		}
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}
	return nil
}

// SigningRequestResponse is the wire shape of one signing request.
type SigningRequestResponse struct {
	// Required: true
	ID *string `json:"id"`
	// Required: true
	UserID *string `json:"userId"`
	// Required: true
	AssociationID *string `json:"associationId"`
	// Required: true
	Status *string `json:"status"`
	// Required: true
	Chain *string `json:"chain"`

	// Exact payload the device must sign, hex encoded
	// Required: true
	RawDataToSign *string `json:"rawDataToSign"`

	DisplayData map[string]string `json:"displayData,omitempty"`

	// Required: true
	Encoding *string `json:"encoding"`
	// Required: true
	DeviceType *string `json:"deviceType"`

	// Required: true
	ExpiresAt *strfmt.DateTime `json:"expiresAt"`

	Signature       string `json:"signature,omitempty"`
	PublicKey       string `json:"publicKey,omitempty"`
	TransactionHash string `json:"transactionHash,omitempty"`
	Error           string `json:"error,omitempty"`

	// Required: true
	CreatedAt *strfmt.DateTime `json:"createdAt"`
	// Required: true
	UpdatedAt *strfmt.DateTime `json:"updatedAt"`
}

// Validate validates this signing request response
func (m *SigningRequestResponse) Validate(_ strfmt.Registry) error {
	var res []error

	if err := validate.Required("id", "body", m.ID); err != nil {
		res = append(res, err)
	}
	if err := validate.Required("userId", "body", m.UserID); err != nil {
		res = append(res, err)
	}
	if err := validate.Required("associationId", "body", m.AssociationID); err != nil {
		res = append(res, err)
	}
	if err := validate.Required("status", "body", m.Status); err != nil {
		res = append(res, err)
	}
	if err := validate.Required("chain", "body", m.Chain); err != nil {
		res = append(res, err)
	}
	if err := validate.Required("rawDataToSign", "body", m.RawDataToSign); err != nil {
		res = append(res, err)
	}
	if err := validate.Required("encoding", "body", m.Encoding); err != nil {
		res = append(res, err)
	}
	if err := validate.Required("deviceType", "body", m.DeviceType); err != nil {
		res = append(res, err)
	}
	if err := validate.Required("expiresAt", "body", m.ExpiresAt); err != nil {
		res = append(res, err)
	}
	if err := validate.Required("createdAt", "body", m.CreatedAt); err != nil {
		res = append(res, err)
	}
	if err := validate.Required("updatedAt", "body", m.UpdatedAt); err != nil {
		res = append(res, err)
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}
	return nil
}

// GetSigningRequestListResponse wraps the signing request list of one user.
type GetSigningRequestListResponse struct {
	SigningRequests []*SigningRequestResponse `json:"signingRequests"`
}

// Validate validates this get signing request list response
func (m *GetSigningRequestListResponse) Validate(formats strfmt.Registry) error {
	var res []error

	for _, r := range m.SigningRequests {
		if r == nil {
			continue
		}
		if err := r.Validate(formats); err != nil {
			res = append(res, err)
		}
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}
	return nil
}

// PostSubmitSignaturePayload is the request body for submitting a device signature.
type PostSubmitSignaturePayload struct {
	// Signature returned by the device
	// Required: true
	Signature *string `json:"signature"`

	// Public key the device signed with
	// Required: true
	PublicKey *string `json:"publicKey"`
}

// Validate validates this post submit signature payload
func (m *PostSubmitSignaturePayload) Validate(_ strfmt.Registry) error {
	var res []error

	if err := validate.Required("signature", "body", m.Signature); err != nil {
		res = append(res, err)
	}
	if err := validate.Required("publicKey", "body", m.PublicKey); err != nil {
		res = append(res, err)
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}
	return nil
}

// SignedTransactionResponse is the broadcast-ready result of a completed signature.
type SignedTransactionResponse struct {
	// Required: true
	RawTransaction *string `json:"rawTransaction"`

	// Required: true
	TransactionHash *string `json:"transactionHash"`
}

// Validate validates this signed transaction response
func (m *SignedTransactionResponse) Validate(_ strfmt.Registry) error {
	var res []error

	if err := validate.Required("rawTransaction", "body", m.RawTransaction); err != nil {
		res = append(res, err)
	}
	if err := validate.Required("transactionHash", "body", m.TransactionHash); err != nil {
		res = append(res, err)
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}
	return nil
}

// GetSupportedChainsResponse lists the chains a device type can sign for.
type GetSupportedChainsResponse struct {
	// Required: true
	DeviceType *string `json:"deviceType"`

	Chains []string `json:"chains"`
}

// Validate validates this get supported chains response
func (m *GetSupportedChainsResponse) Validate(_ strfmt.Registry) error {
	if err := validate.Required("deviceType", "body", m.DeviceType); err != nil {
		return err
	}
	return nil
}

// GetConfirmationStepsResponse lists the ordered device confirmation instructions.
type GetConfirmationStepsResponse struct {
	// Required: true
	DeviceType *string `json:"deviceType"`

	Steps []string `json:"steps"`
}

// Validate validates this get confirmation steps response
func (m *GetConfirmationStepsResponse) Validate(_ strfmt.Registry) error {
	if err := validate.Required("deviceType", "body", m.DeviceType); err != nil {
		return err
	}
	return nil
}

// PostExpireRequestsResponse reports one expiry sweep run.
type PostExpireRequestsResponse struct {
	// Number of requests moved to expired
	// Required: true
	ExpiredCount *int64 `json:"expiredCount"`
}

// Validate validates this post expire requests response
func (m *PostExpireRequestsResponse) Validate(_ strfmt.Registry) error {
	if err := validate.Required("expiredCount", "body", m.ExpiredCount); err != nil {
		return err
	}
	return nil
}

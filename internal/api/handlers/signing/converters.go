package signing

import (
	"encoding/hex"
	"net/http"
	"strings"

	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/swag"

	"github/vaultbridge/hw-wallet/internal/api/httperrors"
	"github/vaultbridge/hw-wallet/internal/hardware"
	"github/vaultbridge/hw-wallet/internal/types"
)

func signingRequestResponse(r *hardware.SigningRequest) *types.SigningRequestResponse {
	createdAt := strfmt.DateTime(r.CreatedAt)
	updatedAt := strfmt.DateTime(r.UpdatedAt)
	expiresAt := strfmt.DateTime(r.ExpiresAt)

	return &types.SigningRequestResponse{
		ID:              swag.String(r.ID),
		UserID:          swag.String(r.UserID),
		AssociationID:   swag.String(r.AssociationID),
		Status:          swag.String(string(r.Status)),
		Chain:           swag.String(string(r.Chain)),
		RawDataToSign:   swag.String(r.RawDataToSign),
		DisplayData:     r.DisplayData,
		Encoding:        swag.String(string(r.Encoding)),
		DeviceType:      swag.String(string(r.DeviceType)),
		ExpiresAt:       &expiresAt,
		Signature:       r.Signature.String,
		PublicKey:       r.PublicKey.String,
		TransactionHash: r.TransactionHash.String,
		Error:           r.Error.String,
		CreatedAt:       &createdAt,
		UpdatedAt:       &updatedAt,
	}
}

func validationError(key, in, message string) error {
	return httperrors.NewHTTPValidationError(
		http.StatusBadRequest,
		types.PublicHTTPErrorTypeGeneric,
		"Invalid "+key,
		[]*types.HTTPValidationErrorDetail{
			{
				Key:   swag.String(key),
				In:    swag.String(in),
				Error: swag.String(message),
			},
		},
	)
}

// transactionDataFromPayload converts the wire transaction into the domain
// shape, rejecting values the domain types cannot represent.
func transactionDataFromPayload(payload *types.TransactionDataPayload) (hardware.TransactionData, error) {
	tx := hardware.TransactionData{
		Chain:                hardware.Chain(swag.StringValue(payload.Chain)),
		From:                 payload.From,
		To:                   swag.StringValue(payload.To),
		Value:                swag.StringValue(payload.Value),
		GasPrice:             payload.GasPrice,
		MaxFeePerGas:         payload.MaxFeePerGas,
		MaxPriorityFeePerGas: payload.MaxPriorityFeePerGas,
	}

	if payload.Data != "" {
		data, err := hex.DecodeString(strings.TrimPrefix(payload.Data, "0x"))
		if err != nil {
			return tx, validationError("data", "body", "must be hex encoded")
		}
		tx.Data = data
	}

	if payload.Nonce != nil {
		if *payload.Nonce < 0 {
			return tx, validationError("nonce", "body", "must be non-negative")
		}
		nonce := uint64(*payload.Nonce)
		tx.Nonce = &nonce
	}

	if payload.GasLimit != nil {
		if *payload.GasLimit < 0 {
			return tx, validationError("gasLimit", "body", "must be non-negative")
		}
		gasLimit := uint64(*payload.GasLimit)
		tx.GasLimit = &gasLimit
	}

	return tx, nil
}

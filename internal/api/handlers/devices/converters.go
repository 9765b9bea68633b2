package devices

import (
	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/swag"

	"github/vaultbridge/hw-wallet/internal/hardware"
	"github/vaultbridge/hw-wallet/internal/types"
)

func associationResponse(a *hardware.Association) *types.HardwareWalletAssociationResponse {
	chains := make([]string, 0, len(a.SupportedChains))
	for _, c := range a.SupportedChains {
		chains = append(chains, string(c))
	}

	createdAt := strfmt.DateTime(a.CreatedAt)
	updatedAt := strfmt.DateTime(a.UpdatedAt)

	response := &types.HardwareWalletAssociationResponse{
		ID:              swag.String(a.ID),
		UserID:          swag.String(a.UserID),
		DeviceType:      swag.String(string(a.DeviceType)),
		DeviceID:        swag.String(a.DeviceID),
		DeviceLabel:     a.DeviceLabel,
		FirmwareVersion: a.FirmwareVersion,
		PublicKey:       swag.String(a.PublicKey),
		Address:         swag.String(a.Address),
		Chain:           swag.String(string(a.Chain)),
		DerivationPath:  swag.String(a.DerivationPath),
		SupportedChains: chains,
		Metadata:        a.Metadata,
		IsActive:        swag.Bool(a.IsActive),
		IsVerified:      swag.Bool(a.IsVerified),
		CreatedAt:       &createdAt,
		UpdatedAt:       &updatedAt,
	}

	if a.LastUsedAt.Valid {
		lastUsedAt := strfmt.DateTime(a.LastUsedAt.Time)
		response.LastUsedAt = &lastUsedAt
	}

	return response
}

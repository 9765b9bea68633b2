package devices_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/go-openapi/swag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github/vaultbridge/hw-wallet/internal/api"
	"github/vaultbridge/hw-wallet/internal/test"
	"github/vaultbridge/hw-wallet/internal/types"
)

func registerDevicePayload(userID string) test.GenericPayload {
	return test.GenericPayload{
		"userId":     userID,
		"deviceType": "mock",
		"deviceId":   "device-001",
		"publicKey":  strings.Repeat("ab", 33),
		"address":    "0x1111111111111111111111111111111111111111",
		"chain":      "ethereum",
	}
}

func TestPostRegisterDevice(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, "POST", "/api/v1/hardware-wallets", registerDevicePayload("user-1"), nil)
		require.Equal(t, http.StatusCreated, res.Result().StatusCode)

		var response types.HardwareWalletAssociationResponse
		test.ParseResponseAndValidate(t, res, &response)

		assert.Equal(t, "user-1", swag.StringValue(response.UserID))
		assert.Equal(t, "mock", swag.StringValue(response.DeviceType))
		assert.Equal(t, "ethereum", swag.StringValue(response.Chain))
		assert.NotEmpty(t, swag.StringValue(response.DerivationPath))
		assert.True(t, swag.BoolValue(response.IsActive))
		assert.False(t, swag.BoolValue(response.IsVerified))
		assert.Nil(t, response.LastUsedAt)
	})
}

func TestPostRegisterDeviceMissingFields(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		payload := registerDevicePayload("user-1")
		delete(payload, "publicKey")

		res := test.PerformRequest(t, s, "POST", "/api/v1/hardware-wallets", payload, nil)
		require.Equal(t, http.StatusBadRequest, res.Result().StatusCode)
	})
}

func TestPostRegisterDeviceUnsupportedType(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		payload := registerDevicePayload("user-1")
		payload["deviceType"] = "keepkey"

		res := test.PerformRequest(t, s, "POST", "/api/v1/hardware-wallets", payload, nil)
		require.Equal(t, http.StatusBadRequest, res.Result().StatusCode)

		var response types.PublicHTTPError
		test.ParseResponseBody(t, res, &response)
		assert.Equal(t, types.PublicHTTPErrorTypeUnsupportedDeviceType, swag.StringValue(response.Type))
	})
}

func TestPostRegisterDeviceChainMismatch(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		payload := registerDevicePayload("user-1")
		payload["chain"] = "solana"

		res := test.PerformRequest(t, s, "POST", "/api/v1/hardware-wallets", payload, nil)
		require.Equal(t, http.StatusBadRequest, res.Result().StatusCode)

		var response types.PublicHTTPError
		test.ParseResponseBody(t, res, &response)
		assert.Equal(t, types.PublicHTTPErrorTypeInvalidDevice, swag.StringValue(response.Type))
	})
}

func TestPostRegisterDeviceLimitExceeded(t *testing.T) {
	cfg := test.DefaultTestConfig()
	cfg.HardwareWallet.MaxAssociationsPerUser = 1

	test.WithTestServerConfigurable(t, cfg, func(s *api.Server) {
		res := test.PerformRequest(t, s, "POST", "/api/v1/hardware-wallets", registerDevicePayload("user-1"), nil)
		require.Equal(t, http.StatusCreated, res.Result().StatusCode)

		res = test.PerformRequest(t, s, "POST", "/api/v1/hardware-wallets", registerDevicePayload("user-1"), nil)
		require.Equal(t, http.StatusConflict, res.Result().StatusCode)

		var response types.PublicHTTPError
		test.ParseResponseBody(t, res, &response)
		assert.Equal(t, types.PublicHTTPErrorTypeLimitExceeded, swag.StringValue(response.Type))

		// other users are unaffected by the cap
		res = test.PerformRequest(t, s, "POST", "/api/v1/hardware-wallets", registerDevicePayload("user-2"), nil)
		require.Equal(t, http.StatusCreated, res.Result().StatusCode)
	})
}

func TestGetAssociationListRequiresUserID(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, "GET", "/api/v1/hardware-wallets", nil, nil)
		require.Equal(t, http.StatusBadRequest, res.Result().StatusCode)
	})
}

func TestAssociationLifecycle(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, "POST", "/api/v1/hardware-wallets", registerDevicePayload("user-1"), nil)
		require.Equal(t, http.StatusCreated, res.Result().StatusCode)

		var created types.HardwareWalletAssociationResponse
		test.ParseResponseAndValidate(t, res, &created)
		id := swag.StringValue(created.ID)

		res = test.PerformRequest(t, s, "GET", "/api/v1/hardware-wallets/"+id, nil, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		res = test.PerformRequest(t, s, "POST", "/api/v1/hardware-wallets/"+id+"/verify", nil, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		var verified types.HardwareWalletAssociationResponse
		test.ParseResponseAndValidate(t, res, &verified)
		assert.True(t, swag.BoolValue(verified.IsVerified))

		res = test.PerformRequest(t, s, "GET", "/api/v1/hardware-wallets?userId=user-1", nil, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		var list types.GetAssociationListResponse
		test.ParseResponseAndValidate(t, res, &list)
		require.Len(t, list.Associations, 1)

		res = test.PerformRequest(t, s, "DELETE", "/api/v1/hardware-wallets/"+id, nil, nil)
		require.Equal(t, http.StatusNoContent, res.Result().StatusCode)

		// soft deleted associations drop out of the list but stay readable
		res = test.PerformRequest(t, s, "GET", "/api/v1/hardware-wallets?userId=user-1", nil, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)
		test.ParseResponseAndValidate(t, res, &list)
		assert.Empty(t, list.Associations)

		res = test.PerformRequest(t, s, "GET", "/api/v1/hardware-wallets/"+id, nil, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		var removed types.HardwareWalletAssociationResponse
		test.ParseResponseAndValidate(t, res, &removed)
		assert.False(t, swag.BoolValue(removed.IsActive))
	})
}

func TestGetAssociationNotFound(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, "GET", "/api/v1/hardware-wallets/unknown-id", nil, nil)
		require.Equal(t, http.StatusNotFound, res.Result().StatusCode)

		var response types.PublicHTTPError
		test.ParseResponseBody(t, res, &response)
		assert.Equal(t, types.PublicHTTPErrorTypeAssociationNotFound, swag.StringValue(response.Type))
	})
}

func TestGetSupportedChains(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, "GET", "/api/v1/hardware-wallets/device-types/ledger_nano_x/chains", nil, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		var response types.GetSupportedChainsResponse
		test.ParseResponseAndValidate(t, res, &response)
		assert.Contains(t, response.Chains, "ethereum")
		assert.Contains(t, response.Chains, "bitcoin")

		// unknown device types yield an empty capability list, not an error
		res = test.PerformRequest(t, s, "GET", "/api/v1/hardware-wallets/device-types/keepkey/chains", nil, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)
		test.ParseResponseAndValidate(t, res, &response)
		assert.Empty(t, response.Chains)
	})
}

func TestGetConfirmationSteps(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, "GET", "/api/v1/hardware-wallets/device-types/trezor_model_t/confirmation-steps", nil, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		var response types.GetConfirmationStepsResponse
		test.ParseResponseAndValidate(t, res, &response)
		assert.NotEmpty(t, response.Steps)

		res = test.PerformRequest(t, s, "GET", "/api/v1/hardware-wallets/device-types/keepkey/confirmation-steps", nil, nil)
		require.Equal(t, http.StatusBadRequest, res.Result().StatusCode)
	})
}

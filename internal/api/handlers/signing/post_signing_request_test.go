package signing_test

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/go-openapi/swag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github/vaultbridge/hw-wallet/internal/api"
	"github/vaultbridge/hw-wallet/internal/test"
	"github/vaultbridge/hw-wallet/internal/types"
)

func registerMockDevice(t *testing.T, s *api.Server, userID string) string {
	t.Helper()

	res := test.PerformRequest(t, s, "POST", "/api/v1/hardware-wallets", test.GenericPayload{
		"userId":     userID,
		"deviceType": "mock",
		"deviceId":   "device-001",
		"publicKey":  strings.Repeat("ab", 33),
		"address":    "0x1111111111111111111111111111111111111111",
		"chain":      "ethereum",
	}, nil)
	require.Equal(t, http.StatusCreated, res.Result().StatusCode)

	var response types.HardwareWalletAssociationResponse
	test.ParseResponseAndValidate(t, res, &response)

	return swag.StringValue(response.ID)
}

func signingRequestPayload(associationID string) test.GenericPayload {
	return test.GenericPayload{
		"associationId": associationID,
		"transaction": map[string]interface{}{
			"chain":    "ethereum",
			"to":       "0x2222222222222222222222222222222222222222",
			"value":    "1000000000000000000",
			"nonce":    5,
			"gasLimit": 21000,
			"gasPrice": "1000000000",
		},
	}
}

func createSigningRequest(t *testing.T, s *api.Server, associationID string) *types.SigningRequestResponse {
	t.Helper()

	res := test.PerformRequest(t, s, "POST", "/api/v1/signing-requests", signingRequestPayload(associationID), nil)
	require.Equal(t, http.StatusCreated, res.Result().StatusCode)

	var response types.SigningRequestResponse
	test.ParseResponseAndValidate(t, res, &response)

	return &response
}

func TestPostSigningRequest(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		associationID := registerMockDevice(t, s, "user-1")

		request := createSigningRequest(t, s, associationID)
		assert.Equal(t, "pending", swag.StringValue(request.Status))
		assert.Equal(t, associationID, swag.StringValue(request.AssociationID))
		assert.NotEmpty(t, swag.StringValue(request.RawDataToSign))
		assert.Equal(t, "mock", swag.StringValue(request.DeviceType))
	})
}

func TestPostSigningRequestUnknownAssociation(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, "POST", "/api/v1/signing-requests", signingRequestPayload("unknown-id"), nil)
		require.Equal(t, http.StatusNotFound, res.Result().StatusCode)
	})
}

func TestPostSigningRequestInvalidGasPricing(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		associationID := registerMockDevice(t, s, "user-1")

		payload := signingRequestPayload(associationID)
		tx := payload["transaction"].(map[string]interface{})
		tx["maxFeePerGas"] = "3000000000" // mixing legacy and fee-market pricing

		res := test.PerformRequest(t, s, "POST", "/api/v1/signing-requests", payload, nil)
		require.Equal(t, http.StatusBadRequest, res.Result().StatusCode)
	})
}

func TestSigningFlowCompletes(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		associationID := registerMockDevice(t, s, "user-1")
		request := createSigningRequest(t, s, associationID)
		id := swag.StringValue(request.ID)

		res := test.PerformRequest(t, s, "POST", "/api/v1/signing-requests/"+id+"/dispatch", nil, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		var dispatched types.SigningRequestResponse
		test.ParseResponseAndValidate(t, res, &dispatched)
		assert.Equal(t, "awaiting_device", swag.StringValue(dispatched.Status))

		// dispatch retries are idempotent
		res = test.PerformRequest(t, s, "POST", "/api/v1/signing-requests/"+id+"/dispatch", nil, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		res = test.PerformRequest(t, s, "POST", "/api/v1/signing-requests/"+id+"/signature", test.GenericPayload{
			"signature": strings.Repeat("aa", 40),
			"publicKey": strings.Repeat("bb", 40),
		}, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		var signed types.SignedTransactionResponse
		test.ParseResponseAndValidate(t, res, &signed)
		assert.NotEmpty(t, swag.StringValue(signed.RawTransaction))
		assert.NotEmpty(t, swag.StringValue(signed.TransactionHash))

		res = test.PerformRequest(t, s, "GET", "/api/v1/signing-requests/"+id, nil, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		var completed types.SigningRequestResponse
		test.ParseResponseAndValidate(t, res, &completed)
		assert.Equal(t, "completed", swag.StringValue(completed.Status))
		assert.NotEmpty(t, completed.Signature)
		assert.NotEmpty(t, completed.TransactionHash)
	})
}

func TestSubmitSignatureInvalid(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		associationID := registerMockDevice(t, s, "user-1")
		request := createSigningRequest(t, s, associationID)
		id := swag.StringValue(request.ID)

		res := test.PerformRequest(t, s, "POST", "/api/v1/signing-requests/"+id+"/signature", test.GenericPayload{
			"signature": "tooshort",
			"publicKey": strings.Repeat("bb", 40),
		}, nil)
		require.Equal(t, http.StatusBadRequest, res.Result().StatusCode)

		var response types.PublicHTTPError
		test.ParseResponseBody(t, res, &response)
		assert.Equal(t, types.PublicHTTPErrorTypeInvalidSignature, swag.StringValue(response.Type))

		// the request is durably failed, retries are rejected as not processable
		res = test.PerformRequest(t, s, "POST", "/api/v1/signing-requests/"+id+"/signature", test.GenericPayload{
			"signature": strings.Repeat("aa", 40),
			"publicKey": strings.Repeat("bb", 40),
		}, nil)
		require.Equal(t, http.StatusConflict, res.Result().StatusCode)
	})
}

func TestSubmitSignatureExpired(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		associationID := registerMockDevice(t, s, "user-1")
		request := createSigningRequest(t, s, associationID)
		id := swag.StringValue(request.ID)

		test.MockClock(t, s).Advance(s.Config.HardwareWallet.SigningRequestTTL + time.Second)

		res := test.PerformRequest(t, s, "POST", "/api/v1/signing-requests/"+id+"/signature", test.GenericPayload{
			"signature": strings.Repeat("aa", 40),
			"publicKey": strings.Repeat("bb", 40),
		}, nil)
		require.Equal(t, http.StatusConflict, res.Result().StatusCode)

		// the sweep, not the rejected submission, moves the request to expired
		res = test.PerformRequest(t, s, "GET", "/api/v1/signing-requests/"+id, nil, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		var current types.SigningRequestResponse
		test.ParseResponseAndValidate(t, res, &current)
		assert.Equal(t, "pending", swag.StringValue(current.Status))
	})
}

func TestCancelSigningRequest(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		associationID := registerMockDevice(t, s, "user-1")
		request := createSigningRequest(t, s, associationID)
		id := swag.StringValue(request.ID)

		res := test.PerformRequest(t, s, "POST", "/api/v1/signing-requests/"+id+"/cancel", nil, nil)
		require.Equal(t, http.StatusNoContent, res.Result().StatusCode)

		// cancelling an already terminal request stays a silent no-op
		res = test.PerformRequest(t, s, "POST", "/api/v1/signing-requests/"+id+"/cancel", nil, nil)
		require.Equal(t, http.StatusNoContent, res.Result().StatusCode)

		res = test.PerformRequest(t, s, "POST", "/api/v1/signing-requests/unknown-id/cancel", nil, nil)
		require.Equal(t, http.StatusNotFound, res.Result().StatusCode)
	})
}

func TestGetSigningRequestList(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		associationID := registerMockDevice(t, s, "user-1")
		createSigningRequest(t, s, associationID)
		createSigningRequest(t, s, associationID)

		res := test.PerformRequest(t, s, "GET", "/api/v1/signing-requests?userId=user-1", nil, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		var list types.GetSigningRequestListResponse
		test.ParseResponseAndValidate(t, res, &list)
		assert.Len(t, list.SigningRequests, 2)

		res = test.PerformRequest(t, s, "GET", "/api/v1/signing-requests?userId=user-2", nil, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)
		test.ParseResponseAndValidate(t, res, &list)
		assert.Empty(t, list.SigningRequests)
	})
}

func TestPendingRequestLimit(t *testing.T) {
	cfg := test.DefaultTestConfig()
	cfg.HardwareWallet.MaxPendingRequestsPerUser = 1

	test.WithTestServerConfigurable(t, cfg, func(s *api.Server) {
		associationID := registerMockDevice(t, s, "user-1")
		request := createSigningRequest(t, s, associationID)

		res := test.PerformRequest(t, s, "POST", "/api/v1/signing-requests", signingRequestPayload(associationID), nil)
		require.Equal(t, http.StatusConflict, res.Result().StatusCode)

		// cancelling frees the slot
		res = test.PerformRequest(t, s, "POST", "/api/v1/signing-requests/"+swag.StringValue(request.ID)+"/cancel", nil, nil)
		require.Equal(t, http.StatusNoContent, res.Result().StatusCode)

		res = test.PerformRequest(t, s, "POST", "/api/v1/signing-requests", signingRequestPayload(associationID), nil)
		require.Equal(t, http.StatusCreated, res.Result().StatusCode)
	})
}

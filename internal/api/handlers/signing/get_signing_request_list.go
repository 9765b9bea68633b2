package signing

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github/vaultbridge/hw-wallet/internal/api"
	"github/vaultbridge/hw-wallet/internal/api/httperrors"
	"github/vaultbridge/hw-wallet/internal/types"
	"github/vaultbridge/hw-wallet/internal/util"
)

func GetSigningRequestListRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Signing.GET("", getSigningRequestListHandler(s))
}

func getSigningRequestListHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		userID := c.QueryParam("userId")
		if userID == "" {
			return validationError("userId", "query", "required")
		}

		requests, err := s.Hardware.ListSigningRequests(ctx, userID)
		if err != nil {
			return httperrors.MapHardwareError(err)
		}

		response := &types.GetSigningRequestListResponse{
			SigningRequests: make([]*types.SigningRequestResponse, 0, len(requests)),
		}
		for _, request := range requests {
			response.SigningRequests = append(response.SigningRequests, signingRequestResponse(request))
		}

		return util.ValidateAndReturn(c, http.StatusOK, response)
	}
}

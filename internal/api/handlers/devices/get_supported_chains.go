package devices

import (
	"net/http"

	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"

	"github/vaultbridge/hw-wallet/internal/api"
	"github/vaultbridge/hw-wallet/internal/hardware"
	"github/vaultbridge/hw-wallet/internal/types"
	"github/vaultbridge/hw-wallet/internal/util"
)

func GetSupportedChainsRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Hardware.GET("/device-types/:deviceType/chains", getSupportedChainsHandler(s))
}

func getSupportedChainsHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		deviceType := hardware.DeviceType(c.Param("deviceType"))

		// a capability query, unknown device types yield an empty list
		chains := s.Hardware.GetSupportedChains(deviceType)

		response := &types.GetSupportedChainsResponse{
			DeviceType: swag.String(string(deviceType)),
			Chains:     make([]string, 0, len(chains)),
		}
		for _, chain := range chains {
			response.Chains = append(response.Chains, string(chain))
		}

		return util.ValidateAndReturn(c, http.StatusOK, response)
	}
}

package devices

import (
	"net/http"

	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"

	"github/vaultbridge/hw-wallet/internal/api"
	"github/vaultbridge/hw-wallet/internal/api/httperrors"
	"github/vaultbridge/hw-wallet/internal/hardware"
	"github/vaultbridge/hw-wallet/internal/types"
	"github/vaultbridge/hw-wallet/internal/util"
)

func GetConfirmationStepsRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Hardware.GET("/device-types/:deviceType/confirmation-steps", getConfirmationStepsHandler(s))
}

func getConfirmationStepsHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		deviceType := hardware.DeviceType(c.Param("deviceType"))

		steps, err := s.Hardware.GetConfirmationSteps(deviceType)
		if err != nil {
			return httperrors.MapHardwareError(err)
		}

		response := &types.GetConfirmationStepsResponse{
			DeviceType: swag.String(string(deviceType)),
			Steps:      steps,
		}

		return util.ValidateAndReturn(c, http.StatusOK, response)
	}
}

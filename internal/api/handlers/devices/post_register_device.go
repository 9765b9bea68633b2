package devices

import (
	"net/http"

	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"

	"github/vaultbridge/hw-wallet/internal/api"
	"github/vaultbridge/hw-wallet/internal/api/httperrors"
	"github/vaultbridge/hw-wallet/internal/hardware"
	"github/vaultbridge/hw-wallet/internal/hardware/manager"
	"github/vaultbridge/hw-wallet/internal/types"
	"github/vaultbridge/hw-wallet/internal/util"
)

func PostRegisterDeviceRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Hardware.POST("", postRegisterDeviceHandler(s))
}

func postRegisterDeviceHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		var body types.PostRegisterDevicePayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		device := manager.DeviceRegistration{
			DeviceType:      hardware.DeviceType(swag.StringValue(body.DeviceType)),
			DeviceID:        swag.StringValue(body.DeviceID),
			DeviceLabel:     body.DeviceLabel,
			FirmwareVersion: body.FirmwareVersion,
			PublicKey:       swag.StringValue(body.PublicKey),
			Address:         swag.StringValue(body.Address),
			Metadata:        body.Metadata,
		}

		association, err := s.Hardware.RegisterDevice(
			ctx,
			swag.StringValue(body.UserID),
			device,
			hardware.Chain(swag.StringValue(body.Chain)),
			body.DerivationPath,
		)
		if err != nil {
			log.Debug().Err(err).Msg("Failed to register hardware wallet")
			return httperrors.MapHardwareError(err)
		}

		return util.ValidateAndReturn(c, http.StatusCreated, associationResponse(association))
	}
}

package signing

import (
	"net/http"

	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"

	"github/vaultbridge/hw-wallet/internal/api"
	"github/vaultbridge/hw-wallet/internal/api/httperrors"
	"github/vaultbridge/hw-wallet/internal/types"
	"github/vaultbridge/hw-wallet/internal/util"
)

func PostSubmitSignatureRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Signing.POST("/:id/signature", postSubmitSignatureHandler(s))
}

func postSubmitSignatureHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		var body types.PostSubmitSignaturePayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		signed, err := s.Hardware.SubmitSignature(
			ctx,
			c.Param("id"),
			swag.StringValue(body.Signature),
			swag.StringValue(body.PublicKey),
		)
		if err != nil {
			log.Debug().Err(err).Msg("Failed to submit signature")
			return httperrors.MapHardwareError(err)
		}

		response := &types.SignedTransactionResponse{
			RawTransaction:  swag.String(signed.RawTransaction),
			TransactionHash: swag.String(signed.Hash),
		}

		return util.ValidateAndReturn(c, http.StatusOK, response)
	}
}

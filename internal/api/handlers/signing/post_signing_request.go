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

func PostSigningRequestRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Signing.POST("", postSigningRequestHandler(s))
}

func postSigningRequestHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		var body types.PostSigningRequestPayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		tx, err := transactionDataFromPayload(body.Transaction)
		if err != nil {
			return err
		}
		if err := tx.Validate(); err != nil {
			log.Debug().Err(err).Msg("Transaction data rejected")
			return validationError("transaction", "body", err.Error())
		}

		request, err := s.Hardware.CreateSigningRequest(ctx, swag.StringValue(body.AssociationID), tx)
		if err != nil {
			log.Debug().Err(err).Msg("Failed to create signing request")
			return httperrors.MapHardwareError(err)
		}

		return util.ValidateAndReturn(c, http.StatusCreated, signingRequestResponse(request))
	}
}

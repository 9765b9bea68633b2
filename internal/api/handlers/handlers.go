package handlers

import (
	"github.com/labstack/echo/v4"

	"github/vaultbridge/hw-wallet/internal/api"
	"github/vaultbridge/hw-wallet/internal/api/handlers/common"
	"github/vaultbridge/hw-wallet/internal/api/handlers/devices"
	"github/vaultbridge/hw-wallet/internal/api/handlers/signing"
)

// AttachAllRoutes attaches all registered routes to the server's groups.
func AttachAllRoutes(s *api.Server) {
	s.Router.Routes = []*echo.Route{
		// management
		common.GetHealthyRoute(s),
		common.GetMetricsRoute(s),
		common.GetReadyRoute(s),
		common.GetVersionRoute(s),
		common.PostExpireRequestsRoute(s),

		// hardware wallet associations
		devices.DeleteAssociationRoute(s),
		devices.GetAssociationListRoute(s),
		devices.GetAssociationRoute(s),
		devices.GetConfirmationStepsRoute(s),
		devices.GetSupportedChainsRoute(s),
		devices.PostRegisterDeviceRoute(s),
		devices.PostVerifyDeviceRoute(s),

		// signing requests
		signing.GetSigningRequestListRoute(s),
		signing.GetSigningRequestRoute(s),
		signing.PostCancelSigningRequestRoute(s),
		signing.PostDispatchSigningRequestRoute(s),
		signing.PostSigningRequestRoute(s),
		signing.PostSubmitSignatureRoute(s),
	}
}

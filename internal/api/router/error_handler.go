package router

import (
	"net/http"

	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"

	"github/vaultbridge/hw-wallet/internal/api/httperrors"
	"github/vaultbridge/hw-wallet/internal/types"
	"github/vaultbridge/hw-wallet/internal/util"
)

// HTTPErrorHandlerConfig controls the serialization of errors into the public
// error payloads.
type HTTPErrorHandlerConfig struct {
	HideInternalServerErrorDetails bool
}

// HTTPErrorHandlerWithConfig returns an echo.HTTPErrorHandler that serializes
// every error into a types.PublicHTTPError (or validation variant), never
// leaking internals unless configured to.
func HTTPErrorHandlerWithConfig(config HTTPErrorHandlerConfig) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var code int
		var payload interface{}

		switch e := err.(type) {
		case *httperrors.HTTPError:
			code = int(*e.Code)

			publicErr := e.PublicHTTPError
			if e.Internal != nil && !config.HideInternalServerErrorDetails {
				publicErr.Detail = e.Internal.Error()
			}

			payload = publicErr
		case *httperrors.HTTPValidationError:
			code = int(*e.Code)

			publicErr := e.PublicHTTPValidationError
			if e.Internal != nil && !config.HideInternalServerErrorDetails {
				publicErr.Detail = e.Internal.Error()
			}

			payload = publicErr
		case *echo.HTTPError:
			code = e.Code

			publicErr := types.PublicHTTPError{
				Code:  swag.Int64(int64(e.Code)),
				Type:  swag.String(types.PublicHTTPErrorTypeGeneric),
				Title: swag.String(http.StatusText(e.Code)),
			}
			if msg, ok := e.Message.(string); ok && (code != http.StatusInternalServerError || !config.HideInternalServerErrorDetails) {
				publicErr.Detail = msg
			}

			payload = publicErr
		default:
			code = http.StatusInternalServerError

			publicErr := types.PublicHTTPError{
				Code:  swag.Int64(int64(http.StatusInternalServerError)),
				Type:  swag.String(types.PublicHTTPErrorTypeGeneric),
				Title: swag.String(http.StatusText(http.StatusInternalServerError)),
			}
			if !config.HideInternalServerErrorDetails {
				publicErr.Detail = err.Error()
			}

			payload = publicErr
		}

		l := util.LogFromEchoContext(c)

		if code >= http.StatusInternalServerError {
			l.Error().Err(err).Int("status", code).Msg("Request failed")
		} else {
			l.Debug().Err(err).Int("status", code).Msg("Request failed")
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(code)
		} else {
			err = c.JSON(code, payload)
		}
		if err != nil {
			l.Error().Err(err).Msg("Failed to write error response")
		}
	}
}

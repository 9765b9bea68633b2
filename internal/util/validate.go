package util

import (
	"net/http"

	"github.com/go-openapi/runtime"
	"github.com/go-openapi/strfmt"
	"github.com/labstack/echo/v4"
)

// BindAndValidateBody binds the request body to the given payload and runs its
// go-openapi validation, returning a 400 on malformed or invalid input.
func BindAndValidateBody(c echo.Context, v runtime.Validatable) error {
	if err := c.Bind(v); err != nil {
		LogFromEchoContext(c).Debug().Err(err).Msg("Failed to bind payload")
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := v.Validate(strfmt.Default); err != nil {
		LogFromEchoContext(c).Debug().Err(err).Msg("Payload validation failed")
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return nil
}

// ValidateAndReturn validates the response payload before writing it out,
// guarding against returning structs that violate their own schema.
func ValidateAndReturn(c echo.Context, code int, v runtime.Validatable) error {
	if err := v.Validate(strfmt.Default); err != nil {
		LogFromEchoContext(c).Error().Err(err).Msg("Response validation failed")
		return echo.NewHTTPError(http.StatusInternalServerError)
	}

	return c.JSON(code, v)
}

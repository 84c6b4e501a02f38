package webserver

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// ApiValidator plugs go-playground/validator into echo's c.Validate.
type ApiValidator struct {
	validate *validator.Validate
}

func NewApiValidator() *ApiValidator {
	return &ApiValidator{validate: validator.New()}
}

func (v *ApiValidator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error()).SetInternal(err)
	}
	return nil
}

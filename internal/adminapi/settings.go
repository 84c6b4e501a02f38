package adminapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Mustagiz/Aleen/internal/app"
	"github.com/Mustagiz/Aleen/internal/invoice"
	"github.com/Mustagiz/Aleen/internal/webserver"
)

func registerSettingsRoutes() {
	webserver.ApiGET("/settings", getSettings)
	webserver.ApiPUT("/settings", updateSettings)
}

// shopInfo loads the shop configuration threaded into invoice rendering.
func shopInfo(c echo.Context) invoice.ShopInfo {
	return webserver.AppCtx().Settings().ShopInfo()
}

func getSettings(c echo.Context) error {
	values, err := webserver.AppCtx().Settings().AllByCategory(app.ConfigShop)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query settings", err.Error())
	}
	return ok(c, values)
}

func updateSettings(c echo.Context) error {
	var payload map[string]string
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse settings", err.Error())
	}
	settings := webserver.AppCtx().Settings()
	for name, value := range payload {
		if err := settings.Set(app.ConfigShop, name, value); err != nil {
			return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to save settings", err.Error())
		}
	}
	values, err := settings.AllByCategory(app.ConfigShop)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query settings", err.Error())
	}
	return ok(c, values)
}

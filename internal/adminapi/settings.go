package adminapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/mitchellh/mapstructure"

	"github.com/tilazone/tilazone/internal/i18n"
	"github.com/tilazone/tilazone/internal/webserver"
)

func registerSettingsRoutes() {
	webserver.AdminGET("/settings/storeinfo/:lang", getStoreInfo)
	webserver.AdminPUT("/settings/storeinfo/:lang", updateStoreInfo)
}

func getStoreInfo(c echo.Context) error {
	lang := i18n.Match(c.Param("lang"))
	return ok(c, GetApp(c).StoreInfo(lang))
}

// updateStoreInfo merges a partial settings document over the current
// block, so the admin UI can submit only the fields it changed.
func updateStoreInfo(c echo.Context) error {
	lang := i18n.Match(c.Param("lang"))

	var patch map[string]interface{}
	if err := c.Bind(&patch); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse settings", err.Error())
	}

	info := GetApp(c).StoreInfo(lang)
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &info,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fail(c, http.StatusInternalServerError, "SETTINGS_ERROR", "Failed to build decoder", err.Error())
	}
	if err := decoder.Decode(patch); err != nil {
		return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid settings document", err.Error())
	}

	if err := GetApp(c).SaveStoreInfo(lang, info); err != nil {
		return fail(c, http.StatusInternalServerError, "SETTINGS_ERROR", "Failed to save settings", err.Error())
	}
	return ok(c, info)
}

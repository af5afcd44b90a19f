// Package storeapi implements the public storefront endpoints: catalog
// browsing, the catalog update stream, the session cart and checkout.
package storeapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tilazone/tilazone/internal/catalog"
	"github.com/tilazone/tilazone/internal/domain"
	"github.com/tilazone/tilazone/internal/i18n"
	"github.com/tilazone/tilazone/internal/webserver"
)

// InitRouter registers all storefront routes. Call after webserver.Init.
func InitRouter() {
	registerCatalogRoutes()
	registerCartRoutes()
	registerCheckoutRoutes()
}

func registerCatalogRoutes() {
	webserver.ApiGET("/store/products", listProducts)
	webserver.ApiGET("/store/products/:id", getProduct)
	webserver.ApiGET("/store/categories", listCategories)
	webserver.ApiGET("/store/info", getStoreInfo)
	webserver.ApiGET("/store/catalog/events", streamCatalog)
}

func requestLang(c echo.Context) string {
	if lang := c.QueryParam("lang"); lang != "" {
		return i18n.Match(lang)
	}
	return i18n.Match(c.Request().Header.Get("Accept-Language"))
}

func listProducts(c echo.Context) error {
	products, err := webserver.GetApp(c).Catalog().Load(c.Request().Context())
	if err != nil {
		return fail(c, http.StatusInternalServerError, "CATALOG_ERROR", "Failed to load catalog", err.Error())
	}

	category := c.QueryParam("category")
	lang := requestLang(c)
	// the first category entry is the "all" pseudo filter
	if category != "" && category != i18n.Categories(lang)[0] {
		var filtered []domain.Product
		for _, p := range products {
			if p.Category == category {
				filtered = append(filtered, p)
			}
		}
		products = filtered
	}
	if products == nil {
		products = []domain.Product{}
	}
	return ok(c, products)
}

func getProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	products, err := webserver.GetApp(c).Catalog().Load(c.Request().Context())
	if err != nil {
		return fail(c, http.StatusInternalServerError, "CATALOG_ERROR", "Failed to load catalog", err.Error())
	}
	p, found := catalog.FindByID(products, id)
	if !found {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	}
	return ok(c, p)
}

func listCategories(c echo.Context) error {
	return ok(c, i18n.Categories(requestLang(c)))
}

func getStoreInfo(c echo.Context) error {
	return ok(c, webserver.GetApp(c).StoreInfo(requestLang(c)))
}

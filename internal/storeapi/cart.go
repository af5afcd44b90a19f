package storeapi

import (
	"net/http"

	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/random"

	"github.com/tilazone/tilazone/internal/cart"
	"github.com/tilazone/tilazone/internal/catalog"
	"github.com/tilazone/tilazone/internal/domain"
	"github.com/tilazone/tilazone/internal/webserver"
)

const (
	sessionName = "tilazone_session"
	cartIDKey   = "cart_id"
)

func registerCartRoutes() {
	webserver.ApiGET("/store/cart", getCart)
	webserver.ApiPOST("/store/cart/items", addCartItem)
	webserver.ApiPUT("/store/cart/items/:id", updateCartItem)
	webserver.ApiDELETE("/store/cart/items/:id", removeCartItem)
}

// sessionCart returns the cart bound to the caller's session cookie,
// creating the binding on first use.
func sessionCart(c echo.Context) (*cart.Cart, error) {
	s, err := session.Get(sessionName, c)
	if err != nil {
		return nil, err
	}
	id, ok := s.Values[cartIDKey].(string)
	if !ok || id == "" {
		id = random.String(24)
		s.Values[cartIDKey] = id
		s.Options.HttpOnly = true
		s.Options.Path = "/"
		if err := s.Save(c.Request(), c.Response()); err != nil {
			return nil, err
		}
	}
	return webserver.GetApp(c).Carts().Get(id), nil
}

// cartView is the response shape of every cart endpoint: the lines
// plus the derived count and total, recomputed on each read.
type cartView struct {
	Items []domain.CartItem `json:"items"`
	Count int               `json:"count"`
	Total float64           `json:"total"`
}

func viewOf(ct *cart.Cart) cartView {
	return cartView{
		Items: ct.Items(),
		Count: ct.ItemCount(),
		Total: ct.Total(),
	}
}

func getCart(c echo.Context) error {
	ct, err := sessionCart(c)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "SESSION_ERROR", "Failed to open session", err.Error())
	}
	return ok(c, viewOf(ct))
}

type addItemPayload struct {
	ProductID int64 `json:"product_id" form:"product_id"`
}

func addCartItem(c echo.Context) error {
	var payload addItemPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse cart item", err.Error())
	}

	products, err := webserver.GetApp(c).Catalog().Load(c.Request().Context())
	if err != nil {
		return fail(c, http.StatusInternalServerError, "CATALOG_ERROR", "Failed to load catalog", err.Error())
	}
	p, found := catalog.FindByID(products, payload.ProductID)
	if !found {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	}

	ct, err := sessionCart(c)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "SESSION_ERROR", "Failed to open session", err.Error())
	}
	ct.AddToCart(p)
	return ok(c, viewOf(ct))
}

type updateItemPayload struct {
	Quantity int `json:"quantity" form:"quantity"`
}

func updateCartItem(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	var payload updateItemPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse quantity", err.Error())
	}

	ct, err := sessionCart(c)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "SESSION_ERROR", "Failed to open session", err.Error())
	}
	// updates below 1 are ignored; the response carries the kept state
	ct.UpdateQuantity(id, payload.Quantity)
	return ok(c, viewOf(ct))
}

func removeCartItem(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	ct, err := sessionCart(c)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "SESSION_ERROR", "Failed to open session", err.Error())
	}
	ct.RemoveItem(id)
	return ok(c, viewOf(ct))
}

package storeapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/tilazone/tilazone/internal/checkout"
	"github.com/tilazone/tilazone/internal/domain"
	"github.com/tilazone/tilazone/internal/webserver"
)

func registerCheckoutRoutes() {
	webserver.ApiPOST("/store/checkout", submitCheckout)
}

// submitCheckout posts the session cart with the customer fields to
// the order sink. On failure the cart and the submitted fields are
// left untouched and the client is told to retry; the cart is also
// kept after success so the customer can order again.
func submitCheckout(c echo.Context) error {
	var customer domain.CustomerInfo
	if err := c.Bind(&customer); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse checkout form", err.Error())
	}

	ct, err := sessionCart(c)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "SESSION_ERROR", "Failed to open session", err.Error())
	}

	record, err := webserver.GetApp(c).Submitter().Submit(c.Request().Context(), customer, ct.Items())
	if err != nil {
		var verr *checkout.ValidationError
		switch {
		case errors.As(err, &verr):
			return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", verr.Error(), verr.Field)
		case errors.Is(err, checkout.ErrEmptyCart):
			return fail(c, http.StatusBadRequest, "EMPTY_CART", "Cart is empty", nil)
		default:
			return fail(c, http.StatusBadGateway, "SUBMIT_FAILED", "Order submission failed, please try again", err.Error())
		}
	}

	return ok(c, map[string]interface{}{
		"order_ref":   record.ID,
		"totalAmount": record.TotalAmount,
		"orderDate":   record.OrderDate,
	})
}

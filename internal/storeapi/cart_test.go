package storeapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tilazone/tilazone/internal/app"
	"github.com/tilazone/tilazone/internal/cart"
	"github.com/tilazone/tilazone/internal/catalog"
	"github.com/tilazone/tilazone/internal/checkout"
	"github.com/tilazone/tilazone/internal/orders"
	"github.com/tilazone/tilazone/internal/webserver"
)

type testApp struct {
	app.AppContext
	repo      catalog.Repository
	carts     *cart.Manager
	submitter *checkout.Submitter
	journal   orders.Store
}

func (a *testApp) Catalog() catalog.Repository  { return a.repo }
func (a *testApp) Carts() *cart.Manager         { return a.carts }
func (a *testApp) Submitter() *checkout.Submitter { return a.submitter }
func (a *testApp) Orders() orders.Store         { return a.journal }

// newTestServer wires the session middleware and the storefront routes
// the way the webserver does, against an in-memory application.
func newTestServer(a *testApp) *echo.Echo {
	e := echo.New()
	e.Use(session.Middleware(sessions.NewCookieStore([]byte("test-secret"))))
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(webserver.AppContextKey, a)
			return next(c)
		}
	})
	e.GET("/api/store/cart", getCart)
	e.POST("/api/store/cart/items", addCartItem)
	e.PUT("/api/store/cart/items/:id", updateCartItem)
	e.DELETE("/api/store/cart/items/:id", removeCartItem)
	e.POST("/api/store/checkout", submitCheckout)
	return e
}

// client keeps the session cookie across requests, like a browser would.
type client struct {
	e       *echo.Echo
	cookies []*http.Cookie
}

func (cl *client) do(t *testing.T, method, target, body string) (*httptest.ResponseRecorder, cartView) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for _, ck := range cl.cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	cl.e.ServeHTTP(rec, req)
	if cks := rec.Result().Cookies(); len(cks) > 0 {
		cl.cookies = cks
	}

	var envelope struct {
		Data cartView `json:"data"`
	}
	if rec.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	}
	return rec, envelope.Data
}

func newCartTestApp() *testApp {
	return &testApp{
		repo:    catalog.NewStore(catalog.NewMemoryBackend()),
		carts:   cart.NewManager(time.Hour),
		journal: orders.NewMemoryStore(),
	}
}

func TestCartFlow(t *testing.T) {
	e := newTestServer(newCartTestApp())
	cl := &client{e: e}

	rec, view := cl.do(t, http.MethodGet, "/api/store/cart", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, view.Count)

	// adding the same product twice merges into one line
	rec, view = cl.do(t, http.MethodPost, "/api/store/cart/items", `{"product_id":1}`)
	require.Equal(t, http.StatusOK, rec.Code)
	rec, view = cl.do(t, http.MethodPost, "/api/store/cart/items", `{"product_id":1}`)
	require.Equal(t, http.StatusOK, rec.Code)
	rec, view = cl.do(t, http.MethodPost, "/api/store/cart/items", `{"product_id":2}`)
	require.Equal(t, http.StatusOK, rec.Code)

	require.Len(t, view.Items, 2)
	assert.Equal(t, 3, view.Count)
	assert.Equal(t, 2, view.Items[0].Quantity)

	rec, view = cl.do(t, http.MethodPut, "/api/store/cart/items/1", `{"quantity":5}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 6, view.Count)

	// quantities below one are ignored
	rec, view = cl.do(t, http.MethodPut, "/api/store/cart/items/1", `{"quantity":0}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 6, view.Count)

	rec, view = cl.do(t, http.MethodDelete, "/api/store/cart/items/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, view.Items, 1)
	assert.Equal(t, int64(2), view.Items[0].ID)
}

func TestCartUnknownProductRejected(t *testing.T) {
	e := newTestServer(newCartTestApp())
	cl := &client{e: e}

	rec, _ := cl.do(t, http.MethodPost, "/api/store/cart/items", `{"product_id":999}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCartsAreSessionScoped(t *testing.T) {
	e := newTestServer(newCartTestApp())
	first := &client{e: e}
	second := &client{e: e}

	rec, view := first.do(t, http.MethodPost, "/api/store/cart/items", `{"product_id":1}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, view.Count)

	rec, view = second.do(t, http.MethodGet, "/api/store/cart", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, view.Count)
}

func newCheckoutTestApp(t *testing.T, endpoint string) *testApp {
	t.Helper()
	a := newCartTestApp()
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	a.submitter = checkout.NewSubmitter(endpoint, node, a.journal, nil)
	return a
}

func TestCheckoutSubmitsSessionCart(t *testing.T) {
	sink := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer sink.Close()

	e := newTestServer(newCheckoutTestApp(t, sink.URL))
	cl := &client{e: e}

	rec, _ := cl.do(t, http.MethodPost, "/api/store/cart/items", `{"product_id":1}`)
	require.Equal(t, http.StatusOK, rec.Code)

	customer := `{"name":"Amine","lastName":"B","phone":"0600000000","city":"Casablanca","address":"Rue 1"}`
	rec, _ = cl.do(t, http.MethodPost, "/api/store/checkout", customer)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data struct {
			OrderRef int64 `json:"order_ref"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotZero(t, body.Data.OrderRef)

	// the cart survives a successful checkout
	rec, view := cl.do(t, http.MethodGet, "/api/store/cart", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, view.Count)
}

func TestCheckoutMissingFieldRejected(t *testing.T) {
	e := newTestServer(newCheckoutTestApp(t, "http://127.0.0.1:1"))
	cl := &client{e: e}

	rec, _ := cl.do(t, http.MethodPost, "/api/store/cart/items", `{"product_id":1}`)
	require.Equal(t, http.StatusOK, rec.Code)

	customer := `{"name":"Amine","lastName":"B","phone":"0600000000","address":"Rue 1"}`
	rec, _ = cl.do(t, http.MethodPost, "/api/store/checkout", customer)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCheckoutEmptyCartRejected(t *testing.T) {
	e := newTestServer(newCheckoutTestApp(t, "http://127.0.0.1:1"))
	cl := &client{e: e}

	customer := `{"name":"Amine","lastName":"B","phone":"0600000000","city":"Casablanca","address":"Rue 1"}`
	rec, _ := cl.do(t, http.MethodPost, "/api/store/checkout", customer)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCheckoutSinkFailureIsRetryable(t *testing.T) {
	sink := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer sink.Close()

	e := newTestServer(newCheckoutTestApp(t, sink.URL))
	cl := &client{e: e}

	rec, _ := cl.do(t, http.MethodPost, "/api/store/cart/items", `{"product_id":1}`)
	require.Equal(t, http.StatusOK, rec.Code)

	customer := `{"name":"Amine","lastName":"B","phone":"0600000000","city":"Casablanca","address":"Rue 1"}`
	rec, _ = cl.do(t, http.MethodPost, "/api/store/checkout", customer)
	assert.Equal(t, http.StatusBadGateway, rec.Code)

	// nothing was lost; the user can resubmit as-is
	rec, view := cl.do(t, http.MethodGet, "/api/store/cart", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, view.Count)
}

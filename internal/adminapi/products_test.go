package adminapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tilazone/tilazone/config"
	"github.com/tilazone/tilazone/internal/app"
	"github.com/tilazone/tilazone/internal/catalog"
	"github.com/tilazone/tilazone/internal/domain"
	"github.com/tilazone/tilazone/internal/orders"
	"github.com/tilazone/tilazone/internal/webserver"
)

// spyRepo counts persistence calls so tests can assert that rejected
// operations never touch the slot.
type spyRepo struct {
	*catalog.Store
	saves int
}

func (r *spyRepo) Save(ctx context.Context, products []domain.Product) error {
	r.saves++
	return r.Store.Save(ctx, products)
}

// testApp satisfies the providers the admin handlers use; everything
// else panics if touched.
type testApp struct {
	app.AppContext
	repo    *spyRepo
	journal orders.Store
}

func (a *testApp) Catalog() catalog.Repository { return a.repo }
func (a *testApp) Orders() orders.Store        { return a.journal }
func (a *testApp) Config() *config.AppConfig   { return config.DefaultAppConfig }

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	repo := &spyRepo{Store: catalog.NewStore(catalog.NewMemoryBackend())}
	// force the seed write so save counts start clean
	_, err := repo.Load(context.Background())
	require.NoError(t, err)
	repo.saves = 0
	return &testApp{repo: repo, journal: orders.NewMemoryStore()}
}

func newJSONContext(a *testApp, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(webserver.AppContextKey, a)
	return c, rec
}

const validDraft = `{
	"name": "MacBook Air",
	"price": 11999,
	"category": "حواسيب",
	"description": "حاسوب محمول خفيف",
	"images": ["https://example.com/mba-1.jpg", "https://example.com/mba-2.jpg"],
	"landingPageUrl": "https://example.com/macbook-air"
}`

func TestCreateProductAssignsNextID(t *testing.T) {
	a := newTestApp(t)
	c, rec := newJSONContext(a, http.MethodPost, "/api/admin/products", validDraft)

	require.NoError(t, createProduct(c))
	require.Equal(t, http.StatusOK, rec.Code)

	products, err := a.repo.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 3)

	created := products[2]
	assert.Equal(t, int64(3), created.ID)
	assert.Equal(t, "MacBook Air", created.Name)
	// legacy image mirrors the first gallery entry
	assert.Equal(t, "https://example.com/mba-1.jpg", created.Image)
	// absent media and specs default to empty, not nil
	assert.NotNil(t, created.Videos)
	assert.NotNil(t, created.Specs)
}

func TestCreateProductMissingLandingPageRejected(t *testing.T) {
	a := newTestApp(t)
	draft := `{"name":"X","price":10,"category":"c","description":"d"}`
	c, rec := newJSONContext(a, http.MethodPost, "/api/admin/products", draft)

	require.NoError(t, createProduct(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// catalog unchanged, no persistence call occurred
	assert.Equal(t, 0, a.repo.saves)
	products, err := a.repo.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, 2)
}

func TestCreateProductZeroPriceRejected(t *testing.T) {
	a := newTestApp(t)
	draft := `{"name":"X","price":0,"category":"c","description":"d","landingPageUrl":"https://x"}`
	c, rec := newJSONContext(a, http.MethodPost, "/api/admin/products", draft)

	require.NoError(t, createProduct(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, a.repo.saves)
}

func TestCreateAfterDeleteAssignsMaxPlusOne(t *testing.T) {
	a := newTestApp(t)

	// delete product 2, the current maximum
	c, rec := newJSONContext(a, http.MethodDelete, "/api/admin/products/2?confirm=true", "")
	c.SetParamNames("id")
	c.SetParamValues("2")
	require.NoError(t, deleteProduct(c))
	require.Equal(t, http.StatusOK, rec.Code)

	c, rec = newJSONContext(a, http.MethodPost, "/api/admin/products", validDraft)
	require.NoError(t, createProduct(c))
	require.Equal(t, http.StatusOK, rec.Code)

	products, err := a.repo.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, int64(2), products[1].ID)
}

func TestUpdateProductAppliesValidation(t *testing.T) {
	a := newTestApp(t)
	draft := `{"name":"","price":10,"category":"c","description":"d","landingPageUrl":"https://x"}`
	c, rec := newJSONContext(a, http.MethodPut, "/api/admin/products/1", draft)
	c.SetParamNames("id")
	c.SetParamValues("1")

	require.NoError(t, updateProduct(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, a.repo.saves)
}

func TestUpdateProductReplacesInPlace(t *testing.T) {
	a := newTestApp(t)
	c, rec := newJSONContext(a, http.MethodPut, "/api/admin/products/1", validDraft)
	c.SetParamNames("id")
	c.SetParamValues("1")

	require.NoError(t, updateProduct(c))
	require.Equal(t, http.StatusOK, rec.Code)

	products, err := a.repo.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, int64(1), products[0].ID)
	assert.Equal(t, "MacBook Air", products[0].Name)
}

func TestUpdateUnknownProduct(t *testing.T) {
	a := newTestApp(t)
	c, rec := newJSONContext(a, http.MethodPut, "/api/admin/products/99", validDraft)
	c.SetParamNames("id")
	c.SetParamValues("99")

	require.NoError(t, updateProduct(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, 0, a.repo.saves)
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	a := newTestApp(t)
	c, rec := newJSONContext(a, http.MethodDelete, "/api/admin/products/1", "")
	c.SetParamNames("id")
	c.SetParamValues("1")

	require.NoError(t, deleteProduct(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, a.repo.saves)

	products, err := a.repo.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, 2)
}

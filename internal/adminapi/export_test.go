package adminapi

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tilazone/tilazone/internal/webserver"
)

func csvUploadContext(t *testing.T, a *testApp, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", "products.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte(body))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/admin/products/import.csv", &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(webserver.AppContextKey, a)
	return c, rec
}

const csvHeader = "id,name,price,category,description,details,images,videos,specs,landing_page_url\n"

func TestImportProductsCSV(t *testing.T) {
	a := newTestApp(t)
	body := csvHeader +
		"1,iPhone 14 Pro Max,13999,هواتف,updated description,,https://a.jpg|https://b.jpg,,,https://example.com/p1\n" +
		"0,Brand New,99,cat,fresh,,https://c.jpg,,,https://example.com/p3\n"

	c, rec := csvUploadContext(t, a, body)
	require.NoError(t, importProductsCSV(c))
	require.Equal(t, http.StatusOK, rec.Code)

	products, err := a.repo.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 3)

	assert.Equal(t, "iPhone 14 Pro Max", products[0].Name)
	assert.Equal(t, []string{"https://a.jpg", "https://b.jpg"}, products[0].Images)
	assert.Equal(t, "https://a.jpg", products[0].Image)

	assert.Equal(t, int64(3), products[2].ID)
	assert.Equal(t, "Brand New", products[2].Name)
}

func TestImportProductsCSVBadRowRejected(t *testing.T) {
	a := newTestApp(t)
	// second row has no landing page URL
	body := csvHeader +
		"0,Good Row,10,cat,desc,,,,,https://example.com/ok\n" +
		"0,Bad Row,10,cat,desc,,,,,\n"

	c, rec := csvUploadContext(t, a, body)
	require.NoError(t, importProductsCSV(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// a bad file changes nothing
	assert.Equal(t, 0, a.repo.saves)
	products, err := a.repo.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, 2)
}

func TestExportProductsCSV(t *testing.T) {
	a := newTestApp(t)
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/products/export.csv", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(webserver.AppContextKey, a)

	require.NoError(t, exportProductsCSV(c))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), "text/csv")

	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "landing_page_url")
	assert.Contains(t, lines[1], "iPhone 14 Pro")
}
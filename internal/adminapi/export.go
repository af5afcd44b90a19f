package adminapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/tilazone/tilazone/internal/catalog"
)

// productCSVRow flattens a product for spreadsheet export. Media lists
// are pipe-joined; specs are serialized as JSON.
type productCSVRow struct {
	ID             int64   `csv:"id"`
	Name           string  `csv:"name"`
	Price          float64 `csv:"price"`
	Category       string  `csv:"category"`
	Description    string  `csv:"description"`
	Details        string  `csv:"details"`
	Images         string  `csv:"images"`
	Videos         string  `csv:"videos"`
	Specs          string  `csv:"specs"`
	LandingPageURL string  `csv:"landing_page_url"`
}

func exportProductsCSV(c echo.Context) error {
	products, err := GetApp(c).Catalog().Load(c.Request().Context())
	if err != nil {
		return fail(c, http.StatusInternalServerError, "CATALOG_ERROR", "Failed to load catalog", err.Error())
	}

	rows := make([]productCSVRow, 0, len(products))
	for _, p := range products {
		specs, err := json.MarshalToString(p.Specs)
		if err != nil {
			specs = ""
		}
		rows = append(rows, productCSVRow{
			ID:             p.ID,
			Name:           p.Name,
			Price:          p.Price,
			Category:       p.Category,
			Description:    p.Description,
			Details:        p.Details,
			Images:         strings.Join(p.Images, "|"),
			Videos:         strings.Join(p.Videos, "|"),
			Specs:          specs,
			LandingPageURL: p.LandingPageURL,
		})
	}

	c.Response().Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="products.csv"`)
	c.Response().WriteHeader(http.StatusOK)
	return gocsv.Marshal(&rows, c.Response())
}

func splitMedia(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{}
	}
	return strings.Split(s, "|")
}

// toDraft converts a CSV row back to a draft so imports run through
// the same validation as the create endpoint.
func (r productCSVRow) toDraft() productDraft {
	specs := map[string]string{}
	if r.Specs != "" {
		_ = json.UnmarshalFromString(r.Specs, &specs)
	}
	return productDraft{
		Name:           r.Name,
		Price:          r.Price,
		Description:    r.Description,
		Images:         splitMedia(r.Images),
		Videos:         splitMedia(r.Videos),
		Details:        r.Details,
		Category:       r.Category,
		Specs:          specs,
		LandingPageURL: r.LandingPageURL,
	}
}

// importProductsCSV applies a CSV file to the catalog: rows whose id
// matches an existing product replace it, rows without an id (or with
// an unknown one) are created. All rows are validated before anything
// is persisted, so a bad file changes nothing.
func importProductsCSV(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Missing CSV file", err.Error())
	}
	f, err := fh.Open()
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to open upload", err.Error())
	}
	defer f.Close()

	var rows []productCSVRow
	if err := gocsv.Unmarshal(f, &rows); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse CSV", err.Error())
	}
	if len(rows) == 0 {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "CSV contains no rows", nil)
	}

	drafts := make([]productDraft, 0, len(rows))
	for i, row := range rows {
		d := row.toDraft()
		if field, valid := d.validate(); !valid {
			return fail(c, http.StatusBadRequest, "VALIDATION_ERROR",
				fmt.Sprintf("Row %d: required field missing or invalid: %s", i+1, field), nil)
		}
		drafts = append(drafts, d)
	}

	ctx := c.Request().Context()
	repo := GetApp(c).Catalog()
	products, err := repo.Load(ctx)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "CATALOG_ERROR", "Failed to load catalog", err.Error())
	}

	var created, updated int
	for i, d := range drafts {
		id := rows[i].ID
		replaced := false
		if id > 0 {
			for j := range products {
				if products[j].ID == id {
					products[j] = d.toProduct(id)
					replaced = true
					updated++
					break
				}
			}
		}
		if !replaced {
			p := d.toProduct(catalog.NextProductID(products))
			products = append(products, p)
			created++
		}
	}

	if err := repo.Save(ctx, products); err != nil {
		return fail(c, http.StatusInternalServerError, "CATALOG_ERROR", "Failed to save catalog", err.Error())
	}

	zap.L().Info("products imported", zap.Int("created", created), zap.Int("updated", updated))
	return ok(c, map[string]interface{}{"created": created, "updated": updated})
}

package adminapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/tilazone/tilazone/internal/catalog"
	"github.com/tilazone/tilazone/internal/domain"
	"github.com/tilazone/tilazone/internal/webserver"
)

// productDraft is the not-yet-validated product record under
// construction in the admin view. The identifier is never accepted
// from the client on create.
type productDraft struct {
	Name           string            `json:"name"`
	Price          float64           `json:"price"`
	Description    string            `json:"description"`
	Images         []string          `json:"images"`
	Videos         []string          `json:"videos"`
	Details        string            `json:"details"`
	Category       string            `json:"category"`
	Specs          map[string]string `json:"specs"`
	LandingPageURL string            `json:"landingPageUrl"`
}

// validate checks the required create fields. The same contract is
// applied on update.
func (d *productDraft) validate() (field string, ok bool) {
	switch {
	case strings.TrimSpace(d.Name) == "":
		return "name", false
	case d.Price <= 0:
		return "price", false
	case strings.TrimSpace(d.Category) == "":
		return "category", false
	case strings.TrimSpace(d.Description) == "":
		return "description", false
	case strings.TrimSpace(d.LandingPageURL) == "":
		return "landingPageUrl", false
	}
	return "", true
}

// toProduct materializes the draft with the assigned identifier,
// defaulting absent media and specs and syncing the legacy image field
// to the first gallery entry.
func (d *productDraft) toProduct(id int64) domain.Product {
	p := domain.Product{
		ID:             id,
		Name:           d.Name,
		Price:          d.Price,
		Description:    d.Description,
		Images:         d.Images,
		Videos:         d.Videos,
		Details:        d.Details,
		Category:       d.Category,
		Specs:          d.Specs,
		LandingPageURL: d.LandingPageURL,
	}
	if p.Images == nil {
		p.Images = []string{}
	}
	if p.Videos == nil {
		p.Videos = []string{}
	}
	if p.Specs == nil {
		p.Specs = map[string]string{}
	}
	if len(p.Images) > 0 {
		p.Image = p.Images[0]
	}
	return p
}

// registerProductRoutes registers the admin product CRUD endpoints
func registerProductRoutes() {
	webserver.AdminGET("/products", listProducts)
	webserver.AdminGET("/products/:id", getProduct)
	webserver.AdminPOST("/products", createProduct)
	webserver.AdminPUT("/products/:id", updateProduct)
	webserver.AdminDELETE("/products/:id", deleteProduct)
	webserver.AdminGET("/products/export.csv", exportProductsCSV)
	webserver.AdminPOST("/products/import.csv", importProductsCSV)
}

func listProducts(c echo.Context) error {
	page, pageSize := parsePagination(c)

	products, err := GetApp(c).Catalog().Load(c.Request().Context())
	if err != nil {
		return fail(c, http.StatusInternalServerError, "CATALOG_ERROR", "Failed to load catalog", err.Error())
	}

	if q := strings.TrimSpace(c.QueryParam("q")); q != "" {
		var filtered []domain.Product
		for _, p := range products {
			if strings.Contains(strings.ToLower(p.Name), strings.ToLower(q)) {
				filtered = append(filtered, p)
			}
		}
		products = filtered
	}

	total := int64(len(products))
	start := (page - 1) * pageSize
	if start > len(products) {
		start = len(products)
	}
	end := start + pageSize
	if end > len(products) {
		end = len(products)
	}
	return paged(c, products[start:end], total, page, pageSize)
}

func getProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	products, err := GetApp(c).Catalog().Load(c.Request().Context())
	if err != nil {
		return fail(c, http.StatusInternalServerError, "CATALOG_ERROR", "Failed to load catalog", err.Error())
	}
	p, found := catalog.FindByID(products, id)
	if !found {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	}
	return ok(c, p)
}

func createProduct(c echo.Context) error {
	var draft productDraft
	if err := c.Bind(&draft); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", err.Error())
	}
	if field, valid := draft.validate(); !valid {
		return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Required field missing or invalid: "+field, nil)
	}

	ctx := c.Request().Context()
	repo := GetApp(c).Catalog()
	products, err := repo.Load(ctx)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "CATALOG_ERROR", "Failed to load catalog", err.Error())
	}

	p := draft.toProduct(catalog.NextProductID(products))
	products = append(products, p)
	if err := repo.Save(ctx, products); err != nil {
		return fail(c, http.StatusInternalServerError, "CATALOG_ERROR", "Failed to save catalog", err.Error())
	}

	zap.L().Info("product created", zap.Int64("id", p.ID), zap.String("name", p.Name))
	return ok(c, p)
}

func updateProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}

	var draft productDraft
	if err := c.Bind(&draft); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", err.Error())
	}
	if field, valid := draft.validate(); !valid {
		return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Required field missing or invalid: "+field, nil)
	}

	ctx := c.Request().Context()
	repo := GetApp(c).Catalog()
	products, err := repo.Load(ctx)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "CATALOG_ERROR", "Failed to load catalog", err.Error())
	}

	p := draft.toProduct(id)
	var replaced bool
	for i := range products {
		if products[i].ID == id {
			products[i] = p
			replaced = true
			break
		}
	}
	if !replaced {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	}
	if err := repo.Save(ctx, products); err != nil {
		return fail(c, http.StatusInternalServerError, "CATALOG_ERROR", "Failed to save catalog", err.Error())
	}

	zap.L().Info("product updated", zap.Int64("id", id))
	return ok(c, p)
}

func deleteProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	// deletion is destructive and must be confirmed explicitly
	if c.QueryParam("confirm") != "true" {
		return fail(c, http.StatusBadRequest, "CONFIRM_REQUIRED", "Deletion requires confirm=true", nil)
	}

	ctx := c.Request().Context()
	repo := GetApp(c).Catalog()
	products, err := repo.Load(ctx)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "CATALOG_ERROR", "Failed to load catalog", err.Error())
	}

	kept := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	if err := repo.Save(ctx, kept); err != nil {
		return fail(c, http.StatusInternalServerError, "CATALOG_ERROR", "Failed to save catalog", err.Error())
	}

	zap.L().Info("product deleted", zap.Int64("id", id))
	return ok(c, map[string]interface{}{"id": id})
}

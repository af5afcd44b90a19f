package adminapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/araddon/dateparse"
	"github.com/labstack/echo/v4"

	"github.com/tilazone/tilazone/internal/domain"
	"github.com/tilazone/tilazone/internal/webserver"
)

func registerOrderRoutes() {
	webserver.AdminGET("/orders", listOrders)
	webserver.AdminGET("/orders/export.xlsx", exportOrdersXLSX)
}

// parseOrderRange reads the optional from/to query parameters. Any
// common date format is accepted.
func parseOrderRange(c echo.Context) (from, to time.Time, err error) {
	if s := strings.TrimSpace(c.QueryParam("from")); s != "" {
		from, err = dateparse.ParseAny(s)
		if err != nil {
			return from, to, fmt.Errorf("invalid from date %q", s)
		}
	}
	if s := strings.TrimSpace(c.QueryParam("to")); s != "" {
		to, err = dateparse.ParseAny(s)
		if err != nil {
			return from, to, fmt.Errorf("invalid to date %q", s)
		}
	}
	return from, to, nil
}

func listOrders(c echo.Context) error {
	from, to, err := parseOrderRange(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_RANGE", err.Error(), nil)
	}
	page, pageSize := parsePagination(c)

	records, err := GetApp(c).Orders().List(c.Request().Context(), from, to)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "ORDERS_ERROR", "Failed to list orders", err.Error())
	}
	if records == nil {
		records = []domain.OrderRecord{}
	}

	total := int64(len(records))
	start := (page - 1) * pageSize
	if start > len(records) {
		start = len(records)
	}
	end := start + pageSize
	if end > len(records) {
		end = len(records)
	}
	return paged(c, records[start:end], total, page, pageSize)
}

func exportOrdersXLSX(c echo.Context) error {
	from, to, err := parseOrderRange(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_RANGE", err.Error(), nil)
	}

	records, err := GetApp(c).Orders().List(c.Request().Context(), from, to)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "ORDERS_ERROR", "Failed to list orders", err.Error())
	}

	f := excelize.NewFile()
	const sheet = "Sheet1"
	headers := []string{"Order ID", "Date", "Customer", "Phone", "City", "Address", "Lines", "Total"}
	for i, h := range headers {
		f.SetCellValue(sheet, fmt.Sprintf("%c1", 'A'+i), h)
	}
	for i, rec := range records {
		row := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), rec.ID)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), rec.OrderDate.Format(time.RFC3339))
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), rec.Customer.Name+" "+rec.Customer.LastName)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), rec.Customer.Phone)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), rec.Customer.City)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), rec.Customer.Address)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), len(rec.Details))
		f.SetCellValue(sheet, fmt.Sprintf("H%d", row), rec.TotalAmount)
	}

	c.Response().Header().Set(echo.HeaderContentType,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="orders.xlsx"`)
	c.Response().WriteHeader(http.StatusOK)
	return f.Write(c.Response())
}

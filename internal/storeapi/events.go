package storeapi

import (
	"fmt"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/tilazone/tilazone/internal/domain"
	"github.com/tilazone/tilazone/internal/webserver"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// streamCatalog pushes the full new product list to the client after
// every catalog save, as server-sent events. Delivery is best effort:
// a slow client only skips intermediate states, the last write always
// arrives. Browser views use this in place of a storage listener.
func streamCatalog(c echo.Context) error {
	resp := c.Response()
	resp.Header().Set(echo.HeaderContentType, "text/event-stream")
	resp.Header().Set(echo.HeaderCacheControl, "no-store")
	resp.Header().Set(echo.HeaderConnection, "keep-alive")
	resp.WriteHeader(http.StatusOK)

	flusher, ok := resp.Writer.(http.Flusher)
	if !ok {
		return echo.NewHTTPError(http.StatusInternalServerError, "streaming unsupported")
	}

	// buffer one update; newer updates replace a pending one
	updates := make(chan []domain.Product, 1)
	fn := func(products []domain.Product) {
		for {
			select {
			case updates <- products:
				return
			default:
				select {
				case <-updates:
				default:
				}
			}
		}
	}

	repo := webserver.GetApp(c).Catalog()
	if err := repo.Subscribe(fn); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "subscribe failed")
	}
	defer func() {
		if err := repo.Unsubscribe(fn); err != nil {
			zap.L().Warn("catalog stream unsubscribe failed", zap.Error(err))
		}
	}()

	// send the current catalog first so the view starts consistent
	current, err := repo.Load(c.Request().Context())
	if err == nil {
		writeCatalogEvent(resp, flusher, current)
	}

	ctx := c.Request().Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case products := <-updates:
			writeCatalogEvent(resp, flusher, products)
		}
	}
}

func writeCatalogEvent(resp *echo.Response, flusher http.Flusher, products []domain.Product) {
	raw, err := json.Marshal(products)
	if err != nil {
		zap.L().Error("catalog stream encode failed", zap.Error(err))
		return
	}
	fmt.Fprintf(resp, "event: products\ndata: %s\n\n", raw)
	flusher.Flush()
}

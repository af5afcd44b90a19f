package checkout

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tilazone/tilazone/internal/domain"
	"github.com/tilazone/tilazone/internal/orders"
)

func testNode(t *testing.T) *snowflake.Node {
	t.Helper()
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	return node
}

func customer() domain.CustomerInfo {
	return domain.CustomerInfo{
		Name:     "Omar",
		LastName: "Benali",
		Phone:    "+212 600-000000",
		City:     "Rabat",
		Address:  "12 Rue Atlas",
	}
}

func cartItems() []domain.CartItem {
	return []domain.CartItem{
		{Product: domain.Product{ID: 1, Name: "iPhone 14 Pro", Price: 14999}, Quantity: 2},
		{Product: domain.Product{ID: 2, Name: "Headphones", Price: 3499}, Quantity: 1},
	}
}

func TestSubmitSuccess(t *testing.T) {
	var got map[string]interface{}
	sink := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &got))
		assert.NotEmpty(t, r.Header.Get("X-Order-Ref"))
		w.WriteHeader(http.StatusOK)
	}))
	defer sink.Close()

	journal := orders.NewMemoryStore()
	s := NewSubmitter(sink.URL, testNode(t), journal, nil)

	record, err := s.Submit(context.Background(), customer(), cartItems())
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, float64(2*14999+3499), record.TotalAmount)

	assert.Equal(t, "Omar", got["name"])
	assert.Equal(t, "Benali", got["lastName"])
	assert.NotEmpty(t, got["orderDate"])
	assert.NotEmpty(t, got["orderRef"])
	details, ok := got["orderDetails"].([]interface{})
	require.True(t, ok)
	require.Len(t, details, 2)
	first := details[0].(map[string]interface{})
	assert.Equal(t, "iPhone 14 Pro", first["name"])
	assert.Equal(t, float64(2), first["quantity"])
	assert.Equal(t, float64(2*14999), first["total"])

	journaled, err := journal.List(context.Background(), time.Time{}, time.Time{})
	require.NoError(t, err)
	require.Len(t, journaled, 1)
	assert.Equal(t, record.ID, journaled[0].ID)
}

func TestSubmitNonSuccessStatusIsRetryable(t *testing.T) {
	sink := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer sink.Close()

	journal := orders.NewMemoryStore()
	s := NewSubmitter(sink.URL, testNode(t), journal, nil)

	items := cartItems()
	_, err := s.Submit(context.Background(), customer(), items)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSubmit))

	// nothing recorded, cart snapshot untouched
	journaled, err := journal.List(context.Background(), time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Empty(t, journaled)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestSubmitTransportErrorIsRetryable(t *testing.T) {
	s := NewSubmitter("http://127.0.0.1:1", testNode(t), nil, nil)
	_, err := s.Submit(context.Background(), customer(), cartItems())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSubmit))
}

func TestSubmitValidation(t *testing.T) {
	s := NewSubmitter("http://unused.invalid", testNode(t), nil, nil)

	ci := customer()
	ci.City = "  "
	_, err := s.Submit(context.Background(), ci, cartItems())
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "city", verr.Field)

	_, err = s.Submit(context.Background(), customer(), nil)
	assert.True(t, errors.Is(err, ErrEmptyCart))
}

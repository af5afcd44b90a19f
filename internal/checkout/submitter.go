// Package checkout bundles a customer with a cart snapshot and submits
// the order to the external order intake sink.
package checkout

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/guonaihong/gout"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/tilazone/tilazone/internal/domain"
	"github.com/tilazone/tilazone/internal/orders"
	"github.com/tilazone/tilazone/pkg/metrics"
)

var (
	// ErrEmptyCart rejects a checkout with no cart lines.
	ErrEmptyCart = errors.New("checkout: cart is empty")
	// ErrSubmit marks a retryable transport failure. The caller's cart
	// and form state are left untouched so the user can resubmit; a
	// resubmission may create a duplicate order at the sink, which is
	// why the payload carries the client order reference.
	ErrSubmit = errors.New("checkout: order submission failed")
)

// ValidationError names the missing customer field.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return "checkout: " + e.Field + " is required"
}

// orderPayload is the wire format of the order sink.
type orderPayload struct {
	Name         string               `json:"name"`
	LastName     string               `json:"lastName"`
	Phone        string               `json:"phone"`
	City         string               `json:"city"`
	Address      string               `json:"address"`
	OrderDetails []domain.OrderDetail `json:"orderDetails"`
	TotalAmount  float64              `json:"totalAmount"`
	OrderDate    string               `json:"orderDate"`
	OrderRef     string               `json:"orderRef"`
}

// Submitter performs the single outbound order request. No automatic
// retry; every retry is user initiated.
type Submitter struct {
	endpoint string
	node     *snowflake.Node
	journal  orders.Store
	mailer   *Mailer
}

func NewSubmitter(endpoint string, node *snowflake.Node, journal orders.Store, mailer *Mailer) *Submitter {
	return &Submitter{
		endpoint: endpoint,
		node:     node,
		journal:  journal,
		mailer:   mailer,
	}
}

// ValidateCustomer checks every checkout field for presence. Format is
// not validated.
func ValidateCustomer(ci domain.CustomerInfo) error {
	fields := []struct {
		name  string
		value string
	}{
		{"name", ci.Name},
		{"lastName", ci.LastName},
		{"phone", ci.Phone},
		{"city", ci.City},
		{"address", ci.Address},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return &ValidationError{Field: f.name}
		}
	}
	return nil
}

// Submit computes the line-item breakdown and posts it to the sink.
// Success is decided solely by the transport status; the response body
// is never parsed. On success the order is journaled locally and a
// best-effort notification mail is sent. On failure ErrSubmit is
// returned and nothing is recorded.
func (s *Submitter) Submit(ctx context.Context, customer domain.CustomerInfo, items []domain.CartItem) (*domain.OrderRecord, error) {
	if err := ValidateCustomer(customer); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	details := make([]domain.OrderDetail, 0, len(items))
	var total float64
	for _, it := range items {
		details = append(details, domain.OrderDetail{
			Name:     it.Name,
			Quantity: it.Quantity,
			Price:    it.Price,
			Total:    it.LineTotal(),
		})
		total += it.LineTotal()
	}

	orderDate := time.Now().UTC()
	ref := s.node.Generate()
	payload := orderPayload{
		Name:         customer.Name,
		LastName:     customer.LastName,
		Phone:        customer.Phone,
		City:         customer.City,
		Address:      customer.Address,
		OrderDetails: details,
		TotalAmount:  total,
		OrderDate:    orderDate.Format(time.RFC3339),
		OrderRef:     ref.String(),
	}

	var code int
	err := gout.POST(s.endpoint).
		WithContext(ctx).
		SetHeader(gout.H{"X-Order-Ref": ref.String()}).
		SetJSON(payload).
		Code(&code).
		Do()
	if err != nil {
		metrics.Incr(metrics.MetricOrdersFailed)
		return nil, errors.Wrapf(ErrSubmit, "transport error: %v", err)
	}
	if code < 200 || code > 299 {
		metrics.Incr(metrics.MetricOrdersFailed)
		return nil, errors.Wrapf(ErrSubmit, "sink returned status %d", code)
	}

	record := domain.OrderRecord{
		ID:          ref.Int64(),
		Customer:    customer,
		Details:     details,
		TotalAmount: total,
		OrderDate:   orderDate,
	}
	if s.journal != nil {
		if err := s.journal.Append(ctx, record); err != nil {
			zap.L().Error("failed to journal order", zap.Int64("order_id", record.ID), zap.Error(err))
		}
	}
	if s.mailer != nil {
		s.mailer.NotifyOrder(record)
	}
	metrics.Incr(metrics.MetricOrdersSubmitted)
	zap.L().Info("order submitted",
		zap.String("order_ref", ref.String()),
		zap.Float64("total", total),
		zap.Int("lines", len(details)))
	return &record, nil
}

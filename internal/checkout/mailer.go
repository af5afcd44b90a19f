package checkout

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	gomail "gopkg.in/gomail.v2"

	"github.com/tilazone/tilazone/config"
	"github.com/tilazone/tilazone/internal/domain"
)

// Mailer sends a best-effort order notification to the shop mailbox.
// Disabled when no SMTP host is configured; failures are only logged.
type Mailer struct {
	cfg config.SmtpConfig
	to  string
}

func NewMailer(cfg config.SmtpConfig, to string) *Mailer {
	if cfg.Host == "" || to == "" {
		return nil
	}
	return &Mailer{cfg: cfg, to: to}
}

func (m *Mailer) NotifyOrder(record domain.OrderRecord) {
	var body strings.Builder
	fmt.Fprintf(&body, "Order %d from %s %s (%s, %s)\n\n",
		record.ID, record.Customer.Name, record.Customer.LastName,
		record.Customer.City, record.Customer.Phone)
	for _, d := range record.Details {
		fmt.Fprintf(&body, "%d x %s @ %.2f = %.2f\n", d.Quantity, d.Name, d.Price, d.Total)
	}
	fmt.Fprintf(&body, "\nTotal: %.2f\n", record.TotalAmount)

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.Sender)
	msg.SetHeader("To", m.to)
	msg.SetHeader("Subject", fmt.Sprintf("New order %d", record.ID))
	msg.SetBody("text/plain", body.String())

	dialer := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.Username, m.cfg.Password)
	if err := dialer.DialAndSend(msg); err != nil {
		zap.L().Warn("order notification mail failed", zap.Int64("order_id", record.ID), zap.Error(err))
	}
}

// Package mail delivers workflow notifications over SMTP with gomail.
// Sends run on their own goroutine so a slow relay never holds a request.
package mail

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	gomail "gopkg.in/gomail.v2"

	"github.com/orderdesk/orderdesk-api/internal/application/notify"
	"github.com/orderdesk/orderdesk-api/internal/domain/entity"
	"github.com/orderdesk/orderdesk-api/pkg/config"
)

var _ notify.Notifier = (*Notifier)(nil)

// Notifier implements notify.Notifier over an SMTP relay.
type Notifier struct {
	dialer *gomail.Dialer
	from   string
	log    zerolog.Logger
}

// NewNotifier builds the SMTP notifier from configuration.
func NewNotifier(cfg config.SMTPConfig, log zerolog.Logger) *Notifier {
	return &Notifier{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   cfg.From,
		log:    log.With().Str("component", "mail").Logger(),
	}
}

func (n *Notifier) send(to, subject, body string) {
	if to == "" {
		return
	}
	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	go func() {
		if err := n.dialer.DialAndSend(m); err != nil {
			n.log.Error().Err(err).Str("to", to).Str("subject", subject).Msg("send mail")
		}
	}()
}

// OrderApprovalRequested tells the approver an order awaits sign-off.
func (n *Notifier) OrderApprovalRequested(_ context.Context, order *entity.Order, approverEmail string) {
	n.send(approverEmail,
		fmt.Sprintf("Order %s awaits your approval", order.OrderNo),
		fmt.Sprintf("Order %s for %s (total %s) was placed and needs your approval.\n",
			order.OrderNo, order.ShipCenterName, order.TotalAmount.StringFixed(0)))
}

// OrderConfirmed tells the orderer the order was approved.
func (n *Notifier) OrderConfirmed(_ context.Context, order *entity.Order, recipientEmail string) {
	n.send(recipientEmail,
		fmt.Sprintf("Order %s confirmed", order.OrderNo),
		fmt.Sprintf("Your order %s was approved and is now confirmed.\n", order.OrderNo))
}

// OrderRejected tells the orderer the order was rejected.
func (n *Notifier) OrderRejected(_ context.Context, order *entity.Order, recipientEmail, comment string) {
	body := fmt.Sprintf("Your order %s was rejected and returned to draft.\n", order.OrderNo)
	if comment != "" {
		body += "Reviewer comment: " + comment + "\n"
	}
	n.send(recipientEmail, fmt.Sprintf("Order %s rejected", order.OrderNo), body)
}

// MembershipDecided tells the applicant the membership outcome.
func (n *Notifier) MembershipDecided(_ context.Context, recipientEmail string, approved bool, comment string) {
	if approved {
		n.send(recipientEmail, "Membership approved",
			"Your membership request was approved. You can sign in and start ordering.\n")
		return
	}
	body := "Your membership request was rejected.\n"
	if comment != "" {
		body += "Reviewer comment: " + comment + "\n"
	}
	n.send(recipientEmail, "Membership rejected", body)
}

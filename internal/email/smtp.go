// Package email delivers advisor notifications over SMTP.
package email

import (
	"context"
	"fmt"
	"net"
	"time"

	gomail "github.com/wneessen/go-mail"

	"promopro_backend/internal/events"
	"promopro_backend/platform/config"
)

// Sender delivers lead notification email.
type Sender interface {
	SendLeadNotification(ctx context.Context, toEmail string, lead events.LeadSubmitted) error
}

// SMTPSender implements Sender over a direct SMTP connection via go-mail.
// NewSMTPSender returns nil when SMTP is not configured; a nil sender is a
// valid no-op so the storefront runs without mail in development.
type SMTPSender struct {
	host      string
	port      int
	username  string
	password  string
	fromName  string
	fromEmail string
}

// NewSMTPSender creates an SMTPSender from the email settings.
func NewSMTPSender(cfg config.EmailConfig) *SMTPSender {
	if !cfg.GetEmailEnabled() || cfg.GetSMTPHost() == "" {
		return nil
	}
	return &SMTPSender{
		host:      cfg.GetSMTPHost(),
		port:      cfg.GetSMTPPort(),
		username:  cfg.GetSMTPUsername(),
		password:  cfg.GetSMTPPassword(),
		fromName:  cfg.GetEmailFromName(),
		fromEmail: cfg.GetEmailFromAddress(),
	}
}

// SendLeadNotification mails the advisor a summary of a captured lead.
func (s *SMTPSender) SendLeadNotification(ctx context.Context, toEmail string, lead events.LeadSubmitted) error {
	if s == nil {
		return nil
	}

	items := make([]leadItemData, 0, len(lead.Items))
	for _, it := range lead.Items {
		items = append(items, leadItemData{
			Name:     it.Name,
			Quantity: it.Quantity,
			Subtotal: it.Subtotal,
		})
	}

	content, err := renderEmailTemplate("lead_notification.html", leadNotificationData{
		Title:          "Nueva solicitud de cotización",
		Heading:        "Nueva solicitud de cotización",
		PublicToken:    lead.PublicToken,
		BuyerName:      lead.BuyerName,
		BuyerCompany:   lead.BuyerCompany,
		BuyerPhone:     lead.BuyerPhone,
		BuyerEmail:     lead.BuyerEmail,
		Items:          items,
		EstimatedTotal: lead.EstimatedTotal,
	})
	if err != nil {
		return err
	}

	subject := fmt.Sprintf("Nueva cotización %s de %s", lead.PublicToken, lead.BuyerCompany)
	return s.send(ctx, toEmail, subject, content)
}

func (s *SMTPSender) send(ctx context.Context, toEmail, subject, htmlContent string) error {
	msg := gomail.NewMsg()
	if err := msg.FromFormat(s.fromName, s.fromEmail); err != nil {
		return fmt.Errorf("smtp from: %w", err)
	}
	if err := msg.To(toEmail); err != nil {
		return fmt.Errorf("smtp to: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, htmlContent)

	client, err := gomail.NewClient(s.host,
		gomail.WithPort(s.port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.username),
		gomail.WithPassword(s.password),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
		gomail.WithTimeout(15*time.Second),
		gomail.WithDialContextFunc(func(dctx context.Context, _ string, addr string) (net.Conn, error) {
			return (&net.Dialer{}).DialContext(dctx, "tcp4", addr)
		}),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

// Package notification subscribes to domain events and alerts the sales
// advisor. Domain modules publish events and never know about email
// providers or WhatsApp gateways.
package notification

import (
	"context"
	"fmt"

	"promopro_backend/internal/email"
	"promopro_backend/internal/events"
	"promopro_backend/platform/config"
	"promopro_backend/platform/logger"
)

// WhatsAppSender sends WhatsApp messages.
type WhatsAppSender interface {
	SendMessage(ctx context.Context, phoneNumber, message string) error
}

// Module wires event handlers to the notification channels. Either channel
// may be nil; a lead is never lost because a notification could not go out.
type Module struct {
	sender       email.Sender
	wa           WhatsAppSender
	advisorEmail string
	advisorPhone string
	log          *logger.Logger
}

// NewModule creates the notification module.
func NewModule(sender email.Sender, wa WhatsAppSender, cfg config.EmailConfig, waCfg config.WhatsAppConfig, log *logger.Logger) *Module {
	return &Module{
		sender:       sender,
		wa:           wa,
		advisorEmail: cfg.GetAdvisorEmail(),
		advisorPhone: waCfg.GetAdvisorWhatsApp(),
		log:          log,
	}
}

// Register subscribes the module to the events it handles.
func (m *Module) Register(bus events.Bus) {
	bus.Subscribe(events.LeadSubmitted{}.EventName(), m)
	m.log.Info("notification module registered event handlers")
}

// Handle routes events to the appropriate handler method.
func (m *Module) Handle(ctx context.Context, event events.Event) error {
	switch e := event.(type) {
	case events.LeadSubmitted:
		return m.handleLeadSubmitted(ctx, e)
	default:
		return nil
	}
}

func (m *Module) handleLeadSubmitted(ctx context.Context, e events.LeadSubmitted) error {
	if m.sender != nil && m.advisorEmail != "" {
		if err := m.sender.SendLeadNotification(ctx, m.advisorEmail, e); err != nil {
			m.log.Error("lead notification email failed", "lead_id", e.LeadID.String(), "error", err)
		}
	}

	if m.wa != nil && m.advisorPhone != "" {
		message := fmt.Sprintf(
			"Nueva cotizacion %s: %s (%s), %d productos, total estimado $%s MXN.",
			e.PublicToken, e.BuyerName, e.BuyerCompany, len(e.Items), e.EstimatedTotal,
		)
		if err := m.wa.SendMessage(ctx, m.advisorPhone, message); err != nil {
			m.log.Error("lead notification whatsapp failed", "lead_id", e.LeadID.String(), "error", err)
		}
	}

	return nil
}

// Package whatsapp builds WhatsApp deep links for visitors and sends
// messages to the sales advisor through a gowa-compatible gateway.
package whatsapp

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
)

// DeepLink returns a wa.me link that opens a chat with the advisor and a
// prefilled greeting. The phone keeps digits only; wa.me rejects the
// leading plus.
func DeepLink(advisorPhone, text string) string {
	return fmt.Sprintf("https://wa.me/%s?text=%s", digitsOnly(advisorPhone), url.QueryEscape(text))
}

// LeadGreeting is the prefilled message a visitor sends after submitting a
// quote request. The folio lets the advisor find the lead without asking.
func LeadGreeting(buyerName, buyerCompany, folio string, estimatedTotal decimal.Decimal) string {
	return fmt.Sprintf(
		"Hola, soy %s de %s. Acabo de enviar una solicitud de cotizacion (folio %s) por un estimado de $%s MXN. Me gustaria confirmar tiempos de entrega.",
		buyerName, buyerCompany, folio, estimatedTotal.StringFixed(2),
	)
}

func digitsOnly(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

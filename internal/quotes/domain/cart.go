// Package domain provides core business rules for the quotes bounded context:
// the quote cart and the storefront session state machine. Everything here is
// pure in-memory state with no I/O, so it can be exercised without any
// transport or storage harness.
package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LogoFormat is the legacy discrete decoration choice used when no print
// technique is selected.
type LogoFormat string

const (
	LogoFormatNone      LogoFormat = "none"
	LogoFormatOneColor  LogoFormat = "one_color"
	LogoFormatFullColor LogoFormat = "full_color"
	LogoFormatTextOnly  LogoFormat = "text_only"
)

// ParseLogoFormat validates a wire value. The empty string maps to
// LogoFormatNone.
func ParseLogoFormat(s string) (LogoFormat, bool) {
	switch LogoFormat(s) {
	case "", LogoFormatNone:
		return LogoFormatNone, true
	case LogoFormatOneColor, LogoFormatFullColor, LogoFormatTextOnly:
		return LogoFormat(s), true
	default:
		return LogoFormatNone, false
	}
}

// LineItem is one priced, configured product entry in a quote cart.
// It is immutable once added: reconfiguring produces a new candidate via
// the pricing engine, never an in-place edit.
type LineItem struct {
	CartID           uuid.UUID       `json:"cartId"`
	ProductID        uuid.UUID       `json:"productId"`
	SKU              string          `json:"sku"`
	Name             string          `json:"name"`
	ColorName        string          `json:"colorName,omitempty"`
	Quantity         int             `json:"quantity"`
	TechniqueName    string          `json:"techniqueName,omitempty"`
	LogoFormat       LogoFormat      `json:"logoFormat"`
	UnitPrice        decimal.Decimal `json:"unitPrice"`
	SetupFee         decimal.Decimal `json:"setupFee"`
	LineTotal        decimal.Decimal `json:"lineTotal"`
	HasVirtualSample bool            `json:"hasVirtualSample"`
}

// Cart is the ordered per-session quote cart. Insertion order is display
// order. The grand total is always derived from the items, never stored.
type Cart struct {
	Items []LineItem `json:"items"`
}

// Add appends the item with a fresh cartId and returns the id.
// CartIDs are random uuids and never reused within the cart's lifetime.
func (c *Cart) Add(item LineItem) uuid.UUID {
	item.CartID = uuid.New()
	c.Items = append(c.Items, item)
	return item.CartID
}

// Remove deletes the item with the given cartId. Removing an absent id is a
// no-op: UI double-clicks are expected and deletion must be idempotent.
func (c *Cart) Remove(cartID uuid.UUID) {
	for i, item := range c.Items {
		if item.CartID == cartID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return
		}
	}
}

// GrandTotal sums all line totals. An empty cart totals zero.
func (c *Cart) GrandTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.LineTotal)
	}
	return total
}

// Snapshot returns a copy of the items in display order. Mutating the
// returned slice never affects the cart.
func (c *Cart) Snapshot() []LineItem {
	out := make([]LineItem, len(c.Items))
	copy(out, c.Items)
	return out
}

// Size returns the number of line items.
func (c *Cart) Size() int {
	return len(c.Items)
}

// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"promopro_backend/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Lead Domain Events
// =============================================================================

// LeadSubmittedItem is one snapshotted line of a submitted lead.
type LeadSubmittedItem struct {
	SKU      string `json:"sku"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Subtotal string `json:"subtotal"`
}

// LeadSubmitted is published after a quote request has been persisted.
// All fields are copied from the stored Lead, never from live cart state,
// so downstream notifications cannot race with later cart mutations.
type LeadSubmitted struct {
	BaseEvent
	LeadID         uuid.UUID           `json:"leadId"`
	PublicToken    string              `json:"publicToken"`
	BuyerName      string              `json:"buyerName"`
	BuyerCompany   string              `json:"buyerCompany"`
	BuyerPhone     string              `json:"buyerPhone"`
	BuyerEmail     string              `json:"buyerEmail"`
	Items          []LeadSubmittedItem `json:"items"`
	EstimatedTotal string              `json:"estimatedTotal"`
}

func (e LeadSubmitted) EventName() string { return "leads.lead.submitted" }

package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Lead is one captured quote request. Leads are append-only from this
// service's point of view; sales staff work them in a separate back office.
type Lead struct {
	ID             uuid.UUID
	PublicToken    string
	SessionToken   uuid.UUID
	BuyerName      string
	BuyerCompany   string
	BuyerPhone     string
	BuyerEmail     string
	EstimatedTotal decimal.Decimal
	Status         string
	CreatedAt      time.Time
}

// LeadItem is one cart line frozen at submission time. Prices are stored
// denormalized so later catalog changes never rewrite quoted amounts.
type LeadItem struct {
	ID               uuid.UUID
	LeadID           uuid.UUID
	ProductID        uuid.UUID
	SKU              string
	Name             string
	ColorName        string
	Quantity         int
	TechniqueName    string
	LogoFormat       string
	UnitPrice        decimal.Decimal
	SetupFee         decimal.Decimal
	LineTotal        decimal.Decimal
	HasVirtualSample bool
}

// StatusNew is the initial workflow status of every captured lead.
const StatusNew = "new"

// Repository defines persistence for captured leads.
type Repository interface {
	// Insert stores the lead and its items atomically.
	Insert(ctx context.Context, lead Lead, items []LeadItem) error
	// GetByPublicToken returns a lead and its items by the visitor-facing
	// token, or apperr.NotFound.
	GetByPublicToken(ctx context.Context, token string) (Lead, []LeadItem, error)
}

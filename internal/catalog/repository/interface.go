package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a catalog product row. Catalog data is read-only to this
// service: it is maintained by the distributor import pipeline upstream.
type Product struct {
	ID          uuid.UUID
	SKU         *string
	Name        string
	Description string
	BaseNetCost decimal.Decimal
	Images      []string
	Colors      []ProductColor
	PrintArea   *PrintArea
	Active      bool
}

// ProductColor is a stocked color variant. Stock quantities are
// informational only and never decremented here.
type ProductColor struct {
	ID       uuid.UUID
	Name     string
	HexColor string
	StockQty int
}

// PrintArea is the overlay rectangle for virtual samples, expressed as
// percentages of the product image. It plays no part in pricing.
type PrintArea struct {
	Top    float64 `json:"top"`
	Left   float64 `json:"left"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// PrintTechnique is a decoration technique with its volume-tier price table.
type PrintTechnique struct {
	ID            uuid.UUID
	Name          string
	FixedSetupFee decimal.Decimal
	Tiers         []VolumeTier
	Active        bool
}

// VolumeTier maps a quantity range to a per-unit printing cost.
// MaxQty nil means the tier is open-ended.
type VolumeTier struct {
	MinQty   int
	MaxQty   *int
	UnitCost decimal.Decimal
}

// Repository defines read access to the hosted catalog.
type Repository interface {
	ListActiveProducts(ctx context.Context) ([]Product, error)
	GetProductByID(ctx context.Context, id uuid.UUID) (Product, error)
	ListActiveTechniques(ctx context.Context) ([]PrintTechnique, error)
}

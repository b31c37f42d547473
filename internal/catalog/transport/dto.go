// Package transport defines the catalog module's HTTP request/response shapes.
package transport

// ColorResponse is a stocked color variant of a product.
type ColorResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	HexColor string `json:"hexColor"`
	StockQty int    `json:"stockQty"`
}

// PrintAreaResponse is the virtual-sample overlay rectangle in percentages.
type PrintAreaResponse struct {
	Top    float64 `json:"top"`
	Left   float64 `json:"left"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ProductResponse is a catalog product as exposed to the storefront.
// UnitPrice is the marked-up quote price; the distributor net cost is
// never exposed over the wire.
type ProductResponse struct {
	ID          string             `json:"id"`
	SKU         string             `json:"sku,omitempty"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	UnitPrice   string             `json:"unitPrice"`
	Images      []string           `json:"images"`
	Colors      []ColorResponse    `json:"colors"`
	PrintArea   *PrintAreaResponse `json:"printArea,omitempty"`
}

// ProductListResponse wraps the active-product listing.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Total int               `json:"total"`
}

// TierResponse is one quantity range of a technique price table.
type TierResponse struct {
	MinQty   int    `json:"minQty"`
	MaxQty   *int   `json:"maxQty,omitempty"`
	UnitCost string `json:"unitCost"`
}

// TechniqueResponse is a print technique with its volume tiers.
type TechniqueResponse struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	FixedSetupFee string         `json:"fixedSetupFee"`
	Tiers         []TierResponse `json:"tiers"`
}

// TechniqueListResponse wraps the technique listing.
type TechniqueListResponse struct {
	Items []TechniqueResponse `json:"items"`
}

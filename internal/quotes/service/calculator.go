package service

import (
	"github.com/shopspring/decimal"

	catalogrepo "promopro_backend/internal/catalog/repository"
	"promopro_backend/internal/quotes/domain"
	"promopro_backend/platform/apperr"
	"promopro_backend/platform/config"
)

const (
	msgInvalidQuantity  = "quantity must be a positive whole number"
	msgUnknownTechnique = "print technique not found"
	msgNoTierForQty     = "no volume tier covers this quantity"
	msgExclusivePricing = "a print technique and a logo format cannot be priced together"
)

// legacyFormatPrice is the flat per-unit cost and setup fee of the discrete
// logo-format table. It only applies when no print technique is chosen;
// tier-based technique pricing is the canonical path.
type legacyFormatPrice struct {
	unitCost decimal.Decimal
	setupFee decimal.Decimal
}

var legacyFormatTable = map[domain.LogoFormat]legacyFormatPrice{
	domain.LogoFormatTextOnly:  {unitCost: decimal.NewFromFloat(18.00), setupFee: decimal.Zero},
	domain.LogoFormatOneColor:  {unitCost: decimal.NewFromFloat(8.50), setupFee: decimal.NewFromInt(350)},
	domain.LogoFormatFullColor: {unitCost: decimal.NewFromFloat(16.50), setupFee: decimal.NewFromInt(1050)},
}

// Configuration is one in-progress product configuration to be priced.
type Configuration struct {
	Quantity         int
	TechniqueName    string
	LogoFormat       domain.LogoFormat
	ColorName        string
	HasVirtualSample bool
}

// Engine computes quote line items. The markup multiplier and minimum order
// quantity are process-wide policy fixed at startup.
type Engine struct {
	markup      decimal.Decimal
	minOrderQty int
}

// NewEngine creates a pricing engine from the pricing policy.
func NewEngine(cfg config.PricingConfig) *Engine {
	return &Engine{
		markup:      cfg.GetGlobalMarkup(),
		minOrderQty: cfg.GetMinOrderQty(),
	}
}

// MinOrderQty returns the configured minimum order quantity.
func (e *Engine) MinOrderQty() int {
	return e.minOrderQty
}

// ClampQuantity raises a below-minimum quantity to the policy minimum.
// Non-positive values are left for ComputeLineItem to reject.
func (e *Engine) ClampQuantity(qty int) int {
	if qty >= 1 && qty < e.minOrderQty {
		return e.minOrderQty
	}
	return qty
}

// ComputeLineItem prices one configuration of a product:
//
//	markedUpUnit  = baseNetCost * markup
//	unitPrice     = markedUpUnit + unitPrintCost
//	lineTotal     = unitPrice * quantity + setupFee
//
// A chosen technique prices printing from its volume-tier table (a tier
// gap is a configuration error, never a silent zero cost). Without a
// technique, the legacy logo-format table applies. The two paths are
// mutually exclusive. A missing distributor cost prices as zero rather than
// failing. All intermediate math stays in full decimal precision; rounding
// happens only at the transport boundary.
func (e *Engine) ComputeLineItem(product catalogrepo.Product, techniques []catalogrepo.PrintTechnique, cfg Configuration) (domain.LineItem, error) {
	if cfg.Quantity < 1 {
		return domain.LineItem{}, apperr.Validation(msgInvalidQuantity)
	}

	unitPrintCost := decimal.Zero
	setupFee := decimal.Zero

	switch {
	case cfg.TechniqueName != "":
		if _, priced := legacyFormatTable[cfg.LogoFormat]; priced {
			return domain.LineItem{}, apperr.Validation(msgExclusivePricing)
		}
		technique, ok := findTechnique(techniques, cfg.TechniqueName)
		if !ok {
			return domain.LineItem{}, apperr.Unprocessable(msgUnknownTechnique)
		}
		tier, ok := findTier(technique.Tiers, cfg.Quantity)
		if !ok {
			return domain.LineItem{}, apperr.Unprocessable(msgNoTierForQty)
		}
		unitPrintCost = tier.UnitCost
		setupFee = technique.FixedSetupFee

	default:
		if price, ok := legacyFormatTable[cfg.LogoFormat]; ok {
			unitPrintCost = price.unitCost
			setupFee = price.setupFee
		}
	}

	markedUpUnit := product.BaseNetCost.Mul(e.markup)
	unitPrice := markedUpUnit.Add(unitPrintCost)
	quantity := decimal.NewFromInt(int64(cfg.Quantity))
	lineTotal := unitPrice.Mul(quantity).Add(setupFee)

	sku := ""
	if product.SKU != nil {
		sku = *product.SKU
	}

	return domain.LineItem{
		ProductID:        product.ID,
		SKU:              sku,
		Name:             product.Name,
		ColorName:        cfg.ColorName,
		Quantity:         cfg.Quantity,
		TechniqueName:    cfg.TechniqueName,
		LogoFormat:       cfg.LogoFormat,
		UnitPrice:        unitPrice,
		SetupFee:         setupFee,
		LineTotal:        lineTotal,
		HasVirtualSample: cfg.HasVirtualSample,
	}, nil
}

func findTechnique(techniques []catalogrepo.PrintTechnique, name string) (catalogrepo.PrintTechnique, bool) {
	for _, t := range techniques {
		if t.Name == name {
			return t, true
		}
	}
	return catalogrepo.PrintTechnique{}, false
}

// findTier returns the tier whose [minQty, maxQty] range contains qty.
// Tiers are contiguous and non-overlapping by catalog contract; a gap here
// means the upstream table is broken and the caller must refuse to price.
func findTier(tiers []catalogrepo.VolumeTier, qty int) (catalogrepo.VolumeTier, bool) {
	for _, tier := range tiers {
		if qty < tier.MinQty {
			continue
		}
		if tier.MaxQty == nil || qty <= *tier.MaxQty {
			return tier, true
		}
	}
	return catalogrepo.VolumeTier{}, false
}

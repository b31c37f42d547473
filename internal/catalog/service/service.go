package service

import (
	"context"

	"github.com/google/uuid"

	"promopro_backend/internal/catalog/repository"
	"promopro_backend/internal/catalog/transport"
	"promopro_backend/platform/apperr"
	"promopro_backend/platform/config"
	"promopro_backend/platform/logger"
)

// Service provides read access to the catalog for the storefront.
type Service struct {
	repo    repository.Repository
	pricing config.PricingConfig
	log     *logger.Logger
}

// New creates a new catalog service.
func New(repo repository.Repository, pricing config.PricingConfig, log *logger.Logger) *Service {
	return &Service{repo: repo, pricing: pricing, log: log}
}

// ListActiveProducts returns the storefront product listing with quote
// prices. Rows failing the strict boundary check are dropped and logged
// rather than propagated into pricing math.
func (s *Service) ListActiveProducts(ctx context.Context) (transport.ProductListResponse, error) {
	products, err := s.repo.ListActiveProducts(ctx)
	if err != nil {
		return transport.ProductListResponse{}, err
	}

	items := make([]transport.ProductResponse, 0, len(products))
	for _, p := range products {
		if err := validateProduct(p); err != nil {
			s.log.Warn("skipping malformed catalog row", "product_id", p.ID, "error", err)
			continue
		}
		items = append(items, s.toProductResponse(p))
	}

	return transport.ProductListResponse{Items: items, Total: len(items)}, nil
}

// GetProduct returns one product for the detail view.
func (s *Service) GetProduct(ctx context.Context, id uuid.UUID) (transport.ProductResponse, error) {
	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		return transport.ProductResponse{}, err
	}
	if err := validateProduct(product); err != nil {
		return transport.ProductResponse{}, err
	}
	return s.toProductResponse(product), nil
}

// ListActiveTechniques returns the decoration techniques and their tier tables.
func (s *Service) ListActiveTechniques(ctx context.Context) (transport.TechniqueListResponse, error) {
	techniques, err := s.repo.ListActiveTechniques(ctx)
	if err != nil {
		return transport.TechniqueListResponse{}, err
	}

	items := make([]transport.TechniqueResponse, 0, len(techniques))
	for _, t := range techniques {
		items = append(items, toTechniqueResponse(t))
	}
	return transport.TechniqueListResponse{Items: items}, nil
}

// validateProduct is the strict boundary check for externally owned catalog
// rows: required fields must be present before a product may enter pricing.
func validateProduct(p repository.Product) error {
	if p.ID == uuid.Nil {
		return apperr.Unprocessable("catalog product is missing an id")
	}
	if p.Name == "" {
		return apperr.Unprocessable("catalog product is missing a name")
	}
	return nil
}

func (s *Service) toProductResponse(p repository.Product) transport.ProductResponse {
	resp := transport.ProductResponse{
		ID:          p.ID.String(),
		Name:        p.Name,
		Description: p.Description,
		UnitPrice:   p.BaseNetCost.Mul(s.pricing.GetGlobalMarkup()).StringFixed(2),
		Images:      p.Images,
		Colors:      make([]transport.ColorResponse, 0, len(p.Colors)),
	}
	if p.SKU != nil {
		resp.SKU = *p.SKU
	}
	if p.Images == nil {
		resp.Images = []string{}
	}
	for _, c := range p.Colors {
		resp.Colors = append(resp.Colors, transport.ColorResponse{
			ID:       c.ID.String(),
			Name:     c.Name,
			HexColor: c.HexColor,
			StockQty: c.StockQty,
		})
	}
	if p.PrintArea != nil {
		resp.PrintArea = &transport.PrintAreaResponse{
			Top:    p.PrintArea.Top,
			Left:   p.PrintArea.Left,
			Width:  p.PrintArea.Width,
			Height: p.PrintArea.Height,
		}
	}
	return resp
}

func toTechniqueResponse(t repository.PrintTechnique) transport.TechniqueResponse {
	resp := transport.TechniqueResponse{
		ID:            t.ID.String(),
		Name:          t.Name,
		FixedSetupFee: t.FixedSetupFee.StringFixed(2),
		Tiers:         make([]transport.TierResponse, 0, len(t.Tiers)),
	}
	for _, tier := range t.Tiers {
		resp.Tiers = append(resp.Tiers, transport.TierResponse{
			MinQty:   tier.MinQty,
			MaxQty:   tier.MaxQty,
			UnitCost: tier.UnitCost.StringFixed(2),
		})
	}
	return resp
}

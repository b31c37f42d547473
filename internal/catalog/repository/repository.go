package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"promopro_backend/platform/apperr"
)

const productNotFoundMessage = "product not found"

// Repo implements the catalog repository.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new catalog repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// ListActiveProducts returns all active products with their color variants.
func (r *Repo) ListActiveProducts(ctx context.Context) ([]Product, error) {
	query := `
		SELECT id, sku, name, description, base_net_cost::text, images, print_area
		FROM products
		WHERE active
		ORDER BY name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list active products: %w", err)
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		product.Active = true
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list active products: %w", err)
	}

	if err := r.attachColors(ctx, products); err != nil {
		return nil, err
	}
	return products, nil
}

// GetProductByID returns one product or apperr.NotFound. Inactive products
// are treated as absent: the storefront must never price a delisted item.
func (r *Repo) GetProductByID(ctx context.Context, id uuid.UUID) (Product, error) {
	query := `
		SELECT id, sku, name, description, base_net_cost::text, images, print_area
		FROM products
		WHERE id = $1 AND active`

	row := r.pool.QueryRow(ctx, query, id)
	product, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Product{}, apperr.NotFound(productNotFoundMessage)
		}
		return Product{}, fmt.Errorf("get product: %w", err)
	}
	product.Active = true

	products := []Product{product}
	if err := r.attachColors(ctx, products); err != nil {
		return Product{}, err
	}
	return products[0], nil
}

// ListActiveTechniques returns all active print techniques with their
// volume tiers ordered by min_qty.
func (r *Repo) ListActiveTechniques(ctx context.Context) ([]PrintTechnique, error) {
	query := `
		SELECT id, name, fixed_setup_fee::text
		FROM print_techniques
		WHERE active
		ORDER BY name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list techniques: %w", err)
	}
	defer rows.Close()

	var techniques []PrintTechnique
	byID := make(map[uuid.UUID]int)
	for rows.Next() {
		var t PrintTechnique
		var setupFee string
		if err := rows.Scan(&t.ID, &t.Name, &setupFee); err != nil {
			return nil, fmt.Errorf("scan technique: %w", err)
		}
		t.FixedSetupFee, err = decimal.NewFromString(setupFee)
		if err != nil {
			return nil, fmt.Errorf("technique %s setup fee: %w", t.Name, err)
		}
		t.Active = true
		byID[t.ID] = len(techniques)
		techniques = append(techniques, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list techniques: %w", err)
	}
	if len(techniques) == 0 {
		return techniques, nil
	}

	tierQuery := `
		SELECT technique_id, min_qty, max_qty, unit_cost::text
		FROM technique_tiers
		ORDER BY technique_id, min_qty`

	tierRows, err := r.pool.Query(ctx, tierQuery)
	if err != nil {
		return nil, fmt.Errorf("list technique tiers: %w", err)
	}
	defer tierRows.Close()

	for tierRows.Next() {
		var techniqueID uuid.UUID
		var tier VolumeTier
		var unitCost string
		if err := tierRows.Scan(&techniqueID, &tier.MinQty, &tier.MaxQty, &unitCost); err != nil {
			return nil, fmt.Errorf("scan technique tier: %w", err)
		}
		tier.UnitCost, err = decimal.NewFromString(unitCost)
		if err != nil {
			return nil, fmt.Errorf("tier unit cost: %w", err)
		}
		if idx, ok := byID[techniqueID]; ok {
			techniques[idx].Tiers = append(techniques[idx].Tiers, tier)
		}
	}
	if err := tierRows.Err(); err != nil {
		return nil, fmt.Errorf("list technique tiers: %w", err)
	}

	return techniques, nil
}

// attachColors loads color variants for the given products in one query.
func (r *Repo) attachColors(ctx context.Context, products []Product) error {
	if len(products) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(products))
	byID := make(map[uuid.UUID]int, len(products))
	for i, p := range products {
		ids[i] = p.ID
		byID[p.ID] = i
	}

	query := `
		SELECT product_id, id, name, hex_color, stock_qty
		FROM product_colors
		WHERE product_id = ANY($1)
		ORDER BY product_id, name`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("list product colors: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var productID uuid.UUID
		var color ProductColor
		if err := rows.Scan(&productID, &color.ID, &color.Name, &color.HexColor, &color.StockQty); err != nil {
			return fmt.Errorf("scan product color: %w", err)
		}
		if idx, ok := byID[productID]; ok {
			products[idx].Colors = append(products[idx].Colors, color)
		}
	}
	return rows.Err()
}

// scanProduct maps one product row. Monetary columns arrive as text and are
// parsed into decimals so no float conversion ever touches a price.
func scanProduct(row pgx.Row) (Product, error) {
	var p Product
	var baseNetCost *string
	var printArea []byte
	if err := row.Scan(&p.ID, &p.SKU, &p.Name, &p.Description, &baseNetCost, &p.Images, &printArea); err != nil {
		return Product{}, err
	}

	// A missing distributor cost is a valid state (product awaiting costing);
	// pricing treats it as zero rather than failing the whole catalog.
	if baseNetCost != nil {
		cost, err := decimal.NewFromString(*baseNetCost)
		if err != nil {
			return Product{}, fmt.Errorf("product %s base net cost: %w", p.ID, err)
		}
		p.BaseNetCost = cost
	}

	if len(printArea) > 0 {
		var area PrintArea
		if err := json.Unmarshal(printArea, &area); err != nil {
			return Product{}, fmt.Errorf("product %s print area: %w", p.ID, err)
		}
		p.PrintArea = &area
	}

	return p, nil
}

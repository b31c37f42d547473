// Package repository provides Postgres persistence for captured leads.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"promopro_backend/platform/apperr"
)

type pgRepository struct {
	pool *pgxpool.Pool
}

// New creates a Postgres-backed lead repository.
func New(pool *pgxpool.Pool) Repository {
	return &pgRepository{pool: pool}
}

func (r *pgRepository) Insert(ctx context.Context, lead Lead, items []LeadItem) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("insert lead: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
        INSERT INTO leads (id, public_token, session_token, buyer_name, buyer_company, buyer_phone, buyer_email, estimated_total, status, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
    `, lead.ID, lead.PublicToken, lead.SessionToken, lead.BuyerName, lead.BuyerCompany, lead.BuyerPhone, lead.BuyerEmail,
		lead.EstimatedTotal.String(), lead.Status, lead.CreatedAt); err != nil {
		return fmt.Errorf("insert lead: %w", err)
	}

	for _, item := range items {
		if _, err := tx.Exec(ctx, `
            INSERT INTO lead_items (id, lead_id, product_id, sku, name, color_name, quantity, technique_name, logo_format, unit_price, setup_fee, line_total, has_virtual_sample)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
        `, item.ID, item.LeadID, item.ProductID, item.SKU, item.Name, item.ColorName, item.Quantity,
			item.TechniqueName, item.LogoFormat, item.UnitPrice.String(), item.SetupFee.String(), item.LineTotal.String(),
			item.HasVirtualSample); err != nil {
			return fmt.Errorf("insert lead item: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("insert lead: %w", err)
	}
	return nil
}

func (r *pgRepository) GetByPublicToken(ctx context.Context, token string) (Lead, []LeadItem, error) {
	var lead Lead
	var total string
	err := r.pool.QueryRow(ctx, `
        SELECT id, public_token, session_token, buyer_name, buyer_company, buyer_phone, buyer_email, estimated_total::text, status, created_at
        FROM leads
        WHERE public_token = $1
    `, token).Scan(
		&lead.ID, &lead.PublicToken, &lead.SessionToken, &lead.BuyerName, &lead.BuyerCompany,
		&lead.BuyerPhone, &lead.BuyerEmail, &total, &lead.Status, &lead.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Lead{}, nil, apperr.NotFound("lead not found")
	}
	if err != nil {
		return Lead{}, nil, fmt.Errorf("get lead: %w", err)
	}
	if lead.EstimatedTotal, err = decimal.NewFromString(total); err != nil {
		return Lead{}, nil, fmt.Errorf("get lead: parse total: %w", err)
	}

	items, err := r.itemsForLead(ctx, lead.ID)
	if err != nil {
		return Lead{}, nil, err
	}
	return lead, items, nil
}

func (r *pgRepository) itemsForLead(ctx context.Context, leadID uuid.UUID) ([]LeadItem, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT id, lead_id, product_id, sku, name, color_name, quantity, technique_name, logo_format,
            unit_price::text, setup_fee::text, line_total::text, has_virtual_sample
        FROM lead_items
        WHERE lead_id = $1
        ORDER BY name
    `, leadID)
	if err != nil {
		return nil, fmt.Errorf("get lead items: %w", err)
	}
	defer rows.Close()

	var items []LeadItem
	for rows.Next() {
		var item LeadItem
		var unitPrice, setupFee, lineTotal string
		if err := rows.Scan(
			&item.ID, &item.LeadID, &item.ProductID, &item.SKU, &item.Name, &item.ColorName,
			&item.Quantity, &item.TechniqueName, &item.LogoFormat,
			&unitPrice, &setupFee, &lineTotal, &item.HasVirtualSample,
		); err != nil {
			return nil, fmt.Errorf("scan lead item: %w", err)
		}
		if item.UnitPrice, err = decimal.NewFromString(unitPrice); err != nil {
			return nil, fmt.Errorf("parse unit price: %w", err)
		}
		if item.SetupFee, err = decimal.NewFromString(setupFee); err != nil {
			return nil, fmt.Errorf("parse setup fee: %w", err)
		}
		if item.LineTotal, err = decimal.NewFromString(lineTotal); err != nil {
			return nil, fmt.Errorf("parse line total: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

var productSearchCols = []string{"name", "description"}

// Product is a catalog entry. Specifications is a free-form string→string
// mapping stored as a JSON object.
type Product struct {
	ID             int64
	Name           string
	Description    string
	Category       string
	Specifications map[string]string
	Language       string
	Status         string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

const productCols = `id, name, description, category, specifications, language, status, created_at, updated_at`

func scanProduct(row interface{ Scan(...any) error }) (Product, error) {
	var p Product
	var specs string
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Category, &specs,
		&p.Language, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return Product{}, err
	}
	if err := json.Unmarshal([]byte(specs), &p.Specifications); err != nil {
		return Product{}, fmt.Errorf("decoding specifications for product %d: %w", p.ID, err)
	}
	return p, nil
}

func encodeSpecs(specs map[string]string) (string, error) {
	if specs == nil {
		return "{}", nil
	}
	b, err := json.Marshal(specs)
	if err != nil {
		return "", fmt.Errorf("encoding specifications: %w", err)
	}
	return string(b), nil
}

// ListProducts returns products matching the filter, newest first.
func (q *Queries) ListProducts(ctx context.Context, f Filter) ([]Product, error) {
	where, args := f.whereClause(productSearchCols...)
	page, pageArgs := f.pageClause()
	query := `SELECT ` + productCols + ` FROM products` + where + ` ORDER BY created_at DESC, id DESC` + page

	rows, err := q.db.QueryContext(ctx, query, append(args, pageArgs...)...)
	if err != nil {
		return nil, wrapErr("listing products", err)
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, wrapErr("scanning product", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("listing products", err)
	}
	return out, nil
}

// GetProduct returns a single product by id.
func (q *Queries) GetProduct(ctx context.Context, id int64) (Product, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+productCols+` FROM products WHERE id = ?`, id)
	p, err := scanProduct(row)
	if err != nil {
		return Product{}, wrapErr("getting product", err)
	}
	return p, nil
}

// CreateProductParams holds the caller-supplied fields for a new product.
type CreateProductParams struct {
	Name           string
	Description    string
	Category       string
	Specifications map[string]string
	Language       string
	Status         string
}

// CreateProduct inserts a new product and returns it.
func (q *Queries) CreateProduct(ctx context.Context, p CreateProductParams) (Product, error) {
	specs, err := encodeSpecs(p.Specifications)
	if err != nil {
		return Product{}, err
	}

	now := time.Now().UTC()
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO products (name, description, category, specifications, language, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Name, p.Description, p.Category, specs, p.Language, p.Status, now, now)
	if err != nil {
		return Product{}, wrapErr("creating product", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Product{}, wrapErr("creating product", err)
	}
	return q.GetProduct(ctx, id)
}

// UpdateProductParams is a partial patch: nil fields are left untouched.
type UpdateProductParams struct {
	Name           *string
	Description    *string
	Category       *string
	Specifications map[string]string
	Language       *string
	Status         *string
}

// UpdateProduct applies a partial patch to a product and bumps updated_at.
func (q *Queries) UpdateProduct(ctx context.Context, id int64, p UpdateProductParams) (Product, error) {
	var specsPtr *string
	if p.Specifications != nil {
		specs, err := encodeSpecs(p.Specifications)
		if err != nil {
			return Product{}, err
		}
		specsPtr = &specs
	}

	sets, args := patchClause(map[string]*string{
		"name": p.Name, "description": p.Description, "category": p.Category,
		"specifications": specsPtr, "language": p.Language, "status": p.Status,
	})
	if len(args) == 0 {
		return q.GetProduct(ctx, id)
	}

	args = append(args, time.Now().UTC(), id)
	res, err := q.db.ExecContext(ctx,
		`UPDATE products SET `+sets+`, updated_at = ? WHERE id = ?`, args...)
	if err != nil {
		return Product{}, wrapErr("updating product", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return Product{}, wrapErr("updating product", err)
	} else if n == 0 {
		return Product{}, wrapErr("updating product", sql.ErrNoRows)
	}
	return q.GetProduct(ctx, id)
}

// DeleteProduct removes a product, reporting NotFound for unknown ids.
func (q *Queries) DeleteProduct(ctx context.Context, id int64) error {
	res, err := q.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return wrapErr("deleting product", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return wrapErr("deleting product", err)
	}
	if n == 0 {
		return wrapErr("deleting product", sql.ErrNoRows)
	}
	return nil
}

// CountProducts counts products matching the filter.
func (q *Queries) CountProducts(ctx context.Context, f Filter) (int64, error) {
	where, args := f.whereClause(productSearchCols...)
	var n int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`+where, args...).Scan(&n)
	if err != nil {
		return 0, wrapErr("counting products", err)
	}
	return n, nil
}

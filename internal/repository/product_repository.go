package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/farmlink/farm-marketplace/internal/model"
)

type ProductRepo struct{ DB *sql.DB }

func NewProductRepo(db *sql.DB) *ProductRepo { return &ProductRepo{DB: db} }

const productCols = "id,name,description,price,category,stock_quantity,image_url,created_at,updated_at"

// ProductQuery carries the optional list filters. Sort accepts
// "price-low", "price-high" and "name"; anything else (including empty)
// falls back to name ascending.
type ProductQuery struct {
	Category string
	Search   string
	Sort     string
}

// List returns products matching the query, ordered per its sort key.
// Search matches case-insensitively against name and description.
func (r *ProductRepo) List(ctx context.Context, q ProductQuery) ([]model.Product, error) {
	where := []string{}
	args := []any{}

	if q.Category != "" {
		where = append(where, "category = ?")
		args = append(args, q.Category)
	}
	if q.Search != "" {
		term := "%" + strings.ToLower(q.Search) + "%"
		where = append(where, "(LOWER(name) LIKE ? OR LOWER(description) LIKE ?)")
		args = append(args, term, term)
	}

	cond := "1=1"
	if len(where) > 0 {
		cond = strings.Join(where, " AND ")
	}

	order := "name ASC"
	switch q.Sort {
	case "price-low":
		order = "price ASC"
	case "price-high":
		order = "price DESC"
	case "name":
		order = "name ASC"
	}

	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+productCols+" FROM products WHERE "+cond+" ORDER BY "+order, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProducts(rows)
}

// Featured returns the first limit products in table order. There is no
// featured flag in the schema; this is a placeholder policy kept for
// storefront compatibility.
func (r *ProductRepo) Featured(ctx context.Context, limit int) ([]model.Product, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+productCols+" FROM products LIMIT ?", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProducts(rows)
}

func scanProducts(rows *sql.Rows) ([]model.Product, error) {
	out := []model.Product{}
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Category,
			&p.StockQuantity, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID fetches a product by id.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (model.Product, error) {
	var p model.Product
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+productCols+" FROM products WHERE id=? LIMIT 1", id).
		Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Category,
			&p.StockQuantity, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return p, ErrNotFound
	}
	return p, err
}

// Create inserts the product, assigning its id and timestamps.
func (r *ProductRepo) Create(ctx context.Context, p *model.Product) error {
	p.ID = uuid.NewString()
	now := time.Now().UTC().Truncate(time.Second)
	p.CreatedAt, p.UpdatedAt = now, now
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO products (id,name,description,price,category,stock_quantity,image_url,created_at,updated_at) VALUES (?,?,?,?,?,?,?,?,?)",
		p.ID, p.Name, p.Description, p.Price, p.Category, p.StockQuantity, p.ImageURL,
		p.CreatedAt, p.UpdatedAt)
	return err
}

// Update writes the mutable columns back and refreshes updated_at.
func (r *ProductRepo) Update(ctx context.Context, p *model.Product) error {
	p.UpdatedAt = time.Now().UTC().Truncate(time.Second)
	_, err := r.DB.ExecContext(ctx,
		"UPDATE products SET name=?, description=?, price=?, category=?, stock_quantity=?, image_url=?, updated_at=? WHERE id=?",
		p.Name, p.Description, p.Price, p.Category, p.StockQuantity, p.ImageURL,
		p.UpdatedAt, p.ID)
	return err
}

// Delete removes the product. Deletion is blocked while order items still
// reference the row; that surfaces as ErrRowInUse.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM products WHERE id=?", id)
	if isRestricted(err) {
		return ErrRowInUse
	}
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

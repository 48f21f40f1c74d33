package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/farmlink/farm-marketplace/internal/model"
)

// OrderRepo is read-only: orders enter the store through an external
// checkout flow, this service only reports on them.
type OrderRepo struct{ DB *sql.DB }

func NewOrderRepo(db *sql.DB) *OrderRepo { return &OrderRepo{DB: db} }

const orderCols = "id,user_id,status,total_amount,order_date,delivery_date,created_at,updated_at"

// GetByID fetches an order with its items. Item product names are
// resolved at read time via LEFT JOIN so an item survives its product.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (model.Order, error) {
	var o model.Order
	var delivery sql.NullTime
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+orderCols+" FROM orders WHERE id=? LIMIT 1", id).
		Scan(&o.ID, &o.UserID, &o.Status, &o.TotalAmount, &o.OrderDate,
			&delivery, &o.CreatedAt, &o.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return o, ErrNotFound
	}
	if err != nil {
		return o, err
	}
	if delivery.Valid {
		t := delivery.Time
		o.DeliveryDate = &t
	}
	o.Items, err = r.itemsForOrder(ctx, o.ID)
	return o, err
}

// ListByUser returns all orders of a user, each with its items.
func (r *OrderRepo) ListByUser(ctx context.Context, userID string) ([]model.Order, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+orderCols+" FROM orders WHERE user_id=?", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Order{}
	for rows.Next() {
		var o model.Order
		var delivery sql.NullTime
		if err := rows.Scan(&o.ID, &o.UserID, &o.Status, &o.TotalAmount, &o.OrderDate,
			&delivery, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		if delivery.Valid {
			t := delivery.Time
			o.DeliveryDate = &t
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range out {
		if out[i].Items, err = r.itemsForOrder(ctx, out[i].ID); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *OrderRepo) itemsForOrder(ctx context.Context, orderID string) ([]model.OrderItem, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT i.id, i.order_id, i.product_id, p.name, i.quantity, i.price
		 FROM order_items i
		 LEFT JOIN products p ON p.id = i.product_id
		 WHERE i.order_id = ?`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []model.OrderItem{}
	for rows.Next() {
		var it model.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.ProductName,
			&it.Quantity, &it.Price); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

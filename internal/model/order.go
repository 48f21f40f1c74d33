package model

import "time"

// Order mirrors the 'orders' table. Items are loaded alongside the order
// by the repository so the view can embed them.
type Order struct {
	ID           string
	UserID       string
	Status       string
	TotalAmount  float64
	OrderDate    time.Time
	DeliveryDate *time.Time
	Items        []OrderItem
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// OrderItem mirrors the 'order_items' table. Price is the unit price at
// the time the order was placed, not the product's current price.
// ProductName is denormalized at read time and nil when the product row
// no longer exists.
type OrderItem struct {
	ID          string
	OrderID     string
	ProductID   string
	ProductName *string
	Quantity    int
	Price       float64
}

type OrderItemView struct {
	ID          string  `json:"id"`
	OrderID     string  `json:"order_id"`
	ProductID   string  `json:"product_id"`
	ProductName *string `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	Subtotal    float64 `json:"subtotal"`
}

// View computes the subtotal on the way out; it is never stored.
func (i OrderItem) View() OrderItemView {
	return OrderItemView{
		ID:          i.ID,
		OrderID:     i.OrderID,
		ProductID:   i.ProductID,
		ProductName: i.ProductName,
		Quantity:    i.Quantity,
		Price:       i.Price,
		Subtotal:    float64(i.Quantity) * i.Price,
	}
}

type OrderView struct {
	ID           string          `json:"id"`
	UserID       string          `json:"user_id"`
	Status       string          `json:"status"`
	TotalAmount  float64         `json:"total_amount"`
	OrderDate    string          `json:"order_date"`
	DeliveryDate *string         `json:"delivery_date"`
	Items        []OrderItemView `json:"items"`
	CreatedAt    string          `json:"created_at"`
	UpdatedAt    string          `json:"updated_at"`
}

func (o Order) View() OrderView {
	items := make([]OrderItemView, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, it.View())
	}
	return OrderView{
		ID:           o.ID,
		UserID:       o.UserID,
		Status:       o.Status,
		TotalAmount:  o.TotalAmount,
		OrderDate:    Timestamp(o.OrderDate),
		DeliveryDate: timestampPtr(o.DeliveryDate),
		Items:        items,
		CreatedAt:    Timestamp(o.CreatedAt),
		UpdatedAt:    Timestamp(o.UpdatedAt),
	}
}

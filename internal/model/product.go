package model

import "time"

// Product mirrors the 'products' table. Description and ImageURL are
// nullable columns.
type Product struct {
	ID            string
	Name          string
	Description   *string
	Price         float64
	Category      string
	StockQuantity int
	ImageURL      *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ProductView is the wire representation of a product. The image_url
// column is exposed under the key "image", which the storefront expects.
type ProductView struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Description   *string `json:"description"`
	Price         float64 `json:"price"`
	Category      string  `json:"category"`
	StockQuantity int     `json:"stock_quantity"`
	Image         *string `json:"image"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
}

func (p Product) View() ProductView {
	return ProductView{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		Category:      p.Category,
		StockQuantity: p.StockQuantity,
		Image:         p.ImageURL,
		CreatedAt:     Timestamp(p.CreatedAt),
		UpdatedAt:     Timestamp(p.UpdatedAt),
	}
}

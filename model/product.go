package model

import "github.com/shopspring/decimal"

func init() {
	// Stored blobs and the menu asset carry prices as plain JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// AllCategories is the category filter value that matches every product.
const AllCategories = "All"

type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Category    string          `json:"category"`
	Image       string          `json:"image,omitempty"`
}

// DecreaseStock returns a copy with stock lowered by qty, never below zero.
func (p Product) DecreaseStock(qty int) Product {
	p.Stock -= qty
	if p.Stock < 0 {
		p.Stock = 0
	}
	return p
}

// IncreaseStock returns a copy with stock raised by qty.
func (p Product) IncreaseStock(qty int) Product {
	p.Stock += qty
	return p
}

// CartItem is a catalog product plus the quantity held in the cart.
type CartItem struct {
	Product
	Quantity int `json:"quantity"`
}

// LineTotal is price * quantity.
func (c CartItem) LineTotal() decimal.Decimal {
	return c.Price.Mul(decimal.NewFromInt(int64(c.Quantity)))
}

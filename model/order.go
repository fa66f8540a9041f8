package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusConfirmed OrderStatus = "CONFIRMED"
	StatusCancelled OrderStatus = "CANCELLED"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	}
	return false
}

type OrderItem struct {
	ProductID          int64           `json:"productId" validate:"required"`
	ProductName        string          `json:"productName"`
	ProductDescription string          `json:"productDescription"`
	Price              decimal.Decimal `json:"price"`
	Quantity           int             `json:"quantity" validate:"min=1"`
	Total              decimal.Decimal `json:"total"`
}

type Order struct {
	ID         int64           `json:"id"`
	Items      []OrderItem     `json:"items"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	Status     OrderStatus     `json:"status"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// OrderItemFromCart snapshots a cart line into an order line.
func OrderItemFromCart(c CartItem) OrderItem {
	return OrderItem{
		ProductID:          c.ID,
		ProductName:        c.Name,
		ProductDescription: c.Description,
		Price:              c.Price,
		Quantity:           c.Quantity,
		Total:              c.LineTotal(),
	}
}

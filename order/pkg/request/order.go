package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateOrder struct {
	CartID     uuid.UUID       `validate:"required,uuid" json:"cart_id"`
	TotalPrice decimal.Decimal `json:"total_price"`
	OrderItems []OrderItem     `json:"order_items"`
}

type OrderItem struct {
	ProductID uuid.UUID       `validate:"required,uuid"  json:"product_id"`
	Name      string          `validate:"required"       json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int32           `validate:"required,gte=1" json:"quantity"`
}

type FindOrderById struct {
	OrderID uuid.UUID `validate:"required,uuid" json:"order_id"`
	UserID  uuid.UUID `validate:"required,uuid" json:"user_id"`
}

type FindOrders struct {
	UserID uuid.UUID `validate:"required,uuid" json:"user_id"`
}

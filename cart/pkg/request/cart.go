package request

import (
	"github.com/google/uuid"
)

type Cart struct {
	CartItems []CartItem `validate:"required" json:"cart_items"`
}

type CartItem struct {
	ProductId uuid.UUID `validate:"required,uuid"  json:"product_id"`
	Quantity  int32     `validate:"required,gte=1" json:"quantity"`
}

type AddCartItem struct {
	ProductId uuid.UUID `validate:"required,uuid" json:"product_id"`
}

type RemoveCartItem struct {
	CartId    uuid.UUID `validate:"required,uuid"`
	ProductId uuid.UUID `validate:"required,uuid"`
	UserId    uuid.UUID `validate:"required,uuid"`
}

type FindCartById struct {
	ID     uuid.UUID `validate:"required,uuid" json:"id"`
	UserId uuid.UUID `validate:"required,uuid" json:"user_id"`
}

type EmptyCart struct {
	CartId uuid.UUID `validate:"required,uuid" json:"cart_id"`
	UserId uuid.UUID `validate:"required,uuid" json:"user_id"`
}

type CheckoutCart struct {
	UserId uuid.UUID `validate:"required,uuid" json:"user_id"`
	CartId uuid.UUID `validate:"required,uuid" json:"cart_id"`
}

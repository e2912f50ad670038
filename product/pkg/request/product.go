package request

import (
	"github.com/shopspring/decimal"
)

type Product struct {
	Name        string          `validate:"required"       json:"name"`
	Description string          `json:"description"`
	ImageUrl    string          `validate:"omitempty,url"  json:"image_url"`
	Price       decimal.Decimal `validate:"required"       json:"price"`
	Quantity    int32           `validate:"required,gte=0" json:"quantity"`
}

package response

import (
	"github.com/Nothile-Moyo-Git/storefront/order/pkg/request"
)

// Order maps the cart snapshot into the checkout request sent to the order
// service. Items are value copies; the cart stays untouched.
func (c Cart) Order() request.CreateOrder {
	orderItems := make([]request.OrderItem, len(c.CartItems))
	for i, item := range c.CartItems {
		orderItems[i] = request.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
		}
	}
	return request.CreateOrder{
		CartID:     c.ID,
		TotalPrice: c.TotalPrice,
		OrderItems: orderItems,
	}
}

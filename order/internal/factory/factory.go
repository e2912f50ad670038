// Package factory derives an immutable order record from a cart snapshot at
// checkout time. The factory only builds the value; persisting the order and
// emptying the source cart afterwards is the caller's transaction boundary.
package factory

import (
	"time"

	"github.com/google/uuid"

	"github.com/Nothile-Moyo-Git/storefront/order/pkg/request"
	"github.com/Nothile-Moyo-Git/storefront/order/pkg/response"
)

const StatusCreated = "created"

// Owner is the identity captured on the order at creation time. Later changes
// to the user never propagate into an existing order.
type Owner struct {
	ID   uuid.UUID
	Name string
}

// CreateOrder copies the checkout snapshot into a new order value. Items are
// deep-copied so later mutation of the source cart cannot reach the order.
// No minimum item count is enforced; an empty cart yields an empty order.
func CreateOrder(param request.CreateOrder, owner Owner, now time.Time) response.Order {
	orderID := uuid.New()
	items := make([]response.OrderItem, len(param.OrderItems))
	for i, item := range param.OrderItems {
		items[i] = response.OrderItem{
			ID:        uuid.New(),
			OrderID:   orderID,
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
			CreatedAt: now,
			UpdatedAt: now,
		}
	}
	return response.Order{
		ID:         orderID,
		UserID:     owner.ID,
		UserName:   owner.Name,
		TotalPrice: param.TotalPrice,
		Status:     StatusCreated,
		OrderItems: items,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

package factory

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nothile-Moyo-Git/storefront/order/pkg/request"
)

var (
	gadgetId = uuid.MustParse("0e6bcb2d-6542-4de2-9b8f-17e2b33dbbd2")
	ownerId  = uuid.MustParse("9a2e8d0f-3e96-4f5e-8d8f-67f8cf4e9f11")
)

func checkoutRequest() request.CreateOrder {
	return request.CreateOrder{
		CartID:     uuid.New(),
		TotalPrice: decimal.RequireFromString("5.00"),
		OrderItems: []request.OrderItem{
			{
				ProductID: gadgetId,
				Name:      "Gadget",
				Price:     decimal.RequireFromString("5.00"),
				Quantity:  1,
			},
		},
	}
}

func TestCreateOrderSnapshotsOwnerAndItems(t *testing.T) {
	now := time.Date(2026, time.March, 14, 9, 30, 0, 0, time.UTC)

	order := CreateOrder(checkoutRequest(), Owner{ID: ownerId, Name: "Alice"}, now)

	assert.Equal(t, ownerId, order.UserID)
	assert.Equal(t, "Alice", order.UserName)
	assert.Equal(t, StatusCreated, order.Status)
	assert.Equal(t, now, order.CreatedAt)
	assert.Equal(t, now, order.UpdatedAt)
	assert.True(t, decimal.RequireFromString("5.00").Equal(order.TotalPrice))
	require.Len(t, order.OrderItems, 1)
	assert.Equal(t, gadgetId, order.OrderItems[0].ProductID)
	assert.Equal(t, "Gadget", order.OrderItems[0].Name)
	assert.EqualValues(t, 1, order.OrderItems[0].Quantity)
	assert.Equal(t, order.ID, order.OrderItems[0].OrderID)
}

func TestCreateOrderIsIndependentOfSource(t *testing.T) {
	param := checkoutRequest()

	order := CreateOrder(param, Owner{ID: ownerId, Name: "Alice"}, time.Now())

	param.OrderItems[0].Name = "Renamed"
	param.OrderItems[0].Quantity = 99
	param.OrderItems[0].Price = decimal.RequireFromString("0.01")
	param.TotalPrice = decimal.Zero

	assert.Equal(t, "Gadget", order.OrderItems[0].Name)
	assert.EqualValues(t, 1, order.OrderItems[0].Quantity)
	assert.True(t, decimal.RequireFromString("5.00").Equal(order.OrderItems[0].Price))
	assert.True(t, decimal.RequireFromString("5.00").Equal(order.TotalPrice))
}

func TestCreateOrderAllowsEmptyCart(t *testing.T) {
	order := CreateOrder(
		request.CreateOrder{CartID: uuid.New(), TotalPrice: decimal.Zero},
		Owner{ID: ownerId, Name: "Alice"},
		time.Now(),
	)

	assert.Empty(t, order.OrderItems)
	assert.True(t, order.TotalPrice.IsZero())
}

func TestCreateOrderAssignsDistinctIds(t *testing.T) {
	first := CreateOrder(checkoutRequest(), Owner{ID: ownerId, Name: "Alice"}, time.Now())
	second := CreateOrder(checkoutRequest(), Owner{ID: ownerId, Name: "Alice"}, time.Now())

	assert.NotEqual(t, first.ID, second.ID)
	assert.NotEqual(t, first.OrderItems[0].ID, second.OrderItems[0].ID)
}

package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nothile-Moyo-Git/storefront/internal/repository"
	"github.com/Nothile-Moyo-Git/storefront/order/internal/factory"
	"github.com/Nothile-Moyo-Git/storefront/order/pkg/request"
)

func TestOrderServiceCheckout(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container-backed test in short mode")
	}

	c := context.Background()
	env := setupTestEnv(t, c)
	defer env.teardown(t)

	user, err := env.queries.InsertUser(c, repository.InsertUserParams{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "hashed-password",
	})
	require.NoError(t, err)

	widgetID := uuid.New()
	gadgetID := uuid.New()
	param := request.CreateOrder{
		CartID:     uuid.New(),
		TotalPrice: decimal.RequireFromString("34.97"),
		OrderItems: []request.OrderItem{
			{
				ProductID: widgetID,
				Name:      "Widget",
				Price:     decimal.RequireFromString("9.99"),
				Quantity:  2,
			},
			{
				ProductID: gadgetID,
				Name:      "Gadget",
				Price:     decimal.RequireFromString("14.99"),
				Quantity:  1,
			},
		},
	}

	order, err := env.service.CreateOrder(c, param, user.ID)
	require.NoError(t, err)

	assert.Equal(t, user.ID, order.UserID)
	assert.Equal(t, "alice", order.UserName)
	assert.Equal(t, factory.StatusCreated, order.Status)
	assert.True(t, order.TotalPrice.Equal(decimal.RequireFromString("34.97")),
		"expected total 34.97 got %s", order.TotalPrice.String())
	require.Len(t, order.OrderItems, 2)
	for _, item := range order.OrderItems {
		assert.Equal(t, order.ID, item.OrderID)
	}

	t.Run("FindOrderById returns the stored order", func(t *testing.T) {
		found, err := env.service.FindOrderById(c, request.FindOrderById{
			OrderID: order.ID,
			UserID:  user.ID,
		})
		require.NoError(t, err)
		assert.Equal(t, order.ID, found.ID)
		assert.Equal(t, order.UserName, found.UserName)
		assert.True(t, found.TotalPrice.Equal(order.TotalPrice))
		require.Len(t, found.OrderItems, 2)
		assert.Equal(t, "Widget", found.OrderItems[0].Name)
		assert.Equal(t, "Gadget", found.OrderItems[1].Name)
	})

	t.Run("FindOrders lists the user's orders", func(t *testing.T) {
		orders, err := env.service.FindOrders(c, request.FindOrders{UserID: user.ID})
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, order.ID, orders[0].ID)
	})

	t.Run("another user cannot read the order", func(t *testing.T) {
		stranger, err := env.queries.InsertUser(c, repository.InsertUserParams{
			Username: "mallory",
			Email:    "mallory@example.com",
			Password: "hashed-password",
		})
		require.NoError(t, err)

		_, err = env.service.FindOrderById(c, request.FindOrderById{
			OrderID: order.ID,
			UserID:  stranger.ID,
		})
		assert.Error(t, err)
	})
}

func TestOrderServiceCheckoutEmptyCart(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container-backed test in short mode")
	}

	c := context.Background()
	env := setupTestEnv(t, c)
	defer env.teardown(t)

	user, err := env.queries.InsertUser(c, repository.InsertUserParams{
		Username: "bob",
		Email:    "bob@example.com",
		Password: "hashed-password",
	})
	require.NoError(t, err)

	order, err := env.service.CreateOrder(c, request.CreateOrder{
		CartID:     uuid.New(),
		TotalPrice: decimal.Zero,
		OrderItems: nil,
	}, user.ID)
	require.NoError(t, err)

	assert.Empty(t, order.OrderItems)
	assert.True(t, order.TotalPrice.IsZero())
	assert.Equal(t, factory.StatusCreated, order.Status)
}

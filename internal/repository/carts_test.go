package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartItemsKeepInsertionOrder(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container-backed test in short mode")
	}

	c := context.Background()
	env := setupTestEnv(t, c)
	defer env.teardown(t)

	user, err := env.queries.InsertUser(c, InsertUserParams{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "hashed-password",
	})
	require.NoError(t, err)

	names := []string{"Widget", "Gadget", "Gizmo"}
	productIDs := make([]uuid.UUID, len(names))
	for i, name := range names {
		product, err := env.queries.InsertProduct(c, InsertProductParams{
			Name:     name,
			OwnerID:  user.ID,
			Price:    NumericFromDecimal(decimal.RequireFromString("9.99")),
			Quantity: 10,
		})
		require.NoError(t, err)
		productIDs[i] = product.ID
	}

	cart, err := env.queries.InsertCart(c, uuid.NullUUID{UUID: user.ID, Valid: true})
	require.NoError(t, err)

	itemParams := func(order []int) []InsertCartItemParams {
		args := make([]InsertCartItemParams, len(order))
		for pos, i := range order {
			args[pos] = InsertCartItemParams{
				CartID:    cart.ID,
				ProductID: productIDs[i],
				Name:      names[i],
				Price:     NumericFromDecimal(decimal.RequireFromString("9.99")),
				Quantity:  1,
				Position:  int32(pos),
			}
		}
		return args
	}

	_, err = env.queries.InsertCartItems(c, itemParams([]int{0, 1, 2}))
	require.NoError(t, err)

	items, err := env.queries.FindCartItemsByCartId(c, cart.ID)
	require.NoError(t, err)
	require.Len(t, items, 3)
	for i, want := range []string{"Widget", "Gadget", "Gizmo"} {
		assert.Equal(t, want, items[i].Name)
	}

	// Rewrite the lines in reversed order inside one transaction, the way a
	// cart snapshot is persisted. All re-inserted rows share one created_at,
	// so the re-read order must come from the stored positions.
	tx, err := env.pool.Begin(c)
	require.NoError(t, err)
	queries := env.queries.WithTx(tx)
	_, err = queries.DeleteCartItemsByCartId(c, cart.ID)
	require.NoError(t, err)
	_, err = queries.InsertCartItems(c, itemParams([]int{2, 1, 0}))
	require.NoError(t, err)
	require.NoError(t, tx.Commit(c))

	items, err = env.queries.FindCartItemsByCartId(c, cart.ID)
	require.NoError(t, err)
	require.Len(t, items, 3)
	for i, want := range []string{"Gizmo", "Gadget", "Widget"} {
		assert.Equal(t, want, items[i].Name)
	}
}

func TestOneCartPerUser(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container-backed test in short mode")
	}

	c := context.Background()
	env := setupTestEnv(t, c)
	defer env.teardown(t)

	user, err := env.queries.InsertUser(c, InsertUserParams{
		Username: "bob",
		Email:    "bob@example.com",
		Password: "hashed-password",
	})
	require.NoError(t, err)

	cart, err := env.queries.InsertCart(c, uuid.NullUUID{UUID: user.ID, Valid: true})
	require.NoError(t, err)

	_, err = env.queries.InsertCart(c, uuid.NullUUID{UUID: user.ID, Valid: true})
	assert.Error(t, err, "a second cart for the same user must violate the unique index")

	found, err := env.queries.FindCartByUserId(c, user.ID)
	require.NoError(t, err)
	assert.Equal(t, cart.ID, found.ID)

	t.Run("anonymous carts are not limited", func(t *testing.T) {
		_, err := env.queries.InsertCart(c, uuid.NullUUID{})
		require.NoError(t, err)
		_, err = env.queries.InsertCart(c, uuid.NullUUID{})
		require.NoError(t, err)
	})
}

package ledger

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nothile-Moyo-Git/storefront/cart/pkg/request"
	"github.com/Nothile-Moyo-Git/storefront/cart/pkg/response"
	productResponse "github.com/Nothile-Moyo-Git/storefront/product/pkg/response"
)

var (
	productOneId = uuid.MustParse("7f9dbccb-2f6a-45b8-9bfb-572031a21774")
	productTwoId = uuid.MustParse("0e6bcb2d-6542-4de2-9b8f-17e2b33dbbd2")
)

func widget() productResponse.Product {
	return productResponse.Product{
		ID:    productOneId,
		Name:  "Widget",
		Price: decimal.RequireFromString("9.99"),
	}
}

func emptyCart() response.Cart {
	return response.Cart{
		ID:         uuid.MustParse("f7e0f0c7-57b4-4e87-a852-b08c6f8f8c7a"),
		CartItems:  []response.CartItem{},
		TotalPrice: decimal.Zero,
	}
}

func cartWithTwoLines() response.Cart {
	cart := emptyCart()
	cart.CartItems = []response.CartItem{
		{
			CartID:    cart.ID,
			ProductID: productOneId,
			Name:      "Widget",
			Price:     decimal.RequireFromString("9.99"),
			Quantity:  2,
		},
		{
			CartID:    cart.ID,
			ProductID: productTwoId,
			Name:      "Gadget",
			Price:     decimal.RequireFromString("5.00"),
			Quantity:  1,
		},
	}
	cart.TotalPrice = decimal.RequireFromString("24.98")
	return cart
}

func TestAddItemNewLine(t *testing.T) {
	cart, err := AddItem(emptyCart(), widget())

	require.NoError(t, err)
	require.Len(t, cart.CartItems, 1)
	assert.Equal(t, productOneId, cart.CartItems[0].ProductID)
	assert.Equal(t, "Widget", cart.CartItems[0].Name)
	assert.EqualValues(t, 1, cart.CartItems[0].Quantity)
	assert.True(t, decimal.RequireFromString("9.99").Equal(cart.CartItems[0].Price))
	assert.True(t, decimal.RequireFromString("9.99").Equal(cart.TotalPrice))
}

func TestAddItemMergesExistingLine(t *testing.T) {
	cart, err := AddItem(emptyCart(), widget())
	require.NoError(t, err)

	cart, err = AddItem(cart, widget())

	require.NoError(t, err)
	require.Len(t, cart.CartItems, 1, "merge-on-add must not append a second line")
	assert.EqualValues(t, 2, cart.CartItems[0].Quantity)
	assert.True(t, decimal.RequireFromString("19.98").Equal(cart.TotalPrice))
}

func TestAddItemKeepsTotalInvariant(t *testing.T) {
	cart := cartWithTwoLines()

	cart, err := AddItem(cart, widget())

	require.NoError(t, err)
	sum := decimal.Zero
	for _, item := range cart.CartItems {
		sum = sum.Add(item.Price.Mul(decimal.NewFromInt32(item.Quantity)))
	}
	assert.True(t, sum.Equal(cart.TotalPrice), "totalPrice must equal sum of line totals")
}

func TestAddItemRejectsInvalidSnapshot(t *testing.T) {
	tests := []struct {
		name    string
		product productResponse.Product
	}{
		{
			name: "negative price",
			product: productResponse.Product{
				ID:    productOneId,
				Name:  "Widget",
				Price: decimal.RequireFromString("-1.00"),
			},
		},
		{
			name:    "missing product id",
			product: productResponse.Product{Name: "Widget", Price: decimal.NewFromInt(1)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cart, err := AddItem(emptyCart(), tt.product)
			assert.ErrorIs(t, err, ErrInvalidLineItem)
			assert.Empty(t, cart.CartItems)
			assert.True(t, cart.TotalPrice.IsZero())
		})
	}
}

func TestAddItemDoesNotMutateInput(t *testing.T) {
	original := cartWithTwoLines()

	_, err := AddItem(original, widget())

	require.NoError(t, err)
	assert.EqualValues(t, 2, original.CartItems[0].Quantity)
	assert.True(t, decimal.RequireFromString("24.98").Equal(original.TotalPrice))
}

func TestRemoveItemDropsWholeLine(t *testing.T) {
	cart := RemoveItem(cartWithTwoLines(), productOneId)

	require.Len(t, cart.CartItems, 1)
	assert.Equal(t, productTwoId, cart.CartItems[0].ProductID)
	assert.True(t, decimal.RequireFromString("5.00").Equal(cart.TotalPrice))
}

func TestRemoveItemUnknownProductIsNoop(t *testing.T) {
	before := cartWithTwoLines()

	after := RemoveItem(before, uuid.New())

	assert.Equal(t, before.CartItems, after.CartItems)
	assert.True(t, before.TotalPrice.Equal(after.TotalPrice))
}

func TestRemoveItemIsIdempotent(t *testing.T) {
	once := RemoveItem(cartWithTwoLines(), productOneId)
	twice := RemoveItem(once, productOneId)

	assert.Equal(t, once.CartItems, twice.CartItems)
	assert.True(t, once.TotalPrice.Equal(twice.TotalPrice))
}

func TestRemoveItemPreservesOrder(t *testing.T) {
	cart := cartWithTwoLines()
	third := productResponse.Product{
		ID:    uuid.New(),
		Name:  "Doodad",
		Price: decimal.RequireFromString("1.25"),
	}
	cart, err := AddItem(cart, third)
	require.NoError(t, err)

	cart = RemoveItem(cart, productTwoId)

	require.Len(t, cart.CartItems, 2)
	assert.Equal(t, productOneId, cart.CartItems[0].ProductID)
	assert.Equal(t, third.ID, cart.CartItems[1].ProductID)
}

func TestEmptyCartIsIdempotent(t *testing.T) {
	once := EmptyCart(cartWithTwoLines())
	twice := EmptyCart(once)

	assert.Empty(t, once.CartItems)
	assert.True(t, once.TotalPrice.IsZero())
	assert.Equal(t, once.CartItems, twice.CartItems)
	assert.True(t, twice.TotalPrice.IsZero())
}

func TestMergeItems(t *testing.T) {
	tests := []struct {
		name     string
		input    []request.CartItem
		expected []request.CartItem
		err      error
	}{
		{
			name:     "empty batch",
			input:    []request.CartItem{},
			expected: []request.CartItem{},
		},
		{
			name: "duplicates are summed keeping first-seen order",
			input: []request.CartItem{
				{ProductId: productOneId, Quantity: 2},
				{ProductId: productTwoId, Quantity: 1},
				{ProductId: productOneId, Quantity: 3},
			},
			expected: []request.CartItem{
				{ProductId: productOneId, Quantity: 5},
				{ProductId: productTwoId, Quantity: 1},
			},
		},
		{
			name: "non-positive quantity is rejected",
			input: []request.CartItem{
				{ProductId: productOneId, Quantity: 0},
			},
			err: ErrInvalidLineItem,
		},
		{
			name: "missing product id is rejected",
			input: []request.CartItem{
				{Quantity: 1},
			},
			err: ErrInvalidLineItem,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			merged, err := MergeItems(tt.input)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, merged)
		})
	}
}

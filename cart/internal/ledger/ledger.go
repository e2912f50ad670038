// Package ledger holds the cart transition rules: how a cart accumulates,
// deduplicates and empties line items while keeping the running total equal to
// the sum of unit price times quantity. Every function is a pure value
// transformation; loading and storing the cart is the caller's concern.
package ledger

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Nothile-Moyo-Git/storefront/cart/pkg/request"
	"github.com/Nothile-Moyo-Git/storefront/cart/pkg/response"
	productResponse "github.com/Nothile-Moyo-Git/storefront/product/pkg/response"
)

var ErrInvalidLineItem = errors.New("invalid line item")

// AddItem merges a product snapshot into the cart: an existing line for the
// product gains one unit, otherwise a new line with quantity 1 is appended.
// The total grows by the unit price of the affected line so the invariant
// totalPrice == sum(price*quantity) can never drift. A snapshot with a
// negative price is rejected instead of corrupting the total.
func AddItem(
	cart response.Cart,
	product productResponse.Product,
) (response.Cart, error) {
	if product.ID == uuid.Nil || product.Price.IsNegative() {
		return cart, ErrInvalidLineItem
	}

	items := make([]response.CartItem, len(cart.CartItems))
	copy(items, cart.CartItems)

	for i, item := range items {
		if item.ProductID != product.ID {
			continue
		}
		items[i].Quantity = item.Quantity + 1
		cart.CartItems = items
		cart.TotalPrice = cart.TotalPrice.Add(item.Price)
		return cart, nil
	}

	items = append(items, response.CartItem{
		CartID:    cart.ID,
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
		Quantity:  1,
	})
	cart.CartItems = items
	cart.TotalPrice = cart.TotalPrice.Add(product.Price)
	return cart, nil
}

// RemoveItem drops the whole line for productID, whatever its quantity. The
// calling UI offers one delete action per line, not a quantity stepper.
// Removing an absent product is a no-op; remaining lines keep their order.
func RemoveItem(cart response.Cart, productID uuid.UUID) response.Cart {
	items := make([]response.CartItem, 0, len(cart.CartItems))
	for _, item := range cart.CartItems {
		if item.ProductID == productID {
			lineTotal := item.Price.Mul(decimal.NewFromInt32(item.Quantity))
			cart.TotalPrice = cart.TotalPrice.Sub(lineTotal)
			continue
		}
		items = append(items, item)
	}
	cart.CartItems = items
	return cart
}

// EmptyCart resets the cart unconditionally. Idempotent.
func EmptyCart(cart response.Cart) response.Cart {
	cart.CartItems = []response.CartItem{}
	cart.TotalPrice = decimal.Zero
	return cart
}

// MergeItems deduplicates a batch of requested lines by product, summing
// quantities and keeping first-seen order. Used before a bulk insert so the
// one-line-per-product invariant holds from the start.
func MergeItems(items []request.CartItem) ([]request.CartItem, error) {
	merged := make([]request.CartItem, 0, len(items))
	index := map[uuid.UUID]int{}
	for _, item := range items {
		if item.ProductId == uuid.Nil || item.Quantity < 1 {
			return nil, ErrInvalidLineItem
		}
		if i, ok := index[item.ProductId]; ok {
			merged[i].Quantity += item.Quantity
			continue
		}
		index[item.ProductId] = len(merged)
		merged = append(merged, item)
	}
	return merged, nil
}

package repository

import (
	"github.com/google/uuid"

	cartResponse "github.com/Nothile-Moyo-Git/storefront/cart/pkg/response"
	orderResponse "github.com/Nothile-Moyo-Git/storefront/order/pkg/response"
	productResponse "github.com/Nothile-Moyo-Git/storefront/product/pkg/response"
	userResponse "github.com/Nothile-Moyo-Git/storefront/user/pkg/response"
)

func (p Product) Response() productResponse.Product {
	return productResponse.Product{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		ImageUrl:    p.ImageUrl,
		OwnerID:     p.OwnerID,
		Price:       DecimalFromNumeric(p.Price),
		Quantity:    p.Quantity,
		CreatedAt:   p.CreatedAt.Time,
		UpdatedAt:   p.UpdatedAt.Time,
	}
}

func (u User) Response() userResponse.User {
	return userResponse.User{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt.Time,
		UpdatedAt: u.UpdatedAt.Time,
	}
}

func (c Cart) Response(items []CartItem) cartResponse.Cart {
	cartItems := make([]cartResponse.CartItem, len(items))
	for i, item := range items {
		cartItems[i] = item.Response()
	}
	userID := uuid.Nil
	if c.UserID.Valid {
		userID = c.UserID.UUID
	}
	return cartResponse.Cart{
		ID:         c.ID,
		UserID:     userID,
		CartItems:  cartItems,
		TotalPrice: DecimalFromNumeric(c.TotalPrice),
		CreatedAt:  c.CreatedAt.Time,
		UpdatedAt:  c.UpdatedAt.Time,
	}
}

func (i CartItem) Response() cartResponse.CartItem {
	return cartResponse.CartItem{
		ID:        i.ID,
		CartID:    i.CartID,
		ProductID: i.ProductID,
		Name:      i.Name,
		Price:     DecimalFromNumeric(i.Price),
		Quantity:  i.Quantity,
		CreatedAt: i.CreatedAt.Time,
		UpdatedAt: i.UpdatedAt.Time,
	}
}

func (o Order) Response(items []OrderItem) orderResponse.Order {
	orderItems := make([]orderResponse.OrderItem, len(items))
	for i, item := range items {
		orderItems[i] = item.Response()
	}
	return orderResponse.Order{
		ID:         o.ID,
		UserID:     o.UserID,
		UserName:   o.UserName,
		TotalPrice: DecimalFromNumeric(o.TotalPrice),
		Status:     o.Status,
		OrderItems: orderItems,
		CreatedAt:  o.CreatedAt.Time,
		UpdatedAt:  o.UpdatedAt.Time,
	}
}

func (i OrderItem) Response() orderResponse.OrderItem {
	return orderResponse.OrderItem{
		ID:        i.ID,
		OrderID:   i.OrderID,
		ProductID: i.ProductID,
		Name:      i.Name,
		Price:     DecimalFromNumeric(i.Price),
		Quantity:  i.Quantity,
		CreatedAt: i.CreatedAt.Time,
		UpdatedAt: i.UpdatedAt.Time,
	}
}

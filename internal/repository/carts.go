package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const insertCart = `
INSERT INTO carts (user_id, total_price)
VALUES ($1, 0)
RETURNING id, user_id, total_price, created_at, updated_at
`

func (q *Queries) InsertCart(c context.Context, userID uuid.NullUUID) (Cart, error) {
	return scanCart(q.db.QueryRow(c, insertCart, userID))
}

const findCartById = `
SELECT id, user_id, total_price, created_at, updated_at
FROM carts
WHERE id = $1
`

func (q *Queries) FindCartById(c context.Context, id uuid.UUID) (Cart, error) {
	return scanCart(q.db.QueryRow(c, findCartById, id))
}

const findCartByUserId = `
SELECT id, user_id, total_price, created_at, updated_at
FROM carts
WHERE user_id = $1
`

func (q *Queries) FindCartByUserId(c context.Context, userID uuid.UUID) (Cart, error) {
	return scanCart(q.db.QueryRow(c, findCartByUserId, userID))
}

const updateCartTotalPrice = `
UPDATE carts
SET total_price = $1,
    updated_at = now()
WHERE id = $2
RETURNING id, user_id, total_price, created_at, updated_at
`

type UpdateCartTotalPriceParams struct {
	TotalPrice pgtype.Numeric
	ID         uuid.UUID
}

func (q *Queries) UpdateCartTotalPrice(
	c context.Context,
	arg UpdateCartTotalPriceParams,
) (Cart, error) {
	return scanCart(q.db.QueryRow(c, updateCartTotalPrice, arg.TotalPrice, arg.ID))
}

const insertCartItem = `
INSERT INTO cart_items (cart_id, product_id, name, price, quantity, position)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, cart_id, product_id, name, price, quantity, position, created_at, updated_at
`

type InsertCartItemParams struct {
	CartID    uuid.UUID
	ProductID uuid.UUID
	Name      string
	Price     pgtype.Numeric
	Quantity  int32
	Position  int32
}

func (q *Queries) InsertCartItem(c context.Context, arg InsertCartItemParams) (CartItem, error) {
	row := q.db.QueryRow(c, insertCartItem,
		arg.CartID, arg.ProductID, arg.Name, arg.Price, arg.Quantity, arg.Position)
	return scanCartItem(row)
}

func (q *Queries) InsertCartItems(
	c context.Context,
	args []InsertCartItemParams,
) (int64, error) {
	var inserted int64
	for _, arg := range args {
		_, err := q.InsertCartItem(c, arg)
		if err != nil {
			return inserted, err
		}
		inserted++
	}
	return inserted, nil
}

const findCartItemsByCartId = `
SELECT id, cart_id, product_id, name, price, quantity, position, created_at, updated_at
FROM cart_items
WHERE cart_id = $1
ORDER BY position
`

func (q *Queries) FindCartItemsByCartId(c context.Context, cartID uuid.UUID) ([]CartItem, error) {
	rows, err := q.db.Query(c, findCartItemsByCartId, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []CartItem{}
	for rows.Next() {
		item, err := scanCartItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

const deleteCartItemsByCartId = `
DELETE FROM cart_items
WHERE cart_id = $1
`

func (q *Queries) DeleteCartItemsByCartId(c context.Context, cartID uuid.UUID) (int64, error) {
	tag, err := q.db.Exec(c, deleteCartItemsByCartId, cartID)
	return tag.RowsAffected(), err
}

func scanCart(row pgx.Row) (Cart, error) {
	var cart Cart
	err := row.Scan(&cart.ID, &cart.UserID, &cart.TotalPrice, &cart.CreatedAt, &cart.UpdatedAt)
	return cart, err
}

func scanCartItem(row pgx.Row) (CartItem, error) {
	var item CartItem
	err := row.Scan(
		&item.ID,
		&item.CartID,
		&item.ProductID,
		&item.Name,
		&item.Price,
		&item.Quantity,
		&item.Position,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	return item, err
}

package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const insertOrder = `
INSERT INTO orders (id, user_id, user_name, total_price, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $5)
RETURNING id, user_id, user_name, total_price, status, created_at, updated_at
`

type InsertOrderParams struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	UserName   string
	TotalPrice pgtype.Numeric
	CreatedAt  pgtype.Timestamptz
}

func (q *Queries) InsertOrder(c context.Context, arg InsertOrderParams) (Order, error) {
	row := q.db.QueryRow(c, insertOrder,
		arg.ID, arg.UserID, arg.UserName, arg.TotalPrice, arg.CreatedAt)
	return scanOrder(row)
}

const insertOrderItem = `
INSERT INTO order_items (order_id, product_id, name, price, quantity, position)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, order_id, product_id, name, price, quantity, position, created_at, updated_at
`

type InsertOrderItemParams struct {
	OrderID   uuid.UUID
	ProductID uuid.UUID
	Name      string
	Price     pgtype.Numeric
	Quantity  int32
	Position  int32
}

func (q *Queries) InsertOrderItem(c context.Context, arg InsertOrderItemParams) (OrderItem, error) {
	row := q.db.QueryRow(c, insertOrderItem,
		arg.OrderID, arg.ProductID, arg.Name, arg.Price, arg.Quantity, arg.Position)
	return scanOrderItem(row)
}

func (q *Queries) InsertOrderItems(
	c context.Context,
	args []InsertOrderItemParams,
) (int64, error) {
	var inserted int64
	for _, arg := range args {
		_, err := q.InsertOrderItem(c, arg)
		if err != nil {
			return inserted, err
		}
		inserted++
	}
	return inserted, nil
}

const findOrderById = `
SELECT id, user_id, user_name, total_price, status, created_at, updated_at
FROM orders
WHERE id = $1 AND user_id = $2
`

type FindOrderByIdParams struct {
	ID     uuid.UUID
	UserID uuid.UUID
}

func (q *Queries) FindOrderById(c context.Context, arg FindOrderByIdParams) (Order, error) {
	return scanOrder(q.db.QueryRow(c, findOrderById, arg.ID, arg.UserID))
}

const findOrdersByUserId = `
SELECT id, user_id, user_name, total_price, status, created_at, updated_at
FROM orders
WHERE user_id = $1
ORDER BY created_at DESC
`

func (q *Queries) FindOrdersByUserId(c context.Context, userID uuid.UUID) ([]Order, error) {
	rows, err := q.db.Query(c, findOrdersByUserId, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	orders := []Order{}
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}

const findOrderItemsByOrderId = `
SELECT id, order_id, product_id, name, price, quantity, position, created_at, updated_at
FROM order_items
WHERE order_id = $1
ORDER BY position
`

func (q *Queries) FindOrderItemsByOrderId(
	c context.Context,
	orderID uuid.UUID,
) ([]OrderItem, error) {
	rows, err := q.db.Query(c, findOrderItemsByOrderId, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []OrderItem{}
	for rows.Next() {
		item, err := scanOrderItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func scanOrder(row pgx.Row) (Order, error) {
	var o Order
	err := row.Scan(
		&o.ID,
		&o.UserID,
		&o.UserName,
		&o.TotalPrice,
		&o.Status,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	return o, err
}

func scanOrderItem(row pgx.Row) (OrderItem, error) {
	var item OrderItem
	err := row.Scan(
		&item.ID,
		&item.OrderID,
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

package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const insertProduct = `
INSERT INTO products (name, description, image_url, owner_id, price, quantity)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, name, description, image_url, owner_id, price, quantity, created_at, updated_at
`

type InsertProductParams struct {
	Name        string
	Description string
	ImageUrl    string
	OwnerID     uuid.UUID
	Price       pgtype.Numeric
	Quantity    int32
}

func (q *Queries) InsertProduct(c context.Context, arg InsertProductParams) (Product, error) {
	row := q.db.QueryRow(c, insertProduct,
		arg.Name, arg.Description, arg.ImageUrl, arg.OwnerID, arg.Price, arg.Quantity)
	return scanProduct(row)
}

const findProducts = `
SELECT id, name, description, image_url, owner_id, price, quantity, created_at, updated_at
FROM products
ORDER BY created_at
`

func (q *Queries) FindProducts(c context.Context) ([]Product, error) {
	rows, err := q.db.Query(c, findProducts)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	products := []Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

const findProductById = `
SELECT id, name, description, image_url, owner_id, price, quantity, created_at, updated_at
FROM products
WHERE id = $1
`

func (q *Queries) FindProductById(c context.Context, id uuid.UUID) (Product, error) {
	return scanProduct(q.db.QueryRow(c, findProductById, id))
}

const findProductByName = `
SELECT id, name, description, image_url, owner_id, price, quantity, created_at, updated_at
FROM products
WHERE name = $1
`

func (q *Queries) FindProductByName(c context.Context, name string) (Product, error) {
	return scanProduct(q.db.QueryRow(c, findProductByName, name))
}

const updateProduct = `
UPDATE products
SET name = $1,
    description = $2,
    image_url = $3,
    price = $4,
    quantity = $5,
    updated_at = now()
WHERE id = $6
RETURNING id, name, description, image_url, owner_id, price, quantity, created_at, updated_at
`

type UpdateProductParams struct {
	Name        string
	Description string
	ImageUrl    string
	Price       pgtype.Numeric
	Quantity    int32
	ID          uuid.UUID
}

func (q *Queries) UpdateProduct(c context.Context, arg UpdateProductParams) (Product, error) {
	row := q.db.QueryRow(c, updateProduct,
		arg.Name, arg.Description, arg.ImageUrl, arg.Price, arg.Quantity, arg.ID)
	return scanProduct(row)
}

const deleteProductById = `
DELETE FROM products
WHERE id = $1
RETURNING id, name, description, image_url, owner_id, price, quantity, created_at, updated_at
`

func (q *Queries) DeleteProductById(c context.Context, id uuid.UUID) (Product, error) {
	return scanProduct(q.db.QueryRow(c, deleteProductById, id))
}

func scanProduct(row pgx.Row) (Product, error) {
	var p Product
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.ImageUrl,
		&p.OwnerID,
		&p.Price,
		&p.Quantity,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}

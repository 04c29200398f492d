// Package postgres implements the product store on PostgreSQL via pgx.
package postgres

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/xenking/budogu-admin/internal/domain/product"
)

const productColumns = `id, name_en, name_jp, name_cn, category, brand, price, image,
		description_en, description_jp, description_cn`

const (
	listProductsSQL = `SELECT ` + productColumns + ` FROM products ORDER BY id`

	getProductByIDSQL = `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	createProductSQL = `INSERT INTO products (name_en, name_jp, name_cn, category, brand, price, image,
		description_en, description_jp, description_cn)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + productColumns

	updateProductSQL = `UPDATE products SET name_en = $2, name_jp = $3, name_cn = $4, category = $5,
		brand = $6, price = $7, image = $8, description_en = $9, description_jp = $10,
		description_cn = $11, updated_at = now()
		WHERE id = $1
		RETURNING ` + productColumns

	deleteProductSQL = `DELETE FROM products WHERE id = $1`

	truncateProductsSQL = `TRUNCATE products RESTART IDENTITY`
)

var _ product.Repository = (*ProductRepository)(nil)

// ProductRepository implements product.Repository backed by PostgreSQL.
type ProductRepository struct {
	pool *pgxpool.Pool
}

// NewProductRepository returns a ProductRepository that uses the given pool.
func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

// List returns all products ordered by ID.
func (r *ProductRepository) List(ctx context.Context) ([]product.Product, error) {
	rows, err := r.pool.Query(ctx, listProductsSQL)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	products, err := pgx.CollectRows(rows, scanProduct)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	return products, nil
}

// GetByID returns a single product by its identifier.
func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*product.Product, error) {
	return r.one(ctx, "getting product", id, getProductByIDSQL, id)
}

// Create inserts p and returns it with the assigned ID. p.ID is ignored.
func (r *ProductRepository) Create(ctx context.Context, p product.Product) (*product.Product, error) {
	return r.one(ctx, "creating product", 0, createProductSQL,
		p.NameEN, p.NameJP, p.NameCN, string(p.Category), p.Brand, p.Price, p.Image,
		p.DescriptionEN, p.DescriptionJP, p.DescriptionCN,
	)
}

// Update replaces every column of the row identified by p.ID.
func (r *ProductRepository) Update(ctx context.Context, p product.Product) (*product.Product, error) {
	return r.one(ctx, "updating product", p.ID, updateProductSQL,
		p.ID, p.NameEN, p.NameJP, p.NameCN, string(p.Category), p.Brand, p.Price, p.Image,
		p.DescriptionEN, p.DescriptionJP, p.DescriptionCN,
	)
}

// Delete removes the product with the given ID.
func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, deleteProductSQL, id)
	if err != nil {
		return fmt.Errorf("deleting product %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return product.ErrNotFound
	}
	return nil
}

// Truncate removes every product and resets the ID sequence.
func (r *ProductRepository) Truncate(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, truncateProductsSQL); err != nil {
		return fmt.Errorf("truncating products: %w", err)
	}
	return nil
}

func (r *ProductRepository) one(ctx context.Context, op string, id int64, sql string, args ...any) (*product.Product, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("%s %d: %w", op, id, err)
	}

	p, err := pgx.CollectExactlyOneRow(rows, scanProduct)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, product.ErrNotFound
		}
		return nil, fmt.Errorf("%s %d: %w", op, id, err)
	}
	return &p, nil
}

func scanProduct(row pgx.CollectableRow) (product.Product, error) {
	var (
		p        product.Product
		category string
	)
	err := row.Scan(
		&p.ID, &p.NameEN, &p.NameJP, &p.NameCN, &category, &p.Brand, &p.Price, &p.Image,
		&p.DescriptionEN, &p.DescriptionJP, &p.DescriptionCN,
	)
	p.Category = product.Category(category)
	return p, err
}

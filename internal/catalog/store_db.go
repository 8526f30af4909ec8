package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

const (
	pingTimeout  = 1 * time.Second
	queryTimeout = 3 * time.Second
)

const productColumns = `id, name, description, price, sale_price, image_url, category, subcategory,
	is_new_arrival, is_best_seller, is_on_sale, in_stock, rating, review_count`

const schemaSQL = `
CREATE TABLE IF NOT EXISTS products (
	id             BIGINT PRIMARY KEY,
	name           TEXT NOT NULL,
	description    TEXT,
	price          DOUBLE PRECISION NOT NULL CHECK (price > 0),
	sale_price     DOUBLE PRECISION CHECK (sale_price IS NULL OR sale_price < price),
	image_url      TEXT NOT NULL,
	category       TEXT NOT NULL,
	subcategory    TEXT,
	is_new_arrival BOOLEAN NOT NULL DEFAULT FALSE,
	is_best_seller BOOLEAN NOT NULL DEFAULT FALSE,
	is_on_sale     BOOLEAN NOT NULL DEFAULT FALSE,
	in_stock       BOOLEAN NOT NULL DEFAULT TRUE,
	rating         DOUBLE PRECISION NOT NULL DEFAULT 0,
	review_count   INTEGER NOT NULL DEFAULT 0
)`

// PostgresStore serves the catalog from a products table. The db handle is
// expected to come from the pgx stdlib driver.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return withTimeout(ctx, pingTimeout, func(ctx context.Context) error {
		return s.db.PingContext(ctx)
	})
}

// EnsureSchema creates the products table when missing.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	return withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		_, err := s.db.ExecContext(ctx, schemaSQL)
		return err
	})
}

// Seed inserts products that are not present yet. Existing rows, and the
// ratings they have accumulated, are left alone.
func (s *PostgresStore) Seed(ctx context.Context, products []Product) error {
	return withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
		if err != nil {
			return err
		}
		defer func() { _ = tx.Rollback() }()

		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO products (`+productColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
			ON CONFLICT (id) DO NOTHING
		`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, p := range products {
			if _, err := stmt.ExecContext(ctx,
				p.ID, p.Name, p.Description, p.Price, p.SalePrice, p.ImageURL, p.Category, p.Subcategory,
				p.IsNewArrival, p.IsBestSeller, p.IsOnSale, p.InStock, p.Rating, p.ReviewCount,
			); err != nil {
				return fmt.Errorf("seed product %d: %w", p.ID, err)
			}
		}

		return tx.Commit()
	})
}

func (s *PostgresStore) List(ctx context.Context) ([]Product, error) {
	return s.query(ctx, `SELECT `+productColumns+` FROM products ORDER BY id ASC`)
}

func (s *PostgresStore) Get(ctx context.Context, id int64) (Product, bool, error) {
	var p Product

	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		return scanProduct(s.db.QueryRowContext(ctx,
			`SELECT `+productColumns+` FROM products WHERE id = $1`, id), &p)
	})

	if err == sql.ErrNoRows {
		return Product{}, false, nil
	}
	if err != nil {
		return Product{}, false, err
	}
	return p, true, nil
}

func (s *PostgresStore) ByCategory(ctx context.Context, category string) ([]Product, error) {
	return s.query(ctx, `
		SELECT `+productColumns+` FROM products
		WHERE lower(category) = lower($1)
		ORDER BY id ASC
	`, category)
}

func (s *PostgresStore) BySubcategory(ctx context.Context, subcategory string) ([]Product, error) {
	return s.query(ctx, `
		SELECT `+productColumns+` FROM products
		WHERE subcategory IS NOT NULL AND lower(subcategory) = lower($1)
		ORDER BY id ASC
	`, subcategory)
}

// Search uses strpos rather than LIKE so that % and _ in the query match literally.
func (s *PostgresStore) Search(ctx context.Context, query string) ([]Product, error) {
	return s.query(ctx, `
		SELECT `+productColumns+` FROM products
		WHERE strpos(lower(name), lower($1)) > 0
		   OR strpos(lower(coalesce(description, '')), lower($1)) > 0
		   OR strpos(lower(category), lower($1)) > 0
		   OR strpos(lower(coalesce(subcategory, '')), lower($1)) > 0
		ORDER BY id ASC
	`, query)
}

func (s *PostgresStore) Featured(ctx context.Context) ([]Product, error) {
	return s.query(ctx, `
		SELECT `+productColumns+` FROM products
		WHERE is_best_seller OR is_new_arrival
		ORDER BY id ASC
		LIMIT $1
	`, FeaturedLimit)
}

func (s *PostgresStore) NewArrivals(ctx context.Context) ([]Product, error) {
	return s.query(ctx, `SELECT `+productColumns+` FROM products WHERE is_new_arrival ORDER BY id ASC`)
}

func (s *PostgresStore) BestSellers(ctx context.Context) ([]Product, error) {
	return s.query(ctx, `SELECT `+productColumns+` FROM products WHERE is_best_seller ORDER BY id ASC`)
}

func (s *PostgresStore) OnSale(ctx context.Context) ([]Product, error) {
	return s.query(ctx, `SELECT `+productColumns+` FROM products WHERE is_on_sale ORDER BY id ASC`)
}

func (s *PostgresStore) SetRating(ctx context.Context, id int64, rating float64, count int) error {
	return withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		res, err := s.db.ExecContext(ctx, `
			UPDATE products SET rating = $2, review_count = $3
			WHERE id = $1
		`, id, rating, count)
		if err != nil {
			return err
		}

		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("%w: id=%d", ErrProductNotFound, id)
		}
		return nil
	})
}

func (s *PostgresStore) query(ctx context.Context, q string, args ...any) ([]Product, error) {
	var out []Product

	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		rows, err := s.db.QueryContext(ctx, q, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		out = make([]Product, 0, 16)
		for rows.Next() {
			var p Product
			if err := scanProduct(rows, &p); err != nil {
				return err
			}
			out = append(out, p)
		}
		return rows.Err()
	})

	if err != nil {
		return nil, err
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProduct(row scanner, p *Product) error {
	return row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.SalePrice, &p.ImageURL, &p.Category, &p.Subcategory,
		&p.IsNewArrival, &p.IsBestSeller, &p.IsOnSale, &p.InStock, &p.Rating, &p.ReviewCount,
	)
}

func withTimeout(parent context.Context, d time.Duration, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(parent, d)
	defer cancel()
	return fn(ctx)
}

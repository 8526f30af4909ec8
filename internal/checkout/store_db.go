package checkout

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"Storefront/internal/cart"
)

const queryTimeout = 5 * time.Second

const schemaSQL = `
CREATE TABLE IF NOT EXISTS orders (
	id             TEXT PRIMARY KEY,
	session_id     TEXT NOT NULL,
	full_name      TEXT NOT NULL,
	email          TEXT NOT NULL,
	address        TEXT NOT NULL,
	city           TEXT NOT NULL,
	state          TEXT NOT NULL,
	zip_code       TEXT NOT NULL,
	country        TEXT NOT NULL,
	payment_method TEXT NOT NULL,
	subtotal       NUMERIC(12,2) NOT NULL,
	shipping       NUMERIC(12,2) NOT NULL,
	total          NUMERIC(12,2) NOT NULL,
	status         TEXT NOT NULL,
	created_at     TIMESTAMPTZ NOT NULL
);
CREATE TABLE IF NOT EXISTS order_items (
	order_id   TEXT NOT NULL REFERENCES orders (id) ON DELETE CASCADE,
	line_id    BIGINT NOT NULL,
	product_id BIGINT NOT NULL,
	quantity   INTEGER NOT NULL CHECK (quantity > 0),
	size       TEXT,
	color      TEXT,
	product    JSONB NOT NULL,
	PRIMARY KEY (order_id, line_id)
)`

// PostgresStore keeps orders with a JSON snapshot of each product as it
// was priced at checkout.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := s.db.ExecContext(ctx, schemaSQL)
	return err
}

func (s *PostgresStore) Create(ctx context.Context, o Order) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	c := o.Customer
	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (id, session_id, full_name, email, address, city, state, zip_code, country,
			payment_method, subtotal, shipping, total, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`, o.ID, o.SessionID, c.FullName, c.Email, c.Address, c.City, c.State, c.ZipCode, c.Country,
		c.PaymentMethod, o.Subtotal.Decimal, o.Shipping.Decimal, o.Total.Decimal, o.Status, o.CreatedAt)
	if err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO order_items (order_id, line_id, product_id, quantity, size, color, product)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, it := range o.Items {
		snapshot, err := json.Marshal(it.Product)
		if err != nil {
			return fmt.Errorf("encode product %d: %w", it.ProductID, err)
		}
		if _, err := stmt.ExecContext(ctx, o.ID, it.ID, it.ProductID, it.Quantity, it.Size, it.Color, snapshot); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *PostgresStore) Get(ctx context.Context, id string) (Order, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var o Order
	c := &o.Customer
	err := s.db.QueryRowContext(ctx, `
		SELECT id, session_id, full_name, email, address, city, state, zip_code, country,
			payment_method, subtotal, shipping, total, status, created_at
		FROM orders
		WHERE id = $1
	`, id).Scan(&o.ID, &o.SessionID, &c.FullName, &c.Email, &c.Address, &c.City, &c.State, &c.ZipCode,
		&c.Country, &c.PaymentMethod, &o.Subtotal, &o.Shipping, &o.Total, &o.Status, &o.CreatedAt)

	if err == sql.ErrNoRows {
		return Order{}, false, nil
	}
	if err != nil {
		return Order{}, false, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT line_id, product_id, quantity, size, color, product
		FROM order_items
		WHERE order_id = $1
		ORDER BY line_id ASC
	`, id)
	if err != nil {
		return Order{}, false, err
	}
	defer rows.Close()

	items := make([]cart.Line, 0, 8)
	for rows.Next() {
		var (
			it       cart.Line
			snapshot []byte
		)
		if err := rows.Scan(&it.ID, &it.ProductID, &it.Quantity, &it.Size, &it.Color, &snapshot); err != nil {
			return Order{}, false, err
		}
		if err := json.Unmarshal(snapshot, &it.Product); err != nil {
			return Order{}, false, fmt.Errorf("decode product snapshot for order %s: %w", id, err)
		}
		it.SessionID = o.SessionID
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return Order{}, false, err
	}
	o.Items = items

	return o, true, nil
}

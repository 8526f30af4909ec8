package wishlist

import (
	"context"
	"errors"
	"time"

	"Storefront/internal/catalog"
)

var ErrDanglingProduct = errors.New("wishlist entry references missing product")

type Entry struct {
	ID        int64     `json:"id"`
	SessionID string    `json:"sessionId"`
	ProductID int64     `json:"productId"`
	AddedAt   time.Time `json:"addedAt"`
}

type Item struct {
	Entry
	Product catalog.Product `json:"product"`
}

type Store interface {
	// Add is idempotent per (session, product): a repeat returns the
	// existing entry unchanged.
	Add(ctx context.Context, sessionID string, productID int64) (Entry, error)
	Remove(ctx context.Context, id int64) (bool, error)
	Clear(ctx context.Context, sessionID string) error
	List(ctx context.Context, sessionID string) ([]Item, error)
	Contains(ctx context.Context, sessionID string, productID int64) (bool, error)
}

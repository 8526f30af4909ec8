package cart

import (
	"context"
	"errors"
	"strconv"

	"github.com/shopspring/decimal"

	"Storefront/internal/catalog"
	"Storefront/pkg/kit"
)

// ErrDanglingProduct means a line points at a product the catalog no
// longer has. Lines are never dropped silently; callers treat it as internal.
var ErrDanglingProduct = errors.New("cart line references missing product")

// MaxQuantity caps a single line, including quantities reached by merging.
const MaxQuantity = 999

func errQuantityTooLarge() error {
	return kit.ValidationErrors{{Field: "quantity", Rule: "max", Param: strconv.Itoa(MaxQuantity)}}
}

type LineItem struct {
	ID        int64   `json:"id"`
	SessionID string  `json:"sessionId"`
	ProductID int64   `json:"productId"`
	Quantity  int     `json:"quantity"`
	Size      *string `json:"size"`
	Color     *string `json:"color"`
}

// Line is a LineItem joined with its product.
type Line struct {
	LineItem
	Product catalog.Product `json:"product"`
}

type AddInput struct {
	SessionID string
	ProductID int64
	Quantity  int
	Size      *string
	Color     *string
}

type Store interface {
	// AddItem merges into the line with the same product, size and color,
	// or creates one. A non-positive quantity counts as 1. A line that would
	// pass MaxQuantity is rejected with a validation error and left as is.
	AddItem(ctx context.Context, in AddInput) (LineItem, error)
	// UpdateQuantity replaces a line's quantity; zero or less removes it,
	// more than MaxQuantity is a validation error.
	// The bool is false when no such line exists.
	UpdateQuantity(ctx context.Context, id int64, quantity int) (LineItem, bool, error)
	RemoveItem(ctx context.Context, id int64) (bool, error)
	Clear(ctx context.Context, sessionID string) error
	List(ctx context.Context, sessionID string) ([]Line, error)
	// Drain lists and clears a session's cart in one step.
	Drain(ctx context.Context, sessionID string) ([]Line, error)
}

type Summary struct {
	SessionID string    `json:"sessionId"`
	Items     []Line    `json:"items"`
	ItemCount int       `json:"itemCount"`
	Subtotal  kit.Money `json:"subtotal"`
}

// Summarize derives the cart totals. Nothing is cached: callers pass the
// current lines on every read.
func Summarize(sessionID string, lines []Line) Summary {
	subtotal := decimal.Zero
	count := 0
	for _, l := range lines {
		subtotal = subtotal.Add(l.Product.UnitPrice().Mul(decimal.NewFromInt(int64(l.Quantity))))
		count += l.Quantity
	}

	if lines == nil {
		lines = []Line{}
	}
	return Summary{
		SessionID: sessionID,
		Items:     lines,
		ItemCount: count,
		Subtotal:  kit.NewMoney(subtotal),
	}
}

package checkout

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"Storefront/internal/cart"
	"Storefront/pkg/kit"
)

const StatusPlaced = "PLACED"

var (
	FreeShippingThreshold = decimal.NewFromInt(75)
	FlatShipping          = decimal.RequireFromString("9.99")
)

// Customer is the checkout form. Nothing here is charged or verified
// beyond shape.
type Customer struct {
	FullName      string `json:"fullName" validate:"required"`
	Email         string `json:"email" validate:"required,email"`
	Address       string `json:"address" validate:"required"`
	City          string `json:"city" validate:"required"`
	State         string `json:"state" validate:"required"`
	ZipCode       string `json:"zipCode" validate:"required"`
	Country       string `json:"country" validate:"required"`
	PaymentMethod string `json:"paymentMethod" validate:"required"`
}

func (c *Customer) trim() {
	for _, f := range []*string{
		&c.FullName, &c.Email, &c.Address, &c.City,
		&c.State, &c.ZipCode, &c.Country, &c.PaymentMethod,
	} {
		*f = strings.TrimSpace(*f)
	}
}

type Order struct {
	ID        string      `json:"id"`
	SessionID string      `json:"sessionId"`
	Customer  Customer    `json:"customer"`
	Items     []cart.Line `json:"items"`
	Subtotal  kit.Money   `json:"subtotal"`
	Shipping  kit.Money   `json:"shipping"`
	Total     kit.Money   `json:"total"`
	Status    string      `json:"status"`
	CreatedAt time.Time   `json:"createdAt"`
}

type Store interface {
	Create(ctx context.Context, o Order) error
	Get(ctx context.Context, id string) (Order, bool, error)
}

type Totals struct {
	Subtotal decimal.Decimal
	Shipping decimal.Decimal
	Total    decimal.Decimal
}

// Quote prices a set of cart lines. Shipping is free from the threshold up.
func Quote(lines []cart.Line) Totals {
	subtotal := cart.Summarize("", lines).Subtotal.Decimal

	shipping := FlatShipping
	if subtotal.GreaterThanOrEqual(FreeShippingThreshold) {
		shipping = decimal.Zero
	}
	return Totals{
		Subtotal: subtotal,
		Shipping: shipping,
		Total:    subtotal.Add(shipping),
	}
}

func NewOrderID(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("ORD-%d-%s", now.UnixMilli(), suffix)
}

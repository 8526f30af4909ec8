package catalog

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

// FeaturedLimit caps the featured list shown on the home page.
const FeaturedLimit = 8

var ErrProductNotFound = errors.New("product not found")

type Product struct {
	ID           int64    `json:"id"`
	Name         string   `json:"name"`
	Description  *string  `json:"description"`
	Price        float64  `json:"price"`
	SalePrice    *float64 `json:"salePrice"`
	ImageURL     string   `json:"imageUrl"`
	Category     string   `json:"category"`
	Subcategory  *string  `json:"subcategory"`
	IsNewArrival bool     `json:"isNewArrival"`
	IsBestSeller bool     `json:"isBestSeller"`
	IsOnSale     bool     `json:"isOnSale"`
	InStock      bool     `json:"inStock"`
	Rating       float64  `json:"rating"`
	ReviewCount  int      `json:"reviewCount"`
}

// UnitPrice is what one unit costs right now: the sale price when set,
// the list price otherwise.
func (p Product) UnitPrice() decimal.Decimal {
	if p.SalePrice != nil && *p.SalePrice > 0 {
		return decimal.NewFromFloat(*p.SalePrice)
	}
	return decimal.NewFromFloat(p.Price)
}

// Store is the read-mostly product catalog. SetRating is the only write
// and belongs to the review path.
type Store interface {
	List(ctx context.Context) ([]Product, error)
	Get(ctx context.Context, id int64) (Product, bool, error)
	ByCategory(ctx context.Context, category string) ([]Product, error)
	BySubcategory(ctx context.Context, subcategory string) ([]Product, error)
	Search(ctx context.Context, query string) ([]Product, error)
	Featured(ctx context.Context) ([]Product, error)
	NewArrivals(ctx context.Context) ([]Product, error)
	BestSellers(ctx context.Context) ([]Product, error)
	OnSale(ctx context.Context) ([]Product, error)
	SetRating(ctx context.Context, id int64, rating float64, count int) error
	Ping(ctx context.Context) error
}

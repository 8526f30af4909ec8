package review

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"Storefront/internal/catalog"
)

type MemStore struct {
	mu      sync.RWMutex
	catalog catalog.Store
	now     func() time.Time

	nextID    int64
	byProduct map[int64][]Review
}

func NewMemStore(products catalog.Store) *MemStore {
	return &MemStore{
		catalog:   products,
		now:       func() time.Time { return time.Now().UTC() },
		byProduct: make(map[int64][]Review),
	}
}

func (s *MemStore) Add(ctx context.Context, in AddInput) (Review, error) {
	if err := in.Validate(); err != nil {
		return Review{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok, err := s.catalog.Get(ctx, in.ProductID)
	if err != nil {
		return Review{}, err
	}
	if !ok {
		return Review{}, fmt.Errorf("%w: id=%d", catalog.ErrProductNotFound, in.ProductID)
	}

	username := strings.TrimSpace(in.Username)
	if username == "" {
		username = DefaultUsername
	}

	s.nextID++
	rv := Review{
		ID:        s.nextID,
		SessionID: in.SessionID,
		ProductID: in.ProductID,
		Rating:    in.Rating,
		Title:     strings.TrimSpace(in.Title),
		Comment:   strings.TrimSpace(in.Comment),
		Username:  username,
		CreatedAt: s.now(),
	}

	next := append(s.byProduct[in.ProductID], rv)

	if err := s.catalog.SetRating(ctx, in.ProductID, MeanRating(next), len(next)); err != nil {
		s.nextID--
		return Review{}, fmt.Errorf("update rating for product %d: %w", in.ProductID, err)
	}
	s.byProduct[in.ProductID] = next
	return rv, nil
}

func (s *MemStore) List(ctx context.Context, productID int64) ([]Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	src := s.byProduct[productID]
	out := make([]Review, len(src))
	copy(out, src)
	return out, nil
}

// MeanRating is the arithmetic mean of the ratings rounded to one decimal,
// or 0 for no reviews.
func MeanRating(reviews []Review) float64 {
	if len(reviews) == 0 {
		return 0
	}

	sum := decimal.Zero
	for _, rv := range reviews {
		sum = sum.Add(decimal.NewFromInt(int64(rv.Rating)))
	}
	return sum.Div(decimal.NewFromInt(int64(len(reviews)))).Round(1).InexactFloat64()
}

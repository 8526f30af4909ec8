package catalog

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
)

type MemStore struct {
	mu sync.RWMutex
	m  map[int64]Product
}

// NewMemStore returns a catalog holding the seed products.
func NewMemStore() *MemStore {
	return NewMemStoreWith(SeedProducts())
}

func NewMemStoreWith(products []Product) *MemStore {
	s := &MemStore{m: make(map[int64]Product, len(products))}
	for _, p := range products {
		s.m[p.ID] = p
	}
	return s
}

func (s *MemStore) Ping(ctx context.Context) error { return nil }

func (s *MemStore) List(ctx context.Context) ([]Product, error) {
	return s.filter(func(Product) bool { return true }), nil
}

func (s *MemStore) Get(ctx context.Context, id int64) (Product, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.m[id]
	return p, ok, nil
}

func (s *MemStore) ByCategory(ctx context.Context, category string) ([]Product, error) {
	return s.filter(func(p Product) bool {
		return strings.EqualFold(p.Category, category)
	}), nil
}

func (s *MemStore) BySubcategory(ctx context.Context, subcategory string) ([]Product, error) {
	return s.filter(func(p Product) bool {
		return p.Subcategory != nil && strings.EqualFold(*p.Subcategory, subcategory)
	}), nil
}

func (s *MemStore) Search(ctx context.Context, query string) ([]Product, error) {
	q := strings.ToLower(query)
	return s.filter(func(p Product) bool { return matches(p, q) }), nil
}

func (s *MemStore) Featured(ctx context.Context) ([]Product, error) {
	out := s.filter(func(p Product) bool { return p.IsBestSeller || p.IsNewArrival })
	if len(out) > FeaturedLimit {
		out = out[:FeaturedLimit]
	}
	return out, nil
}

func (s *MemStore) NewArrivals(ctx context.Context) ([]Product, error) {
	return s.filter(func(p Product) bool { return p.IsNewArrival }), nil
}

func (s *MemStore) BestSellers(ctx context.Context) ([]Product, error) {
	return s.filter(func(p Product) bool { return p.IsBestSeller }), nil
}

func (s *MemStore) OnSale(ctx context.Context) ([]Product, error) {
	return s.filter(func(p Product) bool { return p.IsOnSale }), nil
}

func (s *MemStore) SetRating(ctx context.Context, id int64, rating float64, count int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.m[id]
	if !ok {
		return fmt.Errorf("%w: id=%d", ErrProductNotFound, id)
	}
	p.Rating = rating
	p.ReviewCount = count
	s.m[id] = p
	return nil
}

// filter returns matching products ordered by id.
func (s *MemStore) filter(keep func(Product) bool) []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Product, 0, len(s.m))
	for _, p := range s.m {
		if keep(p) {
			out = append(out, p)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// matches reports whether lowered query q occurs in any searchable field.
func matches(p Product, q string) bool {
	fields := []string{p.Name, p.Category}
	if p.Description != nil {
		fields = append(fields, *p.Description)
	}
	if p.Subcategory != nil {
		fields = append(fields, *p.Subcategory)
	}

	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

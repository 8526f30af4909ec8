package wishlist

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"Storefront/internal/catalog"
)

type entryKey struct {
	session string
	product int64
}

type MemStore struct {
	mu      sync.RWMutex
	catalog catalog.Store
	now     func() time.Time

	nextID  int64
	entries map[int64]Entry
	byKey   map[entryKey]int64
}

func NewMemStore(products catalog.Store) *MemStore {
	return &MemStore{
		catalog: products,
		now:     func() time.Time { return time.Now().UTC() },
		entries: make(map[int64]Entry),
		byKey:   make(map[entryKey]int64),
	}
}

func (s *MemStore) Add(ctx context.Context, sessionID string, productID int64) (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok, err := s.catalog.Get(ctx, productID)
	if err != nil {
		return Entry{}, err
	}
	if !ok {
		return Entry{}, fmt.Errorf("%w: id=%d", catalog.ErrProductNotFound, productID)
	}

	key := entryKey{session: sessionID, product: productID}
	if id, ok := s.byKey[key]; ok {
		return s.entries[id], nil
	}

	s.nextID++
	e := Entry{
		ID:        s.nextID,
		SessionID: sessionID,
		ProductID: productID,
		AddedAt:   s.now(),
	}
	s.entries[e.ID] = e
	s.byKey[key] = e.ID
	return e, nil
}

func (s *MemStore) Remove(ctx context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok {
		return false, nil
	}
	delete(s.entries, id)
	delete(s.byKey, entryKey{session: e.SessionID, product: e.ProductID})
	return true, nil
}

func (s *MemStore) Clear(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, e := range s.entries {
		if e.SessionID == sessionID {
			delete(s.entries, id)
			delete(s.byKey, entryKey{session: e.SessionID, product: e.ProductID})
		}
	}
	return nil
}

func (s *MemStore) List(ctx context.Context, sessionID string) ([]Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]Entry, 0)
	for _, e := range s.entries {
		if e.SessionID == sessionID {
			entries = append(entries, e)
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })

	out := make([]Item, 0, len(entries))
	for _, e := range entries {
		p, ok, err := s.catalog.Get(ctx, e.ProductID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("%w: entry=%d product=%d", ErrDanglingProduct, e.ID, e.ProductID)
		}
		out = append(out, Item{Entry: e, Product: p})
	}
	return out, nil
}

func (s *MemStore) Contains(ctx context.Context, sessionID string, productID int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.byKey[entryKey{session: sessionID, product: productID}]
	return ok, nil
}

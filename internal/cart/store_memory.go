package cart

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"Storefront/internal/catalog"
)

// lineKey identifies a variant selection; absent size or color is "".
type lineKey struct {
	session string
	product int64
	size    string
	color   string
}

type MemStore struct {
	mu      sync.RWMutex
	catalog catalog.Store

	nextID    int64
	lines     map[int64]*LineItem
	byKey     map[lineKey]int64
	bySession map[string]map[int64]struct{}
}

func NewMemStore(products catalog.Store) *MemStore {
	return &MemStore{
		catalog:   products,
		lines:     make(map[int64]*LineItem),
		byKey:     make(map[lineKey]int64),
		bySession: make(map[string]map[int64]struct{}),
	}
}

func (s *MemStore) AddItem(ctx context.Context, in AddInput) (LineItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok, err := s.catalog.Get(ctx, in.ProductID)
	if err != nil {
		return LineItem{}, err
	}
	if !ok {
		return LineItem{}, fmt.Errorf("%w: id=%d", catalog.ErrProductNotFound, in.ProductID)
	}

	qty := in.Quantity
	if qty <= 0 {
		qty = 1
	}
	if qty > MaxQuantity {
		return LineItem{}, errQuantityTooLarge()
	}
	size, color := variant(in.Size), variant(in.Color)

	key := lineKey{session: in.SessionID, product: in.ProductID, size: deref(size), color: deref(color)}
	if id, ok := s.byKey[key]; ok {
		l := s.lines[id]
		if l.Quantity > MaxQuantity-qty {
			return LineItem{}, errQuantityTooLarge()
		}
		l.Quantity += qty
		return *l, nil
	}

	s.nextID++
	l := &LineItem{
		ID:        s.nextID,
		SessionID: in.SessionID,
		ProductID: in.ProductID,
		Quantity:  qty,
		Size:      size,
		Color:     color,
	}
	s.lines[l.ID] = l
	s.byKey[key] = l.ID
	if s.bySession[in.SessionID] == nil {
		s.bySession[in.SessionID] = make(map[int64]struct{})
	}
	s.bySession[in.SessionID][l.ID] = struct{}{}

	return *l, nil
}

func (s *MemStore) UpdateQuantity(ctx context.Context, id int64, quantity int) (LineItem, bool, error) {
	if quantity > MaxQuantity {
		return LineItem{}, false, errQuantityTooLarge()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.lines[id]
	if !ok {
		return LineItem{}, false, nil
	}

	if quantity <= 0 {
		s.deleteLocked(l)
		out := *l
		out.Quantity = 0
		return out, true, nil
	}

	l.Quantity = quantity
	return *l, true, nil
}

func (s *MemStore) RemoveItem(ctx context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.lines[id]
	if !ok {
		return false, nil
	}
	s.deleteLocked(l)
	return true, nil
}

func (s *MemStore) Clear(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clearLocked(sessionID)
	return nil
}

func (s *MemStore) List(ctx context.Context, sessionID string) ([]Line, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.listLocked(ctx, sessionID)
}

func (s *MemStore) Drain(ctx context.Context, sessionID string) ([]Line, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines, err := s.listLocked(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	s.clearLocked(sessionID)
	return lines, nil
}

func (s *MemStore) listLocked(ctx context.Context, sessionID string) ([]Line, error) {
	ids := make([]int64, 0, len(s.bySession[sessionID]))
	for id := range s.bySession[sessionID] {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]Line, 0, len(ids))
	for _, id := range ids {
		l := s.lines[id]
		p, ok, err := s.catalog.Get(ctx, l.ProductID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("%w: line=%d product=%d", ErrDanglingProduct, l.ID, l.ProductID)
		}
		out = append(out, Line{LineItem: *l, Product: p})
	}
	return out, nil
}

func (s *MemStore) clearLocked(sessionID string) {
	for id := range s.bySession[sessionID] {
		s.deleteLocked(s.lines[id])
	}
}

func (s *MemStore) deleteLocked(l *LineItem) {
	delete(s.lines, l.ID)
	delete(s.byKey, lineKey{session: l.SessionID, product: l.ProductID, size: deref(l.Size), color: deref(l.Color)})

	set := s.bySession[l.SessionID]
	delete(set, l.ID)
	if len(set) == 0 {
		delete(s.bySession, l.SessionID)
	}
}

// variant treats blank selections as absent.
func variant(v *string) *string {
	if v == nil {
		return nil
	}
	t := strings.TrimSpace(*v)
	if t == "" {
		return nil
	}
	return &t
}

func deref(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

// Package memory keeps the catalog and the receipts in process memory. It is
// used in development when no database is configured and as the
// transactional store in tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/palazzem/cash-register/internal/core/domain"
	"github.com/palazzem/cash-register/internal/core/receipts"
)

type Store struct {
	mu       sync.RWMutex
	products map[uuid.UUID]domain.Product
	receipts map[uuid.UUID]domain.Receipt
	sells    []domain.Sell
}

func New() *Store {
	return &Store{
		products: make(map[uuid.UUID]domain.Product),
		receipts: make(map[uuid.UUID]domain.Receipt),
	}
}

func (s *Store) CreateProduct(_ context.Context, p *domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.products {
		if existing.Name == p.Name {
			return domain.ErrDuplicateProduct
		}
	}
	s.products[p.ID] = *p
	return nil
}

// ListProducts returns the catalog ordered by name.
func (s *Store) ListProducts(_ context.Context) ([]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) ProductsByID(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[uuid.UUID]domain.Product, len(ids))
	for _, id := range ids {
		if p, ok := s.products[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

// DeleteProduct removes a product that no Sell references.
func (s *Store) DeleteProduct(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[id]; !ok {
		return domain.ErrNotFound
	}
	for _, sell := range s.sells {
		if sell.Product.ID == id {
			return domain.ErrIntegrity
		}
	}
	delete(s.products, id)
	return nil
}

func (s *Store) Begin(_ context.Context) (receipts.Tx, error) {
	return &tx{store: s}, nil
}

func (s *Store) Receipt(_ context.Context, id uuid.UUID) (*domain.Receipt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.receipts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	r.Sells = nil
	for _, sell := range s.sells {
		if sell.ReceiptID == id {
			r.Sells = append(r.Sells, sell)
		}
	}
	return &r, nil
}

func (s *Store) ReceiptIDs(_ context.Context, from, to time.Time) ([]uuid.UUID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var matched []domain.Receipt
	for _, r := range s.receipts {
		if !r.Date.Before(from) && r.Date.Before(to) {
			matched = append(matched, r)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Date.Before(matched[j].Date) })
	ids := make([]uuid.UUID, 0, len(matched))
	for _, r := range matched {
		ids = append(ids, r.ID)
	}
	return ids, nil
}

func (s *Store) ReceiptCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.receipts)
}

func (s *Store) SellCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sells)
}

// tx stages writes until Commit. Nothing is visible to readers before that.
type tx struct {
	store    *Store
	receipts []domain.Receipt
	sells    []domain.Sell
	done     bool
}

func (t *tx) CreateReceipt(_ context.Context, r *domain.Receipt) error {
	if t.done {
		return domain.ErrTxClosed
	}
	staged := *r
	staged.Sells = nil
	t.receipts = append(t.receipts, staged)
	return nil
}

func (t *tx) CreateSell(_ context.Context, sell *domain.Sell) error {
	if t.done {
		return domain.ErrTxClosed
	}
	if !t.hasReceipt(sell.ReceiptID) {
		return domain.ErrIntegrity
	}
	t.store.mu.RLock()
	_, ok := t.store.products[sell.Product.ID]
	t.store.mu.RUnlock()
	if !ok {
		return domain.ErrIntegrity
	}
	t.sells = append(t.sells, *sell)
	return nil
}

func (t *tx) hasReceipt(id uuid.UUID) bool {
	for _, r := range t.receipts {
		if r.ID == id {
			return true
		}
	}
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	_, ok := t.store.receipts[id]
	return ok
}

func (t *tx) Commit(_ context.Context) error {
	if t.done {
		return domain.ErrTxClosed
	}
	t.done = true
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	for _, sell := range t.sells {
		if _, ok := t.store.products[sell.Product.ID]; !ok {
			return domain.ErrIntegrity
		}
	}
	for _, r := range t.receipts {
		t.store.receipts[r.ID] = r
	}
	t.store.sells = append(t.store.sells, t.sells...)
	return nil
}

func (t *tx) Rollback(_ context.Context) error {
	t.done = true
	t.receipts, t.sells = nil, nil
	return nil
}

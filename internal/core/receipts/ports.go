package receipts

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/palazzem/cash-register/internal/core/domain"
)

// Catalog resolves product references. Missing ids are simply absent from
// the returned map.
type Catalog interface {
	ProductsByID(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.Product, error)
}

// Store opens transaction scopes and reads receipts that are already durable.
type Store interface {
	Begin(ctx context.Context) (Tx, error)
	Receipt(ctx context.Context, id uuid.UUID) (*domain.Receipt, error)
	ReceiptIDs(ctx context.Context, from, to time.Time) ([]uuid.UUID, error)
}

// Tx is a transaction scope. Rollback after Commit is a no-op, so callers
// can always defer it.
type Tx interface {
	CreateReceipt(ctx context.Context, r *domain.Receipt) error
	CreateSell(ctx context.Context, s *domain.Sell) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

package receipts

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/palazzem/cash-register/internal/core/domain"
	"github.com/palazzem/cash-register/internal/core/push"
	logx "github.com/palazzem/cash-register/internal/pkg/logger"
)

// Service records sales and forwards them to the push adapters.
type Service struct {
	validator *Validator
	store     Store
	registry  *push.Registry
	now       func() time.Time
}

func NewService(validator *Validator, store Store, registry *push.Registry) *Service {
	return &Service{
		validator: validator,
		store:     store,
		registry:  registry,
		now:       time.Now,
	}
}

// Submit validates the request, stores the receipt and pushes it to every
// adapter inside one transaction. A push failure rolls the receipt back.
//
// Once the transaction is open the caller can no longer cancel the
// submission: adapters enforce their own timeouts.
func (s *Service) Submit(ctx context.Context, req SubmitRequest) (*domain.Receipt, error) {
	// 1. Validate (no transaction is opened for a bad request)
	items, err := s.validator.Validate(ctx, req)
	if err != nil {
		return nil, err
	}

	ctx = context.WithoutCancel(ctx)

	// 2. Open the scope. Rollback is a no-op once Commit succeeded.
	tx, err := s.store.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// 3. Persist receipt and sells
	receipt, err := s.CreateReceipt(ctx, tx, items)
	if err != nil {
		return nil, err
	}

	// 4. Push, in registration order
	if err := s.registry.Push(ctx, Convert(items), receipt); err != nil {
		logx.Warn().Str("receipt_id", receipt.ID.String()).Msg("receipt rolled back")
		return nil, err
	}

	// 5. Commit
	if err := tx.Commit(ctx); err != nil {
		// adapters already received this receipt
		logx.Error().Err(err).Str("receipt_id", receipt.ID.String()).Msg("commit failed after push")
		return nil, fmt.Errorf("commit receipt: %w", err)
	}

	logx.Info().
		Str("receipt_id", receipt.ID.String()).
		Int("sells", len(receipt.Sells)).
		Msg("receipt created")
	return receipt, nil
}

// CreateReceipt writes a receipt and one Sell per item inside tx. The scope
// is left open for the caller.
func (s *Service) CreateReceipt(ctx context.Context, tx Tx, items []Item) (*domain.Receipt, error) {
	receipt := domain.NewReceipt(s.now())
	if err := tx.CreateReceipt(ctx, receipt); err != nil {
		return nil, fmt.Errorf("create receipt: %w", err)
	}
	for _, item := range items {
		sell, err := domain.NewSell(receipt.ID, item.Product, item.Quantity, item.Price)
		if err != nil {
			return nil, err
		}
		if err := tx.CreateSell(ctx, sell); err != nil {
			return nil, fmt.Errorf("create sell for %s: %w", item.Product.Name, err)
		}
		receipt.Sells = append(receipt.Sells, *sell)
	}
	return receipt, nil
}

// Receipt loads a stored receipt with its sells.
func (s *Service) Receipt(ctx context.Context, id uuid.UUID) (*domain.Receipt, error) {
	return s.store.Receipt(ctx, id)
}

// Backfill pushes an already stored receipt again. Nothing is written.
func (s *Service) Backfill(ctx context.Context, id uuid.UUID) error {
	receipt, err := s.store.Receipt(ctx, id)
	if err != nil {
		return err
	}
	return s.registry.Push(ctx, ConvertReceipt(receipt), receipt)
}

// ReceiptIDs lists the receipts dated in [from, to).
func (s *Service) ReceiptIDs(ctx context.Context, from, to time.Time) ([]uuid.UUID, error) {
	if !from.Before(to) {
		return nil, fmt.Errorf("%w: empty date range", domain.ErrInvalidRange)
	}
	return s.store.ReceiptIDs(ctx, from, to)
}

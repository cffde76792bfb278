package memory

import (
	"context"
	"testing"
	"time"

	"github.com/palazzem/cash-register/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProduct(t *testing.T, s *Store, name string) domain.Product {
	t.Helper()
	p, err := domain.NewProduct(name, domain.NewMoney(decimal.RequireFromString("1.00"), domain.EUR), nil)
	require.NoError(t, err)
	require.NoError(t, s.CreateProduct(context.Background(), p))
	return *p
}

func TestCreateProductDuplicate(t *testing.T) {
	s := New()
	p := newProduct(t, s, "Bagel")

	dup, err := domain.NewProduct("Bagel", p.DefaultPrice, nil)
	require.NoError(t, err)
	assert.ErrorIs(t, s.CreateProduct(context.Background(), dup), domain.ErrDuplicateProduct)

	list, err := s.ListProducts(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestTxIsolationAndRollback(t *testing.T) {
	ctx := context.Background()
	s := New()
	p := newProduct(t, s, "Bagel")

	tx, err := s.Begin(ctx)
	require.NoError(t, err)
	r := domain.NewReceipt(time.Now())
	require.NoError(t, tx.CreateReceipt(ctx, r))
	sell, err := domain.NewSell(r.ID, p, decimal.NewFromInt(1), p.DefaultPrice)
	require.NoError(t, err)
	require.NoError(t, tx.CreateSell(ctx, sell))

	assert.Zero(t, s.ReceiptCount())
	_, err = s.Receipt(ctx, r.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, tx.Rollback(ctx))
	assert.ErrorIs(t, tx.Commit(ctx), domain.ErrTxClosed)
	assert.Zero(t, s.ReceiptCount())
	assert.Zero(t, s.SellCount())
}

func TestTxCommit(t *testing.T) {
	ctx := context.Background()
	s := New()
	p := newProduct(t, s, "Bagel")

	tx, err := s.Begin(ctx)
	require.NoError(t, err)
	r := domain.NewReceipt(time.Now())
	require.NoError(t, tx.CreateReceipt(ctx, r))
	sell, err := domain.NewSell(r.ID, p, decimal.NewFromInt(2), p.DefaultPrice)
	require.NoError(t, err)
	require.NoError(t, tx.CreateSell(ctx, sell))
	require.NoError(t, tx.Commit(ctx))
	require.NoError(t, tx.Rollback(ctx))

	stored, err := s.Receipt(ctx, r.ID)
	require.NoError(t, err)
	require.Len(t, stored.Sells, 1)
	assert.Equal(t, "2", stored.Sells[0].Quantity.String())
	assert.ErrorIs(t, s.DeleteProduct(ctx, p.ID), domain.ErrIntegrity)
}

func TestCreateSellIntegrity(t *testing.T) {
	ctx := context.Background()
	s := New()
	p := newProduct(t, s, "Bagel")

	tx, err := s.Begin(ctx)
	require.NoError(t, err)
	defer tx.Rollback(ctx)

	orphan, err := domain.NewSell(domain.NewReceipt(time.Now()).ID, p, decimal.NewFromInt(1), p.DefaultPrice)
	require.NoError(t, err)
	assert.ErrorIs(t, tx.CreateSell(ctx, orphan), domain.ErrIntegrity)

	r := domain.NewReceipt(time.Now())
	require.NoError(t, tx.CreateReceipt(ctx, r))
	require.NoError(t, s.DeleteProduct(ctx, p.ID))
	sell, err := domain.NewSell(r.ID, p, decimal.NewFromInt(1), p.DefaultPrice)
	require.NoError(t, err)
	assert.ErrorIs(t, tx.CreateSell(ctx, sell), domain.ErrIntegrity)
}

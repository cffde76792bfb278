package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/palazzem/cash-register/internal/core/domain"
	"github.com/palazzem/cash-register/internal/core/receipts"
	"github.com/shopspring/decimal"
)

type ReceiptRepository struct {
	db DB
}

func NewReceiptRepository(db DB) *ReceiptRepository {
	return &ReceiptRepository{db: db}
}

// Begin opens a transaction scope for a receipt and its sells.
func (r *ReceiptRepository) Begin(ctx context.Context) (receipts.Tx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	return &receiptTx{tx: tx}, nil
}

// Receipt loads a receipt with its sells in insertion order.
func (r *ReceiptRepository) Receipt(ctx context.Context, id uuid.UUID) (*domain.Receipt, error) {
	receipt := &domain.Receipt{}
	err := r.db.QueryRow(ctx, `SELECT id, date FROM receipts WHERE id = $1`, id).Scan(&receipt.ID, &receipt.Date)
	if err != nil {
		return nil, classify(err, "get receipt")
	}
	receipt.Date = receipt.Date.UTC()

	rows, err := r.db.Query(ctx, `
		SELECT s.id, s.quantity, s.price, s.price_currency,
		       p.id, p.name, p.default_price, p.default_price_currency, p.icon, p.created_at
		FROM sells s
		JOIN products p ON p.id = s.product_id
		WHERE s.receipt_id = $1
		ORDER BY s.created_at, s.id`, id)
	if err != nil {
		return nil, classify(err, "get sells")
	}
	defer rows.Close()

	for rows.Next() {
		var (
			sell      domain.Sell
			price     decimal.Decimal
			currency  string
			pPrice    decimal.Decimal
			pCurrency string
			createdAt time.Time
		)
		err := rows.Scan(&sell.ID, &sell.Quantity, &price, &currency,
			&sell.Product.ID, &sell.Product.Name, &pPrice, &pCurrency, &sell.Product.Icon, &createdAt)
		if err != nil {
			return nil, classify(err, "scan sell")
		}
		sell.ReceiptID = receipt.ID
		sell.Price = domain.NewMoney(price, domain.Currency(currency))
		sell.Product.DefaultPrice = domain.NewMoney(pPrice, domain.Currency(pCurrency))
		sell.Product.CreatedAt = createdAt.UTC()
		receipt.Sells = append(receipt.Sells, sell)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(err, "get sells")
	}
	return receipt, nil
}

// ReceiptIDs lists receipts dated in [from, to), oldest first.
func (r *ReceiptRepository) ReceiptIDs(ctx context.Context, from, to time.Time) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id FROM receipts
		WHERE date >= $1 AND date < $2
		ORDER BY date`, from, to)
	if err != nil {
		return nil, classify(err, "list receipts")
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, classify(err, "scan receipt id")
		}
		ids = append(ids, id)
	}
	return ids, classify(rows.Err(), "list receipts")
}

type receiptTx struct {
	tx pgx.Tx
}

func (t *receiptTx) CreateReceipt(ctx context.Context, r *domain.Receipt) error {
	_, err := t.tx.Exec(ctx, `INSERT INTO receipts (id, date) VALUES ($1, $2)`, r.ID, r.Date)
	return classify(err, "create receipt")
}

func (t *receiptTx) CreateSell(ctx context.Context, s *domain.Sell) error {
	_, err := t.tx.Exec(ctx, `
		INSERT INTO sells (id, receipt_id, product_id, quantity, price, price_currency)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		s.ID, s.ReceiptID, s.Product.ID, s.Quantity, s.Price.Amount, string(s.Price.Currency))
	return classify(err, "create sell")
}

func (t *receiptTx) Commit(ctx context.Context) error {
	if err := t.tx.Commit(ctx); err != nil {
		return classify(err, "commit")
	}
	return nil
}

func (t *receiptTx) Rollback(ctx context.Context) error {
	err := t.tx.Rollback(ctx)
	if errors.Is(err, pgx.ErrTxClosed) {
		return nil
	}
	return err
}

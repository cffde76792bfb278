package storage

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/palazzem/cash-register/internal/core/domain"
	"github.com/shopspring/decimal"
)

type ProductRepository struct {
	db DB
}

func NewProductRepository(db DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// CreateProduct inserts p; a name that already exists yields domain.ErrDuplicateProduct.
func (r *ProductRepository) CreateProduct(ctx context.Context, p *domain.Product) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO products (id, name, default_price, default_price_currency, icon, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		p.ID, p.Name, p.DefaultPrice.Amount, string(p.DefaultPrice.Currency), p.Icon, p.CreatedAt)
	return classify(err, "create product")
}

func (r *ProductRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, default_price, default_price_currency, icon, created_at
		FROM products
		ORDER BY name`)
	if err != nil {
		return nil, classify(err, "list products")
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, classify(err, "scan product")
		}
		products = append(products, p)
	}
	return products, classify(rows.Err(), "list products")
}

// ProductsByID resolves ids in one query. Unknown ids are left out of the map.
func (r *ProductRepository) ProductsByID(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.Product, error) {
	out := make(map[uuid.UUID]domain.Product, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := r.db.Query(ctx, `
		SELECT id, name, default_price, default_price_currency, icon, created_at
		FROM products
		WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, classify(err, "products by id")
	}
	defer rows.Close()

	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, classify(err, "scan product")
		}
		out[p.ID] = p
	}
	return out, classify(rows.Err(), "products by id")
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProduct(row scanner) (domain.Product, error) {
	var (
		p         domain.Product
		price     decimal.Decimal
		currency  string
		createdAt time.Time
	)
	if err := row.Scan(&p.ID, &p.Name, &price, &currency, &p.Icon, &createdAt); err != nil {
		return domain.Product{}, err
	}
	p.DefaultPrice = domain.NewMoney(price, domain.Currency(currency))
	p.CreatedAt = createdAt.UTC()
	return p, nil
}

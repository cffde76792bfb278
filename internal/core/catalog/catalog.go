// Package catalog manages the products that can be sold through the register.
package catalog

import (
	"context"

	"github.com/palazzem/cash-register/internal/core/domain"
	logx "github.com/palazzem/cash-register/internal/pkg/logger"
	"github.com/shopspring/decimal"
)

type Repository interface {
	CreateProduct(ctx context.Context, p *domain.Product) error
	ListProducts(ctx context.Context) ([]domain.Product, error)
}

type Service struct {
	repo     Repository
	currency domain.Currency
}

// NewService prices every new product in currency.
func NewService(repo Repository, currency domain.Currency) *Service {
	return &Service{repo: repo, currency: currency}
}

func (s *Service) Create(ctx context.Context, name string, defaultPrice decimal.Decimal, icon *string) (*domain.Product, error) {
	p, err := domain.NewProduct(name, domain.NewMoney(domain.Quantize(defaultPrice), s.currency), icon)
	if err != nil {
		return nil, err
	}
	if err := s.repo.CreateProduct(ctx, p); err != nil {
		return nil, err
	}
	logx.Info().Str("product_id", p.ID.String()).Str("name", p.Name).Msg("product created")
	return p, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Product, error) {
	return s.repo.ListProducts(ctx)
}

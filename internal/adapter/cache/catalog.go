// Package cache keeps catalog lookups out of the database on the hot path
// of every receipt submission.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/palazzem/cash-register/internal/core/domain"
	"github.com/palazzem/cash-register/internal/core/errx"
	"github.com/palazzem/cash-register/internal/core/receipts"
	logx "github.com/palazzem/cash-register/internal/pkg/logger"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

// Catalog is a read-through cache in front of another catalog. Products are
// never updated in place, so entries only expire.
type Catalog struct {
	rdb  redis.Cmdable
	next receipts.Catalog
	ttl  time.Duration
}

func NewCatalog(rdb redis.Cmdable, next receipts.Catalog, ttl time.Duration) *Catalog {
	return &Catalog{rdb: rdb, next: next, ttl: ttl}
}

type entry struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	DefaultPrice string    `json:"default_price"`
	Currency     string    `json:"currency"`
	Icon         *string   `json:"icon,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

func (c *Catalog) productKey(id uuid.UUID) string {
	return fmt.Sprintf("catalog:product:%s", id)
}

func (c *Catalog) ProductsByID(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.Product, error) {
	out := make(map[uuid.UUID]domain.Product, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = c.productKey(id)
	}

	vals, err := c.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		// a cache outage must not block sales
		logx.Warn().Err(errx.WrapRedis(err)).Msg("catalog cache unavailable, reading through")
		return c.next.ProductsByID(ctx, ids)
	}

	var misses []uuid.UUID
	for i, v := range vals {
		p, ok := decode(v)
		if !ok {
			misses = append(misses, ids[i])
			continue
		}
		out[p.ID] = p
	}
	if len(misses) == 0 {
		return out, nil
	}

	found, err := c.next.ProductsByID(ctx, misses)
	if err != nil {
		return nil, err
	}
	c.store(ctx, found)
	for id, p := range found {
		out[id] = p
	}
	return out, nil
}

func (c *Catalog) store(ctx context.Context, products map[uuid.UUID]domain.Product) {
	if len(products) == 0 {
		return
	}
	pipe := c.rdb.Pipeline()
	for id, p := range products {
		b, err := json.Marshal(entry{
			ID:           p.ID,
			Name:         p.Name,
			DefaultPrice: p.DefaultPrice.Amount.String(),
			Currency:     string(p.DefaultPrice.Currency),
			Icon:         p.Icon,
			CreatedAt:    p.CreatedAt,
		})
		if err != nil {
			logx.Error().Err(err).Str("product_id", id.String()).Msg("failed to marshal product")
			continue
		}
		pipe.Set(ctx, c.productKey(id), b, c.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		logx.Warn().Err(errx.WrapRedis(err)).Int("products", len(products)).Msg("failed to fill catalog cache")
	}
}

func decode(v any) (domain.Product, bool) {
	s, ok := v.(string)
	if !ok {
		return domain.Product{}, false
	}
	var e entry
	if err := json.Unmarshal([]byte(s), &e); err != nil {
		return domain.Product{}, false
	}
	price, err := decimal.NewFromString(e.DefaultPrice)
	if err != nil {
		return domain.Product{}, false
	}
	return domain.Product{
		ID:           e.ID,
		Name:         e.Name,
		DefaultPrice: domain.NewMoney(price, domain.Currency(e.Currency)),
		Icon:         e.Icon,
		CreatedAt:    e.CreatedAt,
	}, true
}

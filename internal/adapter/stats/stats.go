// Package stats exports sales as Prometheus counters, labelled by product.
package stats

import (
	"context"
	"fmt"
	"strings"

	"github.com/gosimple/slug"
	"github.com/palazzem/cash-register/internal/core/domain"
	"github.com/palazzem/cash-register/internal/core/push"
	logx "github.com/palazzem/cash-register/internal/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
)

const Name = "stats"

// Slugify returns a slug using underscores instead of dashes, safe to use in
// metric names and label values.
func Slugify(s string) string {
	return strings.ReplaceAll(slug.Make(s), "-", "_")
}

type Adapter struct {
	receipts prometheus.Counter
	items    *prometheus.CounterVec
	amount   *prometheus.CounterVec
}

// New registers the sales counters of registerName on reg. The metrics are
// named shop_<register>_receipt_count, shop_<register>_receipt_items_count
// and shop_<register>_receipt_amount.
func New(registerName string, reg prometheus.Registerer) (*Adapter, error) {
	subsystem := Slugify(registerName)
	a := &Adapter{
		receipts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "shop",
			Subsystem: subsystem,
			Name:      "receipt_count",
			Help:      "Number of receipts pushed.",
		}),
		items: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "shop",
			Subsystem: subsystem,
			Name:      "receipt_items_count",
			Help:      "Quantity sold per product.",
		}, []string{"product"}),
		amount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "shop",
			Subsystem: subsystem,
			Name:      "receipt_amount",
			Help:      "Amount sold per product.",
		}, []string{"product"}),
	}
	for _, c := range []prometheus.Collector{a.receipts, a.items, a.amount} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register stats collector: %w", err)
		}
	}
	return a, nil
}

func (a *Adapter) Name() string {
	return Name
}

type sample struct {
	product  string
	quantity float64
	amount   float64
}

// PushReceipt counts the receipt and adds every Sell to the per product
// counters. Nothing is recorded when a value cannot be counted.
func (a *Adapter) PushReceipt(_ context.Context, receipt *domain.Receipt) error {
	samples := make([]sample, 0, len(receipt.Sells))
	for _, s := range receipt.Sells {
		total := s.Price.Amount.Mul(s.Quantity)
		if s.Quantity.IsNegative() || total.IsNegative() {
			return push.Failed(Name, fmt.Errorf("negative value for %q", s.Product.Name))
		}
		samples = append(samples, sample{
			product:  Slugify(s.Product.Name),
			quantity: s.Quantity.InexactFloat64(),
			amount:   total.InexactFloat64(),
		})
	}

	a.receipts.Inc()
	for _, s := range samples {
		a.items.WithLabelValues(s.product).Add(s.quantity)
		a.amount.WithLabelValues(s.product).Add(s.amount)
	}
	logx.Debug().Int("sells", len(samples)).Msg("pushed metrics for sold items")
	return nil
}

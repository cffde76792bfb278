// Package push defines the contract between the register and the external
// services notified after every sale (cash register printers, metric sinks,
// webhooks, event streams).
package push

import (
	"context"

	"github.com/palazzem/cash-register/internal/core/domain"
)

// Row is the adapter-neutral description of one sold item. Quantity is empty
// when a single unit was sold.
type Row struct {
	Description string `json:"description"`
	Price       string `json:"price"`
	Quantity    string `json:"quantity,omitempty"`
}

type Adapter interface {
	Name() string
}

// RowAdapter receives the converted rows of a receipt.
type RowAdapter interface {
	Adapter
	PushRows(ctx context.Context, rows []Row) error
}

// AggregateAdapter receives the whole Receipt, Sells and Products included.
type AggregateAdapter interface {
	Adapter
	PushReceipt(ctx context.Context, receipt *domain.Receipt) error
}

package push

import (
	"context"
	"errors"
	"fmt"

	"github.com/palazzem/cash-register/internal/core/domain"
	logx "github.com/palazzem/cash-register/internal/pkg/logger"
)

var (
	ErrUnknownAdapter   = errors.New("adapter implements neither PushRows nor PushReceipt")
	ErrAmbiguousAdapter = errors.New("adapter implements both PushRows and PushReceipt")
)

// Registry holds the adapters notified after every sale, in registration
// order. It is built once at startup and never mutated afterwards.
type Registry struct {
	adapters []Adapter
}

func NewRegistry(adapters ...Adapter) (*Registry, error) {
	for _, a := range adapters {
		_, rows := a.(RowAdapter)
		_, aggregate := a.(AggregateAdapter)
		switch {
		case rows && aggregate:
			return nil, fmt.Errorf("%s: %w", a.Name(), ErrAmbiguousAdapter)
		case !rows && !aggregate:
			return nil, fmt.Errorf("%s: %w", a.Name(), ErrUnknownAdapter)
		}
	}
	return &Registry{adapters: append([]Adapter(nil), adapters...)}, nil
}

func (r *Registry) Adapters() []Adapter {
	return append([]Adapter(nil), r.adapters...)
}

func (r *Registry) Len() int {
	return len(r.adapters)
}

// Push delivers rows or the receipt to every adapter, one after the other.
// The first failure stops the dispatch and is returned as *Error.
func (r *Registry) Push(ctx context.Context, rows []Row, receipt *domain.Receipt) error {
	for _, a := range r.adapters {
		var err error
		switch adapter := a.(type) {
		case RowAdapter:
			err = adapter.PushRows(ctx, rows)
		case AggregateAdapter:
			err = adapter.PushReceipt(ctx, receipt)
		}
		if err != nil {
			pushErr := AsError(a.Name(), err)
			logx.Error().Err(err).
				Str("adapter", a.Name()).
				Str("receipt_id", receipt.ID.String()).
				Msg("push failed")
			return pushErr
		}
		logx.Debug().Str("adapter", a.Name()).Str("receipt_id", receipt.ID.String()).Msg("push completed")
	}
	return nil
}

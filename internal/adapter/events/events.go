// Package events publishes every sale on a Kafka topic.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/palazzem/cash-register/internal/core/domain"
	"github.com/palazzem/cash-register/internal/core/push"
	"github.com/palazzem/cash-register/internal/core/receipts"
	"github.com/palazzem/cash-register/internal/pkg/kafka"
)

const (
	Name                = "events"
	EventReceiptCreated = "receipt.created"
)

type Event struct {
	EventID   string               `json:"event_id"`
	ReceiptID string               `json:"receipt_id"`
	CreatedAt time.Time            `json:"created_at"`
	Type      string               `json:"type"`
	Payload   receipts.ReceiptView `json:"payload"`
}

// Adapter writes one message per receipt, keyed by receipt id.
type Adapter struct {
	writer kafka.Writer
}

func New(writer kafka.Writer) *Adapter {
	return &Adapter{writer: writer}
}

func (a *Adapter) Name() string {
	return Name
}

func (a *Adapter) PushReceipt(ctx context.Context, receipt *domain.Receipt) error {
	event := Event{
		EventID:   uuid.NewString(),
		ReceiptID: receipt.ID.String(),
		CreatedAt: time.Now().UTC(),
		Type:      EventReceiptCreated,
		Payload:   receipts.View(receipt),
	}
	if err := kafka.PublishJSON(ctx, a.writer, event.ReceiptID, event); err != nil {
		return push.Failed(Name, err)
	}
	return nil
}

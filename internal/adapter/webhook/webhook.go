// Package webhook notifies an HTTP endpoint of every sale.
package webhook

import (
	"context"
	"net/http"
	"time"

	"github.com/palazzem/cash-register/internal/core/domain"
	"github.com/palazzem/cash-register/internal/core/notifications"
	"github.com/palazzem/cash-register/internal/core/push"
	"github.com/palazzem/cash-register/internal/core/receipts"
)

const Name = "webhook"

type Config struct {
	URL     string
	Secret  string
	Timeout time.Duration
}

type Adapter struct {
	cfg    Config
	client *http.Client
}

func New(cfg Config) *Adapter {
	return &Adapter{cfg: cfg, client: &http.Client{Timeout: cfg.Timeout}}
}

func (a *Adapter) Name() string {
	return Name
}

// Event is the body posted for every receipt.
type Event struct {
	Type    string               `json:"type"`
	SentAt  time.Time            `json:"sent_at"`
	Receipt receipts.ReceiptView `json:"receipt"`
}

func (a *Adapter) PushReceipt(ctx context.Context, receipt *domain.Receipt) error {
	event := Event{
		Type:    "receipt.created",
		SentAt:  time.Now().UTC(),
		Receipt: receipts.View(receipt),
	}
	if err := notifications.SendWebhook(ctx, a.client, a.cfg.URL, event, a.cfg.Secret); err != nil {
		return push.Failed(Name, err)
	}
	return nil
}

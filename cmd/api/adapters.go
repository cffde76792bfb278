package main

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/palazzem/cash-register/internal/adapter/cashregister"
	"github.com/palazzem/cash-register/internal/adapter/events"
	"github.com/palazzem/cash-register/internal/adapter/stats"
	"github.com/palazzem/cash-register/internal/adapter/webhook"
	"github.com/palazzem/cash-register/internal/core/config"
	"github.com/palazzem/cash-register/internal/core/push"
	"github.com/palazzem/cash-register/internal/pkg/kafka"
)

// buildRegistry instantiates the adapters listed in PUSH_ADAPTERS once, at
// startup. The returned closers release their connections on shutdown.
func buildRegistry(cfg *config.Config, reg prometheus.Registerer) (*push.Registry, []io.Closer, error) {
	var (
		adapters []push.Adapter
		closers  []io.Closer
	)
	for _, name := range cfg.PushAdapters {
		switch name {
		case config.AdapterCashRegister:
			adapters = append(adapters, cashregister.New(cashregister.Config{
				Port:         cfg.Serial.Port,
				BaudRate:     cfg.Serial.BaudRate,
				Timeout:      cfg.Serial.Timeout,
				RegisterName: cfg.RegisterName,
			}))
		case config.AdapterStats:
			a, err := stats.New(cfg.RegisterName, reg)
			if err != nil {
				return nil, nil, err
			}
			adapters = append(adapters, a)
		case config.AdapterWebhook:
			adapters = append(adapters, webhook.New(webhook.Config{
				URL:     cfg.Webhook.URL,
				Secret:  cfg.Webhook.Secret,
				Timeout: cfg.Webhook.Timeout,
			}))
		case config.AdapterEvents:
			client := kafka.NewClient(cfg.Kafka.Brokers)
			if !client.Enabled() {
				return nil, nil, fmt.Errorf("%s adapter: no kafka brokers configured", name)
			}
			writer := client.NewWriter(cfg.Kafka.Topic, cfg.Kafka.WriteTimeout)
			closers = append(closers, writer)
			adapters = append(adapters, events.New(writer))
		default:
			return nil, nil, fmt.Errorf("unknown push adapter %q", name)
		}
	}

	registry, err := push.NewRegistry(adapters...)
	if err != nil {
		return nil, nil, err
	}
	return registry, closers, nil
}

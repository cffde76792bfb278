package main

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palazzem/cash-register/internal/core/config"
)

func TestBuildRegistryKeepsOrder(t *testing.T) {
	cfg := &config.Config{
		RegisterName: "Shop",
		PushAdapters: []string{"webhook", "cash_register", "stats", "events"},
		Webhook:      config.WebhookConfig{URL: "http://example.test"},
		Kafka:        config.KafkaConfig{Brokers: "localhost:9092", Topic: "register.receipts"},
	}

	registry, closers, err := buildRegistry(cfg, prometheus.NewRegistry())
	require.NoError(t, err)
	assert.Len(t, closers, 1)

	var names []string
	for _, a := range registry.Adapters() {
		names = append(names, a.Name())
	}
	assert.Equal(t, []string{"webhook", "cash_register", "stats", "events"}, names)
	for _, c := range closers {
		assert.NoError(t, c.Close())
	}
}

func TestBuildRegistryUnknownAdapter(t *testing.T) {
	_, _, err := buildRegistry(&config.Config{PushAdapters: []string{"datadog"}}, prometheus.NewRegistry())
	assert.Error(t, err)
}

func TestBuildRegistryEventsWithoutBrokers(t *testing.T) {
	cfg := &config.Config{
		PushAdapters: []string{"events"},
		Kafka:        config.KafkaConfig{Brokers: " , ", Topic: "register.receipts"},
	}
	_, _, err := buildRegistry(cfg, prometheus.NewRegistry())
	assert.ErrorContains(t, err, "no kafka brokers")
}

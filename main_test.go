package main

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"jnmoveis/internal/config"
	"jnmoveis/internal/logging"
)

func TestServe_StopsOnCancel(t *testing.T) {
	cfg := config.Default()
	cfg.Store.Driver = config.DriverMemory
	cfg.HTTP.Addr = "127.0.0.1:0"

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serve(ctx, cfg, logging.Discard()) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestServe_InvalidAddress(t *testing.T) {
	cfg := config.Default()
	cfg.Store.Driver = config.DriverMemory
	cfg.HTTP.Addr = "256.0.0.1:bad"

	err := serve(context.Background(), cfg, logging.Discard())

	assert.Error(t, err)
}

func TestDebugLevel(t *testing.T) {
	assert.True(t, debugLevel("DEBUG"))
	assert.False(t, debugLevel("info"))
	assert.False(t, debugLevel(""))
}

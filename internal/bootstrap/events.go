package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/kestrelgames/emberrealm/internal/config"
	"github.com/kestrelgames/emberrealm/internal/event"
	"github.com/kestrelgames/emberrealm/internal/sse"
)

// InitializeEventSystem creates the in-memory event bus and the resilient
// publisher that battle completion events go through. Config zero values
// fall back to package defaults.
func InitializeEventSystem(cfg *config.Config) (event.Bus, *event.ResilientPublisher, error) {
	eventBus := event.NewMemoryBus()

	maxRetries := cfg.EventMaxRetries
	if maxRetries == 0 {
		maxRetries = EventDefaultMaxRetries
	}

	retryDelay := cfg.EventRetryDelay
	if retryDelay == 0 {
		retryDelay = EventDefaultRetryDelay
	}

	deadLetterPath := cfg.EventDeadLetterPath
	if err := os.MkdirAll(filepath.Dir(deadLetterPath), DirPermission); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", LogMsgFailedCreateDeadLetterDir, err)
	}

	publisher := event.NewResilientPublisher(eventBus, event.ResilientConfig{
		MaxRetries:     maxRetries,
		RetryDelay:     retryDelay,
		DeadLetterPath: deadLetterPath,
	})

	slog.Info(LogMsgEventSystemInitialized,
		"max_retries", maxRetries,
		"retry_delay", retryDelay,
		"deadletter_path", deadLetterPath)

	return eventBus, publisher, nil
}

// InitializeSSEHub starts the SSE hub and bridges battle completion events
// from the bus onto it so connected clients see results in real time.
func InitializeSSEHub(eventBus event.Bus) *sse.Hub {
	hub := sse.NewHub()
	hub.Start()

	eventBus.Subscribe(event.BattleCompleted, func(ctx context.Context, e event.Event) error {
		hub.Broadcast(sse.EventTypeBattleCompleted, e.Payload)
		return nil
	})

	slog.Info(LogMsgSSEHubStarted)
	return hub
}

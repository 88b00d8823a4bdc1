package events

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

type Event interface {
	EventType() string
	EventID() string
	OccurredAt() time.Time
	Payload() interface{}
}

type BaseEvent struct {
	ID        string                 `json:"id"`
	Type      string                 `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Data      map[string]interface{} `json:"data"`
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) EventID() string {
	return e.ID
}

func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

func (e BaseEvent) Payload() interface{} {
	return e.Data
}

type Handler func(ctx context.Context, event Event) error

// Publisher is what the ledger services need from the bus: saves are
// announced inline, imports in the background.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	PublishSync(ctx context.Context, event Event) error
}

// EventBus fans ledger events out to in-process subscribers. Handlers run
// inline with PublishSync, or on their own goroutine with Publish; Wait
// drains the latter before the process exits.
type EventBus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	pending  sync.WaitGroup
	logger   *slog.Logger
}

func NewEventBus(logger *slog.Logger) *EventBus {
	return &EventBus{
		handlers: make(map[string][]Handler),
		logger:   logger,
	}
}

// Subscribe registers handler for every listed event type.
func (eb *EventBus) Subscribe(handler Handler, eventTypes ...string) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	for _, eventType := range eventTypes {
		eb.handlers[eventType] = append(eb.handlers[eventType], handler)
		eb.logger.Debug("event handler registered",
			"event_type", eventType,
			"total_handlers", len(eb.handlers[eventType]))
	}
}

func (eb *EventBus) subscribers(event Event) []Handler {
	eb.mu.RLock()
	defer eb.mu.RUnlock()

	handlers := eb.handlers[event.EventType()]
	if len(handlers) == 0 {
		eb.logger.Debug("no handlers for event type", "event_type", event.EventType())
	}
	return handlers
}

// Publish hands the event to every handler on its own goroutine and
// returns at once. Handlers keep the context values but not its
// cancellation, so a finished request does not cut them short.
func (eb *EventBus) Publish(ctx context.Context, event Event) error {
	ctx = context.WithoutCancel(ctx)
	handlers := eb.subscribers(event)
	for _, handler := range handlers {
		eb.pending.Add(1)
		go func(h Handler) {
			defer eb.pending.Done()
			if err := h(ctx, event); err != nil {
				eb.handlerFailed(event, err)
			}
		}(handler)
	}
	return nil
}

// PublishSync runs every handler before returning. A failing handler does
// not keep the others from seeing the event; all failures are joined.
func (eb *EventBus) PublishSync(ctx context.Context, event Event) error {
	var errs []error
	for _, handler := range eb.subscribers(event) {
		if err := handler(ctx, event); err != nil {
			eb.handlerFailed(event, err)
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("handlers failed for event %s: %w", event.EventType(), errors.Join(errs...))
	}
	return nil
}

func (eb *EventBus) handlerFailed(event Event, err error) {
	eb.logger.Error("event handler failed",
		"event_type", event.EventType(),
		"event_id", event.EventID(),
		"error", err)
}

// Wait blocks until the handlers started by Publish have returned.
func (eb *EventBus) Wait() {
	eb.pending.Wait()
}

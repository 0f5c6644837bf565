// Package integration holds cross-package tests that wire real
// infrastructure components together without a database.
package integration

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gkt/backend/internal/infrastructure/cache"
	"github.com/gkt/backend/internal/infrastructure/event"
	"github.com/gkt/backend/tests/testutil"
)

// Events published on the bus reach every subscribed handler.
func TestEventBusFanOut(t *testing.T) {
	bus := event.NewInMemoryEventBus(zap.NewNop())
	require.NoError(t, bus.Start(context.Background()))
	defer func() { _ = bus.Stop(context.Background()) }()

	first := testutil.NewMockEventHandler("DealApproved")
	second := testutil.NewMockEventHandler("DealApproved")
	bus.Subscribe(first)
	bus.Subscribe(second)

	actorID := uuid.New()
	err := bus.Publish(context.Background(), testutil.NewTestEvent("DealApproved", actorID))
	require.NoError(t, err)

	assert.Equal(t, 1, first.HandledCount())
	assert.Equal(t, 1, second.HandledCount())
}

// A failing handler must not prevent delivery to the remaining handlers.
func TestEventBusContinuesAfterHandlerError(t *testing.T) {
	bus := event.NewInMemoryEventBus(zap.NewNop())
	require.NoError(t, bus.Start(context.Background()))
	defer func() { _ = bus.Stop(context.Background()) }()

	failing := testutil.NewMockEventHandler("InvoiceCreated")
	failing.SetError(assert.AnError)
	healthy := testutil.NewMockEventHandler("InvoiceCreated")
	bus.Subscribe(failing)
	bus.Subscribe(healthy)

	err := bus.Publish(context.Background(), testutil.NewTestEvent("InvoiceCreated", uuid.New()))
	require.NoError(t, err)

	assert.Equal(t, 1, failing.HandledCount())
	assert.Equal(t, 1, healthy.HandledCount())
}

// Cascade handlers see each event exactly once even when the same event
// arrives through both the inline publish and the outbox republish.
func TestIdempotentHandlerDeduplicatesAcrossDeliveryPaths(t *testing.T) {
	bus := event.NewInMemoryEventBus(zap.NewNop())
	require.NoError(t, bus.Start(context.Background()))
	defer func() { _ = bus.Stop(context.Background()) }()

	store := cache.NewInMemoryIdempotencyStore()
	defer func() { _ = store.Close() }()
	inner := testutil.NewMockEventHandler("PayableCreated")
	metrics := &event.IdempotencyMetrics{}
	bus.Subscribe(event.NewIdempotentHandler(inner, store, zap.NewNop(),
		event.WithIdempotencyMetrics(metrics)))

	evt := testutil.NewTestEvent("PayableCreated", uuid.New())

	// Inline delivery followed by the outbox processor replaying the
	// same event.
	require.NoError(t, bus.Publish(context.Background(), evt))
	require.NoError(t, bus.Publish(context.Background(), evt))

	assert.Equal(t, 1, inner.HandledCount())
	stats := metrics.Stats()
	assert.Equal(t, int64(1), stats.EventsProcessed)
	assert.Equal(t, int64(1), stats.EventsDuplicate)
}

// Distinct events with distinct IDs all get through the idempotency wrapper.
func TestIdempotentHandlerPassesDistinctEvents(t *testing.T) {
	bus := event.NewInMemoryEventBus(zap.NewNop())
	require.NoError(t, bus.Start(context.Background()))
	defer func() { _ = bus.Stop(context.Background()) }()

	store := cache.NewInMemoryIdempotencyStore()
	defer func() { _ = store.Close() }()
	inner := testutil.NewMockEventHandler("ReceivableCreated")
	bus.Subscribe(event.NewIdempotentHandler(inner, store, zap.NewNop()))

	actorID := uuid.New()
	for i := 0; i < 3; i++ {
		require.NoError(t, bus.Publish(context.Background(),
			testutil.NewTestEvent("ReceivableCreated", actorID)))
	}

	ok := testutil.WaitForEventCount(t, inner, 3, time.Second)
	assert.True(t, ok)
}

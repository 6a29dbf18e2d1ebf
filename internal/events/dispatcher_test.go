package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestPublishInvokesSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()

	var seen []EventType
	d.Subscribe(EventClothCreated, func(_ context.Context, e Event) error {
		seen = append(seen, e.Type)
		return nil
	})
	d.Subscribe(EventClothDeleted, func(_ context.Context, e Event) error {
		seen = append(seen, e.Type)
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), NewEvent(EventClothCreated, nil)))
	assert.Equal(t, []EventType{EventClothCreated}, seen)
}

func TestPublishReportsHandlerFailures(t *testing.T) {
	d := NewInMemoryDispatcher()
	handlerErr := errors.New("sink unavailable")

	var delivered int
	d.Subscribe(EventClothCreated, func(_ context.Context, _ Event) error {
		return handlerErr
	})
	d.Subscribe(EventClothCreated, func(_ context.Context, _ Event) error {
		delivered++
		return nil
	})

	err := d.Publish(context.Background(), NewEvent(EventClothCreated, nil))
	// A failing handler must not block later ones, but its failure surfaces.
	assert.ErrorIs(t, err, handlerErr)
	assert.Equal(t, 1, delivered)
}

func TestRegisterAuditLogger(t *testing.T) {
	d := NewInMemoryDispatcher()
	RegisterAuditLogger(d, zap.NewNop())

	err := d.Publish(context.Background(), NewEvent(EventUserRegistered, map[string]any{
		"email": "alice@example.com",
	}))
	assert.NoError(t, err)
}

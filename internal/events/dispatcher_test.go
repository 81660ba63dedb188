package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishReachesSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()

	var received []Event
	d.Subscribe(EventRoleRequestSubmitted, func(_ context.Context, ev Event) error {
		received = append(received, ev)
		return nil
	})

	err := d.Publish(context.Background(), Event{ID: "ev-1", Type: EventRoleRequestSubmitted, RequestID: "req-1"})
	require.NoError(t, err)
	require.Len(t, received, 1)
	assert.Equal(t, "req-1", received[0].RequestID)
}

func TestPublishIgnoresUnrelatedEventTypes(t *testing.T) {
	d := NewInMemoryDispatcher()

	called := false
	d.Subscribe(EventRoleRequestReviewed, func(_ context.Context, _ Event) error {
		called = true
		return nil
	})

	err := d.Publish(context.Background(), Event{Type: EventRoleRequestSubmitted})
	require.NoError(t, err)
	assert.False(t, called)
}

func TestFailingHandlerDoesNotBlockOthers(t *testing.T) {
	d := NewInMemoryDispatcher()

	d.Subscribe(EventRoleRequestSubmitted, func(_ context.Context, _ Event) error {
		return errors.New("subscriber failure")
	})
	secondRan := false
	d.Subscribe(EventRoleRequestSubmitted, func(_ context.Context, _ Event) error {
		secondRan = true
		return nil
	})

	err := d.Publish(context.Background(), Event{Type: EventRoleRequestSubmitted})
	assert.NoError(t, err)
	assert.True(t, secondRan)
}

func TestPublishWithoutSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()

	err := d.Publish(context.Background(), Event{Type: EventRoleRequestReviewed})
	assert.NoError(t, err)
}

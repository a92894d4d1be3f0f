package audit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueue_Full(t *testing.T) {
	q := NewQueue(1)
	require.NoError(t, q.Append(context.Background(), Event{Type: EventDeclarationCreated}))
	assert.ErrorIs(t, q.Append(context.Background(), Event{Type: EventDeclarationCreated}), ErrQueueFull)
}

func TestWorker_Run(t *testing.T) {
	q := NewQueue(4)
	store := NewInMemoryStore()
	w := NewWorker(store, q, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	require.NoError(t, q.Append(ctx, Event{Type: EventDeclarationCreated, DeclarationID: "a"}))
	require.NoError(t, q.Append(ctx, Event{Type: EventDeclarationRevised, DeclarationID: "a"}))

	assert.Eventually(t, func() bool {
		events, _ := store.ListByDeclaration(ctx, "a")
		return len(events) == 2
	}, time.Second, 5*time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestWorker_SurvivesStoreErrors(t *testing.T) {
	q := NewQueue(4)
	w := NewWorker(failingStore{err: errors.New("broker down")}, q, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	require.NoError(t, q.Append(ctx, Event{Type: EventDeclarationCreated}))
	require.NoError(t, q.Append(ctx, Event{Type: EventDeclarationCreated}))
	assert.Eventually(t, func() bool { return len(q.events) == 0 }, time.Second, 5*time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

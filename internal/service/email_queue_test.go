package service_test

import (
	"context"
	"testing"
	"time"

	"recruiting-portal-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmailQueue_RetriesUntilDelivered(t *testing.T) {
	sender := &fakeSender{failures: 2}
	q := service.NewEmailQueue(sender, service.QueueOptions{Workers: 1, Size: 4, MaxRetries: 3, Backoff: time.Millisecond})

	assert.True(t, q.Enqueue(service.EmailMessage{To: "ada@example.com", Subject: "hi"}))
	require.NoError(t, q.Close(context.Background()))

	calls, sent := sender.snapshot()
	assert.Equal(t, 3, calls)
	require.Len(t, sent, 1)
	assert.Equal(t, "ada@example.com", sent[0].To)
}

func TestEmailQueue_GivesUpAfterMaxRetries(t *testing.T) {
	sender := &fakeSender{failures: 100}
	q := service.NewEmailQueue(sender, service.QueueOptions{Workers: 2, Size: 4, MaxRetries: 2, Backoff: time.Millisecond})

	q.Enqueue(service.EmailMessage{To: "ada@example.com"})
	require.NoError(t, q.Close(context.Background()))

	calls, sent := sender.snapshot()
	assert.Equal(t, 3, calls)
	assert.Empty(t, sent)
}

type blockingSender struct {
	started chan struct{}
	release chan struct{}
}

func (b *blockingSender) Send(ctx context.Context, msg service.EmailMessage) error {
	b.started <- struct{}{}
	<-b.release
	return nil
}

func TestEmailQueue_EnqueueNeverBlocks(t *testing.T) {
	sender := &blockingSender{started: make(chan struct{}, 4), release: make(chan struct{})}
	q := service.NewEmailQueue(sender, service.QueueOptions{Workers: 1, Size: 1, Backoff: time.Millisecond})

	assert.True(t, q.Enqueue(service.EmailMessage{To: "first@example.com"}))
	<-sender.started
	assert.True(t, q.Enqueue(service.EmailMessage{To: "second@example.com"}))

	done := make(chan bool)
	go func() { done <- q.Enqueue(service.EmailMessage{To: "third@example.com"}) }()
	select {
	case ok := <-done:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("Enqueue blocked on a full queue")
	}

	close(sender.release)
	require.NoError(t, q.Close(context.Background()))
	assert.False(t, q.Enqueue(service.EmailMessage{To: "late@example.com"}))
}

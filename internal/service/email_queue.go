package service

import (
	"context"
	"sync"
	"time"

	"recruiting-portal-backend/internal/logger"
	"recruiting-portal-backend/internal/metrics"
)

const defaultEmailBackoff = 500 * time.Millisecond

type QueueOptions struct {
	Workers    int
	Size       int
	MaxRetries int
	Backoff    time.Duration // base delay; attempt n waits n*n*Backoff
}

// EmailQueue delivers emails on background workers so that a slow or failing
// provider never holds up the request that triggered the message.
type EmailQueue struct {
	sender     EmailSender
	jobs       chan EmailMessage
	maxRetries int
	backoff    time.Duration

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
}

func NewEmailQueue(sender EmailSender, opts QueueOptions) *EmailQueue {
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if opts.Size <= 0 {
		opts.Size = 64
	}
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	}
	if opts.Backoff <= 0 {
		opts.Backoff = defaultEmailBackoff
	}
	ctx, cancel := context.WithCancel(context.Background())
	q := &EmailQueue{
		sender:     sender,
		jobs:       make(chan EmailMessage, opts.Size),
		maxRetries: opts.MaxRetries,
		backoff:    opts.Backoff,
		ctx:        ctx,
		cancel:     cancel,
	}
	for i := 0; i < opts.Workers; i++ {
		q.wg.Add(1)
		go q.worker(i)
	}
	logger.Info("Email queue started", "workers", opts.Workers, "size", opts.Size)
	return q
}

// Enqueue never blocks. It reports false when the message was dropped because
// the queue is full or closed.
func (q *EmailQueue) Enqueue(msg EmailMessage) bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		metrics.NotificationsDispatched.WithLabelValues("email", "dropped").Inc()
		return false
	}
	select {
	case q.jobs <- msg:
		metrics.EmailQueueDepth.Inc()
		return true
	default:
		logger.Warn("Email queue full, dropping message", "to", msg.To, "category", msg.Category)
		metrics.NotificationsDispatched.WithLabelValues("email", "dropped").Inc()
		return false
	}
}

// Close stops accepting messages and waits for the queued ones. When ctx ends
// first, pending retries are abandoned and the remaining messages dropped.
func (q *EmailQueue) Close(ctx context.Context) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return nil
	}
	q.closed = true
	close(q.jobs)
	q.mu.Unlock()

	done := make(chan struct{})
	go func() {
		q.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		q.cancel()
		logger.Info("Email queue drained")
		return nil
	case <-ctx.Done():
		q.cancel()
		<-done
		logger.Warn("Email queue closed before draining", "error", ctx.Err())
		return ctx.Err()
	}
}

func (q *EmailQueue) worker(id int) {
	defer q.wg.Done()
	for msg := range q.jobs {
		metrics.EmailQueueDepth.Dec()
		if q.ctx.Err() != nil {
			metrics.NotificationsDispatched.WithLabelValues("email", "dropped").Inc()
			continue
		}
		q.deliver(id, msg)
	}
}

func (q *EmailQueue) deliver(workerID int, msg EmailMessage) {
	var err error
	for attempt := 0; attempt <= q.maxRetries; attempt++ {
		if attempt > 0 {
			delay := time.Duration(attempt*attempt) * q.backoff
			timer := time.NewTimer(delay)
			select {
			case <-timer.C:
			case <-q.ctx.Done():
				timer.Stop()
				metrics.NotificationsDispatched.WithLabelValues("email", "dropped").Inc()
				return
			}
		}
		if err = q.sender.Send(q.ctx, msg); err == nil {
			metrics.NotificationsDispatched.WithLabelValues("email", "sent").Inc()
			return
		}
		logger.Warn("Email delivery failed", "worker", workerID, "attempt", attempt+1, "to", msg.To, "error", err)
	}
	logger.Error("Giving up on email", "to", msg.To, "category", msg.Category, "error", err)
	metrics.NotificationsDispatched.WithLabelValues("email", "failed").Inc()
}

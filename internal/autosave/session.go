// Package autosave buffers a candidate's edits and writes them to the draft
// store once the candidate stops typing for a quiet period.
package autosave

import (
	"context"
	"errors"
	"sync"
	"time"

	"recruiting-portal-backend/internal/domain"
	"recruiting-portal-backend/internal/logger"
)

var ErrClosed = errors.New("autosave session closed")

// Bounds on the wait between retries after a failed save.
const (
	minRetryDelay = 10 * time.Millisecond
	maxRetryDelay = 30 * time.Second
)

// SaveFunc persists the full current answer set.
type SaveFunc func(ctx context.Context, answers map[string]domain.Answer) error

type Status int

const (
	StatusIdle Status = iota
	StatusPending
	StatusSaved
	StatusSavedLocally // soft failure, will sync on the next flush
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusPending:
		return "pending"
	case StatusSaved:
		return "saved"
	case StatusSavedLocally:
		return "saved locally"
	case StatusFailed:
		return "failed"
	}
	return "unknown"
}

type flushRequest struct {
	ctx   context.Context
	reply chan error
}

// Session owns one edit session. Every Set cancels the pending flush and
// schedules a new one, so only the state after the last edit in a quiet window
// is sent. A failed save is retried on its own, starting one quiet period
// later and backing off. A deferred (soft) save waits for the next edit or
// Flush.
type Session struct {
	save  SaveFunc
	quiet time.Duration

	edits   chan struct{}
	flushes chan flushRequest
	stop    chan struct{}
	done    chan struct{}
	once    sync.Once

	mu       sync.Mutex
	answers  map[string]domain.Answer
	version  uint64
	saved    uint64
	status   Status
	lastErr  error
	finalErr error
}

func NewSession(save SaveFunc, quiet time.Duration, initial map[string]domain.Answer) *Session {
	s := &Session{
		save:    save,
		quiet:   quiet,
		edits:   make(chan struct{}, 1),
		flushes: make(chan flushRequest),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
		answers: make(map[string]domain.Answer, len(initial)),
	}
	for k, v := range initial {
		s.answers[k] = v
	}
	go s.run()
	return s
}

// Set records an edit. It never blocks on the network.
func (s *Session) Set(questionID string, answer domain.Answer) {
	s.mu.Lock()
	s.answers[questionID] = answer
	s.version++
	s.status = StatusPending
	s.mu.Unlock()

	select {
	case s.edits <- struct{}{}:
	default:
	}
}

// Flush saves immediately if there are unsaved edits.
func (s *Session) Flush(ctx context.Context) error {
	req := flushRequest{ctx: ctx, reply: make(chan error, 1)}
	select {
	case s.flushes <- req:
	case <-s.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case err := <-req.reply:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close flushes pending edits and stops the session goroutine.
func (s *Session) Close() error {
	s.once.Do(func() { close(s.stop) })
	<-s.done
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.finalErr
}

func (s *Session) Status() (Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status, s.lastErr
}

// Answers returns a copy of the local answer set, including unsaved edits.
func (s *Session) Answers() map[string]domain.Answer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyAnswers(s.answers)
}

// Dirty reports whether there are edits the server has not accepted yet.
func (s *Session) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version != s.saved
}

func (s *Session) run() {
	defer close(s.done)
	var (
		timer   *time.Timer
		timerC  <-chan time.Time
		backoff time.Duration
	)
	stopTimer := func() {
		if timer != nil {
			timer.Stop()
		}
		timerC = nil
	}
	arm := func(d time.Duration) {
		stopTimer()
		timer = time.NewTimer(d)
		timerC = timer.C
	}
	// a hard failure leaves edits unsaved; retry them without waiting for
	// another edit, doubling the delay up to maxRetryDelay. A submitted draft
	// is frozen, so that failure is final.
	afterFlush := func(err error) {
		if err == nil || errors.Is(err, domain.ErrAlreadySubmitted) {
			backoff = 0
			return
		}
		if backoff == 0 {
			backoff = max(s.quiet, minRetryDelay)
		} else {
			backoff *= 2
		}
		if backoff > maxRetryDelay {
			backoff = maxRetryDelay
		}
		arm(backoff)
	}

	for {
		select {
		case <-s.edits:
			backoff = 0
			arm(s.quiet)
		case <-timerC:
			timerC = nil
			afterFlush(s.flush(context.Background()))
		case req := <-s.flushes:
			stopTimer()
			err := s.flush(req.ctx)
			req.reply <- err
			afterFlush(err)
		case <-s.stop:
			stopTimer()
			err := s.flush(context.Background())
			s.mu.Lock()
			s.finalErr = err
			s.mu.Unlock()
			return
		}
	}
}

func (s *Session) flush(ctx context.Context) error {
	s.mu.Lock()
	if s.version == s.saved {
		s.mu.Unlock()
		return nil
	}
	version := s.version
	snapshot := copyAnswers(s.answers)
	s.mu.Unlock()

	err := s.save(ctx, snapshot)

	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case err == nil:
		s.saved = version
		s.lastErr = nil
		if s.version == version {
			s.status = StatusSaved
		}
	case domain.IsSoftFailure(err):
		// keep everything local; the next flush sends it again
		s.status = StatusSavedLocally
		s.lastErr = err
		logger.Debug("Autosave deferred", "error", err)
		return nil
	default:
		s.status = StatusFailed
		s.lastErr = err
		logger.Warn("Autosave failed", "error", err)
	}
	return err
}

func copyAnswers(in map[string]domain.Answer) map[string]domain.Answer {
	out := make(map[string]domain.Answer, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

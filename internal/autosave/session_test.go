package autosave

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"recruiting-portal-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type recorder struct {
	mu    sync.Mutex
	err   error
	saves []map[string]domain.Answer
	ch    chan map[string]domain.Answer
}

func newRecorder() *recorder {
	return &recorder{ch: make(chan map[string]domain.Answer, 16)}
}

func (r *recorder) save(ctx context.Context, answers map[string]domain.Answer) error {
	r.mu.Lock()
	err := r.err
	r.saves = append(r.saves, answers)
	r.mu.Unlock()
	r.ch <- answers
	return err
}

func (r *recorder) setErr(err error) {
	r.mu.Lock()
	r.err = err
	r.mu.Unlock()
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.saves)
}

func (r *recorder) next(t *testing.T) map[string]domain.Answer {
	t.Helper()
	select {
	case a := <-r.ch:
		return a
	case <-time.After(2 * time.Second):
		t.Fatal("no save happened")
		return nil
	}
}

func TestSession_DebounceCoalescesEdits(t *testing.T) {
	rec := newRecorder()
	s := NewSession(rec.save, 50*time.Millisecond, nil)
	defer s.Close()

	s.Set("101", domain.TextAnswer("h"))
	s.Set("101", domain.TextAnswer("he"))
	s.Set("101", domain.TextAnswer("hello"))
	s.Set("102", domain.TextAnswer("world"))

	saved := rec.next(t)
	assert.Equal(t, "hello", saved["101"].Text)
	assert.Equal(t, "world", saved["102"].Text)

	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, 1, rec.count())
	st, err := s.Status()
	assert.Equal(t, StatusSaved, st)
	assert.NoError(t, err)
	assert.False(t, s.Dirty())
}

func TestSession_EditRestartsQuietPeriod(t *testing.T) {
	rec := newRecorder()
	s := NewSession(rec.save, 200*time.Millisecond, nil)
	defer s.Close()

	for i := 0; i < 4; i++ {
		s.Set("101", domain.TextAnswer("typing"))
		time.Sleep(20 * time.Millisecond)
	}
	assert.Equal(t, 0, rec.count(), "save fired inside the quiet window")
	rec.next(t)
}

func TestSession_FlushForcesSave(t *testing.T) {
	rec := newRecorder()
	s := NewSession(rec.save, time.Hour, map[string]domain.Answer{"101": domain.TextAnswer("kept")})
	defer s.Close()

	require.NoError(t, s.Flush(context.Background()))
	assert.Equal(t, 0, rec.count(), "clean session should not save")

	s.Set("102", domain.TextAnswer("new"))
	require.NoError(t, s.Flush(context.Background()))
	saved := rec.next(t)
	assert.Equal(t, "kept", saved["101"].Text)
	assert.Equal(t, "new", saved["102"].Text)
}

func TestSession_SoftFailureKeepsLocalState(t *testing.T) {
	rec := newRecorder()
	rec.setErr(domain.ErrNoActiveCycle)
	s := NewSession(rec.save, time.Hour, nil)
	defer s.Close()

	s.Set("101", domain.TextAnswer("draft"))
	require.NoError(t, s.Flush(context.Background()))
	rec.next(t)

	st, err := s.Status()
	assert.Equal(t, StatusSavedLocally, st)
	assert.ErrorIs(t, err, domain.ErrNoActiveCycle)
	assert.True(t, s.Dirty())
	assert.Equal(t, "draft", s.Answers()["101"].Text)

	rec.setErr(nil)
	require.NoError(t, s.Flush(context.Background()))
	assert.Equal(t, "draft", rec.next(t)["101"].Text)
	assert.False(t, s.Dirty())
}

func TestSession_HardFailureSurfaces(t *testing.T) {
	rec := newRecorder()
	rec.setErr(domain.ErrAlreadySubmitted)
	s := NewSession(rec.save, time.Hour, nil)
	defer s.Close()

	s.Set("101", domain.TextAnswer("x"))
	err := s.Flush(context.Background())
	assert.True(t, errors.Is(err, domain.ErrAlreadySubmitted))
	st, _ := s.Status()
	assert.Equal(t, StatusFailed, st)
	rec.next(t)
}

func TestSession_HardFailureRetriesWithoutNewEdits(t *testing.T) {
	rec := newRecorder()
	rec.setErr(errors.New("connection reset"))
	s := NewSession(rec.save, 30*time.Millisecond, nil)
	defer s.Close()

	s.Set("101", domain.TextAnswer("unsent"))
	rec.next(t)
	st, _ := s.Status()
	assert.Equal(t, StatusFailed, st)
	assert.True(t, s.Dirty())

	rec.setErr(nil)
	require.Eventually(t, func() bool { return !s.Dirty() }, 2*time.Second, 10*time.Millisecond)
	st, err := s.Status()
	assert.Equal(t, StatusSaved, st)
	assert.NoError(t, err)
	assert.GreaterOrEqual(t, rec.count(), 2)
}

func TestSession_SubmittedDraftIsNotRetried(t *testing.T) {
	rec := newRecorder()
	rec.setErr(domain.ErrAlreadySubmitted)
	s := NewSession(rec.save, 20*time.Millisecond, nil)

	s.Set("101", domain.TextAnswer("late edit"))
	rec.next(t)
	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, 1, rec.count())
	assert.True(t, s.Dirty())

	assert.ErrorIs(t, s.Close(), domain.ErrAlreadySubmitted)
}

func TestSession_CloseFlushesPending(t *testing.T) {
	rec := newRecorder()
	s := NewSession(rec.save, time.Hour, nil)

	s.Set("101", domain.TextAnswer("last words"))
	require.NoError(t, s.Close())
	assert.Equal(t, "last words", rec.next(t)["101"].Text)

	assert.ErrorIs(t, s.Flush(context.Background()), ErrClosed)
	assert.NoError(t, s.Close())
}

package jobs

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"recruiting-portal-backend/internal/config"
	"recruiting-portal-backend/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	mu     sync.Mutex
	events []domain.Event
}

func (n *recordingNotifier) Notify(ctx context.Context, ev domain.Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, ev)
}

var fixedNow = time.Date(2026, 3, 1, 15, 0, 0, 0, time.UTC)

func newTestRunner(t *testing.T) (*JobRunner, sqlmock.Sqlmock, *recordingNotifier) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	cfg := &config.Config{Scheduler: config.SchedulerConfig{ReminderWindowHours: 48}}
	notifier := &recordingNotifier{}
	jr := NewJobRunner(db, notifier, cfg)
	jr.now = func() time.Time { return fixedNow }
	return jr, mock, notifier
}

func TestSendDraftReminders(t *testing.T) {
	jr, mock, notifier := newTestRunner(t)
	deadline := fixedNow.Add(24 * time.Hour)

	mock.ExpectQuery("SELECT a.id, a.candidate_id").
		WithArgs(fixedNow, fixedNow.Add(48*time.Hour)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "candidate_id", "email", "name", "org_id", "org_name", "deadline"}).
			AddRow(10, 7, "ada@example.edu", "Ada", 1, "Robotics", deadline).
			AddRow(11, 8, "bo@example.edu", "Bo", 1, "Robotics", deadline))

	count, err := jr.sendDraftReminders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	require.Len(t, notifier.events, 2)
	ev := notifier.events[0]
	assert.Equal(t, domain.EventDraftReminder, ev.Kind)
	assert.Equal(t, int32(10), ev.ApplicationID)
	assert.Equal(t, int32(7), ev.RecipientID)
	assert.Equal(t, "ada@example.edu", ev.Recipient)
	assert.Equal(t, "Robotics", ev.OrgName)
	assert.Equal(t, deadline, ev.At)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSendDraftReminders_QueryError(t *testing.T) {
	jr, mock, notifier := newTestRunner(t)

	mock.ExpectQuery("SELECT a.id, a.candidate_id").WillReturnError(errors.New("connection reset"))

	_, err := jr.sendDraftReminders(context.Background())
	assert.Error(t, err)
	assert.Empty(t, notifier.events)

	// The scheduled entry point swallows the error
	mock.ExpectQuery("SELECT a.id, a.candidate_id").WillReturnError(errors.New("connection reset"))
	assert.NotPanics(t, jr.SendDraftReminders)
}

func TestSendReviewDeadlineReminders(t *testing.T) {
	jr, mock, notifier := newTestRunner(t)
	reviewDeadline := fixedNow.Add(36 * time.Hour)

	mock.ExpectQuery("SELECT c.org_id, o.name, c.review_deadline").
		WithArgs(fixedNow, fixedNow.Add(48*time.Hour)).
		WillReturnRows(sqlmock.NewRows([]string{"org_id", "name", "review_deadline", "id", "email", "name", "count"}).
			AddRow(1, "Robotics", reviewDeadline, 21, "rev@example.edu", "Rev", 3))

	count, err := jr.sendReviewDeadlineReminders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	require.Len(t, notifier.events, 1)
	ev := notifier.events[0]
	assert.Equal(t, domain.EventReviewReminder, ev.Kind)
	assert.Equal(t, int32(21), ev.RecipientID)
	assert.Equal(t, int32(3), ev.Count)
	assert.Equal(t, reviewDeadline, ev.At)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunWithRecovery_Panics(t *testing.T) {
	jr, _, _ := newTestRunner(t)
	assert.NotPanics(t, func() {
		jr.runWithRecovery("boom", func() { panic("boom") })
	})
}

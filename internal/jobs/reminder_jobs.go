package jobs

import (
	"context"
	"time"

	"recruiting-portal-backend/internal/domain"
	"recruiting-portal-backend/internal/logger"
)

const draftReminderQuery = `
	SELECT a.id, a.candidate_id, u.email, u.name, c.org_id, o.name, c.deadline
	FROM applications a
	JOIN recruiting_cycles c ON a.cycle_id = c.id
	JOIN orgs o ON c.org_id = o.id
	JOIN users u ON a.candidate_id = u.id
	WHERE c.is_active
	  AND a.status = 'DRAFT'
	  AND c.deadline > $1
	  AND c.deadline <= $2
	ORDER BY a.id
`

const reviewReminderQuery = `
	SELECT c.org_id, o.name, c.review_deadline, u.id, u.email, u.name, pending.count
	FROM recruiting_cycles c
	JOIN orgs o ON c.org_id = o.id
	JOIN (
		SELECT cycle_id, COUNT(*) AS count
		FROM applications
		WHERE status = 'SUBMITTED'
		GROUP BY cycle_id
	) pending ON pending.cycle_id = c.id
	JOIN org_members m ON m.org_id = c.org_id
	JOIN users u ON m.user_id = u.id
	WHERE c.is_active
	  AND c.review_deadline IS NOT NULL
	  AND c.review_deadline > $1
	  AND c.review_deadline <= $2
	ORDER BY c.org_id, u.id
`

// SendDraftReminders reminds candidates with unfinished drafts whose cycle
// deadline falls inside the reminder window
func (jr *JobRunner) SendDraftReminders() {
	jr.runWithRecovery("SendDraftReminders", func() {
		count, err := jr.sendDraftReminders(context.Background())
		if err != nil {
			logger.Error("Draft reminders failed", "error", err, "sent", count)
			return
		}
		logger.Info("Sent draft reminders", "count", count)
	})
}

func (jr *JobRunner) sendDraftReminders(ctx context.Context) (int, error) {
	now := jr.now()
	rows, err := jr.db.QueryContext(ctx, draftReminderQuery, now, now.Add(jr.config.Scheduler.ReminderWindow()))
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	count := 0
	for rows.Next() {
		var (
			ev       = domain.Event{Kind: domain.EventDraftReminder}
			deadline time.Time
		)
		if err := rows.Scan(&ev.ApplicationID, &ev.RecipientID, &ev.Recipient, &ev.RecipientName, &ev.OrgID, &ev.OrgName, &deadline); err != nil {
			logger.Error("Failed to scan draft reminder row", "error", err)
			continue
		}
		ev.CandidateName = ev.RecipientName
		ev.At = deadline

		jr.notifier.Notify(ctx, ev)
		count++
		logger.Debug("Queued draft reminder", "application_id", ev.ApplicationID, "candidate_id", ev.RecipientID)
	}
	return count, rows.Err()
}

// SendReviewDeadlineReminders alerts reviewers of organizations that still
// have unreviewed submissions as the review deadline approaches
func (jr *JobRunner) SendReviewDeadlineReminders() {
	jr.runWithRecovery("SendReviewDeadlineReminders", func() {
		count, err := jr.sendReviewDeadlineReminders(context.Background())
		if err != nil {
			logger.Error("Review deadline reminders failed", "error", err, "sent", count)
			return
		}
		logger.Info("Sent review deadline reminders", "count", count)
	})
}

func (jr *JobRunner) sendReviewDeadlineReminders(ctx context.Context) (int, error) {
	now := jr.now()
	rows, err := jr.db.QueryContext(ctx, reviewReminderQuery, now, now.Add(jr.config.Scheduler.ReminderWindow()))
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	count := 0
	for rows.Next() {
		var (
			ev             = domain.Event{Kind: domain.EventReviewReminder}
			reviewDeadline time.Time
		)
		if err := rows.Scan(&ev.OrgID, &ev.OrgName, &reviewDeadline, &ev.RecipientID, &ev.Recipient, &ev.RecipientName, &ev.Count); err != nil {
			logger.Error("Failed to scan review reminder row", "error", err)
			continue
		}
		ev.At = reviewDeadline

		jr.notifier.Notify(ctx, ev)
		count++
	}
	return count, rows.Err()
}

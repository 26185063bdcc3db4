package jobs

import (
	"database/sql"
	"time"

	"recruiting-portal-backend/internal/config"
	"recruiting-portal-backend/internal/logger"
	"recruiting-portal-backend/internal/metrics"
	"recruiting-portal-backend/internal/service"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	db       *sql.DB
	notifier service.Notifier
	config   *config.Config
	now      func() time.Time
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(db *sql.DB, notifier service.Notifier, cfg *config.Config) *JobRunner {
	return &JobRunner{
		db:       db,
		notifier: notifier,
		config:   cfg,
		now:      time.Now,
	}
}

// Config returns the configuration the runner was built with
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	start := time.Now()
	defer func() {
		metrics.JobDuration.WithLabelValues(jobName).Observe(time.Since(start).Seconds())
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName, "duration", time.Since(start))
}

// RunAllReminderJobs runs every reminder job (for manual execution)
func (jr *JobRunner) RunAllReminderJobs() {
	jr.SendDraftReminders()
	jr.SendReviewDeadlineReminders()
}

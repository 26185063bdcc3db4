package postgres

import (
	"context"
	"database/sql"
	"errors"

	"recruiting-portal-backend/internal/domain"
	"recruiting-portal-backend/internal/logger"
	"recruiting-portal-backend/internal/repository"

	"github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.OrganizationRepository
	repository.CycleRepository
	repository.QuestionRepository
	repository.ApplicationRepository
	repository.ReviewRepository
	repository.InterviewRepository
	repository.NotificationRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		UserRepository:         NewUserRepository(db),
		OrganizationRepository: NewOrganizationRepository(db),
		CycleRepository:        NewCycleRepository(db),
		QuestionRepository:     NewQuestionRepository(db),
		ApplicationRepository:  NewApplicationRepository(db),
		ReviewRepository:       NewReviewRepository(db),
		InterviewRepository:    NewInterviewRepository(db),
		NotificationRepository: NewNotificationRepository(db),
	}
}

// Ping reports whether the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

const (
	pqUniqueViolation      = "23505"
	pqSerializationFailure = "40001"
	pqDeadlockDetected     = "40P01"
	pqExclusionViolation   = "23P01"
	maxTransactionAttempts = 3
)

type scanner interface {
	Scan(dest ...any) error
}

// withTx runs fn inside a transaction. Serialization failures and deadlocks
// restart fn from the beginning on a fresh transaction, so fn must derive
// every write from what it reads inside the same attempt.
func withTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	var err error
	for attempt := 1; attempt <= maxTransactionAttempts; attempt++ {
		err = runTx(ctx, db, fn)
		if err == nil || !isRetryable(err) {
			return err
		}
		logger.Warn("Retrying transaction", "attempt", attempt, "error", err)
	}
	return err
}

func runTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

func pqCode(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

func isRetryable(err error) bool {
	switch pqCode(err) {
	case pqSerializationFailure, pqDeadlockDetected, pqExclusionViolation:
		return true
	}
	return false
}

func isUniqueViolation(err error) bool {
	return pqCode(err) == pqUniqueViolation
}

// notFound maps sql.ErrNoRows to domain.ErrNotFound.
func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	return err
}

func expectOneRow(result sql.Result, orElse error) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return orElse
	}
	return nil
}

package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"recruiting-portal-backend/internal/domain"
	"recruiting-portal-backend/internal/logger"
	"recruiting-portal-backend/internal/repository"

	"github.com/lib/pq"
)

const applicationColumns = `id, candidate_id, cycle_id, subteam_id, status, completion_percent, last_saved_at, submitted_at, created_on, updated_on`

type applicationRepository struct {
	db *sql.DB
}

func NewApplicationRepository(db *sql.DB) repository.ApplicationRepository {
	return &applicationRepository{db: db}
}

func scanApplication(row scanner) (*domain.Application, error) {
	a := &domain.Application{}
	err := row.Scan(&a.ID, &a.CandidateID, &a.CycleID, &a.SubteamID, &a.Status, &a.CompletionPercent, &a.LastSavedAt, &a.SubmittedAt, &a.CreatedOn, &a.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *applicationRepository) queryApplications(ctx context.Context, query string, args ...any) ([]domain.Application, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apps []domain.Application
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, *a)
	}
	return apps, rows.Err()
}

// GetOrCreateDraft relies on the (candidate_id, cycle_id) unique key: the
// insert is a no-op when a concurrent save already created the row.
func (r *applicationRepository) GetOrCreateDraft(ctx context.Context, candidateID, cycleID int32) (*domain.Application, error) {
	now := time.Now()
	insert := `INSERT INTO applications (candidate_id, cycle_id, status, completion_percent, last_saved_at, created_on, updated_on)
	           VALUES ($1, $2, $3, 0, $4, $4, $4) ON CONFLICT (candidate_id, cycle_id) DO NOTHING`
	logger.DatabaseCall("INSERT", "applications", "candidateID", candidateID, "cycleID", cycleID)
	result, err := r.db.ExecContext(ctx, insert, candidateID, cycleID, domain.ApplicationStatusDraft, now)
	if err != nil {
		logger.DatabaseResult("INSERT", 0, err)
		return nil, err
	}
	created, _ := result.RowsAffected()
	logger.DatabaseResult("INSERT", created, nil)

	query := `SELECT ` + applicationColumns + ` FROM applications WHERE candidate_id = $1 AND cycle_id = $2`
	a, err := scanApplication(r.db.QueryRowContext(ctx, query, candidateID, cycleID))
	if err != nil {
		return nil, notFound(err)
	}
	return a, nil
}

func (r *applicationRepository) GetByID(ctx context.Context, id int32) (*domain.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE id = $1`
	a, err := scanApplication(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("application %d: %w", id, notFound(err))
	}
	return a, nil
}

func (r *applicationRepository) ListResponses(ctx context.Context, applicationID int32) ([]domain.Response, error) {
	query := `SELECT id, application_id, question_id, text_response, selected_options, file_url, created_on, updated_on
	          FROM responses WHERE application_id = $1 ORDER BY question_id`
	rows, err := r.db.QueryContext(ctx, query, applicationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var responses []domain.Response
	for rows.Next() {
		var resp domain.Response
		if err := rows.Scan(&resp.ID, &resp.ApplicationID, &resp.QuestionID, &resp.TextResponse, pq.Array(&resp.SelectedOptions), &resp.FileURL, &resp.CreatedOn, &resp.UpdatedOn); err != nil {
			return nil, err
		}
		responses = append(responses, resp)
	}
	return responses, rows.Err()
}

func (r *applicationRepository) ListByCandidate(ctx context.Context, candidateID int32) ([]domain.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE candidate_id = $1 ORDER BY updated_on DESC`
	return r.queryApplications(ctx, query, candidateID)
}

// ListByCycle returns the cycle's applications, filtered to statuses when any are given.
func (r *applicationRepository) ListByCycle(ctx context.Context, cycleID int32, statuses []domain.ApplicationStatus) ([]domain.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE cycle_id = $1`
	args := []any{cycleID}
	if len(statuses) > 0 {
		strs := make([]string, len(statuses))
		for i, s := range statuses {
			strs[i] = string(s)
		}
		query += ` AND status = ANY($2)`
		args = append(args, pq.Array(strs))
	}
	query += ` ORDER BY submitted_at NULLS LAST, id`
	return r.queryApplications(ctx, query, args...)
}

func (r *applicationRepository) CountByStatus(ctx context.Context, cycleID int32) (map[domain.ApplicationStatus]int32, error) {
	query := `SELECT status, COUNT(*) FROM applications WHERE cycle_id = $1 GROUP BY status`
	rows, err := r.db.QueryContext(ctx, query, cycleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[domain.ApplicationStatus]int32)
	for rows.Next() {
		var status domain.ApplicationStatus
		var n int32
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

func (r *applicationRepository) SaveDraft(ctx context.Context, app *domain.Application, responses []domain.Response) error {
	logger.EnterMethod("applicationRepository.SaveDraft", "applicationID", app.ID, "responses", len(responses))

	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		now := time.Now()
		update := `UPDATE applications SET subteam_id = $1, completion_percent = $2, last_saved_at = $3, updated_on = $3
		           WHERE id = $4 AND status = $5`
		logger.DatabaseCall("UPDATE", "applications", "applicationID", app.ID)
		result, err := tx.ExecContext(ctx, update, app.SubteamID, app.CompletionPercent, now, app.ID, domain.ApplicationStatusDraft)
		if err != nil {
			return err
		}
		if err := expectOneRow(result, domain.ErrAlreadySubmitted); err != nil {
			return err
		}

		kept := make([]int64, 0, len(responses))
		for _, resp := range responses {
			kept = append(kept, int64(resp.QuestionID))
		}
		logger.DatabaseCall("DELETE", "responses", "applicationID", app.ID, "kept", len(kept))
		prune := `DELETE FROM responses WHERE application_id = $1 AND question_id <> ALL($2)`
		if _, err := tx.ExecContext(ctx, prune, app.ID, pq.Array(kept)); err != nil {
			return fmt.Errorf("prune responses: %w", err)
		}

		upsert := `INSERT INTO responses (application_id, question_id, text_response, selected_options, file_url, created_on, updated_on)
		           VALUES ($1, $2, $3, $4, $5, $6, $6)
		           ON CONFLICT (application_id, question_id) DO UPDATE
		           SET text_response = EXCLUDED.text_response, selected_options = EXCLUDED.selected_options,
		               file_url = EXCLUDED.file_url, updated_on = EXCLUDED.updated_on`
		for _, resp := range responses {
			if _, err := tx.ExecContext(ctx, upsert, app.ID, resp.QuestionID, resp.TextResponse, pq.Array(resp.SelectedOptions), resp.FileURL, now); err != nil {
				return fmt.Errorf("upsert response for question %d: %w", resp.QuestionID, err)
			}
		}
		app.LastSavedAt = now
		app.UpdatedOn = now
		return nil
	})
	if err != nil {
		logger.ExitMethodWithError("applicationRepository.SaveDraft", err, "applicationID", app.ID)
		return err
	}
	logger.ExitMethod("applicationRepository.SaveDraft", "applicationID", app.ID)
	return nil
}

func (r *applicationRepository) Submit(ctx context.Context, id int32, at time.Time) error {
	query := `UPDATE applications SET status = $1, submitted_at = $2, completion_percent = 100, last_saved_at = $2, updated_on = $2
	          WHERE id = $3 AND status = $4`
	logger.DatabaseCall("UPDATE", "applications", "applicationID", id, "status", domain.ApplicationStatusSubmitted)
	result, err := r.db.ExecContext(ctx, query, domain.ApplicationStatusSubmitted, at, id, domain.ApplicationStatusDraft)
	if err != nil {
		logger.DatabaseResult("UPDATE", 0, err)
		return err
	}
	return expectOneRow(result, domain.ErrAlreadySubmitted)
}

func (r *applicationRepository) TransitionStatus(ctx context.Context, id int32, to domain.ApplicationStatus, changedBy int32, policy domain.TransitionPolicy) (*domain.StatusChange, error) {
	logger.EnterMethod("applicationRepository.TransitionStatus", "applicationID", id, "to", to)

	var change *domain.StatusChange
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		change = nil
		var from domain.ApplicationStatus
		err := tx.QueryRowContext(ctx, `SELECT status FROM applications WHERE id = $1 FOR UPDATE`, id).Scan(&from)
		if err != nil {
			return fmt.Errorf("application %d: %w", id, notFound(err))
		}
		if err := policy.Check(from, to); err != nil {
			return fmt.Errorf("%s -> %s: %w", from, to, err)
		}
		if from == to {
			return nil
		}

		now := time.Now()
		if _, err := tx.ExecContext(ctx, `UPDATE applications SET status = $1, updated_on = $2 WHERE id = $3`, to, now, id); err != nil {
			return err
		}
		c := &domain.StatusChange{ApplicationID: id, OldStatus: from, NewStatus: to, ChangedBy: changedBy, CreatedOn: now}
		history := `INSERT INTO application_status_history (application_id, old_status, new_status, changed_by, created_on)
		            VALUES ($1, $2, $3, $4, $5) RETURNING id`
		if err := tx.QueryRowContext(ctx, history, id, from, to, changedBy, now).Scan(&c.ID); err != nil {
			return err
		}
		change = c
		return nil
	})
	if err != nil {
		logger.ExitMethodWithError("applicationRepository.TransitionStatus", err, "applicationID", id)
		return nil, err
	}
	logger.ExitMethod("applicationRepository.TransitionStatus", "applicationID", id, "changed", change != nil)
	return change, nil
}

func (r *applicationRepository) ListStatusHistory(ctx context.Context, id int32) ([]domain.StatusChange, error) {
	query := `SELECT id, application_id, old_status, new_status, changed_by, created_on
	          FROM application_status_history WHERE application_id = $1 ORDER BY created_on, id`
	rows, err := r.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var history []domain.StatusChange
	for rows.Next() {
		var c domain.StatusChange
		if err := rows.Scan(&c.ID, &c.ApplicationID, &c.OldStatus, &c.NewStatus, &c.ChangedBy, &c.CreatedOn); err != nil {
			return nil, err
		}
		history = append(history, c)
	}
	return history, rows.Err()
}

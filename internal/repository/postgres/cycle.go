package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"recruiting-portal-backend/internal/domain"
	"recruiting-portal-backend/internal/logger"
	"recruiting-portal-backend/internal/repository"
)

const cycleColumns = `id, org_id, name, semester, open_date, deadline, review_deadline, decision_date, is_active, allow_late_submissions, require_resume, created_on, updated_on`

type cycleRepository struct {
	db *sql.DB
}

func NewCycleRepository(db *sql.DB) repository.CycleRepository {
	return &cycleRepository{db: db}
}

func scanCycle(row scanner) (*domain.RecruitingCycle, error) {
	c := &domain.RecruitingCycle{}
	err := row.Scan(&c.ID, &c.OrgID, &c.Name, &c.Semester, &c.OpenDate, &c.Deadline, &c.ReviewDeadline, &c.DecisionDate, &c.IsActive, &c.AllowLateSubmissions, &c.RequireResume, &c.CreatedOn, &c.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *cycleRepository) queryCycles(ctx context.Context, query string, args ...any) ([]domain.RecruitingCycle, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cycles []domain.RecruitingCycle
	for rows.Next() {
		c, err := scanCycle(rows)
		if err != nil {
			return nil, err
		}
		cycles = append(cycles, *c)
	}
	return cycles, rows.Err()
}

// Create always inserts an inactive cycle; use Activate to switch over.
func (r *cycleRepository) Create(ctx context.Context, c *domain.RecruitingCycle) error {
	now := time.Now()
	c.IsActive = false
	c.CreatedOn, c.UpdatedOn = now, now
	query := `INSERT INTO recruiting_cycles (org_id, name, semester, open_date, deadline, review_deadline, decision_date, is_active, allow_late_submissions, require_resume, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, FALSE, $8, $9, $10, $10) RETURNING id`
	logger.DatabaseCall("INSERT", "recruiting_cycles", "orgID", c.OrgID)
	err := r.db.QueryRowContext(ctx, query, c.OrgID, c.Name, c.Semester, c.OpenDate, c.Deadline, c.ReviewDeadline, c.DecisionDate, c.AllowLateSubmissions, c.RequireResume, now).Scan(&c.ID)
	logger.DatabaseResult("INSERT", 1, err, "cycleID", c.ID)
	return err
}

func (r *cycleRepository) GetByID(ctx context.Context, id int32) (*domain.RecruitingCycle, error) {
	c, err := scanCycle(r.db.QueryRowContext(ctx, `SELECT `+cycleColumns+` FROM recruiting_cycles WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("cycle %d: %w", id, notFound(err))
	}
	return c, nil
}

func (r *cycleRepository) GetActiveByOrg(ctx context.Context, orgID int32) (*domain.RecruitingCycle, error) {
	c, err := scanCycle(r.db.QueryRowContext(ctx, `SELECT `+cycleColumns+` FROM recruiting_cycles WHERE org_id = $1 AND is_active`, orgID))
	if err != nil {
		return nil, notFound(err)
	}
	return c, nil
}

func (r *cycleRepository) ListByOrg(ctx context.Context, orgID int32) ([]domain.RecruitingCycle, error) {
	return r.queryCycles(ctx, `SELECT `+cycleColumns+` FROM recruiting_cycles WHERE org_id = $1 ORDER BY open_date DESC, id DESC`, orgID)
}

func (r *cycleRepository) ListActive(ctx context.Context) ([]domain.RecruitingCycle, error) {
	return r.queryCycles(ctx, `SELECT `+cycleColumns+` FROM recruiting_cycles WHERE is_active ORDER BY org_id`)
}

func (r *cycleRepository) UpdateTimeline(ctx context.Context, id int32, t domain.CycleTimeline) error {
	query := `UPDATE recruiting_cycles SET open_date = $1, deadline = $2, review_deadline = $3, decision_date = $4,
	          allow_late_submissions = $5, require_resume = $6, updated_on = $7 WHERE id = $8`
	logger.DatabaseCall("UPDATE", "recruiting_cycles", "cycleID", id)
	result, err := r.db.ExecContext(ctx, query, t.OpenDate, t.Deadline, t.ReviewDeadline, t.DecisionDate, t.AllowLateSubmissions, t.RequireResume, time.Now(), id)
	if err != nil {
		logger.DatabaseResult("UPDATE", 0, err)
		return err
	}
	return expectOneRow(result, fmt.Errorf("cycle %d: %w", id, domain.ErrNotFound))
}

// Activate locks the organization row so concurrent activations of
// different cycles queue up instead of colliding on the one-active index.
func (r *cycleRepository) Activate(ctx context.Context, id int32) error {
	logger.EnterMethod("cycleRepository.Activate", "cycleID", id)

	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		var orgID int32
		err := tx.QueryRowContext(ctx, `SELECT o.id FROM orgs o JOIN recruiting_cycles c ON c.org_id = o.id WHERE c.id = $1 FOR UPDATE OF o`, id).Scan(&orgID)
		if err != nil {
			return fmt.Errorf("cycle %d: %w", id, notFound(err))
		}
		now := time.Now()
		if _, err := tx.ExecContext(ctx, `UPDATE recruiting_cycles SET is_active = FALSE, updated_on = $1 WHERE org_id = $2 AND is_active AND id <> $3`, now, orgID, id); err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, `UPDATE recruiting_cycles SET is_active = TRUE, updated_on = $1 WHERE id = $2`, now, id)
		return err
	})
	if err != nil {
		logger.ExitMethodWithError("cycleRepository.Activate", err, "cycleID", id)
		return err
	}
	logger.ExitMethod("cycleRepository.Activate", "cycleID", id)
	return nil
}

package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"recruiting-portal-backend/internal/domain"
	"recruiting-portal-backend/internal/logger"
	"recruiting-portal-backend/internal/repository"
	"recruiting-portal-backend/internal/utils"

	"github.com/lib/pq"
)

const questionColumns = `id, cycle_id, subteam_id, question, description, type, is_required, char_limit, word_limit, options, "order", created_on, updated_on`

type questionRepository struct {
	db *sql.DB
}

func NewQuestionRepository(db *sql.DB) repository.QuestionRepository {
	return &questionRepository{db: db}
}

func scanQuestion(row scanner) (*domain.Question, error) {
	q := &domain.Question{}
	err := row.Scan(&q.ID, &q.CycleID, &q.SubteamID, &q.Prompt, &q.Description, &q.Type, &q.IsRequired, &q.CharLimit, &q.WordLimit, pq.Array(&q.Options), &q.Order, &q.CreatedOn, &q.UpdatedOn)
	if err != nil {
		return nil, err
	}
	if q.Options == nil {
		q.Options = []string{}
	}
	return q, nil
}

// lockCycle serializes every ordinal mutation of a cycle's catalog on the
// cycle row, including inserts into a still-empty partition.
func lockCycle(ctx context.Context, tx *sql.Tx, cycleID int32) error {
	var id int32
	err := tx.QueryRowContext(ctx, `SELECT id FROM recruiting_cycles WHERE id = $1 FOR UPDATE`, cycleID).Scan(&id)
	if err != nil {
		return fmt.Errorf("cycle %d: %w", cycleID, notFound(err))
	}
	return nil
}

func loadSlots(ctx context.Context, tx *sql.Tx, scope domain.QuestionScope) ([]utils.Slot, error) {
	query := `SELECT id, "order" FROM questions WHERE cycle_id = $1 AND subteam_id IS NOT DISTINCT FROM $2 ORDER BY "order", id`
	rows, err := tx.QueryContext(ctx, query, scope.CycleID, scope.SubteamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var slots []utils.Slot
	for rows.Next() {
		var s utils.Slot
		if err := rows.Scan(&s.ID, &s.Order); err != nil {
			return nil, err
		}
		slots = append(slots, s)
	}
	return slots, rows.Err()
}

func applyOrderUpdates(ctx context.Context, tx *sql.Tx, updates []utils.OrderUpdate) error {
	now := time.Now()
	for _, u := range updates {
		if _, err := tx.ExecContext(ctx, `UPDATE questions SET "order" = $1, updated_on = $2 WHERE id = $3`, u.Order, now, u.ID); err != nil {
			return err
		}
	}
	return nil
}

// scopeOf reads the partition a question lives in without locking.
func scopeOf(ctx context.Context, tx *sql.Tx, id int32) (domain.QuestionScope, error) {
	var scope domain.QuestionScope
	err := tx.QueryRowContext(ctx, `SELECT cycle_id, subteam_id FROM questions WHERE id = $1`, id).Scan(&scope.CycleID, &scope.SubteamID)
	if err != nil {
		return scope, fmt.Errorf("question %d: %w", id, notFound(err))
	}
	return scope, nil
}

func (r *questionRepository) Insert(ctx context.Context, q *domain.Question) error {
	logger.EnterMethod("questionRepository.Insert", "cycleID", q.CycleID, "subteamID", q.SubteamID)

	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		if err := lockCycle(ctx, tx, q.CycleID); err != nil {
			return err
		}
		slots, err := loadSlots(ctx, tx, q.Scope())
		if err != nil {
			return err
		}
		q.Order = utils.NextOrdinal(slots)

		now := time.Now()
		q.CreatedOn, q.UpdatedOn = now, now
		query := `INSERT INTO questions (cycle_id, subteam_id, question, description, type, is_required, char_limit, word_limit, options, "order", created_on, updated_on)
		          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING id`
		logger.DatabaseCall("INSERT", "questions", "order", q.Order)
		return tx.QueryRowContext(ctx, query, q.CycleID, q.SubteamID, q.Prompt, q.Description, q.Type, q.IsRequired, q.CharLimit, q.WordLimit, pq.Array(q.Options), q.Order, q.CreatedOn, q.UpdatedOn).Scan(&q.ID)
	})
	if err != nil {
		logger.ExitMethodWithError("questionRepository.Insert", err)
		return err
	}
	logger.ExitMethod("questionRepository.Insert", "questionID", q.ID, "order", q.Order)
	return nil
}

func (r *questionRepository) GetByID(ctx context.Context, id int32) (*domain.Question, error) {
	query := `SELECT ` + questionColumns + ` FROM questions WHERE id = $1`
	q, err := scanQuestion(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("question %d: %w", id, notFound(err))
	}
	return q, nil
}

// ListByCycle returns general questions first, then each subteam's, each
// partition in ordinal order.
func (r *questionRepository) ListByCycle(ctx context.Context, cycleID int32) ([]domain.Question, error) {
	query := `SELECT ` + questionColumns + ` FROM questions WHERE cycle_id = $1
	          ORDER BY subteam_id NULLS FIRST, "order", id`
	rows, err := r.db.QueryContext(ctx, query, cycleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []domain.Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		questions = append(questions, *q)
	}
	return questions, rows.Err()
}

func (r *questionRepository) UpdateContent(ctx context.Context, id int32, c domain.QuestionContent) error {
	query := `UPDATE questions SET question = $1, description = $2, type = $3, is_required = $4, char_limit = $5, word_limit = $6, options = $7, updated_on = $8
	          WHERE id = $9`
	logger.DatabaseCall("UPDATE", "questions", "questionID", id)
	result, err := r.db.ExecContext(ctx, query, c.Prompt, c.Description, c.Type, c.IsRequired, c.CharLimit, c.WordLimit, pq.Array(c.Options), time.Now(), id)
	if err != nil {
		logger.DatabaseResult("UPDATE", 0, err)
		return err
	}
	return expectOneRow(result, fmt.Errorf("question %d: %w", id, domain.ErrNotFound))
}

func (r *questionRepository) Remove(ctx context.Context, id int32) error {
	logger.EnterMethod("questionRepository.Remove", "questionID", id)

	var shifted int
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		scope, err := scopeOf(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := lockCycle(ctx, tx, scope.CycleID); err != nil {
			return err
		}
		slots, err := loadSlots(ctx, tx, scope)
		if err != nil {
			return err
		}
		updates, err := utils.PlanRemove(slots, id)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM questions WHERE id = $1`, id); err != nil {
			return err
		}
		shifted = len(updates)
		return applyOrderUpdates(ctx, tx, updates)
	})
	if err != nil {
		logger.ExitMethodWithError("questionRepository.Remove", err, "questionID", id)
		return err
	}
	logger.ExitMethod("questionRepository.Remove", "questionID", id, "shifted", shifted)
	return nil
}

func (r *questionRepository) Move(ctx context.Context, id, target int32) (int32, error) {
	logger.EnterMethod("questionRepository.Move", "questionID", id, "target", target)

	var landed int32
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		scope, err := scopeOf(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := lockCycle(ctx, tx, scope.CycleID); err != nil {
			return err
		}
		slots, err := loadSlots(ctx, tx, scope)
		if err != nil {
			return err
		}
		var updates []utils.OrderUpdate
		landed, updates, err = utils.PlanMove(slots, id, target)
		if err != nil {
			return err
		}
		return applyOrderUpdates(ctx, tx, updates)
	})
	if err != nil {
		logger.ExitMethodWithError("questionRepository.Move", err, "questionID", id)
		return 0, err
	}
	logger.ExitMethod("questionRepository.Move", "questionID", id, "order", landed)
	return landed, nil
}

// Repack rewrites a partition to 0..N-1 and returns how many rows moved.
func (r *questionRepository) Repack(ctx context.Context, scope domain.QuestionScope) (int, error) {
	var moved int
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		if err := lockCycle(ctx, tx, scope.CycleID); err != nil {
			return err
		}
		slots, err := loadSlots(ctx, tx, scope)
		if err != nil {
			return err
		}
		updates := utils.PlanRepack(slots)
		moved = len(updates)
		return applyOrderUpdates(ctx, tx, updates)
	})
	if err != nil {
		return 0, err
	}
	if moved > 0 {
		logger.Warn("Repacked question ordinals", "cycleID", scope.CycleID, "subteamID", scope.SubteamID, "moved", moved)
	}
	return moved, nil
}

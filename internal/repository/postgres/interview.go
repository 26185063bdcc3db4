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

const slotColumns = `id, cycle_id, application_id, start_time, end_time, location, virtual_link, interviewer_ids, created_on`

type interviewRepository struct {
	db *sql.DB
}

func NewInterviewRepository(db *sql.DB) repository.InterviewRepository {
	return &interviewRepository{db: db}
}

func scanSlot(row scanner) (*domain.InterviewSlot, error) {
	s := &domain.InterviewSlot{}
	if err := row.Scan(&s.ID, &s.CycleID, &s.ApplicationID, &s.StartTime, &s.EndTime, &s.Location, &s.VirtualLink, pq.Array(&s.InterviewerIDs), &s.CreatedOn); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *interviewRepository) CreateSlot(ctx context.Context, s *domain.InterviewSlot) error {
	s.CreatedOn = time.Now()
	query := `INSERT INTO interview_slots (cycle_id, start_time, end_time, location, virtual_link, interviewer_ids, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	logger.DatabaseCall("INSERT", "interview_slots", "cycleID", s.CycleID)
	err := r.db.QueryRowContext(ctx, query, s.CycleID, s.StartTime, s.EndTime, s.Location, s.VirtualLink, pq.Array(s.InterviewerIDs), s.CreatedOn).Scan(&s.ID)
	logger.DatabaseResult("INSERT", 1, err, "slotID", s.ID)
	return err
}

func (r *interviewRepository) GetSlot(ctx context.Context, id int32) (*domain.InterviewSlot, error) {
	s, err := scanSlot(r.db.QueryRowContext(ctx, `SELECT `+slotColumns+` FROM interview_slots WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("interview slot %d: %w", id, notFound(err))
	}
	return s, nil
}

func (r *interviewRepository) ListSlots(ctx context.Context, cycleID int32) ([]domain.InterviewSlot, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+slotColumns+` FROM interview_slots WHERE cycle_id = $1 ORDER BY start_time, id`, cycleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var slots []domain.InterviewSlot
	for rows.Next() {
		s, err := scanSlot(rows)
		if err != nil {
			return nil, err
		}
		slots = append(slots, *s)
	}
	return slots, rows.Err()
}

func (r *interviewRepository) AssignSlot(ctx context.Context, slotID, applicationID int32) error {
	query := `UPDATE interview_slots SET application_id = $1 WHERE id = $2 AND application_id IS NULL`
	logger.DatabaseCall("UPDATE", "interview_slots", "slotID", slotID, "applicationID", applicationID)
	result, err := r.db.ExecContext(ctx, query, applicationID, slotID)
	if err != nil {
		logger.DatabaseResult("UPDATE", 0, err)
		if isUniqueViolation(err) {
			return fmt.Errorf("application %d already has an interview: %w", applicationID, domain.ErrSlotTaken)
		}
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	logger.DatabaseResult("UPDATE", rows, nil)
	if rows == 1 {
		return nil
	}

	// Either the slot does not exist or someone booked it first.
	var booked sql.NullInt32
	if err := r.db.QueryRowContext(ctx, `SELECT application_id FROM interview_slots WHERE id = $1`, slotID).Scan(&booked); err != nil {
		return fmt.Errorf("interview slot %d: %w", slotID, notFound(err))
	}
	return fmt.Errorf("interview slot %d: %w", slotID, domain.ErrSlotTaken)
}

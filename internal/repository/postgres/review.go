package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"recruiting-portal-backend/internal/domain"
	"recruiting-portal-backend/internal/logger"
	"recruiting-portal-backend/internal/repository"
)

type reviewRepository struct {
	db *sql.DB
}

func NewReviewRepository(db *sql.DB) repository.ReviewRepository {
	return &reviewRepository{db: db}
}

// UpsertScore keeps exactly one row per (application, reviewer).
func (r *reviewRepository) UpsertScore(ctx context.Context, s *domain.Score) error {
	logger.EnterMethod("reviewRepository.UpsertScore", "applicationID", s.ApplicationID, "reviewerID", s.ReviewerID, "value", s.Value)

	criteria := s.Criteria
	if criteria == nil {
		criteria = map[string]int32{}
	}
	criteriaJSON, err := json.Marshal(criteria)
	if err != nil {
		logger.ExitMethodWithError("reviewRepository.UpsertScore", err, "reason", "failed to marshal criteria")
		return err
	}

	now := time.Now()
	query := `INSERT INTO scores (application_id, reviewer_id, overall_score, criteria, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $5)
	          ON CONFLICT (application_id, reviewer_id) DO UPDATE
	          SET overall_score = EXCLUDED.overall_score, criteria = EXCLUDED.criteria, updated_on = EXCLUDED.updated_on
	          RETURNING id, created_on`
	logger.DatabaseCall("UPSERT", "scores", "applicationID", s.ApplicationID, "reviewerID", s.ReviewerID)
	err = r.db.QueryRowContext(ctx, query, s.ApplicationID, s.ReviewerID, s.Value, criteriaJSON, now).Scan(&s.ID, &s.CreatedOn)
	logger.DatabaseResult("UPSERT", 1, err, "scoreID", s.ID)
	if err != nil {
		logger.ExitMethodWithError("reviewRepository.UpsertScore", err)
		return err
	}
	s.UpdatedOn = now
	logger.ExitMethod("reviewRepository.UpsertScore", "scoreID", s.ID)
	return nil
}

func (r *reviewRepository) ListScores(ctx context.Context, applicationID int32) ([]domain.Score, error) {
	query := `SELECT id, application_id, reviewer_id, overall_score, criteria, created_on, updated_on
	          FROM scores WHERE application_id = $1 ORDER BY reviewer_id`
	rows, err := r.db.QueryContext(ctx, query, applicationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scores []domain.Score
	for rows.Next() {
		var s domain.Score
		var criteria []byte
		if err := rows.Scan(&s.ID, &s.ApplicationID, &s.ReviewerID, &s.Value, &criteria, &s.CreatedOn, &s.UpdatedOn); err != nil {
			return nil, err
		}
		if len(criteria) > 0 {
			if err := json.Unmarshal(criteria, &s.Criteria); err != nil {
				return nil, err
			}
		}
		scores = append(scores, s)
	}
	return scores, rows.Err()
}

func (r *reviewRepository) ListScoreValuesByCycle(ctx context.Context, cycleID int32) (map[int32][]int32, error) {
	query := `SELECT s.application_id, s.overall_score FROM scores s
	          JOIN applications a ON a.id = s.application_id
	          WHERE a.cycle_id = $1`
	rows, err := r.db.QueryContext(ctx, query, cycleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	values := make(map[int32][]int32)
	for rows.Next() {
		var appID, v int32
		if err := rows.Scan(&appID, &v); err != nil {
			return nil, err
		}
		values[appID] = append(values[appID], v)
	}
	return values, rows.Err()
}

func (r *reviewRepository) CreateNote(ctx context.Context, n *domain.Note) error {
	n.CreatedOn = time.Now()
	query := `INSERT INTO review_notes (application_id, author_id, content, is_private, created_on)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	logger.DatabaseCall("INSERT", "review_notes", "applicationID", n.ApplicationID, "authorID", n.AuthorID)
	err := r.db.QueryRowContext(ctx, query, n.ApplicationID, n.AuthorID, n.Content, n.IsPrivate, n.CreatedOn).Scan(&n.ID)
	logger.DatabaseResult("INSERT", 1, err, "noteID", n.ID)
	return err
}

const noteSelect = `SELECT n.id, n.application_id, n.author_id, u.name, n.content, n.is_private, n.created_on
	FROM review_notes n JOIN users u ON u.id = n.author_id`

func (r *reviewRepository) GetNote(ctx context.Context, id int32) (*domain.Note, error) {
	n := &domain.Note{}
	err := r.db.QueryRowContext(ctx, noteSelect+` WHERE n.id = $1`, id).Scan(&n.ID, &n.ApplicationID, &n.AuthorID, &n.AuthorName, &n.Content, &n.IsPrivate, &n.CreatedOn)
	if err != nil {
		return nil, fmt.Errorf("note %d: %w", id, notFound(err))
	}
	return n, nil
}

func (r *reviewRepository) DeleteNote(ctx context.Context, id int32) error {
	logger.DatabaseCall("DELETE", "review_notes", "noteID", id)
	result, err := r.db.ExecContext(ctx, `DELETE FROM review_notes WHERE id = $1`, id)
	if err != nil {
		logger.DatabaseResult("DELETE", 0, err)
		return err
	}
	return expectOneRow(result, fmt.Errorf("note %d: %w", id, domain.ErrNotFound))
}

func (r *reviewRepository) ListNotes(ctx context.Context, applicationID int32) ([]domain.Note, error) {
	rows, err := r.db.QueryContext(ctx, noteSelect+` WHERE n.application_id = $1 ORDER BY n.created_on DESC, n.id DESC`, applicationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []domain.Note
	for rows.Next() {
		var n domain.Note
		if err := rows.Scan(&n.ID, &n.ApplicationID, &n.AuthorID, &n.AuthorName, &n.Content, &n.IsPrivate, &n.CreatedOn); err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

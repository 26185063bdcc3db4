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

const userColumns = `id, email, password_hash, name, role, COALESCE(resume_url, ''), COALESCE(resume_key, ''), created_on, updated_on`

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func scanUser(row scanner) (*domain.User, error) {
	u := &domain.User{}
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Role, &u.ResumeURL, &u.ResumeKey, &u.CreatedOn, &u.UpdatedOn); err != nil {
		return nil, err
	}
	return u, nil
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	now := time.Now()
	u.CreatedOn, u.UpdatedOn = now, now
	query := `INSERT INTO users (email, password_hash, name, role, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	logger.DatabaseCall("INSERT", "users", "role", u.Role)
	err := r.db.QueryRowContext(ctx, query, u.Email, u.PasswordHash, u.Name, u.Role, u.CreatedOn, u.UpdatedOn).Scan(&u.ID)
	logger.DatabaseResult("INSERT", 1, err, "userID", u.ID)
	if isUniqueViolation(err) {
		return fmt.Errorf("email %q: %w", u.Email, domain.ErrAlreadyExists)
	}
	return err
}

func (r *userRepository) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("user %d: %w", id, notFound(err))
	}
	return u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE LOWER(email) = LOWER($1)`, email))
	if err != nil {
		return nil, notFound(err)
	}
	return u, nil
}

// UpdateResume stores the resume reference; empty strings clear it.
func (r *userRepository) UpdateResume(ctx context.Context, userID int32, url, key string) error {
	query := `UPDATE users SET resume_url = NULLIF($1, ''), resume_key = NULLIF($2, ''), updated_on = $3 WHERE id = $4`
	result, err := r.db.ExecContext(ctx, query, url, key, time.Now(), userID)
	if err != nil {
		return err
	}
	return expectOneRow(result, fmt.Errorf("user %d: %w", userID, domain.ErrNotFound))
}

func (r *userRepository) AddOrgMember(ctx context.Context, m *domain.OrgMember) error {
	m.JoinedOn = time.Now()
	query := `INSERT INTO org_members (user_id, org_id, role, joined_on) VALUES ($1, $2, $3, $4)
	          ON CONFLICT (user_id, org_id) DO UPDATE SET role = EXCLUDED.role`
	_, err := r.db.ExecContext(ctx, query, m.UserID, m.OrgID, m.Role, m.JoinedOn)
	return err
}

func (r *userRepository) ListOrgReviewers(ctx context.Context, orgID int32) ([]domain.User, error) {
	query := `SELECT u.id, u.email, u.password_hash, u.name, u.role, COALESCE(u.resume_url, ''), COALESCE(u.resume_key, ''), u.created_on, u.updated_on
	          FROM users u JOIN org_members m ON m.user_id = u.id
	          WHERE m.org_id = $1 ORDER BY u.id`
	rows, err := r.db.QueryContext(ctx, query, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

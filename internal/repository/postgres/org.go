package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"recruiting-portal-backend/internal/domain"
	"recruiting-portal-backend/internal/repository"
)

type organizationRepository struct {
	db *sql.DB
}

func NewOrganizationRepository(db *sql.DB) repository.OrganizationRepository {
	return &organizationRepository{db: db}
}

func (r *organizationRepository) Create(ctx context.Context, o *domain.Organization) error {
	o.CreatedOn = time.Now()
	query := `INSERT INTO orgs (slug, name, description, contact_email, is_recruiting, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, o.Slug, o.Name, o.Description, o.ContactEmail, o.IsRecruiting, o.CreatedOn).Scan(&o.ID)
	if isUniqueViolation(err) {
		return fmt.Errorf("organization %q: %w", o.Slug, domain.ErrAlreadyExists)
	}
	return err
}

func (r *organizationRepository) GetByID(ctx context.Context, id int32) (*domain.Organization, error) {
	o := &domain.Organization{}
	query := `SELECT id, slug, name, description, contact_email, is_recruiting, created_on FROM orgs WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&o.ID, &o.Slug, &o.Name, &o.Description, &o.ContactEmail, &o.IsRecruiting, &o.CreatedOn)
	if err != nil {
		return nil, fmt.Errorf("organization %d: %w", id, notFound(err))
	}

	rows, err := r.db.QueryContext(ctx, `SELECT id, org_id, name, description, is_recruiting FROM subteams WHERE org_id = $1 ORDER BY name`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var st domain.Subteam
		if err := rows.Scan(&st.ID, &st.OrgID, &st.Name, &st.Description, &st.IsRecruiting); err != nil {
			return nil, err
		}
		o.Subteams = append(o.Subteams, st)
	}
	return o, rows.Err()
}

func (r *organizationRepository) List(ctx context.Context) ([]domain.Organization, error) {
	query := `SELECT id, slug, name, description, contact_email, is_recruiting, created_on FROM orgs ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orgs []domain.Organization
	for rows.Next() {
		var o domain.Organization
		if err := rows.Scan(&o.ID, &o.Slug, &o.Name, &o.Description, &o.ContactEmail, &o.IsRecruiting, &o.CreatedOn); err != nil {
			return nil, err
		}
		orgs = append(orgs, o)
	}
	return orgs, rows.Err()
}

func (r *organizationRepository) CreateSubteam(ctx context.Context, st *domain.Subteam) error {
	query := `INSERT INTO subteams (org_id, name, description, is_recruiting) VALUES ($1, $2, $3, $4) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, st.OrgID, st.Name, st.Description, st.IsRecruiting).Scan(&st.ID)
	if isUniqueViolation(err) {
		return fmt.Errorf("subteam %q: %w", st.Name, domain.ErrAlreadyExists)
	}
	return err
}

func (r *organizationRepository) GetSubteam(ctx context.Context, id int32) (*domain.Subteam, error) {
	st := &domain.Subteam{}
	query := `SELECT id, org_id, name, description, is_recruiting FROM subteams WHERE id = $1`
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&st.ID, &st.OrgID, &st.Name, &st.Description, &st.IsRecruiting); err != nil {
		return nil, fmt.Errorf("subteam %d: %w", id, notFound(err))
	}
	return st, nil
}

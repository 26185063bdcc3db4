package domain

import "time"

// Organization is a project team that runs recruiting cycles.
type Organization struct {
	ID           int32     `json:"id"`
	Slug         string    `json:"slug"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	ContactEmail string    `json:"contact_email"`
	IsRecruiting bool      `json:"is_recruiting"`
	Subteams     []Subteam `json:"subteams,omitempty"` // Populated when needed
	CreatedOn    time.Time `json:"created_on"`
}

// Subteam is a sub-group of an organization. Questions scoped to a subteam are
// shown only to candidates who selected it.
type Subteam struct {
	ID           int32  `json:"id"`
	OrgID        int32  `json:"org_id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	IsRecruiting bool   `json:"is_recruiting"`
}

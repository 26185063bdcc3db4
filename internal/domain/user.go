package domain

import "time"

type UserRole string

const (
	UserRoleCandidate UserRole = "CANDIDATE"
	UserRoleReviewer  UserRole = "REVIEWER"
	UserRoleAdmin     UserRole = "ADMIN"
)

func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleCandidate, UserRoleReviewer, UserRoleAdmin:
		return true
	}
	return false
}

// CanReview reports whether the role may drive the review pipeline.
func (r UserRole) CanReview() bool {
	return r == UserRoleReviewer || r == UserRoleAdmin
}

type User struct {
	ID           int32     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Role         UserRole  `json:"role"`
	ResumeURL    string    `json:"resume_url"`
	ResumeKey    string    `json:"-"`
	CreatedOn    time.Time `json:"created_on"`
	UpdatedOn    time.Time `json:"updated_on"`
}

type MemberRole string

const (
	MemberRoleReviewer MemberRole = "REVIEWER"
	MemberRoleLead     MemberRole = "LEAD"
)

// OrgMember attaches a reviewer or lead to an organization.
type OrgMember struct {
	UserID   int32      `json:"user_id"`
	OrgID    int32      `json:"org_id"`
	Role     MemberRole `json:"role"`
	JoinedOn time.Time  `json:"joined_on"`
}

// Caller is the authenticated principal supplied by the identity layer.
// The core trusts it and does not re-verify credentials.
type Caller struct {
	UserID int32
	Role   UserRole
}

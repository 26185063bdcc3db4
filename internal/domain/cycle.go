package domain

import "time"

type RecruitingCycle struct {
	ID                   int32      `json:"id"`
	OrgID                int32      `json:"org_id"`
	Name                 string     `json:"name"`
	Semester             string     `json:"semester"`
	OpenDate             time.Time  `json:"open_date"`
	Deadline             time.Time  `json:"deadline"`
	ReviewDeadline       *time.Time `json:"review_deadline,omitempty"`
	DecisionDate         *time.Time `json:"decision_date,omitempty"`
	IsActive             bool       `json:"is_active"`
	AllowLateSubmissions bool       `json:"allow_late_submissions"`
	RequireResume        bool       `json:"require_resume"`
	CreatedOn            time.Time  `json:"created_on"`
	UpdatedOn            time.Time  `json:"updated_on"`
}

// AcceptsSubmissionAt reports whether a submission at t is inside the window.
func (c *RecruitingCycle) AcceptsSubmissionAt(t time.Time) bool {
	if c.AllowLateSubmissions {
		return true
	}
	return !t.After(c.Deadline)
}

// CycleTimeline carries the editable dates and flags of a cycle.
type CycleTimeline struct {
	OpenDate             time.Time
	Deadline             time.Time
	ReviewDeadline       *time.Time
	DecisionDate         *time.Time
	AllowLateSubmissions bool
	RequireResume        bool
}

func (t CycleTimeline) Validate() error {
	if t.OpenDate.IsZero() || t.Deadline.IsZero() {
		return ErrInvalidArgument
	}
	if t.Deadline.Before(t.OpenDate) {
		return ErrInvalidArgument
	}
	if t.ReviewDeadline != nil && t.ReviewDeadline.Before(t.Deadline) {
		return ErrInvalidArgument
	}
	if t.DecisionDate != nil && t.DecisionDate.Before(t.Deadline) {
		return ErrInvalidArgument
	}
	return nil
}

package domain

import "time"

// Notification is an in-app message addressed to one user.
type Notification struct {
	ID         int32             `json:"id"`
	UserID     int32             `json:"user_id"`
	OrgID      int32             `json:"org_id"`
	Title      string            `json:"title"`
	Message    string            `json:"message"`
	IsRead     bool              `json:"is_read"`
	Attributes map[string]string `json:"attributes"`
	CreatedOn  time.Time         `json:"created_on"`
}

type EventKind string

const (
	EventApplicationSubmitted EventKind = "APPLICATION_SUBMITTED"
	EventStatusChanged        EventKind = "APPLICATION_STATUS_UPDATED"
	EventNewApplication       EventKind = "NEW_APPLICATION_ALERT"
	EventInterviewScheduled   EventKind = "INTERVIEW_SCHEDULED"
	EventDraftReminder        EventKind = "DRAFT_REMINDER"
	EventReviewReminder       EventKind = "REVIEW_DEADLINE_REMINDER"
)

// Event is a fire-and-forget trigger for the notification dispatcher.
type Event struct {
	Kind          EventKind
	OrgID         int32
	OrgName       string
	ApplicationID int32
	RecipientID   int32
	Recipient     string // email address
	RecipientName string
	CandidateName string
	OldStatus     ApplicationStatus
	NewStatus     ApplicationStatus
	At            time.Time
	Location      string
	Count         int32
}

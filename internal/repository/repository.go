package repository

import (
	"context"
	"time"

	"recruiting-portal-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateResume(ctx context.Context, userID int32, url, key string) error

	// Organization membership (reviewers and leads)
	AddOrgMember(ctx context.Context, member *domain.OrgMember) error
	ListOrgReviewers(ctx context.Context, orgID int32) ([]domain.User, error)
}

type OrganizationRepository interface {
	Create(ctx context.Context, org *domain.Organization) error
	GetByID(ctx context.Context, id int32) (*domain.Organization, error)
	List(ctx context.Context) ([]domain.Organization, error)
	CreateSubteam(ctx context.Context, subteam *domain.Subteam) error
	GetSubteam(ctx context.Context, id int32) (*domain.Subteam, error)
}

type CycleRepository interface {
	Create(ctx context.Context, cycle *domain.RecruitingCycle) error
	GetByID(ctx context.Context, id int32) (*domain.RecruitingCycle, error)
	// GetActiveByOrg returns domain.ErrNotFound when the organization has no active cycle.
	GetActiveByOrg(ctx context.Context, orgID int32) (*domain.RecruitingCycle, error)
	ListByOrg(ctx context.Context, orgID int32) ([]domain.RecruitingCycle, error)
	ListActive(ctx context.Context) ([]domain.RecruitingCycle, error)
	UpdateTimeline(ctx context.Context, id int32, timeline domain.CycleTimeline) error
	// Activate makes id the only active cycle of its organization.
	Activate(ctx context.Context, id int32) error
}

// QuestionRepository owns the ordinal space of every (cycle, scope)
// partition. Insert, Remove, Move and Repack each run as one transaction.
type QuestionRepository interface {
	Insert(ctx context.Context, q *domain.Question) error
	GetByID(ctx context.Context, id int32) (*domain.Question, error)
	ListByCycle(ctx context.Context, cycleID int32) ([]domain.Question, error)
	UpdateContent(ctx context.Context, id int32, content domain.QuestionContent) error
	Remove(ctx context.Context, id int32) error
	// Move returns the ordinal the question landed on after clamping.
	Move(ctx context.Context, id, target int32) (int32, error)
	Repack(ctx context.Context, scope domain.QuestionScope) (int, error)
}

type ApplicationRepository interface {
	// GetOrCreateDraft returns the single application of (candidate, cycle),
	// creating a DRAFT if none exists. Safe under concurrent callers.
	GetOrCreateDraft(ctx context.Context, candidateID, cycleID int32) (*domain.Application, error)
	GetByID(ctx context.Context, id int32) (*domain.Application, error)
	ListResponses(ctx context.Context, applicationID int32) ([]domain.Response, error)
	ListByCandidate(ctx context.Context, candidateID int32) ([]domain.Application, error)
	ListByCycle(ctx context.Context, cycleID int32, statuses []domain.ApplicationStatus) ([]domain.Application, error)
	CountByStatus(ctx context.Context, cycleID int32) (map[domain.ApplicationStatus]int32, error)

	// SaveDraft writes the draft fields and replaces the stored responses with
	// the given set, only while the application is still DRAFT. Otherwise it
	// fails with domain.ErrAlreadySubmitted.
	SaveDraft(ctx context.Context, app *domain.Application, responses []domain.Response) error
	// Submit moves a DRAFT to SUBMITTED. A non-DRAFT application fails with
	// domain.ErrAlreadySubmitted.
	Submit(ctx context.Context, id int32, at time.Time) error
	// TransitionStatus checks policy against the locked current status, then
	// writes the new status and a history row together. A nil change means the
	// status was already `to`.
	TransitionStatus(ctx context.Context, id int32, to domain.ApplicationStatus, changedBy int32, policy domain.TransitionPolicy) (*domain.StatusChange, error)
	ListStatusHistory(ctx context.Context, id int32) ([]domain.StatusChange, error)
}

type ReviewRepository interface {
	UpsertScore(ctx context.Context, score *domain.Score) error
	ListScores(ctx context.Context, applicationID int32) ([]domain.Score, error)
	// ListScoreValuesByCycle maps application id to its current score values.
	ListScoreValuesByCycle(ctx context.Context, cycleID int32) (map[int32][]int32, error)

	CreateNote(ctx context.Context, note *domain.Note) error
	GetNote(ctx context.Context, id int32) (*domain.Note, error)
	DeleteNote(ctx context.Context, id int32) error
	ListNotes(ctx context.Context, applicationID int32) ([]domain.Note, error)
}

type InterviewRepository interface {
	CreateSlot(ctx context.Context, slot *domain.InterviewSlot) error
	GetSlot(ctx context.Context, id int32) (*domain.InterviewSlot, error)
	ListSlots(ctx context.Context, cycleID int32) ([]domain.InterviewSlot, error)
	// AssignSlot books a free slot. A booked slot fails with domain.ErrSlotTaken.
	AssignSlot(ctx context.Context, slotID, applicationID int32) error
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id, userID int32) error
}

package service

import (
	"context"
	"time"

	"recruiting-portal-backend/internal/domain"
)

type AuthService interface {
	Signup(ctx context.Context, email, name, password string) (*domain.User, string, error) // user, access token
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
}

type OrganizationService interface {
	ListOrganizations(ctx context.Context) ([]domain.Organization, error)
	GetOrganization(ctx context.Context, id int32) (*domain.Organization, error)
	CreateOrganization(ctx context.Context, caller domain.Caller, org *domain.Organization) error
	CreateSubteam(ctx context.Context, subteam *domain.Subteam) error
	AddMember(ctx context.Context, member *domain.OrgMember) error
}

type CycleService interface {
	// GetActiveCycle fails with domain.ErrNoActiveCycle when the organization has none.
	GetActiveCycle(ctx context.Context, orgID int32) (*domain.RecruitingCycle, error)
	ListCycles(ctx context.Context, orgID int32) ([]domain.RecruitingCycle, error)
	CreateCycle(ctx context.Context, cycle *domain.RecruitingCycle) error
	UpdateTimeline(ctx context.Context, cycleID int32, timeline domain.CycleTimeline) (*domain.RecruitingCycle, error)
	ActivateCycle(ctx context.Context, cycleID int32) (*domain.RecruitingCycle, error)
}

type CatalogService interface {
	ListQuestions(ctx context.Context, cycleID int32) ([]domain.Question, error)
	VisibleQuestions(ctx context.Context, cycleID int32, subteamID *int32) ([]domain.Question, error)
	InsertQuestion(ctx context.Context, q *domain.Question) error
	UpdateQuestion(ctx context.Context, id int32, content domain.QuestionContent) (*domain.Question, error)
	RemoveQuestion(ctx context.Context, id int32) error
	MoveQuestion(ctx context.Context, id, target int32) (int32, error)
	// RepackQuestions rewrites a partition's ordinals to 0..N-1. It returns how
	// many questions changed position.
	RepackQuestions(ctx context.Context, cycleID int32, subteamID *int32) (int, error)
}

type ApplicationService interface {
	SaveDraft(ctx context.Context, caller domain.Caller, orgID int32, subteamID *int32, answers map[string]domain.Answer) (*domain.Application, error)
	SubmitApplication(ctx context.Context, caller domain.Caller, applicationID int32) (*domain.Application, error)
	GetApplication(ctx context.Context, caller domain.Caller, applicationID int32) (*domain.Application, error)
	ListMyApplications(ctx context.Context, caller domain.Caller) ([]domain.Application, error)
}

type ReviewService interface {
	UpdateStatus(ctx context.Context, caller domain.Caller, applicationID int32, status domain.ApplicationStatus) (*domain.Application, error)
	ListStatusHistory(ctx context.Context, caller domain.Caller, applicationID int32) ([]domain.StatusChange, error)
	SetScore(ctx context.Context, caller domain.Caller, applicationID, value int32, criteria map[string]int32) (*domain.Score, error)
	ListScores(ctx context.Context, caller domain.Caller, applicationID int32) ([]domain.Score, *int32, error) // scores, rounded average
	AddNote(ctx context.Context, caller domain.Caller, applicationID int32, content string, isPrivate bool) (*domain.Note, error)
	DeleteNote(ctx context.Context, caller domain.Caller, noteID int32) error
	ListNotes(ctx context.Context, caller domain.Caller, applicationID int32) ([]domain.Note, error)
}

type DashboardService interface {
	GetDashboard(ctx context.Context, caller domain.Caller, orgID int32) (*domain.Dashboard, error)
}

type InterviewService interface {
	CreateSlot(ctx context.Context, caller domain.Caller, slot *domain.InterviewSlot) error
	ScheduleInterview(ctx context.Context, caller domain.Caller, slotID, applicationID int32) (*domain.InterviewSlot, error)
	ListSlots(ctx context.Context, caller domain.Caller, cycleID int32) ([]domain.InterviewSlot, error)
}

type ResumeService interface {
	GetUploadURL(ctx context.Context, caller domain.Caller, filename, contentType string) (string, string, time.Time, error) // upload URL, object key, expiry
	ConfirmUpload(ctx context.Context, caller domain.Caller, key string) (*domain.User, error)
	DeleteResume(ctx context.Context, caller domain.Caller) error
}

type NotificationService interface {
	GetNotifications(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, userID, notificationID int32) error
}

// Notifier accepts fire-and-forget events. Notify never fails the caller.
type Notifier interface {
	Notify(ctx context.Context, event domain.Event)
}

// EmailMessage is one outbound email.
type EmailMessage struct {
	To       string
	ToName   string
	Subject  string
	Body     string
	Category string // event kind, for logs and metrics
}

type EmailSender interface {
	Send(ctx context.Context, msg EmailMessage) error
}

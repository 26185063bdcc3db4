package grpc

import (
	"time"

	"recruiting-portal-backend/internal/domain"
)

// Empty is used by methods that take or return nothing.
type Empty struct{}

// Auth

type SignupRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	User        *domain.User `json:"user"`
	AccessToken string       `json:"access_token"`
}

// Organizations

type ListOrganizationsResponse struct {
	Organizations []domain.Organization `json:"organizations"`
}

type GetOrganizationRequest struct {
	OrganizationID int32 `json:"organization_id"`
}

type CreateOrganizationRequest struct {
	Slug         string `json:"slug"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	ContactEmail string `json:"contact_email"`
	IsRecruiting bool   `json:"is_recruiting"`
}

type OrganizationResponse struct {
	Organization *domain.Organization `json:"organization"`
}

type CreateSubteamRequest struct {
	OrganizationID int32  `json:"organization_id"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	IsRecruiting   bool   `json:"is_recruiting"`
}

type SubteamResponse struct {
	Subteam *domain.Subteam `json:"subteam"`
}

type AddMemberRequest struct {
	OrganizationID int32             `json:"organization_id"`
	UserID         int32             `json:"user_id"`
	Role           domain.MemberRole `json:"role"`
}

// Cycles

type OrganizationScopedRequest struct {
	OrganizationID int32 `json:"organization_id"`
}

type Timeline struct {
	OpenDate             time.Time  `json:"open_date"`
	Deadline             time.Time  `json:"deadline"`
	ReviewDeadline       *time.Time `json:"review_deadline,omitempty"`
	DecisionDate         *time.Time `json:"decision_date,omitempty"`
	AllowLateSubmissions bool       `json:"allow_late_submissions"`
	RequireResume        bool       `json:"require_resume"`
}

type CreateCycleRequest struct {
	OrganizationID int32  `json:"organization_id"`
	Name           string `json:"name"`
	Semester       string `json:"semester"`
	Timeline
}

type UpdateTimelineRequest struct {
	CycleID int32 `json:"cycle_id"`
	Timeline
}

type CycleRequest struct {
	CycleID int32 `json:"cycle_id"`
}

type CycleResponse struct {
	Cycle *domain.RecruitingCycle `json:"cycle"`
}

type ListCyclesResponse struct {
	Cycles []domain.RecruitingCycle `json:"cycles"`
}

// Catalog

type ListQuestionsRequest struct {
	CycleID   int32  `json:"cycle_id"`
	SubteamID *int32 `json:"subteam_id,omitempty"`
}

type QuestionFields struct {
	Prompt      string              `json:"question"`
	Description string              `json:"description"`
	Type        domain.QuestionType `json:"type"`
	IsRequired  bool                `json:"is_required"`
	CharLimit   *int32              `json:"char_limit,omitempty"`
	WordLimit   *int32              `json:"word_limit,omitempty"`
	Options     []string            `json:"options"`
}

type InsertQuestionRequest struct {
	CycleID   int32  `json:"cycle_id"`
	SubteamID *int32 `json:"subteam_id,omitempty"`
	QuestionFields
}

type UpdateQuestionRequest struct {
	QuestionID int32 `json:"question_id"`
	QuestionFields
}

type QuestionRequest struct {
	QuestionID int32 `json:"question_id"`
}

type MoveQuestionRequest struct {
	QuestionID int32 `json:"question_id"`
	Target     int32 `json:"target"`
}

type MoveQuestionResponse struct {
	Order int32 `json:"order"`
}

type RepackQuestionsResponse struct {
	Moved int32 `json:"moved"`
}

type QuestionResponse struct {
	Question *domain.Question `json:"question"`
}

type QuestionsResponse struct {
	Questions []domain.Question `json:"questions"`
}

// Applications

type SaveDraftRequest struct {
	OrganizationID int32                    `json:"organization_id"`
	SubteamID      *int32                   `json:"subteam_id,omitempty"`
	Answers        map[string]domain.Answer `json:"answers"`
}

// SaveDraftResponse reports Saved=false with a Reason when the save was
// deferred. The client keeps its local answers and retries later.
type SaveDraftResponse struct {
	Application *domain.Application `json:"application,omitempty"`
	Saved       bool                `json:"saved"`
	Reason      string              `json:"reason,omitempty"`

	// QuietPeriodMs is the debounce delay clients should use for autosave.
	QuietPeriodMs int64 `json:"quiet_period_ms"`
}

type ApplicationRequest struct {
	ApplicationID int32 `json:"application_id"`
}

type ApplicationResponse struct {
	Application *domain.Application `json:"application"`
}

type ApplicationsResponse struct {
	Applications []domain.Application `json:"applications"`
}

// Review

type UpdateStatusRequest struct {
	ApplicationID int32                    `json:"application_id"`
	Status        domain.ApplicationStatus `json:"status"`
}

type StatusHistoryResponse struct {
	History []domain.StatusChange `json:"history"`
}

type SetScoreRequest struct {
	ApplicationID int32            `json:"application_id"`
	Value         int32            `json:"overall_score"`
	Criteria      map[string]int32 `json:"criteria,omitempty"`
}

type ScoreResponse struct {
	Score *domain.Score `json:"score"`
}

type ScoresResponse struct {
	Scores  []domain.Score `json:"scores"`
	Average *int32         `json:"average,omitempty"`
}

type AddNoteRequest struct {
	ApplicationID int32  `json:"application_id"`
	Content       string `json:"content"`
	IsPrivate     bool   `json:"is_private"`
}

type NoteRequest struct {
	NoteID int32 `json:"note_id"`
}

type NoteResponse struct {
	Note *domain.Note `json:"note"`
}

type NotesResponse struct {
	Notes []domain.Note `json:"notes"`
}

type DashboardResponse struct {
	Dashboard *domain.Dashboard `json:"dashboard"`
}

// Interviews

type CreateSlotRequest struct {
	CycleID        int32     `json:"cycle_id"`
	StartTime      time.Time `json:"start_time"`
	EndTime        time.Time `json:"end_time"`
	Location       string    `json:"location"`
	VirtualLink    string    `json:"virtual_link"`
	InterviewerIDs []int32   `json:"interviewer_ids"`
}

type ScheduleInterviewRequest struct {
	SlotID        int32 `json:"slot_id"`
	ApplicationID int32 `json:"application_id"`
}

type SlotResponse struct {
	Slot *domain.InterviewSlot `json:"slot"`
}

type SlotsResponse struct {
	Slots []domain.InterviewSlot `json:"slots"`
}

// Resumes

type GetUploadURLRequest struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
}

type GetUploadURLResponse struct {
	UploadURL string    `json:"upload_url"`
	Key       string    `json:"key"`
	ExpiresAt time.Time `json:"expires_at"`
}

type ConfirmUploadRequest struct {
	Key string `json:"key"`
}

type UserResponse struct {
	User *domain.User `json:"user"`
}

// Notifications

type GetNotificationsRequest struct {
	Page     int32 `json:"page"`
	PageSize int32 `json:"page_size"`
}

type GetNotificationsResponse struct {
	Notifications []domain.Notification `json:"notifications"`
	TotalCount    int32                 `json:"total_count"`
}

type MarkNotificationReadRequest struct {
	NotificationID int32 `json:"notification_id"`
}

package domain

import (
	"strings"
	"time"
)

type ApplicationStatus string

const (
	ApplicationStatusDraft       ApplicationStatus = "DRAFT"
	ApplicationStatusSubmitted   ApplicationStatus = "SUBMITTED"
	ApplicationStatusUnderReview ApplicationStatus = "UNDER_REVIEW"
	ApplicationStatusInterview   ApplicationStatus = "INTERVIEW"
	ApplicationStatusOffer       ApplicationStatus = "OFFER"
	ApplicationStatusAccepted    ApplicationStatus = "ACCEPTED"
	ApplicationStatusRejected    ApplicationStatus = "REJECTED"
	ApplicationStatusWithdrawn   ApplicationStatus = "WITHDRAWN"
)

// PipelineStatuses lists every non-DRAFT status in pipeline order, side exits last.
var PipelineStatuses = []ApplicationStatus{
	ApplicationStatusSubmitted,
	ApplicationStatusUnderReview,
	ApplicationStatusInterview,
	ApplicationStatusOffer,
	ApplicationStatusAccepted,
	ApplicationStatusRejected,
	ApplicationStatusWithdrawn,
}

// Rank is the position along the main pipeline. Side exits have no rank.
func (s ApplicationStatus) Rank() int {
	switch s {
	case ApplicationStatusDraft:
		return 0
	case ApplicationStatusSubmitted:
		return 1
	case ApplicationStatusUnderReview:
		return 2
	case ApplicationStatusInterview:
		return 3
	case ApplicationStatusOffer:
		return 4
	case ApplicationStatusAccepted:
		return 5
	}
	return -1
}

func (s ApplicationStatus) IsValid() bool {
	return s == ApplicationStatusDraft || s.IsPipelineStage()
}

// IsPipelineStage reports whether s is a post-submission status.
func (s ApplicationStatus) IsPipelineStage() bool {
	for _, p := range PipelineStatuses {
		if p == s {
			return true
		}
	}
	return false
}

func (s ApplicationStatus) IsTerminal() bool {
	return s == ApplicationStatusAccepted || s == ApplicationStatusRejected || s == ApplicationStatusWithdrawn
}

func (s ApplicationStatus) IsSideExit() bool {
	return s == ApplicationStatusRejected || s == ApplicationStatusWithdrawn
}

// Application holds one candidate's entry into one cycle.
type Application struct {
	ID                int32             `json:"id"`
	CandidateID       int32             `json:"candidate_id"`
	CycleID           int32             `json:"cycle_id"`
	SubteamID         *int32            `json:"subteam_id,omitempty"`
	Status            ApplicationStatus `json:"status"`
	CompletionPercent int32             `json:"completion_percent"`
	LastSavedAt       time.Time         `json:"last_saved_at"`
	SubmittedAt       *time.Time        `json:"submitted_at,omitempty"`
	Responses         []Response        `json:"responses,omitempty"` // Populated when needed
	CreatedOn         time.Time         `json:"created_on"`
	UpdatedOn         time.Time         `json:"updated_on"`
}

func (a *Application) IsDraft() bool {
	return a.Status == ApplicationStatusDraft
}

// Response is the stored answer to one question of an application.
type Response struct {
	ID              int32     `json:"id"`
	ApplicationID   int32     `json:"application_id"`
	QuestionID      int32     `json:"question_id"`
	TextResponse    *string   `json:"text_response,omitempty"`
	SelectedOptions []string  `json:"selected_options"`
	FileURL         *string   `json:"file_url,omitempty"`
	CreatedOn       time.Time `json:"created_on"`
	UpdatedOn       time.Time `json:"updated_on"`
}

// Answer is what a client sends for one question, before it is interpreted by
// the question's type.
type Answer struct {
	Text     string   `json:"text,omitempty"`
	Selected []string `json:"selected,omitempty"`
	FileURL  string   `json:"file_url,omitempty"`
}

// TextAnswer is shorthand for a free-text answer.
func TextAnswer(s string) Answer {
	return Answer{Text: s}
}

// Interpret turns a raw answer into a Response for q. The second return value
// is false when the answer is blank for the question's kind.
func (q *Question) Interpret(a Answer) (Response, bool) {
	r := Response{QuestionID: q.ID, SelectedOptions: []string{}}
	switch q.Type.Kind() {
	case AnswerKindText:
		text := a.Text
		if text == "" && len(a.Selected) > 0 {
			text = a.Selected[0]
		}
		if q.CharLimit != nil && *q.CharLimit > 0 {
			text = truncateRunes(text, int(*q.CharLimit))
		}
		r.TextResponse = &text
		return r, strings.TrimSpace(text) != ""
	case AnswerKindChoice:
		picked := a.Selected
		if len(picked) == 0 && a.Text != "" {
			picked = []string{a.Text}
		}
		for _, p := range picked {
			if q.hasOption(p) && !contains(r.SelectedOptions, p) {
				r.SelectedOptions = append(r.SelectedOptions, p)
			}
		}
		if q.Type == QuestionTypeSelect && len(r.SelectedOptions) > 1 {
			r.SelectedOptions = r.SelectedOptions[:1]
		}
		return r, len(r.SelectedOptions) > 0
	case AnswerKindFile:
		url := strings.TrimSpace(a.FileURL)
		if url == "" {
			url = strings.TrimSpace(a.Text)
		}
		r.FileURL = &url
		return r, url != ""
	}
	return r, false
}

func truncateRunes(s string, n int) string {
	if n <= 0 {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// StatusChange is one row of an application's status history.
type StatusChange struct {
	ID            int32             `json:"id"`
	ApplicationID int32             `json:"application_id"`
	OldStatus     ApplicationStatus `json:"old_status"`
	NewStatus     ApplicationStatus `json:"new_status"`
	ChangedBy     int32             `json:"changed_by"`
	CreatedOn     time.Time         `json:"created_on"`
}

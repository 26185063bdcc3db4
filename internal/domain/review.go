package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

const (
	MinScore       = 1
	MaxScore       = 5
	MaxNoteLength  = 2000
	maxCriteriaLen = 50
)

// Score is one reviewer's current rating of an application.
type Score struct {
	ID            int32            `json:"id"`
	ApplicationID int32            `json:"application_id"`
	ReviewerID    int32            `json:"reviewer_id"`
	Value         int32            `json:"overall_score"`
	Criteria      map[string]int32 `json:"criteria,omitempty"`
	CreatedOn     time.Time        `json:"created_on"`
	UpdatedOn     time.Time        `json:"updated_on"`
}

// ValidateScore checks the overall value and every criterion against [MinScore, MaxScore].
func ValidateScore(value int32, criteria map[string]int32) error {
	if value < MinScore || value > MaxScore {
		return ErrOutOfRange
	}
	for name, v := range criteria {
		if strings.TrimSpace(name) == "" || len(name) > maxCriteriaLen {
			return ErrInvalidArgument
		}
		if v < MinScore || v > MaxScore {
			return ErrOutOfRange
		}
	}
	return nil
}

// Note is an append-only reviewer annotation. Only its author may delete it.
type Note struct {
	ID            int32     `json:"id"`
	ApplicationID int32     `json:"application_id"`
	AuthorID      int32     `json:"author_id"`
	AuthorName    string    `json:"author_name,omitempty"`
	Content       string    `json:"content"`
	IsPrivate     bool      `json:"is_private"`
	CreatedOn     time.Time `json:"created_on"`
}

// NormalizeNoteContent trims the content and validates it.
func NormalizeNoteContent(content string) (string, error) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return "", ErrEmptyContent
	}
	if utf8.RuneCountInString(trimmed) > MaxNoteLength {
		return "", ErrInvalidArgument
	}
	return trimmed, nil
}

// VisibleTo reports whether viewerID may read the note.
func (n *Note) VisibleTo(viewerID int32) bool {
	return !n.IsPrivate || n.AuthorID == viewerID
}

// ApplicationSummary is a derived dashboard row.
type ApplicationSummary struct {
	Application   Application `json:"application"`
	CandidateName string      `json:"candidate_name"`
	AverageScore  *int32      `json:"average_score,omitempty"`
	ScoreCount    int32       `json:"score_count"`
}

// Dashboard is the per-organization view over the active cycle.
type Dashboard struct {
	Cycle          RecruitingCycle             `json:"cycle"`
	StageCounts    map[ApplicationStatus]int32 `json:"stage_counts"`
	TotalSubmitted int32                       `json:"total_submitted"`
	DraftCount     int32                       `json:"draft_count"`
	Applications   []ApplicationSummary        `json:"applications"`
}

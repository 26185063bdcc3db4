package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

type QuestionType string

const (
	QuestionTypeShortText   QuestionType = "SHORT_TEXT"
	QuestionTypeLongText    QuestionType = "LONG_TEXT"
	QuestionTypeSelect      QuestionType = "SELECT"
	QuestionTypeMultiSelect QuestionType = "MULTI_SELECT"
	QuestionTypeFileUpload  QuestionType = "FILE_UPLOAD"
)

// AnswerKind is the storage shape a question type is answered with.
type AnswerKind int

const (
	AnswerKindUnknown AnswerKind = iota
	AnswerKindText
	AnswerKindChoice
	AnswerKindFile
)

func (t QuestionType) Kind() AnswerKind {
	switch t {
	case QuestionTypeShortText, QuestionTypeLongText:
		return AnswerKindText
	case QuestionTypeSelect, QuestionTypeMultiSelect:
		return AnswerKindChoice
	case QuestionTypeFileUpload:
		return AnswerKindFile
	}
	return AnswerKindUnknown
}

func (t QuestionType) IsValid() bool {
	return t.Kind() != AnswerKindUnknown
}

// Question belongs to one cycle. SubteamID nil means the general scope.
type Question struct {
	ID          int32        `json:"id"`
	CycleID     int32        `json:"cycle_id"`
	SubteamID   *int32       `json:"subteam_id,omitempty"`
	Prompt      string       `json:"question"`
	Description string       `json:"description"`
	Type        QuestionType `json:"type"`
	IsRequired  bool         `json:"is_required"`
	CharLimit   *int32       `json:"char_limit,omitempty"`
	WordLimit   *int32       `json:"word_limit,omitempty"`
	Options     []string     `json:"options"`
	Order       int32        `json:"order"`
	CreatedOn   time.Time    `json:"created_on"`
	UpdatedOn   time.Time    `json:"updated_on"`
}

// Scope returns the (cycle, subteam) partition the question's ordinal lives in.
func (q *Question) Scope() QuestionScope {
	return QuestionScope{CycleID: q.CycleID, SubteamID: q.SubteamID}
}

// Validate checks the content fields. Ordering is not part of content.
func (q *Question) Validate() error {
	if strings.TrimSpace(q.Prompt) == "" || utf8.RuneCountInString(q.Prompt) > 500 {
		return ErrInvalidArgument
	}
	if utf8.RuneCountInString(q.Description) > 500 {
		return ErrInvalidArgument
	}
	switch q.Type.Kind() {
	case AnswerKindChoice:
		if len(q.Options) == 0 {
			return ErrInvalidArgument
		}
		seen := make(map[string]struct{}, len(q.Options))
		for _, o := range q.Options {
			if strings.TrimSpace(o) == "" || len(o) > 200 {
				return ErrInvalidArgument
			}
			if _, dup := seen[o]; dup {
				return ErrInvalidArgument
			}
			seen[o] = struct{}{}
		}
	case AnswerKindText, AnswerKindFile:
		if len(q.Options) > 0 {
			return ErrInvalidArgument
		}
	default:
		return ErrInvalidArgument
	}
	if q.CharLimit != nil && (*q.CharLimit < 0 || *q.CharLimit > 10000) {
		return ErrInvalidArgument
	}
	if q.WordLimit != nil && (*q.WordLimit < 0 || *q.WordLimit > 2000) {
		return ErrInvalidArgument
	}
	return nil
}

func (q *Question) hasOption(label string) bool {
	for _, o := range q.Options {
		if o == label {
			return true
		}
	}
	return false
}

type QuestionScope struct {
	CycleID   int32
	SubteamID *int32
}

func (s QuestionScope) IsGeneral() bool {
	return s.SubteamID == nil
}

func (s QuestionScope) Equal(o QuestionScope) bool {
	if s.CycleID != o.CycleID {
		return false
	}
	if s.SubteamID == nil || o.SubteamID == nil {
		return s.SubteamID == nil && o.SubteamID == nil
	}
	return *s.SubteamID == *o.SubteamID
}

// QuestionContent is the editable, ordering-free part of a question.
type QuestionContent struct {
	Prompt      string
	Description string
	Type        QuestionType
	IsRequired  bool
	CharLimit   *int32
	WordLimit   *int32
	Options     []string
}

// VisibleQuestions returns the general questions followed by the questions of
// the selected subteam, each group in ordinal order as given.
func VisibleQuestions(all []Question, subteamID *int32) []Question {
	visible := make([]Question, 0, len(all))
	for _, q := range all {
		if q.SubteamID == nil {
			visible = append(visible, q)
		}
	}
	if subteamID == nil {
		return visible
	}
	for _, q := range all {
		if q.SubteamID != nil && *q.SubteamID == *subteamID {
			visible = append(visible, q)
		}
	}
	return visible
}

package grpc

import (
	"errors"

	"recruiting-portal-backend/internal/domain"
)

func mapTimelineToDomain(t Timeline) domain.CycleTimeline {
	return domain.CycleTimeline{
		OpenDate:             t.OpenDate,
		Deadline:             t.Deadline,
		ReviewDeadline:       t.ReviewDeadline,
		DecisionDate:         t.DecisionDate,
		AllowLateSubmissions: t.AllowLateSubmissions,
		RequireResume:        t.RequireResume,
	}
}

func mapQuestionFieldsToDomain(f QuestionFields) domain.QuestionContent {
	return domain.QuestionContent{
		Prompt:      f.Prompt,
		Description: f.Description,
		Type:        f.Type,
		IsRequired:  f.IsRequired,
		CharLimit:   f.CharLimit,
		WordLimit:   f.WordLimit,
		Options:     f.Options,
	}
}

// softFailureReason names the deferred-save reason reported to autosave clients.
func softFailureReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrNoActiveCycle):
		return "NO_ACTIVE_CYCLE"
	case errors.Is(err, domain.ErrRateLimited):
		return "RATE_LIMITED"
	}
	return "DEFERRED"
}

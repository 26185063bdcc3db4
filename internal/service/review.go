package service

import (
	"context"

	"recruiting-portal-backend/internal/domain"
	"recruiting-portal-backend/internal/logger"
	"recruiting-portal-backend/internal/metrics"
	"recruiting-portal-backend/internal/repository"
	"recruiting-portal-backend/internal/utils"
)

type reviewService struct {
	appRepo    repository.ApplicationRepository
	reviewRepo repository.ReviewRepository
	policy     domain.TransitionPolicy
	events     candidateEvents
}

func NewReviewService(
	appRepo repository.ApplicationRepository,
	reviewRepo repository.ReviewRepository,
	userRepo repository.UserRepository,
	cycleRepo repository.CycleRepository,
	orgRepo repository.OrganizationRepository,
	notifier Notifier,
	policy domain.TransitionPolicy,
) ReviewService {
	return &reviewService{
		appRepo:    appRepo,
		reviewRepo: reviewRepo,
		policy:     policy,
		events: candidateEvents{
			userRepo:  userRepo,
			cycleRepo: cycleRepo,
			orgRepo:   orgRepo,
			notifier:  notifier,
		},
	}
}

// UpdateStatus moves an application along the review pipeline. Setting the
// current status again changes nothing and notifies no one.
func (s *reviewService) UpdateStatus(ctx context.Context, caller domain.Caller, applicationID int32, status domain.ApplicationStatus) (*domain.Application, error) {
	log := logger.ScopeApplication(ctx, applicationID).With("method", "reviewService.UpdateStatus")
	log.Debug("→ Method entered", "reviewerID", caller.UserID, "status", status)
	if !caller.Role.CanReview() {
		return nil, domain.ErrForbidden
	}
	if !status.IsPipelineStage() {
		return nil, domain.ErrInvalidStatus
	}

	change, err := s.appRepo.TransitionStatus(ctx, applicationID, status, caller.UserID, s.policy)
	if err != nil {
		log.Error("← Method exited with error", "error", err)
		return nil, err
	}
	app, err := s.appRepo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if change == nil {
		log.Debug("← Method exited", "unchanged", true)
		return app, nil
	}

	metrics.StatusTransitions.WithLabelValues(string(change.OldStatus), string(change.NewStatus)).Inc()
	log.Info("Application status changed", "from", change.OldStatus, "to", change.NewStatus, "reviewerID", caller.UserID)
	s.events.emit(ctx, app, domain.Event{
		Kind:      domain.EventStatusChanged,
		OldStatus: change.OldStatus,
		NewStatus: change.NewStatus,
	})
	return app, nil
}

// ListStatusHistory is visible to reviewers and to the application's candidate.
func (s *reviewService) ListStatusHistory(ctx context.Context, caller domain.Caller, applicationID int32) ([]domain.StatusChange, error) {
	app, err := s.appRepo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if !caller.Role.CanReview() && app.CandidateID != caller.UserID {
		return nil, domain.ErrForbidden
	}
	return s.appRepo.ListStatusHistory(ctx, applicationID)
}

// SetScore records the caller's score, replacing any earlier one.
func (s *reviewService) SetScore(ctx context.Context, caller domain.Caller, applicationID, value int32, criteria map[string]int32) (*domain.Score, error) {
	if !caller.Role.CanReview() {
		return nil, domain.ErrForbidden
	}
	if err := domain.ValidateScore(value, criteria); err != nil {
		return nil, err
	}
	if err := s.requireSubmitted(ctx, applicationID); err != nil {
		return nil, err
	}

	score := &domain.Score{
		ApplicationID: applicationID,
		ReviewerID:    caller.UserID,
		Value:         value,
		Criteria:      criteria,
	}
	if err := s.reviewRepo.UpsertScore(ctx, score); err != nil {
		logger.ScopeApplication(ctx, applicationID).Error("Failed to store score", "reviewerID", caller.UserID, "error", err)
		return nil, err
	}
	metrics.ScoresRecorded.Inc()
	return score, nil
}

// ListScores returns every reviewer's current score and their rounded mean,
// nil when nobody has scored yet.
func (s *reviewService) ListScores(ctx context.Context, caller domain.Caller, applicationID int32) ([]domain.Score, *int32, error) {
	if !caller.Role.CanReview() {
		return nil, nil, domain.ErrForbidden
	}
	scores, err := s.reviewRepo.ListScores(ctx, applicationID)
	if err != nil {
		return nil, nil, err
	}
	values := make([]int32, len(scores))
	for i, sc := range scores {
		values[i] = sc.Value
	}
	avg, ok := utils.AverageScore(values)
	if !ok {
		return scores, nil, nil
	}
	return scores, &avg, nil
}

func (s *reviewService) AddNote(ctx context.Context, caller domain.Caller, applicationID int32, content string, isPrivate bool) (*domain.Note, error) {
	if !caller.Role.CanReview() {
		return nil, domain.ErrForbidden
	}
	trimmed, err := domain.NormalizeNoteContent(content)
	if err != nil {
		return nil, err
	}
	if err := s.requireSubmitted(ctx, applicationID); err != nil {
		return nil, err
	}

	note := &domain.Note{
		ApplicationID: applicationID,
		AuthorID:      caller.UserID,
		Content:       trimmed,
		IsPrivate:     isPrivate,
	}
	if err := s.reviewRepo.CreateNote(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

// DeleteNote removes a note. Only its author may do so.
func (s *reviewService) DeleteNote(ctx context.Context, caller domain.Caller, noteID int32) error {
	note, err := s.reviewRepo.GetNote(ctx, noteID)
	if err != nil {
		return err
	}
	if note.AuthorID != caller.UserID {
		return domain.ErrForbidden
	}
	return s.reviewRepo.DeleteNote(ctx, noteID)
}

// ListNotes hides other reviewers' private notes.
func (s *reviewService) ListNotes(ctx context.Context, caller domain.Caller, applicationID int32) ([]domain.Note, error) {
	if !caller.Role.CanReview() {
		return nil, domain.ErrForbidden
	}
	notes, err := s.reviewRepo.ListNotes(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	visible := make([]domain.Note, 0, len(notes))
	for i := range notes {
		if notes[i].VisibleTo(caller.UserID) {
			visible = append(visible, notes[i])
		}
	}
	return visible, nil
}

func (s *reviewService) requireSubmitted(ctx context.Context, applicationID int32) error {
	app, err := s.appRepo.GetByID(ctx, applicationID)
	if err != nil {
		return err
	}
	if app.IsDraft() {
		return domain.ErrNotSubmitted
	}
	return nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"recruiting-portal-backend/internal/domain"
	"recruiting-portal-backend/internal/logger"
	"recruiting-portal-backend/internal/metrics"
	"recruiting-portal-backend/internal/ratelimit"
	"recruiting-portal-backend/internal/repository"
	"recruiting-portal-backend/internal/utils"
)

type applicationService struct {
	appRepo      repository.ApplicationRepository
	cycleRepo    repository.CycleRepository
	questionRepo repository.QuestionRepository
	orgRepo      repository.OrganizationRepository
	userRepo     repository.UserRepository
	limiter      ratelimit.Limiter
	notifier     Notifier
}

func NewApplicationService(
	appRepo repository.ApplicationRepository,
	cycleRepo repository.CycleRepository,
	questionRepo repository.QuestionRepository,
	orgRepo repository.OrganizationRepository,
	userRepo repository.UserRepository,
	limiter ratelimit.Limiter,
	notifier Notifier,
) ApplicationService {
	return &applicationService{
		appRepo:      appRepo,
		cycleRepo:    cycleRepo,
		questionRepo: questionRepo,
		orgRepo:      orgRepo,
		userRepo:     userRepo,
		limiter:      limiter,
		notifier:     notifier,
	}
}

// SaveDraft stores the candidate's current answer set for the organization's
// active cycle. Each call carries the full answer set; keys that do not name a
// visible question of the cycle are ignored.
func (s *applicationService) SaveDraft(ctx context.Context, caller domain.Caller, orgID int32, subteamID *int32, answers map[string]domain.Answer) (*domain.Application, error) {
	logger.EnterMethod("applicationService.SaveDraft", "candidateID", caller.UserID, "orgID", orgID, "answers", len(answers))
	if caller.Role != domain.UserRoleCandidate {
		return nil, domain.ErrForbidden
	}

	if s.limiter != nil {
		allowed, err := s.limiter.Allow(ctx, fmt.Sprintf("draft:%d", caller.UserID))
		if err != nil {
			logger.FromContext(ctx).Warn("Save throttle unavailable", "candidateID", caller.UserID, "error", err)
		}
		if !allowed {
			metrics.DraftsSaved.WithLabelValues("throttled").Inc()
			logger.ExitMethodWithError("applicationService.SaveDraft", domain.ErrRateLimited, "candidateID", caller.UserID)
			return nil, domain.ErrRateLimited
		}
	}

	cycle, err := activeCycle(ctx, s.cycleRepo, orgID)
	if err != nil {
		metrics.DraftsSaved.WithLabelValues("no_cycle").Inc()
		logger.ExitMethodWithError("applicationService.SaveDraft", err, "orgID", orgID)
		return nil, err
	}

	if subteamID != nil {
		st, err := s.orgRepo.GetSubteam(ctx, *subteamID)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		if st == nil || st.OrgID != orgID {
			return nil, domain.ErrInvalidArgument
		}
	}

	app, err := s.appRepo.GetOrCreateDraft(ctx, caller.UserID, cycle.ID)
	if err != nil {
		logger.ExitMethodWithError("applicationService.SaveDraft", err)
		return nil, err
	}
	if !app.IsDraft() {
		metrics.DraftsSaved.WithLabelValues("already_submitted").Inc()
		return nil, domain.ErrAlreadySubmitted
	}

	questions, err := s.questionRepo.ListByCycle(ctx, cycle.ID)
	if err != nil {
		return nil, err
	}
	visible := domain.VisibleQuestions(questions, subteamID)
	responses, completion := interpretAnswers(visible, answers)

	app.SubteamID = subteamID
	app.CompletionPercent = completion
	app.LastSavedAt = time.Now()
	if err := s.appRepo.SaveDraft(ctx, app, responses); err != nil {
		metrics.DraftsSaved.WithLabelValues("error").Inc()
		logger.ExitMethodWithError("applicationService.SaveDraft", err, "applicationID", app.ID)
		return nil, err
	}
	app.Responses = responses

	metrics.DraftsSaved.WithLabelValues("saved").Inc()
	logger.ExitMethod("applicationService.SaveDraft", "applicationID", app.ID, "completion", completion)
	return app, nil
}

// interpretAnswers maps answer keys onto the visible questions and computes the
// completion percentage of the resulting set. Only canonical decimal ids are
// accepted as keys, so each question yields at most one response.
func interpretAnswers(visible []domain.Question, answers map[string]domain.Answer) ([]domain.Response, int32) {
	byID := make(map[int32]*domain.Question, len(visible))
	for i := range visible {
		byID[visible[i].ID] = &visible[i]
	}

	answered := make(map[int32]bool, len(answers))
	responses := make([]domain.Response, 0, len(answers))
	for key, a := range answers {
		id, err := strconv.ParseInt(key, 10, 32)
		if err != nil || strconv.FormatInt(id, 10) != key {
			continue
		}
		q, ok := byID[int32(id)]
		if !ok {
			continue
		}
		r, nonBlank := q.Interpret(a)
		responses = append(responses, r)
		if nonBlank {
			answered[q.ID] = true
		}
	}

	sort.Slice(responses, func(i, j int) bool { return responses[i].QuestionID < responses[j].QuestionID })

	allRequired := true
	for _, q := range visible {
		if q.IsRequired && !answered[q.ID] {
			allRequired = false
			break
		}
	}
	return responses, utils.CompletionPercent(len(answered), len(visible), allRequired)
}

func (s *applicationService) SubmitApplication(ctx context.Context, caller domain.Caller, applicationID int32) (*domain.Application, error) {
	logger.EnterMethod("applicationService.SubmitApplication", "applicationID", applicationID, "candidateID", caller.UserID)
	app, err := s.appRepo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if app.CandidateID != caller.UserID {
		return nil, domain.ErrForbidden
	}
	if !app.IsDraft() {
		return nil, domain.ErrAlreadySubmitted
	}

	cycle, err := s.cycleRepo.GetByID(ctx, app.CycleID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	if !cycle.AcceptsSubmissionAt(now) {
		return nil, domain.ErrDeadlinePassed
	}

	candidate, err := s.userRepo.GetByID(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}
	if cycle.RequireResume && candidate.ResumeURL == "" {
		return nil, domain.ErrResumeRequired
	}

	if err := s.appRepo.Submit(ctx, applicationID, now); err != nil {
		logger.ExitMethodWithError("applicationService.SubmitApplication", err, "applicationID", applicationID)
		return nil, err
	}
	app.Status = domain.ApplicationStatusSubmitted
	app.SubmittedAt = &now
	app.CompletionPercent = 100
	metrics.ApplicationsSubmitted.Inc()

	s.announceSubmission(ctx, app, cycle, candidate)
	logger.ExitMethod("applicationService.SubmitApplication", "applicationID", applicationID)
	return app, nil
}

// announceSubmission notifies the candidate and every reviewer of the
// organization. Lookup failures only cost the notifications.
func (s *applicationService) announceSubmission(ctx context.Context, app *domain.Application, cycle *domain.RecruitingCycle, candidate *domain.User) {
	if s.notifier == nil {
		return
	}
	orgName := ""
	if org, err := s.orgRepo.GetByID(ctx, cycle.OrgID); err == nil {
		orgName = org.Name
	} else {
		logger.ScopeCycle(ctx, cycle.ID).Warn("Organization lookup failed for notification", "orgID", cycle.OrgID, "error", err)
	}

	s.notifier.Notify(ctx, domain.Event{
		Kind:          domain.EventApplicationSubmitted,
		OrgID:         cycle.OrgID,
		OrgName:       orgName,
		ApplicationID: app.ID,
		RecipientID:   candidate.ID,
		Recipient:     candidate.Email,
		RecipientName: candidate.Name,
	})

	reviewers, err := s.userRepo.ListOrgReviewers(ctx, cycle.OrgID)
	if err != nil {
		logger.ScopeCycle(ctx, cycle.ID).Warn("Reviewer lookup failed for notification", "orgID", cycle.OrgID, "error", err)
		return
	}
	for _, r := range reviewers {
		s.notifier.Notify(ctx, domain.Event{
			Kind:          domain.EventNewApplication,
			OrgID:         cycle.OrgID,
			OrgName:       orgName,
			ApplicationID: app.ID,
			RecipientID:   r.ID,
			Recipient:     r.Email,
			RecipientName: r.Name,
			CandidateName: candidate.Name,
		})
	}
}

// GetApplication returns the application with its responses. Candidates see
// only their own; reviewers see any.
func (s *applicationService) GetApplication(ctx context.Context, caller domain.Caller, applicationID int32) (*domain.Application, error) {
	app, err := s.appRepo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if app.CandidateID != caller.UserID && !caller.Role.CanReview() {
		return nil, domain.ErrForbidden
	}
	responses, err := s.appRepo.ListResponses(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	app.Responses = responses
	return app, nil
}

func (s *applicationService) ListMyApplications(ctx context.Context, caller domain.Caller) ([]domain.Application, error) {
	return s.appRepo.ListByCandidate(ctx, caller.UserID)
}

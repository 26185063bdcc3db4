package service

import (
	"context"
	"errors"

	"recruiting-portal-backend/internal/domain"
	"recruiting-portal-backend/internal/logger"
	"recruiting-portal-backend/internal/metrics"
	"recruiting-portal-backend/internal/repository"
)

type catalogService struct {
	questionRepo repository.QuestionRepository
	cycleRepo    repository.CycleRepository
	orgRepo      repository.OrganizationRepository
}

func NewCatalogService(questionRepo repository.QuestionRepository, cycleRepo repository.CycleRepository, orgRepo repository.OrganizationRepository) CatalogService {
	return &catalogService{
		questionRepo: questionRepo,
		cycleRepo:    cycleRepo,
		orgRepo:      orgRepo,
	}
}

// ListQuestions returns general questions first, then each subteam's, each in
// ordinal order.
func (s *catalogService) ListQuestions(ctx context.Context, cycleID int32) ([]domain.Question, error) {
	return s.questionRepo.ListByCycle(ctx, cycleID)
}

func (s *catalogService) VisibleQuestions(ctx context.Context, cycleID int32, subteamID *int32) ([]domain.Question, error) {
	all, err := s.questionRepo.ListByCycle(ctx, cycleID)
	if err != nil {
		return nil, err
	}
	return domain.VisibleQuestions(all, subteamID), nil
}

// InsertQuestion appends q at the end of its (cycle, subteam) partition.
func (s *catalogService) InsertQuestion(ctx context.Context, q *domain.Question) error {
	logger.EnterMethod("catalogService.InsertQuestion", "cycleID", q.CycleID, "subteamID", q.SubteamID)
	if err := q.Validate(); err != nil {
		return err
	}
	cycle, err := s.cycleRepo.GetByID(ctx, q.CycleID)
	if err != nil {
		return err
	}
	if q.SubteamID != nil {
		if err := s.checkSubteam(ctx, cycle.OrgID, *q.SubteamID); err != nil {
			return err
		}
	}
	if err := s.questionRepo.Insert(ctx, q); err != nil {
		logger.ExitMethodWithError("catalogService.InsertQuestion", err)
		return err
	}
	metrics.CatalogMutations.WithLabelValues("insert").Inc()
	logger.ExitMethod("catalogService.InsertQuestion", "questionID", q.ID, "order", q.Order)
	return nil
}

// UpdateQuestion replaces the content fields; the ordinal is untouched.
func (s *catalogService) UpdateQuestion(ctx context.Context, id int32, content domain.QuestionContent) (*domain.Question, error) {
	existing, err := s.questionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	candidate := *existing
	candidate.Prompt = content.Prompt
	candidate.Description = content.Description
	candidate.Type = content.Type
	candidate.IsRequired = content.IsRequired
	candidate.CharLimit = content.CharLimit
	candidate.WordLimit = content.WordLimit
	candidate.Options = content.Options
	if err := candidate.Validate(); err != nil {
		return nil, err
	}

	if err := s.questionRepo.UpdateContent(ctx, id, content); err != nil {
		return nil, err
	}
	metrics.CatalogMutations.WithLabelValues("update").Inc()
	return s.questionRepo.GetByID(ctx, id)
}

func (s *catalogService) RemoveQuestion(ctx context.Context, id int32) error {
	logger.EnterMethod("catalogService.RemoveQuestion", "questionID", id)
	if err := s.questionRepo.Remove(ctx, id); err != nil {
		logger.ExitMethodWithError("catalogService.RemoveQuestion", err)
		return err
	}
	metrics.CatalogMutations.WithLabelValues("remove").Inc()
	logger.ExitMethod("catalogService.RemoveQuestion", "questionID", id)
	return nil
}

// MoveQuestion returns the ordinal the question landed on. Targets outside
// the partition are clamped to its ends.
func (s *catalogService) MoveQuestion(ctx context.Context, id, target int32) (int32, error) {
	logger.EnterMethod("catalogService.MoveQuestion", "questionID", id, "target", target)
	landed, err := s.questionRepo.Move(ctx, id, target)
	if err != nil {
		logger.ExitMethodWithError("catalogService.MoveQuestion", err)
		return 0, err
	}
	metrics.CatalogMutations.WithLabelValues("move").Inc()
	logger.ExitMethod("catalogService.MoveQuestion", "questionID", id, "order", landed)
	return landed, nil
}

func (s *catalogService) RepackQuestions(ctx context.Context, cycleID int32, subteamID *int32) (int, error) {
	logger.EnterMethod("catalogService.RepackQuestions", "cycleID", cycleID, "subteamID", subteamID)
	if _, err := s.cycleRepo.GetByID(ctx, cycleID); err != nil {
		return 0, err
	}
	moved, err := s.questionRepo.Repack(ctx, domain.QuestionScope{CycleID: cycleID, SubteamID: subteamID})
	if err != nil {
		logger.ExitMethodWithError("catalogService.RepackQuestions", err)
		return 0, err
	}
	metrics.CatalogMutations.WithLabelValues("repack").Inc()
	if moved > 0 {
		logger.ScopeCycle(ctx, cycleID).Info("Question order repacked", "subteamID", subteamID, "moved", moved)
	}
	logger.ExitMethod("catalogService.RepackQuestions", "moved", moved)
	return moved, nil
}

func (s *catalogService) checkSubteam(ctx context.Context, orgID, subteamID int32) error {
	st, err := s.orgRepo.GetSubteam(ctx, subteamID)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.ErrInvalidArgument
	}
	if err != nil {
		return err
	}
	if st.OrgID != orgID {
		return domain.ErrInvalidArgument
	}
	return nil
}

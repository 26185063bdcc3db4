package service

import (
	"context"
	"errors"
	"strings"

	"recruiting-portal-backend/internal/domain"
	"recruiting-portal-backend/internal/logger"
	"recruiting-portal-backend/internal/repository"
)

type cycleService struct {
	cycleRepo repository.CycleRepository
	orgRepo   repository.OrganizationRepository
}

func NewCycleService(cycleRepo repository.CycleRepository, orgRepo repository.OrganizationRepository) CycleService {
	return &cycleService{
		cycleRepo: cycleRepo,
		orgRepo:   orgRepo,
	}
}

func (s *cycleService) GetActiveCycle(ctx context.Context, orgID int32) (*domain.RecruitingCycle, error) {
	return activeCycle(ctx, s.cycleRepo, orgID)
}

// activeCycle maps a missing active cycle onto domain.ErrNoActiveCycle.
func activeCycle(ctx context.Context, repo repository.CycleRepository, orgID int32) (*domain.RecruitingCycle, error) {
	cycle, err := repo.GetActiveByOrg(ctx, orgID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrNoActiveCycle
	}
	return cycle, err
}

func (s *cycleService) ListCycles(ctx context.Context, orgID int32) ([]domain.RecruitingCycle, error) {
	return s.cycleRepo.ListByOrg(ctx, orgID)
}

// CreateCycle stores a new inactive cycle.
func (s *cycleService) CreateCycle(ctx context.Context, cycle *domain.RecruitingCycle) error {
	logger.EnterMethod("cycleService.CreateCycle", "orgID", cycle.OrgID)
	cycle.Name = strings.TrimSpace(cycle.Name)
	if cycle.Name == "" {
		return domain.ErrInvalidArgument
	}
	if err := timelineOf(cycle).Validate(); err != nil {
		return err
	}
	if _, err := s.orgRepo.GetByID(ctx, cycle.OrgID); err != nil {
		return err
	}
	if err := s.cycleRepo.Create(ctx, cycle); err != nil {
		logger.ExitMethodWithError("cycleService.CreateCycle", err)
		return err
	}
	logger.ExitMethod("cycleService.CreateCycle", "cycleID", cycle.ID)
	return nil
}

func (s *cycleService) UpdateTimeline(ctx context.Context, cycleID int32, timeline domain.CycleTimeline) (*domain.RecruitingCycle, error) {
	if err := timeline.Validate(); err != nil {
		return nil, err
	}
	if err := s.cycleRepo.UpdateTimeline(ctx, cycleID, timeline); err != nil {
		return nil, err
	}
	return s.cycleRepo.GetByID(ctx, cycleID)
}

func (s *cycleService) ActivateCycle(ctx context.Context, cycleID int32) (*domain.RecruitingCycle, error) {
	logger.EnterMethod("cycleService.ActivateCycle", "cycleID", cycleID)
	if err := s.cycleRepo.Activate(ctx, cycleID); err != nil {
		logger.ExitMethodWithError("cycleService.ActivateCycle", err)
		return nil, err
	}
	logger.ScopeCycle(ctx, cycleID).Info("Recruiting cycle activated")
	logger.ExitMethod("cycleService.ActivateCycle", "cycleID", cycleID)
	return s.cycleRepo.GetByID(ctx, cycleID)
}

func timelineOf(c *domain.RecruitingCycle) domain.CycleTimeline {
	return domain.CycleTimeline{
		OpenDate:             c.OpenDate,
		Deadline:             c.Deadline,
		ReviewDeadline:       c.ReviewDeadline,
		DecisionDate:         c.DecisionDate,
		AllowLateSubmissions: c.AllowLateSubmissions,
		RequireResume:        c.RequireResume,
	}
}

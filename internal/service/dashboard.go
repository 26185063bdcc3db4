package service

import (
	"context"

	"recruiting-portal-backend/internal/domain"
	"recruiting-portal-backend/internal/logger"
	"recruiting-portal-backend/internal/repository"
	"recruiting-portal-backend/internal/utils"

	"golang.org/x/sync/errgroup"
)

const dashboardLookupLimit = 8

type dashboardService struct {
	cycleRepo  repository.CycleRepository
	appRepo    repository.ApplicationRepository
	reviewRepo repository.ReviewRepository
	userRepo   repository.UserRepository
}

func NewDashboardService(cycleRepo repository.CycleRepository, appRepo repository.ApplicationRepository, reviewRepo repository.ReviewRepository, userRepo repository.UserRepository) DashboardService {
	return &dashboardService{
		cycleRepo:  cycleRepo,
		appRepo:    appRepo,
		reviewRepo: reviewRepo,
		userRepo:   userRepo,
	}
}

// GetDashboard is recomputed on every read from the active cycle's rows.
func (s *dashboardService) GetDashboard(ctx context.Context, caller domain.Caller, orgID int32) (*domain.Dashboard, error) {
	logger.EnterMethod("dashboardService.GetDashboard", "orgID", orgID, "callerID", caller.UserID)
	if !caller.Role.CanReview() {
		return nil, domain.ErrForbidden
	}
	cycle, err := activeCycle(ctx, s.cycleRepo, orgID)
	if err != nil {
		return nil, err
	}

	var (
		counts map[domain.ApplicationStatus]int32
		apps   []domain.Application
		scores map[int32][]int32
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		counts, err = s.appRepo.CountByStatus(gctx, cycle.ID)
		return err
	})
	g.Go(func() error {
		var err error
		apps, err = s.appRepo.ListByCycle(gctx, cycle.ID, domain.PipelineStatuses)
		return err
	})
	g.Go(func() error {
		var err error
		scores, err = s.reviewRepo.ListScoreValuesByCycle(gctx, cycle.ID)
		return err
	})
	if err := g.Wait(); err != nil {
		logger.ExitMethodWithError("dashboardService.GetDashboard", err, "orgID", orgID)
		return nil, err
	}

	names, err := s.candidateNames(ctx, apps)
	if err != nil {
		return nil, err
	}

	d := &domain.Dashboard{
		Cycle:        *cycle,
		StageCounts:  make(map[domain.ApplicationStatus]int32, len(domain.PipelineStatuses)),
		DraftCount:   counts[domain.ApplicationStatusDraft],
		Applications: make([]domain.ApplicationSummary, 0, len(apps)),
	}
	for _, st := range domain.PipelineStatuses {
		d.StageCounts[st] = counts[st]
		d.TotalSubmitted += counts[st]
	}
	for _, app := range apps {
		summary := domain.ApplicationSummary{
			Application:   app,
			CandidateName: names[app.CandidateID],
			ScoreCount:    int32(len(scores[app.ID])),
		}
		if avg, ok := utils.AverageScore(scores[app.ID]); ok {
			summary.AverageScore = &avg
		}
		d.Applications = append(d.Applications, summary)
	}

	logger.ExitMethod("dashboardService.GetDashboard", "orgID", orgID, "applications", len(apps))
	return d, nil
}

func (s *dashboardService) candidateNames(ctx context.Context, apps []domain.Application) (map[int32]string, error) {
	ids := make([]int32, 0, len(apps))
	seen := make(map[int32]bool, len(apps))
	for _, a := range apps {
		if !seen[a.CandidateID] {
			seen[a.CandidateID] = true
			ids = append(ids, a.CandidateID)
		}
	}

	found := make([]string, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(dashboardLookupLimit)
	for i, id := range ids {
		g.Go(func() error {
			u, err := s.userRepo.GetByID(gctx, id)
			if err != nil {
				return err
			}
			found[i] = u.Name
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	names := make(map[int32]string, len(ids))
	for i, id := range ids {
		names[id] = found[i]
	}
	return names, nil
}

package service

import (
	"context"
	"strings"
	"time"

	"recruiting-portal-backend/internal/domain"
	"recruiting-portal-backend/internal/logger"
	"recruiting-portal-backend/internal/repository"
)

type organizationService struct {
	orgRepo  repository.OrganizationRepository
	userRepo repository.UserRepository
}

func NewOrganizationService(orgRepo repository.OrganizationRepository, userRepo repository.UserRepository) OrganizationService {
	return &organizationService{
		orgRepo:  orgRepo,
		userRepo: userRepo,
	}
}

func (s *organizationService) ListOrganizations(ctx context.Context) ([]domain.Organization, error) {
	return s.orgRepo.List(ctx)
}

func (s *organizationService) GetOrganization(ctx context.Context, id int32) (*domain.Organization, error) {
	return s.orgRepo.GetByID(ctx, id)
}

func (s *organizationService) CreateOrganization(ctx context.Context, caller domain.Caller, org *domain.Organization) error {
	logger.EnterMethod("organizationService.CreateOrganization", "slug", org.Slug, "callerID", caller.UserID)
	org.Name = strings.TrimSpace(org.Name)
	org.Slug = strings.ToLower(strings.TrimSpace(org.Slug))
	if org.Name == "" || org.Slug == "" {
		return domain.ErrInvalidArgument
	}
	if err := s.orgRepo.Create(ctx, org); err != nil {
		logger.ExitMethodWithError("organizationService.CreateOrganization", err)
		return err
	}

	// Creator leads the new organization
	member := &domain.OrgMember{
		UserID:   caller.UserID,
		OrgID:    org.ID,
		Role:     domain.MemberRoleLead,
		JoinedOn: time.Now(),
	}
	if err := s.userRepo.AddOrgMember(ctx, member); err != nil {
		logger.ExitMethodWithError("organizationService.CreateOrganization", err)
		return err
	}
	logger.ExitMethod("organizationService.CreateOrganization", "orgID", org.ID)
	return nil
}

func (s *organizationService) CreateSubteam(ctx context.Context, subteam *domain.Subteam) error {
	subteam.Name = strings.TrimSpace(subteam.Name)
	if subteam.Name == "" {
		return domain.ErrInvalidArgument
	}
	if _, err := s.orgRepo.GetByID(ctx, subteam.OrgID); err != nil {
		return err
	}
	return s.orgRepo.CreateSubteam(ctx, subteam)
}

// AddMember attaches a reviewer or lead. Only users with a reviewing role can
// be members, since membership is what routes new-application alerts.
func (s *organizationService) AddMember(ctx context.Context, member *domain.OrgMember) error {
	if member.Role != domain.MemberRoleReviewer && member.Role != domain.MemberRoleLead {
		return domain.ErrInvalidArgument
	}
	user, err := s.userRepo.GetByID(ctx, member.UserID)
	if err != nil {
		return err
	}
	if !user.Role.CanReview() {
		return domain.ErrInvalidArgument
	}
	if _, err := s.orgRepo.GetByID(ctx, member.OrgID); err != nil {
		return err
	}
	member.JoinedOn = time.Now()
	return s.userRepo.AddOrgMember(ctx, member)
}

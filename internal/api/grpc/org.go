package grpc

import (
	"context"

	"google.golang.org/grpc"

	"recruiting-portal-backend/internal/domain"
	"recruiting-portal-backend/internal/service"
)

type OrganizationHandler struct {
	orgSvc service.OrganizationService
}

func NewOrganizationHandler(orgSvc service.OrganizationService) *OrganizationHandler {
	return &OrganizationHandler{orgSvc: orgSvc}
}

func (h *OrganizationHandler) desc() *grpc.ServiceDesc {
	const svc = "OrganizationService"
	return serviceDesc(svc,
		unary(svc, "ListOrganizations", h.ListOrganizations),
		unary(svc, "GetOrganization", h.GetOrganization),
		unary(svc, "CreateOrganization", h.CreateOrganization),
		unary(svc, "CreateSubteam", h.CreateSubteam),
		unary(svc, "AddMember", h.AddMember),
	)
}

func (h *OrganizationHandler) ListOrganizations(ctx context.Context, _ *Empty) (*ListOrganizationsResponse, error) {
	orgs, err := h.orgSvc.ListOrganizations(ctx)
	if err != nil {
		return nil, err
	}
	return &ListOrganizationsResponse{Organizations: orgs}, nil
}

func (h *OrganizationHandler) GetOrganization(ctx context.Context, req *GetOrganizationRequest) (*OrganizationResponse, error) {
	org, err := h.orgSvc.GetOrganization(ctx, req.OrganizationID)
	if err != nil {
		return nil, err
	}
	return &OrganizationResponse{Organization: org}, nil
}

func (h *OrganizationHandler) CreateOrganization(ctx context.Context, req *CreateOrganizationRequest) (*OrganizationResponse, error) {
	caller, err := GetCallerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	org := &domain.Organization{
		Slug:         req.Slug,
		Name:         req.Name,
		Description:  req.Description,
		ContactEmail: req.ContactEmail,
		IsRecruiting: req.IsRecruiting,
	}
	if err := h.orgSvc.CreateOrganization(ctx, caller, org); err != nil {
		return nil, err
	}
	return &OrganizationResponse{Organization: org}, nil
}

func (h *OrganizationHandler) CreateSubteam(ctx context.Context, req *CreateSubteamRequest) (*SubteamResponse, error) {
	subteam := &domain.Subteam{
		OrgID:        req.OrganizationID,
		Name:         req.Name,
		Description:  req.Description,
		IsRecruiting: req.IsRecruiting,
	}
	if err := h.orgSvc.CreateSubteam(ctx, subteam); err != nil {
		return nil, err
	}
	return &SubteamResponse{Subteam: subteam}, nil
}

func (h *OrganizationHandler) AddMember(ctx context.Context, req *AddMemberRequest) (*Empty, error) {
	member := &domain.OrgMember{
		UserID: req.UserID,
		OrgID:  req.OrganizationID,
		Role:   req.Role,
	}
	if err := h.orgSvc.AddMember(ctx, member); err != nil {
		return nil, err
	}
	return &Empty{}, nil
}

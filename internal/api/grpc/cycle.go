package grpc

import (
	"context"

	"google.golang.org/grpc"

	"recruiting-portal-backend/internal/domain"
	"recruiting-portal-backend/internal/service"
)

type CycleHandler struct {
	cycleSvc service.CycleService
}

func NewCycleHandler(cycleSvc service.CycleService) *CycleHandler {
	return &CycleHandler{cycleSvc: cycleSvc}
}

func (h *CycleHandler) desc() *grpc.ServiceDesc {
	const svc = "CycleService"
	return serviceDesc(svc,
		unary(svc, "GetActiveCycle", h.GetActiveCycle),
		unary(svc, "ListCycles", h.ListCycles),
		unary(svc, "CreateCycle", h.CreateCycle),
		unary(svc, "UpdateTimeline", h.UpdateTimeline),
		unary(svc, "ActivateCycle", h.ActivateCycle),
	)
}

func (h *CycleHandler) GetActiveCycle(ctx context.Context, req *OrganizationScopedRequest) (*CycleResponse, error) {
	cycle, err := h.cycleSvc.GetActiveCycle(ctx, req.OrganizationID)
	if err != nil {
		return nil, err
	}
	return &CycleResponse{Cycle: cycle}, nil
}

func (h *CycleHandler) ListCycles(ctx context.Context, req *OrganizationScopedRequest) (*ListCyclesResponse, error) {
	cycles, err := h.cycleSvc.ListCycles(ctx, req.OrganizationID)
	if err != nil {
		return nil, err
	}
	return &ListCyclesResponse{Cycles: cycles}, nil
}

func (h *CycleHandler) CreateCycle(ctx context.Context, req *CreateCycleRequest) (*CycleResponse, error) {
	cycle := &domain.RecruitingCycle{
		OrgID:                req.OrganizationID,
		Name:                 req.Name,
		Semester:             req.Semester,
		OpenDate:             req.OpenDate,
		Deadline:             req.Deadline,
		ReviewDeadline:       req.ReviewDeadline,
		DecisionDate:         req.DecisionDate,
		AllowLateSubmissions: req.AllowLateSubmissions,
		RequireResume:        req.RequireResume,
	}
	if err := h.cycleSvc.CreateCycle(ctx, cycle); err != nil {
		return nil, err
	}
	return &CycleResponse{Cycle: cycle}, nil
}

func (h *CycleHandler) UpdateTimeline(ctx context.Context, req *UpdateTimelineRequest) (*CycleResponse, error) {
	cycle, err := h.cycleSvc.UpdateTimeline(ctx, req.CycleID, mapTimelineToDomain(req.Timeline))
	if err != nil {
		return nil, err
	}
	return &CycleResponse{Cycle: cycle}, nil
}

func (h *CycleHandler) ActivateCycle(ctx context.Context, req *CycleRequest) (*CycleResponse, error) {
	cycle, err := h.cycleSvc.ActivateCycle(ctx, req.CycleID)
	if err != nil {
		return nil, err
	}
	return &CycleResponse{Cycle: cycle}, nil
}

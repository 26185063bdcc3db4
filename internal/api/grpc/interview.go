package grpc

import (
	"context"

	"google.golang.org/grpc"

	"recruiting-portal-backend/internal/domain"
	"recruiting-portal-backend/internal/service"
)

type InterviewHandler struct {
	interviewSvc service.InterviewService
}

func NewInterviewHandler(interviewSvc service.InterviewService) *InterviewHandler {
	return &InterviewHandler{interviewSvc: interviewSvc}
}

func (h *InterviewHandler) desc() *grpc.ServiceDesc {
	const svc = "InterviewService"
	return serviceDesc(svc,
		unary(svc, "CreateSlot", h.CreateSlot),
		unary(svc, "ScheduleInterview", h.ScheduleInterview),
		unary(svc, "ListSlots", h.ListSlots),
	)
}

func (h *InterviewHandler) CreateSlot(ctx context.Context, req *CreateSlotRequest) (*SlotResponse, error) {
	caller, err := GetCallerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	slot := &domain.InterviewSlot{
		CycleID:        req.CycleID,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		Location:       req.Location,
		VirtualLink:    req.VirtualLink,
		InterviewerIDs: req.InterviewerIDs,
	}
	if err := h.interviewSvc.CreateSlot(ctx, caller, slot); err != nil {
		return nil, err
	}
	return &SlotResponse{Slot: slot}, nil
}

func (h *InterviewHandler) ScheduleInterview(ctx context.Context, req *ScheduleInterviewRequest) (*SlotResponse, error) {
	caller, err := GetCallerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	slot, err := h.interviewSvc.ScheduleInterview(ctx, caller, req.SlotID, req.ApplicationID)
	if err != nil {
		return nil, err
	}
	return &SlotResponse{Slot: slot}, nil
}

func (h *InterviewHandler) ListSlots(ctx context.Context, req *CycleRequest) (*SlotsResponse, error) {
	caller, err := GetCallerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	slots, err := h.interviewSvc.ListSlots(ctx, caller, req.CycleID)
	if err != nil {
		return nil, err
	}
	return &SlotsResponse{Slots: slots}, nil
}

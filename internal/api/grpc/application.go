package grpc

import (
	"context"
	"time"

	"google.golang.org/grpc"

	"recruiting-portal-backend/internal/domain"
	"recruiting-portal-backend/internal/logger"
	"recruiting-portal-backend/internal/service"
)

type ApplicationHandler struct {
	appSvc      service.ApplicationService
	quietPeriod time.Duration
}

// NewApplicationHandler advertises quietPeriod to autosave clients as the
// debounce delay to wait between an edit and its save.
func NewApplicationHandler(appSvc service.ApplicationService, quietPeriod time.Duration) *ApplicationHandler {
	return &ApplicationHandler{appSvc: appSvc, quietPeriod: quietPeriod}
}

func (h *ApplicationHandler) desc() *grpc.ServiceDesc {
	const svc = "ApplicationService"
	return serviceDesc(svc,
		unary(svc, "SaveDraft", h.SaveDraft),
		unary(svc, "SubmitApplication", h.SubmitApplication),
		unary(svc, "ListMyApplications", h.ListMyApplications),
		unary(svc, "GetApplication", h.GetApplication),
	)
}

// SaveDraft persists the candidate's answers. A deferred save is reported in
// the response instead of as an error so autosave clients keep their state.
func (h *ApplicationHandler) SaveDraft(ctx context.Context, req *SaveDraftRequest) (*SaveDraftResponse, error) {
	caller, err := GetCallerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	app, err := h.appSvc.SaveDraft(ctx, caller, req.OrganizationID, req.SubteamID, req.Answers)
	if err != nil {
		if domain.IsSoftFailure(err) {
			logger.FromContext(ctx).Info("Draft save deferred", "orgID", req.OrganizationID, "reason", err.Error())
			return &SaveDraftResponse{
				Saved:         false,
				Reason:        softFailureReason(err),
				QuietPeriodMs: h.quietPeriod.Milliseconds(),
			}, nil
		}
		return nil, err
	}
	return &SaveDraftResponse{Application: app, Saved: true, QuietPeriodMs: h.quietPeriod.Milliseconds()}, nil
}

func (h *ApplicationHandler) SubmitApplication(ctx context.Context, req *ApplicationRequest) (*ApplicationResponse, error) {
	caller, err := GetCallerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	app, err := h.appSvc.SubmitApplication(ctx, caller, req.ApplicationID)
	if err != nil {
		return nil, err
	}
	return &ApplicationResponse{Application: app}, nil
}

func (h *ApplicationHandler) ListMyApplications(ctx context.Context, _ *Empty) (*ApplicationsResponse, error) {
	caller, err := GetCallerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	apps, err := h.appSvc.ListMyApplications(ctx, caller)
	if err != nil {
		return nil, err
	}
	return &ApplicationsResponse{Applications: apps}, nil
}

func (h *ApplicationHandler) GetApplication(ctx context.Context, req *ApplicationRequest) (*ApplicationResponse, error) {
	caller, err := GetCallerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	app, err := h.appSvc.GetApplication(ctx, caller, req.ApplicationID)
	if err != nil {
		return nil, err
	}
	return &ApplicationResponse{Application: app}, nil
}

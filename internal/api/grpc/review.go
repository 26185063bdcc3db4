package grpc

import (
	"context"

	"google.golang.org/grpc"

	"recruiting-portal-backend/internal/service"
)

type ReviewHandler struct {
	reviewSvc    service.ReviewService
	dashboardSvc service.DashboardService
}

func NewReviewHandler(reviewSvc service.ReviewService, dashboardSvc service.DashboardService) *ReviewHandler {
	return &ReviewHandler{reviewSvc: reviewSvc, dashboardSvc: dashboardSvc}
}

func (h *ReviewHandler) desc() *grpc.ServiceDesc {
	const svc = "ReviewService"
	return serviceDesc(svc,
		unary(svc, "UpdateStatus", h.UpdateStatus),
		unary(svc, "ListStatusHistory", h.ListStatusHistory),
		unary(svc, "SetScore", h.SetScore),
		unary(svc, "ListScores", h.ListScores),
		unary(svc, "AddNote", h.AddNote),
		unary(svc, "DeleteNote", h.DeleteNote),
		unary(svc, "ListNotes", h.ListNotes),
		unary(svc, "GetDashboard", h.GetDashboard),
	)
}

func (h *ReviewHandler) UpdateStatus(ctx context.Context, req *UpdateStatusRequest) (*ApplicationResponse, error) {
	caller, err := GetCallerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	app, err := h.reviewSvc.UpdateStatus(ctx, caller, req.ApplicationID, req.Status)
	if err != nil {
		return nil, err
	}
	return &ApplicationResponse{Application: app}, nil
}

func (h *ReviewHandler) ListStatusHistory(ctx context.Context, req *ApplicationRequest) (*StatusHistoryResponse, error) {
	caller, err := GetCallerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	history, err := h.reviewSvc.ListStatusHistory(ctx, caller, req.ApplicationID)
	if err != nil {
		return nil, err
	}
	return &StatusHistoryResponse{History: history}, nil
}

func (h *ReviewHandler) SetScore(ctx context.Context, req *SetScoreRequest) (*ScoreResponse, error) {
	caller, err := GetCallerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	score, err := h.reviewSvc.SetScore(ctx, caller, req.ApplicationID, req.Value, req.Criteria)
	if err != nil {
		return nil, err
	}
	return &ScoreResponse{Score: score}, nil
}

func (h *ReviewHandler) ListScores(ctx context.Context, req *ApplicationRequest) (*ScoresResponse, error) {
	caller, err := GetCallerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	scores, avg, err := h.reviewSvc.ListScores(ctx, caller, req.ApplicationID)
	if err != nil {
		return nil, err
	}
	return &ScoresResponse{Scores: scores, Average: avg}, nil
}

func (h *ReviewHandler) AddNote(ctx context.Context, req *AddNoteRequest) (*NoteResponse, error) {
	caller, err := GetCallerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	note, err := h.reviewSvc.AddNote(ctx, caller, req.ApplicationID, req.Content, req.IsPrivate)
	if err != nil {
		return nil, err
	}
	return &NoteResponse{Note: note}, nil
}

func (h *ReviewHandler) DeleteNote(ctx context.Context, req *NoteRequest) (*Empty, error) {
	caller, err := GetCallerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := h.reviewSvc.DeleteNote(ctx, caller, req.NoteID); err != nil {
		return nil, err
	}
	return &Empty{}, nil
}

func (h *ReviewHandler) ListNotes(ctx context.Context, req *ApplicationRequest) (*NotesResponse, error) {
	caller, err := GetCallerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	notes, err := h.reviewSvc.ListNotes(ctx, caller, req.ApplicationID)
	if err != nil {
		return nil, err
	}
	return &NotesResponse{Notes: notes}, nil
}

func (h *ReviewHandler) GetDashboard(ctx context.Context, req *OrganizationScopedRequest) (*DashboardResponse, error) {
	caller, err := GetCallerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	dash, err := h.dashboardSvc.GetDashboard(ctx, caller, req.OrganizationID)
	if err != nil {
		return nil, err
	}
	return &DashboardResponse{Dashboard: dash}, nil
}

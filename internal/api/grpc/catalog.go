package grpc

import (
	"context"

	"google.golang.org/grpc"

	"recruiting-portal-backend/internal/domain"
	"recruiting-portal-backend/internal/service"
)

type CatalogHandler struct {
	catalogSvc service.CatalogService
}

func NewCatalogHandler(catalogSvc service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogSvc: catalogSvc}
}

func (h *CatalogHandler) desc() *grpc.ServiceDesc {
	const svc = "CatalogService"
	return serviceDesc(svc,
		unary(svc, "ListQuestions", h.ListQuestions),
		unary(svc, "VisibleQuestions", h.VisibleQuestions),
		unary(svc, "InsertQuestion", h.InsertQuestion),
		unary(svc, "UpdateQuestion", h.UpdateQuestion),
		unary(svc, "RemoveQuestion", h.RemoveQuestion),
		unary(svc, "MoveQuestion", h.MoveQuestion),
		unary(svc, "RepackQuestions", h.RepackQuestions),
	)
}

func (h *CatalogHandler) ListQuestions(ctx context.Context, req *ListQuestionsRequest) (*QuestionsResponse, error) {
	questions, err := h.catalogSvc.ListQuestions(ctx, req.CycleID)
	if err != nil {
		return nil, err
	}
	return &QuestionsResponse{Questions: questions}, nil
}

// VisibleQuestions returns what a candidate sees for the selected subteam.
func (h *CatalogHandler) VisibleQuestions(ctx context.Context, req *ListQuestionsRequest) (*QuestionsResponse, error) {
	questions, err := h.catalogSvc.VisibleQuestions(ctx, req.CycleID, req.SubteamID)
	if err != nil {
		return nil, err
	}
	return &QuestionsResponse{Questions: questions}, nil
}

func (h *CatalogHandler) InsertQuestion(ctx context.Context, req *InsertQuestionRequest) (*QuestionResponse, error) {
	content := mapQuestionFieldsToDomain(req.QuestionFields)
	q := &domain.Question{
		CycleID:     req.CycleID,
		SubteamID:   req.SubteamID,
		Prompt:      content.Prompt,
		Description: content.Description,
		Type:        content.Type,
		IsRequired:  content.IsRequired,
		CharLimit:   content.CharLimit,
		WordLimit:   content.WordLimit,
		Options:     content.Options,
	}
	if err := h.catalogSvc.InsertQuestion(ctx, q); err != nil {
		return nil, err
	}
	return &QuestionResponse{Question: q}, nil
}

func (h *CatalogHandler) UpdateQuestion(ctx context.Context, req *UpdateQuestionRequest) (*QuestionResponse, error) {
	q, err := h.catalogSvc.UpdateQuestion(ctx, req.QuestionID, mapQuestionFieldsToDomain(req.QuestionFields))
	if err != nil {
		return nil, err
	}
	return &QuestionResponse{Question: q}, nil
}

func (h *CatalogHandler) RemoveQuestion(ctx context.Context, req *QuestionRequest) (*Empty, error) {
	if err := h.catalogSvc.RemoveQuestion(ctx, req.QuestionID); err != nil {
		return nil, err
	}
	return &Empty{}, nil
}

func (h *CatalogHandler) MoveQuestion(ctx context.Context, req *MoveQuestionRequest) (*MoveQuestionResponse, error) {
	order, err := h.catalogSvc.MoveQuestion(ctx, req.QuestionID, req.Target)
	if err != nil {
		return nil, err
	}
	return &MoveQuestionResponse{Order: order}, nil
}

func (h *CatalogHandler) RepackQuestions(ctx context.Context, req *ListQuestionsRequest) (*RepackQuestionsResponse, error) {
	moved, err := h.catalogSvc.RepackQuestions(ctx, req.CycleID, req.SubteamID)
	if err != nil {
		return nil, err
	}
	return &RepackQuestionsResponse{Moved: int32(moved)}, nil
}

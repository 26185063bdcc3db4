package grpc

import (
	"context"

	"google.golang.org/grpc"

	"recruiting-portal-backend/internal/service"
)

type ResumeHandler struct {
	resumeSvc service.ResumeService
}

func NewResumeHandler(resumeSvc service.ResumeService) *ResumeHandler {
	return &ResumeHandler{resumeSvc: resumeSvc}
}

func (h *ResumeHandler) desc() *grpc.ServiceDesc {
	const svc = "ResumeService"
	return serviceDesc(svc,
		unary(svc, "GetUploadUrl", h.GetUploadURL),
		unary(svc, "ConfirmUpload", h.ConfirmUpload),
		unary(svc, "DeleteResume", h.DeleteResume),
	)
}

func (h *ResumeHandler) GetUploadURL(ctx context.Context, req *GetUploadURLRequest) (*GetUploadURLResponse, error) {
	caller, err := GetCallerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	url, key, expiresAt, err := h.resumeSvc.GetUploadURL(ctx, caller, req.Filename, req.ContentType)
	if err != nil {
		return nil, err
	}
	return &GetUploadURLResponse{UploadURL: url, Key: key, ExpiresAt: expiresAt}, nil
}

func (h *ResumeHandler) ConfirmUpload(ctx context.Context, req *ConfirmUploadRequest) (*UserResponse, error) {
	caller, err := GetCallerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	user, err := h.resumeSvc.ConfirmUpload(ctx, caller, req.Key)
	if err != nil {
		return nil, err
	}
	return &UserResponse{User: user}, nil
}

func (h *ResumeHandler) DeleteResume(ctx context.Context, _ *Empty) (*Empty, error) {
	caller, err := GetCallerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := h.resumeSvc.DeleteResume(ctx, caller); err != nil {
		return nil, err
	}
	return &Empty{}, nil
}

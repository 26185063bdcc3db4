package grpc

import (
	"context"

	"google.golang.org/grpc"

	"recruiting-portal-backend/internal/service"
)

type AuthHandler struct {
	authSvc service.AuthService
}

func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

func (h *AuthHandler) desc() *grpc.ServiceDesc {
	return serviceDesc("AuthService",
		unary("AuthService", "Signup", h.Signup),
		unary("AuthService", "Login", h.Login),
	)
}

func (h *AuthHandler) Signup(ctx context.Context, req *SignupRequest) (*AuthResponse, error) {
	user, access, err := h.authSvc.Signup(ctx, req.Email, req.Name, req.Password)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{User: user, AccessToken: access}, nil
}

func (h *AuthHandler) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	user, access, err := h.authSvc.Login(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{User: user, AccessToken: access}, nil
}

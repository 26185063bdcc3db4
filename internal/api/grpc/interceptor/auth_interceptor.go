package interceptor

import (
	"context"
	"strconv"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"recruiting-portal-backend/internal/config"
	"recruiting-portal-backend/internal/domain"
	"recruiting-portal-backend/internal/logger"
	"recruiting-portal-backend/internal/security"
)

type AuthInterceptor struct {
	tokenManager security.TokenManager
}

func NewAuthInterceptor(tm security.TokenManager) *AuthInterceptor {
	return &AuthInterceptor{tokenManager: tm}
}

// Unary returns a server interceptor function to authenticate and authorize unary RPCs
func (i *AuthInterceptor) Unary() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		rule := config.GetSecurity(info.FullMethod)

		// Strip identity headers a client may have sent itself
		md, ok := metadata.FromIncomingContext(ctx)
		if !ok {
			md = metadata.New(nil)
		} else {
			md = md.Copy()
		}
		md.Delete("user-id")
		md.Delete("user-role")

		// Public endpoint - skip auth
		if rule.Level == config.SecurityPublic {
			ctx = logger.WithRequest(ctx, info.FullMethod, 0, "")
			return handler(metadata.NewIncomingContext(ctx, md), req)
		}

		token, err := i.extractToken(md)
		if err != nil {
			return nil, err
		}

		claims, err := i.tokenManager.ValidateToken(token)
		if err != nil {
			return nil, status.Errorf(codes.Unauthenticated, "invalid token: %v", err)
		}

		if err := i.checkSecurity(rule, claims); err != nil {
			return nil, err
		}

		md.Set("user-id", strconv.Itoa(int(claims.UserID)))
		md.Set("user-role", string(claims.Role))
		ctx = logger.WithRequest(ctx, info.FullMethod, claims.UserID, string(claims.Role))
		return handler(metadata.NewIncomingContext(ctx, md), req)
	}
}

func (i *AuthInterceptor) extractToken(md metadata.MD) (string, error) {
	authHeader := md.Get("authorization")
	if len(authHeader) == 0 {
		return "", status.Error(codes.Unauthenticated, "authorization token is not provided")
	}

	token := authHeader[0]
	// Remove Bearer prefix if present
	if len(token) > 7 && strings.ToUpper(token[0:7]) == "BEARER " {
		token = token[7:]
	}

	return token, nil
}

func (i *AuthInterceptor) checkSecurity(rule config.EndpointSecurity, claims *security.UserClaims) error {
	if claims.Type != security.TokenTypeAccess {
		return status.Error(codes.PermissionDenied, "access token required")
	}

	switch rule.Role {
	case config.RoleCandidate:
		if claims.Role != domain.UserRoleCandidate {
			return status.Error(codes.PermissionDenied, "candidate account required")
		}
	case config.RoleReviewer:
		if !claims.Role.CanReview() {
			return status.Error(codes.PermissionDenied, "reviewer role required")
		}
	case config.RoleAdmin:
		if claims.Role != domain.UserRoleAdmin {
			return status.Error(codes.PermissionDenied, "admin role required")
		}
	}
	return nil
}

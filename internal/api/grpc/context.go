package grpc

import (
	"context"
	"strconv"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"recruiting-portal-backend/internal/domain"
)

const (
	MetadataUserID   = "user-id"
	MetadataUserRole = "user-role"
)

// GetUserIDFromContext extracts the user ID from the gRPC metadata.
// It expects a header named "user-id".
func GetUserIDFromContext(ctx context.Context) (int32, error) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return 0, status.Errorf(codes.Unauthenticated, "metadata is not provided")
	}

	userIDs := md.Get(MetadataUserID)
	if len(userIDs) == 0 {
		return 0, status.Errorf(codes.Unauthenticated, "user_id is not provided in metadata")
	}

	userID, err := strconv.ParseInt(userIDs[0], 10, 32)
	if err != nil {
		return 0, status.Errorf(codes.InvalidArgument, "invalid user_id format: %v", err)
	}

	return int32(userID), nil
}

// GetCallerFromContext returns the principal the auth interceptor injected.
func GetCallerFromContext(ctx context.Context) (domain.Caller, error) {
	userID, err := GetUserIDFromContext(ctx)
	if err != nil {
		return domain.Caller{}, err
	}
	md, _ := metadata.FromIncomingContext(ctx)
	roles := md.Get(MetadataUserRole)
	if len(roles) == 0 {
		return domain.Caller{}, status.Errorf(codes.Unauthenticated, "user_role is not provided in metadata")
	}
	role := domain.UserRole(roles[0])
	if !role.IsValid() {
		return domain.Caller{}, status.Errorf(codes.InvalidArgument, "invalid user_role %q", roles[0])
	}
	return domain.Caller{UserID: userID, Role: role}, nil
}

package grpc

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"recruiting-portal-backend/internal/domain"
	"recruiting-portal-backend/internal/service"
)

// toStatus maps domain and service errors onto gRPC status codes. Errors that
// already carry a status pass through unchanged.
func toStatus(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}

	var code codes.Code
	switch {
	case errors.Is(err, domain.ErrNotFound):
		code = codes.NotFound
	case errors.Is(err, domain.ErrAlreadyExists):
		code = codes.AlreadyExists
	case errors.Is(err, domain.ErrOutOfRange):
		code = codes.OutOfRange
	case errors.Is(err, domain.ErrForbidden):
		code = codes.PermissionDenied
	case errors.Is(err, domain.ErrRateLimited):
		code = codes.ResourceExhausted
	case errors.Is(err, service.ErrInvalidCredentials):
		code = codes.Unauthenticated
	case errors.Is(err, domain.ErrInvalidArgument),
		errors.Is(err, domain.ErrEmptyContent),
		errors.Is(err, service.ErrWeakPassword):
		code = codes.InvalidArgument
	case errors.Is(err, domain.ErrAlreadySubmitted),
		errors.Is(err, domain.ErrNoActiveCycle),
		errors.Is(err, domain.ErrNotSubmitted),
		errors.Is(err, domain.ErrDeadlinePassed),
		errors.Is(err, domain.ErrResumeRequired),
		errors.Is(err, domain.ErrSlotTaken),
		errors.Is(err, domain.ErrInvalidStatus):
		code = codes.FailedPrecondition
	case errors.Is(err, context.Canceled):
		code = codes.Canceled
	case errors.Is(err, context.DeadlineExceeded):
		code = codes.DeadlineExceeded
	default:
		return status.Error(codes.Internal, "internal error")
	}
	return status.Error(code, err.Error())
}

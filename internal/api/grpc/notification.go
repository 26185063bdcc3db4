package grpc

import (
	"context"

	"google.golang.org/grpc"

	"recruiting-portal-backend/internal/service"
)

type NotificationHandler struct {
	noteSvc service.NotificationService
}

func NewNotificationHandler(noteSvc service.NotificationService) *NotificationHandler {
	return &NotificationHandler{noteSvc: noteSvc}
}

func (h *NotificationHandler) desc() *grpc.ServiceDesc {
	const svc = "NotificationService"
	return serviceDesc(svc,
		unary(svc, "GetNotifications", h.GetNotifications),
		unary(svc, "MarkNotificationRead", h.MarkNotificationRead),
	)
}

func (h *NotificationHandler) GetNotifications(ctx context.Context, req *GetNotificationsRequest) (*GetNotificationsResponse, error) {
	userID, err := GetUserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	notes, count, err := h.noteSvc.GetNotifications(ctx, userID, req.Page, req.PageSize)
	if err != nil {
		return nil, err
	}
	return &GetNotificationsResponse{
		Notifications: notes,
		TotalCount:    count,
	}, nil
}

func (h *NotificationHandler) MarkNotificationRead(ctx context.Context, req *MarkNotificationReadRequest) (*Empty, error) {
	userID, err := GetUserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := h.noteSvc.MarkAsRead(ctx, userID, req.NotificationID); err != nil {
		return nil, err
	}
	return &Empty{}, nil
}

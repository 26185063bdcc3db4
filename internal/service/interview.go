package service

import (
	"context"
	"strings"

	"recruiting-portal-backend/internal/domain"
	"recruiting-portal-backend/internal/logger"
	"recruiting-portal-backend/internal/metrics"
	"recruiting-portal-backend/internal/repository"
)

type interviewService struct {
	interviewRepo repository.InterviewRepository
	appRepo       repository.ApplicationRepository
	cycleRepo     repository.CycleRepository
	policy        domain.TransitionPolicy
	events        candidateEvents
}

func NewInterviewService(
	interviewRepo repository.InterviewRepository,
	appRepo repository.ApplicationRepository,
	userRepo repository.UserRepository,
	cycleRepo repository.CycleRepository,
	orgRepo repository.OrganizationRepository,
	notifier Notifier,
	policy domain.TransitionPolicy,
) InterviewService {
	return &interviewService{
		interviewRepo: interviewRepo,
		appRepo:       appRepo,
		cycleRepo:     cycleRepo,
		policy:        policy,
		events: candidateEvents{
			userRepo:  userRepo,
			cycleRepo: cycleRepo,
			orgRepo:   orgRepo,
			notifier:  notifier,
		},
	}
}

func (s *interviewService) CreateSlot(ctx context.Context, caller domain.Caller, slot *domain.InterviewSlot) error {
	if !caller.Role.CanReview() {
		return domain.ErrForbidden
	}
	if slot.StartTime.IsZero() || !slot.EndTime.After(slot.StartTime) {
		return domain.ErrInvalidArgument
	}
	slot.Location = strings.TrimSpace(slot.Location)
	slot.VirtualLink = strings.TrimSpace(slot.VirtualLink)
	slot.ApplicationID = nil
	if _, err := s.cycleRepo.GetByID(ctx, slot.CycleID); err != nil {
		return err
	}
	return s.interviewRepo.CreateSlot(ctx, slot)
}

// ScheduleInterview books a free slot for an application of the same cycle and
// moves the application to INTERVIEW when it has not reached that stage yet.
func (s *interviewService) ScheduleInterview(ctx context.Context, caller domain.Caller, slotID, applicationID int32) (*domain.InterviewSlot, error) {
	logger.EnterMethod("interviewService.ScheduleInterview", "slotID", slotID, "applicationID", applicationID)
	if !caller.Role.CanReview() {
		return nil, domain.ErrForbidden
	}
	slot, err := s.interviewRepo.GetSlot(ctx, slotID)
	if err != nil {
		return nil, err
	}
	if slot.IsBooked() {
		return nil, domain.ErrSlotTaken
	}
	app, err := s.appRepo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if app.CycleID != slot.CycleID {
		return nil, domain.ErrInvalidArgument
	}
	if app.IsDraft() {
		return nil, domain.ErrNotSubmitted
	}
	if app.Status.IsTerminal() {
		return nil, domain.ErrInvalidStatus
	}

	if err := s.interviewRepo.AssignSlot(ctx, slotID, applicationID); err != nil {
		logger.ExitMethodWithError("interviewService.ScheduleInterview", err)
		return nil, err
	}
	slot.ApplicationID = &applicationID

	if app.Status.Rank() < domain.ApplicationStatusInterview.Rank() {
		change, err := s.appRepo.TransitionStatus(ctx, applicationID, domain.ApplicationStatusInterview, caller.UserID, s.policy)
		if err != nil {
			// the booking stands; a reviewer can still move the status by hand
			logger.ScopeApplication(ctx, applicationID).Warn("Slot booked but status not advanced", "error", err)
		} else if change != nil {
			metrics.StatusTransitions.WithLabelValues(string(change.OldStatus), string(change.NewStatus)).Inc()
		}
	}

	s.events.emit(ctx, app, domain.Event{
		Kind:     domain.EventInterviewScheduled,
		At:       slot.StartTime,
		Location: slotLocation(slot),
	})
	logger.ExitMethod("interviewService.ScheduleInterview", "slotID", slotID)
	return slot, nil
}

func (s *interviewService) ListSlots(ctx context.Context, caller domain.Caller, cycleID int32) ([]domain.InterviewSlot, error) {
	if !caller.Role.CanReview() {
		return nil, domain.ErrForbidden
	}
	return s.interviewRepo.ListSlots(ctx, cycleID)
}

func slotLocation(slot *domain.InterviewSlot) string {
	switch {
	case slot.Location != "" && slot.VirtualLink != "":
		return slot.Location + " (" + slot.VirtualLink + ")"
	case slot.VirtualLink != "":
		return slot.VirtualLink
	}
	return slot.Location
}

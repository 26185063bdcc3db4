package service

import (
	"context"

	"recruiting-portal-backend/internal/domain"
	"recruiting-portal-backend/internal/logger"
	"recruiting-portal-backend/internal/repository"
)

// candidateEvents fills in the addressing part of events sent to the
// candidate behind an application.
type candidateEvents struct {
	userRepo  repository.UserRepository
	cycleRepo repository.CycleRepository
	orgRepo   repository.OrganizationRepository
	notifier  Notifier
}

func (c candidateEvents) emit(ctx context.Context, app *domain.Application, ev domain.Event) {
	if c.notifier == nil {
		return
	}
	candidate, err := c.userRepo.GetByID(ctx, app.CandidateID)
	if err != nil {
		logger.Warn("Candidate lookup failed for notification", "applicationID", app.ID, "error", err)
		return
	}
	cycle, err := c.cycleRepo.GetByID(ctx, app.CycleID)
	if err != nil {
		logger.Warn("Cycle lookup failed for notification", "applicationID", app.ID, "error", err)
		return
	}
	if org, err := c.orgRepo.GetByID(ctx, cycle.OrgID); err == nil {
		ev.OrgName = org.Name
	}

	ev.OrgID = cycle.OrgID
	ev.ApplicationID = app.ID
	ev.RecipientID = candidate.ID
	ev.Recipient = candidate.Email
	ev.RecipientName = candidate.Name
	c.notifier.Notify(ctx, ev)
}

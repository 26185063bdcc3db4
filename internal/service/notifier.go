package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"recruiting-portal-backend/internal/domain"
	"recruiting-portal-backend/internal/logger"
	"recruiting-portal-backend/internal/metrics"
	"recruiting-portal-backend/internal/repository"
)

const notifyTimeout = 5 * time.Second

type EmailEnqueuer interface {
	Enqueue(msg EmailMessage) bool
}

// Dispatcher turns domain events into an in-app notification row and a
// queued email. Failures are logged and counted, never returned.
type Dispatcher struct {
	noteRepo repository.NotificationRepository
	emails   EmailEnqueuer
	baseURL  string
}

func NewDispatcher(noteRepo repository.NotificationRepository, emails EmailEnqueuer, baseURL string) *Dispatcher {
	return &Dispatcher{
		noteRepo: noteRepo,
		emails:   emails,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}
}

type renderedEvent struct {
	title   string
	message string
	subject string
	body    string
}

func (d *Dispatcher) Notify(ctx context.Context, ev domain.Event) {
	// the triggering request may already be finished when this runs
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
	defer cancel()

	r := d.render(ev)

	if ev.RecipientID != 0 {
		n := &domain.Notification{
			UserID:  ev.RecipientID,
			OrgID:   ev.OrgID,
			Title:   r.title,
			Message: r.message,
			Attributes: map[string]string{
				"type": string(ev.Kind),
			},
		}
		if ev.ApplicationID != 0 {
			n.Attributes["application_id"] = fmt.Sprintf("%d", ev.ApplicationID)
		}
		if ev.NewStatus != "" {
			n.Attributes["status"] = string(ev.NewStatus)
		}
		if err := d.noteRepo.Create(ctx, n); err != nil {
			logger.Error("Failed to store notification", "kind", ev.Kind, "userID", ev.RecipientID, "error", err)
			metrics.NotificationsDispatched.WithLabelValues("in_app", "failed").Inc()
		} else {
			metrics.NotificationsDispatched.WithLabelValues("in_app", "sent").Inc()
		}
	}

	if ev.Recipient != "" && d.emails != nil {
		d.emails.Enqueue(EmailMessage{
			To:       ev.Recipient,
			ToName:   ev.RecipientName,
			Subject:  r.subject,
			Body:     r.body,
			Category: string(ev.Kind),
		})
	}
}

func (d *Dispatcher) render(ev domain.Event) renderedEvent {
	greeting := "Hello,"
	if ev.RecipientName != "" {
		greeting = fmt.Sprintf("Hello %s,", ev.RecipientName)
	}
	link := d.baseURL + "/applications"
	if ev.ApplicationID != 0 {
		link = fmt.Sprintf("%s/applications/%d", d.baseURL, ev.ApplicationID)
	}

	var r renderedEvent
	switch ev.Kind {
	case domain.EventApplicationSubmitted:
		r.title = "Application submitted"
		r.message = fmt.Sprintf("Your application to %s was received.", ev.OrgName)
		r.subject = fmt.Sprintf("Application received - %s", ev.OrgName)
		r.body = fmt.Sprintf("%s\n\nThank you for applying to %s. We received your application and will be in touch once it has been reviewed.\n\nYou can follow its progress here: %s", greeting, ev.OrgName, link)

	case domain.EventStatusChanged:
		r.title = "Application status updated"
		r.message = fmt.Sprintf("Your application to %s is now %s.", ev.OrgName, statusLabel(ev.NewStatus))
		r.subject, r.body = statusEmail(ev, greeting, link)

	case domain.EventNewApplication:
		r.title = "New application"
		r.message = fmt.Sprintf("%s applied to %s.", ev.CandidateName, ev.OrgName)
		r.subject = fmt.Sprintf("New application from %s", ev.CandidateName)
		r.body = fmt.Sprintf("%s\n\n%s just submitted an application to %s.\n\nReview it here: %s", greeting, ev.CandidateName, ev.OrgName, link)

	case domain.EventInterviewScheduled:
		when := ev.At.Format("Monday, January 2 at 3:04 PM MST")
		r.title = "Interview scheduled"
		r.message = fmt.Sprintf("Your interview with %s is on %s.", ev.OrgName, when)
		r.subject = fmt.Sprintf("Interview scheduled - %s", ev.OrgName)
		r.body = fmt.Sprintf("%s\n\nYour interview with %s is scheduled for %s.", greeting, ev.OrgName, when)
		if ev.Location != "" {
			r.body += fmt.Sprintf("\nLocation: %s", ev.Location)
		}

	case domain.EventDraftReminder:
		r.title = "Finish your application"
		r.message = fmt.Sprintf("Your draft for %s is due %s.", ev.OrgName, ev.At.Format("Jan 2 3:04 PM MST"))
		r.subject = fmt.Sprintf("Reminder: finish your application to %s", ev.OrgName)
		r.body = fmt.Sprintf("%s\n\nYou have an unfinished application to %s. The deadline is %s.\n\nPick up where you left off: %s", greeting, ev.OrgName, ev.At.Format("Monday, January 2 at 3:04 PM MST"), link)

	case domain.EventReviewReminder:
		r.title = "Applications awaiting review"
		r.message = fmt.Sprintf("%d applications to %s still need review.", ev.Count, ev.OrgName)
		r.subject = fmt.Sprintf("%d applications awaiting review - %s", ev.Count, ev.OrgName)
		r.body = fmt.Sprintf("%s\n\n%d applications to %s have not been reviewed yet. The review deadline is %s.\n\n%s", greeting, ev.Count, ev.OrgName, ev.At.Format("Monday, January 2 at 3:04 PM MST"), link)

	default:
		r.title = "Notification"
		r.message = string(ev.Kind)
		r.subject = fmt.Sprintf("Update from %s", ev.OrgName)
		r.body = greeting
	}
	r.body += "\n\nBest regards,\nThe Recruiting Team"
	return r
}

func statusEmail(ev domain.Event, greeting, link string) (string, string) {
	switch ev.NewStatus {
	case domain.ApplicationStatusInterview:
		return fmt.Sprintf("Interview invitation - %s", ev.OrgName),
			fmt.Sprintf("%s\n\n%s would like to interview you. You will receive the details once a time has been scheduled.\n\n%s", greeting, ev.OrgName, link)
	case domain.ApplicationStatusOffer:
		return fmt.Sprintf("Offer from %s", ev.OrgName),
			fmt.Sprintf("%s\n\nCongratulations! %s has extended you an offer.\n\n%s", greeting, ev.OrgName, link)
	case domain.ApplicationStatusAccepted:
		return fmt.Sprintf("Welcome to %s", ev.OrgName),
			fmt.Sprintf("%s\n\nWelcome to %s! We are excited to have you on the team.", greeting, ev.OrgName)
	}
	return fmt.Sprintf("Application status update - %s", ev.OrgName),
		fmt.Sprintf("%s\n\nThe status of your application to %s is now: %s.\n\n%s", greeting, ev.OrgName, statusLabel(ev.NewStatus), link)
}

func statusLabel(s domain.ApplicationStatus) string {
	return strings.ToLower(strings.ReplaceAll(string(s), "_", " "))
}

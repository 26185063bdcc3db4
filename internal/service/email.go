package service

import (
	"context"
	"fmt"

	"recruiting-portal-backend/internal/logger"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"gopkg.in/gomail.v2"
)

type smtpSender struct {
	host     string
	port     int
	username string
	password string
	from     string
	fromName string
	replyTo  string
}

func NewSMTPSender(host string, port int, username, password, from, fromName, replyTo string) EmailSender {
	return &smtpSender{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
		fromName: fromName,
		replyTo:  replyTo,
	}
}

func (s *smtpSender) Send(ctx context.Context, msg EmailMessage) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.from, s.fromName)
	if msg.ToName != "" {
		m.SetAddressHeader("To", msg.To, msg.ToName)
	} else {
		m.SetHeader("To", msg.To)
	}
	if s.replyTo != "" {
		m.SetHeader("Reply-To", s.replyTo)
	}
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Body)

	logger.ExternalServiceCall("SMTP", "DialAndSend", "to", msg.To, "category", msg.Category)
	d := gomail.NewDialer(s.host, s.port, s.username, s.password)
	if err := d.DialAndSend(m); err != nil {
		logger.ExternalServiceResult("SMTP", "DialAndSend", err, "to", msg.To)
		return fmt.Errorf("failed to send email via gomail: %w", err)
	}
	logger.ExternalServiceResult("SMTP", "DialAndSend", nil, "to", msg.To)
	return nil
}

type sendGridSender struct {
	client   *sendgrid.Client
	from     string
	fromName string
}

func NewSendGridSender(apiKey, from, fromName string) EmailSender {
	return &sendGridSender{
		client:   sendgrid.NewSendClient(apiKey),
		from:     from,
		fromName: fromName,
	}
}

func (s *sendGridSender) Send(ctx context.Context, msg EmailMessage) error {
	from := mail.NewEmail(s.fromName, s.from)
	to := mail.NewEmail(msg.ToName, msg.To)
	message := mail.NewSingleEmail(from, msg.Subject, to, msg.Body, "")
	message.AddCategories(msg.Category)

	logger.ExternalServiceCall("SendGrid", "Send", "to", msg.To, "category", msg.Category)
	response, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		logger.ExternalServiceResult("SendGrid", "Send", err, "to", msg.To)
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		err = fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
		logger.ExternalServiceResult("SendGrid", "Send", err, "to", msg.To)
		return err
	}
	logger.ExternalServiceResult("SendGrid", "Send", nil, "to", msg.To, "status", response.StatusCode)
	return nil
}

type disabledSender struct{}

// NewDisabledSender logs and drops every message.
func NewDisabledSender() EmailSender {
	return disabledSender{}
}

func (disabledSender) Send(ctx context.Context, msg EmailMessage) error {
	logger.Debug("Email disabled, dropping message", "to", msg.To, "subject", msg.Subject)
	return nil
}

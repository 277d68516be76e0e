package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/resend/resend-go/v2"
)

type EmailService struct {
	client       *resend.Client
	fromEmail    string
	supportEmail string
	audienceID   string
	isDev        bool
	appURL       string
	appName      string
}

func NewEmailService(apiKey, fromEmail, supportEmail, audienceID, appURL, appName string, isDev bool) *EmailService {
	var client *resend.Client
	if apiKey != "" && !isDev {
		client = resend.NewClient(apiKey)
	}

	return &EmailService{
		client:       client,
		fromEmail:    fromEmail,
		supportEmail: supportEmail,
		audienceID:   audienceID,
		isDev:        isDev,
		appURL:       appURL,
		appName:      appName,
	}
}

func (s *EmailService) send(emailType, to, subject, body string) error {
	if s.isDev {
		slog.Info("email sent (dev mode)", "type", emailType, "to", to, "subject", subject)
		return nil
	}

	if s.client == nil {
		return fmt.Errorf("email service not configured (missing RESEND_API_KEY)")
	}

	params := &resend.SendEmailRequest{
		From:    s.fromEmail,
		To:      []string{to},
		Subject: subject,
		Text:    body,
	}

	_, err := s.client.Emails.SendWithContext(context.Background(), params)
	if err == nil {
		slog.Info("email sent", "type", emailType, "to", to)
	}
	return err
}

func (s *EmailService) SendWelcomeEmail(email, name string) error {
	dashboardURL := fmt.Sprintf("%s/dashboard", s.appURL)
	subject, body := welcomeEmailTemplate(name, dashboardURL, s.appName)
	return s.send("welcome", email, subject, body)
}

func (s *EmailService) SendPledgeReceivedEmail(email, name string) error {
	signupURL := fmt.Sprintf("%s/auth/signup", s.appURL)
	subject, body := pledgeReceivedEmailTemplate(name, signupURL, s.appName)
	return s.send("pledge_received", email, subject, body)
}

func (s *EmailService) SendPasswordResetEmail(email, token, name string) error {
	resetURL := fmt.Sprintf("%s/auth/reset-password/%s", s.appURL, token)
	subject, body := passwordResetEmailTemplate(name, resetURL, s.appName)
	return s.send("password_reset", email, subject, body)
}

func (s *EmailService) SendPaymentVerifiedEmail(email, name, planName string) error {
	subject, body := paymentVerifiedEmailTemplate(name, planName, s.appName)
	return s.send("payment_verified", email, subject, body)
}

func (s *EmailService) SendPaymentReviewEmail(email, name, paymentID string) error {
	subject, body := paymentReviewEmailTemplate(name, paymentID, s.supportEmail, s.appName)
	return s.send("payment_review", email, subject, body)
}

func (s *EmailService) SendAccountDeletedEmail(email, name string) error {
	subject, body := accountDeletedEmailTemplate(name, s.appName)
	return s.send("account_deleted", email, subject, body)
}

func (s *EmailService) SendSupportTicketEmail(ticketID, fromName, fromEmail, subject, message string) error {
	mailSubject, body := supportTicketEmailTemplate(ticketID, fromName, fromEmail, subject, message)
	return s.send("support_ticket", s.supportEmail, mailSubject, body)
}

func (s *EmailService) SubscribeNewsletter(email string) error {
	if s.isDev {
		slog.Info("newsletter subscription (dev mode)", "email", email)
		return nil
	}

	if s.client == nil {
		return fmt.Errorf("email service not configured (missing RESEND_API_KEY)")
	}

	if s.audienceID == "" {
		slog.Warn("newsletter subscription requested but no audience configured", "email", email)
		return nil
	}

	params := &resend.CreateContactRequest{
		Email:      email,
		AudienceId: s.audienceID,
	}

	_, err := s.client.Contacts.Create(params)
	if err != nil {
		slog.Warn("newsletter subscription failed", "error", err, "email", email)
		// Ignore errors to prevent email enumeration
		return nil
	}

	slog.Info("newsletter subscription successful", "email", email)
	return nil
}

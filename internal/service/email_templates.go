package service

import "fmt"

func welcomeEmailTemplate(name, dashboardURL, appName string) (string, string) {
	subject := fmt.Sprintf("Welcome to %s", appName)
	body := fmt.Sprintf(`Hi %s,

Your account is active. Your legacy dashboard is ready:
%s

From there you can complete your pledge, record wishes, add nominees and keep documents safe.

If you have questions, reach out to our support team.

Best,
The %s Team`, name, dashboardURL, appName)

	return subject, body
}

func pledgeReceivedEmailTemplate(name, signupURL, appName string) (string, string) {
	subject := fmt.Sprintf("We received your pledge at %s", appName)
	body := fmt.Sprintf(`Hi %s,

Thank you for taking the pledge. Your details and uploads are safely stored.

Create your account with this same email address and everything you submitted will be waiting in your dashboard:
%s

Best,
The %s Team`, name, signupURL, appName)

	return subject, body
}

func passwordResetEmailTemplate(name, resetURL, appName string) (string, string) {
	subject := fmt.Sprintf("Reset your password for %s", appName)
	body := fmt.Sprintf(`Hi %s,

You requested to reset your password. Set a new one with this link:
%s

This link expires in 1 hour and can only be used once.

If you didn't request this, you can safely ignore this email. Your password won't be changed.

Best,
The %s Team`, name, resetURL, appName)

	return subject, body
}

func paymentVerifiedEmailTemplate(name, planName, appName string) (string, string) {
	subject := fmt.Sprintf("Your %s plan is active", planName)
	body := fmt.Sprintf(`Hi %s,

Your payment was verified and your %s plan is now active.

Thank you for trusting us with your legacy.

Best,
The %s Team`, name, planName, appName)

	return subject, body
}

func paymentReviewEmailTemplate(name, paymentID, supportEmail, appName string) (string, string) {
	subject := "Your payment needs a quick review"
	body := fmt.Sprintf(`Hi %s,

We received your payment but could not confirm it automatically. Nothing is lost; our team will verify it manually.

Please contact support at %s and quote this Payment ID:
%s

Best,
The %s Team`, name, supportEmail, paymentID, appName)

	return subject, body
}

func accountDeletedEmailTemplate(name, appName string) (string, string) {
	subject := fmt.Sprintf("Your %s account has been deleted", appName)
	body := fmt.Sprintf(`Hi %s,

Your account has been permanently deleted from %s.

All your data, including your pledge, wishes, letters, documents and uploads, has been removed from our systems.

If you didn't request this deletion, please contact our support team immediately, though we won't be able to recover your account.

Best,
The %s Team`, name, appName, appName)

	return subject, body
}

func supportTicketEmailTemplate(ticketID, fromName, fromEmail, subject, message string) (string, string) {
	mailSubject := fmt.Sprintf("[Support #%s] %s", ticketID, subject)
	body := fmt.Sprintf(`New support request.

From: %s <%s>
Ticket: %s

%s`, fromName, fromEmail, ticketID, message)

	return mailSubject, body
}

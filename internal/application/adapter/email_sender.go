// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
)

// SendEmailInput represents the input for sending an email.
type SendEmailInput struct {
	To      string
	Name    string
	Subject string
	HTML    string
	Text    string
}

// SendEmailResult represents the result of sending an email.
type SendEmailResult struct {
	ResendID string
}

// EmailSender defines the interface for sending emails via an external provider.
type EmailSender interface {
	// Send sends an email via the email provider (e.g., Resend).
	Send(ctx context.Context, input SendEmailInput) (*SendEmailResult, error)
}

// EmailService defines the interface for queueing emails.
type EmailService interface {
	// QueueGoalReachedEmail queues the notification sent when a goal hits its target.
	QueueGoalReachedEmail(ctx context.Context, input QueueGoalReachedInput) error
}

// QueueGoalReachedInput represents the input for queueing a goal reached email.
type QueueGoalReachedInput struct {
	UserID       string
	UserEmail    string
	UserName     string
	GoalName     string
	TargetAmount string
	SavedAmount  string
}

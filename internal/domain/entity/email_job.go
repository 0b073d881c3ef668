// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// EmailStatus is where a queued email is in its delivery lifecycle.
type EmailStatus string

const (
	EmailStatusPending    EmailStatus = "pending"
	EmailStatusProcessing EmailStatus = "processing"
	EmailStatusSent       EmailStatus = "sent"
	EmailStatusFailed     EmailStatus = "failed"
)

// EmailTemplateType names the template an email job is rendered with.
type EmailTemplateType string

const (
	TemplateGoalReached EmailTemplateType = "goal_reached"
)

// maxEmailAttempts is how many delivery attempts a job gets before it fails.
const maxEmailAttempts = 3

// emailRetryDelays is indexed by the number of attempts already made.
var emailRetryDelays = []time.Duration{0, time.Minute, 5 * time.Minute}

// EmailJob is a notification waiting in the outbound queue. All times are
// supplied by the caller so the queue follows the application clock.
type EmailJob struct {
	ID             uuid.UUID
	TemplateType   EmailTemplateType
	RecipientEmail string
	RecipientName  string
	Subject        string
	TemplateData   map[string]interface{}
	Status         EmailStatus
	Attempts       int
	MaxAttempts    int
	LastError      string
	ResendID       string
	CreatedAt      time.Time
	ScheduledAt    time.Time
	ProcessedAt    *time.Time
}

// NewEmailJob creates a pending job that is due at now.
func NewEmailJob(templateType EmailTemplateType, recipientEmail, recipientName, subject string, data map[string]interface{}, now time.Time) *EmailJob {
	now = now.UTC()
	return &EmailJob{
		ID:             uuid.New(),
		TemplateType:   templateType,
		RecipientEmail: recipientEmail,
		RecipientName:  recipientName,
		Subject:        subject,
		TemplateData:   data,
		Status:         EmailStatusPending,
		MaxAttempts:    maxEmailAttempts,
		CreatedAt:      now,
		ScheduledAt:    now,
	}
}

func (e *EmailJob) MarkProcessing() {
	e.Status = EmailStatusProcessing
}

// MarkSent records a successful hand-off to the provider.
func (e *EmailJob) MarkSent(resendID string, at time.Time) {
	at = at.UTC()
	e.Status = EmailStatusSent
	e.ResendID = resendID
	e.ProcessedAt = &at
}

// MarkFailed counts a failed attempt. Permanent failures and exhausted jobs
// end as failed; anything else goes back to pending after a backoff.
func (e *EmailJob) MarkFailed(err error, permanent bool, at time.Time) {
	at = at.UTC()
	e.Attempts++
	e.LastError = err.Error()

	if permanent || !e.CanRetry() {
		e.Status = EmailStatusFailed
		e.ProcessedAt = &at
		return
	}

	e.Status = EmailStatusPending
	e.ScheduledAt = at.Add(e.retryDelay())
}

func (e *EmailJob) retryDelay() time.Duration {
	if e.Attempts < len(emailRetryDelays) {
		return emailRetryDelays[e.Attempts]
	}
	return emailRetryDelays[len(emailRetryDelays)-1]
}

func (e *EmailJob) CanRetry() bool {
	return e.Attempts < e.MaxAttempts
}

// IsDue reports whether a pending job may be attempted at now.
func (e *EmailJob) IsDue(now time.Time) bool {
	return e.Status == EmailStatusPending && !now.Before(e.ScheduledAt)
}

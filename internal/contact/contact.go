// Package contact handles contact form submissions.
package contact

import (
	"context"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"musyoka.dev/internal/logging"
	"musyoka.dev/internal/models"
	"musyoka.dev/internal/oops"

	"github.com/google/uuid"
)

const (
	MaxNameLength    = 200
	MaxMessageLength = 5000
)

// Submission is the raw form input
type Submission struct {
	Name    string
	Email   string
	Message string
}

// FieldErrors maps a form field to the problem with it
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	parts := make([]string, 0, len(e))
	for field, msg := range e {
		parts = append(parts, field+": "+msg)
	}
	return "invalid submission: " + strings.Join(parts, ", ")
}

// Normalize trims surrounding whitespace from every field
func (s Submission) Normalize() Submission {
	return Submission{
		Name:    strings.TrimSpace(s.Name),
		Email:   strings.TrimSpace(s.Email),
		Message: strings.TrimSpace(s.Message),
	}
}

// Validate returns FieldErrors for every invalid field, or nil
func (s Submission) Validate() error {
	errs := FieldErrors{}

	switch {
	case s.Name == "":
		errs["name"] = "Please tell me your name."
	case utf8.RuneCountInString(s.Name) > MaxNameLength:
		errs["name"] = "Name is too long."
	}

	if s.Email == "" {
		errs["email"] = "Please enter your email address."
	} else if addr, err := mail.ParseAddress(s.Email); err != nil || addr.Address != s.Email {
		errs["email"] = "That doesn't look like an email address."
	}

	switch {
	case s.Message == "":
		errs["message"] = "Please write a message."
	case utf8.RuneCountInString(s.Message) > MaxMessageLength:
		errs["message"] = "Message is too long."
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Store persists contact messages
type Store interface {
	InsertContactMessage(ctx context.Context, m *models.ContactMessage) error
}

// Notifier forwards a stored message to the site owner
type Notifier interface {
	Notify(m *models.ContactMessage) error
}

// Service validates, stores and forwards submissions
type Service struct {
	store    Store
	notifier Notifier
	now      func() time.Time
}

// NewService creates a Service. notifier may be nil to only store messages.
func NewService(store Store, notifier Notifier) *Service {
	return &Service{store: store, notifier: notifier, now: time.Now}
}

// Submit validates s and stores it. A FieldErrors is returned for invalid
// input. A notification failure is logged but does not fail the
// submission, since the message is already stored.
func (svc *Service) Submit(ctx context.Context, s Submission) (*models.ContactMessage, error) {
	s = s.Normalize()
	if err := s.Validate(); err != nil {
		return nil, err
	}

	msg := &models.ContactMessage{
		ID:        uuid.New().String(),
		Name:      s.Name,
		Email:     s.Email,
		Message:   s.Message,
		CreatedAt: svc.now(),
	}
	if err := svc.store.InsertContactMessage(ctx, msg); err != nil {
		return nil, oops.New(err, "failed to store contact message")
	}

	if svc.notifier != nil {
		if err := svc.notifier.Notify(msg); err != nil {
			logging.Error().Err(err).Str("message_id", msg.ID).Msg("Failed to forward contact message")
		} else {
			logging.Info().Str("message_id", msg.ID).Msg("Forwarded contact message")
		}
	}

	return msg, nil
}

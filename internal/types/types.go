// Package types holds the records the site persists and the request
// payloads its forms post. Handlers, validation and storage all import it,
// which keeps those packages from depending on each other.
package types

import (
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// Registration is a sign-up for an event.
type Registration struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Address    string    `json:"address,omitempty"`
	Contact    string    `json:"contact"`
	ReceivedAt time.Time `json:"receivedAt"`
}

// ContactMessage is a message left through the contact form.
type ContactMessage struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Message    string    `json:"message"`
	ReceivedAt time.Time `json:"receivedAt"`
}

// Score is a self-assessment result. The score itself is computed in the
// browser; the server only logs it.
type Score struct {
	ID         int64     `json:"id"`
	Score      float64   `json:"score"`
	Details    string    `json:"details,omitempty"`
	ReceivedAt time.Time `json:"receivedAt"`
}

// MailStatus is the delivery state of a MailRecord.
type MailStatus string

const (
	MailPending MailStatus = "pending"
	MailSent    MailStatus = "sent"
	MailFailed  MailStatus = "failed"
	MailMocked  MailStatus = "mocked"
)

// Valid reports whether s is one of the known statuses.
func (s MailStatus) Valid() bool {
	switch s {
	case MailPending, MailSent, MailFailed, MailMocked:
		return true
	}
	return false
}

// MailRecord tracks one relay request. Status, SentAt and Error are written
// once, after the delivery attempt; the rest never changes.
type MailRecord struct {
	ID         int64      `json:"id"`
	Recipients string     `json:"recipients"`
	Subject    string     `json:"subject"`
	Body       string     `json:"body"`
	Status     MailStatus `json:"status"`
	SentAt     *time.Time `json:"sentAt,omitempty"`
	Error      string     `json:"error,omitempty"`
	ReceivedAt time.Time  `json:"receivedAt"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Request payloads. The validate:"..." tags are enforced by the validation
// package after string fields have been trimmed.
// ─────────────────────────────────────────────────────────────────────────────

// RegistrationRequest is the body of POST /api/register.
type RegistrationRequest struct {
	Name    string `json:"name"    validate:"required,min=2,max=100"`
	Email   string `json:"email"   validate:"required,email,max=254"`
	Address string `json:"address" validate:"max=200"`
	Contact string `json:"contact" validate:"required,max=20"`
}

// ContactRequest is the body of POST /api/contact.
type ContactRequest struct {
	Name    string `json:"name"    validate:"required,min=2,max=100"`
	Email   string `json:"email"   validate:"required,email,max=254"`
	Message string `json:"message" validate:"required,min=10,max=5000"`
}

// ScoreRequest is the body of POST /api/score. Details may be any JSON
// value; non-string values are kept as compact JSON text.
type ScoreRequest struct {
	Score   *float64        `json:"score"   validate:"required,gte=0,lte=4"`
	Details json.RawMessage `json:"details"`
}

// MailRequest is the body of POST /api/send-mail. Text is accepted as an
// alias for Body.
type MailRequest struct {
	To      Recipients `json:"to"      validate:"required,min=1,max=10,dive,required,email"`
	Subject string     `json:"subject" validate:"required,max=200"`
	Body    string     `json:"body"    validate:"required,max=10000"`
	Text    string     `json:"text"    validate:"-"`
}

// ErrRecipientsType is returned when "to" is neither a string nor a list
// of strings.
var ErrRecipientsType = errors.New("recipients must be a string or a list of strings")

// Recipients accepts either "a@x.com, b@y.com" or ["a@x.com", "b@y.com"].
type Recipients []string

func (r *Recipients) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*r = splitRecipients(single)
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return ErrRecipientsType
	}

	out := Recipients{}
	for _, item := range list {
		out = append(out, splitRecipients(item)...)
	}
	*r = out
	return nil
}

// String joins the addresses the way they are stored and put on the wire.
func (r Recipients) String() string {
	return strings.Join(r, ", ")
}

func splitRecipients(s string) Recipients {
	out := Recipients{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Package testutil provides an in-memory Storage and request helpers for
// handler tests.
package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/aanand-mishra/wellbeing-site/internal/mailer"
	"github.com/aanand-mishra/wellbeing-site/internal/storage"
	"github.com/aanand-mishra/wellbeing-site/internal/types"
)

// Store is an in-memory storage.Storage. Set Err to make every call fail.
type Store struct {
	mu  sync.Mutex
	Err error

	Registrations []types.Registration
	Contacts      []types.ContactMessage
	Scores        []types.Score
	Mails         []types.MailRecord
}

var _ storage.Storage = (*Store)(nil)

func NewStore() *Store {
	return &Store{}
}

func (s *Store) CreateRegistration(_ context.Context, reg types.Registration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, s.Err
	}
	reg.ID = int64(len(s.Registrations) + 1)
	reg.ReceivedAt = time.Now().UTC()
	s.Registrations = append(s.Registrations, reg)
	return reg.ID, nil
}

func (s *Store) CreateContact(_ context.Context, msg types.ContactMessage) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, s.Err
	}
	msg.ID = int64(len(s.Contacts) + 1)
	msg.ReceivedAt = time.Now().UTC()
	s.Contacts = append(s.Contacts, msg)
	return msg.ID, nil
}

func (s *Store) CreateScore(_ context.Context, score types.Score) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, s.Err
	}
	score.ID = int64(len(s.Scores) + 1)
	score.ReceivedAt = time.Now().UTC()
	s.Scores = append(s.Scores, score)
	return score.ID, nil
}

func (s *Store) CreateMail(_ context.Context, mail types.MailRecord) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, s.Err
	}
	mail.ID = int64(len(s.Mails) + 1)
	mail.Status = types.MailPending
	mail.ReceivedAt = time.Now().UTC()
	s.Mails = append(s.Mails, mail)
	return mail.ID, nil
}

func (s *Store) UpdateMailStatus(_ context.Context, id int64, status types.MailStatus, sentAt *time.Time, errMsg string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	for i := range s.Mails {
		if s.Mails[i].ID == id && s.Mails[i].Status == types.MailPending {
			s.Mails[i].Status = status
			s.Mails[i].SentAt = sentAt
			s.Mails[i].Error = errMsg
			return nil
		}
	}
	return fmt.Errorf("no pending mail with id %d: %w", id, storage.ErrNotFound)
}

func newestFirst[T any](rows []T, limit int) []T {
	out := make([]T, 0, limit)
	for i := len(rows) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, rows[i])
	}
	return out
}

func (s *Store) ListRegistrations(_ context.Context, limit int) ([]types.Registration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	return newestFirst(s.Registrations, limit), nil
}

func (s *Store) ListContacts(_ context.Context, limit int) ([]types.ContactMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	return newestFirst(s.Contacts, limit), nil
}

func (s *Store) ListScores(_ context.Context, limit int) ([]types.Score, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	return newestFirst(s.Scores, limit), nil
}

func (s *Store) ListMails(_ context.Context, limit int) ([]types.MailRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	return newestFirst(s.Mails, limit), nil
}

func (s *Store) Ping(context.Context) error {
	return s.Err
}

// Sender records messages instead of sending them. Set Err to simulate a
// transport failure.
type Sender struct {
	mu   sync.Mutex
	Err  error
	Sent []mailer.Message
}

var _ mailer.Sender = (*Sender)(nil)

func (s *Sender) Send(_ context.Context, msg mailer.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.Sent = append(s.Sent, msg)
	return nil
}

// MakeRequest creates an HTTP test request. A string body is sent as-is;
// anything else is JSON-encoded.
func MakeRequest(method, path string, body any) *http.Request {
	var req *http.Request
	switch b := body.(type) {
	case nil:
		req = httptest.NewRequest(method, path, nil)
	case string:
		req = httptest.NewRequest(method, path, bytes.NewBufferString(b))
	default:
		jsonBody, _ := json.Marshal(b)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

// AssertStatus checks that the response has the expected status code.
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into v.
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}

package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aanand-mishra/wellbeing-site/internal/config"
	"github.com/aanand-mishra/wellbeing-site/internal/storage"
	"github.com/aanand-mishra/wellbeing-site/internal/types"

	_ "github.com/mattn/go-sqlite3"
)

type SQLite struct {
	Db *sql.DB
}

var _ storage.Storage = (*SQLite)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS registrations (
	id          INTEGER  PRIMARY KEY AUTOINCREMENT,
	name        TEXT     NOT NULL,
	email       TEXT     NOT NULL,
	address     TEXT     NOT NULL DEFAULT '',
	contact     TEXT     NOT NULL,
	received_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS contacts (
	id          INTEGER  PRIMARY KEY AUTOINCREMENT,
	name        TEXT     NOT NULL,
	email       TEXT     NOT NULL,
	message     TEXT     NOT NULL,
	received_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS scores (
	id          INTEGER  PRIMARY KEY AUTOINCREMENT,
	score       REAL     NOT NULL CHECK (score >= 0 AND score <= 4),
	details     TEXT     NOT NULL DEFAULT '',
	received_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS mails (
	id          INTEGER  PRIMARY KEY AUTOINCREMENT,
	recipients  TEXT     NOT NULL,
	subject     TEXT     NOT NULL,
	body        TEXT     NOT NULL,
	status      TEXT     NOT NULL DEFAULT 'pending'
	            CHECK (status IN ('pending', 'sent', 'failed', 'mocked')),
	sent_at     DATETIME,
	error       TEXT     NOT NULL DEFAULT '',
	received_at DATETIME NOT NULL
);
`

// New opens (creating if needed) the database file at cfg.StoragePath and
// makes sure every table exists.
func New(cfg *config.Config) (*SQLite, error) {
	if dir := filepath.Dir(cfg.StoragePath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("sqlite.New: create dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", cfg.StoragePath+"?_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}

	// One connection: statements from concurrent requests queue up inside
	// database/sql instead of fighting over the file lock.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite.New: create tables: %w", err)
	}

	return &SQLite{Db: db}, nil
}

func (s *SQLite) Close() error {
	return s.Db.Close()
}

func (s *SQLite) Ping(ctx context.Context) error {
	return s.Db.PingContext(ctx)
}

func now() time.Time {
	return time.Now().UTC()
}

// insert runs a single INSERT and returns the new row id.
func (s *SQLite) insert(ctx context.Context, op, query string, args ...any) (int64, error) {
	stmt, err := s.Db.PrepareContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("%s: prepare: %w", op, err)
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx, args...)
	if err != nil {
		return 0, fmt.Errorf("%s: exec: %w", op, err)
	}

	lastID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%s: last insert id: %w", op, err)
	}

	return lastID, nil
}

func (s *SQLite) CreateRegistration(ctx context.Context, reg types.Registration) (int64, error) {
	return s.insert(ctx, "CreateRegistration",
		"INSERT INTO registrations (name, email, address, contact, received_at) VALUES (?, ?, ?, ?, ?)",
		reg.Name, reg.Email, reg.Address, reg.Contact, now(),
	)
}

func (s *SQLite) CreateContact(ctx context.Context, msg types.ContactMessage) (int64, error) {
	return s.insert(ctx, "CreateContact",
		"INSERT INTO contacts (name, email, message, received_at) VALUES (?, ?, ?, ?)",
		msg.Name, msg.Email, msg.Message, now(),
	)
}

func (s *SQLite) CreateScore(ctx context.Context, score types.Score) (int64, error) {
	return s.insert(ctx, "CreateScore",
		"INSERT INTO scores (score, details, received_at) VALUES (?, ?, ?)",
		score.Score, score.Details, now(),
	)
}

func (s *SQLite) CreateMail(ctx context.Context, mail types.MailRecord) (int64, error) {
	return s.insert(ctx, "CreateMail",
		"INSERT INTO mails (recipients, subject, body, status, received_at) VALUES (?, ?, ?, ?, ?)",
		mail.Recipients, mail.Subject, mail.Body, types.MailPending, now(),
	)
}

// UpdateMailStatus records the outcome of a delivery attempt. Only a
// pending record can be updated, so the outcome is written exactly once.
func (s *SQLite) UpdateMailStatus(ctx context.Context, id int64, status types.MailStatus, sentAt *time.Time, errMsg string) error {
	if !status.Valid() || status == types.MailPending {
		return fmt.Errorf("UpdateMailStatus: invalid status %q", status)
	}

	var sent sql.NullTime
	if sentAt != nil {
		sent = sql.NullTime{Time: sentAt.UTC(), Valid: true}
	}

	result, err := s.Db.ExecContext(ctx,
		"UPDATE mails SET status = ?, sent_at = ?, error = ? WHERE id = ? AND status = ?",
		status, sent, errMsg, id, types.MailPending,
	)
	if err != nil {
		return fmt.Errorf("UpdateMailStatus: exec: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("UpdateMailStatus: rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("UpdateMailStatus: no pending mail with id %d: %w", id, storage.ErrNotFound)
	}

	return nil
}

func (s *SQLite) ListRegistrations(ctx context.Context, limit int) ([]types.Registration, error) {
	rows, err := s.Db.QueryContext(ctx,
		"SELECT id, name, email, address, contact, received_at FROM registrations ORDER BY id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("ListRegistrations: query: %w", err)
	}
	defer rows.Close()

	registrations := make([]types.Registration, 0)
	for rows.Next() {
		var r types.Registration
		if err := rows.Scan(&r.ID, &r.Name, &r.Email, &r.Address, &r.Contact, &r.ReceivedAt); err != nil {
			return nil, fmt.Errorf("ListRegistrations: scan row: %w", err)
		}
		registrations = append(registrations, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListRegistrations: rows iteration: %w", err)
	}

	return registrations, nil
}

func (s *SQLite) ListContacts(ctx context.Context, limit int) ([]types.ContactMessage, error) {
	rows, err := s.Db.QueryContext(ctx,
		"SELECT id, name, email, message, received_at FROM contacts ORDER BY id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("ListContacts: query: %w", err)
	}
	defer rows.Close()

	contacts := make([]types.ContactMessage, 0)
	for rows.Next() {
		var c types.ContactMessage
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Message, &c.ReceivedAt); err != nil {
			return nil, fmt.Errorf("ListContacts: scan row: %w", err)
		}
		contacts = append(contacts, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListContacts: rows iteration: %w", err)
	}

	return contacts, nil
}

func (s *SQLite) ListScores(ctx context.Context, limit int) ([]types.Score, error) {
	rows, err := s.Db.QueryContext(ctx,
		"SELECT id, score, details, received_at FROM scores ORDER BY id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("ListScores: query: %w", err)
	}
	defer rows.Close()

	scores := make([]types.Score, 0)
	for rows.Next() {
		var sc types.Score
		if err := rows.Scan(&sc.ID, &sc.Score, &sc.Details, &sc.ReceivedAt); err != nil {
			return nil, fmt.Errorf("ListScores: scan row: %w", err)
		}
		scores = append(scores, sc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListScores: rows iteration: %w", err)
	}

	return scores, nil
}

func (s *SQLite) ListMails(ctx context.Context, limit int) ([]types.MailRecord, error) {
	rows, err := s.Db.QueryContext(ctx,
		"SELECT id, recipients, subject, body, status, sent_at, error, received_at FROM mails ORDER BY id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("ListMails: query: %w", err)
	}
	defer rows.Close()

	mails := make([]types.MailRecord, 0)
	for rows.Next() {
		var (
			m      types.MailRecord
			sentAt sql.NullTime
		)
		if err := rows.Scan(&m.ID, &m.Recipients, &m.Subject, &m.Body, &m.Status, &sentAt, &m.Error, &m.ReceivedAt); err != nil {
			return nil, fmt.Errorf("ListMails: scan row: %w", err)
		}
		if sentAt.Valid {
			t := sentAt.Time
			m.SentAt = &t
		}
		mails = append(mails, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListMails: rows iteration: %w", err)
	}

	return mails, nil
}

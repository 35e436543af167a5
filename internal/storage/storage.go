package storage

import (
	"context"
	"errors"
	"time"

	"github.com/aanand-mishra/wellbeing-site/internal/types"
)

// AdminRowLimit is how many of the newest rows per table the admin page shows.
const AdminRowLimit = 50

// ErrNotFound is returned when an update matches no row it is allowed to
// change.
var ErrNotFound = errors.New("record not found")

// Storage is everything the handlers need from persistence. All tables are
// append-only; the one exception is the delivery outcome of a mail record,
// written once by UpdateMailStatus.
type Storage interface {
	CreateRegistration(ctx context.Context, reg types.Registration) (int64, error)
	CreateContact(ctx context.Context, msg types.ContactMessage) (int64, error)
	CreateScore(ctx context.Context, score types.Score) (int64, error)

	// CreateMail stores a record in the pending state.
	CreateMail(ctx context.Context, mail types.MailRecord) (int64, error)
	UpdateMailStatus(ctx context.Context, id int64, status types.MailStatus, sentAt *time.Time, errMsg string) error

	// List* return at most limit rows, newest first.
	ListRegistrations(ctx context.Context, limit int) ([]types.Registration, error)
	ListContacts(ctx context.Context, limit int) ([]types.ContactMessage, error)
	ListScores(ctx context.Context, limit int) ([]types.Score, error)
	ListMails(ctx context.Context, limit int) ([]types.MailRecord, error)

	Ping(ctx context.Context) error
}

// Package admin renders the read-only dashboard of recent submissions.
// Access control is applied by the router (middleware.BasicAuth).
package admin

import (
	"bytes"
	"context"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/aanand-mishra/wellbeing-site/internal/storage"
	"github.com/aanand-mishra/wellbeing-site/internal/types"
)

type page struct {
	Limit         int
	Registrations []types.Registration
	Contacts      []types.ContactMessage
	Scores        []types.Score
	Mails         []types.MailRecord
}

var funcs = template.FuncMap{
	// Text columns were escaped by package sanitize before they were
	// stored; escaping them again would show "&amp;lt;" on the page.
	"stored": func(s string) template.HTML { return template.HTML(s) },
	"ts": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Local().Format("2006-01-02 15:04:05")
	},
	"tsp": func(t *time.Time) string {
		if t == nil {
			return "-"
		}
		return t.Local().Format("2006-01-02 15:04:05")
	},
}

var dashboard = template.Must(template.New("admin").Funcs(funcs).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Admin</title>
<style>
body { font-family: system-ui, sans-serif; margin: 2rem; color: #222; }
table { border-collapse: collapse; width: 100%; margin-bottom: 2rem; font-size: 0.9rem; }
th, td { border: 1px solid #ccc; padding: 0.4rem 0.6rem; text-align: left; vertical-align: top; }
th { background: #f3f3f3; }
td.pre { white-space: pre-wrap; max-width: 40rem; }
.status-sent { color: #2e7d32; } .status-failed { color: #c62828; }
.status-mocked { color: #6d6d6d; } .status-pending { color: #ef6c00; }
</style>
</head>
<body>
<h1>Submissions</h1>
<p>Showing the latest {{.Limit}} rows of each table.</p>

<h2>Registrations ({{len .Registrations}})</h2>
<table>
<tr><th>ID</th><th>Name</th><th>Email</th><th>Address</th><th>Contact</th><th>Received</th></tr>
{{range .Registrations}}<tr><td>{{.ID}}</td><td>{{stored .Name}}</td><td>{{stored .Email}}</td><td>{{stored .Address}}</td><td>{{stored .Contact}}</td><td>{{ts .ReceivedAt}}</td></tr>
{{else}}<tr><td colspan="6">No registrations yet.</td></tr>
{{end}}</table>

<h2>Contact messages ({{len .Contacts}})</h2>
<table>
<tr><th>ID</th><th>Name</th><th>Email</th><th>Message</th><th>Received</th></tr>
{{range .Contacts}}<tr><td>{{.ID}}</td><td>{{stored .Name}}</td><td>{{stored .Email}}</td><td class="pre">{{stored .Message}}</td><td>{{ts .ReceivedAt}}</td></tr>
{{else}}<tr><td colspan="5">No messages yet.</td></tr>
{{end}}</table>

<h2>Scores ({{len .Scores}})</h2>
<table>
<tr><th>ID</th><th>Score</th><th>Details</th><th>Received</th></tr>
{{range .Scores}}<tr><td>{{.ID}}</td><td>{{printf "%.2f" .Score}}</td><td class="pre">{{stored .Details}}</td><td>{{ts .ReceivedAt}}</td></tr>
{{else}}<tr><td colspan="4">No scores yet.</td></tr>
{{end}}</table>

<h2>Mails ({{len .Mails}})</h2>
<table>
<tr><th>ID</th><th>Recipients</th><th>Subject</th><th>Body</th><th>Status</th><th>Sent</th><th>Error</th><th>Received</th></tr>
{{range .Mails}}<tr><td>{{.ID}}</td><td>{{stored .Recipients}}</td><td>{{stored .Subject}}</td><td class="pre">{{stored .Body}}</td><td class="status-{{.Status}}">{{.Status}}</td><td>{{tsp .SentAt}}</td><td>{{.Error}}</td><td>{{ts .ReceivedAt}}</td></tr>
{{else}}<tr><td colspan="8">No mail yet.</td></tr>
{{end}}</table>
</body>
</html>
`))

// Dashboard handles GET /admin.
func Dashboard(storage storage.Storage, limit int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := load(r.Context(), storage, limit)
		if err != nil {
			slog.Error("admin: loading tables failed", slog.String("error", err.Error()))
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		// Render to a buffer so a template error can still become a 500.
		var buf bytes.Buffer
		if err := dashboard.Execute(&buf, p); err != nil {
			slog.Error("admin: rendering failed", slog.String("error", err.Error()))
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		w.WriteHeader(http.StatusOK)
		buf.WriteTo(w)
	}
}

func load(ctx context.Context, storage storage.Storage, limit int) (page, error) {
	p := page{Limit: limit}

	var err error
	if p.Registrations, err = storage.ListRegistrations(ctx, limit); err != nil {
		return page{}, err
	}
	if p.Contacts, err = storage.ListContacts(ctx, limit); err != nil {
		return page{}, err
	}
	if p.Scores, err = storage.ListScores(ctx, limit); err != nil {
		return page{}, err
	}
	if p.Mails, err = storage.ListMails(ctx, limit); err != nil {
		return page{}, err
	}

	return p, nil
}

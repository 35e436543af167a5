package router

import (
	"net/http"

	"github.com/aanand-mishra/wellbeing-site/internal/config"
	"github.com/aanand-mishra/wellbeing-site/internal/http/handlers/admin"
	"github.com/aanand-mishra/wellbeing-site/internal/http/handlers/form"
	"github.com/aanand-mishra/wellbeing-site/internal/http/handlers/health"
	"github.com/aanand-mishra/wellbeing-site/internal/http/handlers/mail"
	"github.com/aanand-mishra/wellbeing-site/internal/http/middleware"
	"github.com/aanand-mishra/wellbeing-site/internal/mailer"
	"github.com/aanand-mishra/wellbeing-site/internal/metrics"
	"github.com/aanand-mishra/wellbeing-site/internal/storage"
	"github.com/aanand-mishra/wellbeing-site/web"
)

// New wires every route. sender may be nil when SMTP is not configured.
//
//	POST /api/register   event registration
//	POST /api/contact    contact message
//	POST /api/score      self-assessment score
//	POST /api/send-mail  relay a message through SMTP
//	GET  /admin          last rows of every table (Basic Auth)
//	GET  /metrics        Prometheus metrics (Basic Auth)
//	GET  /health         database ping
//	GET  /               embedded site
func New(cfg *config.Config, store storage.Storage, sender mailer.Sender) http.Handler {
	router := http.NewServeMux()

	router.HandleFunc("POST /api/register", form.Register(store))
	router.HandleFunc("POST /api/contact", form.Contact(store))
	router.HandleFunc("POST /api/score", form.Score(store))
	router.HandleFunc("POST /api/send-mail", mail.Send(store, sender))

	adminOnly := func(h http.Handler) http.Handler {
		return middleware.BasicAuth(cfg.Admin.User, cfg.Admin.Pass, h)
	}
	router.Handle("GET /admin", adminOnly(admin.Dashboard(store, storage.AdminRowLimit)))
	router.Handle("GET /metrics", adminOnly(metrics.Handler()))

	router.HandleFunc("GET /health", health.Check(store))
	router.Handle("GET /", web.Handler())

	return middleware.RequestID(middleware.Logging(router))
}

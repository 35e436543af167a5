// Package mail relays a message through SMTP and keeps a record of it.
package mail

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aanand-mishra/wellbeing-site/internal/http/handlers/form"
	"github.com/aanand-mishra/wellbeing-site/internal/mailer"
	"github.com/aanand-mishra/wellbeing-site/internal/metrics"
	"github.com/aanand-mishra/wellbeing-site/internal/sanitize"
	"github.com/aanand-mishra/wellbeing-site/internal/storage"
	"github.com/aanand-mishra/wellbeing-site/internal/types"
	"github.com/aanand-mishra/wellbeing-site/internal/utils/response"
	"github.com/aanand-mishra/wellbeing-site/internal/validation"
)

// Send handles POST /api/send-mail.
//
//	{ "to": "a@example.com, b@example.com", "subject": "Hi", "body": "..." }
//
// The record is stored as pending first, then updated once:
//
//	no transport configured → mocked, 200
//	transport error         → failed, 500 with sent:false
//	delivered               → sent,   200 with sent:true
//
// sender may be nil. The request blocks until the transport returns.
func Send(storage storage.Storage, sender mailer.Sender) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.MailRequest
		if errs := validation.Decode(http.MaxBytesReader(w, r.Body, form.MaxBodyBytes), &req); errs != nil {
			form.Invalid(w, "mail", errs)
			return
		}

		rec, errs := validation.Mail(req)
		if errs != nil {
			form.Invalid(w, "mail", errs)
			return
		}

		// The transport gets the text as typed; the stored copy is escaped.
		msg := mailer.Message{To: req.To, Subject: rec.Subject, Body: rec.Body}

		rec.Recipients = sanitize.HTML(rec.Recipients)
		rec.Subject = sanitize.HTML(rec.Subject)
		rec.Body = sanitize.HTML(rec.Body)

		ctx := r.Context()
		id, err := storage.CreateMail(ctx, rec)
		if err != nil {
			form.Failed(w, r, "mail", err)
			return
		}
		metrics.FormSubmissions.WithLabelValues("mail", metrics.OutcomeAccepted).Inc()

		if sender == nil {
			if err := storage.UpdateMailStatus(ctx, id, types.MailMocked, nil, ""); err != nil {
				form.Failed(w, r, "mail", err)
				return
			}

			slog.Info("mail mocked: no SMTP transport configured", slog.Int64("id", id))
			metrics.MailDeliveries.WithLabelValues(string(types.MailMocked)).Inc()
			response.WriteJSON(w, http.StatusOK, response.Response{
				Success: true,
				ID:      id,
				Sent:    response.Bool(false),
				Status:  types.MailMocked,
				Message: "Mail recorded. SMTP is not configured, so nothing was sent.",
			})
			return
		}

		if sendErr := sender.Send(ctx, msg); sendErr != nil {
			slog.Error("mail delivery failed",
				slog.Int64("id", id),
				slog.String("error", sendErr.Error()),
			)
			metrics.MailDeliveries.WithLabelValues(string(types.MailFailed)).Inc()

			if err := storage.UpdateMailStatus(ctx, id, types.MailFailed, nil, sendErr.Error()); err != nil {
				slog.Error("failed to record mail failure",
					slog.Int64("id", id),
					slog.String("error", err.Error()),
				)
			}

			response.WriteJSON(w, http.StatusInternalServerError, response.Response{
				Success: false,
				ID:      id,
				Sent:    response.Bool(false),
				Status:  types.MailFailed,
				Message: "Failed to send mail",
			})
			return
		}

		sentAt := time.Now().UTC()
		metrics.MailDeliveries.WithLabelValues(string(types.MailSent)).Inc()
		if err := storage.UpdateMailStatus(ctx, id, types.MailSent, &sentAt, ""); err != nil {
			// Delivered but not recorded: the visitor still gets a truthful answer.
			slog.Error("failed to record mail delivery",
				slog.Int64("id", id),
				slog.String("error", err.Error()),
			)
		}

		slog.Info("mail sent", slog.Int64("id", id), slog.Int("recipients", len(req.To)))
		response.WriteJSON(w, http.StatusOK, response.Response{
			Success: true,
			ID:      id,
			Sent:    response.Bool(true),
			Status:  types.MailSent,
			Message: "Mail sent successfully",
		})
	}
}

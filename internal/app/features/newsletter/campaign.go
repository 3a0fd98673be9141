// internal/app/features/newsletter/campaign.go
package newsletter

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/waffle/pantry/validate"
	"github.com/go-chi/chi/v5"
	"github.com/perceptai/perceptai/internal/app/system/apierr"
	"github.com/perceptai/perceptai/internal/app/system/htmlsanitize"
	"github.com/perceptai/perceptai/internal/app/system/httpjson"
	"github.com/perceptai/perceptai/internal/app/system/mailer"
	"github.com/perceptai/perceptai/internal/app/system/timeouts"
	"github.com/perceptai/perceptai/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// topicFields maps campaign topics to the preference field that opts a
// subscriber into them.
var topicFields = map[string]string{
	"projects":  "preferences.projects",
	"tutorials": "preferences.tutorials",
	"news":      "preferences.news",
	"events":    "preferences.events",
}

// sendRequest is the JSON body for POST /api/newsletter/send.
type sendRequest struct {
	Subject  string `json:"subject"`
	TextBody string `json:"text"`
	HTMLBody string `json:"html"`
	Topic    string `json:"topic"`
}

// sendResponse reports campaign delivery counts.
type sendResponse struct {
	Message string `json:"message"`
	Sent    int    `json:"sent"`
	Failed  int    `json:"failed"`
}

// Send handles POST /api/newsletter/send: delivers a campaign to every
// deliverable subscriber, optionally narrowed to one preference topic.
// Each delivery is tracked; repeated failures park the address as bounced.
func (h *Handler) Send(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	if h.Sender == nil {
		httpjson.Error(w, h.Log, apierr.Validation("email delivery is not configured"))
		return
	}

	var req sendRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	subject := strings.TrimSpace(req.Subject)
	if subject == "" {
		httpjson.Error(w, h.Log, apierr.Validation("subject is required"))
		return
	}
	if strings.TrimSpace(req.TextBody) == "" && strings.TrimSpace(req.HTMLBody) == "" {
		httpjson.Error(w, h.Log, apierr.Validation("a text or html body is required"))
		return
	}

	filter := bson.M{"subscribed": true, "status": models.SubscriberActive}
	if topic := strings.ToLower(strings.TrimSpace(req.Topic)); topic != "" {
		field, ok := topicFields[topic]
		if !ok {
			httpjson.Error(w, h.Log, apierr.Validationf("invalid topic %q", req.Topic))
			return
		}
		filter[field] = true
	}

	subs, err := h.Store.Find(ctx, filter)
	if err != nil {
		httpjson.Error(w, h.Log, apierr.Storage("failed to list subscribers", err))
		return
	}

	email := mailer.Email{
		Subject:  subject,
		TextBody: req.TextBody,
		HTMLBody: htmlsanitize.Sanitize(req.HTMLBody),
	}

	var sent, failed int
	for _, sub := range subs {
		msg := email
		msg.To = sub.Email
		if err := h.Sender.Send(msg); err != nil {
			failed++
			h.Log.Warn("campaign delivery failed",
				zap.String("email", sub.Email), zap.Error(err))
			if _, berr := h.Store.MarkBounce(ctx, sub.Email); berr != nil {
				h.Log.Error("failed to record bounce",
					zap.String("email", sub.Email), zap.Error(berr))
			}
			continue
		}
		sent++
		if err := h.Store.MarkSent(ctx, sub.Email, time.Now().UTC()); err != nil {
			h.Log.Error("failed to record delivery",
				zap.String("email", sub.Email), zap.Error(err))
		}
	}

	h.Log.Info("campaign sent",
		zap.String("subject", subject),
		zap.Int("sent", sent),
		zap.Int("failed", failed))

	httpjson.OK(w, sendResponse{
		Message: "campaign processed",
		Sent:    sent,
		Failed:  failed,
	})
}

// preferencesRequest is the JSON body for PUT /api/newsletter/preferences/{email}.
type preferencesRequest struct {
	Projects  *bool `json:"projects"`
	Tutorials *bool `json:"tutorials"`
	News      *bool `json:"news"`
	Events    *bool `json:"events"`
}

// UpdatePreferences handles PUT /api/newsletter/preferences/{email}.
// Absent topics keep their current setting.
func (h *Handler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	email := strings.ToLower(strings.TrimSpace(chi.URLParam(r, "email")))
	if !validate.SimpleEmailValid(email) {
		httpjson.Error(w, h.Log, apierr.Validation("a valid email address is required"))
		return
	}

	var req preferencesRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	set := bson.M{}
	if req.Projects != nil {
		set["preferences.projects"] = *req.Projects
	}
	if req.Tutorials != nil {
		set["preferences.tutorials"] = *req.Tutorials
	}
	if req.News != nil {
		set["preferences.news"] = *req.News
	}
	if req.Events != nil {
		set["preferences.events"] = *req.Events
	}
	if len(set) == 0 {
		httpjson.Error(w, h.Log, apierr.Validation("no preference fields in request"))
		return
	}

	if err := h.Store.Update(ctx, email, set); err != nil {
		if err == mongo.ErrNoDocuments {
			httpjson.Error(w, h.Log, apierr.NotFound("subscriber not found"))
			return
		}
		httpjson.Error(w, h.Log, apierr.Storage("failed to update preferences", err))
		return
	}

	sub, err := h.Store.GetByEmail(ctx, email)
	if err != nil {
		httpjson.Error(w, h.Log, apierr.Storage("failed to load subscriber", err))
		return
	}

	httpjson.OK(w, map[string]any{
		"message":     "preferences updated",
		"preferences": sub.Preferences,
	})
}

// DeleteSubscriber handles DELETE /api/newsletter/subscriber/{email}.
func (h *Handler) DeleteSubscriber(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	email := strings.ToLower(strings.TrimSpace(chi.URLParam(r, "email")))
	if !validate.SimpleEmailValid(email) {
		httpjson.Error(w, h.Log, apierr.Validation("a valid email address is required"))
		return
	}

	deleted, err := h.Store.Delete(ctx, email)
	if err != nil {
		httpjson.Error(w, h.Log, apierr.Storage("failed to delete subscriber", err))
		return
	}
	if deleted == 0 {
		httpjson.Error(w, h.Log, apierr.NotFound("subscriber not found"))
		return
	}

	httpjson.Message(w, "subscriber deleted")
}

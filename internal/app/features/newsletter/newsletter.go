// internal/app/features/newsletter/newsletter.go
package newsletter

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/waffle/pantry/validate"
	subscriberstore "github.com/perceptai/perceptai/internal/app/store/subscribers"
	"github.com/perceptai/perceptai/internal/app/system/apierr"
	"github.com/perceptai/perceptai/internal/app/system/httpjson"
	"github.com/perceptai/perceptai/internal/app/system/mailer"
	"github.com/perceptai/perceptai/internal/app/system/timeouts"
	"github.com/perceptai/perceptai/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// recentLimit is how many recent subscribers the stats endpoint reports.
const recentLimit = 10

// subscribeRequest is the JSON body for POST /api/newsletter/subscribe.
type subscribeRequest struct {
	Email       string              `json:"email"`
	FirstName   string              `json:"firstName"`
	LastName    string              `json:"lastName"`
	Source      string              `json:"source"`
	Preferences *models.Preferences `json:"preferences"`
}

// Subscribe handles POST /api/newsletter/subscribe. Re-subscribing a
// previously unsubscribed address resurrects the old record; an already
// active subscription is a conflict.
func (h *Handler) Subscribe(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	var req subscribeRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !validate.SimpleEmailValid(email) {
		httpjson.Error(w, h.Log, apierr.Validation("a valid email address is required"))
		return
	}

	prefs := models.DefaultPreferences()
	if req.Preferences != nil {
		prefs = *req.Preferences
	}

	existing, err := h.Store.GetByEmail(ctx, email)
	switch {
	case err == nil && existing.Subscribed:
		httpjson.Error(w, h.Log, apierr.Conflict("this email is already subscribed"))
		return
	case err == nil:
		// Resurrect the unsubscribed record.
		set := bson.M{
			"subscribed":      true,
			"status":          models.SubscriberActive,
			"preferences":     prefs,
			"unsubscribed_at": nil,
			"subscribed_at":   time.Now().UTC(),
		}
		if req.FirstName != "" {
			set["first_name"] = strings.TrimSpace(req.FirstName)
		}
		if req.LastName != "" {
			set["last_name"] = strings.TrimSpace(req.LastName)
		}
		if err := h.Store.Update(ctx, email, set); err != nil {
			httpjson.Error(w, h.Log, apierr.Storage("failed to resubscribe", err))
			return
		}
		h.sendWelcome(email, strings.TrimSpace(req.FirstName))
		httpjson.Message(w, "subscription reactivated")
		return
	case err != mongo.ErrNoDocuments:
		httpjson.Error(w, h.Log, apierr.Storage("failed to look up subscriber", err))
		return
	}

	sub := models.Subscriber{
		Email:       email,
		FirstName:   strings.TrimSpace(req.FirstName),
		LastName:    strings.TrimSpace(req.LastName),
		Subscribed:  true,
		Preferences: prefs,
		Source:      strings.TrimSpace(req.Source),
		IPAddress:   r.RemoteAddr,
		UserAgent:   r.UserAgent(),
	}

	created, err := h.Store.Create(ctx, sub)
	if err != nil {
		if err == subscriberstore.ErrDuplicateSubscriber {
			httpjson.Error(w, h.Log, apierr.Conflict("this email is already subscribed"))
			return
		}
		httpjson.Error(w, h.Log, apierr.Storage("failed to create subscriber", err))
		return
	}

	h.sendWelcome(created.Email, created.FirstName)
	httpjson.Created(w, map[string]any{
		"message":    "subscribed successfully",
		"subscriber": created,
	})
}

// sendWelcome delivers the welcome email in the background; delivery
// failures are logged, never surfaced to the subscriber.
func (h *Handler) sendWelcome(email, firstName string) {
	if h.Sender == nil {
		return
	}
	go func() {
		msg := mailer.BuildWelcomeEmail(mailer.WelcomeEmailData{
			SiteName:  h.SiteName,
			FirstName: firstName,
		})
		msg.To = email
		if err := h.Sender.Send(msg); err != nil {
			h.Log.Warn("welcome email failed", zap.String("email", email), zap.Error(err))
		}
	}()
}

// unsubscribeRequest is the JSON body for POST /api/newsletter/unsubscribe.
type unsubscribeRequest struct {
	Email string `json:"email"`
}

// Unsubscribe handles POST /api/newsletter/unsubscribe.
func (h *Handler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	var req unsubscribeRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !validate.SimpleEmailValid(email) {
		httpjson.Error(w, h.Log, apierr.Validation("a valid email address is required"))
		return
	}

	err := h.Store.Update(ctx, email, bson.M{
		"subscribed":      false,
		"status":          models.SubscriberUnsubscribed,
		"unsubscribed_at": time.Now().UTC(),
	})
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpjson.Error(w, h.Log, apierr.NotFound("subscriber not found"))
			return
		}
		httpjson.Error(w, h.Log, apierr.Storage("failed to unsubscribe", err))
		return
	}

	httpjson.Message(w, "unsubscribed successfully")
}

// ListEmails handles GET /api/newsletter/emails: the deliverable addresses.
func (h *Handler) ListEmails(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	subs, err := h.Store.Find(ctx,
		bson.M{"subscribed": true, "status": models.SubscriberActive},
		options.Find().SetSort(bson.D{{Key: "subscribed_at", Value: -1}}))
	if err != nil {
		httpjson.Error(w, h.Log, apierr.Storage("failed to list subscribers", err))
		return
	}

	emails := make([]string, 0, len(subs))
	for _, s := range subs {
		emails = append(emails, s.Email)
	}

	httpjson.OK(w, map[string]any{"emails": emails, "count": len(emails)})
}

// statsResponse summarizes the subscriber list.
type statsResponse struct {
	Total        int64               `json:"total"`
	Active       int64               `json:"active"`
	Unsubscribed int64               `json:"unsubscribed"`
	Bounced      int64               `json:"bounced"`
	Recent       []models.Subscriber `json:"recent"`
}

// Stats handles GET /api/newsletter/stats.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var resp statsResponse
	var err error

	if resp.Total, err = h.Store.Count(ctx, bson.M{}); err != nil {
		httpjson.Error(w, h.Log, apierr.Storage("failed to count subscribers", err))
		return
	}
	if resp.Active, err = h.Store.Count(ctx, bson.M{"status": models.SubscriberActive}); err != nil {
		httpjson.Error(w, h.Log, apierr.Storage("failed to count subscribers", err))
		return
	}
	if resp.Unsubscribed, err = h.Store.Count(ctx, bson.M{"status": models.SubscriberUnsubscribed}); err != nil {
		httpjson.Error(w, h.Log, apierr.Storage("failed to count subscribers", err))
		return
	}
	if resp.Bounced, err = h.Store.Count(ctx, bson.M{"status": models.SubscriberBounced}); err != nil {
		httpjson.Error(w, h.Log, apierr.Storage("failed to count subscribers", err))
		return
	}

	resp.Recent, err = h.Store.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "subscribed_at", Value: -1}}).SetLimit(recentLimit))
	if err != nil {
		httpjson.Error(w, h.Log, apierr.Storage("failed to list recent subscribers", err))
		return
	}

	httpjson.OK(w, resp)
}

// internal/app/features/collab/applications.go
package collab

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/perceptai/perceptai/internal/app/policy/collabpolicy"
	postingstore "github.com/perceptai/perceptai/internal/app/store/postings"
	"github.com/perceptai/perceptai/internal/app/system/apierr"
	"github.com/perceptai/perceptai/internal/app/system/htmlsanitize"
	"github.com/perceptai/perceptai/internal/app/system/httpjson"
	"github.com/perceptai/perceptai/internal/app/system/jsonarray"
	"github.com/perceptai/perceptai/internal/app/system/timeouts"
	"github.com/perceptai/perceptai/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// applyRequest is the JSON body for POST /api/collaborations/{id}/apply.
type applyRequest struct {
	UserID     string   `json:"userId"`
	UserName   string   `json:"userName"`
	UserEmail  string             `json:"userEmail"`
	Skills     jsonarray.Flexible `json:"skills"`
	Experience string             `json:"experience"`
	Motivation string             `json:"motivation"`
	Portfolio  string             `json:"portfolio"`
}

// applyResponse confirms a submitted application.
type applyResponse struct {
	Message     string             `json:"message"`
	Application models.Application `json:"application"`
}

// Apply handles POST /api/collaborations/{id}/apply.
//
// The workflow rules run against a fetched copy so the first failed
// precondition produces its own message; the store then re-checks the same
// conditions in the update filter so a concurrent writer cannot slip an
// ineligible application in between.
func (h *Handler) Apply(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id, err := postingID(r)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	var req applyRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	posting, err := h.Store.GetByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpjson.Error(w, h.Log, apierr.NotFound("collaboration posting not found"))
			return
		}
		httpjson.Error(w, h.Log, apierr.Storage("failed to load posting", err))
		return
	}

	app, err := collabpolicy.Apply(&posting, collabpolicy.Applicant{
		UserID:     req.UserID,
		UserName:   req.UserName,
		UserEmail:  req.UserEmail,
		Skills:     htmlsanitize.StripAll(req.Skills.List()),
		Experience: htmlsanitize.Strip(req.Experience),
		Motivation: htmlsanitize.Strip(req.Motivation),
		Portfolio:  htmlsanitize.Strip(req.Portfolio),
	})
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	if err := h.Store.AddApplication(ctx, id, app); err != nil {
		if err == postingstore.ErrNotEligible {
			h.applyConflict(ctx, w, id, app.UserID)
			return
		}
		httpjson.Error(w, h.Log, apierr.Storage("failed to record application", err))
		return
	}

	h.Log.Info("application submitted",
		zap.String("posting_id", id.Hex()),
		zap.String("user_id", app.UserID))

	httpjson.Created(w, applyResponse{
		Message:     "application submitted successfully",
		Application: app,
	})
}

// applyConflict reports why a conditional application insert found no
// eligible posting: the posting state changed between the read and the
// write, so re-reading yields the precondition that now fails.
func (h *Handler) applyConflict(ctx context.Context, w http.ResponseWriter, id primitive.ObjectID, userID string) {
	posting, err := h.Store.GetByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpjson.Error(w, h.Log, apierr.NotFound("collaboration posting not found"))
			return
		}
		httpjson.Error(w, h.Log, apierr.Storage("failed to load posting", err))
		return
	}

	if _, err := collabpolicy.Apply(&posting, collabpolicy.Applicant{UserID: userID}); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	httpjson.Error(w, h.Log, apierr.Conflict("this project is no longer accepting applications"))
}

// statusRequest is the JSON body for
// PUT /api/collaborations/{id}/applications/{applicationID}.
type statusRequest struct {
	Status string `json:"status"`
}

// statusResponse reports the application and posting state after a review.
type statusResponse struct {
	Message       string                   `json:"message"`
	Status        models.ApplicationStatus `json:"status"`
	PostingStatus models.PostingStatus     `json:"postingStatus"`
}

// SetApplicationStatus handles the application review transition. Accepting
// an application occupies a capacity slot exactly once; a full posting moves
// from open to in-progress.
func (h *Handler) SetApplicationStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id, err := postingID(r)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	applicationID := chi.URLParam(r, "applicationID")

	var req statusRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	status := models.ApplicationStatus(req.Status)
	if !status.Valid() {
		httpjson.Error(w, h.Log, apierr.Validationf("invalid application status %q", req.Status))
		return
	}

	posting, err := h.Store.GetByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpjson.Error(w, h.Log, apierr.NotFound("collaboration posting not found"))
			return
		}
		httpjson.Error(w, h.Log, apierr.Storage("failed to load posting", err))
		return
	}

	outcome, err := collabpolicy.SetApplicationStatus(&posting, applicationID, status)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	modified, err := h.Store.MarkApplicationStatus(ctx, id, applicationID, outcome.Status, outcome.Accepted)
	if err != nil {
		httpjson.Error(w, h.Log, apierr.Storage("failed to update application status", err))
		return
	}

	if outcome.Accepted {
		if !modified {
			// A concurrent reviewer accepted first; record the status
			// without taking a second capacity slot.
			if _, err := h.Store.MarkApplicationStatus(ctx, id, applicationID, outcome.Status, false); err != nil {
				httpjson.Error(w, h.Log, apierr.Storage("failed to update application status", err))
				return
			}
		} else if err := h.Store.PromoteFull(ctx, id); err != nil {
			httpjson.Error(w, h.Log, apierr.Storage("failed to update posting status", err))
			return
		}
	}

	h.Log.Info("application status updated",
		zap.String("posting_id", id.Hex()),
		zap.String("application_id", applicationID),
		zap.String("status", string(outcome.Status)))

	httpjson.OK(w, statusResponse{
		Message:       "application status updated",
		Status:        outcome.Status,
		PostingStatus: outcome.PostingStatus,
	})
}

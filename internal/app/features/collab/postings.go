// internal/app/features/collab/postings.go
package collab

import (
	"context"
	"net/http"
	"time"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/validate"
	"github.com/go-chi/chi/v5"
	"github.com/perceptai/perceptai/internal/app/policy/collabpolicy"
	"github.com/perceptai/perceptai/internal/app/system/apierr"
	"github.com/perceptai/perceptai/internal/app/system/htmlsanitize"
	"github.com/perceptai/perceptai/internal/app/system/httpjson"
	"github.com/perceptai/perceptai/internal/app/system/jsonarray"
	"github.com/perceptai/perceptai/internal/app/system/paging"
	"github.com/perceptai/perceptai/internal/app/system/timeouts"
	"github.com/perceptai/perceptai/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// openListLimit caps the landing-page open postings list.
const openListLimit = 20

// postingID parses the {id} route parameter.
func postingID(r *http.Request) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		return primitive.NilObjectID, apierr.Validation("invalid posting id")
	}
	return id, nil
}

// listResponse is the paged collaborations payload.
type listResponse struct {
	Collaborations []models.Posting `json:"collaborations"`
	Pagination     paging.Meta      `json:"pagination"`
}

// List handles GET /api/collaborations with optional status and category
// filters plus offset pagination, newest first.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	filter := bson.M{}
	if status := query.Get(r, "status"); status != "" {
		filter["status"] = status
	}
	if category := query.Get(r, "category"); category != "" {
		filter["category"] = category
	}

	p := paging.Parse(r, paging.DefaultLimit)

	count, err := h.Store.Count(ctx, filter)
	if err != nil {
		httpjson.Error(w, h.Log, apierr.Storage("failed to count postings", err))
		return
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(p.Skip()).
		SetLimit(int64(p.Limit))
	postings, err := h.Store.Find(ctx, filter, opts)
	if err != nil {
		httpjson.Error(w, h.Log, apierr.Storage("failed to list postings", err))
		return
	}

	httpjson.OK(w, listResponse{
		Collaborations: postings,
		Pagination:     paging.BuildMeta(p, len(postings), count),
	})
}

// ListOpen handles GET /api/collaborations/open: the newest open postings.
func (h *Handler) ListOpen(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(openListLimit)
	postings, err := h.Store.Find(ctx, bson.M{"status": models.PostingOpen}, opts)
	if err != nil {
		httpjson.Error(w, h.Log, apierr.Storage("failed to list open postings", err))
		return
	}

	httpjson.OK(w, map[string]any{"collaborations": postings})
}

// ListByCategory handles GET /api/collaborations/category/{category}:
// open and in-progress postings in the category, paged at the smaller
// category page size.
func (h *Handler) ListByCategory(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	category := models.Category(chi.URLParam(r, "category"))
	if !category.Valid() {
		httpjson.Error(w, h.Log, apierr.Validationf("invalid category %q", string(category)))
		return
	}

	filter := bson.M{
		"category": category,
		"status":   bson.M{"$in": []models.PostingStatus{models.PostingOpen, models.PostingInProgress}},
	}

	p := paging.Parse(r, paging.CategoryLimit)

	count, err := h.Store.Count(ctx, filter)
	if err != nil {
		httpjson.Error(w, h.Log, apierr.Storage("failed to count postings", err))
		return
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(p.Skip()).
		SetLimit(int64(p.Limit))
	postings, err := h.Store.Find(ctx, filter, opts)
	if err != nil {
		httpjson.Error(w, h.Log, apierr.Storage("failed to list postings", err))
		return
	}

	httpjson.OK(w, listResponse{
		Collaborations: postings,
		Pagination:     paging.BuildMeta(p, len(postings), count),
	})
}

// Get handles GET /api/collaborations/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id, err := postingID(r)
	if err != nil {
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

	httpjson.OK(w, posting)
}

// createPostingRequest is the JSON body for POST /api/collaborations.
type createPostingRequest struct {
	ProjectID      string     `json:"projectId"`
	Name           string     `json:"projectName"`
	Description    string     `json:"projectDescription"`
	Category       string     `json:"projectCategory"`
	RequiredSkills jsonarray.Flexible `json:"requiredSkills"`
	Tags           jsonarray.Flexible `json:"tags"`
	OwnerName      string     `json:"projectOwner"`
	OwnerID        string     `json:"projectOwnerId"`
	OwnerEmail     string     `json:"projectOwnerEmail"`
	Max            int        `json:"maxCollaborators"`
	Deadline       *time.Time `json:"deadline"`
	Budget         string     `json:"budget"`
	IsPaid         bool       `json:"isPaid"`
	Location       string     `json:"location"`
	Remote         bool       `json:"remote"`
}

// Create handles POST /api/collaborations.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	var req createPostingRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	posting, err := collabpolicy.NewPosting(collabpolicy.NewPostingInput{
		ProjectID:        req.ProjectID,
		Name:             req.Name,
		Description:      htmlsanitize.Sanitize(req.Description),
		Category:         req.Category,
		RequiredSkills:   htmlsanitize.StripAll(req.RequiredSkills.List()),
		Tags:             htmlsanitize.StripAll(req.Tags.List()),
		OwnerName:        req.OwnerName,
		OwnerID:          req.OwnerID,
		OwnerEmail:       req.OwnerEmail,
		MaxCollaborators: req.Max,
		Deadline:         req.Deadline,
		Budget:           req.Budget,
		IsPaid:           req.IsPaid,
		Location:         req.Location,
		Remote:           req.Remote,
	})
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	if !validate.SimpleEmailValid(posting.OwnerEmail) {
		httpjson.Error(w, h.Log, apierr.Validation("projectOwnerEmail must be a valid email address"))
		return
	}

	created, err := h.Store.Create(ctx, posting)
	if err != nil {
		httpjson.Error(w, h.Log, apierr.Storage("failed to create posting", err))
		return
	}

	httpjson.Created(w, created)
}

// updatePostingRequest carries partial updates; absent fields are untouched.
type updatePostingRequest struct {
	Name           *string    `json:"projectName"`
	Description    *string    `json:"projectDescription"`
	Category       *string    `json:"projectCategory"`
	RequiredSkills *jsonarray.Flexible `json:"requiredSkills"`
	Tags           *jsonarray.Flexible `json:"tags"`
	Status         *string    `json:"status"`
	Max            *int       `json:"maxCollaborators"`
	Deadline       *time.Time `json:"deadline"`
	Budget         *string    `json:"budget"`
	IsPaid         *bool      `json:"isPaid"`
	Location       *string    `json:"location"`
	Remote         *bool      `json:"remote"`
}

// Update handles PUT /api/collaborations/{id}. Occupancy and the embedded
// applications are never writable through this endpoint.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id, err := postingID(r)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	var req updatePostingRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	set := bson.M{}
	if req.Name != nil {
		set["name"] = *req.Name
	}
	if req.Description != nil {
		set["description"] = htmlsanitize.Sanitize(*req.Description)
	}
	if req.Category != nil {
		category := models.Category(*req.Category)
		if !category.Valid() {
			httpjson.Error(w, h.Log, apierr.Validationf("invalid category %q", *req.Category))
			return
		}
		set["category"] = category
	}
	if req.Status != nil {
		status := models.PostingStatus(*req.Status)
		if !status.Valid() {
			httpjson.Error(w, h.Log, apierr.Validationf("invalid status %q", *req.Status))
			return
		}
		set["status"] = status
	}
	if req.RequiredSkills != nil {
		set["required_skills"] = htmlsanitize.StripAll(req.RequiredSkills.List())
	}
	if req.Tags != nil {
		set["tags"] = htmlsanitize.StripAll(req.Tags.List())
	}
	if req.Max != nil {
		if *req.Max < 1 {
			httpjson.Error(w, h.Log, apierr.Validation("maxCollaborators must be a positive integer"))
			return
		}
		set["max_collaborators"] = *req.Max
	}
	if req.Deadline != nil {
		set["deadline"] = *req.Deadline
	}
	if req.Budget != nil {
		set["budget"] = *req.Budget
	}
	if req.IsPaid != nil {
		set["is_paid"] = *req.IsPaid
	}
	if req.Location != nil {
		set["location"] = *req.Location
	}
	if req.Remote != nil {
		set["remote"] = *req.Remote
	}

	if len(set) == 0 {
		httpjson.Error(w, h.Log, apierr.Validation("no updatable fields in request"))
		return
	}

	if err := h.Store.Update(ctx, id, set); err != nil {
		if err == mongo.ErrNoDocuments {
			httpjson.Error(w, h.Log, apierr.NotFound("collaboration posting not found"))
			return
		}
		httpjson.Error(w, h.Log, apierr.Storage("failed to update posting", err))
		return
	}

	posting, err := h.Store.GetByID(ctx, id)
	if err != nil {
		httpjson.Error(w, h.Log, apierr.Storage("failed to load posting", err))
		return
	}

	httpjson.OK(w, posting)
}

// Delete handles DELETE /api/collaborations/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id, err := postingID(r)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	deleted, err := h.Store.Delete(ctx, id)
	if err != nil {
		httpjson.Error(w, h.Log, apierr.Storage("failed to delete posting", err))
		return
	}
	if deleted == 0 {
		httpjson.Error(w, h.Log, apierr.NotFound("collaboration posting not found"))
		return
	}

	httpjson.Message(w, "collaboration posting deleted")
}

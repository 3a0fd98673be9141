// internal/app/features/resources/resources.go
package resources

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
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

const featuredLimit = 10

func resourceID(r *http.Request) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		return primitive.NilObjectID, apierr.Validation("invalid resource id")
	}
	return id, nil
}

// listResponse is the paged resources payload.
type listResponse struct {
	Resources  []models.Resource `json:"resources"`
	Pagination paging.Meta       `json:"pagination"`
}

// List handles GET /api/resources with category/featured/status filters.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	filter := bson.M{}
	if category := query.Get(r, "category"); category != "" {
		filter["category"] = category
	}
	if featured := query.Get(r, "featured"); featured != "" {
		filter["featured"] = featured == "true"
	}
	if status := query.Get(r, "status"); status != "" {
		filter["status"] = status
	} else {
		filter["status"] = models.ContentActive
	}

	p := paging.Parse(r, paging.DefaultLimit)

	count, err := h.Store.Count(ctx, filter)
	if err != nil {
		httpjson.Error(w, h.Log, apierr.Storage("failed to count resources", err))
		return
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(p.Skip()).
		SetLimit(int64(p.Limit))
	items, err := h.Store.Find(ctx, filter, opts)
	if err != nil {
		httpjson.Error(w, h.Log, apierr.Storage("failed to list resources", err))
		return
	}

	httpjson.OK(w, listResponse{
		Resources:  items,
		Pagination: paging.BuildMeta(p, len(items), count),
	})
}

// ListFeatured handles GET /api/resources/featured.
func (h *Handler) ListFeatured(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(featuredLimit)
	items, err := h.Store.Find(ctx, bson.M{
		"featured": true,
		"status":   models.ContentActive,
	}, opts)
	if err != nil {
		httpjson.Error(w, h.Log, apierr.Storage("failed to list featured resources", err))
		return
	}

	httpjson.OK(w, map[string]any{"resources": items})
}

// ListByCategory handles GET /api/resources/category/{category}.
func (h *Handler) ListByCategory(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	category := models.ResourceCategory(chi.URLParam(r, "category"))
	if !category.Valid() {
		httpjson.Error(w, h.Log, apierr.Validationf("invalid resource category %q", string(category)))
		return
	}

	filter := bson.M{"category": category, "status": models.ContentActive}
	p := paging.Parse(r, paging.CategoryLimit)

	count, err := h.Store.Count(ctx, filter)
	if err != nil {
		httpjson.Error(w, h.Log, apierr.Storage("failed to count resources", err))
		return
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(p.Skip()).
		SetLimit(int64(p.Limit))
	items, err := h.Store.Find(ctx, filter, opts)
	if err != nil {
		httpjson.Error(w, h.Log, apierr.Storage("failed to list resources", err))
		return
	}

	httpjson.OK(w, listResponse{
		Resources:  items,
		Pagination: paging.BuildMeta(p, len(items), count),
	})
}

// Get handles GET /api/resources/{id}. Reading a resource counts as a view.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id, err := resourceID(r)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	resource, err := h.Store.IncrementViews(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpjson.Error(w, h.Log, apierr.NotFound("resource not found"))
			return
		}
		httpjson.Error(w, h.Log, apierr.Storage("failed to load resource", err))
		return
	}

	httpjson.OK(w, resource)
}

// createResourceRequest is the JSON body for POST /api/resources.
type createResourceRequest struct {
	Title         string             `json:"title"`
	Description   string             `json:"description"`
	Category      string             `json:"category"`
	URL           string             `json:"url"`
	Author        string             `json:"author"`
	AuthorID      string             `json:"authorId"`
	Tags          jsonarray.Flexible `json:"tags"`
	Difficulty    string             `json:"difficulty"`
	Featured      bool               `json:"featured"`
	ThumbnailURL  string             `json:"thumbnail"`
	EstimatedTime string             `json:"estimatedTime"`
	Language      string             `json:"language"`
}

// Create handles POST /api/resources.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	var req createResourceRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	switch {
	case strings.TrimSpace(req.Title) == "":
		httpjson.Error(w, h.Log, apierr.Validation("title is required"))
		return
	case strings.TrimSpace(req.Description) == "":
		httpjson.Error(w, h.Log, apierr.Validation("description is required"))
		return
	case strings.TrimSpace(req.URL) == "":
		httpjson.Error(w, h.Log, apierr.Validation("url is required"))
		return
	}

	category := models.ResourceCategory(strings.TrimSpace(req.Category))
	if !category.Valid() {
		httpjson.Error(w, h.Log, apierr.Validationf("invalid resource category %q", req.Category))
		return
	}

	difficulty := models.Difficulty(strings.TrimSpace(req.Difficulty))
	if difficulty != "" && !difficulty.Valid() {
		httpjson.Error(w, h.Log, apierr.Validationf("invalid difficulty %q", req.Difficulty))
		return
	}

	resource := models.Resource{
		Title:         strings.TrimSpace(req.Title),
		Description:   htmlsanitize.Sanitize(req.Description),
		Category:      category,
		URL:           strings.TrimSpace(req.URL),
		Author:        strings.TrimSpace(req.Author),
		AuthorID:      strings.TrimSpace(req.AuthorID),
		Tags:          htmlsanitize.StripAll(req.Tags.List()),
		Difficulty:    difficulty,
		Featured:      req.Featured,
		ThumbnailURL:  strings.TrimSpace(req.ThumbnailURL),
		EstimatedTime: strings.TrimSpace(req.EstimatedTime),
		Language:      strings.TrimSpace(req.Language),
	}

	created, err := h.Store.Create(ctx, resource)
	if err != nil {
		httpjson.Error(w, h.Log, apierr.Storage("failed to create resource", err))
		return
	}

	httpjson.Created(w, created)
}

// updateResourceRequest carries partial updates; absent fields are untouched.
type updateResourceRequest struct {
	Title         *string             `json:"title"`
	Description   *string             `json:"description"`
	Category      *string             `json:"category"`
	URL           *string             `json:"url"`
	Tags          *jsonarray.Flexible `json:"tags"`
	Difficulty    *string             `json:"difficulty"`
	Featured      *bool               `json:"featured"`
	Status        *string             `json:"status"`
	ThumbnailURL  *string             `json:"thumbnail"`
	EstimatedTime *string             `json:"estimatedTime"`
	Language      *string             `json:"language"`
}

// Update handles PUT /api/resources/{id}. Rating and reviews are only
// writable through the review endpoint.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id, err := resourceID(r)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	var req updateResourceRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	set := bson.M{}
	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			httpjson.Error(w, h.Log, apierr.Validation("title cannot be empty"))
			return
		}
		set["title"] = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		set["description"] = htmlsanitize.Sanitize(*req.Description)
	}
	if req.Category != nil {
		category := models.ResourceCategory(*req.Category)
		if !category.Valid() {
			httpjson.Error(w, h.Log, apierr.Validationf("invalid resource category %q", *req.Category))
			return
		}
		set["category"] = category
	}
	if req.URL != nil {
		set["url"] = strings.TrimSpace(*req.URL)
	}
	if req.Tags != nil {
		set["tags"] = htmlsanitize.StripAll(req.Tags.List())
	}
	if req.Difficulty != nil {
		difficulty := models.Difficulty(*req.Difficulty)
		if !difficulty.Valid() {
			httpjson.Error(w, h.Log, apierr.Validationf("invalid difficulty %q", *req.Difficulty))
			return
		}
		set["difficulty"] = difficulty
	}
	if req.Featured != nil {
		set["featured"] = *req.Featured
	}
	if req.Status != nil {
		status := models.ContentStatus(*req.Status)
		if !status.Valid() {
			httpjson.Error(w, h.Log, apierr.Validationf("invalid status %q", *req.Status))
			return
		}
		set["status"] = status
	}
	if req.ThumbnailURL != nil {
		set["thumbnail_url"] = strings.TrimSpace(*req.ThumbnailURL)
	}
	if req.EstimatedTime != nil {
		set["estimated_time"] = strings.TrimSpace(*req.EstimatedTime)
	}
	if req.Language != nil {
		set["language"] = strings.TrimSpace(*req.Language)
	}

	if len(set) == 0 {
		httpjson.Error(w, h.Log, apierr.Validation("no updatable fields in request"))
		return
	}

	if err := h.Store.Update(ctx, id, set); err != nil {
		if err == mongo.ErrNoDocuments {
			httpjson.Error(w, h.Log, apierr.NotFound("resource not found"))
			return
		}
		httpjson.Error(w, h.Log, apierr.Storage("failed to update resource", err))
		return
	}

	resource, err := h.Store.GetByID(ctx, id)
	if err != nil {
		httpjson.Error(w, h.Log, apierr.Storage("failed to load resource", err))
		return
	}

	httpjson.OK(w, resource)
}

// Delete handles DELETE /api/resources/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id, err := resourceID(r)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	deleted, err := h.Store.Delete(ctx, id)
	if err != nil {
		httpjson.Error(w, h.Log, apierr.Storage("failed to delete resource", err))
		return
	}
	if deleted == 0 {
		httpjson.Error(w, h.Log, apierr.NotFound("resource not found"))
		return
	}

	httpjson.Message(w, "resource deleted")
}

// reviewRequest is the JSON body for POST /api/resources/{id}/review.
type reviewRequest struct {
	UserID  string `json:"userId"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// AddReview handles POST /api/resources/{id}/review: appends the review
// and recomputes the resource's mean rating.
func (h *Handler) AddReview(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id, err := resourceID(r)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	var req reviewRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	if strings.TrimSpace(req.UserID) == "" {
		httpjson.Error(w, h.Log, apierr.Validation("userId is required"))
		return
	}
	if req.Rating < 0 || req.Rating > 5 {
		httpjson.Error(w, h.Log, apierr.Validation("rating must be between 0 and 5"))
		return
	}

	resource, err := h.Store.GetByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpjson.Error(w, h.Log, apierr.NotFound("resource not found"))
			return
		}
		httpjson.Error(w, h.Log, apierr.Storage("failed to load resource", err))
		return
	}

	review := models.Review{
		UserID:    strings.TrimSpace(req.UserID),
		Rating:    req.Rating,
		Comment:   htmlsanitize.Strip(req.Comment),
		CreatedAt: time.Now().UTC(),
	}
	resource.Reviews = append(resource.Reviews, review)

	if err := h.Store.AddReview(ctx, id, review, resource.MeanRating()); err != nil {
		if err == mongo.ErrNoDocuments {
			httpjson.Error(w, h.Log, apierr.NotFound("resource not found"))
			return
		}
		httpjson.Error(w, h.Log, apierr.Storage("failed to record review", err))
		return
	}

	httpjson.OK(w, map[string]any{
		"message": "review added",
		"rating":  resource.MeanRating(),
		"reviews": len(resource.Reviews),
	})
}

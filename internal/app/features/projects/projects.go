// internal/app/features/projects/projects.go
package projects

import (
	"context"
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
	"github.com/perceptai/perceptai/internal/app/system/apierr"
	"github.com/perceptai/perceptai/internal/app/system/htmlsanitize"
	"github.com/perceptai/perceptai/internal/app/system/httpjson"
	"github.com/perceptai/perceptai/internal/app/system/jsonarray"
	"github.com/perceptai/perceptai/internal/app/system/paging"
	"github.com/perceptai/perceptai/internal/app/system/timeouts"
	"github.com/perceptai/perceptai/internal/domain/models"
	projectstore "github.com/perceptai/perceptai/internal/app/store/projects"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// featuredLimit caps the featured projects list.
const featuredLimit = 10

func projectID(r *http.Request) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		return primitive.NilObjectID, apierr.Validation("invalid project id")
	}
	return id, nil
}

// listResponse is the paged projects payload.
type listResponse struct {
	Projects   []models.Project `json:"projects"`
	Pagination paging.Meta      `json:"pagination"`
}

// List handles GET /api/projects with category/featured/status filters.
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
		httpjson.Error(w, h.Log, apierr.Storage("failed to count projects", err))
		return
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(p.Skip()).
		SetLimit(int64(p.Limit))
	items, err := h.Store.Find(ctx, filter, opts)
	if err != nil {
		httpjson.Error(w, h.Log, apierr.Storage("failed to list projects", err))
		return
	}

	httpjson.OK(w, listResponse{
		Projects:   items,
		Pagination: paging.BuildMeta(p, len(items), count),
	})
}

// ListFeatured handles GET /api/projects/featured: the ten newest active
// featured projects.
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
		httpjson.Error(w, h.Log, apierr.Storage("failed to list featured projects", err))
		return
	}

	httpjson.OK(w, map[string]any{"projects": items})
}

// ListByCategory handles GET /api/projects/category/{category}.
func (h *Handler) ListByCategory(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	category := models.Category(chi.URLParam(r, "category"))
	if !category.Valid() {
		httpjson.Error(w, h.Log, apierr.Validationf("invalid category %q", string(category)))
		return
	}

	filter := bson.M{"category": category, "status": models.ContentActive}
	p := paging.Parse(r, paging.CategoryLimit)

	count, err := h.Store.Count(ctx, filter)
	if err != nil {
		httpjson.Error(w, h.Log, apierr.Storage("failed to count projects", err))
		return
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(p.Skip()).
		SetLimit(int64(p.Limit))
	items, err := h.Store.Find(ctx, filter, opts)
	if err != nil {
		httpjson.Error(w, h.Log, apierr.Storage("failed to list projects", err))
		return
	}

	httpjson.OK(w, listResponse{
		Projects:   items,
		Pagination: paging.BuildMeta(p, len(items), count),
	})
}

// Get handles GET /api/projects/{id}. Reading a project counts as a view.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id, err := projectID(r)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	project, err := h.Store.IncrementViews(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpjson.Error(w, h.Log, apierr.NotFound("project not found"))
			return
		}
		httpjson.Error(w, h.Log, apierr.Storage("failed to load project", err))
		return
	}

	httpjson.OK(w, project)
}

// createProjectRequest is the JSON body for POST /api/projects. The array
// fields accept either JSON arrays or JSON-encoded array strings, the two
// shapes clients historically sent.
type createProjectRequest struct {
	Name          string             `json:"name"`
	Title         string             `json:"title"`
	Description   string             `json:"description"`
	Category      string             `json:"category"`
	Technologies  jsonarray.Flexible `json:"technologies"`
	Tags          jsonarray.Flexible `json:"tags"`
	GithubURL     string             `json:"githubUrl"`
	LiveURL       string             `json:"liveUrl"`
	DemoURL       string             `json:"demoUrl"`
	CodeURL       string             `json:"codeUrl"`
	ImageURL      string             `json:"image"`
	Featured      bool               `json:"featured"`
	Author        string             `json:"author"`
	AuthorID      string             `json:"authorId"`
	Difficulty    string             `json:"difficulty"`
	EstimatedTime string             `json:"estimatedTime"`
	Requirements  jsonarray.Flexible `json:"requirements"`
	Instructions  string             `json:"instructions"`
	Executable    bool               `json:"executable"`
	ScriptName    string             `json:"scriptName"`
}

// Create handles POST /api/projects. Project names are unique across the
// catalog, case-insensitively.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	var req createProjectRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	name := strings.TrimSpace(req.Name)
	switch {
	case name == "":
		httpjson.Error(w, h.Log, apierr.Validation("name is required"))
		return
	case strings.TrimSpace(req.Description) == "":
		httpjson.Error(w, h.Log, apierr.Validation("description is required"))
		return
	case strings.TrimSpace(req.Author) == "":
		httpjson.Error(w, h.Log, apierr.Validation("author is required"))
		return
	}

	category := models.Category(strings.TrimSpace(req.Category))
	if !category.Valid() {
		httpjson.Error(w, h.Log, apierr.Validationf("invalid category %q", req.Category))
		return
	}

	difficulty := models.Difficulty(strings.TrimSpace(req.Difficulty))
	if difficulty != "" && !difficulty.Valid() {
		httpjson.Error(w, h.Log, apierr.Validationf("invalid difficulty %q", req.Difficulty))
		return
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = name
	}

	project := models.Project{
		Name:          name,
		Title:         title,
		Description:   htmlsanitize.Sanitize(req.Description),
		Category:      category,
		Technologies:  htmlsanitize.StripAll(req.Technologies.List()),
		Tags:          htmlsanitize.StripAll(req.Tags.List()),
		GithubURL:     strings.TrimSpace(req.GithubURL),
		LiveURL:       strings.TrimSpace(req.LiveURL),
		DemoURL:       strings.TrimSpace(req.DemoURL),
		CodeURL:       strings.TrimSpace(req.CodeURL),
		ImageURL:      strings.TrimSpace(req.ImageURL),
		Featured:      req.Featured,
		Author:        strings.TrimSpace(req.Author),
		AuthorID:      strings.TrimSpace(req.AuthorID),
		Difficulty:    difficulty,
		EstimatedTime: strings.TrimSpace(req.EstimatedTime),
		Requirements:  htmlsanitize.StripAll(req.Requirements.List()),
		Instructions:  htmlsanitize.Sanitize(req.Instructions),
		Executable:    req.Executable,
		ScriptName:    strings.TrimSpace(req.ScriptName),
	}

	created, err := h.Store.Create(ctx, project)
	if err != nil {
		if err == projectstore.ErrDuplicateProject {
			httpjson.Error(w, h.Log, apierr.Conflict("a project with this name already exists"))
			return
		}
		httpjson.Error(w, h.Log, apierr.Storage("failed to create project", err))
		return
	}

	httpjson.Created(w, created)
}

// updateProjectRequest carries partial updates; absent fields are untouched.
type updateProjectRequest struct {
	Name          *string             `json:"name"`
	Title         *string             `json:"title"`
	Description   *string             `json:"description"`
	Category      *string             `json:"category"`
	Technologies  *jsonarray.Flexible `json:"technologies"`
	Tags          *jsonarray.Flexible `json:"tags"`
	GithubURL     *string             `json:"githubUrl"`
	LiveURL       *string             `json:"liveUrl"`
	DemoURL       *string             `json:"demoUrl"`
	CodeURL       *string             `json:"codeUrl"`
	ImageURL      *string             `json:"image"`
	Featured      *bool               `json:"featured"`
	Status        *string             `json:"status"`
	Difficulty    *string             `json:"difficulty"`
	EstimatedTime *string             `json:"estimatedTime"`
	Requirements  *jsonarray.Flexible `json:"requirements"`
	Instructions  *string             `json:"instructions"`
	Executable    *bool               `json:"executable"`
	ScriptName    *string             `json:"scriptName"`
}

// Update handles PUT /api/projects/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id, err := projectID(r)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	var req updateProjectRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	set := bson.M{}
	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			httpjson.Error(w, h.Log, apierr.Validation("name cannot be empty"))
			return
		}
		set["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Title != nil {
		set["title"] = strings.TrimSpace(*req.Title)
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
		status := models.ContentStatus(*req.Status)
		if !status.Valid() {
			httpjson.Error(w, h.Log, apierr.Validationf("invalid status %q", *req.Status))
			return
		}
		set["status"] = status
	}
	if req.Difficulty != nil {
		difficulty := models.Difficulty(*req.Difficulty)
		if !difficulty.Valid() {
			httpjson.Error(w, h.Log, apierr.Validationf("invalid difficulty %q", *req.Difficulty))
			return
		}
		set["difficulty"] = difficulty
	}
	if req.Technologies != nil {
		set["technologies"] = htmlsanitize.StripAll(req.Technologies.List())
	}
	if req.Tags != nil {
		set["tags"] = htmlsanitize.StripAll(req.Tags.List())
	}
	if req.Requirements != nil {
		set["requirements"] = htmlsanitize.StripAll(req.Requirements.List())
	}
	if req.GithubURL != nil {
		set["github_url"] = strings.TrimSpace(*req.GithubURL)
	}
	if req.LiveURL != nil {
		set["live_url"] = strings.TrimSpace(*req.LiveURL)
	}
	if req.DemoURL != nil {
		set["demo_url"] = strings.TrimSpace(*req.DemoURL)
	}
	if req.CodeURL != nil {
		set["code_url"] = strings.TrimSpace(*req.CodeURL)
	}
	if req.ImageURL != nil {
		set["image_url"] = strings.TrimSpace(*req.ImageURL)
	}
	if req.Featured != nil {
		set["featured"] = *req.Featured
	}
	if req.EstimatedTime != nil {
		set["estimated_time"] = strings.TrimSpace(*req.EstimatedTime)
	}
	if req.Instructions != nil {
		set["instructions"] = htmlsanitize.Sanitize(*req.Instructions)
	}
	if req.Executable != nil {
		set["executable"] = *req.Executable
	}
	if req.ScriptName != nil {
		set["script_name"] = strings.TrimSpace(*req.ScriptName)
	}

	if len(set) == 0 {
		httpjson.Error(w, h.Log, apierr.Validation("no updatable fields in request"))
		return
	}

	if err := h.Store.Update(ctx, id, set); err != nil {
		switch err {
		case mongo.ErrNoDocuments:
			httpjson.Error(w, h.Log, apierr.NotFound("project not found"))
		case projectstore.ErrDuplicateProject:
			httpjson.Error(w, h.Log, apierr.Conflict("a project with this name already exists"))
		default:
			httpjson.Error(w, h.Log, apierr.Storage("failed to update project", err))
		}
		return
	}

	project, err := h.Store.GetByID(ctx, id)
	if err != nil {
		httpjson.Error(w, h.Log, apierr.Storage("failed to load project", err))
		return
	}

	httpjson.OK(w, project)
}

// Delete handles DELETE /api/projects/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id, err := projectID(r)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	deleted, err := h.Store.Delete(ctx, id)
	if err != nil {
		httpjson.Error(w, h.Log, apierr.Storage("failed to delete project", err))
		return
	}
	if deleted == 0 {
		httpjson.Error(w, h.Log, apierr.NotFound("project not found"))
		return
	}

	httpjson.Message(w, "project deleted")
}

// Like handles POST /api/projects/{id}/like: an unauthenticated, unbounded
// applause counter.
func (h *Handler) Like(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id, err := projectID(r)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	likes, err := h.Store.Like(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpjson.Error(w, h.Log, apierr.NotFound("project not found"))
			return
		}
		httpjson.Error(w, h.Log, apierr.Storage("failed to like project", err))
		return
	}

	httpjson.OK(w, map[string]any{"likes": likes})
}

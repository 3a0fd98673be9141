package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"github.com/perceptai/perceptai/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreatePosting creates an open collaboration posting with the given
// capacity and no applications.
func (f *Fixtures) CreatePosting(ctx context.Context, name string, maxCollaborators int) models.Posting {
	f.t.Helper()

	now := time.Now().UTC()
	p := models.Posting{
		ID:               primitive.NewObjectID(),
		ProjectID:        primitive.NewObjectID().Hex(),
		Name:             name,
		Description:      "Test posting description",
		Category:         models.CategoryComputerVision,
		OwnerName:        "Test Owner",
		OwnerEmail:       "owner@test.com",
		Status:           models.PostingOpen,
		Applications:     []models.Application{},
		MaxCollaborators: maxCollaborators,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	_, err := f.db.Collection("postings").InsertOne(ctx, p)
	if err != nil {
		f.t.Fatalf("failed to create test posting: %v", err)
	}

	return p
}

// CreateApplication appends a pending application for userID directly to
// the stored posting.
func (f *Fixtures) CreateApplication(ctx context.Context, postingID primitive.ObjectID, userID string) models.Application {
	f.t.Helper()

	app := models.Application{
		ID:        primitive.NewObjectID().Hex(),
		UserID:    userID,
		UserName:  "Test Applicant",
		UserEmail: userID + "@test.com",
		Skills:    []string{"go"},
		Status:    models.ApplicationPending,
		AppliedAt: time.Now().UTC(),
	}

	_, err := f.db.Collection("postings").UpdateByID(ctx, postingID,
		bson.M{"$push": bson.M{"applications": app}})
	if err != nil {
		f.t.Fatalf("failed to create test application: %v", err)
	}

	return app
}

// CreateProject creates an active catalog project with the given name.
func (f *Fixtures) CreateProject(ctx context.Context, name string) models.Project {
	f.t.Helper()

	now := time.Now().UTC()
	p := models.Project{
		ID:          primitive.NewObjectID(),
		Name:        name,
		NameCI:      text.Fold(name),
		Title:       name,
		Description: "Test project description",
		Category:    models.CategoryAIML,
		Author:      "Test Author",
		Status:      models.ContentActive,
		Difficulty:  models.DifficultyIntermediate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err := f.db.Collection("projects").InsertOne(ctx, p)
	if err != nil {
		f.t.Fatalf("failed to create test project: %v", err)
	}

	return p
}

// CreateResource creates an active learning resource with the given title.
func (f *Fixtures) CreateResource(ctx context.Context, title string) models.Resource {
	f.t.Helper()

	now := time.Now().UTC()
	r := models.Resource{
		ID:          primitive.NewObjectID(),
		Title:       title,
		TitleCI:     text.Fold(title),
		Description: "Test resource description",
		Category:    models.ResourceTutorial,
		URL:         "https://example.com/resource",
		Author:      "Test Author",
		Difficulty:  models.DifficultyBeginner,
		Reviews:     []models.Review{},
		Status:      models.ContentActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err := f.db.Collection("resources").InsertOne(ctx, r)
	if err != nil {
		f.t.Fatalf("failed to create test resource: %v", err)
	}

	return r
}

// CreateSubscriber creates an active newsletter subscriber.
func (f *Fixtures) CreateSubscriber(ctx context.Context, email string) models.Subscriber {
	f.t.Helper()

	now := time.Now().UTC()
	sub := models.Subscriber{
		ID:           primitive.NewObjectID(),
		Email:        email,
		Subscribed:   true,
		Preferences:  models.DefaultPreferences(),
		Status:       models.SubscriberActive,
		SubscribedAt: now,
		UpdatedAt:    now,
	}

	_, err := f.db.Collection("subscribers").InsertOne(ctx, sub)
	if err != nil {
		f.t.Fatalf("failed to create test subscriber: %v", err)
	}

	return sub
}

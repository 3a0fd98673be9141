package resources_test

import (
	"testing"
	"time"

	resourcestore "github.com/perceptai/perceptai/internal/app/store/resources"
	"github.com/perceptai/perceptai/internal/domain/models"
	"github.com/perceptai/perceptai/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestCreateAppliesDefaults(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := resourcestore.New(db)

	created, err := store.Create(ctx, models.Resource{
		Title:       "OpenCV Basics",
		Description: "Getting started with OpenCV",
		Category:    models.ResourceTutorial,
		URL:         "https://example.com/opencv",
		Author:      "Ada",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if created.Status != models.ContentActive {
		t.Errorf("status: got %q, want %q", created.Status, models.ContentActive)
	}
	if created.Difficulty != models.DifficultyIntermediate {
		t.Errorf("difficulty: got %q, want %q", created.Difficulty, models.DifficultyIntermediate)
	}
	if created.Reviews == nil || len(created.Reviews) != 0 {
		t.Errorf("reviews: got %v, want empty slice", created.Reviews)
	}

	got, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "OpenCV Basics" || got.TitleCI == "" {
		t.Errorf("round trip: got %+v", got)
	}
}

func TestUpdateRefoldsTitle(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := resourcestore.New(db)
	fx := testutil.NewFixtures(t, db)

	created := fx.CreateResource(ctx, "Old Title")

	if err := store.Update(ctx, created.ID, bson.M{"title": "New Title"}); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "New Title" {
		t.Errorf("title: got %q, want %q", got.Title, "New Title")
	}
	if got.TitleCI == created.TitleCI {
		t.Errorf("title_ci not refolded: still %q", got.TitleCI)
	}

	if err := store.Update(ctx, primitive.NewObjectID(), bson.M{"title": "Nobody"}); err != mongo.ErrNoDocuments {
		t.Fatalf("update missing: got %v, want ErrNoDocuments", err)
	}
}

func TestIncrementViews(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := resourcestore.New(db)
	fx := testutil.NewFixtures(t, db)

	created := fx.CreateResource(ctx, "Counted")

	got, err := store.IncrementViews(ctx, created.ID)
	if err != nil {
		t.Fatalf("first increment: %v", err)
	}
	if got.Views != 1 {
		t.Errorf("views: got %d, want 1", got.Views)
	}

	got, err = store.IncrementViews(ctx, created.ID)
	if err != nil {
		t.Fatalf("second increment: %v", err)
	}
	if got.Views != 2 {
		t.Errorf("views: got %d, want 2", got.Views)
	}
}

func TestAddReviewStoresRating(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := resourcestore.New(db)
	fx := testutil.NewFixtures(t, db)

	created := fx.CreateResource(ctx, "Reviewed")

	first := models.Review{UserID: "u-1", Rating: 5, CreatedAt: time.Now().UTC()}
	if err := store.AddReview(ctx, created.ID, first, 5); err != nil {
		t.Fatalf("first review: %v", err)
	}

	second := models.Review{UserID: "u-2", Rating: 2, CreatedAt: time.Now().UTC()}
	if err := store.AddReview(ctx, created.ID, second, 3.5); err != nil {
		t.Fatalf("second review: %v", err)
	}

	got, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.Reviews) != 2 {
		t.Fatalf("reviews: got %d, want 2", len(got.Reviews))
	}
	if got.Rating != 3.5 {
		t.Errorf("rating: got %v, want 3.5", got.Rating)
	}
	if got.MeanRating() != 3.5 {
		t.Errorf("mean rating: got %v, want 3.5", got.MeanRating())
	}

	if err := store.AddReview(ctx, primitive.NewObjectID(), first, 5); err != mongo.ErrNoDocuments {
		t.Fatalf("review missing resource: got %v, want ErrNoDocuments", err)
	}
}

func TestDeleteReportsCount(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := resourcestore.New(db)
	fx := testutil.NewFixtures(t, db)

	created := fx.CreateResource(ctx, "Doomed")

	n, err := store.Delete(ctx, created.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if n != 1 {
		t.Errorf("deleted: got %d, want 1", n)
	}

	n, err = store.Delete(ctx, created.ID)
	if err != nil {
		t.Fatalf("second delete: %v", err)
	}
	if n != 0 {
		t.Errorf("second delete: got %d, want 0", n)
	}
}

package projects_test

import (
	"testing"

	projectstore "github.com/perceptai/perceptai/internal/app/store/projects"
	"github.com/perceptai/perceptai/internal/domain/models"
	"github.com/perceptai/perceptai/internal/testutil"
	"github.com/perceptai/perceptai/internal/app/system/indexes"
)

func TestCreateRejectsDuplicateNameCaseInsensitive(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("ensure indexes: %v", err)
	}
	store := projectstore.New(db)

	first := models.Project{
		Name:        "Depth Mapper",
		Description: "Depth estimation demo",
		Category:    models.CategoryComputerVision,
		Author:      "Ada",
	}
	if _, err := store.Create(ctx, first); err != nil {
		t.Fatalf("create: %v", err)
	}

	dup := first
	dup.Name = "DEPTH mapper"
	if _, err := store.Create(ctx, dup); err != projectstore.ErrDuplicateProject {
		t.Fatalf("duplicate create: got %v, want ErrDuplicateProject", err)
	}
}

func TestLikeAndViews(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := projectstore.New(db)
	fx := testutil.NewFixtures(t, db)

	p := fx.CreateProject(ctx, "Counted")

	likes, err := store.Like(ctx, p.ID)
	if err != nil {
		t.Fatalf("like: %v", err)
	}
	if likes != 1 {
		t.Errorf("likes: got %d, want 1", likes)
	}

	got, err := store.IncrementViews(ctx, p.ID)
	if err != nil {
		t.Fatalf("views: %v", err)
	}
	if got.Views != 1 {
		t.Errorf("views: got %d, want 1", got.Views)
	}
}

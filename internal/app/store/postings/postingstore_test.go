package postings_test

import (
	"testing"
	"time"

	postingstore "github.com/perceptai/perceptai/internal/app/store/postings"
	"github.com/perceptai/perceptai/internal/domain/models"
	"github.com/perceptai/perceptai/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newApplication(userID string) models.Application {
	return models.Application{
		ID:        primitive.NewObjectID().Hex(),
		UserID:    userID,
		UserName:  "Applicant " + userID,
		Status:    models.ApplicationPending,
		AppliedAt: time.Now().UTC(),
	}
}

func TestAddApplicationEligibility(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := postingstore.New(db)
	fx := testutil.NewFixtures(t, db)

	posting := fx.CreatePosting(ctx, "Eligibility", 2)

	if err := store.AddApplication(ctx, posting.ID, newApplication("u-1")); err != nil {
		t.Fatalf("first application: %v", err)
	}

	// Same user again: the update filter rejects it.
	if err := store.AddApplication(ctx, posting.ID, newApplication("u-1")); err != postingstore.ErrNotEligible {
		t.Fatalf("duplicate user: got %v, want ErrNotEligible", err)
	}

	// Different user fits.
	if err := store.AddApplication(ctx, posting.ID, newApplication("u-2")); err != nil {
		t.Fatalf("second application: %v", err)
	}

	got, err := store.GetByID(ctx, posting.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.Applications) != 2 {
		t.Errorf("applications: got %d, want 2", len(got.Applications))
	}
	if got.CurrentCollaborators != 0 {
		t.Errorf("occupancy: got %d, want 0 before any acceptance", got.CurrentCollaborators)
	}
}

func TestAddApplicationClosedPosting(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := postingstore.New(db)
	fx := testutil.NewFixtures(t, db)

	posting := fx.CreatePosting(ctx, "Closed", 5)
	if err := store.Update(ctx, posting.ID, bson.M{"status": models.PostingClosed}); err != nil {
		t.Fatalf("close posting: %v", err)
	}

	if err := store.AddApplication(ctx, posting.ID, newApplication("u-1")); err != postingstore.ErrNotEligible {
		t.Fatalf("closed posting: got %v, want ErrNotEligible", err)
	}
}

func TestMarkApplicationStatusAcceptOnce(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := postingstore.New(db)
	fx := testutil.NewFixtures(t, db)

	posting := fx.CreatePosting(ctx, "Accept Once", 2)
	app := newApplication("u-1")
	if err := store.AddApplication(ctx, posting.ID, app); err != nil {
		t.Fatalf("apply: %v", err)
	}

	modified, err := store.MarkApplicationStatus(ctx, posting.ID, app.ID, models.ApplicationAccepted, true)
	if err != nil {
		t.Fatalf("accept: %v", err)
	}
	if !modified {
		t.Fatal("accept: expected a write")
	}

	// Repeating the accept with the occupancy guard must not match.
	modified, err = store.MarkApplicationStatus(ctx, posting.ID, app.ID, models.ApplicationAccepted, true)
	if err != nil {
		t.Fatalf("re-accept: %v", err)
	}
	if modified {
		t.Fatal("re-accept: expected no write")
	}

	got, err := store.GetByID(ctx, posting.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.CurrentCollaborators != 1 {
		t.Errorf("occupancy: got %d, want 1", got.CurrentCollaborators)
	}
	if got.Applications[0].Status != models.ApplicationAccepted {
		t.Errorf("application status: got %q, want accepted", got.Applications[0].Status)
	}
}

func TestPromoteFull(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := postingstore.New(db)
	fx := testutil.NewFixtures(t, db)

	posting := fx.CreatePosting(ctx, "Promotable", 1)

	// Not full yet: promotion is a no-op.
	if err := store.PromoteFull(ctx, posting.ID); err != nil {
		t.Fatalf("premature promote: %v", err)
	}
	got, err := store.GetByID(ctx, posting.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != models.PostingOpen {
		t.Fatalf("status: got %q, want open", got.Status)
	}

	app := newApplication("u-1")
	if err := store.AddApplication(ctx, posting.ID, app); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if _, err := store.MarkApplicationStatus(ctx, posting.ID, app.ID, models.ApplicationAccepted, true); err != nil {
		t.Fatalf("accept: %v", err)
	}
	if err := store.PromoteFull(ctx, posting.ID); err != nil {
		t.Fatalf("promote: %v", err)
	}

	got, err = store.GetByID(ctx, posting.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != models.PostingInProgress {
		t.Errorf("status: got %q, want in-progress", got.Status)
	}
}

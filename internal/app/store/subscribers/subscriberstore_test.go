package subscribers_test

import (
	"testing"

	subscriberstore "github.com/perceptai/perceptai/internal/app/store/subscribers"
	"github.com/perceptai/perceptai/internal/app/system/indexes"
	"github.com/perceptai/perceptai/internal/domain/models"
	"github.com/perceptai/perceptai/internal/testutil"
)

func TestCreateLowercasesAndRejectsDuplicates(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("ensure indexes: %v", err)
	}
	store := subscriberstore.New(db)

	created, err := store.Create(ctx, models.Subscriber{
		Email:      "Mixed.Case@Example.COM",
		Subscribed: true,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Email != "mixed.case@example.com" {
		t.Errorf("email: got %q, want lowercased", created.Email)
	}

	_, err = store.Create(ctx, models.Subscriber{
		Email:      "mixed.case@example.com",
		Subscribed: true,
	})
	if err != subscriberstore.ErrDuplicateSubscriber {
		t.Fatalf("duplicate: got %v, want ErrDuplicateSubscriber", err)
	}
}

func TestMarkBounceParksAddressAfterThree(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := subscriberstore.New(db)
	fx := testutil.NewFixtures(t, db)

	fx.CreateSubscriber(ctx, "flaky@example.com")

	for i := 0; i < 3; i++ {
		if _, err := store.MarkBounce(ctx, "flaky@example.com"); err != nil {
			t.Fatalf("bounce %d: %v", i+1, err)
		}
	}

	sub, err := store.GetByEmail(ctx, "flaky@example.com")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if sub.BounceCount != 3 {
		t.Errorf("bounce count: got %d, want 3", sub.BounceCount)
	}
	if sub.Status != models.SubscriberBounced {
		t.Errorf("status: got %q, want bounced", sub.Status)
	}
}

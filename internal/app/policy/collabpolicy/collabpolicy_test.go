package collabpolicy_test

import (
	"testing"

	"github.com/perceptai/perceptai/internal/app/policy/collabpolicy"
	"github.com/perceptai/perceptai/internal/app/system/apierr"
	"github.com/perceptai/perceptai/internal/domain/models"
)

func validInput() collabpolicy.NewPostingInput {
	return collabpolicy.NewPostingInput{
		ProjectID:   "proj-1",
		Name:        "Gesture Recognizer",
		Description: "Real-time hand gesture recognition",
		Category:    "Computer Vision",
		OwnerName:   "Ada",
		OwnerEmail:  "ada@example.com",
		Remote:      true,
	}
}

func mustPosting(t *testing.T, in collabpolicy.NewPostingInput) models.Posting {
	t.Helper()
	p, err := collabpolicy.NewPosting(in)
	if err != nil {
		t.Fatalf("NewPosting failed: %v", err)
	}
	return p
}

func TestNewPosting_Defaults(t *testing.T) {
	p := mustPosting(t, validInput())

	if p.Status != models.PostingOpen {
		t.Errorf("status: got %q, want %q", p.Status, models.PostingOpen)
	}
	if p.MaxCollaborators != models.DefaultMaxCollaborators {
		t.Errorf("maxCollaborators: got %d, want %d", p.MaxCollaborators, models.DefaultMaxCollaborators)
	}
	if p.CurrentCollaborators != 0 {
		t.Errorf("currentCollaborators: got %d, want 0", p.CurrentCollaborators)
	}
	if len(p.Applications) != 0 {
		t.Errorf("applications: got %d, want 0", len(p.Applications))
	}
}

func TestNewPosting_TrimsWhitespace(t *testing.T) {
	in := validInput()
	in.Name = "  Gesture Recognizer  "
	in.OwnerEmail = " ada@example.com "

	p := mustPosting(t, in)
	if p.Name != "Gesture Recognizer" {
		t.Errorf("name not trimmed: %q", p.Name)
	}
	if p.OwnerEmail != "ada@example.com" {
		t.Errorf("owner email not trimmed: %q", p.OwnerEmail)
	}
}

func TestNewPosting_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*collabpolicy.NewPostingInput)
	}{
		{"missing project id", func(in *collabpolicy.NewPostingInput) { in.ProjectID = "" }},
		{"whitespace name", func(in *collabpolicy.NewPostingInput) { in.Name = "   " }},
		{"missing description", func(in *collabpolicy.NewPostingInput) { in.Description = "" }},
		{"missing owner", func(in *collabpolicy.NewPostingInput) { in.OwnerName = "" }},
		{"missing owner email", func(in *collabpolicy.NewPostingInput) { in.OwnerEmail = "" }},
		{"unknown category", func(in *collabpolicy.NewPostingInput) { in.Category = "Quantum" }},
		{"negative capacity", func(in *collabpolicy.NewPostingInput) { in.MaxCollaborators = -2 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)
			_, err := collabpolicy.NewPosting(in)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if apierr.KindOf(err) != apierr.KindValidation {
				t.Errorf("kind: got %v, want validation", apierr.KindOf(err))
			}
		})
	}
}

func applicant(id string) collabpolicy.Applicant {
	return collabpolicy.Applicant{
		UserID:    id,
		UserName:  "User " + id,
		UserEmail: id + "@example.com",
		Skills:    []string{"go", "opencv"},
	}
}

func TestApply_Succeeds(t *testing.T) {
	p := mustPosting(t, validInput())

	app, err := collabpolicy.Apply(&p, applicant("u1"))
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if app.ID == "" {
		t.Error("expected an application id to be assigned")
	}
	if app.Status != models.ApplicationPending {
		t.Errorf("status: got %q, want pending", app.Status)
	}
	if app.AppliedAt.IsZero() {
		t.Error("expected AppliedAt to be set")
	}
	// Occupancy moves on acceptance, not on application.
	if p.CurrentCollaborators != 0 {
		t.Errorf("currentCollaborators: got %d, want 0", p.CurrentCollaborators)
	}
	if len(p.Applications) != 1 {
		t.Fatalf("applications: got %d, want 1", len(p.Applications))
	}
}

func TestApply_DuplicateApplicant(t *testing.T) {
	p := mustPosting(t, validInput())

	if _, err := collabpolicy.Apply(&p, applicant("u1")); err != nil {
		t.Fatalf("first Apply failed: %v", err)
	}
	_, err := collabpolicy.Apply(&p, applicant("u1"))
	if apierr.KindOf(err) != apierr.KindConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
	if len(p.Applications) != 1 {
		t.Errorf("duplicate apply appended an application: %d", len(p.Applications))
	}
}

func TestApply_PostingNotOpen(t *testing.T) {
	for _, status := range []models.PostingStatus{models.PostingInProgress, models.PostingCompleted, models.PostingClosed} {
		t.Run(string(status), func(t *testing.T) {
			p := mustPosting(t, validInput())
			p.Status = status

			_, err := collabpolicy.Apply(&p, applicant("u1"))
			if apierr.KindOf(err) != apierr.KindConflict {
				t.Fatalf("expected conflict, got %v", err)
			}
			if len(p.Applications) != 0 {
				t.Error("apply to non-open posting appended an application")
			}
		})
	}
}

func TestApply_AtCapacity(t *testing.T) {
	in := validInput()
	in.MaxCollaborators = 1
	p := mustPosting(t, in)
	p.CurrentCollaborators = 1

	_, err := collabpolicy.Apply(&p, applicant("u1"))
	if apierr.KindOf(err) != apierr.KindConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestApply_ChecksOpenBeforeDuplicate(t *testing.T) {
	// First failed precondition wins: a closed posting reports the
	// closed conflict even for a user who already applied.
	p := mustPosting(t, validInput())
	app, _ := collabpolicy.Apply(&p, applicant("u1"))
	_ = app
	p.Status = models.PostingClosed

	_, err := collabpolicy.Apply(&p, applicant("u1"))
	if err == nil {
		t.Fatal("expected error")
	}
	if got := apierr.MessageOf(err); got != "this project is no longer accepting applications" {
		t.Errorf("message: got %q", got)
	}
}

func TestSetApplicationStatus_InvalidStatus(t *testing.T) {
	p := mustPosting(t, validInput())
	app, _ := collabpolicy.Apply(&p, applicant("u1"))

	_, err := collabpolicy.SetApplicationStatus(&p, app.ID, "approved")
	if apierr.KindOf(err) != apierr.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSetApplicationStatus_UnknownApplication(t *testing.T) {
	p := mustPosting(t, validInput())

	_, err := collabpolicy.SetApplicationStatus(&p, "missing", models.ApplicationAccepted)
	if apierr.KindOf(err) != apierr.KindNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestSetApplicationStatus_Reject(t *testing.T) {
	p := mustPosting(t, validInput())
	app, _ := collabpolicy.Apply(&p, applicant("u1"))

	out, err := collabpolicy.SetApplicationStatus(&p, app.ID, models.ApplicationRejected)
	if err != nil {
		t.Fatalf("SetApplicationStatus failed: %v", err)
	}
	if out.Status != models.ApplicationRejected {
		t.Errorf("status: got %q, want rejected", out.Status)
	}
	if out.Accepted || p.CurrentCollaborators != 0 {
		t.Error("rejection must not change occupancy")
	}
}

func TestSetApplicationStatus_ReacceptDoesNotIncrement(t *testing.T) {
	p := mustPosting(t, validInput())
	app, _ := collabpolicy.Apply(&p, applicant("u1"))

	if _, err := collabpolicy.SetApplicationStatus(&p, app.ID, models.ApplicationAccepted); err != nil {
		t.Fatalf("accept failed: %v", err)
	}
	out, err := collabpolicy.SetApplicationStatus(&p, app.ID, models.ApplicationAccepted)
	if err != nil {
		t.Fatalf("re-accept failed: %v", err)
	}
	if out.Accepted {
		t.Error("re-acceptance reported as a genuine transition")
	}
	if p.CurrentCollaborators != 1 {
		t.Errorf("currentCollaborators: got %d, want 1", p.CurrentCollaborators)
	}
}

func TestSetApplicationStatus_RejectAfterAcceptKeepsSlot(t *testing.T) {
	// No decrement path exists: rejecting a previously accepted
	// application does not free a capacity slot.
	p := mustPosting(t, validInput())
	app, _ := collabpolicy.Apply(&p, applicant("u1"))

	if _, err := collabpolicy.SetApplicationStatus(&p, app.ID, models.ApplicationAccepted); err != nil {
		t.Fatalf("accept failed: %v", err)
	}
	if _, err := collabpolicy.SetApplicationStatus(&p, app.ID, models.ApplicationRejected); err != nil {
		t.Fatalf("reject failed: %v", err)
	}
	if p.CurrentCollaborators != 1 {
		t.Errorf("currentCollaborators: got %d, want 1", p.CurrentCollaborators)
	}
}

func TestAcceptanceFillsPostingExactlyAtCapacity(t *testing.T) {
	in := validInput()
	in.MaxCollaborators = 3
	p := mustPosting(t, in)

	ids := make([]string, 0, 3)
	for _, u := range []string{"u1", "u2", "u3"} {
		app, err := collabpolicy.Apply(&p, applicant(u))
		if err != nil {
			t.Fatalf("apply %s failed: %v", u, err)
		}
		ids = append(ids, app.ID)
	}

	for i, id := range ids {
		out, err := collabpolicy.SetApplicationStatus(&p, id, models.ApplicationAccepted)
		if err != nil {
			t.Fatalf("accept %d failed: %v", i, err)
		}
		if p.CurrentCollaborators != i+1 {
			t.Errorf("after accept %d: occupancy %d", i+1, p.CurrentCollaborators)
		}
		wantStatus := models.PostingOpen
		if i == len(ids)-1 {
			wantStatus = models.PostingInProgress
		}
		if out.PostingStatus != wantStatus {
			t.Errorf("after accept %d: posting status %q, want %q", i+1, out.PostingStatus, wantStatus)
		}
	}

	if p.CurrentCollaborators > p.MaxCollaborators {
		t.Errorf("occupancy %d exceeds capacity %d", p.CurrentCollaborators, p.MaxCollaborators)
	}
}

func TestWorkflowScenario(t *testing.T) {
	// create (max 2) -> apply A -> re-apply A conflicts -> apply B ->
	// accept A (still open) -> accept B (in-progress) -> apply C conflicts.
	in := validInput()
	in.MaxCollaborators = 2
	p := mustPosting(t, in)

	appA, err := collabpolicy.Apply(&p, applicant("A"))
	if err != nil {
		t.Fatalf("apply A failed: %v", err)
	}
	if appA.Status != models.ApplicationPending {
		t.Errorf("A status: got %q, want pending", appA.Status)
	}

	if _, err := collabpolicy.Apply(&p, applicant("A")); apierr.KindOf(err) != apierr.KindConflict {
		t.Fatalf("re-apply A: expected conflict, got %v", err)
	}

	appB, err := collabpolicy.Apply(&p, applicant("B"))
	if err != nil {
		t.Fatalf("apply B failed: %v", err)
	}

	outA, err := collabpolicy.SetApplicationStatus(&p, appA.ID, models.ApplicationAccepted)
	if err != nil {
		t.Fatalf("accept A failed: %v", err)
	}
	if p.CurrentCollaborators != 1 || outA.PostingStatus != models.PostingOpen {
		t.Errorf("after accept A: occupancy=%d status=%q", p.CurrentCollaborators, outA.PostingStatus)
	}

	outB, err := collabpolicy.SetApplicationStatus(&p, appB.ID, models.ApplicationAccepted)
	if err != nil {
		t.Fatalf("accept B failed: %v", err)
	}
	if p.CurrentCollaborators != 2 || outB.PostingStatus != models.PostingInProgress {
		t.Errorf("after accept B: occupancy=%d status=%q", p.CurrentCollaborators, outB.PostingStatus)
	}

	if _, err := collabpolicy.Apply(&p, applicant("C")); apierr.KindOf(err) != apierr.KindConflict {
		t.Fatalf("apply C: expected conflict, got %v", err)
	}
}

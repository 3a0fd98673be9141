// Package collabpolicy implements the collaboration application workflow:
// posting creation rules, capacity-bounded applicant intake, and
// application review transitions.
//
// Workflow rules:
//   - A posting starts open with zero occupancy and a default capacity of 5.
//   - Applying requires, in order: an open posting, no prior application by
//     the same user, and free capacity. The first failed check wins.
//   - Occupancy counts accepted applications only; it is incremented on a
//     genuine transition into "accepted" and never on re-acceptance. No
//     transition decrements it: rejecting a previously accepted application
//     does not free a capacity slot.
//   - When occupancy reaches capacity, an open posting moves to
//     "in-progress". Posting status never returns to "open".
//
// The package is persistence-agnostic: it mutates an in-memory Posting and
// reports what changed; the postings store makes the change durable.
package collabpolicy

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/perceptai/perceptai/internal/app/system/apierr"
	"github.com/perceptai/perceptai/internal/domain/models"
)

// NewPostingInput carries the caller-supplied fields for a new posting.
type NewPostingInput struct {
	ProjectID      string
	Name           string
	Description    string
	Category       string
	RequiredSkills []string
	Tags           []string
	OwnerName      string
	OwnerID        string
	OwnerEmail     string

	MaxCollaborators int // 0 means default
	Deadline         *time.Time
	Budget           string
	IsPaid           bool
	Location         string
	Remote           bool
}

// NewPosting validates in and builds a Posting in its initial state:
// status open, no applications, zero occupancy, capacity defaulted to 5.
// Timestamps and the document identity are assigned by the store.
func NewPosting(in NewPostingInput) (models.Posting, error) {
	projectID := strings.TrimSpace(in.ProjectID)
	name := strings.TrimSpace(in.Name)
	description := strings.TrimSpace(in.Description)
	ownerName := strings.TrimSpace(in.OwnerName)
	ownerEmail := strings.TrimSpace(in.OwnerEmail)

	switch {
	case projectID == "":
		return models.Posting{}, apierr.Validation("projectId is required")
	case name == "":
		return models.Posting{}, apierr.Validation("projectName is required")
	case description == "":
		return models.Posting{}, apierr.Validation("projectDescription is required")
	case ownerName == "":
		return models.Posting{}, apierr.Validation("projectOwner is required")
	case ownerEmail == "":
		return models.Posting{}, apierr.Validation("projectOwnerEmail is required")
	}

	category := models.Category(strings.TrimSpace(in.Category))
	if !category.Valid() {
		return models.Posting{}, apierr.Validationf("invalid category %q", in.Category)
	}

	max := in.MaxCollaborators
	if max == 0 {
		max = models.DefaultMaxCollaborators
	}
	if max < 1 {
		return models.Posting{}, apierr.Validation("maxCollaborators must be a positive integer")
	}

	return models.Posting{
		ProjectID:            projectID,
		Name:                 name,
		Description:          description,
		Category:             category,
		RequiredSkills:       in.RequiredSkills,
		Tags:                 in.Tags,
		OwnerName:            ownerName,
		OwnerID:              strings.TrimSpace(in.OwnerID),
		OwnerEmail:           ownerEmail,
		Status:               models.PostingOpen,
		Applications:         []models.Application{},
		MaxCollaborators:     max,
		CurrentCollaborators: 0,
		Deadline:             in.Deadline,
		Budget:               strings.TrimSpace(in.Budget),
		IsPaid:               in.IsPaid,
		Location:             strings.TrimSpace(in.Location),
		Remote:               in.Remote,
	}, nil
}

// Applicant carries the caller-supplied profile for an application.
type Applicant struct {
	UserID     string
	UserName   string
	UserEmail  string
	Skills     []string
	Experience string
	Motivation string
	Portfolio  string
}

// Apply appends a pending application for the applicant, enforcing the
// intake preconditions in order. On success the returned application has
// an assigned identifier and submission timestamp; occupancy is unchanged
// (it only moves on acceptance).
func Apply(p *models.Posting, in Applicant) (models.Application, error) {
	userID := strings.TrimSpace(in.UserID)
	if userID == "" {
		return models.Application{}, apierr.Validation("userId is required")
	}

	if p.Status != models.PostingOpen {
		return models.Application{}, apierr.Conflict("this project is no longer accepting applications")
	}
	if p.HasApplicant(userID) {
		return models.Application{}, apierr.Conflict("you have already applied to this project")
	}
	if p.Full() {
		return models.Application{}, apierr.Conflict("this project has reached maximum collaborators")
	}

	app := models.Application{
		ID:         uuid.NewString(),
		UserID:     userID,
		UserName:   strings.TrimSpace(in.UserName),
		UserEmail:  strings.TrimSpace(in.UserEmail),
		Skills:     in.Skills,
		Experience: in.Experience,
		Motivation: in.Motivation,
		Portfolio:  in.Portfolio,
		Status:     models.ApplicationPending,
		AppliedAt:  time.Now().UTC(),
	}
	p.Applications = append(p.Applications, app)
	return app, nil
}

// ReviewOutcome reports what SetApplicationStatus changed.
type ReviewOutcome struct {
	// Status is the application's status after the transition.
	Status models.ApplicationStatus
	// Accepted is true when occupancy was incremented, i.e. the
	// application genuinely entered the accepted state.
	Accepted bool
	// PostingStatus is the posting's status after any derived transition.
	PostingStatus models.PostingStatus
}

// SetApplicationStatus sets the application's status to target. Entering
// "accepted" from any other state increments occupancy; if occupancy then
// reaches capacity an open posting becomes in-progress. Re-applying the
// current status is a no-op, and leaving "accepted" never decrements.
func SetApplicationStatus(p *models.Posting, applicationID string, target models.ApplicationStatus) (ReviewOutcome, error) {
	if !target.Valid() {
		return ReviewOutcome{}, apierr.Validationf("invalid status %q", string(target))
	}

	app := p.ApplicationByID(applicationID)
	if app == nil {
		return ReviewOutcome{}, apierr.NotFound("application not found")
	}

	accepted := target == models.ApplicationAccepted && app.Status != models.ApplicationAccepted
	app.Status = target

	if accepted {
		p.CurrentCollaborators++
		if p.Full() && p.Status == models.PostingOpen {
			p.Status = models.PostingInProgress
		}
	}

	return ReviewOutcome{
		Status:        app.Status,
		Accepted:      accepted,
		PostingStatus: p.Status,
	}, nil
}

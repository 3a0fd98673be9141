// internal/domain/models/posting.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultMaxCollaborators is the posting capacity when the owner does not
// supply one.
const DefaultMaxCollaborators = 5

// Posting is a collaboration listing seeking contributors for a project.
//
// Applications are embedded in submission order and have no lifecycle of
// their own: they are created by applying to an open posting and discarded
// with it. Occupancy (CurrentCollaborators) counts accepted applications
// and never exceeds MaxCollaborators.
type Posting struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id"`

	// ProjectID references the catalog project this posting advertises.
	// It is a caller-supplied identifier, distinct from the posting's own.
	ProjectID   string   `bson:"project_id" json:"projectId"`
	Name        string   `bson:"name" json:"projectName"`
	Description string   `bson:"description" json:"projectDescription"`
	Category    Category `bson:"category" json:"projectCategory"`

	RequiredSkills []string `bson:"required_skills" json:"requiredSkills"`
	Tags           []string `bson:"tags" json:"tags"`

	// Owner fields are caller-supplied; identity is delegated to an
	// external provider and not verified here.
	OwnerName  string `bson:"owner_name" json:"projectOwner"`
	OwnerID    string `bson:"owner_id,omitempty" json:"projectOwnerId,omitempty"`
	OwnerEmail string `bson:"owner_email" json:"projectOwnerEmail"`

	Status PostingStatus `bson:"status" json:"status"`

	Applications []Application `bson:"applications" json:"applicants"`

	MaxCollaborators     int `bson:"max_collaborators" json:"maxCollaborators"`
	CurrentCollaborators int `bson:"current_collaborators" json:"currentCollaborators"`

	Deadline *time.Time `bson:"deadline,omitempty" json:"deadline,omitempty"`
	Budget   string     `bson:"budget,omitempty" json:"budget,omitempty"`
	IsPaid   bool       `bson:"is_paid" json:"isPaid"`
	Location string     `bson:"location,omitempty" json:"location,omitempty"`
	Remote   bool       `bson:"remote" json:"remote"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// Application is a contributor's request to join a posting. ID is unique
// within the posting only.
type Application struct {
	ID        string   `bson:"id" json:"id"`
	UserID    string   `bson:"user_id" json:"userId"`
	UserName  string   `bson:"user_name" json:"userName"`
	UserEmail string   `bson:"user_email" json:"userEmail"`
	Skills    []string `bson:"skills" json:"skills"`

	Experience string `bson:"experience,omitempty" json:"experience,omitempty"`
	Motivation string `bson:"motivation,omitempty" json:"motivation,omitempty"`
	Portfolio  string `bson:"portfolio,omitempty" json:"portfolio,omitempty"`

	Status    ApplicationStatus `bson:"status" json:"status"`
	AppliedAt time.Time         `bson:"applied_at" json:"appliedAt"`
}

// ApplicationByID returns the embedded application with the given id, or
// nil when the posting has no such application.
func (p *Posting) ApplicationByID(id string) *Application {
	for i := range p.Applications {
		if p.Applications[i].ID == id {
			return &p.Applications[i]
		}
	}
	return nil
}

// HasApplicant reports whether userID already appears among the posting's
// applications.
func (p *Posting) HasApplicant(userID string) bool {
	for i := range p.Applications {
		if p.Applications[i].UserID == userID {
			return true
		}
	}
	return false
}

// Full reports whether occupancy has reached capacity.
func (p *Posting) Full() bool {
	return p.CurrentCollaborators >= p.MaxCollaborators
}

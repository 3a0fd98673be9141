// internal/domain/models/subscriber.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Subscriber is a newsletter list entry. Email is stored lowercased and is
// unique across the collection.
type Subscriber struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email string             `bson:"email" json:"email"`

	FirstName string `bson:"first_name,omitempty" json:"firstName,omitempty"`
	LastName  string `bson:"last_name,omitempty" json:"lastName,omitempty"`

	Subscribed  bool        `bson:"subscribed" json:"subscribed"`
	Preferences Preferences `bson:"preferences" json:"preferences"`

	Source    string `bson:"source,omitempty" json:"source,omitempty"`
	IPAddress string `bson:"ip_address,omitempty" json:"-"`
	UserAgent string `bson:"user_agent,omitempty" json:"-"`

	SubscribedAt   time.Time  `bson:"subscribed_at" json:"subscribedAt"`
	UnsubscribedAt *time.Time `bson:"unsubscribed_at,omitempty" json:"unsubscribedAt,omitempty"`

	LastEmailSent *time.Time `bson:"last_email_sent,omitempty" json:"lastEmailSent,omitempty"`
	EmailCount    int        `bson:"email_count" json:"emailCount"`
	BounceCount   int        `bson:"bounce_count" json:"bounceCount"`

	Status SubscriberStatus `bson:"status" json:"status"`

	UpdatedAt time.Time `bson:"updated_at" json:"-"`
}

// Preferences selects which newsletter topics a subscriber receives.
type Preferences struct {
	Projects  bool `bson:"projects" json:"projects"`
	Tutorials bool `bson:"tutorials" json:"tutorials"`
	News      bool `bson:"news" json:"news"`
	Events    bool `bson:"events" json:"events"`
}

// DefaultPreferences opts a new subscriber into every topic.
func DefaultPreferences() Preferences {
	return Preferences{Projects: true, Tutorials: true, News: true, Events: true}
}

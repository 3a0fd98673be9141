// internal/domain/models/resource.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Resource is a learning resource (tutorial, course, tool, ...) submitted
// by the community. Rating is the mean of embedded review ratings.
type Resource struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id"`

	Title       string           `bson:"title" json:"title"`
	TitleCI     string           `bson:"title_ci" json:"-"`
	Description string           `bson:"description" json:"description"`
	Category    ResourceCategory `bson:"category" json:"category"`
	URL         string           `bson:"url" json:"url"`

	Author   string `bson:"author" json:"author"`
	AuthorID string `bson:"author_id,omitempty" json:"authorId,omitempty"`

	Tags       []string   `bson:"tags" json:"tags"`
	Difficulty Difficulty `bson:"difficulty" json:"difficulty"`

	Rating  float64  `bson:"rating" json:"rating"`
	Reviews []Review `bson:"reviews" json:"reviews"`

	Views    int64         `bson:"views" json:"views"`
	Featured bool          `bson:"featured" json:"featured"`
	Status   ContentStatus `bson:"status" json:"status"`

	ThumbnailURL  string `bson:"thumbnail_url,omitempty" json:"thumbnail,omitempty"`
	EstimatedTime string `bson:"estimated_time,omitempty" json:"estimatedTime,omitempty"`
	Language      string `bson:"language,omitempty" json:"language,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// Review is one user's rating of a resource, embedded in the resource.
type Review struct {
	UserID    string    `bson:"user_id" json:"userId"`
	Rating    int       `bson:"rating" json:"rating"` // 0..5
	Comment   string    `bson:"comment,omitempty" json:"comment,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}

// MeanRating computes the average of all review ratings, 0 when there are
// no reviews.
func (r *Resource) MeanRating() float64 {
	if len(r.Reviews) == 0 {
		return 0
	}
	var sum int
	for _, rev := range r.Reviews {
		sum += rev.Rating
	}
	return float64(sum) / float64(len(r.Reviews))
}

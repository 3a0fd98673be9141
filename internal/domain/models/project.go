// internal/domain/models/project.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Project is a community-submitted catalog entry: an AI/ML or computer
// vision project with links to its code and demos.
//
// Name is unique across the catalog (case-insensitive via NameCI) and is
// also the handle the vision runner uses to locate executable demos.
type Project struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name   string             `bson:"name" json:"name"`
	NameCI string             `bson:"name_ci" json:"-"` // lowercase, diacritics-stripped

	Title       string   `bson:"title" json:"title"`
	Description string   `bson:"description" json:"description"`
	Category    Category `bson:"category" json:"category"`

	Technologies []string `bson:"technologies" json:"technologies"`
	Tags         []string `bson:"tags" json:"tags"`

	GithubURL string `bson:"github_url,omitempty" json:"githubUrl,omitempty"`
	LiveURL   string `bson:"live_url,omitempty" json:"liveUrl,omitempty"`
	DemoURL   string `bson:"demo_url,omitempty" json:"demoUrl,omitempty"`
	CodeURL   string `bson:"code_url,omitempty" json:"codeUrl,omitempty"`
	ImageURL  string `bson:"image_url,omitempty" json:"image,omitempty"`

	Featured bool          `bson:"featured" json:"featured"`
	Status   ContentStatus `bson:"status" json:"status"`

	Author   string `bson:"author" json:"author"`
	AuthorID string `bson:"author_id,omitempty" json:"authorId,omitempty"`

	Likes int64 `bson:"likes" json:"likes"`
	Views int64 `bson:"views" json:"views"`

	Difficulty    Difficulty `bson:"difficulty" json:"difficulty"`
	EstimatedTime string     `bson:"estimated_time,omitempty" json:"estimatedTime,omitempty"`
	Requirements  []string   `bson:"requirements" json:"requirements"`
	Instructions  string     `bson:"instructions,omitempty" json:"instructions,omitempty"`

	// Executable projects can be launched as local demos by the vision
	// runner; ScriptName is the python file base name it resolves.
	Executable bool   `bson:"executable" json:"executable"`
	ScriptName string `bson:"script_name,omitempty" json:"scriptName,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// internal/domain/models/categories.go
package models

// Category classifies projects and collaboration postings. The set is
// fixed; every caller-supplied category is checked against it in one place.
type Category string

const (
	CategoryComputerVision Category = "Computer Vision"
	CategoryAIML           Category = "AI/ML"
	CategoryWebDev         Category = "Web Development"
	CategoryMobileApp      Category = "Mobile App"
	CategoryDataScience    Category = "Data Science"
	CategoryOther          Category = "Other"
)

// Categories lists every valid category in display order.
func Categories() []Category {
	return []Category{
		CategoryComputerVision,
		CategoryAIML,
		CategoryWebDev,
		CategoryMobileApp,
		CategoryDataScience,
		CategoryOther,
	}
}

// Valid reports whether c is one of the fixed categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryComputerVision, CategoryAIML, CategoryWebDev,
		CategoryMobileApp, CategoryDataScience, CategoryOther:
		return true
	}
	return false
}

// PostingStatus is the lifecycle state of a collaboration posting.
// Transitions only move forward: open -> in-progress -> completed/closed.
type PostingStatus string

const (
	PostingOpen       PostingStatus = "open"
	PostingInProgress PostingStatus = "in-progress"
	PostingCompleted  PostingStatus = "completed"
	PostingClosed     PostingStatus = "closed"
)

// Valid reports whether s is a known posting status.
func (s PostingStatus) Valid() bool {
	switch s {
	case PostingOpen, PostingInProgress, PostingCompleted, PostingClosed:
		return true
	}
	return false
}

// ApplicationStatus is the review state of an application on a posting.
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationAccepted ApplicationStatus = "accepted"
	ApplicationRejected ApplicationStatus = "rejected"
)

// Valid reports whether s is a known application status.
func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationPending, ApplicationAccepted, ApplicationRejected:
		return true
	}
	return false
}

// Difficulty rates projects and resources for learners.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "Beginner"
	DifficultyIntermediate Difficulty = "Intermediate"
	DifficultyAdvanced     Difficulty = "Advanced"
)

// Valid reports whether d is a known difficulty.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}

// ResourceCategory classifies learning resources. Distinct from Category:
// resources are organized by medium, not by field.
type ResourceCategory string

const (
	ResourceTutorial      ResourceCategory = "Tutorial"
	ResourceDocumentation ResourceCategory = "Documentation"
	ResourceVideo         ResourceCategory = "Video"
	ResourceArticle       ResourceCategory = "Article"
	ResourceCourse        ResourceCategory = "Course"
	ResourceBook          ResourceCategory = "Book"
	ResourceTool          ResourceCategory = "Tool"
	ResourceOtherCategory ResourceCategory = "Other"
)

// Valid reports whether c is a known resource category.
func (c ResourceCategory) Valid() bool {
	switch c {
	case ResourceTutorial, ResourceDocumentation, ResourceVideo,
		ResourceArticle, ResourceCourse, ResourceBook, ResourceTool,
		ResourceOtherCategory:
		return true
	}
	return false
}

// ContentStatus is the publication state of projects and resources.
type ContentStatus string

const (
	ContentActive   ContentStatus = "active"
	ContentInactive ContentStatus = "inactive"
	ContentArchived ContentStatus = "archived"
)

// Valid reports whether s is a known content status.
func (s ContentStatus) Valid() bool {
	switch s {
	case ContentActive, ContentInactive, ContentArchived:
		return true
	}
	return false
}

// SubscriberStatus is the delivery state of a newsletter subscriber.
type SubscriberStatus string

const (
	SubscriberActive       SubscriberStatus = "active"
	SubscriberUnsubscribed SubscriberStatus = "unsubscribed"
	SubscriberBounced      SubscriberStatus = "bounced"
	SubscriberSpam         SubscriberStatus = "spam"
)

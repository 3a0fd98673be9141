// internal/app/store/postings/postingstore.go
package postings

import (
	"context"
	"errors"
	"time"

	"github.com/perceptai/perceptai/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store persists collaboration postings with their embedded applications.
type Store struct {
	c *mongo.Collection
}

// ErrNotEligible reports that a conditional application write matched no
// document: the posting is gone, closed, full, or already holds an
// application from this user. Callers re-fetch to classify.
var ErrNotEligible = errors.New("posting not eligible for this application")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("postings")}
}

func (s *Store) Create(ctx context.Context, p models.Posting) (models.Posting, error) {
	now := time.Now().UTC()
	p.ID = primitive.NewObjectID()
	if p.Status == "" {
		p.Status = models.PostingOpen
	}
	if p.Applications == nil {
		p.Applications = []models.Application{}
	}
	p.CreatedAt = now
	p.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, p); err != nil {
		return models.Posting{}, err
	}
	return p, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Posting, error) {
	var p models.Posting
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return models.Posting{}, err
	}
	return p, nil
}

// Update applies the given field set and refreshes UpdatedAt. The caller
// builds the set document; capacity and status invariants are enforced
// before this is called.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, set bson.M) error {
	set["updated_at"] = time.Now().UTC()
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Delete removes a posting by ID. Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// Find returns postings matching the given filter with optional find options.
// The caller is responsible for building the filter and options (pagination, sorting).
func (s *Store) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Posting, error) {
	cur, err := s.c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var postings []models.Posting
	if err := cur.All(ctx, &postings); err != nil {
		return nil, err
	}
	return postings, nil
}

// Count returns the number of postings matching the given filter.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}

// AddApplication appends app to the posting in one conditional update: the
// posting must still be open, below capacity, and without a prior
// application from the same user. Returns ErrNotEligible when the
// condition no longer holds, so concurrent applies cannot duplicate a user
// or overrun capacity checks.
func (s *Store) AddApplication(ctx context.Context, id primitive.ObjectID, app models.Application) error {
	filter := bson.M{
		"_id":                  id,
		"status":               models.PostingOpen,
		"applications.user_id": bson.M{"$ne": app.UserID},
		"$expr":                bson.M{"$lt": bson.A{"$current_collaborators", "$max_collaborators"}},
	}
	update := bson.M{
		"$push": bson.M{"applications": app},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	}
	res, err := s.c.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotEligible
	}
	return nil
}

// MarkApplicationStatus sets the embedded application's status. When
// incOccupancy is set, the update additionally requires the application to
// not already be accepted and increments the occupancy counter in the same
// document write, so a repeated accept can never double-count.
// It reports whether a document was written.
func (s *Store) MarkApplicationStatus(ctx context.Context, id primitive.ObjectID, applicationID string, status models.ApplicationStatus, incOccupancy bool) (bool, error) {
	elem := bson.M{"id": applicationID}
	update := bson.M{
		"$set": bson.M{
			"applications.$.status": status,
			"updated_at":            time.Now().UTC(),
		},
	}
	if incOccupancy {
		elem["status"] = bson.M{"$ne": models.ApplicationAccepted}
		update["$inc"] = bson.M{"current_collaborators": 1}
	}
	filter := bson.M{
		"_id":          id,
		"applications": bson.M{"$elemMatch": elem},
	}
	res, err := s.c.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}

// PromoteFull transitions an open posting to in-progress once occupancy
// has reached capacity. It is a no-op for postings that are not full or
// no longer open.
func (s *Store) PromoteFull(ctx context.Context, id primitive.ObjectID) error {
	filter := bson.M{
		"_id":    id,
		"status": models.PostingOpen,
		"$expr":  bson.M{"$gte": bson.A{"$current_collaborators", "$max_collaborators"}},
	}
	_, err := s.c.UpdateOne(ctx, filter, bson.M{"$set": bson.M{
		"status":     models.PostingInProgress,
		"updated_at": time.Now().UTC(),
	}})
	return err
}

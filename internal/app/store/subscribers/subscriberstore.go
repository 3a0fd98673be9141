// internal/app/store/subscribers/subscriberstore.go
package subscribers

import (
	"context"
	"errors"
	"strings"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/perceptai/perceptai/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrDuplicateSubscriber is returned when an insert collides with the
// unique email index.
var ErrDuplicateSubscriber = errors.New("subscriber already exists")

// bounces at or past this count flip the subscriber to bounced.
const bounceLimit = 3

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("subscribers")}
}

func (s *Store) Create(ctx context.Context, sub models.Subscriber) (models.Subscriber, error) {
	now := time.Now().UTC()
	sub.ID = primitive.NewObjectID()
	sub.Email = strings.ToLower(strings.TrimSpace(sub.Email))
	if sub.Status == "" {
		sub.Status = models.SubscriberActive
	}
	sub.SubscribedAt = now
	sub.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, sub); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Subscriber{}, ErrDuplicateSubscriber
		}
		return models.Subscriber{}, err
	}
	return sub, nil
}

func (s *Store) GetByEmail(ctx context.Context, email string) (models.Subscriber, error) {
	var sub models.Subscriber
	err := s.c.FindOne(ctx, bson.M{"email": strings.ToLower(strings.TrimSpace(email))}).Decode(&sub)
	if err != nil {
		return models.Subscriber{}, err
	}
	return sub, nil
}

func (s *Store) Update(ctx context.Context, email string, set bson.M) error {
	set["updated_at"] = time.Now().UTC()
	res, err := s.c.UpdateOne(ctx,
		bson.M{"email": strings.ToLower(strings.TrimSpace(email))},
		bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, email string) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"email": strings.ToLower(strings.TrimSpace(email))})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (s *Store) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Subscriber, error) {
	cur, err := s.c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var subs []models.Subscriber
	if err := cur.All(ctx, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}

// MarkSent records a delivered newsletter for the subscriber.
func (s *Store) MarkSent(ctx context.Context, email string, at time.Time) error {
	_, err := s.c.UpdateOne(ctx,
		bson.M{"email": strings.ToLower(strings.TrimSpace(email))},
		bson.M{
			"$inc": bson.M{"email_count": 1},
			"$set": bson.M{"last_email_sent": at, "updated_at": at},
		})
	return err
}

// MarkBounce increments the bounce counter and flips the subscriber to
// bounced once the limit is reached.
func (s *Store) MarkBounce(ctx context.Context, email string) (models.Subscriber, error) {
	var sub models.Subscriber
	after := options.After
	now := time.Now().UTC()
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"email": strings.ToLower(strings.TrimSpace(email))},
		bson.M{
			"$inc": bson.M{"bounce_count": 1},
			"$set": bson.M{"updated_at": now},
		},
		&options.FindOneAndUpdateOptions{ReturnDocument: &after},
	).Decode(&sub)
	if err != nil {
		return models.Subscriber{}, err
	}
	if sub.BounceCount >= bounceLimit && sub.Status != models.SubscriberBounced {
		sub.Status = models.SubscriberBounced
		_, err = s.c.UpdateOne(ctx,
			bson.M{"_id": sub.ID},
			bson.M{"$set": bson.M{"status": models.SubscriberBounced, "updated_at": now}})
		if err != nil {
			return models.Subscriber{}, err
		}
	}
	return sub, nil
}

// Package userstore provides MongoDB access to the users collection.
package userstore

import (
	"context"

	"github.com/cinehubdev/cinehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store wraps the users collection.
type Store struct {
	users *mongo.Collection
}

// New returns a Store bound to the given database.
func New(db *mongo.Database) *Store {
	return &Store{users: db.Collection("users")}
}

// Insert persists a new user. A unique index on email makes duplicate
// registration surface as a duplicate-key write error.
func (s *Store) Insert(ctx context.Context, u *models.User) error {
	res, err := s.users.InsertOne(ctx, u)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		u.ID = oid
	}
	return nil
}

// FindByEmail returns the user with the given email, or mongo.ErrNoDocuments.
func (s *Store) FindByEmail(ctx context.Context, email string) (models.User, error) {
	var u models.User
	err := s.users.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	return u, err
}

// DisplayNames resolves the display name for each user id. Unknown ids are
// simply absent from the result; callers render a placeholder. The password
// hash is never read.
func (s *Store) DisplayNames(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]string, error) {
	names := make(map[primitive.ObjectID]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	proj := options.Find().SetProjection(bson.M{"_id": 1, "display_name": 1})
	cur, err := s.users.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, proj)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var u struct {
			ID          primitive.ObjectID `bson:"_id"`
			DisplayName string             `bson:"display_name"`
		}
		if err := cur.Decode(&u); err != nil {
			return nil, err
		}
		names[u.ID] = u.DisplayName
	}
	return names, cur.Err()
}

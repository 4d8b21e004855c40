// Package seriesstore provides MongoDB access to the series collection.
package seriesstore

import (
	"context"

	commentstore "github.com/cinehubdev/cinehub/internal/app/store/comments"
	"github.com/cinehubdev/cinehub/internal/app/store/queries/titlequeries"
	"github.com/cinehubdev/cinehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store wraps the series collection.
type Store struct {
	series *mongo.Collection
}

// New returns a Store bound to the given database.
func New(db *mongo.Database) *Store {
	return &Store{series: db.Collection("series")}
}

// Insert persists a new series.
func (s *Store) Insert(ctx context.Context, sr *models.Series) error {
	res, err := s.series.InsertOne(ctx, sr)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		sr.ID = oid
	}
	return nil
}

// GetByID returns the series, or mongo.ErrNoDocuments.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Series, error) {
	var sr models.Series
	err := s.series.FindOne(ctx, bson.M{"_id": id}).Decode(&sr)
	return sr, err
}

// List returns series matching the filter, sorted descending by the
// filter's sort key and capped at its limit.
func (s *Store) List(ctx context.Context, f titlequeries.ListFilter) ([]models.Series, error) {
	opts := options.Find().
		SetSort(titlequeries.Sort(f)).
		SetLimit(titlequeries.Limit(f))

	cur, err := s.series.Find(ctx, titlequeries.Build(f), opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	list := []models.Series{}
	if err := cur.All(ctx, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// ListByGenre returns series whose genre list contains the given id.
func (s *Store) ListByGenre(ctx context.Context, genreID primitive.ObjectID) ([]models.Series, error) {
	return s.List(ctx, titlequeries.ListFilter{GenreIDs: []primitive.ObjectID{genreID}})
}

// Update applies the given $set fields and returns the updated series, or
// mongo.ErrNoDocuments.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, set bson.M) (models.Series, error) {
	var sr models.Series
	err := s.series.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&sr)
	return sr, err
}

// Delete removes the series and returns the removed document, or
// mongo.ErrNoDocuments. Genre back-references are not cleaned up.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (models.Series, error) {
	var sr models.Series
	err := s.series.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&sr)
	return sr, err
}

// PushComment atomically appends a comment to the series.
func (s *Store) PushComment(ctx context.Context, id primitive.ObjectID, c models.Comment) error {
	return commentstore.Push(ctx, s.series, id, c)
}

// PullComment removes the author's comment from the series. See
// commentstore.Pull for the error contract.
func (s *Store) PullComment(ctx context.Context, id, commentID, userID primitive.ObjectID) error {
	return commentstore.Pull(ctx, s.series, id, commentID, userID)
}

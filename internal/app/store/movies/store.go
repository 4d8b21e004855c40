// Package moviestore provides MongoDB access to the movies collection.
package moviestore

import (
	"context"
	"sort"

	commentstore "github.com/cinehubdev/cinehub/internal/app/store/comments"
	"github.com/cinehubdev/cinehub/internal/app/store/queries/titlequeries"
	"github.com/cinehubdev/cinehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store wraps the movies collection.
type Store struct {
	movies *mongo.Collection
}

// New returns a Store bound to the given database.
func New(db *mongo.Database) *Store {
	return &Store{movies: db.Collection("movies")}
}

// Insert persists a new movie.
func (s *Store) Insert(ctx context.Context, m *models.Movie) error {
	res, err := s.movies.InsertOne(ctx, m)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		m.ID = oid
	}
	return nil
}

// GetByID returns the movie, or mongo.ErrNoDocuments.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Movie, error) {
	var m models.Movie
	err := s.movies.FindOne(ctx, bson.M{"_id": id}).Decode(&m)
	return m, err
}

// List returns movies matching the filter, sorted descending by the
// filter's sort key and capped at its limit.
func (s *Store) List(ctx context.Context, f titlequeries.ListFilter) ([]models.Movie, error) {
	opts := options.Find().
		SetSort(titlequeries.Sort(f)).
		SetLimit(titlequeries.Limit(f))

	cur, err := s.movies.Find(ctx, titlequeries.Build(f), opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	movies := []models.Movie{}
	if err := cur.All(ctx, &movies); err != nil {
		return nil, err
	}
	return movies, nil
}

// ListByGenre returns movies whose genre list contains the given id. Used
// by the genre reverse lookup.
func (s *Store) ListByGenre(ctx context.Context, genreID primitive.ObjectID) ([]models.Movie, error) {
	return s.List(ctx, titlequeries.ListFilter{GenreIDs: []primitive.ObjectID{genreID}})
}

// Update applies the given $set fields and returns the updated movie, or
// mongo.ErrNoDocuments.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, set bson.M) (models.Movie, error) {
	var m models.Movie
	err := s.movies.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&m)
	return m, err
}

// Delete removes the movie and returns the removed document, or
// mongo.ErrNoDocuments. Genre back-references are not cleaned up.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (models.Movie, error) {
	var m models.Movie
	err := s.movies.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&m)
	return m, err
}

// Countries returns the distinct non-empty countries across all movies,
// sorted ascending.
func (s *Store) Countries(ctx context.Context) ([]string, error) {
	raw, err := s.movies.Distinct(ctx, "country", bson.M{})
	if err != nil {
		return nil, err
	}

	countries := make([]string, 0, len(raw))
	for _, v := range raw {
		if c, ok := v.(string); ok && c != "" {
			countries = append(countries, c)
		}
	}
	sort.Strings(countries)
	return countries, nil
}

// PushComment atomically appends a comment to the movie.
func (s *Store) PushComment(ctx context.Context, id primitive.ObjectID, c models.Comment) error {
	return commentstore.Push(ctx, s.movies, id, c)
}

// PullComment removes the author's comment from the movie. See
// commentstore.Pull for the error contract.
func (s *Store) PullComment(ctx context.Context, id, commentID, userID primitive.ObjectID) error {
	return commentstore.Pull(ctx, s.movies, id, commentID, userID)
}

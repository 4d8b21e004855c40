// Package genrestore provides MongoDB access to the genres collection.
package genrestore

import (
	"context"

	"github.com/cinehubdev/cinehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store wraps the genres collection.
type Store struct {
	genres *mongo.Collection
}

// New returns a Store bound to the given database.
func New(db *mongo.Database) *Store {
	return &Store{genres: db.Collection("genres")}
}

// Insert persists a new genre. Unique name violations surface as
// duplicate-key write errors.
func (s *Store) Insert(ctx context.Context, g *models.Genre) error {
	res, err := s.genres.InsertOne(ctx, g)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		g.ID = oid
	}
	return nil
}

// GetByID returns the genre, or mongo.ErrNoDocuments.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Genre, error) {
	var g models.Genre
	err := s.genres.FindOne(ctx, bson.M{"_id": id}).Decode(&g)
	return g, err
}

// List returns all genres.
func (s *Store) List(ctx context.Context) ([]models.Genre, error) {
	cur, err := s.genres.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	genres := []models.Genre{}
	if err := cur.All(ctx, &genres); err != nil {
		return nil, err
	}
	return genres, nil
}

// FindByIDs returns the genres with the given ids, keyed by id, for
// expanding genre references on title reads.
func (s *Store) FindByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Genre, error) {
	out := make(map[primitive.ObjectID]models.Genre, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	cur, err := s.genres.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var g models.Genre
		if err := cur.Decode(&g); err != nil {
			return nil, err
		}
		out[g.ID] = g
	}
	return out, cur.Err()
}

// Update applies the given $set fields and returns the updated genre, or
// mongo.ErrNoDocuments when the id is unknown.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, set bson.M) (models.Genre, error) {
	var g models.Genre
	err := s.genres.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&g)
	return g, err
}

// Delete removes the genre by id and returns the removed document, or
// mongo.ErrNoDocuments. Back-references held by this genre are simply
// dropped with it; titles keep their genre id lists untouched.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (models.Genre, error) {
	var g models.Genre
	err := s.genres.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&g)
	return g, err
}

// AddTitleRef $addToSet-s the title id into every referenced genre's
// back-reference set. The set semantics keep repeated updates from
// accumulating duplicates. Removal is deliberately not implemented: the
// back-reference is add-only and may go stale when titles are deleted or
// retagged.
func (s *Store) AddTitleRef(ctx context.Context, genreIDs []primitive.ObjectID, titleID primitive.ObjectID) error {
	if len(genreIDs) == 0 {
		return nil
	}
	_, err := s.genres.UpdateMany(ctx,
		bson.M{"_id": bson.M{"$in": genreIDs}},
		bson.M{"$addToSet": bson.M{"movie_ids": titleID}},
	)
	return err
}

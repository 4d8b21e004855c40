// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent.
Errors are aggregated so every problem is visible and startup can fail fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureUsers(ctx, db); err != nil {
		problems = append(problems, "users: "+err.Error())
	}
	if err := ensureGenres(ctx, db); err != nil {
		problems = append(problems, "genres: "+err.Error())
	}
	if err := ensureTitles(ctx, db, "movies"); err != nil {
		problems = append(problems, "movies: "+err.Error())
	}
	if err := ensureTitles(ctx, db, "series"); err != nil {
		problems = append(problems, "series: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

// ensureUsers enforces unique emails, the registration invariant.
func ensureUsers(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_email"),
	})
	return err
}

// ensureGenres enforces unique genre names.
func ensureGenres(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("genres").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_name"),
	})
	return err
}

// ensureTitles backs the list filters: genre membership, name search, and
// the default created_at descending sort.
func ensureTitles(ctx context.Context, db *mongo.Database, coll string) error {
	_, err := db.Collection(coll).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "genres", Value: 1}},
			Options: options.Index().SetName("by_genre"),
		},
		{
			Keys:    bson.D{{Key: "created_at", Value: -1}},
			Options: options.Index().SetName("by_created_desc"),
		},
	})
	return err
}

// IsDuplicateKey reports whether err is a Mongo unique-index violation.
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if e.Code == 11000 { // E11000 duplicate key error
				return true
			}
		}
	}
	return mongo.IsDuplicateKeyError(err)
}

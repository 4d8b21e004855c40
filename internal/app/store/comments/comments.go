// Package commentstore mutates the embedded comment arrays on movie and
// series documents.
//
// Both mutations use single-document atomic operators ($push / $pull)
// rather than fetch-mutate-save, so concurrent commenters on the same
// title can never lose each other's writes.
package commentstore

import (
	"context"
	"errors"

	"github.com/cinehubdev/cinehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotOwner is returned when a caller tries to delete a comment they did
// not write.
var ErrNotOwner = errors.New("comment belongs to another user")

// Push atomically appends the comment to the title's embedded list.
// Returns mongo.ErrNoDocuments when the title id is unknown.
func Push(ctx context.Context, coll *mongo.Collection, titleID primitive.ObjectID, c models.Comment) error {
	res, err := coll.UpdateOne(ctx,
		bson.M{"_id": titleID},
		bson.M{"$push": bson.M{"comments": c}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Pull removes the comment with the given id from the title, but only if
// userID wrote it. Returns mongo.ErrNoDocuments when the title or comment
// is unknown and ErrNotOwner when the comment exists but belongs to
// someone else. The removal itself filters on both comment id and author,
// so a concurrent writer cannot be raced into deleting a foreign comment.
func Pull(ctx context.Context, coll *mongo.Collection, titleID, commentID primitive.ObjectID, userID primitive.ObjectID) error {
	// Look the comment up first to distinguish 404 from 403.
	proj := options.FindOne().SetProjection(bson.M{"comments.$": 1})
	var doc struct {
		Comments []models.Comment `bson:"comments"`
	}
	err := coll.FindOne(ctx,
		bson.M{"_id": titleID, "comments._id": commentID},
		proj,
	).Decode(&doc)
	if err != nil {
		return err
	}
	if len(doc.Comments) == 0 {
		return mongo.ErrNoDocuments
	}
	if doc.Comments[0].User != userID {
		return ErrNotOwner
	}

	res, err := coll.UpdateOne(ctx,
		bson.M{"_id": titleID},
		bson.M{"$pull": bson.M{"comments": bson.M{"_id": commentID, "user": userID}}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

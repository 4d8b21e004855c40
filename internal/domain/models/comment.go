// internal/domain/models/comment.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment is embedded in a movie or series document. It carries its own
// ObjectID so a single comment can be targeted for deletion, and dies with
// its parent document.
type Comment struct {
	ID        primitive.ObjectID `bson:"_id" json:"_id"`
	User      primitive.ObjectID `bson:"user" json:"user"`
	Content   string             `bson:"content" json:"content"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
}

// CommentView is a Comment with the author reference expanded to the
// author's display name. Used on single-document reads; the expansion
// never includes the email or password hash.
type CommentView struct {
	ID        primitive.ObjectID `json:"_id"`
	User      CommentAuthor      `json:"user"`
	Content   string             `json:"content"`
	CreatedAt time.Time          `json:"createdAt"`
}

// CommentAuthor is the display-name-only expansion of a comment's user.
type CommentAuthor struct {
	ID          primitive.ObjectID `json:"_id"`
	DisplayName string             `json:"displayName"`
}

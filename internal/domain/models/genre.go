// internal/domain/models/genre.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Genre is a catalog tag. MovieIDs is a denormalized back-reference set:
// every movie or series created or updated with this genre is $addToSet-ed
// into it. Entries are never pruned, so the set may hold ids of deleted
// titles; readers must tolerate stale references.
type Genre struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	Name      string               `bson:"name" json:"name"`
	Thumbnail string               `bson:"thumbnail,omitempty" json:"thumbnail"`
	MovieIDs  []primitive.ObjectID `bson:"movie_ids" json:"movieId"`
	CreatedAt time.Time            `bson:"created_at" json:"createdAt"`
}

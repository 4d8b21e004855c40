// internal/domain/models/movie.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Movie title types.
const (
	TypeSingle = "phim-le" // single feature
	TypeMulti  = "phim-bo" // multi-episode
)

// Movie is a single-feature (or counted multi-episode) title. Media fields
// (Thumbnail, Gallery, Video) store raw references: server-relative paths
// for locally uploaded assets, absolute URLs otherwise. They are resolved
// against the request origin on every read.
type Movie struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	Name        string               `bson:"name" json:"name"`
	Genres      []primitive.ObjectID `bson:"genres" json:"genres"`
	Year        int                  `bson:"year,omitempty" json:"year"`
	Type        string               `bson:"type" json:"type"` // phim-le | phim-bo
	Episodes    int                  `bson:"episodes,omitempty" json:"episodes"`
	Directors   []string             `bson:"directors" json:"directors"`
	Actors      []string             `bson:"actors" json:"actors"`
	Thumbnail   string               `bson:"thumbnail,omitempty" json:"thumbnail"`
	Gallery     []string             `bson:"gallery" json:"gallery"`
	Description string               `bson:"description,omitempty" json:"description"`
	Video       string               `bson:"video,omitempty" json:"video"`
	Country     string               `bson:"country,omitempty" json:"country"`
	Comments    []Comment            `bson:"comments" json:"comments"`
	CreatedAt   time.Time            `bson:"created_at" json:"createdAt"`
}

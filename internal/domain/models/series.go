// internal/domain/models/series.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Episode is one entry in a series. Video is required; Name is optional
// (clients may send bare video links).
type Episode struct {
	Name  string `bson:"name,omitempty" json:"name,omitempty"`
	Video string `bson:"video" json:"video"`
}

// Series is a multi-episode title with an ordered embedded episode list.
// Media fields follow the same raw-reference convention as Movie.
type Series struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	Name        string               `bson:"name" json:"name"`
	Description string               `bson:"description,omitempty" json:"description"`
	Genres      []primitive.ObjectID `bson:"genres" json:"genres"`
	Year        int                  `bson:"year,omitempty" json:"year"`
	Episodes    []Episode            `bson:"episodes" json:"episodes"`
	Directors   []string             `bson:"directors" json:"directors"`
	Actors      []string             `bson:"actors" json:"actors"`
	Thumbnail   string               `bson:"thumbnail,omitempty" json:"thumbnail"`
	Gallery     []string             `bson:"gallery" json:"gallery"`
	Country     string               `bson:"country,omitempty" json:"country"`
	HasSubtitle bool                 `bson:"has_subtitle" json:"hasSubtitle"`
	Comments    []Comment            `bson:"comments" json:"comments"`
	CreatedAt   time.Time            `bson:"created_at" json:"createdAt"`
}

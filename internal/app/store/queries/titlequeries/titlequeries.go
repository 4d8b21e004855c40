// Package titlequeries builds the shared list-query pieces for the movies
// and series collections: the genre/name filter and the allowlisted
// descending sort.
package titlequeries

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultLimit caps list responses when the client does not ask for one.
const DefaultLimit = 100

// ListFilter defines the supported list filters for titles.
type ListFilter struct {
	GenreIDs []primitive.ObjectID // any-overlap membership
	Name     string               // case-insensitive substring
	Sort     string               // allowlisted sort key, always descending
	Limit    int64
}

// sortFields maps public sort keys to stored field names. Anything not in
// the map falls back to creation time, which also blocks operator
// injection through the sort parameter.
var sortFields = map[string]string{
	"createdAt": "created_at",
	"name":      "name",
	"year":      "year",
}

// Build returns the bson filter document for f.
func Build(f ListFilter) bson.M {
	filter := bson.M{}
	if len(f.GenreIDs) > 0 {
		filter["genres"] = bson.M{"$in": f.GenreIDs}
	}
	if f.Name != "" {
		filter["name"] = bson.M{
			"$regex":   regexp.QuoteMeta(f.Name),
			"$options": "i",
		}
	}
	return filter
}

// Sort returns the descending sort document for f's sort key.
func Sort(f ListFilter) bson.D {
	field, ok := sortFields[f.Sort]
	if !ok {
		field = "created_at"
	}
	return bson.D{{Key: field, Value: -1}}
}

// Limit returns f's result cap, defaulting when unset or non-positive.
func Limit(f ListFilter) int64 {
	if f.Limit <= 0 {
		return DefaultLimit
	}
	return f.Limit
}

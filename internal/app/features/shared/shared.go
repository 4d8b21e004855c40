// Package shared holds small request helpers used by every API feature.
package shared

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/cinehubdev/cinehub/internal/app/system/httpjson"
	"github.com/cinehubdev/cinehub/internal/app/system/uploads"
)

// IDParam parses the {id} route parameter as an ObjectID. On failure it
// writes a 400 response and returns false.
func IDParam(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid id")
		return primitive.NilObjectID, false
	}
	return id, true
}

// ObjectIDs parses a list of hex ids, rejecting the whole list on the
// first invalid entry.
func ObjectIDs(vals []string) ([]primitive.ObjectID, error) {
	ids := make([]primitive.ObjectID, 0, len(vals))
	for _, v := range vals {
		id, err := primitive.ObjectIDFromHex(v)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// WriteUploadError maps upload failures onto API status codes. It reports
// whether err was handled.
func WriteUploadError(w http.ResponseWriter, err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, uploads.ErrTooLarge):
		httpjson.Error(w, http.StatusRequestEntityTooLarge, "uploaded file exceeds the size limit")
		return true
	case errors.Is(err, uploads.ErrNotImage):
		httpjson.Error(w, http.StatusBadRequest, "uploaded file must be an image")
		return true
	case errors.Is(err, uploads.ErrTooMany):
		httpjson.Error(w, http.StatusBadRequest, "too many gallery files")
		return true
	default:
		return false
	}
}

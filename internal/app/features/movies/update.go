// internal/app/features/movies/update.go
package movies

import (
	"context"
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/cinehubdev/cinehub/internal/app/features/shared"
	"github.com/cinehubdev/cinehub/internal/app/system/bodyform"
	"github.com/cinehubdev/cinehub/internal/app/system/formval"
	"github.com/cinehubdev/cinehub/internal/app/system/httpjson"
	"github.com/cinehubdev/cinehub/internal/app/system/timeouts"
	"github.com/cinehubdev/cinehub/internal/domain/models"
)

// movieUpdate applies set, or just reads the document when the request
// carried no updatable fields.
func (h *Handler) movieUpdate(ctx context.Context, id primitive.ObjectID, set bson.M) (models.Movie, error) {
	if len(set) == 0 {
		return h.Movies.GetByID(ctx, id)
	}
	return h.Movies.Update(ctx, id, set)
}

// Update overwrites the provided fields of a movie. Fields absent from
// the request keep their stored value; newly provided genres are added
// to the genre back-references.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.IDParam(w, r)
	if !ok {
		return
	}

	form, _, err := bodyform.Parse(r)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	set := bson.M{}
	var genreIDs []primitive.ObjectID
	if vals, ok := form["name"]; ok {
		name := formval.First(vals)
		if name == "" {
			httpjson.Error(w, http.StatusBadRequest, "name is required")
			return
		}
		set["name"] = name
	}
	if vals, ok := form["type"]; ok {
		movieType := formval.First(vals)
		if !validType(movieType) {
			httpjson.Error(w, http.StatusBadRequest, "type must be phim-le or phim-bo")
			return
		}
		set["type"] = movieType
	}
	if vals, ok := form["genres"]; ok {
		genreIDs, err = shared.ObjectIDs(formval.SplitList(vals))
		if err != nil {
			httpjson.Error(w, http.StatusBadRequest, "invalid genres")
			return
		}
		set["genres"] = genreIDs
	}
	if vals, ok := form["year"]; ok {
		set["year"] = formval.Int(vals)
	}
	if vals, ok := form["episodes"]; ok {
		set["episodes"] = formval.Int(vals)
	}
	if vals, ok := form["directors"]; ok {
		set["directors"] = formval.CleanList(vals)
	}
	if vals, ok := form["actors"]; ok {
		set["actors"] = formval.CleanList(vals)
	}
	if vals, ok := form["description"]; ok {
		set["description"] = formval.First(vals)
	}
	if vals, ok := form["country"]; ok {
		set["country"] = formval.First(vals)
	}
	if video := formval.First(form["video"]); video != "" {
		set["video"] = video
	}

	thumbnail, err := h.Uploads.Thumbnail(r.Context(), r)
	if shared.WriteUploadError(w, err) {
		return
	}
	if err != nil {
		h.Log.Error("store thumbnail", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if thumbnail != "" {
		set["thumbnail"] = thumbnail
	} else if vals, ok := form["thumbnail"]; ok {
		set["thumbnail"] = formval.First(vals)
	}

	gallery, err := h.Uploads.Gallery(r.Context(), r)
	if shared.WriteUploadError(w, err) {
		return
	}
	if err != nil {
		h.Log.Error("store gallery", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if len(gallery) > 0 {
		set["gallery"] = gallery
	} else if vals, ok := form["gallery"]; ok {
		set["gallery"] = formval.CleanList(vals)
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	movie, err := h.movieUpdate(ctx, id, set)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, http.StatusNotFound, "movie not found")
			return
		}
		h.Log.Error("update movie", zap.Error(err), zap.String("id", id.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if len(genreIDs) > 0 {
		if err := h.Genres.AddTitleRef(ctx, genreIDs, movie.ID); err != nil {
			h.Log.Error("register movie on genres", zap.Error(err), zap.String("id", movie.ID.Hex()))
			httpjson.Error(w, http.StatusInternalServerError, "internal server error")
			return
		}
	}

	view, err := h.detailView(ctx, r, movie)
	if err != nil {
		h.Log.Error("build movie view", zap.Error(err), zap.String("id", movie.ID.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}
	httpjson.Write(w, http.StatusOK, movieEnvelope{Message: "movie updated", Movie: view})
}

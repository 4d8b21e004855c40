// internal/app/features/genres/genres.go
package genres

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/cinehubdev/cinehub/internal/app/features/shared"
	"github.com/cinehubdev/cinehub/internal/app/features/shared/views"
	"github.com/cinehubdev/cinehub/internal/app/system/bodyform"
	"github.com/cinehubdev/cinehub/internal/app/system/formval"
	"github.com/cinehubdev/cinehub/internal/app/system/httpjson"
	"github.com/cinehubdev/cinehub/internal/app/system/indexes"
	"github.com/cinehubdev/cinehub/internal/app/system/mediaurl"
	"github.com/cinehubdev/cinehub/internal/app/system/timeouts"
	"github.com/cinehubdev/cinehub/internal/domain/models"
)

type genreEnvelope struct {
	Message string       `json:"message"`
	Genre   models.Genre `json:"genre"`
}

// List returns all genres.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	genres, err := h.Genres.List(ctx)
	if err != nil {
		h.Log.Error("list genres", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}
	httpjson.Write(w, http.StatusOK, views.Genres(mediaurl.Origin(r), genres))
}

// Get returns a single genre.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.IDParam(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	genre, err := h.Genres.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, http.StatusNotFound, "genre not found")
			return
		}
		h.Log.Error("get genre", zap.Error(err), zap.String("id", id.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}
	httpjson.Write(w, http.StatusOK, views.Genre(mediaurl.Origin(r), genre))
}

// Create inserts a new genre.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	form, _, err := bodyform.Parse(r)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	name := formval.First(form["name"])
	if name == "" {
		httpjson.Error(w, http.StatusBadRequest, "name is required")
		return
	}

	titleIDs, err := shared.ObjectIDs(formval.SplitList(form["movieId"]))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid movieId")
		return
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
	if thumbnail == "" {
		thumbnail = formval.First(form["thumbnail"])
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	genre := models.Genre{
		Name:      name,
		Thumbnail: thumbnail,
		MovieIDs:  titleIDs,
		CreatedAt: time.Now().UTC(),
	}
	if genre.MovieIDs == nil {
		genre.MovieIDs = []primitive.ObjectID{}
	}
	if err := h.Genres.Insert(ctx, &genre); err != nil {
		if indexes.IsDuplicateKey(err) {
			httpjson.Error(w, http.StatusBadRequest, "genre already exists")
			return
		}
		h.Log.Error("insert genre", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}

	httpjson.Write(w, http.StatusCreated, genreEnvelope{
		Message: "genre created",
		Genre:   views.Genre(mediaurl.Origin(r), genre),
	})
}

// Update overwrites the provided fields of a genre.
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
	if vals, ok := form["name"]; ok {
		name := formval.First(vals)
		if name == "" {
			httpjson.Error(w, http.StatusBadRequest, "name is required")
			return
		}
		set["name"] = name
	}
	if vals, ok := form["movieId"]; ok {
		titleIDs, err := shared.ObjectIDs(formval.SplitList(vals))
		if err != nil {
			httpjson.Error(w, http.StatusBadRequest, "invalid movieId")
			return
		}
		set["movie_ids"] = titleIDs
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

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var genre models.Genre
	if len(set) == 0 {
		genre, err = h.Genres.GetByID(ctx, id)
	} else {
		genre, err = h.Genres.Update(ctx, id, set)
	}
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, http.StatusNotFound, "genre not found")
			return
		}
		if indexes.IsDuplicateKey(err) {
			httpjson.Error(w, http.StatusBadRequest, "genre already exists")
			return
		}
		h.Log.Error("update genre", zap.Error(err), zap.String("id", id.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}

	httpjson.Write(w, http.StatusOK, genreEnvelope{
		Message: "genre updated",
		Genre:   views.Genre(mediaurl.Origin(r), genre),
	})
}

// Delete removes a genre. Title documents keep their reference to the
// deleted id; readers drop it during genre expansion.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.IDParam(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	genre, err := h.Genres.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, http.StatusNotFound, "genre not found")
			return
		}
		h.Log.Error("delete genre", zap.Error(err), zap.String("id", id.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}

	httpjson.Write(w, http.StatusOK, genreEnvelope{
		Message: "genre deleted",
		Genre:   views.Genre(mediaurl.Origin(r), genre),
	})
}

// Titles returns every movie and series tagged with the genre, movies
// first.
func (h *Handler) Titles(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.IDParam(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	movies, err := h.Movies.ListByGenre(ctx, id)
	if err != nil {
		h.Log.Error("list movies by genre", zap.Error(err), zap.String("id", id.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}
	series, err := h.Series.ListByGenre(ctx, id)
	if err != nil {
		h.Log.Error("list series by genre", zap.Error(err), zap.String("id", id.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}

	genreIDs := make(map[primitive.ObjectID]struct{})
	for _, m := range movies {
		for _, gid := range m.Genres {
			genreIDs[gid] = struct{}{}
		}
	}
	for _, s := range series {
		for _, gid := range s.Genres {
			genreIDs[gid] = struct{}{}
		}
	}
	ids := make([]primitive.ObjectID, 0, len(genreIDs))
	for gid := range genreIDs {
		ids = append(ids, gid)
	}
	genres, err := h.Genres.FindByIDs(ctx, ids)
	if err != nil {
		h.Log.Error("expand genres", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}

	origin := mediaurl.Origin(r)
	titles := make([]any, 0, len(movies)+len(series))
	for _, view := range views.Movies(origin, movies, genres) {
		titles = append(titles, view)
	}
	for _, view := range views.SeriesList(origin, series, genres) {
		titles = append(titles, view)
	}
	httpjson.Write(w, http.StatusOK, titles)
}

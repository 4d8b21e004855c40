// internal/app/features/movies/create.go
package movies

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/cinehubdev/cinehub/internal/app/features/shared"
	"github.com/cinehubdev/cinehub/internal/app/system/bodyform"
	"github.com/cinehubdev/cinehub/internal/app/system/formval"
	"github.com/cinehubdev/cinehub/internal/app/system/httpjson"
	"github.com/cinehubdev/cinehub/internal/app/system/timeouts"
	"github.com/cinehubdev/cinehub/internal/domain/models"
)

func validType(t string) bool {
	return t == models.TypeSingle || t == models.TypeMulti
}

// Create inserts a new movie and registers it on its genres.
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
	movieType := formval.First(form["type"])
	if !validType(movieType) {
		httpjson.Error(w, http.StatusBadRequest, "type must be phim-le or phim-bo")
		return
	}
	genreIDs, err := shared.ObjectIDs(formval.SplitList(form["genres"]))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid genres")
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

	gallery, err := h.Uploads.Gallery(r.Context(), r)
	if shared.WriteUploadError(w, err) {
		return
	}
	if err != nil {
		h.Log.Error("store gallery", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if len(gallery) == 0 {
		gallery = formval.CleanList(form["gallery"])
	}
	if gallery == nil {
		gallery = []string{}
	}

	movie := models.Movie{
		Name:        name,
		Genres:      genreIDs,
		Year:        formval.Int(form["year"]),
		Type:        movieType,
		Episodes:    formval.Int(form["episodes"]),
		Directors:   formval.CleanList(form["directors"]),
		Actors:      formval.CleanList(form["actors"]),
		Thumbnail:   thumbnail,
		Gallery:     gallery,
		Description: formval.First(form["description"]),
		Video:       formval.First(form["video"]),
		Country:     formval.First(form["country"]),
		Comments:    []models.Comment{},
		CreatedAt:   time.Now().UTC(),
	}
	if movie.Directors == nil {
		movie.Directors = []string{}
	}
	if movie.Actors == nil {
		movie.Actors = []string{}
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	if err := h.Movies.Insert(ctx, &movie); err != nil {
		h.Log.Error("insert movie", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if err := h.Genres.AddTitleRef(ctx, genreIDs, movie.ID); err != nil {
		h.Log.Error("register movie on genres", zap.Error(err), zap.String("id", movie.ID.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}

	view, err := h.detailView(ctx, r, movie)
	if err != nil {
		h.Log.Error("build movie view", zap.Error(err), zap.String("id", movie.ID.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}
	httpjson.Write(w, http.StatusCreated, movieEnvelope{Message: "movie created", Movie: view})
}

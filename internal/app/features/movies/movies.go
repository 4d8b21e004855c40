// internal/app/features/movies/movies.go
package movies

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/cinehubdev/cinehub/internal/app/features/shared"
	"github.com/cinehubdev/cinehub/internal/app/features/shared/views"
	"github.com/cinehubdev/cinehub/internal/app/store/queries/titlequeries"
	"github.com/cinehubdev/cinehub/internal/app/system/httpjson"
	"github.com/cinehubdev/cinehub/internal/app/system/mediaurl"
	"github.com/cinehubdev/cinehub/internal/app/system/timeouts"
	"github.com/cinehubdev/cinehub/internal/domain/models"
)

type movieEnvelope struct {
	Message string `json:"message"`
	Movie   any    `json:"movie"`
}

// listFilter parses the supported query parameters (genres, name, sort,
// limit).
func listFilter(r *http.Request) (titlequeries.ListFilter, error) {
	q := r.URL.Query()
	f := titlequeries.ListFilter{
		Name: q.Get("name"),
		Sort: q.Get("sort"),
	}
	if raw := q.Get("genres"); raw != "" {
		ids, err := shared.ObjectIDs(strings.Split(raw, ","))
		if err != nil {
			return f, errors.New("invalid genres filter")
		}
		f.GenreIDs = ids
	}
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return f, errors.New("invalid limit")
		}
		f.Limit = n
	}
	return f, nil
}

// genreMap loads the genre documents referenced by the given titles.
func (h *Handler) genreMap(ctx context.Context, movies []models.Movie) (map[primitive.ObjectID]models.Genre, error) {
	seen := make(map[primitive.ObjectID]struct{})
	var ids []primitive.ObjectID
	for _, m := range movies {
		for _, id := range m.Genres {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	return h.Genres.FindByIDs(ctx, ids)
}

// authorMap loads display names for the comment authors of a movie.
func (h *Handler) authorMap(ctx context.Context, m models.Movie) (map[primitive.ObjectID]string, error) {
	seen := make(map[primitive.ObjectID]struct{})
	var ids []primitive.ObjectID
	for _, c := range m.Comments {
		if _, ok := seen[c.User]; ok {
			continue
		}
		seen[c.User] = struct{}{}
		ids = append(ids, c.User)
	}
	if len(ids) == 0 {
		return nil, nil
	}
	return h.Users.DisplayNames(ctx, ids)
}

// List returns movies matching the query filters, newest first by default.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := listFilter(r)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	results, err := h.Movies.List(ctx, filter)
	if err != nil {
		h.Log.Error("list movies", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}
	genres, err := h.genreMap(ctx, results)
	if err != nil {
		h.Log.Error("expand genres", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}

	httpjson.Write(w, http.StatusOK, views.Movies(mediaurl.Origin(r), results, genres))
}

// Get returns a single movie with genres and comment authors expanded.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.IDParam(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	movie, err := h.Movies.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, http.StatusNotFound, "movie not found")
			return
		}
		h.Log.Error("get movie", zap.Error(err), zap.String("id", id.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}

	view, err := h.detailView(ctx, r, movie)
	if err != nil {
		h.Log.Error("build movie view", zap.Error(err), zap.String("id", id.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}
	httpjson.Write(w, http.StatusOK, view)
}

// detailView assembles the single-document response shape.
func (h *Handler) detailView(ctx context.Context, r *http.Request, movie models.Movie) (views.MovieDetailView, error) {
	genres, err := h.genreMap(ctx, []models.Movie{movie})
	if err != nil {
		return views.MovieDetailView{}, err
	}
	authors, err := h.authorMap(ctx, movie)
	if err != nil {
		return views.MovieDetailView{}, err
	}
	return views.MovieDetail(mediaurl.Origin(r), movie, genres, authors), nil
}

// Countries returns the distinct non-empty country values, sorted.
func (h *Handler) Countries(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	countries, err := h.Movies.Countries(ctx)
	if err != nil {
		h.Log.Error("list countries", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}
	httpjson.Write(w, http.StatusOK, countries)
}

// Delete removes a movie together with its embedded comments. Genre
// back-references to the deleted id are left in place.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.IDParam(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	movie, err := h.Movies.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, http.StatusNotFound, "movie not found")
			return
		}
		h.Log.Error("delete movie", zap.Error(err), zap.String("id", id.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}

	view, err := h.detailView(ctx, r, movie)
	if err != nil {
		h.Log.Error("build movie view", zap.Error(err), zap.String("id", id.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}
	httpjson.Write(w, http.StatusOK, movieEnvelope{Message: "movie deleted", Movie: view})
}

// internal/app/features/series/series.go
package series

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

type seriesEnvelope struct {
	Message string `json:"message"`
	Series  any    `json:"series"`
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

// genreMap loads the genre documents referenced by the given series.
func (h *Handler) genreMap(ctx context.Context, items []models.Series) (map[primitive.ObjectID]models.Genre, error) {
	seen := make(map[primitive.ObjectID]struct{})
	var ids []primitive.ObjectID
	for _, s := range items {
		for _, id := range s.Genres {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	return h.Genres.FindByIDs(ctx, ids)
}

// authorMap loads display names for the comment authors of a series.
func (h *Handler) authorMap(ctx context.Context, s models.Series) (map[primitive.ObjectID]string, error) {
	seen := make(map[primitive.ObjectID]struct{})
	var ids []primitive.ObjectID
	for _, c := range s.Comments {
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

// detailView assembles the single-document response shape.
func (h *Handler) detailView(ctx context.Context, r *http.Request, sr models.Series) (views.SeriesDetailView, error) {
	genres, err := h.genreMap(ctx, []models.Series{sr})
	if err != nil {
		return views.SeriesDetailView{}, err
	}
	authors, err := h.authorMap(ctx, sr)
	if err != nil {
		return views.SeriesDetailView{}, err
	}
	return views.SeriesDetail(mediaurl.Origin(r), sr, genres, authors), nil
}

// List returns series matching the query filters, newest first by default.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := listFilter(r)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	results, err := h.Series.List(ctx, filter)
	if err != nil {
		h.Log.Error("list series", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}
	genres, err := h.genreMap(ctx, results)
	if err != nil {
		h.Log.Error("expand genres", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}

	httpjson.Write(w, http.StatusOK, views.SeriesList(mediaurl.Origin(r), results, genres))
}

// Get returns a single series with genres and comment authors expanded.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.IDParam(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	sr, err := h.Series.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, http.StatusNotFound, "series not found")
			return
		}
		h.Log.Error("get series", zap.Error(err), zap.String("id", id.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}

	view, err := h.detailView(ctx, r, sr)
	if err != nil {
		h.Log.Error("build series view", zap.Error(err), zap.String("id", id.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}
	httpjson.Write(w, http.StatusOK, view)
}

// Delete removes a series together with its embedded comments and
// episodes. Genre back-references to the deleted id are left in place.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.IDParam(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	sr, err := h.Series.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, http.StatusNotFound, "series not found")
			return
		}
		h.Log.Error("delete series", zap.Error(err), zap.String("id", id.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}

	view, err := h.detailView(ctx, r, sr)
	if err != nil {
		h.Log.Error("build series view", zap.Error(err), zap.String("id", id.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}
	httpjson.Write(w, http.StatusOK, seriesEnvelope{Message: "series deleted", Series: view})
}

// internal/app/features/series/update.go
package series

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
	"github.com/cinehubdev/cinehub/internal/app/system/episodes"
	"github.com/cinehubdev/cinehub/internal/app/system/formval"
	"github.com/cinehubdev/cinehub/internal/app/system/httpjson"
	"github.com/cinehubdev/cinehub/internal/app/system/timeouts"
	"github.com/cinehubdev/cinehub/internal/domain/models"
)

// Update overwrites the provided fields of a series. The episode list is
// rebuilt by merging the request's flattened or structured episodes
// against the stored list; when the request carries neither, the stored
// list is kept as is.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.IDParam(w, r)
	if !ok {
		return
	}

	form, structured, err := bodyform.Parse(r)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	prev, err := h.Series.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, http.StatusNotFound, "series not found")
			return
		}
		h.Log.Error("get series", zap.Error(err), zap.String("id", id.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "internal server error")
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
	if vals, ok := form["hasSubtitle"]; ok {
		set["has_subtitle"] = formval.Bool(vals)
	}

	eps := episodes.Reconcile(form, structured, prev.Episodes)
	if eps == nil {
		eps = []models.Episode{}
	}
	set["episodes"] = eps

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

	sr, err := h.Series.Update(ctx, id, set)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, http.StatusNotFound, "series not found")
			return
		}
		h.Log.Error("update series", zap.Error(err), zap.String("id", id.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if len(genreIDs) > 0 {
		if err := h.Genres.AddTitleRef(ctx, genreIDs, sr.ID); err != nil {
			h.Log.Error("register series on genres", zap.Error(err), zap.String("id", sr.ID.Hex()))
			httpjson.Error(w, http.StatusInternalServerError, "internal server error")
			return
		}
	}

	view, err := h.detailView(ctx, r, sr)
	if err != nil {
		h.Log.Error("build series view", zap.Error(err), zap.String("id", sr.ID.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}
	httpjson.Write(w, http.StatusOK, seriesEnvelope{Message: "series updated", Series: view})
}

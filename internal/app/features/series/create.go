// internal/app/features/series/create.go
package series

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/cinehubdev/cinehub/internal/app/features/shared"
	"github.com/cinehubdev/cinehub/internal/app/system/bodyform"
	"github.com/cinehubdev/cinehub/internal/app/system/episodes"
	"github.com/cinehubdev/cinehub/internal/app/system/formval"
	"github.com/cinehubdev/cinehub/internal/app/system/httpjson"
	"github.com/cinehubdev/cinehub/internal/app/system/timeouts"
	"github.com/cinehubdev/cinehub/internal/domain/models"
)

// Create inserts a new series and registers it on its genres. The episode
// list is accepted either as flattened indexed fields or as a structured
// array.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	form, structured, err := bodyform.Parse(r)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	name := formval.First(form["name"])
	if name == "" {
		httpjson.Error(w, http.StatusBadRequest, "name is required")
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

	eps := episodes.Reconcile(form, structured, nil)
	if eps == nil {
		eps = []models.Episode{}
	}

	sr := models.Series{
		Name:        name,
		Description: formval.First(form["description"]),
		Genres:      genreIDs,
		Year:        formval.Int(form["year"]),
		Episodes:    eps,
		Directors:   formval.CleanList(form["directors"]),
		Actors:      formval.CleanList(form["actors"]),
		Thumbnail:   thumbnail,
		Gallery:     gallery,
		Country:     formval.First(form["country"]),
		HasSubtitle: formval.Bool(form["hasSubtitle"]),
		Comments:    []models.Comment{},
		CreatedAt:   time.Now().UTC(),
	}
	if sr.Directors == nil {
		sr.Directors = []string{}
	}
	if sr.Actors == nil {
		sr.Actors = []string{}
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	if err := h.Series.Insert(ctx, &sr); err != nil {
		h.Log.Error("insert series", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if err := h.Genres.AddTitleRef(ctx, genreIDs, sr.ID); err != nil {
		h.Log.Error("register series on genres", zap.Error(err), zap.String("id", sr.ID.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}

	view, err := h.detailView(ctx, r, sr)
	if err != nil {
		h.Log.Error("build series view", zap.Error(err), zap.String("id", sr.ID.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}
	httpjson.Write(w, http.StatusCreated, seriesEnvelope{Message: "series created", Series: view})
}

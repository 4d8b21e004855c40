// internal/app/features/series/comments.go
package series

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/cinehubdev/cinehub/internal/app/features/shared"
	commentstore "github.com/cinehubdev/cinehub/internal/app/store/comments"
	"github.com/cinehubdev/cinehub/internal/app/system/auth"
	"github.com/cinehubdev/cinehub/internal/app/system/bodyform"
	"github.com/cinehubdev/cinehub/internal/app/system/formval"
	"github.com/cinehubdev/cinehub/internal/app/system/httpjson"
	"github.com/cinehubdev/cinehub/internal/app/system/timeouts"
	"github.com/cinehubdev/cinehub/internal/domain/models"
)

// AddComment appends a comment by the authenticated user.
func (h *Handler) AddComment(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.IDParam(w, r)
	if !ok {
		return
	}
	identity, ok := auth.CurrentUser(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}
	userID, err := primitive.ObjectIDFromHex(identity.UserID)
	if err != nil {
		httpjson.Error(w, http.StatusUnauthorized, "invalid token subject")
		return
	}

	form, _, err := bodyform.Parse(r)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	content := strings.TrimSpace(h.Sanitize.Sanitize(formval.First(form["content"])))
	if content == "" {
		httpjson.Error(w, http.StatusBadRequest, "content is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	comment := models.Comment{
		ID:        primitive.NewObjectID(),
		User:      userID,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	if err := h.Series.PushComment(ctx, id, comment); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, http.StatusNotFound, "series not found")
			return
		}
		h.Log.Error("add comment", zap.Error(err), zap.String("id", id.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.writeCommented(ctx, w, r, id, "comment added")
}

// DeleteComment removes a comment. Only the author may delete it.
func (h *Handler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.IDParam(w, r)
	if !ok {
		return
	}
	commentID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "commentId"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid comment id")
		return
	}
	identity, ok := auth.CurrentUser(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}
	userID, err := primitive.ObjectIDFromHex(identity.UserID)
	if err != nil {
		httpjson.Error(w, http.StatusUnauthorized, "invalid token subject")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Series.PullComment(ctx, id, commentID, userID); err != nil {
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			httpjson.Error(w, http.StatusNotFound, "comment not found")
		case errors.Is(err, commentstore.ErrNotOwner):
			httpjson.Error(w, http.StatusForbidden, "comment belongs to another user")
		default:
			h.Log.Error("delete comment", zap.Error(err), zap.String("id", id.Hex()))
			httpjson.Error(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	h.writeCommented(ctx, w, r, id, "comment deleted")
}

// writeCommented responds with the refreshed series after a comment write.
func (h *Handler) writeCommented(ctx context.Context, w http.ResponseWriter, r *http.Request, id primitive.ObjectID, message string) {
	sr, err := h.Series.GetByID(ctx, id)
	if err != nil {
		h.Log.Error("reload series", zap.Error(err), zap.String("id", id.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}
	view, err := h.detailView(ctx, r, sr)
	if err != nil {
		h.Log.Error("build series view", zap.Error(err), zap.String("id", id.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}
	httpjson.Write(w, http.StatusOK, seriesEnvelope{Message: message, Series: view})
}

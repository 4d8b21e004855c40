// internal/app/features/auth/login.go
package authfeature

import (
	"context"
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/cinehubdev/cinehub/internal/app/system/httpjson"
	"github.com/cinehubdev/cinehub/internal/app/system/timeouts"
	"github.com/cinehubdev/cinehub/internal/domain/models"
)

type loginPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token string            `json:"token"`
	User  models.PublicUser `json:"user"`
}

// Login verifies the credentials and issues a signed token.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var payload loginPayload
	if err := httpjson.Decode(r, &payload); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.Validate.Struct(payload); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "email and password are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	user, err := h.Users.FindByEmail(ctx, payload.Email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, http.StatusBadRequest, "email is not registered")
			return
		}
		h.Log.Error("find user", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(payload.Password)); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "incorrect password")
		return
	}

	token, err := h.Tokens.Generate(user.ID.Hex(), user.DisplayName)
	if err != nil {
		h.Log.Error("sign token", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}

	httpjson.Write(w, http.StatusOK, loginResponse{Token: token, User: user.Public()})
}

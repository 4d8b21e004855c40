// internal/app/features/auth/register.go
package authfeature

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/cinehubdev/cinehub/internal/app/system/httpjson"
	"github.com/cinehubdev/cinehub/internal/app/system/indexes"
	"github.com/cinehubdev/cinehub/internal/app/system/timeouts"
	"github.com/cinehubdev/cinehub/internal/domain/models"
)

// bcryptCost matches the cost the existing password hashes were created with.
const bcryptCost = 10

type registerPayload struct {
	DisplayName string `json:"displayName" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6"`
}

// Register creates a new account with the user role.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var payload registerPayload
	if err := httpjson.Decode(r, &payload); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.Validate.Struct(payload); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "displayName, valid email and a password of at least 6 characters are required")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcryptCost)
	if err != nil {
		h.Log.Error("hash password", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	user := models.User{
		DisplayName: payload.DisplayName,
		Email:       payload.Email,
		Password:    string(hash),
		Role:        models.RoleUser,
		CreatedAt:   time.Now().UTC(),
	}
	if err := h.Users.Insert(ctx, &user); err != nil {
		if indexes.IsDuplicateKey(err) {
			httpjson.Error(w, http.StatusBadRequest, "email is already registered")
			return
		}
		h.Log.Error("insert user", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}

	httpjson.Write(w, http.StatusCreated, map[string]string{"message": "account created"})
}

// internal/app/features/auth/handler.go
package authfeature

import (
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	userstore "github.com/cinehubdev/cinehub/internal/app/store/users"
	"github.com/cinehubdev/cinehub/internal/app/system/auth"
)

// Handler owns the register and login handlers.
type Handler struct {
	DB       *mongo.Database
	Users    *userstore.Store
	Tokens   *auth.TokenManager
	Validate *validator.Validate
	Log      *zap.Logger
}

// NewHandler constructs an auth Handler.
func NewHandler(db *mongo.Database, tokens *auth.TokenManager, logger *zap.Logger) *Handler {
	return &Handler{
		DB:       db,
		Users:    userstore.New(db),
		Tokens:   tokens,
		Validate: validator.New(validator.WithRequiredStructEnabled()),
		Log:      logger,
	}
}

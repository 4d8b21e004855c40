// internal/app/features/movies/handler.go
package movies

import (
	"github.com/microcosm-cc/bluemonday"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	genrestore "github.com/cinehubdev/cinehub/internal/app/store/genres"
	moviestore "github.com/cinehubdev/cinehub/internal/app/store/movies"
	userstore "github.com/cinehubdev/cinehub/internal/app/store/users"
	"github.com/cinehubdev/cinehub/internal/app/system/uploads"
)

// Handler owns all movie handlers.
type Handler struct {
	DB       *mongo.Database
	Movies   *moviestore.Store
	Genres   *genrestore.Store
	Users    *userstore.Store
	Uploads  *uploads.Saver
	Sanitize *bluemonday.Policy
	Log      *zap.Logger
}

// NewHandler constructs a movie Handler.
func NewHandler(db *mongo.Database, saver *uploads.Saver, logger *zap.Logger) *Handler {
	return &Handler{
		DB:       db,
		Movies:   moviestore.New(db),
		Genres:   genrestore.New(db),
		Users:    userstore.New(db),
		Uploads:  saver,
		Sanitize: bluemonday.UGCPolicy(),
		Log:      logger,
	}
}

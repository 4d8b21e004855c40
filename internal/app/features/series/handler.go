// internal/app/features/series/handler.go
package series

import (
	"github.com/microcosm-cc/bluemonday"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	genrestore "github.com/cinehubdev/cinehub/internal/app/store/genres"
	seriesstore "github.com/cinehubdev/cinehub/internal/app/store/series"
	userstore "github.com/cinehubdev/cinehub/internal/app/store/users"
	"github.com/cinehubdev/cinehub/internal/app/system/uploads"
)

// Handler owns all series handlers.
type Handler struct {
	DB       *mongo.Database
	Series   *seriesstore.Store
	Genres   *genrestore.Store
	Users    *userstore.Store
	Uploads  *uploads.Saver
	Sanitize *bluemonday.Policy
	Log      *zap.Logger
}

// NewHandler constructs a series Handler.
func NewHandler(db *mongo.Database, saver *uploads.Saver, logger *zap.Logger) *Handler {
	return &Handler{
		DB:       db,
		Series:   seriesstore.New(db),
		Genres:   genrestore.New(db),
		Users:    userstore.New(db),
		Uploads:  saver,
		Sanitize: bluemonday.UGCPolicy(),
		Log:      logger,
	}
}

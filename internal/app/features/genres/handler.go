// internal/app/features/genres/handler.go
package genres

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	genrestore "github.com/cinehubdev/cinehub/internal/app/store/genres"
	moviestore "github.com/cinehubdev/cinehub/internal/app/store/movies"
	seriesstore "github.com/cinehubdev/cinehub/internal/app/store/series"
	"github.com/cinehubdev/cinehub/internal/app/system/uploads"
)

// Handler owns all genre handlers.
type Handler struct {
	DB      *mongo.Database
	Genres  *genrestore.Store
	Movies  *moviestore.Store
	Series  *seriesstore.Store
	Uploads *uploads.Saver
	Log     *zap.Logger
}

// NewHandler constructs a genre Handler.
func NewHandler(db *mongo.Database, saver *uploads.Saver, logger *zap.Logger) *Handler {
	return &Handler{
		DB:      db,
		Genres:  genrestore.New(db),
		Movies:  moviestore.New(db),
		Series:  seriesstore.New(db),
		Uploads: saver,
		Log:     logger,
	}
}

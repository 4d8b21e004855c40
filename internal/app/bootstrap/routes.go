// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	authfeature "github.com/cinehubdev/cinehub/internal/app/features/auth"
	genresfeature "github.com/cinehubdev/cinehub/internal/app/features/genres"
	healthfeature "github.com/cinehubdev/cinehub/internal/app/features/health"
	moviesfeature "github.com/cinehubdev/cinehub/internal/app/features/movies"
	seriesfeature "github.com/cinehubdev/cinehub/internal/app/features/series"
	"github.com/cinehubdev/cinehub/internal/app/system/auth"
	"github.com/cinehubdev/cinehub/internal/app/system/uploads"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. CineHub builds the token manager and
// the upload storage backend from app config, then mounts the API feature
// routers and the static file server for locally stored uploads.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	tokens, err := auth.NewTokenManager(appCfg.JWTSecret, appCfg.JWTTokenTTL)
	if err != nil {
		logger.Error("token manager init failed", zap.Error(err))
		return nil, err
	}

	store, err := storage.NewLocal(storage.LocalConfig{
		BasePath: appCfg.UploadDir,
		BaseURL:  appCfg.UploadURLPrefix,
	})
	if err != nil {
		logger.Error("storage init failed", zap.Error(err))
		return nil, err
	}
	saver := &uploads.Saver{
		Store:      store,
		MaxBytes:   appCfg.UploadMaxBytes,
		GalleryMax: appCfg.UploadGalleryMax,
	}

	r := chi.NewRouter()

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Locally stored uploads, served with pre-compressed file support
	r.Handle(appCfg.UploadURLPrefix+"/*", fileserver.Handler(appCfg.UploadURLPrefix, appCfg.UploadDir))

	r.Route("/api", func(r chi.Router) {
		authHandler := authfeature.NewHandler(deps.MongoDatabase, tokens, logger)
		r.Route("/auth", authHandler.MountRoutes)

		genresHandler := genresfeature.NewHandler(deps.MongoDatabase, saver, logger)
		r.Route("/genre", genresHandler.MountRoutes)

		moviesHandler := moviesfeature.NewHandler(deps.MongoDatabase, saver, logger)
		r.Route("/movie", func(r chi.Router) {
			moviesHandler.MountRoutes(r, tokens)
		})

		seriesHandler := seriesfeature.NewHandler(deps.MongoDatabase, saver, logger)
		r.Route("/series", func(r chi.Router) {
			seriesHandler.MountRoutes(r, tokens)
		})
	})

	return r, nil
}

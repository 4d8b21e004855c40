// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for CineHub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, jwt_secret, etc.
//   - Environment variables: CINEHUB_MONGO_URI, CINEHUB_JWT_SECRET, etc.
//   - Command-line flags: --mongo_uri, --jwt_secret, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "cinehub", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},

	// Token configuration
	{Name: "jwt_secret", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Bearer token signing secret (must be strong in production)"},
	{Name: "jwt_token_ttl", Default: "168h", Desc: "Bearer token lifetime (e.g., 168h for one week)"},

	// File storage configuration
	{Name: "storage_type", Default: "local", Desc: "Storage backend for uploaded media: 'local'"},
	{Name: "upload_dir", Default: "./uploads", Desc: "Local storage path for uploaded media"},
	{Name: "upload_url_prefix", Default: "/uploads", Desc: "URL prefix for serving locally stored media"},
	{Name: "upload_max_bytes", Default: 50 * 1024 * 1024, Desc: "Per-file upload size limit in bytes (default: 50 MiB)"},
	{Name: "upload_gallery_max", Default: 10, Desc: "Max gallery files accepted per request"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// It is called early in startup so that both WAFFLE and the app have
// access to configuration before any backends or handlers are built.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "CINEHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		JWTSecret:   appValues.String("jwt_secret"),
		JWTTokenTTL: appValues.Duration("jwt_token_ttl", 168*time.Hour),

		StorageType:      appValues.String("storage_type"),
		UploadDir:        appValues.String("upload_dir"),
		UploadURLPrefix:  appValues.String("upload_url_prefix"),
		UploadMaxBytes:   int64(appValues.Int("upload_max_bytes")),
		UploadGalleryMax: appValues.Int("upload_gallery_max"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// CineHub validates the MongoDB URI format to catch configuration errors
// early, before attempting to connect, and rejects unusable token and
// upload settings.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}
	if appCfg.JWTSecret == "" {
		return fmt.Errorf("jwt_secret must not be empty")
	}
	if appCfg.JWTTokenTTL <= 0 {
		return fmt.Errorf("jwt_token_ttl must be positive")
	}
	if appCfg.StorageType != "local" {
		return fmt.Errorf("unsupported storage_type %q", appCfg.StorageType)
	}
	if appCfg.UploadMaxBytes <= 0 {
		return fmt.Errorf("upload_max_bytes must be positive")
	}
	return nil
}

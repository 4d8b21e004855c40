// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings (ports, TLS,
// logging, CORS). AppConfig is everything specific to the catalog API:
// database connection, token signing, and upload handling.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// Token configuration
	JWTSecret   string        // Secret for signing bearer tokens (must be strong in production)
	JWTTokenTTL time.Duration // Token lifetime (default: one week)

	// File storage configuration
	StorageType     string // Storage backend: "local" (hosted backends slot in here)
	UploadDir       string // Local storage path for uploaded media
	UploadURLPrefix string // URL prefix for serving locally stored media
	UploadMaxBytes  int64  // Per-file upload size limit
	UploadGalleryMax int   // Max gallery files accepted per request
}

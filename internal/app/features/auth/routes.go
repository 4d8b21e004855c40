// internal/app/features/auth/routes.go
package authfeature

import "github.com/go-chi/chi/v5"

// MountRoutes mounts the account routes on the given router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
}

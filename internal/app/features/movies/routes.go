// internal/app/features/movies/routes.go
package movies

import (
	"github.com/go-chi/chi/v5"

	"github.com/cinehubdev/cinehub/internal/app/system/auth"
)

// MountRoutes mounts all movie routes on the given router. Comment routes
// require a valid bearer token.
func (h *Handler) MountRoutes(r chi.Router, tokens *auth.TokenManager) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/countries", h.Countries)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(tokens))
		r.Post("/{id}/comment", h.AddComment)
		r.Delete("/{id}/comment/{commentId}", h.DeleteComment)
	})
}

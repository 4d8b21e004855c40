// internal/app/features/genres/routes.go
package genres

import "github.com/go-chi/chi/v5"

// MountRoutes mounts all genre routes on the given router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
	r.Get("/{id}/movies", h.Titles)
}

package catalog

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zelenmun/EvalUp/internal/auth"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/areas", h.ListAreas)
	r.Get("/areas/{id}/temas", h.ListTemas)
	r.Get("/niveles", h.ListNiveles)
	r.Get("/estados", h.ListEstados)
	r.Get("/tipos-pregunta", h.ListTiposPregunta)
	r.Get("/generos", h.ListGeneros)
	r.Get("/plantillas", h.ListPlantillas)

	r.Group(func(r chi.Router) {
		r.Use(auth.AuthMiddleware)
		r.Use(auth.RequireStaff)

		r.Post("/areas", h.CreateArea)
		r.Post("/areas/{id}/temas", h.CreateTema)
		r.Post("/plantillas", h.CreatePlantilla)
	})
	return r
}

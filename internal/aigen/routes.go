package aigen

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zelenmun/EvalUp/internal/auth"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(auth.AuthMiddleware)

	r.Post("/", h.Generate)
	r.Get("/", h.List)
	return r
}

package report

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zelenmun/EvalUp/internal/auth"
)

// Routes serves the staff report. Mount it behind auth.AuthMiddleware.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(auth.RequireStaff)

	r.Get("/", h.GetReport)
	r.Get("/{examID:[0-9]+}", h.GetReport)
	return r
}

package exam

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zelenmun/EvalUp/internal/auth"
)

// Routes serves /api/examenes/{id}. Callers mount it under the id pattern.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(auth.AuthMiddleware)

	r.Get("/", h.GetExam)
	r.Delete("/", h.DeleteExam)
	r.Post("/iniciar", h.StartExam)
	r.Post("/respuestas", h.SubmitAnswers)
	r.Get("/historial", h.ListHistory)
	r.With(auth.RequireStaff).Put("/calificacion", h.GradeExam)
	return r
}

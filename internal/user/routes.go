package user

import (
	"github.com/go-chi/chi/v5"

	"github.com/zelenmun/EvalUp/internal/auth"
)

// AuthRoutes serves /api/auth.
func AuthRoutes(h *Handler, logout *auth.Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/signup", h.Signup)
	r.Post("/login", h.Login)
	r.Post("/logout", logout.Logout)

	r.Group(func(r chi.Router) {
		r.Use(auth.AuthMiddleware)
		r.Get("/user", h.GetUser)
	})
	return r
}

// Routes serves /api/personas.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(auth.AuthMiddleware)
	r.Get("/me", h.GetProfile)
	r.Put("/me", h.UpdateProfile)
	return r
}

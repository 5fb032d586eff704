package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/zelenmun/EvalUp/internal/aigen"
	"github.com/zelenmun/EvalUp/internal/auth"
	"github.com/zelenmun/EvalUp/internal/catalog"
	"github.com/zelenmun/EvalUp/internal/exam"
	"github.com/zelenmun/EvalUp/internal/middlewares"
	"github.com/zelenmun/EvalUp/internal/report"
	"github.com/zelenmun/EvalUp/internal/user"
)

type RouterConfig struct {
	UserHandler    *user.Handler
	LogoutHandler  *auth.Handler
	CatalogHandler *catalog.Handler
	AIGenHandler   *aigen.Handler
	ExamHandler    *exam.Handler
	ReportHandler  *report.Handler
	CORSOrigins    []string
}

func New(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.StripSlashes)
	r.Use(middlewares.Cors(cfg.CORSOrigins))

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.Route("/api", func(r chi.Router) {
		r.Mount("/auth", user.AuthRoutes(cfg.UserHandler, cfg.LogoutHandler))
		r.Mount("/personas", user.Routes(cfg.UserHandler))
		r.Mount("/catalogo", catalog.Routes(cfg.CatalogHandler))
		r.Mount("/generaciones", aigen.Routes(cfg.AIGenHandler))

		r.Route("/examenes", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(auth.AuthMiddleware)
				r.Get("/", cfg.ReportHandler.StudentOverview)
				r.Mount("/reporte", report.Routes(cfg.ReportHandler))
			})
			r.Mount("/{id}", exam.Routes(cfg.ExamHandler))
		})
	})
	return r
}

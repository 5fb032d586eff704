package container

import (
	"context"
	"net/http"
	"strings"

	"gorm.io/gorm"

	"github.com/zelenmun/EvalUp/internal/aigen"
	"github.com/zelenmun/EvalUp/internal/auth"
	"github.com/zelenmun/EvalUp/internal/catalog"
	"github.com/zelenmun/EvalUp/internal/config"
	"github.com/zelenmun/EvalUp/internal/exam"
	"github.com/zelenmun/EvalUp/internal/report"
	"github.com/zelenmun/EvalUp/internal/router"
	"github.com/zelenmun/EvalUp/internal/user"
)

type Container struct {
	Settings         config.Settings
	DB               *gorm.DB
	CatalogContainer *catalog.Container
	UserContainer    *user.UserContainer
	ExamContainer    *exam.ExamContainer
	AIGenContainer   *aigen.AIGenContainer
	ReportContainer  *report.ReportContainer
	LogoutHandler    *auth.Handler
}

// Init sets up the process-wide logger, signing key and cipher from settings.
func Init(s config.Settings) {
	config.Init(s.LogLevel)
	auth.Init(s.JWTSecret)
	if s.CryptoKey != "" {
		config.InitCrypto(s.CryptoKey)
	} else {
		config.Logger.Warn("EVALUP_CRYPTO_KEY not set, cedula storage is disabled")
	}
}

func secureCookies(origins []string) bool {
	for _, o := range origins {
		if !strings.HasPrefix(o, "https://") {
			return false
		}
	}
	return len(origins) > 0
}

// New wires every feature container against an open database. A nil provider
// builds one from settings; generation answers 502 when that fails.
func New(ctx context.Context, s config.Settings, db *gorm.DB, provider aigen.Provider) *Container {
	if provider == nil {
		p, err := aigen.NewProvider(ctx, aigen.ProviderConfig{
			Name:    s.AIProvider,
			Model:   s.AIModel,
			APIKey:  s.AIAPIKey,
			BaseURL: s.AIBaseURL,
		})
		if err != nil {
			config.WithContext(ctx).WithError(err).Error("AI provider unavailable")
			p = aigen.Unavailable(err)
		}
		provider = p
	}

	secure := secureCookies(s.CORSOrigins)
	catalogContainer := catalog.NewContainer(db)
	userContainer := user.NewUserContainer(db, catalogContainer.Repo, s.JWTTTL, secure)
	examContainer := exam.NewExamContainer(db, catalogContainer.Repo)
	aigenContainer := aigen.NewAIGenContainer(db, provider, examContainer.Repo, catalogContainer.Repo)
	reportContainer := report.NewReportContainer(db)

	return &Container{
		Settings:         s,
		DB:               db,
		CatalogContainer: catalogContainer,
		UserContainer:    userContainer,
		ExamContainer:    examContainer,
		AIGenContainer:   aigenContainer,
		ReportContainer:  reportContainer,
		LogoutHandler:    auth.NewHandler(secure),
	}
}

func (c *Container) Router() http.Handler {
	return router.New(router.RouterConfig{
		UserHandler:    c.UserContainer.Handler,
		LogoutHandler:  c.LogoutHandler,
		CatalogHandler: c.CatalogContainer.Handler,
		AIGenHandler:   c.AIGenContainer.Handler,
		ExamHandler:    c.ExamContainer.Handler,
		ReportHandler:  c.ReportContainer.Handler,
		CORSOrigins:    c.Settings.CORSOrigins,
	})
}

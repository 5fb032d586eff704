package user

import (
	"time"

	"gorm.io/gorm"

	"github.com/zelenmun/EvalUp/internal/catalog"
)

type UserContainer struct {
	Handler *Handler
	Service UserService
	Repo    UserRepository
}

func NewUserContainer(db *gorm.DB, catalogRepo catalog.Repository, tokenTTL time.Duration, secureCookies bool) *UserContainer {
	repo := NewRepository(db)
	service := NewService(db, repo, catalogRepo, tokenTTL)
	handler := NewHandler(service, secureCookies, tokenTTL)

	return &UserContainer{
		Handler: handler,
		Service: service,
		Repo:    repo,
	}
}

package exam

import (
	"gorm.io/gorm"

	"github.com/zelenmun/EvalUp/internal/catalog"
)

type ExamContainer struct {
	Handler *Handler
	Service ExamService
	Repo    ExamRepository
}

func NewExamContainer(db *gorm.DB, catalogRepo catalog.Repository) *ExamContainer {
	repo := NewRepository(db)
	service := NewService(db, repo, catalogRepo)
	handler := NewHandler(service)

	return &ExamContainer{
		Handler: handler,
		Service: service,
		Repo:    repo,
	}
}

package aigen

import (
	"gorm.io/gorm"

	"github.com/zelenmun/EvalUp/internal/catalog"
	"github.com/zelenmun/EvalUp/internal/exam"
)

type AIGenContainer struct {
	Handler *Handler
	Service Service
}

func NewAIGenContainer(db *gorm.DB, provider Provider, examRepo exam.ExamRepository, catalogRepo catalog.Repository) *AIGenContainer {
	service := NewService(db, provider, examRepo, catalogRepo)
	handler := NewHandler(service)

	return &AIGenContainer{
		Handler: handler,
		Service: service,
	}
}

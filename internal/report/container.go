package report

import "gorm.io/gorm"

type ReportContainer struct {
	Handler *Handler
	Service Service
}

func NewReportContainer(db *gorm.DB) *ReportContainer {
	repo := NewRepository(db)
	service := NewService(repo)
	handler := NewHandler(service)

	return &ReportContainer{
		Handler: handler,
		Service: service,
	}
}

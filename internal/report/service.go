package report

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/zelenmun/EvalUp/internal/catalog"
	"github.com/zelenmun/EvalUp/internal/config"
	"github.com/zelenmun/EvalUp/internal/exam"
)

const topAreas = 5

type Service interface {
	GenerateCompleteReport(ctx context.Context, q Query) (*Report, error)
	StudentOverview(ctx context.Context, personaID uint) (*Overview, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

func (s *service) GenerateCompleteReport(ctx context.Context, q Query) (*Report, error) {
	log := config.WithContext(ctx)

	exams, err := s.repo.GetExamCompleteData(ctx, q)
	if err != nil {
		log.WithError(err).Error("Failed to load exams for report")
		return nil, fmt.Errorf("load exams: %w", err)
	}

	data := SerializeExams(exams)
	stats := ComputeStatistics(exams)

	summary := Summary{
		TotalExamenes:               len(data),
		PromedioGeneralCalificacion: stats.PromedioCalificacion,
		AreasMasFrecuentes:          stats.DistribucionAreas,
	}
	if len(summary.AreasMasFrecuentes) > topAreas {
		summary.AreasMasFrecuentes = summary.AreasMasFrecuentes[:topAreas]
	}
	for _, d := range data {
		if d.Estado == nil {
			continue
		}
		switch d.Estado.Nombre {
		case catalog.EstadoExamenCompletado:
			summary.ExamenesCompletados++
		case catalog.EstadoExamenCalificado:
			summary.ExamenesCalificados++
		}
	}

	log.WithFields(logrus.Fields{
		"records": len(data),
		"filters": len(q.Filters()),
	}).Info("Exam report generated")

	return &Report{
		Metadata: Metadata{
			GeneratedAt:     s.now(),
			TotalRecords:    len(data),
			FiltersApplied:  q.Filters(),
			ExamIDFilter:    q.ExamID,
			PersonaIDFilter: q.PersonaID,
		},
		Examenes:   data,
		Statistics: stats,
		Summary:    summary,
	}, nil
}

// StudentOverview returns the persona's active exams with the mean grade of
// the graded ones.
func (s *service) StudentOverview(ctx context.Context, personaID uint) (*Overview, error) {
	log := config.WithContext(ctx)

	exams, err := s.repo.GetExamCompleteData(ctx, Query{PersonaID: &personaID, SoloActivos: true})
	if err != nil {
		log.WithError(err).Error("Failed to load student exams")
		return nil, fmt.Errorf("load exams: %w", err)
	}

	var nota mean
	for _, e := range exams {
		if e.Calificacion != nil {
			nota.add(float64(*e.Calificacion))
		}
	}

	data := SerializeExams(exams)
	for i := range data {
		redactPending(&data[i])
	}

	out := &Overview{Examenes: data, Cantidad: len(exams)}
	if avg := nota.value(); avg != nil {
		out.Promedio = *avg
	}
	return out, nil
}

// redactPending hides the generated answer key of exams not yet handed in.
func redactPending(d *ExamData) {
	if d.GeneracionIA == nil {
		return
	}
	if d.Estado != nil && exam.Submitted(d.Estado.Nombre) {
		return
	}
	d.GeneracionIA.ResultadoJSON = exam.RedactResultado(d.GeneracionIA.ResultadoJSON)
}

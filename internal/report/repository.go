package report

import (
	"context"

	"gorm.io/gorm"

	"github.com/zelenmun/EvalUp/internal/catalog"
	"github.com/zelenmun/EvalUp/internal/exam"
	util "github.com/zelenmun/EvalUp/internal/utils"
)

type Repository interface {
	GetExamCompleteData(ctx context.Context, q Query) ([]exam.Examen, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func byID(table string) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB { return tx.Order(table + ".id ASC") }
}

func (r *repository) GetExamCompleteData(ctx context.Context, q Query) ([]exam.Examen, error) {
	db := r.db.WithContext(ctx).
		Preload("Persona.User").
		Preload("Estado").
		Preload("CalificadoPor").
		Preload("Nivel").
		Preload("AreaEstudio").
		Preload("Temas.Area").
		Preload("GeneracionIA.Area").
		Preload("GeneracionIA.Temas").
		Preload("GeneracionIA.Nivel").
		Preload("Preguntas", byID("preguntas")).
		Preload("Preguntas.Tipo").
		Preload("Preguntas.Estado").
		Preload("Preguntas.Respuestas", byID("respuestas")).
		Preload("Preguntas.Respuestas.EsVof")

	if q.ExamID != nil {
		db = db.Where("examenes.id = ?", *q.ExamID)
	}
	if q.PersonaID != nil {
		db = db.Where("examenes.persona_id = ?", *q.PersonaID)
	}
	if q.Estado != "" {
		db = db.Where("examenes.estado_id IN (?)",
			r.db.Model(&catalog.EstadoExamen{}).Select("id").Where("nombre = ?", q.Estado))
	}
	if q.AreaEstudio != "" {
		db = db.Where("examenes.area_estudio_id IN (?)",
			r.db.Model(&catalog.AreaEstudio{}).Select("id").Where("nombre = ?", q.AreaEstudio))
	}
	if q.Nivel != "" {
		db = db.Where("examenes.nivel_id IN (?)",
			r.db.Model(&catalog.NivelExamen{}).Select("id").Where("nombre = ?", q.Nivel))
	}
	if q.FechaDesde != nil {
		db = db.Where("examenes.fecha_examen >= ?", q.FechaDesde.UTC())
	}
	if q.FechaHasta != nil {
		db = db.Where("examenes.fecha_examen <= ?", util.EndOfDay(*q.FechaHasta).UTC())
	}
	if q.CalificacionMinima != nil {
		db = db.Where("examenes.calificacion >= ?", *q.CalificacionMinima)
	}
	if q.SoloActivos {
		db = db.Where("examenes.is_active = ?", true)
	}

	var rows []exam.Examen
	err := db.Order("examenes.created_at DESC, examenes.id DESC").Find(&rows).Error
	return rows, err
}

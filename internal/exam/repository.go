package exam

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/zelenmun/EvalUp/internal/catalog"
)

var (
	ErrExamNotFound       = errors.New("examen not found")
	ErrRespuestaNotFound  = errors.New("respuesta not found")
	ErrGenerationNotFound = errors.New("generacion not found")
)

type ExamRepository interface {
	WithTx(tx *gorm.DB) ExamRepository

	Create(ctx context.Context, e *Examen) error
	CreatePreguntas(ctx context.Context, preguntas []*Pregunta) error
	CreateRespuestas(ctx context.Context, respuestas []*Respuesta) error
	CreateHistorial(ctx context.Context, h *HistorialExamen) error
	CreateGeneracion(ctx context.Context, g *GeneracionIA) error
	LinkTemas(ctx context.Context, e *Examen, temaIDs []uint) error

	GetByID(ctx context.Context, id uint) (*Examen, error)
	Save(ctx context.Context, e *Examen) error
	UpdatePreguntaEstado(ctx context.Context, preguntaIDs []uint, estadoID uint) error
	GetRespuesta(ctx context.Context, id uint) (*Respuesta, error)
	SaveRespuesta(ctx context.Context, r *Respuesta) error
	SumRespuestaPuntaje(ctx context.Context, examID uint) (float64, error)
	SoftDelete(ctx context.Context, id uint, userID uint) error

	ListHistorial(ctx context.Context, examID uint) ([]HistorialExamen, error)
	ListGeneraciones(ctx context.Context, personaID uint) ([]GeneracionIA, error)
	SubmittedExamIDs(ctx context.Context, ids []uint) (map[uint]bool, error)
}

type examRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) ExamRepository {
	return &examRepository{db: db}
}

func (r *examRepository) WithTx(tx *gorm.DB) ExamRepository {
	return &examRepository{db: tx}
}

func (r *examRepository) Create(ctx context.Context, e *Examen) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(e).Error
}

func (r *examRepository) CreatePreguntas(ctx context.Context, preguntas []*Pregunta) error {
	if len(preguntas) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(&preguntas).Error
}

func (r *examRepository) CreateRespuestas(ctx context.Context, respuestas []*Respuesta) error {
	if len(respuestas) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(&respuestas).Error
}

func (r *examRepository) CreateHistorial(ctx context.Context, h *HistorialExamen) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(h).Error
}

func (r *examRepository) CreateGeneracion(ctx context.Context, g *GeneracionIA) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(g).Error
}

func (r *examRepository) LinkTemas(ctx context.Context, e *Examen, temaIDs []uint) error {
	if len(temaIDs) == 0 {
		return nil
	}
	var temas []*temaRef
	for _, id := range temaIDs {
		temas = append(temas, &temaRef{ExamenID: e.ID, TemaAreaEstudioID: id})
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&temas).Error
}

// temaRef is a row of the examen_temas join table.
type temaRef struct {
	ExamenID          uint `gorm:"primaryKey"`
	TemaAreaEstudioID uint `gorm:"primaryKey"`
}

func (temaRef) TableName() string { return "examen_temas" }

func (r *examRepository) GetByID(ctx context.Context, id uint) (*Examen, error) {
	var e Examen
	err := r.db.WithContext(ctx).
		Preload("Estado").
		Preload("Nivel").
		Preload("AreaEstudio").
		Preload("Temas").
		Preload("Preguntas", func(db *gorm.DB) *gorm.DB { return db.Order("preguntas.id ASC") }).
		Preload("Preguntas.Tipo").
		Preload("Preguntas.Estado").
		Preload("Preguntas.Respuestas", func(db *gorm.DB) *gorm.DB { return db.Order("respuestas.id ASC") }).
		First(&e, "id = ? AND is_active = ?", id, true).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExamNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *examRepository) Save(ctx context.Context, e *Examen) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(e).Error
}

func (r *examRepository) UpdatePreguntaEstado(ctx context.Context, preguntaIDs []uint, estadoID uint) error {
	if len(preguntaIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&Pregunta{}).Where("id IN ?", preguntaIDs).Update("estado_id", estadoID).Error
}

func (r *examRepository) GetRespuesta(ctx context.Context, id uint) (*Respuesta, error) {
	var resp Respuesta
	if err := r.db.WithContext(ctx).First(&resp, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRespuestaNotFound
		}
		return nil, err
	}
	return &resp, nil
}

func (r *examRepository) SaveRespuesta(ctx context.Context, resp *Respuesta) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(resp).Error
}

func (r *examRepository) SumRespuestaPuntaje(ctx context.Context, examID uint) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).
		Model(&Respuesta{}).
		Select("COALESCE(SUM(respuestas.puntaje), 0)").
		Joins("JOIN preguntas ON preguntas.id = respuestas.pregunta_id").
		Where("preguntas.examen_id = ? AND respuestas.is_active = ?", examID, true).
		Scan(&total).Error
	return total, err
}

func (r *examRepository) SoftDelete(ctx context.Context, id uint, userID uint) error {
	updates := map[string]any{"is_active": false}
	if userID != 0 {
		updates["updated_by_id"] = userID
	}
	res := r.db.WithContext(ctx).Model(&Examen{}).Where("id = ? AND is_active = ?", id, true).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrExamNotFound
	}
	return nil
}

func (r *examRepository) ListHistorial(ctx context.Context, examID uint) ([]HistorialExamen, error) {
	var rows []HistorialExamen
	err := r.db.WithContext(ctx).
		Preload("Estado").
		Where("examen_id = ?", examID).
		Order("created_at ASC, id ASC").
		Find(&rows).Error
	return rows, err
}

func (r *examRepository) ListGeneraciones(ctx context.Context, personaID uint) ([]GeneracionIA, error) {
	var rows []GeneracionIA
	err := r.db.WithContext(ctx).
		Preload("Area").
		Preload("Temas").
		Preload("Nivel").
		Where("persona_id = ? AND is_active = ?", personaID, true).
		Order("created_at DESC, id DESC").
		Find(&rows).Error
	return rows, err
}

// SubmittedExamIDs returns which of the given exams are completed or graded.
func (r *examRepository) SubmittedExamIDs(ctx context.Context, ids []uint) (map[uint]bool, error) {
	out := make(map[uint]bool, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var found []uint
	err := r.db.WithContext(ctx).
		Model(&Examen{}).
		Joins("JOIN estados_examen ON estados_examen.id = examenes.estado_id").
		Where("examenes.id IN ? AND estados_examen.nombre IN ?", ids,
			[]string{catalog.EstadoExamenCompletado, catalog.EstadoExamenCalificado}).
		Pluck("examenes.id", &found).Error
	if err != nil {
		return nil, err
	}
	for _, id := range found {
		out[id] = true
	}
	return out, nil
}

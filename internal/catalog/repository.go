package catalog

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var (
	ErrAreaNotFound      = errors.New("area de estudio not found")
	ErrTemaNotFound      = errors.New("tema not found")
	ErrNivelNotFound     = errors.New("nivel not found")
	ErrPlantillaNotFound = errors.New("plantilla not found")
	ErrValueNotFound     = errors.New("catalog value not found")
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository

	ListAreas(ctx context.Context) ([]AreaEstudio, error)
	ListTemasByArea(ctx context.Context, areaID uint) ([]TemaAreaEstudio, error)
	ListNiveles(ctx context.Context) ([]NivelExamen, error)
	ListEstadosExamen(ctx context.Context) ([]EstadoExamen, error)
	ListTiposPregunta(ctx context.Context) ([]TipoPregunta, error)
	ListGeneros(ctx context.Context) ([]Gender, error)
	ListPlantillas(ctx context.Context) ([]PlantillaIA, error)

	FindArea(ctx context.Context, id uint) (*AreaEstudio, error)
	FindTema(ctx context.Context, id uint) (*TemaAreaEstudio, error)
	FindNivel(ctx context.Context, id uint) (*NivelExamen, error)
	FindPlantilla(ctx context.Context, id uint) (*PlantillaIA, error)
	FindGeneroByNombre(ctx context.Context, nombre string) (*Gender, error)

	EstadoExamen(ctx context.Context, nombre string) (*EstadoExamen, error)
	EstadoPregunta(ctx context.Context, nombre string) (*EstadoPregunta, error)
	TipoPregunta(ctx context.Context, nombre string) (*TipoPregunta, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) ListAreas(ctx context.Context) ([]AreaEstudio, error) {
	var areas []AreaEstudio
	err := r.db.WithContext(ctx).Where("is_active = ?", true).Order("nombre ASC").Find(&areas).Error
	return areas, err
}

func (r *repository) ListTemasByArea(ctx context.Context, areaID uint) ([]TemaAreaEstudio, error) {
	var temas []TemaAreaEstudio
	err := r.db.WithContext(ctx).
		Where("area_id = ? AND is_active = ?", areaID, true).
		Order("nombre ASC").
		Find(&temas).Error
	return temas, err
}

func (r *repository) ListNiveles(ctx context.Context) ([]NivelExamen, error) {
	return listAll[NivelExamen](ctx, r.db)
}

func (r *repository) ListEstadosExamen(ctx context.Context) ([]EstadoExamen, error) {
	return listAll[EstadoExamen](ctx, r.db)
}

func (r *repository) ListTiposPregunta(ctx context.Context) ([]TipoPregunta, error) {
	return listAll[TipoPregunta](ctx, r.db)
}

func (r *repository) ListGeneros(ctx context.Context) ([]Gender, error) {
	return listAll[Gender](ctx, r.db)
}

func (r *repository) ListPlantillas(ctx context.Context) ([]PlantillaIA, error) {
	var plantillas []PlantillaIA
	err := r.db.WithContext(ctx).Where("is_active = ?", true).Order("id ASC").Find(&plantillas).Error
	return plantillas, err
}

func (r *repository) FindArea(ctx context.Context, id uint) (*AreaEstudio, error) {
	return first[AreaEstudio](r.db.WithContext(ctx).Where("id = ?", id), ErrAreaNotFound)
}

func (r *repository) FindTema(ctx context.Context, id uint) (*TemaAreaEstudio, error) {
	return first[TemaAreaEstudio](r.db.WithContext(ctx).Preload("Area").Where("id = ?", id), ErrTemaNotFound)
}

func (r *repository) FindNivel(ctx context.Context, id uint) (*NivelExamen, error) {
	return first[NivelExamen](r.db.WithContext(ctx).Where("id = ?", id), ErrNivelNotFound)
}

func (r *repository) FindPlantilla(ctx context.Context, id uint) (*PlantillaIA, error) {
	return first[PlantillaIA](r.db.WithContext(ctx).Where("id = ? AND is_active = ?", id, true), ErrPlantillaNotFound)
}

func (r *repository) FindGeneroByNombre(ctx context.Context, nombre string) (*Gender, error) {
	return first[Gender](r.db.WithContext(ctx).Where("nombre = ?", nombre), ErrValueNotFound)
}

func (r *repository) EstadoExamen(ctx context.Context, nombre string) (*EstadoExamen, error) {
	return first[EstadoExamen](r.db.WithContext(ctx).Where("nombre = ?", nombre), ErrValueNotFound)
}

func (r *repository) EstadoPregunta(ctx context.Context, nombre string) (*EstadoPregunta, error) {
	return first[EstadoPregunta](r.db.WithContext(ctx).Where("nombre = ?", nombre), ErrValueNotFound)
}

func (r *repository) TipoPregunta(ctx context.Context, nombre string) (*TipoPregunta, error) {
	return first[TipoPregunta](r.db.WithContext(ctx).Where("nombre = ?", nombre), ErrValueNotFound)
}

func listAll[T any](ctx context.Context, db *gorm.DB) ([]T, error) {
	var rows []T
	err := db.WithContext(ctx).Order("id ASC").Find(&rows).Error
	return rows, err
}

func first[T any](q *gorm.DB, notFound error) (*T, error) {
	var row T
	if err := q.First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound
		}
		return nil, err
	}
	return &row, nil
}

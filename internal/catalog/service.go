package catalog

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/zelenmun/EvalUp/internal/config"
)

var ErrAreaExists = errors.New("area de estudio already exists")

type Service interface {
	Areas(ctx context.Context) ([]AreaEstudio, error)
	Temas(ctx context.Context, areaID uint) ([]TemaAreaEstudio, error)
	Niveles(ctx context.Context) ([]NivelExamen, error)
	EstadosExamen(ctx context.Context) ([]EstadoExamen, error)
	TiposPregunta(ctx context.Context) ([]TipoPregunta, error)
	Generos(ctx context.Context) ([]Gender, error)
	Plantillas(ctx context.Context) ([]PlantillaIA, error)

	CreateArea(ctx context.Context, userID uint, dto CreateAreaDTO) (*AreaEstudio, error)
	CreateTema(ctx context.Context, userID, areaID uint, dto CreateTemaDTO) (*TemaAreaEstudio, error)
	CreatePlantilla(ctx context.Context, userID uint, dto CreatePlantillaDTO) (*PlantillaIA, error)
}

type service struct {
	db   *gorm.DB
	repo Repository
}

func NewService(db *gorm.DB, repo Repository) Service {
	return &service{db: db, repo: repo}
}

func (s *service) Areas(ctx context.Context) ([]AreaEstudio, error) {
	return s.repo.ListAreas(ctx)
}

func (s *service) Temas(ctx context.Context, areaID uint) ([]TemaAreaEstudio, error) {
	if _, err := s.repo.FindArea(ctx, areaID); err != nil {
		return nil, err
	}
	return s.repo.ListTemasByArea(ctx, areaID)
}

func (s *service) Niveles(ctx context.Context) ([]NivelExamen, error) {
	return s.repo.ListNiveles(ctx)
}

func (s *service) EstadosExamen(ctx context.Context) ([]EstadoExamen, error) {
	return s.repo.ListEstadosExamen(ctx)
}

func (s *service) TiposPregunta(ctx context.Context) ([]TipoPregunta, error) {
	return s.repo.ListTiposPregunta(ctx)
}

func (s *service) Generos(ctx context.Context) ([]Gender, error) {
	return s.repo.ListGeneros(ctx)
}

func (s *service) Plantillas(ctx context.Context) ([]PlantillaIA, error) {
	return s.repo.ListPlantillas(ctx)
}

func (s *service) CreateArea(ctx context.Context, userID uint, dto CreateAreaDTO) (*AreaEstudio, error) {
	log := config.WithContext(ctx)

	area := AreaEstudio{Nombre: strings.TrimSpace(dto.Nombre), Descripcion: dto.Descripcion}
	area.IsActive = true
	area.Audit(userID)

	var count int64
	if err := s.db.WithContext(ctx).Model(&AreaEstudio{}).Where("nombre = ?", area.Nombre).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrAreaExists
	}

	if err := s.db.WithContext(ctx).Create(&area).Error; err != nil {
		log.WithError(err).Error("Failed to create area de estudio")
		return nil, err
	}

	log.WithField("area_id", area.ID).Info("Area de estudio created")
	return &area, nil
}

func (s *service) CreateTema(ctx context.Context, userID, areaID uint, dto CreateTemaDTO) (*TemaAreaEstudio, error) {
	log := config.WithContext(ctx)

	if _, err := s.repo.FindArea(ctx, areaID); err != nil {
		return nil, err
	}

	tema := TemaAreaEstudio{AreaID: areaID, Nombre: strings.TrimSpace(dto.Nombre), Descripcion: dto.Descripcion}
	tema.IsActive = true
	tema.Audit(userID)

	if err := s.db.WithContext(ctx).Create(&tema).Error; err != nil {
		log.WithError(err).Error("Failed to create tema")
		return nil, err
	}

	log.WithField("tema_id", tema.ID).Info("Tema created")
	return &tema, nil
}

func (s *service) CreatePlantilla(ctx context.Context, userID uint, dto CreatePlantillaDTO) (*PlantillaIA, error) {
	log := config.WithContext(ctx)

	plantilla := PlantillaIA{Nombre: strings.TrimSpace(dto.Nombre), Descripcion: dto.Descripcion, Prompt: dto.Prompt}
	plantilla.IsActive = true
	plantilla.Audit(userID)

	if err := s.db.WithContext(ctx).Create(&plantilla).Error; err != nil {
		log.WithError(err).Error("Failed to create plantilla")
		return nil, err
	}
	return &plantilla, nil
}

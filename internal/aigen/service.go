package aigen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/zelenmun/EvalUp/internal/auth"
	"github.com/zelenmun/EvalUp/internal/catalog"
	"github.com/zelenmun/EvalUp/internal/config"
	"github.com/zelenmun/EvalUp/internal/exam"
	"github.com/zelenmun/EvalUp/internal/user"
)

// maxPuntaje bounds a single generated question's score.
const maxPuntaje = 10

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrNoPersona    = errors.New("user has no persona")
)

type Service interface {
	Generate(ctx context.Context, req GenerationRequest) (*GenerationResponse, error)
	List(ctx context.Context) ([]GenerationSummary, error)
}

type service struct {
	db       *gorm.DB
	provider Provider
	exams    exam.ExamRepository
	catalog  catalog.Repository
	validate *validator.Validate
}

func NewService(db *gorm.DB, provider Provider, exams exam.ExamRepository, catalogRepo catalog.Repository) Service {
	return &service{
		db:       db,
		provider: provider,
		exams:    exams,
		catalog:  catalogRepo,
		validate: validator.New(),
	}
}

func personaFromContext(ctx context.Context, log logrus.FieldLogger) (*auth.Claims, error) {
	claims, err := auth.GetUserClaimsFromContext(ctx)
	if err != nil {
		log.WithError(err).Warn("Attempt to use generations without authentication")
		return nil, ErrUnauthorized
	}
	if claims.PersonaID == 0 {
		return nil, ErrNoPersona
	}
	return claims, nil
}

type generationContext struct {
	area      *catalog.AreaEstudio
	tema      *catalog.TemaAreaEstudio
	nivel     *catalog.NivelExamen
	plantilla *catalog.PlantillaIA
}

func (s *service) resolve(ctx context.Context, req GenerationRequest) (*generationContext, error) {
	gc := &generationContext{}
	var err error

	if gc.area, err = s.catalog.FindArea(ctx, req.AreaID); err != nil {
		return nil, err
	}
	if gc.nivel, err = s.catalog.FindNivel(ctx, req.NivelID); err != nil {
		return nil, err
	}
	if req.TemaID != nil {
		if gc.tema, err = s.catalog.FindTema(ctx, *req.TemaID); err != nil {
			return nil, err
		}
		if gc.tema.AreaID != gc.area.ID {
			return nil, catalog.ErrTemaNotFound
		}
	}
	if req.PlantillaID != nil {
		if gc.plantilla, err = s.catalog.FindPlantilla(ctx, *req.PlantillaID); err != nil {
			return nil, err
		}
	}
	return gc, nil
}

func (s *service) Generate(ctx context.Context, req GenerationRequest) (*GenerationResponse, error) {
	log := config.WithContext(ctx)

	claims, err := personaFromContext(ctx, log)
	if err != nil {
		return nil, err
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}

	gc, err := s.resolve(ctx, req)
	if err != nil {
		return nil, err
	}

	cantidad := ClampCantidad(req.Cantidad)
	in := PromptInput{Area: gc.area.Nombre, Nivel: gc.nivel.Nombre, Cantidad: cantidad, Contexto: req.Contexto}
	if gc.tema != nil {
		in.Tema = gc.tema.Nombre
	}
	var template *string
	if gc.plantilla != nil {
		template = gc.plantilla.Prompt
	}

	questions, err := s.provider.SendPrompt(ctx, SystemPrompt(template), BuildUserPrompt(in))
	if err != nil {
		return nil, err
	}
	if len(questions) > cantidad {
		questions = questions[:cantidad]
	}

	raw, err := json.Marshal(questions)
	if err != nil {
		return nil, err
	}

	titulo := gc.area.Nombre + " - " + gc.nivel.Nombre
	if gc.tema != nil {
		titulo = gc.area.Nombre + " - " + gc.tema.Nombre
	}

	var resp *GenerationResponse
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exams := s.exams.WithTx(tx)
		cat := s.catalog.WithTx(tx)

		pendiente, err := cat.EstadoExamen(ctx, catalog.EstadoExamenPendiente)
		if err != nil {
			return err
		}
		sinResponder, err := cat.EstadoPregunta(ctx, catalog.EstadoPreguntaSinResponder)
		if err != nil {
			return err
		}

		preguntas, maximo, err := buildPreguntas(ctx, cat, questions, sinResponder.ID, claims.UserID)
		if err != nil {
			return err
		}

		e := &exam.Examen{
			PersonaID:     claims.PersonaID,
			Titulo:        titulo,
			EstadoID:      &pendiente.ID,
			NivelID:       &gc.nivel.ID,
			AreaEstudioID: &gc.area.ID,
			PuntajeMaximo: decimal.NewNullDecimal(maximo),
		}
		if c := strings.TrimSpace(req.Contexto); c != "" {
			e.Descripcion = &c
		}
		e.IsActive = true
		e.Audit(claims.UserID)
		if err := exams.Create(ctx, e); err != nil {
			return fmt.Errorf("create examen: %w", err)
		}

		for _, p := range preguntas {
			p.ExamenID = e.ID
		}
		if err := exams.CreatePreguntas(ctx, preguntas); err != nil {
			return fmt.Errorf("create preguntas: %w", err)
		}

		if gc.tema != nil {
			if err := exams.LinkTemas(ctx, e, []uint{gc.tema.ID}); err != nil {
				return fmt.Errorf("link temas: %w", err)
			}
		}

		g := &exam.GeneracionIA{
			PersonaID:     &claims.PersonaID,
			AreaID:        &gc.area.ID,
			NivelID:       &gc.nivel.ID,
			ResultadoJSON: datatypes.JSON(raw),
			ExamenID:      &e.ID,
		}
		if gc.tema != nil {
			g.TemasID = &gc.tema.ID
		}
		g.IsActive = true
		g.Audit(claims.UserID)
		if err := exams.CreateGeneracion(ctx, g); err != nil {
			return fmt.Errorf("create generacion: %w", err)
		}

		h := &exam.HistorialExamen{ExamenID: e.ID, EstadoID: &pendiente.ID}
		h.IsActive = true
		h.Audit(claims.UserID)
		if err := exams.CreateHistorial(ctx, h); err != nil {
			return err
		}

		resp = &GenerationResponse{GeneracionID: g.ID, ExamenID: e.ID, Titulo: e.Titulo, Preguntas: len(preguntas)}
		return nil
	})
	if err != nil {
		log.WithError(err).Error("Failed to store generated exam")
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"exam_id":       resp.ExamenID,
		"generacion_id": resp.GeneracionID,
		"preguntas":     resp.Preguntas,
	}).Info("Exam generated")
	return resp, nil
}

// tipoFor maps the model's type label onto the catalog, guessing from the
// alternatives when the label is unknown.
func tipoFor(q Question) string {
	switch t := user.NormalizeText(strings.ReplaceAll(q.Tipo, "_", " ")); t {
	case catalog.TipoOpcionUnica, catalog.TipoOpcionMultiple, catalog.TipoVerdaderoFalso, catalog.TipoJustificacion:
		return t
	case "VERDADERO O FALSO", "VERDADERO/FALSO":
		return catalog.TipoVerdaderoFalso
	}
	switch {
	case len(q.Alternativas) == 0:
		return catalog.TipoJustificacion
	case strings.Contains(q.RespuestaCorrecta, ","):
		return catalog.TipoOpcionMultiple
	default:
		return catalog.TipoOpcionUnica
	}
}

func buildPreguntas(ctx context.Context, cat catalog.Repository, questions []Question, estadoID, userID uint) ([]*exam.Pregunta, decimal.Decimal, error) {
	tipos := make(map[string]uint)
	maximo := decimal.Zero
	preguntas := make([]*exam.Pregunta, 0, len(questions))

	for _, q := range questions {
		nombre := tipoFor(q)
		tipoID, ok := tipos[nombre]
		if !ok {
			tipo, err := cat.TipoPregunta(ctx, nombre)
			if err != nil {
				return nil, decimal.Zero, fmt.Errorf("tipo %s: %w", nombre, err)
			}
			tipoID = tipo.ID
			tipos[nombre] = tipoID
		}

		puntaje := questionPuntaje(q.Puntaje)
		maximo = maximo.Add(puntaje)

		alternativas := q.Alternativas
		if alternativas == nil {
			alternativas = []string{}
		}
		opciones, err := json.Marshal(alternativas)
		if err != nil {
			return nil, decimal.Zero, err
		}

		enunciado := strings.TrimSpace(q.Enunciado)
		p := &exam.Pregunta{
			Enunciado: &enunciado,
			TipoID:    &tipoID,
			Puntaje:   decimal.NewNullDecimal(puntaje),
			EstadoID:  &estadoID,
			Opciones:  datatypes.JSON(opciones),
			Clave:     strings.TrimSpace(q.RespuestaCorrecta),
		}
		if ex := strings.TrimSpace(q.Explicacion); ex != "" {
			p.Explicacion = &ex
		}
		p.IsActive = true
		p.Audit(userID)
		preguntas = append(preguntas, p)
	}
	return preguntas, maximo, nil
}

// questionPuntaje rounds a suggested score to cents. Values that round outside
// (0, maxPuntaje] fall back to one point.
func questionPuntaje(v *float64) decimal.Decimal {
	one := decimal.NewFromInt(1)
	if v == nil {
		return one
	}
	p := decimal.NewFromFloat(*v).Round(2)
	if !p.IsPositive() || p.GreaterThan(decimal.NewFromInt(maxPuntaje)) {
		return one
	}
	return p
}

func (s *service) List(ctx context.Context) ([]GenerationSummary, error) {
	log := config.WithContext(ctx)

	claims, err := personaFromContext(ctx, log)
	if err != nil {
		return nil, err
	}

	rows, err := s.exams.ListGeneraciones(ctx, claims.PersonaID)
	if err != nil {
		log.WithError(err).Error("Failed to list generations")
		return nil, err
	}

	ids := make([]uint, 0, len(rows))
	for _, g := range rows {
		if g.ExamenID != nil {
			ids = append(ids, *g.ExamenID)
		}
	}
	submitted, err := s.exams.SubmittedExamIDs(ctx, ids)
	if err != nil {
		log.WithError(err).Error("Failed to load exam states for generations")
		return nil, err
	}

	out := make([]GenerationSummary, 0, len(rows))
	for _, g := range rows {
		sum := GenerationSummary{ID: g.ID, ExamenID: g.ExamenID, ResultadoJSON: g.ResultadoJSON, CreatedAt: g.CreatedAt}
		if !claims.IsStaff() && (g.ExamenID == nil || !submitted[*g.ExamenID]) {
			sum.ResultadoJSON = exam.RedactResultado(g.ResultadoJSON)
		}
		if g.Area != nil {
			sum.Area = &g.Area.Nombre
		}
		if g.Temas != nil {
			sum.Tema = &g.Temas.Nombre
		}
		if g.Nivel != nil {
			sum.Nivel = &g.Nivel.Nombre
		}
		out = append(out, sum)
	}
	return out, nil
}

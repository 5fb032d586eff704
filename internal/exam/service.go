package exam

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/zelenmun/EvalUp/internal/auth"
	"github.com/zelenmun/EvalUp/internal/catalog"
	"github.com/zelenmun/EvalUp/internal/config"
)

var (
	ErrUnauthorized      = errors.New("unauthorized")
	ErrForbidden         = errors.New("forbidden")
	ErrNoPersona         = errors.New("user has no persona")
	ErrInvalidState      = errors.New("exam state does not allow this action")
	ErrPreguntaNotInExam = errors.New("pregunta does not belong to exam")
	ErrDuplicateAnswer   = errors.New("pregunta answered more than once")
)

type ExamService interface {
	Get(ctx context.Context, id uint) (*ExamDetail, error)
	Start(ctx context.Context, id uint) (*ExamDetail, error)
	Submit(ctx context.Context, id uint, dto SubmitDTO) (*ExamDetail, error)
	Grade(ctx context.Context, id uint, dto GradeDTO) (*ExamDetail, error)
	Delete(ctx context.Context, id uint) error
	History(ctx context.Context, id uint) ([]HistorialEntry, error)
}

type examService struct {
	db       *gorm.DB
	repo     ExamRepository
	catalog  catalog.Repository
	validate *validator.Validate
	now      func() time.Time
}

func NewService(db *gorm.DB, repo ExamRepository, catalogRepo catalog.Repository) ExamService {
	return &examService{
		db:       db,
		repo:     repo,
		catalog:  catalogRepo,
		validate: validator.New(),
		now:      time.Now,
	}
}

func claimsFromContext(ctx context.Context, log logrus.FieldLogger, action string) (*auth.Claims, error) {
	claims, err := auth.GetUserClaimsFromContext(ctx)
	if err != nil {
		log.WithError(err).Warnf("Attempt to %s without authentication", action)
		return nil, ErrUnauthorized
	}
	return claims, nil
}

// load returns the exam when the caller owns it or is staff.
func (s *examService) load(ctx context.Context, claims *auth.Claims, id uint) (*Examen, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if claims.IsStaff() {
		return e, nil
	}
	if claims.PersonaID == 0 || e.PersonaID != claims.PersonaID {
		return nil, ErrForbidden
	}
	return e, nil
}

func estadoNombre(e *Examen) string {
	if e.Estado == nil {
		return ""
	}
	return e.Estado.Nombre
}

// setEstado moves the exam to the named state and records it in the history.
func (s *examService) setEstado(ctx context.Context, tx *gorm.DB, e *Examen, nombre string, userID uint) error {
	estado, err := s.catalog.WithTx(tx).EstadoExamen(ctx, nombre)
	if err != nil {
		return fmt.Errorf("estado %s: %w", nombre, err)
	}
	e.EstadoID = &estado.ID
	e.Estado = estado

	h := &HistorialExamen{ExamenID: e.ID, EstadoID: &estado.ID}
	h.IsActive = true
	h.Audit(userID)
	return s.repo.WithTx(tx).CreateHistorial(ctx, h)
}

func (s *examService) Get(ctx context.Context, id uint) (*ExamDetail, error) {
	log := config.WithContext(ctx)
	claims, err := claimsFromContext(ctx, log, "read exam")
	if err != nil {
		return nil, err
	}

	e, err := s.load(ctx, claims, id)
	if err != nil {
		return nil, err
	}
	return ToDetail(e), nil
}

func (s *examService) Start(ctx context.Context, id uint) (*ExamDetail, error) {
	log := config.WithContext(ctx)
	claims, err := claimsFromContext(ctx, log, "start exam")
	if err != nil {
		return nil, err
	}

	e, err := s.load(ctx, claims, id)
	if err != nil {
		return nil, err
	}
	if e.PersonaID != claims.PersonaID {
		return nil, ErrForbidden
	}
	if estadoNombre(e) != catalog.EstadoExamenPendiente {
		log.WithField("estado", estadoNombre(e)).Warn("Exam cannot be started")
		return nil, ErrInvalidState
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		now := s.now().UTC()
		e.FechaExamen = &now
		e.Touch(claims.UserID)
		if err := s.setEstado(ctx, tx, e, catalog.EstadoExamenEnProceso, claims.UserID); err != nil {
			return err
		}
		return repo.Save(ctx, e)
	})
	if err != nil {
		log.WithError(err).Error("Failed to start exam")
		return nil, err
	}

	log.WithField("exam_id", e.ID).Info("Exam started")
	return ToDetail(e), nil
}

func (s *examService) Submit(ctx context.Context, id uint, dto SubmitDTO) (*ExamDetail, error) {
	log := config.WithContext(ctx)
	claims, err := claimsFromContext(ctx, log, "submit exam")
	if err != nil {
		return nil, err
	}
	if err := s.validate.Struct(dto); err != nil {
		return nil, err
	}

	e, err := s.load(ctx, claims, id)
	if err != nil {
		return nil, err
	}
	if e.PersonaID != claims.PersonaID {
		return nil, ErrForbidden
	}
	switch estadoNombre(e) {
	case catalog.EstadoExamenPendiente, catalog.EstadoExamenEnProceso, "":
	default:
		log.WithField("estado", estadoNombre(e)).Warn("Exam cannot receive answers")
		return nil, ErrInvalidState
	}

	preguntas := make(map[uint]*Pregunta, len(e.Preguntas))
	for i := range e.Preguntas {
		preguntas[e.Preguntas[i].ID] = &e.Preguntas[i]
	}

	seen := make(map[uint]bool, len(dto.Respuestas))
	for _, a := range dto.Respuestas {
		if _, ok := preguntas[a.PreguntaID]; !ok {
			return nil, fmt.Errorf("%w: %d", ErrPreguntaNotInExam, a.PreguntaID)
		}
		if seen[a.PreguntaID] {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateAnswer, a.PreguntaID)
		}
		seen[a.PreguntaID] = true
	}

	respondida, err := s.catalog.EstadoPregunta(ctx, catalog.EstadoPreguntaRespondida)
	if err != nil {
		return nil, err
	}
	noRespondida, err := s.catalog.EstadoPregunta(ctx, catalog.EstadoPreguntaNoRespondida)
	if err != nil {
		return nil, err
	}

	obtenido := decimal.Zero
	pendingManual := false
	var answered, unanswered []uint
	var respuestas []*Respuesta

	for _, a := range dto.Respuestas {
		p := preguntas[a.PreguntaID]
		tipo := ""
		if p.Tipo != nil {
			tipo = p.Tipo.Nombre
		}

		correct, manual := Grade(tipo, p.Clave, a.Texto)
		if manual {
			pendingManual = true
		}

		texto := a.Texto
		r := &Respuesta{
			PreguntaID:    p.ID,
			Texto:         &texto,
			EsCorrecta:    correct,
			Justificacion: a.Justificacion,
			EsVofID:       &claims.PersonaID,
		}
		r.IsActive = true
		r.Audit(claims.UserID)
		if correct {
			r.Puntaje = decimal.NewNullDecimal(Score(p.Puntaje))
			obtenido = obtenido.Add(Score(p.Puntaje))
		} else if !manual {
			r.Puntaje = decimal.NewNullDecimal(decimal.Zero)
		}

		respuestas = append(respuestas, r)
		answered = append(answered, p.ID)
	}
	for pid := range preguntas {
		if !seen[pid] {
			unanswered = append(unanswered, pid)
		}
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		if err := repo.CreateRespuestas(ctx, respuestas); err != nil {
			return fmt.Errorf("create respuestas: %w", err)
		}
		if err := repo.UpdatePreguntaEstado(ctx, answered, respondida.ID); err != nil {
			return err
		}
		if err := repo.UpdatePreguntaEstado(ctx, unanswered, noRespondida.ID); err != nil {
			return err
		}

		now := s.now().UTC()
		if e.FechaExamen != nil {
			secs := int64(now.Sub(*e.FechaExamen).Seconds())
			e.Duracion = &secs
		} else {
			e.FechaExamen = &now
		}

		maximo := Score(e.PuntajeMaximo)
		if !e.PuntajeMaximo.Valid {
			for _, p := range preguntas {
				maximo = maximo.Add(Score(p.Puntaje))
			}
			e.PuntajeMaximo = decimal.NewNullDecimal(maximo)
		}
		e.PuntajeObtenido = decimal.NewNullDecimal(obtenido)
		grade := Calificacion(obtenido, maximo)
		e.Calificacion = &grade
		e.Touch(claims.UserID)

		next := catalog.EstadoExamenCalificado
		if pendingManual {
			next = catalog.EstadoExamenCompletado
		}
		if err := s.setEstado(ctx, tx, e, next, claims.UserID); err != nil {
			return err
		}
		return repo.Save(ctx, e)
	})
	if err != nil {
		log.WithError(err).Error("Failed to submit exam answers")
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"exam_id":      e.ID,
		"answers":      len(respuestas),
		"calificacion": *e.Calificacion,
	}).Info("Exam answers submitted")

	return s.reload(ctx, e.ID)
}

func (s *examService) Grade(ctx context.Context, id uint, dto GradeDTO) (*ExamDetail, error) {
	log := config.WithContext(ctx)
	claims, err := claimsFromContext(ctx, log, "grade exam")
	if err != nil {
		return nil, err
	}
	if !claims.IsStaff() {
		return nil, ErrForbidden
	}
	if err := s.validate.Struct(dto); err != nil {
		return nil, err
	}

	e, err := s.load(ctx, claims, id)
	if err != nil {
		return nil, err
	}
	if estadoNombre(e) == catalog.EstadoExamenCancelado {
		return nil, ErrInvalidState
	}

	owned := make(map[uint]bool)
	for _, p := range e.Preguntas {
		for _, r := range p.Respuestas {
			owned[r.ID] = true
		}
	}
	for _, a := range dto.Respuestas {
		if !owned[a.RespuestaID] {
			return nil, fmt.Errorf("%w: %d", ErrRespuestaNotFound, a.RespuestaID)
		}
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		for _, a := range dto.Respuestas {
			r, err := repo.GetRespuesta(ctx, a.RespuestaID)
			if err != nil {
				return err
			}
			r.EsCorrecta = a.EsCorrecta
			if a.Puntaje != nil {
				r.Puntaje = decimal.NewNullDecimal(decimal.NewFromFloat(*a.Puntaje))
			}
			if a.Justificacion != nil {
				r.Justificacion = a.Justificacion
			}
			r.Touch(claims.UserID)
			if err := repo.SaveRespuesta(ctx, r); err != nil {
				return err
			}
		}

		switch {
		case dto.PuntajeObtenido != nil:
			e.PuntajeObtenido = decimal.NewNullDecimal(decimal.NewFromFloat(*dto.PuntajeObtenido))
		case len(dto.Respuestas) > 0:
			total, err := repo.SumRespuestaPuntaje(ctx, e.ID)
			if err != nil {
				return err
			}
			e.PuntajeObtenido = decimal.NewNullDecimal(decimal.NewFromFloat(total))
		}

		e.Calificacion = dto.Calificacion
		if claims.PersonaID != 0 {
			e.CalificadoPorID = &claims.PersonaID
		}
		e.Touch(claims.UserID)

		if err := s.setEstado(ctx, tx, e, catalog.EstadoExamenCalificado, claims.UserID); err != nil {
			return err
		}
		return repo.Save(ctx, e)
	})
	if err != nil {
		log.WithError(err).Error("Failed to grade exam")
		return nil, err
	}

	log.WithFields(logrus.Fields{"exam_id": e.ID, "calificacion": *dto.Calificacion}).Info("Exam graded")
	return s.reload(ctx, e.ID)
}

func (s *examService) Delete(ctx context.Context, id uint) error {
	log := config.WithContext(ctx)
	claims, err := claimsFromContext(ctx, log, "delete exam")
	if err != nil {
		return err
	}

	if _, err := s.load(ctx, claims, id); err != nil {
		return err
	}
	if err := s.repo.SoftDelete(ctx, id, claims.UserID); err != nil {
		log.WithError(err).Error("Failed to delete exam")
		return err
	}

	log.WithField("exam_id", id).Info("Exam deleted")
	return nil
}

func (s *examService) History(ctx context.Context, id uint) ([]HistorialEntry, error) {
	log := config.WithContext(ctx)
	claims, err := claimsFromContext(ctx, log, "read exam history")
	if err != nil {
		return nil, err
	}

	if _, err := s.load(ctx, claims, id); err != nil {
		return nil, err
	}

	rows, err := s.repo.ListHistorial(ctx, id)
	if err != nil {
		return nil, err
	}

	entries := make([]HistorialEntry, 0, len(rows))
	for _, h := range rows {
		entry := HistorialEntry{ID: h.ID, CreatedAt: h.CreatedAt}
		if h.Estado != nil {
			nombre := h.Estado.Nombre
			entry.Estado = &nombre
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (s *examService) reload(ctx context.Context, id uint) (*ExamDetail, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToDetail(e), nil
}

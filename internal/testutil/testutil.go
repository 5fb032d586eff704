// Package testutil builds in-memory databases and fixtures for package tests.
package testutil

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/zelenmun/EvalUp/internal/auth"
	"github.com/zelenmun/EvalUp/internal/catalog"
	"github.com/zelenmun/EvalUp/internal/config"
	"github.com/zelenmun/EvalUp/internal/database"
	"github.com/zelenmun/EvalUp/internal/exam"
	"github.com/zelenmun/EvalUp/internal/user"
)

const (
	JWTSecret = "test-secret-for-package-tests"
	CryptoKey = "0123456789abcdef0123456789abcdef"
)

var seq atomic.Int64

func init() {
	auth.Init(JWTSecret)
	config.InitCrypto(CryptoKey)
}

// NewDB returns a migrated and seeded in-memory SQLite database.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := config.Open(config.DriverSQLite, ":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(context.Background(), db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// CreatePersona inserts an active account with its persona.
func CreatePersona(t *testing.T, db *gorm.DB, nombre, apellido string, staff bool) *user.Persona {
	t.Helper()

	n := seq.Add(1)
	hash, err := auth.HashPassword("Secreta1!")
	require.NoError(t, err)

	u := &user.User{
		Username:     fmt.Sprintf("user%d", n),
		Email:        fmt.Sprintf("user%d@evalup.test", n),
		PasswordHash: hash,
		FirstName:    nombre,
		LastName:     apellido,
		IsStaff:      staff,
		IsActive:     true,
	}
	require.NoError(t, db.Create(u).Error)

	p := &user.Persona{UserID: u.ID, Nombre1: nombre, Apellido1: apellido, Correo: &u.Email}
	p.IsActive = true
	require.NoError(t, db.Create(p).Error)
	p.User = u
	return p
}

// Context returns a context authenticated as the persona's account.
func Context(p *user.Persona) context.Context {
	role := auth.RoleStudent
	if p.User != nil && p.User.IsStaff {
		role = auth.RoleStaff
	}
	return auth.ContextWithClaims(context.Background(), &auth.Claims{
		UserID:    p.UserID,
		PersonaID: p.ID,
		Role:      role,
	})
}

// Token signs a JWT for the persona's account.
func Token(t *testing.T, p *user.Persona) string {
	t.Helper()

	role := auth.RoleStudent
	if p.User != nil && p.User.IsStaff {
		role = auth.RoleStaff
	}
	token, err := auth.GenerateJWT(p.UserID, p.ID, role, time.Hour)
	require.NoError(t, err)
	return token
}

func CreateArea(t *testing.T, db *gorm.DB, nombre string) *catalog.AreaEstudio {
	t.Helper()

	a := &catalog.AreaEstudio{Nombre: nombre}
	a.IsActive = true
	require.NoError(t, db.Create(a).Error)
	return a
}

func CreateTema(t *testing.T, db *gorm.DB, area *catalog.AreaEstudio, nombre string) *catalog.TemaAreaEstudio {
	t.Helper()

	tema := &catalog.TemaAreaEstudio{AreaID: area.ID, Nombre: nombre}
	tema.IsActive = true
	require.NoError(t, db.Create(tema).Error)
	tema.Area = area
	return tema
}

func Nivel(t *testing.T, db *gorm.DB, nombre string) *catalog.NivelExamen {
	t.Helper()

	var n catalog.NivelExamen
	require.NoError(t, db.Where("nombre = ?", nombre).First(&n).Error)
	return &n
}

func EstadoExamen(t *testing.T, db *gorm.DB, nombre string) *catalog.EstadoExamen {
	t.Helper()

	var e catalog.EstadoExamen
	require.NoError(t, db.Where("nombre = ?", nombre).First(&e).Error)
	return &e
}

// QuestionSpec describes a question for CreateExam.
type QuestionSpec struct {
	Tipo    string
	Clave   string
	Puntaje float64
}

// ExamSpec describes an exam for CreateExam. Zero values leave relations unset.
type ExamSpec struct {
	Titulo       string
	Estado       string
	Area         *catalog.AreaEstudio
	Nivel        *catalog.NivelExamen
	Temas        []*catalog.TemaAreaEstudio
	FechaExamen  *time.Time
	Calificacion *int
	Obtenido     *float64
	Maximo       *float64
	Preguntas    []QuestionSpec
}

// CreateExam inserts an exam with its questions and returns it with IDs set.
func CreateExam(t *testing.T, db *gorm.DB, owner *user.Persona, opts ExamSpec) *exam.Examen {
	t.Helper()

	if opts.Titulo == "" {
		opts.Titulo = fmt.Sprintf("Examen %d", seq.Add(1))
	}

	e := &exam.Examen{
		PersonaID:    owner.ID,
		Titulo:       opts.Titulo,
		FechaExamen:  opts.FechaExamen,
		Calificacion: opts.Calificacion,
	}
	e.IsActive = true
	if opts.Estado != "" {
		e.EstadoID = &EstadoExamen(t, db, opts.Estado).ID
	}
	if opts.Area != nil {
		e.AreaEstudioID = &opts.Area.ID
	}
	if opts.Nivel != nil {
		e.NivelID = &opts.Nivel.ID
	}
	if opts.Obtenido != nil {
		e.PuntajeObtenido = decimal.NewNullDecimal(decimal.NewFromFloat(*opts.Obtenido))
	}
	if opts.Maximo != nil {
		e.PuntajeMaximo = decimal.NewNullDecimal(decimal.NewFromFloat(*opts.Maximo))
	}
	require.NoError(t, db.Omit("Temas", "Preguntas", "GeneracionIA").Create(e).Error)

	for _, tema := range opts.Temas {
		require.NoError(t, db.Exec("INSERT INTO examen_temas (examen_id, tema_area_estudio_id) VALUES (?, ?)", e.ID, tema.ID).Error)
	}

	var sinResponder catalog.EstadoPregunta
	require.NoError(t, db.Where("nombre = ?", catalog.EstadoPreguntaSinResponder).First(&sinResponder).Error)

	for i, q := range opts.Preguntas {
		var tipo catalog.TipoPregunta
		require.NoError(t, db.Where("nombre = ?", q.Tipo).First(&tipo).Error)

		enunciado := fmt.Sprintf("Pregunta %d", i+1)
		p := exam.Pregunta{
			ExamenID:  e.ID,
			Enunciado: &enunciado,
			TipoID:    &tipo.ID,
			EstadoID:  &sinResponder.ID,
			Puntaje:   decimal.NewNullDecimal(decimal.NewFromFloat(q.Puntaje)),
			Clave:     q.Clave,
			Opciones:  []byte(`["A) uno","B) dos","C) tres","D) cuatro"]`),
		}
		p.IsActive = true
		require.NoError(t, db.Omit("Respuestas").Create(&p).Error)
		e.Preguntas = append(e.Preguntas, p)
	}
	return e
}

// AddRespuesta stores an answer for a question, bypassing grading.
func AddRespuesta(t *testing.T, db *gorm.DB, p *exam.Pregunta, by *user.Persona, correct bool, puntaje float64) *exam.Respuesta {
	t.Helper()

	texto := "respuesta"
	r := &exam.Respuesta{
		PreguntaID: p.ID,
		Texto:      &texto,
		EsCorrecta: correct,
		Puntaje:    decimal.NewNullDecimal(decimal.NewFromFloat(puntaje)),
	}
	if by != nil {
		r.EsVofID = &by.ID
	}
	r.IsActive = true
	require.NoError(t, db.Create(r).Error)
	return r
}

func IntPtr(v int) *int { return &v }

func FloatPtr(v float64) *float64 { return &v }

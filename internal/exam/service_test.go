package exam_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/zelenmun/EvalUp/internal/catalog"
	"github.com/zelenmun/EvalUp/internal/exam"
	"github.com/zelenmun/EvalUp/internal/testutil"
)

func newService(db *gorm.DB) exam.ExamService {
	return exam.NewService(db, exam.NewRepository(db), catalog.NewRepository(db))
}

func mixedExam(t *testing.T, db *gorm.DB) (*exam.Examen, context.Context) {
	owner := testutil.CreatePersona(t, db, "Ana", "Torres", false)
	e := testutil.CreateExam(t, db, owner, testutil.ExamSpec{
		Estado: catalog.EstadoExamenPendiente,
		Preguntas: []testutil.QuestionSpec{
			{Tipo: catalog.TipoOpcionUnica, Clave: "B", Puntaje: 2},
			{Tipo: catalog.TipoOpcionMultiple, Clave: "A,C", Puntaje: 2},
			{Tipo: catalog.TipoVerdaderoFalso, Clave: "FALSO", Puntaje: 1},
		},
	})
	return e, testutil.Context(owner)
}

func TestSubmitAutoGrades(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newService(db)
	e, ctx := mixedExam(t, db)

	started, err := svc.Start(ctx, e.ID)
	require.NoError(t, err)
	require.NotNil(t, started.Estado)
	assert.Equal(t, catalog.EstadoExamenEnProceso, *started.Estado)
	assert.NotNil(t, started.FechaExamen)

	detail, err := svc.Submit(ctx, e.ID, exam.SubmitDTO{Respuestas: []exam.AnswerDTO{
		{PreguntaID: e.Preguntas[0].ID, Texto: "b) dos"},
		{PreguntaID: e.Preguntas[1].ID, Texto: "A"},
		{PreguntaID: e.Preguntas[2].ID, Texto: "falso"},
	}})
	require.NoError(t, err)

	assert.Equal(t, catalog.EstadoExamenCalificado, *detail.Estado)
	assert.Equal(t, 5.0, detail.PuntajeMaximo)
	assert.Equal(t, 3.0, detail.PuntajeObtenido)
	require.NotNil(t, detail.Calificacion)
	assert.Equal(t, 60, *detail.Calificacion)
	assert.NotNil(t, detail.DuracionMinutos)

	require.Len(t, detail.Preguntas, 3)
	for i, want := range []bool{true, false, true} {
		p := detail.Preguntas[i]
		require.Len(t, p.Respuestas, 1)
		assert.Equal(t, want, p.Respuestas[0].EsCorrecta, "pregunta %d", i)
		assert.Equal(t, catalog.EstadoPreguntaRespondida, *p.Estado)
	}

	t.Run("SecondSubmitRejected", func(t *testing.T) {
		_, err := svc.Submit(ctx, e.ID, exam.SubmitDTO{Respuestas: []exam.AnswerDTO{
			{PreguntaID: e.Preguntas[0].ID, Texto: "B"},
		}})
		assert.ErrorIs(t, err, exam.ErrInvalidState)
	})

	t.Run("History", func(t *testing.T) {
		entries, err := svc.History(ctx, e.ID)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, catalog.EstadoExamenEnProceso, *entries[0].Estado)
		assert.Equal(t, catalog.EstadoExamenCalificado, *entries[1].Estado)
	})
}

func TestSubmitMarksUnanswered(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newService(db)
	e, ctx := mixedExam(t, db)

	detail, err := svc.Submit(ctx, e.ID, exam.SubmitDTO{Respuestas: []exam.AnswerDTO{
		{PreguntaID: e.Preguntas[0].ID, Texto: "B"},
	}})
	require.NoError(t, err)

	assert.Equal(t, 40, *detail.Calificacion)
	assert.Equal(t, catalog.EstadoPreguntaRespondida, *detail.Preguntas[0].Estado)
	assert.Equal(t, catalog.EstadoPreguntaNoRespondida, *detail.Preguntas[1].Estado)
	assert.Equal(t, catalog.EstadoPreguntaNoRespondida, *detail.Preguntas[2].Estado)
}

func TestSubmitValidation(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newService(db)
	e, ctx := mixedExam(t, db)

	t.Run("ForeignQuestion", func(t *testing.T) {
		_, err := svc.Submit(ctx, e.ID, exam.SubmitDTO{Respuestas: []exam.AnswerDTO{{PreguntaID: 9999, Texto: "A"}}})
		assert.ErrorIs(t, err, exam.ErrPreguntaNotInExam)
	})

	t.Run("Duplicate", func(t *testing.T) {
		_, err := svc.Submit(ctx, e.ID, exam.SubmitDTO{Respuestas: []exam.AnswerDTO{
			{PreguntaID: e.Preguntas[0].ID, Texto: "A"},
			{PreguntaID: e.Preguntas[0].ID, Texto: "B"},
		}})
		assert.ErrorIs(t, err, exam.ErrDuplicateAnswer)
	})

	t.Run("Empty", func(t *testing.T) {
		_, err := svc.Submit(ctx, e.ID, exam.SubmitDTO{})
		assert.Error(t, err)
	})

	t.Run("NotOwner", func(t *testing.T) {
		other := testutil.CreatePersona(t, db, "Luis", "Vera", false)
		_, err := svc.Submit(testutil.Context(other), e.ID, exam.SubmitDTO{Respuestas: []exam.AnswerDTO{
			{PreguntaID: e.Preguntas[0].ID, Texto: "B"},
		}})
		assert.ErrorIs(t, err, exam.ErrForbidden)
	})

	t.Run("Unauthenticated", func(t *testing.T) {
		_, err := svc.Get(context.Background(), e.ID)
		assert.ErrorIs(t, err, exam.ErrUnauthorized)
	})
}

func TestJustificationNeedsManualGrade(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newService(db)

	owner := testutil.CreatePersona(t, db, "Ana", "Torres", false)
	staff := testutil.CreatePersona(t, db, "Marta", "Ruiz", true)
	e := testutil.CreateExam(t, db, owner, testutil.ExamSpec{
		Estado: catalog.EstadoExamenPendiente,
		Preguntas: []testutil.QuestionSpec{
			{Tipo: catalog.TipoOpcionUnica, Clave: "A", Puntaje: 1},
			{Tipo: catalog.TipoJustificacion, Puntaje: 3},
		},
	})

	detail, err := svc.Submit(testutil.Context(owner), e.ID, exam.SubmitDTO{Respuestas: []exam.AnswerDTO{
		{PreguntaID: e.Preguntas[0].ID, Texto: "A"},
		{PreguntaID: e.Preguntas[1].ID, Texto: "Porque la energia se conserva"},
	}})
	require.NoError(t, err)
	assert.Equal(t, catalog.EstadoExamenCompletado, *detail.Estado)
	assert.Equal(t, 25, *detail.Calificacion)

	justificacion := detail.Preguntas[1].Respuestas[0]

	t.Run("StudentCannotGrade", func(t *testing.T) {
		_, err := svc.Grade(testutil.Context(owner), e.ID, exam.GradeDTO{Calificacion: testutil.IntPtr(100)})
		assert.ErrorIs(t, err, exam.ErrForbidden)
	})

	t.Run("StaffGrades", func(t *testing.T) {
		graded, err := svc.Grade(testutil.Context(staff), e.ID, exam.GradeDTO{
			Calificacion: testutil.IntPtr(100),
			Respuestas: []exam.GradeAnswerDTO{
				{RespuestaID: justificacion.ID, EsCorrecta: true, Puntaje: testutil.FloatPtr(3)},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, catalog.EstadoExamenCalificado, *graded.Estado)
		assert.Equal(t, 100, *graded.Calificacion)
		assert.Equal(t, 4.0, graded.PuntajeObtenido)
		assert.True(t, graded.Preguntas[1].Respuestas[0].EsCorrecta)

		var stored exam.Examen
		require.NoError(t, db.First(&stored, e.ID).Error)
		require.NotNil(t, stored.CalificadoPorID)
		assert.Equal(t, staff.ID, *stored.CalificadoPorID)
	})

	t.Run("UnknownRespuesta", func(t *testing.T) {
		_, err := svc.Grade(testutil.Context(staff), e.ID, exam.GradeDTO{
			Calificacion: testutil.IntPtr(50),
			Respuestas:   []exam.GradeAnswerDTO{{RespuestaID: 9999}},
		})
		assert.ErrorIs(t, err, exam.ErrRespuestaNotFound)
	})
}

func TestGetHidesAnswerKey(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newService(db)
	e, ctx := mixedExam(t, db)

	detail, err := svc.Get(ctx, e.ID)
	require.NoError(t, err)

	raw, err := json.Marshal(detail)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "clave")
	assert.NotContains(t, string(raw), "explicacion")
	assert.Len(t, detail.Preguntas, 3)

	t.Run("OtherStudentForbidden", func(t *testing.T) {
		other := testutil.CreatePersona(t, db, "Luis", "Vera", false)
		_, err := svc.Get(testutil.Context(other), e.ID)
		assert.ErrorIs(t, err, exam.ErrForbidden)
	})

	t.Run("StaffAllowed", func(t *testing.T) {
		staff := testutil.CreatePersona(t, db, "Marta", "Ruiz", true)
		_, err := svc.Get(testutil.Context(staff), e.ID)
		assert.NoError(t, err)
	})
}

func TestDeleteIsSoft(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newService(db)
	e, ctx := mixedExam(t, db)

	require.NoError(t, svc.Delete(ctx, e.ID))

	_, err := svc.Get(ctx, e.ID)
	assert.ErrorIs(t, err, exam.ErrExamNotFound)

	var stored exam.Examen
	require.NoError(t, db.First(&stored, e.ID).Error)
	assert.False(t, stored.IsActive)
}

func TestStartRequiresPendiente(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newService(db)

	owner := testutil.CreatePersona(t, db, "Ana", "Torres", false)
	e := testutil.CreateExam(t, db, owner, testutil.ExamSpec{Estado: catalog.EstadoExamenCancelado})

	_, err := svc.Start(testutil.Context(owner), e.ID)
	assert.ErrorIs(t, err, exam.ErrInvalidState)
}

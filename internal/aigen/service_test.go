package aigen_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/zelenmun/EvalUp/internal/aigen"
	"github.com/zelenmun/EvalUp/internal/catalog"
	"github.com/zelenmun/EvalUp/internal/exam"
	"github.com/zelenmun/EvalUp/internal/report"
	"github.com/zelenmun/EvalUp/internal/testutil"
)

type fakeProvider struct {
	questions []aigen.Question
	err       error
	system    string
	user      string
}

func (f *fakeProvider) SendPrompt(_ context.Context, system, user string) ([]aigen.Question, error) {
	f.system, f.user = system, user
	return f.questions, f.err
}

func puntos(v float64) *float64 { return &v }

func sampleQuestions() []aigen.Question {
	return []aigen.Question{
		{Enunciado: "¿Cuánto es 1/2 + 1/2?", Tipo: "opcion_unica", Alternativas: []string{"A) 1", "B) 2"}, RespuestaCorrecta: "A", Explicacion: "Dos mitades suman uno", Puntaje: puntos(2)},
		{Enunciado: "Seleccione las fracciones propias", Tipo: "OPCIÓN MÚLTIPLE", Alternativas: []string{"A) 1/3", "B) 5/4", "C) 2/7"}, RespuestaCorrecta: "A,C"},
		{Enunciado: "3/3 es igual a 1", Tipo: "Verdadero o Falso", Alternativas: []string{"VERDADERO", "FALSO"}, RespuestaCorrecta: "VERDADERO"},
		{Enunciado: "Explique qué es un denominador", Tipo: "desconocido", RespuestaCorrecta: "La parte de abajo"},
	}
}

func setup(t *testing.T, provider aigen.Provider) (*gorm.DB, aigen.Service, exam.ExamService) {
	db := testutil.NewDB(t)
	examRepo := exam.NewRepository(db)
	catalogRepo := catalog.NewRepository(db)
	return db, aigen.NewService(db, provider, examRepo, catalogRepo), exam.NewService(db, examRepo, catalogRepo)
}

func TestGenerateStoresExam(t *testing.T) {
	provider := &fakeProvider{questions: sampleQuestions()}
	db, svc, exams := setup(t, provider)

	owner := testutil.CreatePersona(t, db, "Luis", "Mena", false)
	area := testutil.CreateArea(t, db, "Matemáticas")
	tema := testutil.CreateTema(t, db, area, "Fracciones")
	nivel := testutil.Nivel(t, db, catalog.NivelBasico)
	ctx := testutil.Context(owner)

	resp, err := svc.Generate(ctx, aigen.GenerationRequest{
		AreaID:   area.ID,
		TemaID:   &tema.ID,
		NivelID:  nivel.ID,
		Cantidad: 4,
		Contexto: "repaso para la prueba",
	})
	require.NoError(t, err)
	assert.Equal(t, "Matemáticas - Fracciones", resp.Titulo)
	assert.Equal(t, 4, resp.Preguntas)
	assert.Contains(t, provider.user, "Genera 4 preguntas")
	assert.Contains(t, provider.user, "repaso para la prueba")

	detail, err := exams.Get(ctx, resp.ExamenID)
	require.NoError(t, err)
	assert.Equal(t, owner.ID, detail.PersonaID)
	assert.Equal(t, catalog.EstadoExamenPendiente, *detail.Estado)
	assert.Equal(t, "Matemáticas", *detail.AreaEstudio)
	assert.Equal(t, catalog.NivelBasico, *detail.Nivel)
	assert.Equal(t, []string{"Fracciones"}, detail.Temas)
	assert.Equal(t, 5.0, detail.PuntajeMaximo)

	require.Len(t, detail.Preguntas, 4)
	wantTipos := []string{catalog.TipoOpcionUnica, catalog.TipoOpcionMultiple, catalog.TipoVerdaderoFalso, catalog.TipoJustificacion}
	for i, p := range detail.Preguntas {
		assert.Equal(t, wantTipos[i], *p.Tipo)
		assert.Equal(t, catalog.EstadoPreguntaSinResponder, *p.Estado)
		assert.Nil(t, p.Explicacion)
	}
	assert.JSONEq(t, `["A) 1","B) 2"]`, string(detail.Preguntas[0].Opciones))
	assert.JSONEq(t, `[]`, string(detail.Preguntas[3].Opciones))

	history, err := exams.History(ctx, resp.ExamenID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, catalog.EstadoExamenPendiente, *history[0].Estado)

	var stored exam.Pregunta
	require.NoError(t, db.First(&stored, detail.Preguntas[1].ID).Error)
	assert.Equal(t, "A,C", stored.Clave)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, resp.GeneracionID, list[0].ID)
	require.NotNil(t, list[0].ExamenID)
	assert.Equal(t, resp.ExamenID, *list[0].ExamenID)
	assert.Equal(t, "Fracciones", *list[0].Tema)
	assert.Contains(t, string(list[0].ResultadoJSON), "denominador")
}

func TestAnswerKeyHiddenUntilSubmitted(t *testing.T) {
	provider := &fakeProvider{questions: sampleQuestions()}
	db, svc, exams := setup(t, provider)
	reports := report.NewService(report.NewRepository(db))

	owner := testutil.CreatePersona(t, db, "Luis", "Mena", false)
	area := testutil.CreateArea(t, db, "Matemáticas")
	nivel := testutil.Nivel(t, db, catalog.NivelBasico)
	ctx := testutil.Context(owner)

	resp, err := svc.Generate(ctx, aigen.GenerationRequest{AreaID: area.ID, NivelID: nivel.ID, Cantidad: 4})
	require.NoError(t, err)

	rendered := func(t *testing.T) (string, string) {
		t.Helper()
		list, err := svc.List(ctx)
		require.NoError(t, err)
		listed, err := json.Marshal(list)
		require.NoError(t, err)

		overview, err := reports.StudentOverview(ctx, owner.ID)
		require.NoError(t, err)
		dashboard, err := json.Marshal(overview)
		require.NoError(t, err)
		return string(listed), string(dashboard)
	}

	listed, dashboard := rendered(t)
	for _, out := range []string{listed, dashboard} {
		assert.Contains(t, out, "enunciado")
		assert.NotContains(t, out, "respuesta_correcta")
		assert.NotContains(t, out, "Dos mitades suman uno")
	}

	detail, err := exams.Start(ctx, resp.ExamenID)
	require.NoError(t, err)
	listed, dashboard = rendered(t)
	assert.NotContains(t, listed, "respuesta_correcta")
	assert.NotContains(t, dashboard, "respuesta_correcta")

	_, err = exams.Submit(ctx, resp.ExamenID, exam.SubmitDTO{
		Respuestas: []exam.AnswerDTO{{PreguntaID: detail.Preguntas[0].ID, Texto: "A"}},
	})
	require.NoError(t, err)

	listed, dashboard = rendered(t)
	for _, out := range []string{listed, dashboard} {
		assert.Contains(t, out, "respuesta_correcta")
		assert.Contains(t, out, "Dos mitades suman uno")
	}
}

func TestStaffSeesAnswerKeyOfOwnGenerations(t *testing.T) {
	provider := &fakeProvider{questions: sampleQuestions()}
	db, svc, _ := setup(t, provider)

	docente := testutil.CreatePersona(t, db, "Marta", "Ríos", true)
	area := testutil.CreateArea(t, db, "Matemáticas")
	nivel := testutil.Nivel(t, db, catalog.NivelBasico)
	ctx := testutil.Context(docente)

	_, err := svc.Generate(ctx, aigen.GenerationRequest{AreaID: area.ID, NivelID: nivel.ID})
	require.NoError(t, err)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Contains(t, string(list[0].ResultadoJSON), "respuesta_correcta")
}

func TestGenerateBoundsSuggestedPuntaje(t *testing.T) {
	provider := &fakeProvider{questions: []aigen.Question{
		{Enunciado: "a", Tipo: "opcion_unica", Alternativas: []string{"A) 1"}, RespuestaCorrecta: "A", Puntaje: puntos(150)},
		{Enunciado: "b", Tipo: "opcion_unica", Alternativas: []string{"A) 1"}, RespuestaCorrecta: "A", Puntaje: puntos(0.333)},
		{Enunciado: "c", Tipo: "opcion_unica", Alternativas: []string{"A) 1"}, RespuestaCorrecta: "A", Puntaje: puntos(-2)},
		{Enunciado: "d", Tipo: "opcion_unica", Alternativas: []string{"A) 1"}, RespuestaCorrecta: "A", Puntaje: puntos(0.001)},
		{Enunciado: "e", Tipo: "opcion_unica", Alternativas: []string{"A) 1"}, RespuestaCorrecta: "A", Puntaje: puntos(10)},
	}}
	db, svc, exams := setup(t, provider)

	owner := testutil.CreatePersona(t, db, "Ana", "Torres", false)
	area := testutil.CreateArea(t, db, "Química")
	nivel := testutil.Nivel(t, db, catalog.NivelBasico)
	ctx := testutil.Context(owner)

	resp, err := svc.Generate(ctx, aigen.GenerationRequest{AreaID: area.ID, NivelID: nivel.ID})
	require.NoError(t, err)

	detail, err := exams.Get(ctx, resp.ExamenID)
	require.NoError(t, err)
	require.Len(t, detail.Preguntas, 5)

	want := []float64{1, 0.33, 1, 1, 10}
	var sum float64
	for i, p := range detail.Preguntas {
		assert.InDelta(t, want[i], p.Puntaje, 1e-9, "pregunta %d", i)
		sum += p.Puntaje
	}
	assert.InDelta(t, 13.33, detail.PuntajeMaximo, 1e-9)
	assert.InDelta(t, sum, detail.PuntajeMaximo, 1e-9)
}

func TestGenerateTrimsToCantidadAndUsesTemplate(t *testing.T) {
	provider := &fakeProvider{questions: sampleQuestions()}
	db, svc, _ := setup(t, provider)

	owner := testutil.CreatePersona(t, db, "Eva", "Paz", false)
	area := testutil.CreateArea(t, db, "Historia")
	nivel := testutil.Nivel(t, db, catalog.NivelAvanzado)
	prompt := "Eres un historiador exigente"
	plantilla := &catalog.PlantillaIA{Nombre: "Historia", Prompt: &prompt}
	require.NoError(t, db.Create(plantilla).Error)

	resp, err := svc.Generate(testutil.Context(owner), aigen.GenerationRequest{
		AreaID:      area.ID,
		NivelID:     nivel.ID,
		Cantidad:    2,
		PlantillaID: &plantilla.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Preguntas)
	assert.Equal(t, "Historia - "+catalog.NivelAvanzado, resp.Titulo)
	assert.Equal(t, prompt, provider.system)
}

func TestGenerateErrors(t *testing.T) {
	provider := &fakeProvider{questions: sampleQuestions()}
	db, svc, _ := setup(t, provider)

	owner := testutil.CreatePersona(t, db, "Rosa", "Vera", false)
	ctx := testutil.Context(owner)
	area := testutil.CreateArea(t, db, "Física")
	other := testutil.CreateArea(t, db, "Química")
	foreign := testutil.CreateTema(t, db, other, "Enlaces")
	nivel := testutil.Nivel(t, db, catalog.NivelIntermedio)
	missing := uint(9999)

	tests := []struct {
		name string
		ctx  context.Context
		req  aigen.GenerationRequest
		want error
	}{
		{"unauthenticated", context.Background(), aigen.GenerationRequest{AreaID: area.ID, NivelID: nivel.ID}, aigen.ErrUnauthorized},
		{"unknown area", ctx, aigen.GenerationRequest{AreaID: missing, NivelID: nivel.ID}, catalog.ErrAreaNotFound},
		{"unknown nivel", ctx, aigen.GenerationRequest{AreaID: area.ID, NivelID: missing}, catalog.ErrNivelNotFound},
		{"tema from another area", ctx, aigen.GenerationRequest{AreaID: area.ID, NivelID: nivel.ID, TemaID: &foreign.ID}, catalog.ErrTemaNotFound},
		{"unknown plantilla", ctx, aigen.GenerationRequest{AreaID: area.ID, NivelID: nivel.ID, PlantillaID: &missing}, catalog.ErrPlantillaNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Generate(tt.ctx, tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	t.Run("missing area id fails validation", func(t *testing.T) {
		_, err := svc.Generate(ctx, aigen.GenerationRequest{NivelID: nivel.ID})
		assert.Error(t, err)
	})

	t.Run("provider failure stores nothing", func(t *testing.T) {
		provider.err = fmt.Errorf("%w: quota exceeded", aigen.ErrProvider)
		defer func() { provider.err = nil }()

		_, err := svc.Generate(ctx, aigen.GenerationRequest{AreaID: area.ID, NivelID: nivel.ID})
		assert.True(t, errors.Is(err, aigen.ErrProvider))

		var count int64
		require.NoError(t, db.Model(&exam.Examen{}).Count(&count).Error)
		assert.Zero(t, count)
	})
}

func TestHandlerStatusCodes(t *testing.T) {
	provider := &fakeProvider{questions: sampleQuestions()}
	db, svc, _ := setup(t, provider)
	router := aigen.Routes(aigen.NewHandler(svc))

	owner := testutil.CreatePersona(t, db, "Ana", "Ruiz", false)
	token := testutil.Token(t, owner)
	area := testutil.CreateArea(t, db, "Biología")
	nivel := testutil.Nivel(t, db, catalog.NivelBasico)

	do := func(method, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, "/", strings.NewReader(body))
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	valid := fmt.Sprintf(`{"area_id":%d,"nivel_id":%d,"cantidad":2}`, area.ID, nivel.ID)

	assert.Equal(t, http.StatusBadRequest, do(http.MethodPost, "{").Code)
	assert.Equal(t, http.StatusBadRequest, do(http.MethodPost, `{"nivel_id":1}`).Code)
	assert.Equal(t, http.StatusNotFound, do(http.MethodPost, fmt.Sprintf(`{"area_id":999,"nivel_id":%d}`, nivel.ID)).Code)

	provider.err = aigen.ErrProvider
	assert.Equal(t, http.StatusBadGateway, do(http.MethodPost, valid).Code)
	provider.err = nil

	rec := do(http.MethodPost, valid)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"examen_id"`)

	rec = do(http.MethodGet, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"fecha_generacion"`)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	anon := httptest.NewRecorder()
	router.ServeHTTP(anon, req)
	assert.Equal(t, http.StatusUnauthorized, anon.Code)
}

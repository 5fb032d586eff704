package exam_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"

	"github.com/zelenmun/EvalUp/internal/catalog"
	"github.com/zelenmun/EvalUp/internal/exam"
)

func TestRedactResultado(t *testing.T) {
	raw := datatypes.JSON(`[{"enunciado":"2+2","alternativas":["A) 4","B) 5"],"respuesta_correcta":"A","explicacion":"suma","puntaje":1}]`)

	got := exam.RedactResultado(raw)
	assert.JSONEq(t, `[{"enunciado":"2+2","alternativas":["A) 4","B) 5"],"puntaje":1}]`, string(got))
	assert.Contains(t, string(raw), "respuesta_correcta")

	assert.Nil(t, exam.RedactResultado(datatypes.JSON(`{"respuesta_correcta":"A"}`)))
	assert.Empty(t, exam.RedactResultado(nil))
}

func TestSubmitted(t *testing.T) {
	assert.True(t, exam.Submitted(catalog.EstadoExamenCompletado))
	assert.True(t, exam.Submitted(catalog.EstadoExamenCalificado))
	assert.False(t, exam.Submitted(catalog.EstadoExamenPendiente))
	assert.False(t, exam.Submitted(catalog.EstadoExamenEnProceso))
}

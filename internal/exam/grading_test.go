package exam_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/zelenmun/EvalUp/internal/catalog"
	"github.com/zelenmun/EvalUp/internal/exam"
)

func TestGrade(t *testing.T) {
	tests := []struct {
		name        string
		tipo        string
		clave       string
		texto       string
		wantCorrect bool
		wantManual  bool
	}{
		{"single letter", catalog.TipoOpcionUnica, "C", "c", true, false},
		{"single with option text", catalog.TipoOpcionUnica, "C", "C) Mitocondria", true, false},
		{"single wrong", catalog.TipoOpcionUnica, "C", "B", false, false},
		{"single empty", catalog.TipoOpcionUnica, "C", "  ", false, false},
		{"multiple exact set", catalog.TipoOpcionMultiple, "A,C", "c, a", true, false},
		{"multiple missing one", catalog.TipoOpcionMultiple, "A,C", "A", false, false},
		{"multiple extra one", catalog.TipoOpcionMultiple, "A,C", "A,B,C", false, false},
		{"true false short form", catalog.TipoVerdaderoFalso, "VERDADERO", "v", true, false},
		{"true false accents", catalog.TipoVerdaderoFalso, "FALSO", "falso", true, false},
		{"true false wrong", catalog.TipoVerdaderoFalso, "FALSO", "verdadero", false, false},
		{"justification is manual", catalog.TipoJustificacion, "", "Porque si", false, true},
		{"unanswered justification still manual", catalog.TipoJustificacion, "", "", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			correct, manual := exam.Grade(tt.tipo, tt.clave, tt.texto)
			assert.Equal(t, tt.wantCorrect, correct)
			assert.Equal(t, tt.wantManual, manual)
		})
	}
}

func TestCalificacion(t *testing.T) {
	d := decimal.NewFromFloat

	assert.Equal(t, 67, exam.Calificacion(d(2), d(3)))
	assert.Equal(t, 100, exam.Calificacion(d(5), d(5)))
	assert.Equal(t, 0, exam.Calificacion(d(0), d(5)))
	assert.Equal(t, 0, exam.Calificacion(d(3), decimal.Zero))
}

func TestFloat(t *testing.T) {
	assert.Equal(t, 0.0, exam.Float(decimal.NullDecimal{}))
	assert.Equal(t, 2.5, exam.Float(decimal.NewNullDecimal(decimal.NewFromFloat(2.5))))
}

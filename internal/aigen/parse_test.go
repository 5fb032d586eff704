package aigen_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zelenmun/EvalUp/internal/aigen"
)

func TestParseQuestions(t *testing.T) {
	t.Run("wrapped object", func(t *testing.T) {
		qs, err := aigen.ParseQuestions(`{"preguntas":[{"enunciado":"¿2+2?","tipo":"OPCION UNICA","alternativas":["A) 3","B) 4"],"respuesta_correcta":"B"}]}`)
		require.NoError(t, err)
		require.Len(t, qs, 1)
		assert.Equal(t, "B", qs[0].RespuestaCorrecta)
		assert.Equal(t, []string{"A) 3", "B) 4"}, qs[0].Alternativas)
	})

	t.Run("bare array inside fences", func(t *testing.T) {
		raw := "```json\n[{\"enunciado\":\"El sol es una estrella\",\"tipo\":\"VERDADERO FALSO\",\"respuesta_correcta\":\"VERDADERO\",\"puntaje\":2}]\n```"
		qs, err := aigen.ParseQuestions(raw)
		require.NoError(t, err)
		require.Len(t, qs, 1)
		require.NotNil(t, qs[0].Puntaje)
		assert.Equal(t, 2.0, *qs[0].Puntaje)
	})

	t.Run("drops empty statements", func(t *testing.T) {
		qs, err := aigen.ParseQuestions(`[{"enunciado":"  "},{"enunciado":"ok"}]`)
		require.NoError(t, err)
		require.Len(t, qs, 1)
		assert.Equal(t, "ok", qs[0].Enunciado)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := aigen.ParseQuestions("  ")
		assert.ErrorIs(t, err, aigen.ErrEmptyResponse)

		_, err = aigen.ParseQuestions(`{"preguntas":[]}`)
		assert.ErrorIs(t, err, aigen.ErrEmptyResponse)
	})

	t.Run("model refusal", func(t *testing.T) {
		_, err := aigen.ParseQuestions(`{"error":"tema no permitido"}`)
		assert.ErrorContains(t, err, "tema no permitido")
	})

	t.Run("not json", func(t *testing.T) {
		_, err := aigen.ParseQuestions("lo siento, no puedo")
		assert.Error(t, err)
	})
}

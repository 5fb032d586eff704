package aigen

import (
	"time"

	"gorm.io/datatypes"
)

// Question is one generated item as the model returns it.
type Question struct {
	Enunciado         string   `json:"enunciado"`
	Tipo              string   `json:"tipo"`
	Alternativas      []string `json:"alternativas"`
	RespuestaCorrecta string   `json:"respuesta_correcta"`
	Explicacion       string   `json:"explicacion"`
	Puntaje           *float64 `json:"puntaje,omitempty"`
}

type GenerationRequest struct {
	AreaID      uint   `json:"area_id" validate:"required"`
	TemaID      *uint  `json:"tema_id"`
	NivelID     uint   `json:"nivel_id" validate:"required"`
	Cantidad    int    `json:"cantidad" validate:"omitempty,min=1"`
	PlantillaID *uint  `json:"plantilla_id"`
	Contexto    string `json:"contexto" validate:"max=1000"`
}

type GenerationResponse struct {
	GeneracionID uint   `json:"generacion_id"`
	ExamenID     uint   `json:"examen_id"`
	Titulo       string `json:"titulo"`
	Preguntas    int    `json:"preguntas"`
}

type GenerationSummary struct {
	ID            uint           `json:"id"`
	ExamenID      *uint          `json:"examen_id"`
	Area          *string        `json:"area"`
	Tema          *string        `json:"tema"`
	Nivel         *string        `json:"nivel"`
	ResultadoJSON datatypes.JSON `json:"resultadojson"`
	CreatedAt     time.Time      `json:"fecha_generacion"`
}

package exam

import (
	"encoding/json"
	"time"
)

type AnswerDTO struct {
	PreguntaID    uint    `json:"pregunta_id" validate:"required"`
	Texto         string  `json:"texto"`
	Justificacion *string `json:"justificacion"`
}

type SubmitDTO struct {
	Respuestas []AnswerDTO `json:"respuestas" validate:"required,min=1,dive"`
}

type GradeAnswerDTO struct {
	RespuestaID   uint     `json:"respuesta_id" validate:"required"`
	EsCorrecta    bool     `json:"es_correcta"`
	Puntaje       *float64 `json:"puntaje" validate:"omitempty,min=0"`
	Justificacion *string  `json:"justificacion"`
}

type GradeDTO struct {
	Calificacion    *int             `json:"calificacion" validate:"required,min=0,max=100"`
	PuntajeObtenido *float64         `json:"puntaje_obtenido" validate:"omitempty,min=0"`
	Respuestas      []GradeAnswerDTO `json:"respuestas" validate:"omitempty,dive"`
}

type RespuestaDetail struct {
	ID            uint    `json:"id"`
	Texto         *string `json:"texto"`
	EsCorrecta    bool    `json:"es_correcta"`
	Justificacion *string `json:"justificacion"`
	Puntaje       float64 `json:"puntaje"`
}

type PreguntaDetail struct {
	ID          uint              `json:"id"`
	Enunciado   *string           `json:"enunciado"`
	Tipo        *string           `json:"tipo"`
	Estado      *string           `json:"estado"`
	Puntaje     float64           `json:"puntaje"`
	Opciones    json.RawMessage   `json:"opciones"`
	Explicacion *string           `json:"explicacion,omitempty"`
	Respuestas  []RespuestaDetail `json:"respuestas"`
}

type ExamDetail struct {
	ID              uint             `json:"id"`
	PersonaID       uint             `json:"persona_id"`
	Titulo          string           `json:"titulo"`
	Descripcion     *string          `json:"descripcion"`
	FechaExamen     *time.Time       `json:"fecha_examen"`
	DuracionMinutos *int             `json:"duracion_minutos"`
	PuntajeMaximo   float64          `json:"puntaje_maximo"`
	PuntajeObtenido float64          `json:"puntaje_obtenido"`
	Calificacion    *int             `json:"calificacion"`
	Estado          *string          `json:"estado"`
	Nivel           *string          `json:"nivel"`
	AreaEstudio     *string          `json:"area_estudio"`
	Temas           []string         `json:"temas"`
	Preguntas       []PreguntaDetail `json:"preguntas"`
}

type HistorialEntry struct {
	ID        uint      `json:"id"`
	Estado    *string   `json:"estado"`
	CreatedAt time.Time `json:"created_at"`
}

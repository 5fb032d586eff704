package exam

import (
	"encoding/json"

	"gorm.io/datatypes"

	"github.com/zelenmun/EvalUp/internal/catalog"
)

// keys of a generated question that give the answer away
var answerKeys = []string{"respuesta_correcta", "explicacion"}

func strPtr(s string) *string {
	return &s
}

// Submitted reports whether an exam in the given state has been handed in.
func Submitted(estado string) bool {
	return estado == catalog.EstadoExamenCompletado || estado == catalog.EstadoExamenCalificado
}

// RedactResultado drops the answer key and explanations from a stored
// generation payload. Payloads that are not a list of objects become null.
func RedactResultado(raw datatypes.JSON) datatypes.JSON {
	if len(raw) == 0 {
		return raw
	}
	var items []map[string]json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	for _, item := range items {
		for _, k := range answerKeys {
			delete(item, k)
		}
	}
	out, err := json.Marshal(items)
	if err != nil {
		return nil
	}
	return datatypes.JSON(out)
}

// ToDetail renders an exam for its taker. The answer key is never included;
// explanations appear once the exam has been submitted.
func ToDetail(e *Examen) *ExamDetail {
	d := &ExamDetail{
		ID:              e.ID,
		PersonaID:       e.PersonaID,
		Titulo:          e.Titulo,
		Descripcion:     e.Descripcion,
		FechaExamen:     e.FechaExamen,
		DuracionMinutos: DuracionMinutos(e.Duracion),
		PuntajeMaximo:   Float(e.PuntajeMaximo),
		PuntajeObtenido: Float(e.PuntajeObtenido),
		Calificacion:    e.Calificacion,
		Temas:           make([]string, 0, len(e.Temas)),
		Preguntas:       make([]PreguntaDetail, 0, len(e.Preguntas)),
	}
	if e.Estado != nil {
		d.Estado = strPtr(e.Estado.Nombre)
	}
	if e.Nivel != nil {
		d.Nivel = strPtr(e.Nivel.Nombre)
	}
	if e.AreaEstudio != nil {
		d.AreaEstudio = strPtr(e.AreaEstudio.Nombre)
	}
	for _, t := range e.Temas {
		d.Temas = append(d.Temas, t.Nombre)
	}

	submitted := d.Estado != nil && Submitted(*d.Estado)

	for _, p := range e.Preguntas {
		pd := PreguntaDetail{
			ID:         p.ID,
			Enunciado:  p.Enunciado,
			Puntaje:    Float(p.Puntaje),
			Opciones:   json.RawMessage(p.Opciones),
			Respuestas: make([]RespuestaDetail, 0, len(p.Respuestas)),
		}
		if len(pd.Opciones) == 0 {
			pd.Opciones = json.RawMessage("[]")
		}
		if p.Tipo != nil {
			pd.Tipo = strPtr(p.Tipo.Nombre)
		}
		if p.Estado != nil {
			pd.Estado = strPtr(p.Estado.Nombre)
		}
		if submitted {
			pd.Explicacion = p.Explicacion
		}
		for _, r := range p.Respuestas {
			if !r.IsActive {
				continue
			}
			pd.Respuestas = append(pd.Respuestas, RespuestaDetail{
				ID:            r.ID,
				Texto:         r.Texto,
				EsCorrecta:    r.EsCorrecta,
				Justificacion: r.Justificacion,
				Puntaje:       Float(r.Puntaje),
			})
		}
		d.Preguntas = append(d.Preguntas, pd)
	}
	return d
}

// DuracionMinutos converts a duration in seconds to whole minutes.
func DuracionMinutos(seconds *int64) *int {
	if seconds == nil {
		return nil
	}
	m := int(*seconds / 60)
	return &m
}

package report

import (
	"github.com/shopspring/decimal"

	"github.com/zelenmun/EvalUp/internal/exam"
	"github.com/zelenmun/EvalUp/internal/user"
)

func catalogRef(id uint, nombre string, descripcion *string) *CatalogRef {
	return &CatalogRef{ID: id, Nombre: nombre, Descripcion: descripcion}
}

func personaRef(p *user.Persona) *PersonaRef {
	if p == nil {
		return nil
	}
	return &PersonaRef{ID: p.ID, NombreCompleto: p.NombreCompleto()}
}

// porcentaje returns part*100/total truncated, 0 when total is 0.
func porcentaje(part, total int) int {
	if total == 0 {
		return 0
	}
	return part * 100 / total
}

func float(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}

// SerializeExams flattens loaded exams into the nested report shape. Each
// question's score is summed once regardless of its answer count.
func SerializeExams(exams []exam.Examen) []ExamData {
	out := make([]ExamData, 0, len(exams))
	for i := range exams {
		out = append(out, serializeExam(&exams[i]))
	}
	return out
}

func serializeExam(e *exam.Examen) ExamData {
	d := ExamData{
		ID:              e.ID,
		Titulo:          e.Titulo,
		Descripcion:     e.Descripcion,
		FechaExamen:     e.FechaExamen,
		FechaCreacion:   e.CreatedAt,
		DuracionMinutos: exam.DuracionMinutos(e.Duracion),
		PuntajeMaximo:   exam.Float(e.PuntajeMaximo),
		PuntajeObtenido: exam.Float(e.PuntajeObtenido),
		Calificacion:    e.Calificacion,
		Temas:           make([]TemaData, 0, len(e.Temas)),
		Preguntas:       make([]PreguntaData, 0, len(e.Preguntas)),
	}

	if e.Persona != nil {
		d.Persona = &PersonaData{ID: e.Persona.ID, NombreCompleto: e.Persona.NombreCompleto(), Email: e.Persona.Email()}
	}
	if e.Estado != nil {
		d.Estado = catalogRef(e.Estado.ID, e.Estado.Nombre, e.Estado.Descripcion)
	}
	d.CalificadoPor = personaRef(e.CalificadoPor)
	if e.Nivel != nil {
		d.Nivel = catalogRef(e.Nivel.ID, e.Nivel.Nombre, e.Nivel.Descripcion)
	}
	if e.AreaEstudio != nil {
		d.AreaEstudio = catalogRef(e.AreaEstudio.ID, e.AreaEstudio.Nombre, e.AreaEstudio.Descripcion)
	}

	for _, t := range e.Temas {
		td := TemaData{ID: t.ID, Nombre: t.Nombre, Descripcion: t.Descripcion}
		if t.Area != nil {
			area := t.Area.Nombre
			td.Area = &area
		}
		d.Temas = append(d.Temas, td)
	}

	if g := e.GeneracionIA; g != nil {
		gd := &GeneracionData{ID: g.ID, ResultadoJSON: g.ResultadoJSON, FechaGeneracion: g.CreatedAt}
		if g.Area != nil {
			gd.Area = &NameRef{ID: g.Area.ID, Nombre: g.Area.Nombre}
		}
		if g.Temas != nil {
			gd.Tema = &NameRef{ID: g.Temas.ID, Nombre: g.Temas.Nombre}
		}
		if g.Nivel != nil {
			gd.Nivel = &NameRef{ID: g.Nivel.ID, Nombre: g.Nivel.Nombre}
		}
		d.GeneracionIA = gd
	}

	totalPreguntas := decimal.Zero
	totalRespuestas := decimal.Zero
	for _, p := range e.Preguntas {
		pd := PreguntaData{
			ID:         p.ID,
			Enunciado:  p.Enunciado,
			Puntaje:    exam.Float(p.Puntaje),
			Respuestas: make([]RespuestaData, 0, len(p.Respuestas)),
		}
		if p.Tipo != nil {
			pd.Tipo = catalogRef(p.Tipo.ID, p.Tipo.Nombre, p.Tipo.Descripcion)
		}
		if p.Estado != nil {
			pd.Estado = catalogRef(p.Estado.ID, p.Estado.Nombre, p.Estado.Descripcion)
		}
		totalPreguntas = totalPreguntas.Add(exam.Score(p.Puntaje))

		for _, r := range p.Respuestas {
			pd.Respuestas = append(pd.Respuestas, RespuestaData{
				ID:            r.ID,
				Texto:         r.Texto,
				EsCorrecta:    r.EsCorrecta,
				Justificacion: r.Justificacion,
				Puntaje:       exam.Float(r.Puntaje),
				EsVof:         personaRef(r.EsVof),
			})
			totalRespuestas = totalRespuestas.Add(exam.Score(r.Puntaje))
			d.TotalRespuestas++
			if r.EsCorrecta {
				d.RespuestasCorrectas++
			}
		}
		d.Preguntas = append(d.Preguntas, pd)
	}

	d.TotalPreguntas = len(e.Preguntas)
	d.PorcentajeAciertos = porcentaje(d.RespuestasCorrectas, d.TotalRespuestas)
	d.PuntajeTotalPreguntas = float(totalPreguntas)
	d.PuntajeTotalRespuestas = float(totalRespuestas)
	return d
}

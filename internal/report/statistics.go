package report

import (
	"sort"

	"github.com/zelenmun/EvalUp/internal/exam"
)

type mean struct {
	sum   float64
	count int
}

func (m *mean) add(v float64) {
	m.sum += v
	m.count++
}

func (m mean) value() *float64 {
	if m.count == 0 {
		return nil
	}
	v := m.sum / float64(m.count)
	return &v
}

type bucket struct {
	name     *string
	cantidad int
	nota     mean
}

// groups counts exams per optional name and keeps first-seen order until sorted.
type groups struct {
	order []string
	byKey map[string]*bucket
}

func newGroups() *groups {
	return &groups{byKey: map[string]*bucket{}}
}

func (g *groups) add(name *string, calificacion *int) {
	key := "\x00"
	if name != nil {
		key = "=" + *name
	}
	b, ok := g.byKey[key]
	if !ok {
		b = &bucket{name: name}
		g.byKey[key] = b
		g.order = append(g.order, key)
	}
	b.cantidad++
	if calificacion != nil {
		b.nota.add(float64(*calificacion))
	}
}

// sorted orders buckets by cantidad descending, then name ascending with the
// unnamed bucket first.
func (g *groups) sorted() []*bucket {
	out := make([]*bucket, 0, len(g.order))
	for _, k := range g.order {
		out = append(out, g.byKey[k])
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].cantidad != out[j].cantidad {
			return out[i].cantidad > out[j].cantidad
		}
		a, b := out[i].name, out[j].name
		switch {
		case a == nil:
			return b != nil
		case b == nil:
			return false
		default:
			return *a < *b
		}
	})
	return out
}

// ComputeStatistics aggregates over the given exams. Averages and extremes
// skip null values and are null when there are none.
func ComputeStatistics(exams []exam.Examen) Statistics {
	st := Statistics{
		TotalExamenes:       len(exams),
		DistribucionEstados: []EstadoCount{},
		DistribucionAreas:   []AreaCount{},
		DistribucionNiveles: []NivelCount{},
	}

	var nota, obtenido, maximo mean
	estados, areas, niveles := newGroups(), newGroups(), newGroups()

	for i := range exams {
		e := &exams[i]

		if c := e.Calificacion; c != nil {
			nota.add(float64(*c))
			if st.CalificacionMaxima == nil || *c > *st.CalificacionMaxima {
				v := *c
				st.CalificacionMaxima = &v
			}
			if st.CalificacionMinima == nil || *c < *st.CalificacionMinima {
				v := *c
				st.CalificacionMinima = &v
			}
		}
		if e.PuntajeObtenido.Valid {
			obtenido.add(exam.Float(e.PuntajeObtenido))
		}
		if e.PuntajeMaximo.Valid {
			maximo.add(exam.Float(e.PuntajeMaximo))
		}

		st.TotalPreguntasGeneradas += len(e.Preguntas)
		for _, p := range e.Preguntas {
			st.TotalRespuestas += len(p.Respuestas)
			for _, r := range p.Respuestas {
				if r.EsCorrecta {
					st.RespuestasCorrectasTotal++
				}
			}
		}

		var estado, area, nivel *string
		if e.Estado != nil {
			estado = &e.Estado.Nombre
		}
		if e.AreaEstudio != nil {
			area = &e.AreaEstudio.Nombre
		}
		if e.Nivel != nil {
			nivel = &e.Nivel.Nombre
		}
		estados.add(estado, e.Calificacion)
		areas.add(area, e.Calificacion)
		niveles.add(nivel, e.Calificacion)
	}

	st.PromedioCalificacion = nota.value()
	st.PromedioPuntajeObtenido = obtenido.value()
	st.PromedioPuntajeMaximo = maximo.value()
	if st.TotalRespuestas > 0 {
		st.PorcentajeAciertosGeneral = float64(st.RespuestasCorrectasTotal) / float64(st.TotalRespuestas) * 100
	}

	for _, b := range estados.sorted() {
		st.DistribucionEstados = append(st.DistribucionEstados, EstadoCount{Estado: b.name, Cantidad: b.cantidad})
	}
	for _, b := range areas.sorted() {
		st.DistribucionAreas = append(st.DistribucionAreas, AreaCount{AreaEstudio: b.name, Cantidad: b.cantidad, PromedioCalificacion: b.nota.value()})
	}
	for _, b := range niveles.sorted() {
		st.DistribucionNiveles = append(st.DistribucionNiveles, NivelCount{Nivel: b.name, Cantidad: b.cantidad, PromedioCalificacion: b.nota.value()})
	}
	return st
}

package report

import (
	"time"

	"gorm.io/datatypes"

	util "github.com/zelenmun/EvalUp/internal/utils"
)

// Query holds the optional report filters. Zero values are not applied.
type Query struct {
	ExamID             *uint
	PersonaID          *uint
	Estado             string
	AreaEstudio        string
	Nivel              string
	FechaDesde         *time.Time
	FechaHasta         *time.Time
	CalificacionMinima *int
	SoloActivos        bool
}

// Filters returns the non-identity filters in effect, keyed by query parameter.
func (q Query) Filters() map[string]any {
	f := map[string]any{}
	if q.Estado != "" {
		f["estado"] = q.Estado
	}
	if q.AreaEstudio != "" {
		f["area_estudio"] = q.AreaEstudio
	}
	if q.Nivel != "" {
		f["nivel"] = q.Nivel
	}
	if q.FechaDesde != nil {
		f["fecha_desde"] = q.FechaDesde.Format(util.DateLayout)
	}
	if q.FechaHasta != nil {
		f["fecha_hasta"] = q.FechaHasta.Format(util.DateLayout)
	}
	if q.CalificacionMinima != nil {
		f["calificacion_minima"] = *q.CalificacionMinima
	}
	return f
}

type CatalogRef struct {
	ID          uint    `json:"id"`
	Nombre      string  `json:"nombre"`
	Descripcion *string `json:"descripcion"`
}

type NameRef struct {
	ID     uint   `json:"id"`
	Nombre string `json:"nombre"`
}

type PersonaData struct {
	ID             uint    `json:"id"`
	NombreCompleto string  `json:"nombre_completo"`
	Email          *string `json:"email"`
}

type PersonaRef struct {
	ID             uint   `json:"id"`
	NombreCompleto string `json:"nombre_completo"`
}

type TemaData struct {
	ID          uint    `json:"id"`
	Nombre      string  `json:"nombre"`
	Descripcion *string `json:"descripcion"`
	Area        *string `json:"area"`
}

type GeneracionData struct {
	ID              uint           `json:"id"`
	ResultadoJSON   datatypes.JSON `json:"resultadojson"`
	Area            *NameRef       `json:"area"`
	Tema            *NameRef       `json:"tema"`
	Nivel           *NameRef       `json:"nivel"`
	FechaGeneracion time.Time      `json:"fecha_generacion"`
}

type RespuestaData struct {
	ID            uint        `json:"id"`
	Texto         *string     `json:"texto"`
	EsCorrecta    bool        `json:"es_correcta"`
	Justificacion *string     `json:"justificacion"`
	Puntaje       float64     `json:"puntaje"`
	EsVof         *PersonaRef `json:"es_vof"`
}

type PreguntaData struct {
	ID         uint            `json:"id"`
	Enunciado  *string         `json:"enunciado"`
	Puntaje    float64         `json:"puntaje"`
	Tipo       *CatalogRef     `json:"tipo"`
	Estado     *CatalogRef     `json:"estado"`
	Respuestas []RespuestaData `json:"respuestas"`
}

type ExamData struct {
	ID              uint       `json:"id"`
	Titulo          string     `json:"titulo"`
	Descripcion     *string    `json:"descripcion"`
	FechaExamen     *time.Time `json:"fecha_examen"`
	FechaCreacion   time.Time  `json:"fecha_creacion"`
	DuracionMinutos *int       `json:"duracion_minutos"`
	PuntajeMaximo   float64    `json:"puntaje_maximo"`
	PuntajeObtenido float64    `json:"puntaje_obtenido"`
	Calificacion    *int       `json:"calificacion"`

	TotalPreguntas         int     `json:"total_preguntas"`
	TotalRespuestas        int     `json:"total_respuestas"`
	RespuestasCorrectas    int     `json:"respuestas_correctas"`
	PorcentajeAciertos     int     `json:"porcentaje_aciertos"`
	PuntajeTotalPreguntas  float64 `json:"puntaje_total_preguntas"`
	PuntajeTotalRespuestas float64 `json:"puntaje_total_respuestas"`

	Persona       *PersonaData    `json:"persona"`
	Estado        *CatalogRef     `json:"estado"`
	CalificadoPor *PersonaRef     `json:"calificado_por"`
	Nivel         *CatalogRef     `json:"nivel"`
	AreaEstudio   *CatalogRef     `json:"area_estudio"`
	Temas         []TemaData      `json:"temas"`
	GeneracionIA  *GeneracionData `json:"generacion_ia"`
	Preguntas     []PreguntaData  `json:"preguntas"`
}

type EstadoCount struct {
	Estado   *string `json:"estado"`
	Cantidad int     `json:"cantidad"`
}

type AreaCount struct {
	AreaEstudio          *string  `json:"area_estudio"`
	Cantidad             int      `json:"cantidad"`
	PromedioCalificacion *float64 `json:"promedio_calificacion"`
}

type NivelCount struct {
	Nivel                *string  `json:"nivel"`
	Cantidad             int      `json:"cantidad"`
	PromedioCalificacion *float64 `json:"promedio_calificacion"`
}

type Statistics struct {
	TotalExamenes             int           `json:"total_examenes"`
	PromedioCalificacion      *float64      `json:"promedio_calificacion"`
	CalificacionMaxima        *int          `json:"calificacion_maxima"`
	CalificacionMinima        *int          `json:"calificacion_minima"`
	PromedioPuntajeObtenido   *float64      `json:"promedio_puntaje_obtenido"`
	PromedioPuntajeMaximo     *float64      `json:"promedio_puntaje_maximo"`
	TotalPreguntasGeneradas   int           `json:"total_preguntas_generadas"`
	TotalRespuestas           int           `json:"total_respuestas"`
	RespuestasCorrectasTotal  int           `json:"respuestas_correctas_total"`
	PorcentajeAciertosGeneral float64       `json:"porcentaje_aciertos_general"`
	DistribucionEstados       []EstadoCount `json:"distribucion_estados"`
	DistribucionAreas         []AreaCount   `json:"distribucion_areas"`
	DistribucionNiveles       []NivelCount  `json:"distribucion_niveles"`
}

type Metadata struct {
	GeneratedAt     time.Time      `json:"generated_at"`
	TotalRecords    int            `json:"total_records"`
	FiltersApplied  map[string]any `json:"filters_applied"`
	ExamIDFilter    *uint          `json:"exam_id_filter"`
	PersonaIDFilter *uint          `json:"persona_id_filter"`
}

type Summary struct {
	TotalExamenes               int         `json:"total_examenes"`
	ExamenesCompletados         int         `json:"examenes_completados"`
	ExamenesCalificados         int         `json:"examenes_calificados"`
	PromedioGeneralCalificacion *float64    `json:"promedio_general_calificacion"`
	AreasMasFrecuentes          []AreaCount `json:"areas_mas_frecuentes"`
}

type Report struct {
	Metadata   Metadata   `json:"metadata"`
	Examenes   []ExamData `json:"examenes"`
	Statistics Statistics `json:"statistics"`
	Summary    Summary    `json:"summary"`
}

// Overview is the student dashboard payload.
type Overview struct {
	Examenes []ExamData `json:"examenes"`
	Cantidad int        `json:"cantidad"`
	Promedio float64    `json:"promedio"`
}

package exam

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/zelenmun/EvalUp/internal/catalog"
	"github.com/zelenmun/EvalUp/internal/entity"
	"github.com/zelenmun/EvalUp/internal/user"
)

type Examen struct {
	entity.Base
	PersonaID       uint                      `gorm:"not null;index" json:"persona_id"`
	Persona         *user.Persona             `gorm:"foreignKey:PersonaID" json:"persona,omitempty"`
	Titulo          string                    `gorm:"size:255;not null" json:"titulo"`
	Descripcion     *string                   `gorm:"type:text" json:"descripcion"`
	FechaExamen     *time.Time                `json:"fecha_examen"`
	Duracion        *int64                    `json:"duracion"`
	PuntajeMaximo   decimal.NullDecimal       `gorm:"type:decimal(5,2)" json:"puntaje_maximo"`
	PuntajeObtenido decimal.NullDecimal       `gorm:"type:decimal(5,2)" json:"puntaje_obtenido"`
	EstadoID        *uint                     `gorm:"index" json:"estado_id"`
	Estado          *catalog.EstadoExamen     `gorm:"foreignKey:EstadoID" json:"estado,omitempty"`
	CalificadoPorID *uint                     `json:"calificado_por_id"`
	CalificadoPor   *user.Persona             `gorm:"foreignKey:CalificadoPorID" json:"calificado_por,omitempty"`
	Calificacion    *int                      `json:"calificacion"`
	NivelID         *uint                     `gorm:"index" json:"nivel_id"`
	Nivel           *catalog.NivelExamen      `gorm:"foreignKey:NivelID" json:"nivel,omitempty"`
	AreaEstudioID   *uint                     `gorm:"index" json:"area_estudio_id"`
	AreaEstudio     *catalog.AreaEstudio      `gorm:"foreignKey:AreaEstudioID" json:"area_estudio,omitempty"`
	Temas           []catalog.TemaAreaEstudio `gorm:"many2many:examen_temas" json:"temas,omitempty"`
	Preguntas       []Pregunta                `gorm:"foreignKey:ExamenID;constraint:OnDelete:CASCADE" json:"preguntas,omitempty"`
	GeneracionIA    *GeneracionIA             `gorm:"foreignKey:ExamenID" json:"generacion_ia,omitempty"`
}

func (Examen) TableName() string { return "examenes" }

// BeforeSave stores fecha_examen in UTC.
func (e *Examen) BeforeSave(tx *gorm.DB) error {
	if e.FechaExamen != nil {
		t := e.FechaExamen.UTC()
		e.FechaExamen = &t
	}
	return nil
}

type Pregunta struct {
	entity.Base
	ExamenID    uint                    `gorm:"not null;index" json:"examen_id"`
	Enunciado   *string                 `gorm:"type:text" json:"enunciado"`
	TipoID      *uint                   `json:"tipo_id"`
	Tipo        *catalog.TipoPregunta   `gorm:"foreignKey:TipoID" json:"tipo,omitempty"`
	Puntaje     decimal.NullDecimal     `gorm:"type:decimal(5,2)" json:"puntaje"`
	EstadoID    *uint                   `json:"estado_id"`
	Estado      *catalog.EstadoPregunta `gorm:"foreignKey:EstadoID" json:"estado,omitempty"`
	Opciones    datatypes.JSON          `json:"opciones"`
	Clave       string                  `gorm:"type:text" json:"-"`
	Explicacion *string                 `gorm:"type:text" json:"explicacion,omitempty"`
	Respuestas  []Respuesta             `gorm:"foreignKey:PreguntaID;constraint:OnDelete:CASCADE" json:"respuestas,omitempty"`
}

func (Pregunta) TableName() string { return "preguntas" }

type Respuesta struct {
	entity.Base
	PreguntaID    uint                `gorm:"not null;index" json:"pregunta_id"`
	Texto         *string             `gorm:"type:text" json:"texto"`
	EsCorrecta    bool                `gorm:"not null;default:false" json:"es_correcta"`
	Justificacion *string             `gorm:"type:text" json:"justificacion"`
	EsVofID       *uint               `json:"es_vof_id"`
	EsVof         *user.Persona       `gorm:"foreignKey:EsVofID" json:"es_vof,omitempty"`
	Puntaje       decimal.NullDecimal `gorm:"type:decimal(5,2)" json:"puntaje"`
}

func (Respuesta) TableName() string { return "respuestas" }

type GeneracionIA struct {
	entity.Base
	PersonaID     *uint                    `gorm:"index" json:"persona_id"`
	Persona       *user.Persona            `gorm:"foreignKey:PersonaID" json:"-"`
	AreaID        *uint                    `json:"area_id"`
	Area          *catalog.AreaEstudio     `gorm:"foreignKey:AreaID" json:"area,omitempty"`
	TemasID       *uint                    `gorm:"column:temas_id" json:"temas_id"`
	Temas         *catalog.TemaAreaEstudio `gorm:"foreignKey:TemasID" json:"tema,omitempty"`
	NivelID       *uint                    `json:"nivel_id"`
	Nivel         *catalog.NivelExamen     `gorm:"foreignKey:NivelID" json:"nivel,omitempty"`
	ResultadoJSON datatypes.JSON           `gorm:"column:resultadojson" json:"resultadojson"`
	ExamenID      *uint                    `gorm:"uniqueIndex" json:"examen_id"`
}

func (GeneracionIA) TableName() string { return "generaciones_ia" }

type HistorialExamen struct {
	entity.Base
	ExamenID uint                  `gorm:"not null;index" json:"examen_id"`
	EstadoID *uint                 `json:"estado_id"`
	Estado   *catalog.EstadoExamen `gorm:"foreignKey:EstadoID" json:"estado,omitempty"`
}

func (HistorialExamen) TableName() string { return "historial_examenes" }

func Models() []any {
	return []any{&Examen{}, &Pregunta{}, &Respuesta{}, &GeneracionIA{}, &HistorialExamen{}}
}

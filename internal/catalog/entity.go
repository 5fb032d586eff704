package catalog

import "github.com/zelenmun/EvalUp/internal/entity"

type Gender struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Nombre string `gorm:"size:20;not null;uniqueIndex" json:"nombre"`
}

func (Gender) TableName() string { return "generos" }

type EstadoExamen struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Nombre      string  `gorm:"size:100;not null;uniqueIndex" json:"nombre"`
	Descripcion *string `gorm:"type:text" json:"descripcion"`
}

func (EstadoExamen) TableName() string { return "estados_examen" }

type TipoPregunta struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Nombre      string  `gorm:"size:100;not null;uniqueIndex" json:"nombre"`
	Descripcion *string `gorm:"type:text" json:"descripcion"`
}

func (TipoPregunta) TableName() string { return "tipos_pregunta" }

type EstadoPregunta struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Nombre      string  `gorm:"size:100;not null;uniqueIndex" json:"nombre"`
	Descripcion *string `gorm:"type:text" json:"descripcion"`
}

func (EstadoPregunta) TableName() string { return "estados_pregunta" }

type NivelExamen struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Nombre      string  `gorm:"size:100;not null;uniqueIndex" json:"nombre"`
	Descripcion *string `gorm:"type:text" json:"descripcion"`
}

func (NivelExamen) TableName() string { return "niveles_examen" }

type VerdaderoFalso struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Nombre      string  `gorm:"size:100;not null;uniqueIndex" json:"nombre"`
	Descripcion *string `gorm:"type:text" json:"descripcion"`
}

func (VerdaderoFalso) TableName() string { return "verdadero_falso" }

type AreaEstudio struct {
	entity.Base
	Nombre      string  `gorm:"size:100;not null;uniqueIndex" json:"nombre"`
	Descripcion *string `gorm:"type:text" json:"descripcion"`
}

func (AreaEstudio) TableName() string { return "areas_estudio" }

type TemaAreaEstudio struct {
	entity.Base
	AreaID      uint         `gorm:"not null;index" json:"area_id"`
	Area        *AreaEstudio `gorm:"foreignKey:AreaID;constraint:OnDelete:CASCADE" json:"area,omitempty"`
	Nombre      string       `gorm:"size:100;not null" json:"nombre"`
	Descripcion *string      `gorm:"type:text" json:"descripcion"`
}

func (TemaAreaEstudio) TableName() string { return "temas_area_estudio" }

type PlantillaIA struct {
	entity.Base
	Nombre      string  `gorm:"size:100;not null" json:"nombre"`
	Descripcion *string `gorm:"type:text" json:"descripcion"`
	Prompt      *string `gorm:"type:text" json:"prompt"`
}

func (PlantillaIA) TableName() string { return "plantillas_ia" }

// Models lists every catalog table in migration order.
func Models() []any {
	return []any{
		&Gender{},
		&EstadoExamen{},
		&TipoPregunta{},
		&EstadoPregunta{},
		&NivelExamen{},
		&VerdaderoFalso{},
		&AreaEstudio{},
		&TemaAreaEstudio{},
		&PlantillaIA{},
	}
}

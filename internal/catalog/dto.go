package catalog

type CreateAreaDTO struct {
	Nombre      string  `json:"nombre" validate:"required,max=100"`
	Descripcion *string `json:"descripcion"`
}

type CreateTemaDTO struct {
	Nombre      string  `json:"nombre" validate:"required,max=100"`
	Descripcion *string `json:"descripcion"`
}

type CreatePlantillaDTO struct {
	Nombre      string  `json:"nombre" validate:"required,max=100"`
	Descripcion *string `json:"descripcion"`
	Prompt      *string `json:"prompt"`
}

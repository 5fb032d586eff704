package user

import util "github.com/zelenmun/EvalUp/internal/utils"

type SignupRequest struct {
	FirstName string `json:"firstName" validate:"required,max=100"`
	LastName  string `json:"lastName" validate:"required,max=100"`
	Email     string `json:"email" validate:"required,emailfmt"`
	Password  string `json:"password" validate:"required"`
	Terms     *bool  `json:"terms" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,emailfmt"`
	Password string `json:"password" validate:"required"`
}

type UserData struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	IsStaff   bool   `json:"isStaff"`
	PersonaID *uint  `json:"personaId"`
}

type LoginResponse struct {
	Result  bool     `json:"result"`
	Message string   `json:"message"`
	Token   string   `json:"token"`
	User    UserData `json:"user"`
}

type UpdateProfileDTO struct {
	Nombre2         *string `json:"nombre2" validate:"omitempty,max=100"`
	Apellido2       *string `json:"apellido2" validate:"omitempty,max=100"`
	Telefono        *string `json:"telefono" validate:"omitempty,max=20"`
	Direccion       *string `json:"direccion" validate:"omitempty,max=255"`
	FechaNacimiento *string `json:"fecha_nacimiento"`
	Genero          *string `json:"genero"`
	Cedula          *string `json:"cedula"`
}

type ProfileResponse struct {
	ID              uint            `json:"id"`
	UserID          uint            `json:"user_id"`
	Username        string          `json:"username"`
	NombreCompleto  string          `json:"nombre_completo"`
	Nombre1         string          `json:"nombre1"`
	Nombre2         string          `json:"nombre2"`
	Apellido1       string          `json:"apellido1"`
	Apellido2       string          `json:"apellido2"`
	Correo          *string         `json:"correo"`
	FechaNacimiento *util.LocalDate `json:"fecha_nacimiento"`
	Genero          *string         `json:"genero"`
	Telefono        *string         `json:"telefono"`
	Direccion       *string         `json:"direccion"`
	Cedula          *string         `json:"cedula"`
}

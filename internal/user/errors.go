package user

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrPersonaNotFound    = errors.New("persona not found")
	ErrEmailNotRegistered = errors.New("Email no registrado")
	ErrWrongPassword      = errors.New("Contraseña incorrecta")
	ErrInactiveAccount    = errors.New("Usted no tiene ninguna cuenta")
)

const (
	msgRequired      = "Este campo es requerido."
	msgInvalidEmail  = "El correo electrónico no es válido"
	msgEmailTaken    = "El correo electrónico ya está en uso"
	msgTerms         = "Debes aceptar los términos y condiciones"
	msgInvalidCedula = "La cédula debe tener 10 dígitos"
	msgInvalidDate   = "Formato de fecha inválido, use AAAA-MM-DD"
	msgUnknownGenero = "Género no válido"
)

// ValidationErrors maps a request field to its messages, the shape signup and
// login return with status 400.
type ValidationErrors map[string][]string

func (v ValidationErrors) Add(field, message string) {
	v[field] = append(v[field], message)
}

func (v ValidationErrors) Has(field string) bool {
	return len(v[field]) > 0
}

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	var b strings.Builder
	for i, f := range fields {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(f + ": " + strings.Join(v[f], ", "))
	}
	return b.String()
}

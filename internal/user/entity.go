package user

import (
	"strings"
	"time"

	"github.com/zelenmun/EvalUp/internal/catalog"
	"github.com/zelenmun/EvalUp/internal/entity"
	util "github.com/zelenmun/EvalUp/internal/utils"
)

type User struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Username     string     `gorm:"size:150;not null;uniqueIndex" json:"username"`
	Email        string     `gorm:"size:254;not null;uniqueIndex" json:"email"`
	PasswordHash string     `gorm:"size:255;not null" json:"-"`
	FirstName    string     `gorm:"size:150" json:"first_name"`
	LastName     string     `gorm:"size:150" json:"last_name"`
	IsStaff      bool       `gorm:"not null;default:false" json:"is_staff"`
	IsActive     bool       `gorm:"not null;default:true" json:"is_active"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	Persona *Persona `gorm:"foreignKey:UserID" json:"persona,omitempty"`
}

func (User) TableName() string { return "users" }

type Persona struct {
	entity.Base
	UserID          uint            `gorm:"not null;uniqueIndex" json:"user_id"`
	User            *User           `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Nombre1         string          `gorm:"size:100" json:"nombre1"`
	Nombre2         string          `gorm:"size:100" json:"nombre2"`
	Apellido1       string          `gorm:"size:100" json:"apellido1"`
	Apellido2       string          `gorm:"size:100" json:"apellido2"`
	FechaNacimiento *util.LocalDate `gorm:"type:date" json:"fecha_nacimiento"`
	GeneroID        *uint           `json:"genero_id"`
	Genero          *catalog.Gender `gorm:"foreignKey:GeneroID;constraint:OnDelete:SET NULL" json:"genero,omitempty"`
	Telefono        *string         `gorm:"size:20" json:"telefono"`
	Correo          *string         `gorm:"size:100;uniqueIndex" json:"correo"`
	Direccion       *string         `gorm:"size:255" json:"direccion"`
	Cedula          *string         `gorm:"size:255" json:"-"`
}

func (Persona) TableName() string { return "personas" }

// NombreCompleto joins the non-empty name parts in display order.
func (p *Persona) NombreCompleto() string {
	parts := make([]string, 0, 4)
	for _, s := range []string{p.Nombre1, p.Nombre2, p.Apellido1, p.Apellido2} {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

func (p *Persona) Email() *string {
	if p.Correo != nil {
		return p.Correo
	}
	if p.User != nil && p.User.Email != "" {
		email := p.User.Email
		return &email
	}
	return nil
}

func Models() []any {
	return []any{&User{}, &Persona{}}
}

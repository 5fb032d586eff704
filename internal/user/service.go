package user

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/zelenmun/EvalUp/internal/auth"
	"github.com/zelenmun/EvalUp/internal/catalog"
	"github.com/zelenmun/EvalUp/internal/config"
	util "github.com/zelenmun/EvalUp/internal/utils"
)

var (
	emailPattern  = regexp.MustCompile(`^[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+$`)
	cedulaPattern = regexp.MustCompile(`^[0-9]{10}$`)
)

type UserService interface {
	Signup(ctx context.Context, req SignupRequest) (*User, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	Me(ctx context.Context, userID uint) (*UserData, error)
	GetProfile(ctx context.Context, userID uint) (*ProfileResponse, error)
	UpdateProfile(ctx context.Context, userID uint, dto UpdateProfileDTO) (*ProfileResponse, error)
	EnsureAdmin(ctx context.Context, email, password string) (*User, error)
}

type userService struct {
	db       *gorm.DB
	repo     UserRepository
	catalog  catalog.Repository
	validate *validator.Validate
	tokenTTL time.Duration
	now      func() time.Time
}

func NewService(db *gorm.DB, repo UserRepository, catalogRepo catalog.Repository, tokenTTL time.Duration) UserService {
	return &userService{
		db:       db,
		repo:     repo,
		catalog:  catalogRepo,
		validate: newValidator(),
		tokenTTL: tokenTTL,
		now:      time.Now,
	}
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("emailfmt", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	return v
}

// fieldErrors converts validator output into the per-field message map.
func (s *userService) fieldErrors(req any) ValidationErrors {
	errs := ValidationErrors{}

	err := s.validate.Struct(req)
	if err == nil {
		return errs
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		errs.Add("non_field_errors", err.Error())
		return errs
	}

	for _, fe := range verrs {
		if errs.Has(fe.Field()) {
			continue
		}
		switch fe.Tag() {
		case "required":
			errs.Add(fe.Field(), msgRequired)
		case "max":
			errs.Add(fe.Field(), fmt.Sprintf("Asegúrese de que este campo no tenga más de %s caracteres.", fe.Param()))
		case "emailfmt":
			errs.Add(fe.Field(), msgInvalidEmail)
		default:
			errs.Add(fe.Field(), "Valor inválido.")
		}
	}
	return errs
}

func (s *userService) Signup(ctx context.Context, req SignupRequest) (*User, error) {
	log := config.WithContext(ctx)

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)

	errs := s.fieldErrors(req)

	if !errs.Has("email") {
		inUse, err := s.repo.EmailInUse(ctx, req.Email)
		if err != nil {
			log.WithError(err).Error("Failed to check email availability")
			return nil, err
		}
		if inUse {
			errs.Add("email", msgEmailTaken)
		}
	}
	if !errs.Has("password") {
		if err := auth.ValidatePassword(req.Password); err != nil {
			errs.Add("password", err.Error())
		}
	}
	if !errs.Has("terms") && !*req.Terms {
		errs.Add("terms", msgTerms)
	}

	if len(errs) > 0 {
		log.WithField("fields", len(errs)).Info("Signup rejected by validation")
		return nil, errs
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		log.WithError(err).Error("Failed to hash password")
		return nil, err
	}

	var created *User
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		username, err := GenerateUsername(ctx, repo, req.FirstName, req.LastName)
		if err != nil {
			return fmt.Errorf("generate username: %w", err)
		}

		u := &User{
			Username:     username,
			Email:        req.Email,
			PasswordHash: hash,
			FirstName:    req.FirstName,
			LastName:     req.LastName,
			IsActive:     true,
		}
		if err := repo.Create(ctx, u); err != nil {
			return fmt.Errorf("create user: %w", err)
		}

		email := req.Email
		p := &Persona{
			UserID:    u.ID,
			Nombre1:   req.FirstName,
			Apellido1: req.LastName,
			Correo:    &email,
		}
		p.IsActive = true
		p.Audit(u.ID)
		if err := repo.CreatePersona(ctx, p); err != nil {
			return fmt.Errorf("create persona: %w", err)
		}

		u.Persona = p
		created = u
		return nil
	})
	if err != nil {
		log.WithError(err).Error("Failed to create account")
		return nil, err
	}

	log.WithFields(logrus.Fields{"new_user_id": created.ID, "username": created.Username}).Info("Account created")
	return created, nil
}

func (s *userService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	log := config.WithContext(ctx)

	req.Email = strings.TrimSpace(req.Email)
	if errs := s.fieldErrors(req); len(errs) > 0 {
		return nil, errs
	}

	u, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			log.Info("Login attempt for unknown email")
			return nil, ErrEmailNotRegistered
		}
		log.WithError(err).Error("Failed to load user for login")
		return nil, err
	}

	if err := auth.CheckPassword(u.PasswordHash, req.Password); err != nil {
		log.WithField("login_user_id", u.ID).Info("Login attempt with wrong password")
		return nil, ErrWrongPassword
	}

	if !u.IsActive {
		log.WithField("login_user_id", u.ID).Warn("Login attempt on inactive account")
		return nil, ErrInactiveAccount
	}

	data := toUserData(u)
	role := auth.RoleStudent
	if u.IsStaff {
		role = auth.RoleStaff
	}

	var personaID uint
	if data.PersonaID != nil {
		personaID = *data.PersonaID
	}
	token, err := auth.GenerateJWT(u.ID, personaID, role, s.tokenTTL)
	if err != nil {
		log.WithError(err).Error("Failed to sign token")
		return nil, err
	}

	if err := s.repo.TouchLastLogin(ctx, u.ID, s.now()); err != nil {
		log.WithError(err).Warn("Failed to update last login")
	}

	log.WithField("login_user_id", u.ID).Info("User logged in")
	return &LoginResponse{
		Result:  true,
		Message: "Inicio de sesión exitoso",
		Token:   token,
		User:    data,
	}, nil
}

func (s *userService) Me(ctx context.Context, userID uint) (*UserData, error) {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	data := toUserData(u)
	return &data, nil
}

func (s *userService) GetProfile(ctx context.Context, userID uint) (*ProfileResponse, error) {
	p, err := s.repo.GetPersonaByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.toProfile(ctx, p), nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID uint, dto UpdateProfileDTO) (*ProfileResponse, error) {
	log := config.WithContext(ctx)

	p, err := s.repo.GetPersonaByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	errs := s.fieldErrors(dto)

	if dto.FechaNacimiento != nil && !errs.Has("fecha_nacimiento") {
		if strings.TrimSpace(*dto.FechaNacimiento) == "" {
			p.FechaNacimiento = nil
		} else if t, err := util.ParseDate(*dto.FechaNacimiento); err != nil {
			errs.Add("fecha_nacimiento", msgInvalidDate)
		} else {
			d := util.NewLocalDate(t)
			p.FechaNacimiento = &d
		}
	}

	if dto.Genero != nil && !errs.Has("genero") {
		g, err := s.catalog.FindGeneroByNombre(ctx, NormalizeText(*dto.Genero))
		switch {
		case errors.Is(err, catalog.ErrValueNotFound):
			errs.Add("genero", msgUnknownGenero)
		case err != nil:
			return nil, err
		default:
			p.GeneroID = &g.ID
			p.Genero = g
		}
	}

	if dto.Cedula != nil && !errs.Has("cedula") {
		cedula := strings.TrimSpace(*dto.Cedula)
		if !cedulaPattern.MatchString(cedula) {
			errs.Add("cedula", msgInvalidCedula)
		} else {
			enc, err := config.Encrypt(cedula)
			if err != nil {
				log.WithError(err).Error("Failed to encrypt cedula")
				return nil, err
			}
			p.Cedula = &enc
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}

	if dto.Nombre2 != nil {
		p.Nombre2 = strings.TrimSpace(*dto.Nombre2)
	}
	if dto.Apellido2 != nil {
		p.Apellido2 = strings.TrimSpace(*dto.Apellido2)
	}
	if dto.Telefono != nil {
		p.Telefono = dto.Telefono
	}
	if dto.Direccion != nil {
		p.Direccion = dto.Direccion
	}
	p.Touch(userID)

	if err := s.repo.UpdatePersona(ctx, p); err != nil {
		log.WithError(err).Error("Failed to update persona")
		return nil, err
	}

	log.WithField("persona_id", p.ID).Info("Profile updated")
	return s.toProfile(ctx, p), nil
}

// EnsureAdmin creates a staff account with the given credentials unless the
// email is already registered.
func (s *userService) EnsureAdmin(ctx context.Context, email, password string) (*User, error) {
	log := config.WithContext(ctx)

	email = strings.ToLower(strings.TrimSpace(email))
	if existing, err := s.repo.GetByEmail(ctx, email); err == nil {
		return existing, nil
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	if err := auth.ValidatePassword(password); err != nil {
		return nil, fmt.Errorf("admin password: %w", err)
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	u := &User{Username: "admin", Email: email, PasswordHash: hash, FirstName: "Admin", IsStaff: true, IsActive: true}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if taken, err := repo.UsernameExists(ctx, u.Username); err != nil {
			return err
		} else if taken {
			if u.Username, err = GenerateUsername(ctx, repo, "admin", "admin"); err != nil {
				return err
			}
		}
		if err := repo.Create(ctx, u); err != nil {
			return err
		}
		p := &Persona{UserID: u.ID, Nombre1: "Admin", Correo: &email}
		p.IsActive = true
		return repo.CreatePersona(ctx, p)
	})
	if err != nil {
		return nil, err
	}

	log.WithField("admin_user_id", u.ID).Info("Admin account created")
	return u, nil
}

func toUserData(u *User) UserData {
	data := UserData{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		IsStaff:   u.IsStaff,
	}
	if u.Persona != nil && u.Persona.ID != 0 {
		id := u.Persona.ID
		data.PersonaID = &id
	}
	return data
}

func (s *userService) toProfile(ctx context.Context, p *Persona) *ProfileResponse {
	resp := &ProfileResponse{
		ID:              p.ID,
		UserID:          p.UserID,
		NombreCompleto:  p.NombreCompleto(),
		Nombre1:         p.Nombre1,
		Nombre2:         p.Nombre2,
		Apellido1:       p.Apellido1,
		Apellido2:       p.Apellido2,
		Correo:          p.Correo,
		FechaNacimiento: p.FechaNacimiento,
		Telefono:        p.Telefono,
		Direccion:       p.Direccion,
	}
	if p.User != nil {
		resp.Username = p.User.Username
	}
	if p.Genero != nil {
		nombre := p.Genero.Nombre
		resp.Genero = &nombre
	}
	if p.Cedula != nil {
		plain, err := config.Decrypt(*p.Cedula)
		if err != nil {
			config.WithContext(ctx).WithError(err).Warn("Failed to decrypt cedula")
		} else {
			resp.Cedula = &plain
		}
	}
	return resp
}

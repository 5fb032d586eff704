package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
)

type UserRepository interface {
	WithTx(tx *gorm.DB) UserRepository

	Create(ctx context.Context, u *User) error
	CreatePersona(ctx context.Context, p *Persona) error
	GetByID(ctx context.Context, id uint) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	EmailInUse(ctx context.Context, email string) (bool, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	CountUsernamePrefix(ctx context.Context, prefix string) (int64, error)
	TouchLastLogin(ctx context.Context, id uint, at time.Time) error

	GetPersonaByUserID(ctx context.Context, userID uint) (*Persona, error)
	GetPersonaByID(ctx context.Context, id uint) (*Persona, error)
	UpdatePersona(ctx context.Context, p *Persona) error
}

type userRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) WithTx(tx *gorm.DB) UserRepository {
	return &userRepository{db: tx}
}

func (r *userRepository) Create(ctx context.Context, u *User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *userRepository) CreatePersona(ctx context.Context, p *Persona) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*User, error) {
	var u User
	if err := r.db.WithContext(ctx).Preload("Persona").First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).
		Preload("Persona").
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) EmailInUse(ctx context.Context, email string) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var count int64
	if err := r.db.WithContext(ctx).Model(&User{}).Where("LOWER(email) = ?", email).Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return true, nil
	}
	if err := r.db.WithContext(ctx).Model(&Persona{}).Where("LOWER(correo) = ?", email).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *userRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&User{}).Where("username = ?", username).Count(&count).Error
	return count > 0, err
}

// likeEscaper quotes LIKE wildcards for ESCAPE '!'.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

func (r *userRepository) CountUsernamePrefix(ctx context.Context, prefix string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&User{}).
		Where("username LIKE ? ESCAPE '!'", likeEscaper.Replace(prefix)+"%").
		Count(&count).Error
	return count, err
}

func (r *userRepository) TouchLastLogin(ctx context.Context, id uint, at time.Time) error {
	return r.db.WithContext(ctx).Model(&User{}).Where("id = ?", id).Update("last_login", at).Error
}

func (r *userRepository) GetPersonaByUserID(ctx context.Context, userID uint) (*Persona, error) {
	return r.firstPersona(r.db.WithContext(ctx).Where("user_id = ?", userID))
}

func (r *userRepository) GetPersonaByID(ctx context.Context, id uint) (*Persona, error) {
	return r.firstPersona(r.db.WithContext(ctx).Where("id = ?", id))
}

func (r *userRepository) firstPersona(q *gorm.DB) (*Persona, error) {
	var p Persona
	if err := q.Preload("User").Preload("Genero").First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPersonaNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *userRepository) UpdatePersona(ctx context.Context, p *Persona) error {
	return r.db.WithContext(ctx).Omit("User", "Genero").Save(p).Error
}

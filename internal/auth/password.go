package auth

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

const (
	MinPasswordLength = 8
	specialChars      = `!@#$%^&*(),.?":{}|<>`
)

var (
	ErrPasswordTooShort     = errors.New("La contraseña debe tener mínimo 8 caracteres")
	ErrPasswordNoUppercase  = errors.New("Debe contener al menos una letra mayúscula")
	ErrPasswordNoLowercase  = errors.New("Debe contener al menos una letra minúscula")
	ErrPasswordNoDigit      = errors.New("Debe contener al menos un número")
	ErrPasswordNoSpecial    = errors.New("Debe contener al menos un caracter especial")
	ErrPasswordHashMismatch = errors.New("password does not match")
)

// ValidatePassword returns the first policy rule the password breaks, in the
// order length, uppercase, lowercase, digit, special character.
func ValidatePassword(password string) error {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}

	var upper, lower, digit bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}

	switch {
	case !upper:
		return ErrPasswordNoUppercase
	case !lower:
		return ErrPasswordNoLowercase
	case !digit:
		return ErrPasswordNoDigit
	case !strings.ContainsAny(password, specialChars):
		return ErrPasswordNoSpecial
	}
	return nil
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func CheckPassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrPasswordHashMismatch
	}
	return nil
}

package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zelenmun/EvalUp/internal/auth"
)

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     error
	}{
		{"valid", "Secreta1!", nil},
		{"too short", "Ab1!", auth.ErrPasswordTooShort},
		{"short beats other rules", "abc", auth.ErrPasswordTooShort},
		{"no uppercase", "secreta1!", auth.ErrPasswordNoUppercase},
		{"no lowercase", "SECRETA1!", auth.ErrPasswordNoLowercase},
		{"no digit", "Secretaa!", auth.ErrPasswordNoDigit},
		{"no special", "Secreta12", auth.ErrPasswordNoSpecial},
		{"accented letters count as length", "Contraseña1|", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, auth.ValidatePassword(tt.password))
		})
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := auth.HashPassword("Secreta1!")
	require.NoError(t, err)
	assert.NotEqual(t, "Secreta1!", hash)

	assert.NoError(t, auth.CheckPassword(hash, "Secreta1!"))
	assert.ErrorIs(t, auth.CheckPassword(hash, "Otra1234!"), auth.ErrPasswordHashMismatch)
}

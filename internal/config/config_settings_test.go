package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/zelenmun/EvalUp/internal/config"
)

func TestLoadSettings(t *testing.T) {
	t.Setenv("EVALUP_DB_DRIVER", "SQLite")
	t.Setenv("EVALUP_CORS_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("EVALUP_JWT_TTL", "2h")

	s := config.Load(config.NewViper())

	assert.Equal(t, ":8080", s.Addr)
	assert.Equal(t, config.DriverSQLite, s.DBDriver)
	assert.Equal(t, 2*time.Hour, s.JWTTTL)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, s.CORSOrigins)
	assert.Equal(t, "gemini", s.AIProvider)
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := config.Open("oracle", "dsn")
	assert.ErrorIs(t, err, config.ErrUnsupportedDriver)
}

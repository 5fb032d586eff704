package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zelenmun/EvalUp/internal/catalog"
	"github.com/zelenmun/EvalUp/internal/config"
	"github.com/zelenmun/EvalUp/internal/report"
	"github.com/zelenmun/EvalUp/internal/user"
)

func run(t *testing.T, args ...string) string {
	t.Helper()

	var out bytes.Buffer
	cmd := rootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute())
	return out.String()
}

func TestMigrateAndReport(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "evalup.db")
	db := []string{"--db-driver", config.DriverSQLite, "--db-dsn", dsn, "--log-level", "error"}

	run(t, append([]string{"migrate", "--admin-email", "admin@evalup.test", "--admin-password", "Admin123!"}, db...)...)

	var admin user.User
	require.NoError(t, config.DB.Where("email = ?", "admin@evalup.test").First(&admin).Error)
	assert.True(t, admin.IsStaff)

	var niveles int64
	require.NoError(t, config.DB.Model(&catalog.NivelExamen{}).Count(&niveles).Error)
	assert.Equal(t, int64(3), niveles)

	// a second run is idempotent
	run(t, append([]string{"migrate", "--admin-email", "admin@evalup.test", "--admin-password", "Admin123!"}, db...)...)
	require.NoError(t, config.DB.Model(&catalog.NivelExamen{}).Count(&niveles).Error)
	assert.Equal(t, int64(3), niveles)

	stdout := run(t, append([]string{"report", "--estado", catalog.EstadoExamenPendiente}, db...)...)
	var rep map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &rep))
	assert.Equal(t, map[string]any{"estado": catalog.EstadoExamenPendiente}, rep["metadata"].(map[string]any)["filters_applied"])
	assert.Equal(t, []any{}, rep["examenes"])

	path := filepath.Join(t.TempDir(), "reporte.json")
	assert.Empty(t, run(t, append([]string{"report", "-o", path}, db...)...))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"statistics"`)
}

type closeFailer struct {
	bytes.Buffer
	closed bool
}

func (c *closeFailer) Close() error {
	c.closed = true
	return errors.New("disk full")
}

func TestWriteReportReportsCloseError(t *testing.T) {
	w := &closeFailer{}
	err := writeReport(w, &report.Report{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "close output")
	assert.True(t, w.closed)
	assert.Contains(t, w.String(), `"metadata"`)
}

package user_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zelenmun/EvalUp/internal/auth"
	"github.com/zelenmun/EvalUp/internal/catalog"
	"github.com/zelenmun/EvalUp/internal/testutil"
	"github.com/zelenmun/EvalUp/internal/user"
)

func newRouter(t *testing.T) http.Handler {
	t.Helper()
	db := testutil.NewDB(t)
	c := user.NewUserContainer(db, catalog.NewRepository(db), time.Hour, false)

	r := chi.NewRouter()
	r.Mount("/auth", user.AuthRoutes(c.Handler, auth.NewHandler(false)))
	r.Mount("/personas", user.Routes(c.Handler))
	return r
}

func do(t *testing.T, h http.Handler, method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAuthHandlers(t *testing.T) {
	h := newRouter(t)

	signup := `{"firstName":"Oscar","lastName":"Morán","email":"oscar@example.com","password":"Secreta1!","terms":true}`
	rec := do(t, h, http.MethodPost, "/auth/signup", signup)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "Su cuenta ha sido creada exitosamente")

	rec = do(t, h, http.MethodPost, "/auth/signup", signup)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	var verrs map[string][]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &verrs))
	assert.Equal(t, []string{"El correo electrónico ya está en uso"}, verrs["email"])

	rec = do(t, h, http.MethodPost, "/auth/signup", `{`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPost, "/auth/login", `{"email":"oscar@example.com","password":"Mala1234!"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Contraseña incorrecta")

	rec = do(t, h, http.MethodPost, "/auth/login", `{"email":"nadie@example.com","password":"Secreta1!"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Email no registrado")

	rec = do(t, h, http.MethodPost, "/auth/login", `{"email":"oscar@example.com","password":"Secreta1!"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var login user.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))
	assert.NotEmpty(t, login.Token)
	assert.Equal(t, "omoranr", login.User.Username)

	var session *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == auth.CookieName {
			session = c
		}
	}
	require.NotNil(t, session)
	assert.Equal(t, login.Token, session.Value)
	assert.True(t, session.HttpOnly)
	assert.Equal(t, 3600, session.MaxAge)

	rec = do(t, h, http.MethodGet, "/auth/user", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, h, http.MethodGet, "/auth/user", "", session)
	require.Equal(t, http.StatusOK, rec.Code)
	var me user.UserData
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &me))
	assert.Equal(t, "oscar@example.com", me.Email)
	assert.NotNil(t, me.PersonaID)

	rec = do(t, h, http.MethodPut, "/personas/me", `{"cedula":"0102030405","genero":"Masculino"}`, session)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var profile user.ProfileResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &profile))
	require.NotNil(t, profile.Cedula)
	assert.Equal(t, "0102030405", *profile.Cedula)

	rec = do(t, h, http.MethodPut, "/personas/me", `{"cedula":"abc"}`, session)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodGet, "/personas/me", "", session)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"nombre_completo":"Oscar Morán"`)

	rec = do(t, h, http.MethodPost, "/auth/logout", "", session)
	require.Equal(t, http.StatusOK, rec.Code)
	cleared := rec.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Equal(t, auth.CookieName, cleared[0].Name)
	assert.Negative(t, cleared[0].MaxAge)
}

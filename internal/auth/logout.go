package auth

import (
	"net/http"

	"github.com/zelenmun/EvalUp/internal/config"
)

type Handler struct {
	secureCookies bool
}

func NewHandler(secureCookies bool) *Handler {
	return &Handler{secureCookies: secureCookies}
}

// Logout clears the session cookie. Bearer tokens are stateless and simply
// dropped by the client.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	config.WithContext(r.Context()).Info("User logged out")
	config.Message(w, http.StatusOK, true, "Sesión cerrada")
}

package user

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/zelenmun/EvalUp/internal/auth"
	"github.com/zelenmun/EvalUp/internal/config"
)

type Handler struct {
	service       UserService
	secureCookies bool
	cookieTTL     time.Duration
}

func NewHandler(service UserService, secureCookies bool, cookieTTL time.Duration) *Handler {
	return &Handler{service: service, secureCookies: secureCookies, cookieTTL: cookieTTL}
}

func writeValidation(w http.ResponseWriter, err error) bool {
	var verrs ValidationErrors
	if errors.As(err, &verrs) {
		config.JSON(w, http.StatusBadRequest, verrs)
		return true
	}
	return false
}

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.WithError(err).Warn("Invalid signup body")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if _, err := h.service.Signup(r.Context(), req); err != nil {
		if writeValidation(w, err) {
			return
		}
		log.WithError(err).Error("Signup failed")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	config.Message(w, http.StatusCreated, true, "Su cuenta ha sido creada exitosamente")
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.WithError(err).Warn("Invalid login body")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.service.Login(r.Context(), req)
	if err != nil {
		switch {
		case writeValidation(w, err):
		case errors.Is(err, ErrEmailNotRegistered), errors.Is(err, ErrWrongPassword):
			config.Message(w, http.StatusUnauthorized, false, err.Error())
		case errors.Is(err, ErrInactiveAccount):
			config.Message(w, http.StatusForbidden, false, err.Error())
		default:
			log.WithError(err).Error("Login failed")
			http.Error(w, "internal server error", http.StatusInternalServerError)
		}
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    resp.Token,
		Path:     "/",
		MaxAge:   int(h.cookieTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	config.JSON(w, http.StatusOK, resp)
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	data, err := h.service.Me(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}
		log.WithError(err).Error("Failed to load current user")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	config.JSON(w, http.StatusOK, data)
}

func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	profile, err := h.service.GetProfile(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, ErrPersonaNotFound) {
			http.Error(w, "persona not found", http.StatusNotFound)
			return
		}
		log.WithError(err).Error("Failed to load profile")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	config.JSON(w, http.StatusOK, profile)
}

func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var dto UpdateProfileDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	profile, err := h.service.UpdateProfile(r.Context(), claims.UserID, dto)
	if err != nil {
		switch {
		case writeValidation(w, err):
		case errors.Is(err, ErrPersonaNotFound):
			http.Error(w, "persona not found", http.StatusNotFound)
		default:
			log.WithError(err).Error("Failed to update profile")
			http.Error(w, "internal server error", http.StatusInternalServerError)
		}
		return
	}

	config.JSON(w, http.StatusOK, profile)
}

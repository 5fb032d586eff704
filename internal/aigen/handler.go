package aigen

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/zelenmun/EvalUp/internal/catalog"
	"github.com/zelenmun/EvalUp/internal/config"
)

type Handler struct {
	service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{service: s}
}

func writeError(w http.ResponseWriter, r *http.Request, err error, action string) {
	log := config.WithContext(r.Context())
	var verrs validator.ValidationErrors

	switch {
	case errors.Is(err, ErrUnauthorized):
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	case errors.Is(err, ErrNoPersona):
		http.Error(w, "user has no persona", http.StatusForbidden)
	case errors.As(err, &verrs):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, catalog.ErrAreaNotFound),
		errors.Is(err, catalog.ErrTemaNotFound),
		errors.Is(err, catalog.ErrNivelNotFound),
		errors.Is(err, catalog.ErrPlantillaNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrProvider):
		log.WithError(err).Errorf("Failed to %s", action)
		http.Error(w, "failed to generate questions", http.StatusBadGateway)
	default:
		log.WithError(err).Errorf("Failed to %s", action)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var req GenerationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.service.Generate(r.Context(), req)
	if err != nil {
		writeError(w, r, err, "generate exam")
		return
	}
	config.JSON(w, http.StatusCreated, resp)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	rows, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, r, err, "list generations")
		return
	}
	config.JSON(w, http.StatusOK, rows)
}

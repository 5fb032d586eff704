package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/zelenmun/EvalUp/internal/auth"
	"github.com/zelenmun/EvalUp/internal/config"
)

type Handler struct {
	service  Service
	validate *validator.Validate
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service, validate: validator.New()}
}

func list[T any](w http.ResponseWriter, r *http.Request, fetch func(context.Context) ([]T, error)) {
	rows, err := fetch(r.Context())
	if err != nil {
		config.WithContext(r.Context()).WithError(err).Error("Failed to list catalog")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if rows == nil {
		rows = []T{}
	}
	config.JSON(w, http.StatusOK, rows)
}

func (h *Handler) ListAreas(w http.ResponseWriter, r *http.Request) {
	list(w, r, h.service.Areas)
}

func (h *Handler) ListNiveles(w http.ResponseWriter, r *http.Request) {
	list(w, r, h.service.Niveles)
}

func (h *Handler) ListEstados(w http.ResponseWriter, r *http.Request) {
	list(w, r, h.service.EstadosExamen)
}

func (h *Handler) ListTiposPregunta(w http.ResponseWriter, r *http.Request) {
	list(w, r, h.service.TiposPregunta)
}

func (h *Handler) ListGeneros(w http.ResponseWriter, r *http.Request) {
	list(w, r, h.service.Generos)
}

func (h *Handler) ListPlantillas(w http.ResponseWriter, r *http.Request) {
	list(w, r, h.service.Plantillas)
}

func (h *Handler) ListTemas(w http.ResponseWriter, r *http.Request) {
	areaID, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid area id", http.StatusBadRequest)
		return
	}

	temas, err := h.service.Temas(r.Context(), uint(areaID))
	if errors.Is(err, ErrAreaNotFound) {
		http.Error(w, "area not found", http.StatusNotFound)
		return
	}
	list(w, r, func(context.Context) ([]TemaAreaEstudio, error) { return temas, err })
}

func (h *Handler) CreateArea(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var dto CreateAreaDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	area, err := h.service.CreateArea(r.Context(), claims.UserID, dto)
	if err != nil {
		if errors.Is(err, ErrAreaExists) {
			http.Error(w, "area already exists", http.StatusConflict)
			return
		}
		log.WithError(err).Error("Failed to create area")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	config.JSON(w, http.StatusCreated, area)
}

func (h *Handler) CreateTema(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	areaID, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid area id", http.StatusBadRequest)
		return
	}

	var dto CreateTemaDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	tema, err := h.service.CreateTema(r.Context(), claims.UserID, uint(areaID), dto)
	if err != nil {
		if errors.Is(err, ErrAreaNotFound) {
			http.Error(w, "area not found", http.StatusNotFound)
			return
		}
		log.WithError(err).Error("Failed to create tema")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	config.JSON(w, http.StatusCreated, tema)
}

func (h *Handler) CreatePlantilla(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var dto CreatePlantillaDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	plantilla, err := h.service.CreatePlantilla(r.Context(), claims.UserID, dto)
	if err != nil {
		log.WithError(err).Error("Failed to create plantilla")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	config.JSON(w, http.StatusCreated, plantilla)
}

package exam

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/zelenmun/EvalUp/internal/config"
)

type Handler struct {
	service ExamService
}

func NewHandler(s ExamService) *Handler {
	return &Handler{service: s}
}

func examID(r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func writeError(w http.ResponseWriter, r *http.Request, err error, action string) {
	var verrs validator.ValidationErrors
	switch {
	case errors.Is(err, ErrUnauthorized):
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	case errors.Is(err, ErrForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
	case errors.Is(err, ErrExamNotFound), errors.Is(err, ErrRespuestaNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrInvalidState):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, ErrPreguntaNotInExam), errors.Is(err, ErrDuplicateAnswer), errors.As(err, &verrs):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		config.WithContext(r.Context()).WithError(err).Errorf("Failed to %s", action)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) GetExam(w http.ResponseWriter, r *http.Request) {
	id, ok := examID(r)
	if !ok {
		http.Error(w, "invalid exam id", http.StatusBadRequest)
		return
	}

	detail, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err, "get exam")
		return
	}
	config.JSON(w, http.StatusOK, detail)
}

func (h *Handler) StartExam(w http.ResponseWriter, r *http.Request) {
	id, ok := examID(r)
	if !ok {
		http.Error(w, "invalid exam id", http.StatusBadRequest)
		return
	}

	detail, err := h.service.Start(r.Context(), id)
	if err != nil {
		writeError(w, r, err, "start exam")
		return
	}
	config.JSON(w, http.StatusOK, detail)
}

func (h *Handler) SubmitAnswers(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	id, ok := examID(r)
	if !ok {
		http.Error(w, "invalid exam id", http.StatusBadRequest)
		return
	}

	var dto SubmitDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Warn("Invalid submit body")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	detail, err := h.service.Submit(r.Context(), id, dto)
	if err != nil {
		writeError(w, r, err, "submit answers")
		return
	}
	config.JSON(w, http.StatusOK, detail)
}

func (h *Handler) GradeExam(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	id, ok := examID(r)
	if !ok {
		http.Error(w, "invalid exam id", http.StatusBadRequest)
		return
	}

	var dto GradeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Warn("Invalid grade body")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	detail, err := h.service.Grade(r.Context(), id, dto)
	if err != nil {
		writeError(w, r, err, "grade exam")
		return
	}
	config.JSON(w, http.StatusOK, detail)
}

func (h *Handler) DeleteExam(w http.ResponseWriter, r *http.Request) {
	id, ok := examID(r)
	if !ok {
		http.Error(w, "invalid exam id", http.StatusBadRequest)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeError(w, r, err, "delete exam")
		return
	}
	config.JSON(w, http.StatusOK, map[string]string{"message": "examen eliminado"})
}

func (h *Handler) ListHistory(w http.ResponseWriter, r *http.Request) {
	id, ok := examID(r)
	if !ok {
		http.Error(w, "invalid exam id", http.StatusBadRequest)
		return
	}

	entries, err := h.service.History(r.Context(), id)
	if err != nil {
		writeError(w, r, err, "list exam history")
		return
	}
	config.JSON(w, http.StatusOK, entries)
}

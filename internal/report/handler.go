package report

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/zelenmun/EvalUp/internal/auth"
	"github.com/zelenmun/EvalUp/internal/config"
	util "github.com/zelenmun/EvalUp/internal/utils"
)

type Handler struct {
	service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{service: s}
}

func parseUint(s string) *uint {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil || v == 0 {
		return nil
	}
	id := uint(v)
	return &id
}

func parseDate(s string) *time.Time {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	t, err := util.ParseDate(s)
	if err != nil {
		return nil
	}
	return &t
}

// ParseQuery reads the report filters from URL values. Values that do not
// parse are ignored.
func ParseQuery(values url.Values) Query {
	q := Query{
		PersonaID:   parseUint(values.Get("persona_id")),
		Estado:      strings.TrimSpace(values.Get("estado")),
		AreaEstudio: strings.TrimSpace(values.Get("area_estudio")),
		Nivel:       strings.TrimSpace(values.Get("nivel")),
		FechaDesde:  parseDate(values.Get("fecha_desde")),
		FechaHasta:  parseDate(values.Get("fecha_hasta")),
	}
	if n, err := strconv.Atoi(strings.TrimSpace(values.Get("calificacion_minima"))); err == nil {
		q.CalificacionMinima = &n
	}
	return q
}

func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	q := ParseQuery(r.URL.Query())
	if raw := chi.URLParam(r, "examID"); raw != "" {
		q.ExamID = parseUint(raw)
	}

	rep, err := h.service.GenerateCompleteReport(r.Context(), q)
	if err != nil {
		config.JSON(w, http.StatusInternalServerError, map[string]any{
			"error":   true,
			"message": "Error al generar el reporte: " + err.Error(),
			"details": err.Error(),
		})
		return
	}
	config.JSON(w, http.StatusOK, rep)
}

func (h *Handler) StudentOverview(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	if claims.PersonaID == 0 {
		log.Warn("Student overview requested by a user without persona")
		config.JSON(w, http.StatusBadRequest, map[string]string{"error": "Persona no encontrada"})
		return
	}

	overview, err := h.service.StudentOverview(r.Context(), claims.PersonaID)
	if err != nil {
		config.JSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	config.JSON(w, http.StatusOK, overview)
}

package dashboard

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"peoplehub/internal/domain/dashboard"
	"peoplehub/internal/transport/http/api"
)

type Handler struct {
	Dashboard *dashboard.Store
}

func NewHandler(store *dashboard.Store) *Handler {
	return &Handler{Dashboard: store}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/stats", h.stats)
	r.Get("/trends", h.trends)
}

func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	overview, err := h.Dashboard.Overview(r.Context())
	if err != nil {
		api.Error(w, err)
		return
	}
	api.Success(w, overview)
}

func (h *Handler) trends(w http.ResponseWriter, r *http.Request) {
	months := 6
	if raw := r.URL.Query().Get("months"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 && v <= 24 {
			months = v
		}
	}
	trends, err := h.Dashboard.TrendData(r.Context(), months)
	if err != nil {
		api.Error(w, err)
		return
	}
	api.Success(w, trends)
}

package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/Densingh-123/Home-Services/identity"
	"github.com/Densingh-123/Home-Services/social-svc/internal/service"
)

type Handler struct {
	Metrics  service.MetricsServiceInterface
	Identity identity.Provider
	Logger   *zap.Logger
}

func NewHandler(metrics service.MetricsServiceInterface, provider identity.Provider, logger *zap.Logger) *Handler {
	return &Handler{Metrics: metrics, Identity: provider, Logger: logger}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/api/businesses/{id}/metrics", h.getMetrics).Methods("GET")
	r.HandleFunc("/api/businesses/{id}/likes", h.toggleLike).Methods("POST")
	r.HandleFunc("/api/businesses/{id}/ratings", h.addRating).Methods("POST")
	r.HandleFunc("/api/businesses/{id}/comments", h.addComment).Methods("POST")
	r.HandleFunc("/api/me/likes", h.likedBusinesses).Methods("GET")
}

func (h *Handler) getMetrics(w http.ResponseWriter, r *http.Request) {
	caller, _ := h.Identity.CurrentPrincipal(r.Context())

	metrics, err := h.Metrics.GetMetrics(r.Context(), mux.Vars(r)["id"], caller)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, metrics)
}

func (h *Handler) toggleLike(w http.ResponseWriter, r *http.Request) {
	caller, _ := h.Identity.CurrentPrincipal(r.Context())

	liked, err := h.Metrics.ToggleLike(r.Context(), mux.Vars(r)["id"], caller)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"liked": liked})
}

func (h *Handler) addRating(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Rating int `json:"rating"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}
	caller, _ := h.Identity.CurrentPrincipal(r.Context())

	average, err := h.Metrics.AddRating(r.Context(), mux.Vars(r)["id"], caller, payload.Rating)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]float64{"averageRating": average})
}

func (h *Handler) addComment(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Comment string `json:"comment"`
		Rating  int    `json:"rating"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}
	caller, _ := h.Identity.CurrentPrincipal(r.Context())

	id, err := h.Metrics.AddComment(r.Context(), mux.Vars(r)["id"], caller, payload.Comment, payload.Rating)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (h *Handler) likedBusinesses(w http.ResponseWriter, r *http.Request) {
	caller, _ := h.Identity.CurrentPrincipal(r.Context())

	liked, err := h.Metrics.LikedBusinesses(r.Context(), caller)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, liked)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrUnauthenticated):
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrInvalidArgument):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrStore):
		status = http.StatusBadGateway
	}
	if status >= http.StatusInternalServerError && h.Logger != nil {
		h.Logger.Error("request failed", zap.Error(err))
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/Densingh-123/Home-Services/directory-svc/internal/domain"
	"github.com/Densingh-123/Home-Services/directory-svc/internal/service"
	"github.com/Densingh-123/Home-Services/identity"
)

type Handler struct {
	Businesses service.BusinessServiceInterface
	Categories service.CategoryServiceInterface
	Sliders    service.SliderServiceInterface
	Cart       service.CartServiceInterface
	Identity   identity.Provider
	Logger     *zap.Logger
}

func NewHandler(businesses service.BusinessServiceInterface, categories service.CategoryServiceInterface, sliders service.SliderServiceInterface, cart service.CartServiceInterface, provider identity.Provider, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		Businesses: businesses,
		Categories: categories,
		Sliders:    sliders,
		Cart:       cart,
		Identity:   provider,
		Logger:     logger,
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/api/businesses", h.createBusiness).Methods("POST")
	r.HandleFunc("/api/businesses", h.listByCategory).Methods("GET")
	r.HandleFunc("/api/businesses/{id}", h.getBusiness).Methods("GET")
	r.HandleFunc("/api/businesses/{id}", h.deleteBusiness).Methods("DELETE")
	r.HandleFunc("/api/businesses/{id}/qrcode", h.getQRCode).Methods("GET")
	r.HandleFunc("/api/me/businesses", h.myBusinesses).Methods("GET")

	r.HandleFunc("/api/popular", h.popular).Methods("GET")
	r.HandleFunc("/api/trending", h.trending).Methods("GET")
	r.HandleFunc("/api/top-rated", h.topRated).Methods("GET")

	r.HandleFunc("/api/categories", h.listCategories).Methods("GET")
	r.HandleFunc("/api/categories", h.addCategory).Methods("POST")
	r.HandleFunc("/api/sliders", h.listSliders).Methods("GET")

	r.HandleFunc("/api/cart", h.listCart).Methods("GET")
	r.HandleFunc("/api/cart/{businessId}", h.addToCart).Methods("PUT")
	r.HandleFunc("/api/cart/{businessId}", h.removeFromCart).Methods("DELETE")
}

func (h *Handler) createBusiness(w http.ResponseWriter, r *http.Request) {
	var input domain.BusinessInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}
	caller, _ := h.Identity.CurrentPrincipal(r.Context())

	business, err := h.Businesses.Create(r.Context(), caller, input)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, business)
}

func (h *Handler) listByCategory(w http.ResponseWriter, r *http.Request) {
	businesses, err := h.Businesses.ListByCategory(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, businesses)
}

func (h *Handler) getBusiness(w http.ResponseWriter, r *http.Request) {
	business, err := h.Businesses.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, business)
}

func (h *Handler) deleteBusiness(w http.ResponseWriter, r *http.Request) {
	caller, _ := h.Identity.CurrentPrincipal(r.Context())

	if err := h.Businesses.Delete(r.Context(), caller, mux.Vars(r)["id"]); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getQRCode(w http.ResponseWriter, r *http.Request) {
	png, err := h.Businesses.QRCode(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

func (h *Handler) myBusinesses(w http.ResponseWriter, r *http.Request) {
	caller, _ := h.Identity.CurrentPrincipal(r.Context())

	businesses, err := h.Businesses.ListByOwner(r.Context(), caller)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, businesses)
}

func (h *Handler) popular(w http.ResponseWriter, r *http.Request) {
	limit, ok := parseLimit(w, r)
	if !ok {
		return
	}
	ranked, err := h.Businesses.Popular(r.Context(), limit)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ranked)
}

func (h *Handler) trending(w http.ResponseWriter, r *http.Request) {
	limit, ok := parseLimit(w, r)
	if !ok {
		return
	}
	ranked, err := h.Businesses.Trending(r.Context(), limit)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ranked)
}

func (h *Handler) topRated(w http.ResponseWriter, r *http.Request) {
	limit, ok := parseLimit(w, r)
	if !ok {
		return
	}
	ranked, err := h.Businesses.TopRated(r.Context(), limit)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ranked)
}

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Categories.List(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

func (h *Handler) addCategory(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.Identity.CurrentPrincipal(r.Context()); !ok {
		h.writeError(w, service.ErrUnauthenticated)
		return
	}
	var category domain.Category
	if err := json.NewDecoder(r.Body).Decode(&category); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}
	if err := h.Categories.Add(r.Context(), &category); err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, category)
}

func (h *Handler) listSliders(w http.ResponseWriter, r *http.Request) {
	slides, err := h.Sliders.List(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, slides)
}

func (h *Handler) listCart(w http.ResponseWriter, r *http.Request) {
	caller, _ := h.Identity.CurrentPrincipal(r.Context())

	items, err := h.Cart.List(r.Context(), caller)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handler) addToCart(w http.ResponseWriter, r *http.Request) {
	caller, _ := h.Identity.CurrentPrincipal(r.Context())

	item, err := h.Cart.Add(r.Context(), caller, mux.Vars(r)["businessId"])
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *Handler) removeFromCart(w http.ResponseWriter, r *http.Request) {
	caller, _ := h.Identity.CurrentPrincipal(r.Context())

	if err := h.Cart.Remove(r.Context(), caller, mux.Vars(r)["businessId"]); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func parseLimit(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0, true
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "limit must be a non-negative integer"})
		return 0, false
	}
	return limit, true
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrUnauthenticated):
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrInvalidArgument):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrStore):
		status = http.StatusBadGateway
	}
	if status >= http.StatusInternalServerError {
		h.Logger.Error("request failed", zap.Error(err))
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/Densingh-123/Home-Services/identity"
	"github.com/Densingh-123/Home-Services/middleware"
)

func NewRouter(handler *Handler, metrics *middleware.Metrics, logger *zap.Logger) http.Handler {
	r := mux.NewRouter()
	r.Use(metrics.Middleware, middleware.RequestLogger(logger), identity.Middleware)
	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")
	r.Handle("/metrics", metrics.Handler()).Methods("GET")
	handler.RegisterRoutes(r)

	return cors.New(cors.Options{
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}).Handler(r)
}

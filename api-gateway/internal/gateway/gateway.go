package gateway

import (
	"encoding/json"
	"io"
	"net/http"
	"regexp"
	"strings"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/Densingh-123/Home-Services/identity"
	"github.com/Densingh-123/Home-Services/middleware"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// TokenVerifier turns an Authorization header into a caller identifier.
type TokenVerifier interface {
	Principal(authHeader string) (string, error)
}

type Config struct {
	SocialSvcURL    string
	DirectorySvcURL string
}

type Gateway struct {
	config   Config
	client   HTTPClient
	verifier TokenVerifier
	logger   *zap.Logger
}

func NewGateway(config Config, client HTTPClient, verifier TokenVerifier, logger *zap.Logger) *Gateway {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gateway{
		config:   config,
		client:   client,
		verifier: verifier,
		logger:   logger,
	}
}

var socialPath = regexp.MustCompile(`^/api/businesses/[^/]+/(metrics|likes|ratings|comments)$`)

var directoryPrefixes = []string{
	"/api/businesses",
	"/api/categories",
	"/api/sliders",
	"/api/cart",
	"/api/popular",
	"/api/trending",
	"/api/top-rated",
	"/api/me/businesses",
}

func (g *Gateway) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "api-gateway",
	})
}

// Authenticate replaces any client supplied X-User-ID with the principal of
// a verified bearer token. Requests without a token continue anonymously;
// requests with a bad token are rejected.
func (g *Gateway) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Header.Del(identity.HeaderUserID)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			next.ServeHTTP(w, r)
			return
		}

		principal, err := g.verifier.Principal(authHeader)
		if err != nil {
			g.logger.Debug("rejected bearer token", zap.String("path", r.URL.Path), zap.Error(err))
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": identity.ErrInvalidToken.Error()})
			return
		}
		r.Header.Set(identity.HeaderUserID, principal)
		next.ServeHTTP(w, r)
	})
}

func (g *Gateway) ProxyRequest(w http.ResponseWriter, r *http.Request, targetURL string) {
	url := targetURL + r.URL.Path
	if r.URL.RawQuery != "" {
		url += "?" + r.URL.RawQuery
	}
	g.logger.Debug("proxy", zap.String("method", r.Method), zap.String("target", url))

	req, err := http.NewRequestWithContext(r.Context(), r.Method, url, r.Body)
	if err != nil {
		g.logger.Error("failed to create upstream request", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	for k, v := range r.Header {
		req.Header[k] = v
	}

	resp, err := g.client.Do(req)
	if err != nil {
		g.logger.Warn("upstream unavailable", zap.String("target", targetURL), zap.Error(err))
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "upstream unavailable"})
		return
	}
	defer resp.Body.Close()

	for k, v := range resp.Header {
		w.Header()[k] = v
	}
	w.WriteHeader(resp.StatusCode)

	if _, err := io.Copy(w, resp.Body); err != nil {
		g.logger.Warn("failed to copy upstream response", zap.Error(err))
	}
}

func (g *Gateway) RouteHandler(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path

	if socialPath.MatchString(path) || path == "/api/me/likes" {
		g.ProxyRequest(w, r, g.config.SocialSvcURL)
		return
	}

	for _, prefix := range directoryPrefixes {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			g.ProxyRequest(w, r, g.config.DirectorySvcURL)
			return
		}
	}

	g.logger.Debug("unmatched API route", zap.String("path", path))
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "API route not found"})
}

func (g *Gateway) SetupRoutes(metrics *middleware.Metrics) http.Handler {
	r := mux.NewRouter()
	r.Use(metrics.Middleware, middleware.RequestLogger(g.logger))
	r.HandleFunc("/health", g.HealthCheck).Methods("GET")
	r.Handle("/metrics", metrics.Handler()).Methods("GET")
	r.PathPrefix("/api/").Handler(g.Authenticate(http.HandlerFunc(g.RouteHandler)))
	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

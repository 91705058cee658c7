package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/df07/go-sdf-raytracer/pkg/config"
	"github.com/df07/go-sdf-raytracer/pkg/scene"
)

// Limits on request parameters
const (
	MaxImageSide = 4096
	MaxSamples   = 10000
	MaxBounces   = 1000
	MaxWorkers   = 256
)

// Server handles web requests for the raytracer
type Server struct {
	config *config.Config
	router *mux.Router
}

// NewServer creates a web server using the process configuration
func NewServer(cfg *config.Config) *Server {
	s := &Server{config: cfg}
	s.router = s.routes()
	return s
}

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(corsMiddleware)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", s.handleHealth).Methods("GET")
	api.HandleFunc("/scenes", s.handleScenes).Methods("GET")
	api.HandleFunc("/render", s.handleRender).Methods("GET")
	api.HandleFunc("/inspect", s.handleInspect).Methods("GET")

	return r
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// NewHTTPServer wraps the handler in an http.Server listening on the
// configured port. Renders stream for a long time, so there is no write timeout.
func (s *Server) NewHTTPServer() *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", s.config.Port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		next.ServeHTTP(w, r)
	})
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists built-in scenes and scene files
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	response, err := scene.ListAllScenes(s.config.ScenesDir)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, response)
}

// RenderRequest holds the parsed query parameters of a render or inspect request
type RenderRequest struct {
	Scene   string
	Width   int
	Height  int
	Samples int // -1 keeps the scene's value
	Bounces int // -1 keeps the scene's value
	Seed    uint64
	Workers int
}

// parseSceneParams reads the scene and image size shared by every request
func (s *Server) parseSceneParams(values url.Values) (*RenderRequest, error) {
	req := &RenderRequest{Scene: "default", Samples: -1, Bounces: -1}
	if name := values.Get("scene"); name != "" {
		req.Scene = name
	}

	var err error
	if req.Width, err = parseIntParam(values, "width", s.config.Width, 1, MaxImageSide); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(values, "height", s.config.Height, 1, MaxImageSide); err != nil {
		return nil, err
	}
	if req.Width*req.Height > s.config.MaxPixels {
		return nil, fmt.Errorf("image of %dx%d exceeds the limit of %d pixels", req.Width, req.Height, s.config.MaxPixels)
	}
	return req, nil
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	values := r.URL.Query()
	req, err := s.parseSceneParams(values)
	if err != nil {
		return nil, err
	}

	if req.Samples, err = parseIntParam(values, "samples", -1, 0, MaxSamples); err != nil {
		return nil, err
	}
	if req.Bounces, err = parseIntParam(values, "bounces", -1, 0, MaxBounces); err != nil {
		return nil, err
	}
	if req.Workers, err = parseIntParam(values, "workers", s.config.Workers, 0, MaxWorkers); err != nil {
		return nil, err
	}

	req.Seed = s.config.Seed
	if value := values.Get("seed"); value != "" {
		if req.Seed, err = strconv.ParseUint(value, 10, 64); err != nil {
			return nil, fmt.Errorf("invalid seed: %s", value)
		}
	}

	return req, nil
}

// loadScene resolves the requested scene and applies overrides. Only
// built-in IDs and files listed in the scenes directory are accepted.
func (s *Server) loadScene(req *RenderRequest) (*scene.Scene, error) {
	sceneObj, err := scene.ResolveID(req.Scene, s.config.ScenesDir)
	if err != nil {
		return nil, err
	}
	if req.Samples >= 0 {
		sceneObj.SampleCount = req.Samples
	}
	if req.Bounces >= 0 {
		sceneObj.MaxBounces = req.Bounces
	}
	return sceneObj, nil
}

// parseIntParam parses an integer parameter from URL query with validation.
// A missing parameter yields defaultValue without a range check.
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error writing response: %v", err)
	}
}

// Package v1 implements the native REST API.
package v1

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/casket-media/casket/internal/library"
	"github.com/casket-media/casket/internal/metadata"
	"github.com/casket-media/casket/internal/scanner"
)

// Version is set at build time.
var Version = "dev"

// Server is the v1 API server.
type Server struct {
	store     *library.Store
	scanner   *scanner.Scanner
	refresher *metadata.Refresher
	catalog   metadata.Catalog
	log       *slog.Logger
}

// New creates a new v1 API server.
func New(store *library.Store, sc *scanner.Scanner, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{store: store, scanner: sc, log: log}
}

// SetCatalog configures the external metadata catalog. Without it the
// metadata endpoints answer 502.
func (s *Server) SetCatalog(catalog metadata.Catalog) {
	s.catalog = catalog
	s.refresher = metadata.NewRefresher(s.store, catalog, s.log.With("component", "metadata"))
}

// RegisterRoutes registers API routes on the given mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	// Media
	mux.HandleFunc("GET /api/v1/media", s.listMedia)
	mux.HandleFunc("GET /api/v1/media/{id}", s.getMedia)
	mux.HandleFunc("GET /api/v1/media/{id}/details", s.getMediaDetails)
	mux.HandleFunc("GET /api/v1/media/{id}/stream", s.streamMedia)
	mux.HandleFunc("DELETE /api/v1/media/{id}", s.deleteMedia)

	// Episodes
	mux.HandleFunc("GET /api/v1/episodes/{id}", s.getEpisode)
	mux.HandleFunc("GET /api/v1/episodes/{id}/stream", s.streamEpisode)

	// Libraries
	mux.HandleFunc("GET /api/v1/libraries", s.listLibraries)
	mux.HandleFunc("POST /api/v1/libraries", s.createLibrary)
	mux.HandleFunc("DELETE /api/v1/libraries/{id}", s.deleteLibrary)
	mux.HandleFunc("POST /api/v1/libraries/{id}/scan", s.scanLibrary)

	// Metadata
	mux.HandleFunc("GET /api/v1/metadata/search", s.searchMetadata)
	mux.HandleFunc("POST /api/v1/metadata/refresh/{id}", s.refreshMetadata)

	// Watch progress
	mux.HandleFunc("GET /api/v1/progress/{mediaId}", s.getProgress)
	mux.HandleFunc("POST /api/v1/progress", s.updateProgress)
	mux.HandleFunc("GET /api/v1/users/{userId}/history", s.watchHistory)

	// System
	mux.HandleFunc("GET /api/v1/status", s.getStatus)
}

// Error response
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, code int, errCode, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: message, Code: errCode})
}

func writeJSON(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) getStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, statusResponse{Status: "online", Version: Version})
}

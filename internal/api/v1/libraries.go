package v1

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/google/uuid"

	"github.com/casket-media/casket/internal/library"
	"github.com/casket-media/casket/internal/scanner"
)

func (s *Server) listLibraries(w http.ResponseWriter, r *http.Request) {
	libs, err := s.store.ListLibraries()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}
	resp := make([]libraryResponse, len(libs))
	for i, l := range libs {
		resp[i] = libraryToResponse(l)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) createLibrary(w http.ResponseWriter, r *http.Request) {
	var req createLibraryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error())
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "INVALID_INPUT", "name is required")
		return
	}
	if !library.ValidKind(req.Kind) {
		writeError(w, http.StatusBadRequest, "INVALID_TYPE",
			fmt.Sprintf("invalid media type %q: must be movie, tvshow, or music", req.Kind))
		return
	}

	fi, err := os.Stat(req.Path)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_PATH",
			fmt.Sprintf("path does not exist: %s", req.Path))
		return
	}
	if !fi.IsDir() {
		writeError(w, http.StatusBadRequest, "INVALID_PATH",
			fmt.Sprintf("path is not a directory: %s", req.Path))
		return
	}

	l := &library.Library{
		ID:                uuid.NewString(),
		Name:              req.Name,
		Path:              req.Path,
		Kind:              library.MediaKind(req.Kind),
		ScanAutomatically: req.ScanAutomatically,
	}
	if err := s.store.AddLibrary(l); err != nil {
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, libraryToResponse(l))
}

func (s *Server) deleteLibrary(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, err := s.store.GetLibrary(id); err != nil {
		if errors.Is(err, library.ErrNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Library not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}
	if err := s.store.DeleteLibrary(id); err != nil {
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type scanResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Results *scanner.Report `json:"results"`
}

// scanLibrary walks the library synchronously and returns the report.
// Partial progress from a failed scan is kept; a re-run picks up the rest.
func (s *Server) scanLibrary(w http.ResponseWriter, r *http.Request) {
	lib, err := s.store.GetLibrary(r.PathValue("id"))
	if err != nil {
		if errors.Is(err, library.ErrNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Library not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}

	s.log.Info("scanning library", "id", lib.ID, "name", lib.Name, "path", lib.Path)
	report, err := s.scanner.Scan(lib)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "SCAN_FAILED", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, scanResponse{
		Success: true,
		Message: fmt.Sprintf("Library scan completed for %s", lib.Name),
		Results: report,
	})
}

package v1

import (
	"errors"
	"net/http"

	"github.com/casket-media/casket/internal/library"
	"github.com/casket-media/casket/internal/metadata"
	"github.com/casket-media/casket/internal/tmdb"
)

func (s *Server) searchMetadata(w http.ResponseWriter, r *http.Request) {
	if s.catalog == nil {
		writeError(w, http.StatusBadGateway, "CATALOG_UNAVAILABLE", "no metadata catalog configured")
		return
	}
	query := r.URL.Query().Get("query")
	if query == "" {
		writeError(w, http.StatusBadRequest, "INVALID_INPUT", "query is required")
		return
	}
	typeFilter := r.URL.Query().Get("type")
	if typeFilter != "" && typeFilter != "movie" && typeFilter != "tv" {
		writeError(w, http.StatusBadRequest, "INVALID_TYPE", "type must be movie or tv")
		return
	}

	result, err := s.catalog.Search(r.Context(), query)
	if err != nil {
		writeError(w, http.StatusBadGateway, "CATALOG_ERROR", err.Error())
		return
	}

	resp := searchResponse{
		Results:      []searchEntryResponse{},
		TotalResults: result.TotalResults,
		TotalPages:   result.TotalPages,
		Page:         result.Page,
	}
	for _, e := range result.Results {
		if e.MediaType != "movie" && e.MediaType != "tv" {
			continue
		}
		if typeFilter != "" && e.MediaType != typeFilter {
			continue
		}
		resp.Results = append(resp.Results, searchEntryResponse{
			ID:          e.ID,
			Title:       e.DisplayTitle(),
			Overview:    e.Overview,
			PosterURL:   s.catalog.ImageURL(e.PosterPath, "w300"),
			BackdropURL: s.catalog.ImageURL(e.BackdropPath, "w1280"),
			Year:        e.Year(),
			Rating:      e.VoteAverage,
			MediaType:   e.MediaType,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) refreshMetadata(w http.ResponseWriter, r *http.Request) {
	if s.refresher == nil {
		writeError(w, http.StatusBadGateway, "CATALOG_UNAVAILABLE", "no metadata catalog configured")
		return
	}

	id := r.PathValue("id")
	err := s.refresher.Refresh(r.Context(), id)
	switch {
	case err == nil:
	case errors.Is(err, library.ErrNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Media not found")
		return
	case errors.Is(err, metadata.ErrNoMatch), errors.Is(err, tmdb.ErrNotFound):
		writeError(w, http.StatusNotFound, "NO_MATCH", err.Error())
		return
	case errors.Is(err, metadata.ErrUnsupportedKind):
		writeError(w, http.StatusBadRequest, "INVALID_TYPE", err.Error())
		return
	default:
		writeError(w, http.StatusBadGateway, "CATALOG_ERROR", err.Error())
		return
	}

	m, err := s.store.GetMedia(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, mediaToResponse(m))
}

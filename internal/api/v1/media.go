package v1

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/casket-media/casket/internal/library"
	"github.com/casket-media/casket/internal/stream"
)

// queryInt extracts an optional integer from query string.
func queryInt(r *http.Request, name string, defaultVal int) int {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return i
}

func (s *Server) listMedia(w http.ResponseWriter, r *http.Request) {
	filter := library.MediaFilter{
		Limit:  queryInt(r, "limit", 50),
		Offset: queryInt(r, "offset", 0),
	}
	if kindStr := r.URL.Query().Get("type"); kindStr != "" {
		if !library.ValidKind(kindStr) {
			writeError(w, http.StatusBadRequest, "INVALID_TYPE", "type must be movie, tvshow, or music")
			return
		}
		kind := library.MediaKind(kindStr)
		filter.Kind = &kind
	}

	items, total, err := s.store.ListMedia(filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}

	resp := listMediaResponse{
		Items:  make([]mediaResponse, len(items)),
		Total:  total,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}
	for i, m := range items {
		resp.Items[i] = mediaToResponse(m)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) getMedia(w http.ResponseWriter, r *http.Request) {
	m, err := s.store.GetMedia(r.PathValue("id"))
	if err != nil {
		if errors.Is(err, library.ErrNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Media not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, mediaToResponse(m))
}

func (s *Server) getMediaDetails(w http.ResponseWriter, r *http.Request) {
	m, err := s.store.GetMedia(r.PathValue("id"))
	if err != nil {
		if errors.Is(err, library.ErrNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Media not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}

	resp := mediaDetailsResponse{
		mediaResponse: mediaToResponse(m),
		Genres:        []string{},
		Credits:       []creditResponse{},
	}

	genres, err := s.store.MediaGenres(m.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}
	for _, g := range genres {
		resp.Genres = append(resp.Genres, g.Name)
	}

	credits, err := s.store.MediaCredits(m.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}
	for _, c := range credits {
		resp.Credits = append(resp.Credits, creditResponse{
			Name:        c.Person.Name,
			Role:        c.Role,
			Character:   c.Character,
			ProfilePath: c.Person.ProfilePath,
		})
	}

	if m.Kind == library.KindTVShow {
		seasons, err := s.store.ListSeasons(m.ID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
			return
		}
		for _, sn := range seasons {
			episodes, err := s.store.ListEpisodes(sn.ID)
			if err != nil {
				writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
				return
			}
			swe := seasonWithEpisodes{
				Season: seasonResponse{
					ID:           sn.ID,
					SeasonNumber: sn.SeasonNumber,
					Title:        sn.Title,
					Overview:     sn.Overview,
					PosterPath:   sn.PosterPath,
				},
				Episodes: make([]episodeResponse, len(episodes)),
			}
			for i, e := range episodes {
				swe.Episodes[i] = episodeToResponse(e)
			}
			resp.Seasons = append(resp.Seasons, swe)
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) deleteMedia(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteMedia(r.PathValue("id")); err != nil {
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) getEpisode(w http.ResponseWriter, r *http.Request) {
	e, err := s.store.GetEpisode(r.PathValue("id"))
	if err != nil {
		if errors.Is(err, library.ErrNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Episode not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, episodeToResponse(e))
}

func (s *Server) streamMedia(w http.ResponseWriter, r *http.Request) {
	m, err := s.store.GetMedia(r.PathValue("id"))
	if err != nil {
		if errors.Is(err, library.ErrNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Media not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}
	s.serveFile(w, r, m.Path)
}

func (s *Server) streamEpisode(w http.ResponseWriter, r *http.Request) {
	e, err := s.store.GetEpisode(r.PathValue("id"))
	if err != nil {
		if errors.Is(err, library.ErrNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Episode not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}
	s.serveFile(w, r, e.Path)
}

// serveFile streams a media file, honoring an optional Range header.
func (s *Server) serveFile(w http.ResponseWriter, r *http.Request, path string) {
	err := stream.ServeFile(w, path, stream.ContentType(path), r.Header.Get("Range"))
	if err == nil {
		return
	}
	switch {
	case errors.Is(err, stream.ErrNotFound):
		writeError(w, http.StatusNotFound, "FILE_NOT_FOUND", err.Error())
	case errors.Is(err, stream.ErrPermission):
		writeError(w, http.StatusInternalServerError, "PERMISSION_DENIED", err.Error())
	default:
		s.log.Error("stream failed", "path", path, "error", err)
		writeError(w, http.StatusInternalServerError, "IO_ERROR", err.Error())
	}
}

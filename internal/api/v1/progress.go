package v1

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/casket-media/casket/internal/library"
)

// completionThreshold marks an item watched once this fraction has played.
const completionThreshold = 0.9

func (s *Server) getProgress(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "INVALID_INPUT", "user_id is required")
		return
	}

	p, err := s.store.GetProgress(userID, r.PathValue("mediaId"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}
	if p == nil {
		writeJSON(w, http.StatusOK, nil)
		return
	}
	writeJSON(w, http.StatusOK, progressToResponse(p))
}

func (s *Server) updateProgress(w http.ResponseWriter, r *http.Request) {
	var req progressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error())
		return
	}
	switch {
	case req.UserID == "":
		writeError(w, http.StatusBadRequest, "INVALID_INPUT", "userId is required")
		return
	case req.MediaID == "":
		writeError(w, http.StatusBadRequest, "INVALID_INPUT", "mediaId is required")
		return
	case req.Position < 0:
		writeError(w, http.StatusBadRequest, "INVALID_INPUT", "position must be non-negative")
		return
	case req.Duration <= 0:
		writeError(w, http.StatusBadRequest, "INVALID_INPUT", "duration must be positive")
		return
	}

	completed := req.Completed != nil && *req.Completed
	if req.Completed == nil {
		completed = float64(req.Position)/float64(req.Duration) > completionThreshold
	}

	p := &library.WatchProgress{
		ID:        uuid.NewString(),
		UserID:    req.UserID,
		MediaID:   req.MediaID,
		EpisodeID: req.EpisodeID,
		Position:  req.Position,
		Duration:  req.Duration,
		Completed: completed,
	}
	if err := s.store.UpsertProgress(p); err != nil {
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}

	if completed {
		if err := s.store.RecordWatch(req.MediaID); err != nil {
			s.log.Error("record watch failed", "media_id", req.MediaID, "error", err)
		}
	}

	writeJSON(w, http.StatusOK, progressToResponse(p))
}

func (s *Server) watchHistory(w http.ResponseWriter, r *http.Request) {
	entries, err := s.store.WatchHistory(r.PathValue("userId"), queryInt(r, "limit", 50))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}

	resp := make([]historyEntryResponse, len(entries))
	for i, h := range entries {
		resp[i] = historyEntryResponse{
			progressResponse: progressToResponse(&h.Progress),
			MediaTitle:       h.MediaTitle,
			MediaKind:        string(h.MediaKind),
			PosterPath:       h.PosterPath,
			EpisodeTitle:     h.EpisodeTitle,
			EpisodeNumber:    h.EpisodeNumber,
			SeasonNumber:     h.SeasonNumber,
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

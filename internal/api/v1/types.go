package v1

import (
	"time"

	"github.com/casket-media/casket/internal/library"
)

type statusResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

type mediaResponse struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Kind         string     `json:"type"`
	Year         *int       `json:"year,omitempty"`
	Path         string     `json:"path"`
	PosterPath   *string    `json:"posterPath,omitempty"`
	BackdropPath *string    `json:"backdropPath,omitempty"`
	Overview     *string    `json:"overview,omitempty"`
	Rating       *float64   `json:"rating,omitempty"`
	AddedAt      time.Time  `json:"addedAt"`
	LastWatched  *time.Time `json:"lastWatched,omitempty"`
	WatchCount   int        `json:"watchCount"`
}

func mediaToResponse(m *library.Media) mediaResponse {
	return mediaResponse{
		ID:           m.ID,
		Title:        m.Title,
		Kind:         string(m.Kind),
		Year:         m.Year,
		Path:         m.Path,
		PosterPath:   m.PosterPath,
		BackdropPath: m.BackdropPath,
		Overview:     m.Overview,
		Rating:       m.Rating,
		AddedAt:      m.AddedAt,
		LastWatched:  m.LastWatched,
		WatchCount:   m.WatchCount,
	}
}

type listMediaResponse struct {
	Items  []mediaResponse `json:"items"`
	Total  int             `json:"total"`
	Limit  int             `json:"limit"`
	Offset int             `json:"offset"`
}

type seasonResponse struct {
	ID           string  `json:"id"`
	SeasonNumber int     `json:"seasonNumber"`
	Title        *string `json:"title,omitempty"`
	Overview     *string `json:"overview,omitempty"`
	PosterPath   *string `json:"posterPath,omitempty"`
}

type episodeResponse struct {
	ID            string  `json:"id"`
	SeasonID      string  `json:"seasonId"`
	EpisodeNumber int     `json:"episodeNumber"`
	Title         string  `json:"title"`
	Overview      *string `json:"overview,omitempty"`
	Path          string  `json:"path"`
	StillPath     *string `json:"stillPath,omitempty"`
	AirDate       *string `json:"airDate,omitempty"`
	Runtime       *int    `json:"runtime,omitempty"`
}

func episodeToResponse(e *library.Episode) episodeResponse {
	return episodeResponse{
		ID:            e.ID,
		SeasonID:      e.SeasonID,
		EpisodeNumber: e.EpisodeNumber,
		Title:         e.Title,
		Overview:      e.Overview,
		Path:          e.Path,
		StillPath:     e.StillPath,
		AirDate:       e.AirDate,
		Runtime:       e.Runtime,
	}
}

type seasonWithEpisodes struct {
	Season   seasonResponse    `json:"season"`
	Episodes []episodeResponse `json:"episodes"`
}

type creditResponse struct {
	Name        string  `json:"name"`
	Role        string  `json:"role"`
	Character   *string `json:"character,omitempty"`
	ProfilePath *string `json:"profilePath,omitempty"`
}

type mediaDetailsResponse struct {
	mediaResponse
	Genres  []string             `json:"genres"`
	Credits []creditResponse     `json:"credits"`
	Seasons []seasonWithEpisodes `json:"seasons,omitempty"`
}

type libraryResponse struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Path              string `json:"path"`
	Kind              string `json:"type"`
	ScanAutomatically bool   `json:"scanAutomatically"`
}

func libraryToResponse(l *library.Library) libraryResponse {
	return libraryResponse{
		ID:                l.ID,
		Name:              l.Name,
		Path:              l.Path,
		Kind:              string(l.Kind),
		ScanAutomatically: l.ScanAutomatically,
	}
}

type createLibraryRequest struct {
	Name              string `json:"name"`
	Path              string `json:"path"`
	Kind              string `json:"type"`
	ScanAutomatically bool   `json:"scanAutomatically"`
}

type progressRequest struct {
	UserID    string  `json:"userId"`
	MediaID   string  `json:"mediaId"`
	EpisodeID *string `json:"episodeId,omitempty"`
	Position  int     `json:"position"`
	Duration  int     `json:"duration"`
	Completed *bool   `json:"completed,omitempty"`
}

type progressResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	MediaID   string    `json:"mediaId"`
	EpisodeID *string   `json:"episodeId,omitempty"`
	Position  int       `json:"position"`
	Duration  int       `json:"duration"`
	WatchedAt time.Time `json:"watchedAt"`
	Completed bool      `json:"completed"`
}

func progressToResponse(p *library.WatchProgress) progressResponse {
	return progressResponse{
		ID:        p.ID,
		UserID:    p.UserID,
		MediaID:   p.MediaID,
		EpisodeID: p.EpisodeID,
		Position:  p.Position,
		Duration:  p.Duration,
		WatchedAt: p.WatchedAt,
		Completed: p.Completed,
	}
}

type historyEntryResponse struct {
	progressResponse
	MediaTitle    string  `json:"mediaTitle"`
	MediaKind     string  `json:"mediaType"`
	PosterPath    *string `json:"posterPath,omitempty"`
	EpisodeTitle  *string `json:"episodeTitle,omitempty"`
	EpisodeNumber *int    `json:"episodeNumber,omitempty"`
	SeasonNumber  *int    `json:"seasonNumber,omitempty"`
}

type searchEntryResponse struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	PosterURL   string  `json:"posterUrl,omitempty"`
	BackdropURL string  `json:"backdropUrl,omitempty"`
	Year        int     `json:"year,omitempty"`
	Rating      float64 `json:"rating"`
	MediaType   string  `json:"mediaType"`
}

type searchResponse struct {
	Results      []searchEntryResponse `json:"results"`
	TotalResults int                   `json:"totalResults"`
	TotalPages   int                   `json:"totalPages"`
	Page         int                   `json:"page"`
}

// Package library manages the media catalog (libraries, media, seasons, episodes).
package library

import (
	"time"
)

// MediaKind distinguishes movies, TV shows, and music.
type MediaKind string

const (
	KindMovie  MediaKind = "movie"
	KindTVShow MediaKind = "tvshow"
	KindMusic  MediaKind = "music"
)

// ValidKind reports whether s names a supported media kind.
func ValidKind(s string) bool {
	switch MediaKind(s) {
	case KindMovie, KindTVShow, KindMusic:
		return true
	}
	return false
}

// Library is a user-configured root directory holding media of one kind.
type Library struct {
	ID                string
	Name              string
	Path              string
	Kind              MediaKind
	ScanAutomatically bool
}

// Media is a top-level catalog entry: a movie, a TV show, or a music item.
// For TV shows, Path is the show's top-level directory rather than a file.
type Media struct {
	ID           string
	Title        string
	Kind         MediaKind
	Year         *int
	Path         string
	PosterPath   *string
	BackdropPath *string
	Overview     *string
	Rating       *float64
	AddedAt      time.Time
	LastWatched  *time.Time
	WatchCount   int
}

// Season groups the episodes of a show.
type Season struct {
	ID           string
	MediaID      string
	SeasonNumber int
	Title        *string
	Overview     *string
	PosterPath   *string
}

// Episode is a single playable file belonging to a season.
type Episode struct {
	ID            string
	MediaID       string
	SeasonID      string
	EpisodeNumber int
	Title         string
	Overview      *string
	Path          string
	StillPath     *string
	AirDate       *string
	Runtime       *int
}

// Genre is a catalog genre, shared across media.
type Genre struct {
	ID   string
	Name string
}

// Person is a cast or crew member.
type Person struct {
	ID          string
	Name        string
	ProfilePath *string
}

// Credit links a person to a media item with their role.
type Credit struct {
	Person    Person
	Role      string
	Character *string
}

// WatchProgress records a user's playback position in a media item.
type WatchProgress struct {
	ID        string
	UserID    string
	MediaID   string
	EpisodeID *string
	Position  int
	Duration  int
	WatchedAt time.Time
	Completed bool
}

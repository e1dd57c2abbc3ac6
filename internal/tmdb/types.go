// Package tmdb provides a client for The Movie Database API.
package tmdb

// SearchResult is one page of multi-search results.
type SearchResult struct {
	Page         int           `json:"page"`
	TotalPages   int           `json:"total_pages"`
	TotalResults int           `json:"total_results"`
	Results      []SearchEntry `json:"results"`
}

// SearchEntry is a single multi-search hit; movies carry Title/ReleaseDate,
// TV shows carry Name/FirstAirDate.
type SearchEntry struct {
	ID           int64   `json:"id"`
	MediaType    string  `json:"media_type"` // "movie" or "tv"
	Title        string  `json:"title,omitempty"`
	Name         string  `json:"name,omitempty"`
	Overview     string  `json:"overview"`
	PosterPath   string  `json:"poster_path"`
	BackdropPath string  `json:"backdrop_path"`
	ReleaseDate  string  `json:"release_date,omitempty"`
	FirstAirDate string  `json:"first_air_date,omitempty"`
	VoteAverage  float64 `json:"vote_average"`
}

// DisplayTitle returns the title regardless of media type.
func (e SearchEntry) DisplayTitle() string {
	if e.MediaType == "tv" {
		return e.Name
	}
	return e.Title
}

// Year returns the release/first-air year, or 0 when unknown.
func (e SearchEntry) Year() int {
	date := e.ReleaseDate
	if e.MediaType == "tv" {
		date = e.FirstAirDate
	}
	return yearOf(date)
}

// Movie is detailed movie metadata.
type Movie struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	Overview     string  `json:"overview"`
	ReleaseDate  string  `json:"release_date"` // "2024-03-01"
	PosterPath   string  `json:"poster_path"`  // "/abc123.jpg"
	BackdropPath string  `json:"backdrop_path"`
	VoteAverage  float64 `json:"vote_average"`
	Runtime      int     `json:"runtime"` // minutes
	Genres       []Genre `json:"genres"`
	Credits      Credits `json:"credits"`
}

// Year extracts the year from ReleaseDate.
func (m *Movie) Year() int { return yearOf(m.ReleaseDate) }

// TV is detailed series metadata.
type TV struct {
	ID           int64    `json:"id"`
	Name         string   `json:"name"`
	Overview     string   `json:"overview"`
	FirstAirDate string   `json:"first_air_date"`
	PosterPath   string   `json:"poster_path"`
	BackdropPath string   `json:"backdrop_path"`
	VoteAverage  float64  `json:"vote_average"`
	Genres       []Genre  `json:"genres"`
	Seasons      []Season `json:"seasons"`
	Credits      Credits  `json:"credits"`
}

// Year extracts the year from FirstAirDate.
func (t *TV) Year() int { return yearOf(t.FirstAirDate) }

// Season is series season metadata; Episodes is populated only by GetSeason.
type Season struct {
	ID           int64     `json:"id"`
	SeasonNumber int       `json:"season_number"`
	Name         string    `json:"name"`
	Overview     string    `json:"overview"`
	PosterPath   string    `json:"poster_path"`
	AirDate      string    `json:"air_date"`
	EpisodeCount int       `json:"episode_count,omitempty"`
	Episodes     []Episode `json:"episodes,omitempty"`
}

// Episode is per-episode metadata within a season.
type Episode struct {
	ID            int64  `json:"id"`
	EpisodeNumber int    `json:"episode_number"`
	Name          string `json:"name"`
	Overview      string `json:"overview"`
	StillPath     string `json:"still_path"`
	AirDate       string `json:"air_date"`
	Runtime       int    `json:"runtime"`
}

// Genre is a TMDB genre.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Credits holds cast and crew lists.
type Credits struct {
	Cast []CastMember `json:"cast"`
	Crew []CrewMember `json:"crew"`
}

// CastMember is an actor credit.
type CastMember struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Character   string `json:"character"`
	ProfilePath string `json:"profile_path"`
}

// CrewMember is a crew credit.
type CrewMember struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Job         string `json:"job"`
	ProfilePath string `json:"profile_path"`
}

func yearOf(date string) int {
	if len(date) < 4 {
		return 0
	}
	year := 0
	for _, r := range date[:4] {
		if r < '0' || r > '9' {
			return 0
		}
		year = year*10 + int(r-'0')
	}
	return year
}

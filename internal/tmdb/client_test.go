package tmdb

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Search(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/3/search/multi", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		assert.Equal(t, "inception", r.URL.Query().Get("query"))

		resp := SearchResult{
			Page:         1,
			TotalResults: 2,
			Results: []SearchEntry{
				{ID: 27205, MediaType: "movie", Title: "Inception", ReleaseDate: "2010-07-15", VoteAverage: 8.4},
				{ID: 1234, MediaType: "tv", Name: "Inception: The Series", FirstAirDate: "2015-01-01"},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL))

	result, err := client.Search(context.Background(), "inception")
	require.NoError(t, err)
	require.Len(t, result.Results, 2)

	movie := result.Results[0]
	assert.Equal(t, "Inception", movie.DisplayTitle())
	assert.Equal(t, 2010, movie.Year())

	tv := result.Results[1]
	assert.Equal(t, "Inception: The Series", tv.DisplayTitle())
	assert.Equal(t, 2015, tv.Year())
}

func TestClient_GetMovie(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/3/movie/27205", r.URL.Path)
		assert.Equal(t, "credits", r.URL.Query().Get("append_to_response"))

		resp := Movie{
			ID:          27205,
			Title:       "Inception",
			Overview:    "A thief who steals corporate secrets...",
			ReleaseDate: "2010-07-15",
			PosterPath:  "/poster.jpg",
			VoteAverage: 8.4,
			Runtime:     148,
			Genres:      []Genre{{ID: 878, Name: "Science Fiction"}},
			Credits: Credits{
				Cast: []CastMember{{ID: 1, Name: "Leonardo DiCaprio", Character: "Cobb"}},
				Crew: []CrewMember{{ID: 2, Name: "Christopher Nolan", Job: "Director"}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL))

	movie, err := client.GetMovie(context.Background(), 27205)
	require.NoError(t, err)
	assert.Equal(t, "Inception", movie.Title)
	assert.Equal(t, 2010, movie.Year())
	require.Len(t, movie.Credits.Cast, 1)
	assert.Equal(t, "Cobb", movie.Credits.Cast[0].Character)
}

func TestClient_GetMovie_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"status_code":34,"status_message":"The resource you requested could not be found."}`))
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL))

	movie, err := client.GetMovie(context.Background(), 99999999)
	assert.Nil(t, movie)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClient_GetMovie_Cached(t *testing.T) {
	callCount := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		callCount++
		resp := Movie{ID: 27205, Title: "Inception"}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL), WithCacheTTL(time.Hour))

	for range 3 {
		movie, err := client.GetMovie(context.Background(), 27205)
		require.NoError(t, err)
		assert.Equal(t, "Inception", movie.Title)
	}
	assert.Equal(t, 1, callCount, "repeated fetches should hit the cache")
}

func TestClient_GetTV(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/3/tv/1396", r.URL.Path)

		resp := TV{
			ID:           1396,
			Name:         "Breaking Bad",
			FirstAirDate: "2008-01-20",
			VoteAverage:  8.9,
			Seasons: []Season{
				{ID: 10, SeasonNumber: 1, Name: "Season 1", EpisodeCount: 7},
				{ID: 11, SeasonNumber: 2, Name: "Season 2", EpisodeCount: 13},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL))

	tv, err := client.GetTV(context.Background(), 1396)
	require.NoError(t, err)
	assert.Equal(t, "Breaking Bad", tv.Name)
	assert.Equal(t, 2008, tv.Year())
	require.Len(t, tv.Seasons, 2)
}

func TestClient_GetSeason(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/3/tv/1396/season/1", r.URL.Path)

		resp := Season{
			ID:           10,
			SeasonNumber: 1,
			Name:         "Season 1",
			Episodes: []Episode{
				{ID: 100, EpisodeNumber: 1, Name: "Pilot", AirDate: "2008-01-20", Runtime: 58},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL))

	season, err := client.GetSeason(context.Background(), 1396, 1)
	require.NoError(t, err)
	require.Len(t, season.Episodes, 1)
	assert.Equal(t, "Pilot", season.Episodes[0].Name)
}

func TestClient_ImageURL(t *testing.T) {
	client := NewClient("test-key")

	assert.Equal(t,
		"https://image.tmdb.org/t/p/w300/poster.jpg",
		client.ImageURL("/poster.jpg", "w300"))
	assert.Equal(t, "", client.ImageURL("", "w300"))
}

package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const defaultBaseURL = "https://api.themoviedb.org"
const defaultImageBaseURL = "https://image.tmdb.org/t/p"
const defaultCacheTTL = 24 * time.Hour

// ErrNotFound is returned when the requested record doesn't exist in TMDB.
var ErrNotFound = errors.New("not found in TMDB")

// Client is a TMDB API client.
type Client struct {
	apiKey     string
	baseURL    string
	imageBase  string
	httpClient *http.Client
	cache      *cache
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithCacheTTL sets the cache TTL.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *Client) {
		c.cache = newCache(ttl)
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a new TMDB client.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:    apiKey,
		baseURL:   defaultBaseURL,
		imageBase: defaultImageBaseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		cache: newCache(defaultCacheTTL),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// get performs a GET against the TMDB v3 API and decodes the response into out.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	if query == nil {
		query = url.Values{}
	}
	query.Set("api_key", c.apiKey)

	u := fmt.Sprintf("%s/3%s?%s", c.baseURL, path, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("TMDB API error: %s", resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// Search runs a multi-search across movies and TV shows.
func (c *Client) Search(ctx context.Context, query string) (*SearchResult, error) {
	var result SearchResult
	q := url.Values{"query": {query}}
	if err := c.get(ctx, "/search/multi", q, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetMovie fetches movie metadata, including credits, by TMDB ID.
func (c *Client) GetMovie(ctx context.Context, tmdbID int64) (*Movie, error) {
	key := cacheKey{kind: "movie", id: tmdbID}
	if movie, ok := cacheGet[Movie](c.cache, key); ok {
		return movie, nil
	}

	var movie Movie
	q := url.Values{"append_to_response": {"credits"}}
	if err := c.get(ctx, fmt.Sprintf("/movie/%d", tmdbID), q, &movie); err != nil {
		return nil, err
	}

	c.cache.set(key, &movie)
	return &movie, nil
}

// GetTV fetches series metadata, including credits and the season list,
// by TMDB ID.
func (c *Client) GetTV(ctx context.Context, tmdbID int64) (*TV, error) {
	key := cacheKey{kind: "tv", id: tmdbID}
	if tv, ok := cacheGet[TV](c.cache, key); ok {
		return tv, nil
	}

	var tv TV
	q := url.Values{"append_to_response": {"credits"}}
	if err := c.get(ctx, fmt.Sprintf("/tv/%d", tmdbID), q, &tv); err != nil {
		return nil, err
	}

	c.cache.set(key, &tv)
	return &tv, nil
}

// GetSeason fetches one season of a series with its episode list.
func (c *Client) GetSeason(ctx context.Context, tvID int64, seasonNumber int) (*Season, error) {
	key := cacheKey{kind: "season", id: tvID, season: seasonNumber}
	if season, ok := cacheGet[Season](c.cache, key); ok {
		return season, nil
	}

	var season Season
	if err := c.get(ctx, fmt.Sprintf("/tv/%d/season/%d", tvID, seasonNumber), nil, &season); err != nil {
		return nil, err
	}

	c.cache.set(key, &season)
	return &season, nil
}

// ImageURL builds a full image URL from a TMDB image path.
// Size can be: w92, w154, w185, w300, w342, w500, w780, w1280, original.
func (c *Client) ImageURL(imagePath, size string) string {
	if imagePath == "" {
		return ""
	}
	return c.imageBase + "/" + size + imagePath
}

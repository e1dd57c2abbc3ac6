package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client wraps HTTP calls to the casket server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new casket API client.
func NewClient(serverURL string) *Client {
	return &Client{
		baseURL: serverURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) get(path string, result any) error {
	resp, err := c.httpClient.Get(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server error %d: %s", resp.StatusCode, string(body))
	}

	return json.NewDecoder(resp.Body).Decode(result)
}

func (c *Client) post(path string, body any, result any) error {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal error: %w", err)
	}

	resp, err := c.httpClient.Post(c.baseURL+path, "application/json", bytes.NewReader(jsonBody))
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server error %d: %s", resp.StatusCode, string(respBody))
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}
	return nil
}

func (c *Client) delete(path string) error {
	req, err := http.NewRequest(http.MethodDelete, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("request creation failed: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server error %d: %s", resp.StatusCode, string(body))
	}

	return nil
}

// API response types (mirror server types)

type StatusResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

type MediaResponse struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Type        string   `json:"type"`
	Year        *int     `json:"year,omitempty"`
	Path        string   `json:"path"`
	Rating      *float64 `json:"rating,omitempty"`
	AddedAt     string   `json:"addedAt"`
	LastWatched *string  `json:"lastWatched,omitempty"`
	WatchCount  int      `json:"watchCount"`
}

type ListMediaResponse struct {
	Items  []MediaResponse `json:"items"`
	Total  int             `json:"total"`
	Limit  int             `json:"limit"`
	Offset int             `json:"offset"`
}

type LibraryResponse struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Path              string `json:"path"`
	Type              string `json:"type"`
	ScanAutomatically bool   `json:"scanAutomatically"`
}

type ScanReport struct {
	LibraryID        string `json:"libraryId"`
	LibraryName      string `json:"libraryName"`
	Added            int    `json:"added,omitempty"`
	Existing         int    `json:"existing,omitempty"`
	AddedShows       int    `json:"addedShows,omitempty"`
	AddedSeasons     int    `json:"addedSeasons,omitempty"`
	AddedEpisodes    int    `json:"addedEpisodes,omitempty"`
	ExistingEpisodes int    `json:"existingEpisodes,omitempty"`
	Message          string `json:"message,omitempty"`
}

type ScanResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Results *ScanReport `json:"results"`
}

type SearchEntryResponse struct {
	ID        int64   `json:"id"`
	Title     string  `json:"title"`
	Overview  string  `json:"overview"`
	Year      int     `json:"year,omitempty"`
	Rating    float64 `json:"rating"`
	MediaType string  `json:"mediaType"`
}

type SearchResponse struct {
	Results      []SearchEntryResponse `json:"results"`
	TotalResults int                   `json:"totalResults"`
}

// API methods

func (c *Client) Status() (*StatusResponse, error) {
	var resp StatusResponse
	if err := c.get("/api/v1/status", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) ListMedia(mediaType string, limit int) (*ListMediaResponse, error) {
	params := url.Values{}
	if mediaType != "" {
		params.Set("type", mediaType)
	}
	if limit > 0 {
		params.Set("limit", fmt.Sprintf("%d", limit))
	}

	path := "/api/v1/media"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var resp ListMediaResponse
	if err := c.get(path, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Libraries() ([]LibraryResponse, error) {
	var resp []LibraryResponse
	if err := c.get("/api/v1/libraries", &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) AddLibrary(name, path, mediaType string, autoScan bool) (*LibraryResponse, error) {
	req := map[string]any{
		"name":              name,
		"path":              path,
		"type":              mediaType,
		"scanAutomatically": autoScan,
	}

	var resp LibraryResponse
	if err := c.post("/api/v1/libraries", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) RemoveLibrary(id string) error {
	return c.delete("/api/v1/libraries/" + url.PathEscape(id))
}

func (c *Client) Scan(libraryID string) (*ScanResponse, error) {
	var resp ScanResponse
	if err := c.post("/api/v1/libraries/"+url.PathEscape(libraryID)+"/scan", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Search(query, mediaType string) (*SearchResponse, error) {
	params := url.Values{}
	params.Set("query", query)
	if mediaType != "" {
		params.Set("type", mediaType)
	}

	var resp SearchResponse
	if err := c.get("/api/v1/metadata/search?"+params.Encode(), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) RefreshMetadata(mediaID string) (*MediaResponse, error) {
	var resp MediaResponse
	if err := c.post("/api/v1/metadata/refresh/"+url.PathEscape(mediaID), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

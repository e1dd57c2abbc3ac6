package v1

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casket-media/casket/internal/library"
)

func TestCreateLibrary(t *testing.T) {
	ts := setupServer(t)
	dir := t.TempDir()

	body := fmt.Sprintf(`{"name":"Movies","path":%q,"type":"movie","scanAutomatically":true}`, dir)
	w := ts.do(t, http.MethodPost, "/api/v1/libraries", body)
	assert.Equal(t, http.StatusCreated, w.Code)

	resp := decode[libraryResponse](t, w)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "Movies", resp.Name)
	assert.Equal(t, dir, resp.Path)
	assert.Equal(t, "movie", resp.Kind)
	assert.True(t, resp.ScanAutomatically)
}

func TestCreateLibrary_Validation(t *testing.T) {
	ts := setupServer(t)
	dir := t.TempDir()

	cases := []struct {
		name     string
		body     string
		wantCode string
	}{
		{"missing name", fmt.Sprintf(`{"path":%q,"type":"movie"}`, dir), "INVALID_INPUT"},
		{"bad type", fmt.Sprintf(`{"name":"X","path":%q,"type":"podcast"}`, dir), "INVALID_TYPE"},
		{"missing path", `{"name":"X","path":"/definitely/not/here","type":"movie"}`, "INVALID_PATH"},
		{"garbage body", `{{{`, "INVALID_BODY"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := ts.do(t, http.MethodPost, "/api/v1/libraries", tc.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tc.wantCode, decode[errorResponse](t, w).Code)
		})
	}
}

func TestCreateLibrary_PathIsFile(t *testing.T) {
	ts := setupServer(t)

	path := filepath.Join(t.TempDir(), "file.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	body := fmt.Sprintf(`{"name":"X","path":%q,"type":"movie"}`, path)
	w := ts.do(t, http.MethodPost, "/api/v1/libraries", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_PATH", decode[errorResponse](t, w).Code)
}

func TestListLibraries(t *testing.T) {
	ts := setupServer(t)

	w := ts.do(t, http.MethodGet, "/api/v1/libraries", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[[]libraryResponse](t, w))

	require.NoError(t, ts.store.AddLibrary(&library.Library{
		ID: "l1", Name: "Movies", Path: "/movies", Kind: library.KindMovie,
	}))

	w = ts.do(t, http.MethodGet, "/api/v1/libraries", "")
	resp := decode[[]libraryResponse](t, w)
	require.Len(t, resp, 1)
	assert.Equal(t, "l1", resp[0].ID)
}

func TestDeleteLibrary(t *testing.T) {
	ts := setupServer(t)
	require.NoError(t, ts.store.AddLibrary(&library.Library{
		ID: "l1", Name: "Movies", Path: "/movies", Kind: library.KindMovie,
	}))

	w := ts.do(t, http.MethodDelete, "/api/v1/libraries/l1", "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = ts.do(t, http.MethodDelete, "/api/v1/libraries/l1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", decode[errorResponse](t, w).Code)
}

func TestScanLibrary(t *testing.T) {
	ts := setupServer(t)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Inception (2010).mkv"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Heat (1995).mp4"), []byte("x"), 0644))

	require.NoError(t, ts.store.AddLibrary(&library.Library{
		ID: "l1", Name: "Movies", Path: dir, Kind: library.KindMovie,
	}))

	w := ts.do(t, http.MethodPost, "/api/v1/libraries/l1/scan", "")
	assert.Equal(t, http.StatusOK, w.Code)

	resp := decode[scanResponse](t, w)
	assert.True(t, resp.Success)
	assert.Equal(t, "Library scan completed for Movies", resp.Message)
	require.NotNil(t, resp.Results)
	assert.Equal(t, 2, resp.Results.Added)

	media, total, err := ts.store.ListMedia(library.MediaFilter{Limit: 50})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, media, 2)
}

func TestScanLibrary_NotFound(t *testing.T) {
	ts := setupServer(t)

	w := ts.do(t, http.MethodPost, "/api/v1/libraries/nope/scan", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

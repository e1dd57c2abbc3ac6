package stream

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

var (
	// ErrNotFound indicates the file does not exist.
	ErrNotFound = errors.New("file not found")

	// ErrPermission indicates the file exists but cannot be read.
	ErrPermission = errors.New("permission denied")
)

// ContentType maps a file extension to its MIME type. Unknown or absent
// extensions fall back to application/octet-stream. Applied identically to
// movies, episodes, and bare paths.
func ContentType(path string) string {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")) {
	case "mp4":
		return "video/mp4"
	case "mkv":
		return "video/x-matroska"
	case "avi":
		return "video/x-msvideo"
	case "mov":
		return "video/quicktime"
	case "mp3":
		return "audio/mpeg"
	case "flac":
		return "audio/flac"
	case "m4a":
		return "audio/mp4"
	default:
		return "application/octet-stream"
	}
}

// response is the single shape written for full, partial, and unsatisfiable
// results, so the shared headers stay consistent across all three.
type response struct {
	status       int
	contentType  string
	contentRange string
	body         []byte
}

// ServeFile writes the file at path to w, honoring an optional Range header.
//
// A missing or malformed Range header serves the whole file with 200. A valid
// range serves 206 with a Content-Range reflecting the bytes actually read;
// if the file shrank mid-request the shorter read is served as-is rather than
// erroring. An unsatisfiable range yields 416 with "bytes */<size>".
func ServeFile(w http.ResponseWriter, path, contentType, rangeHeader string) error {
	fi, err := os.Stat(path)
	if err != nil {
		switch {
		case errors.Is(err, os.ErrNotExist):
			return fmt.Errorf("%w: %s", ErrNotFound, path)
		case errors.Is(err, os.ErrPermission):
			return fmt.Errorf("%w: %s", ErrPermission, path)
		default:
			return fmt.Errorf("stat %s: %w", path, err)
		}
	}
	size := fi.Size()

	resp, err := buildResponse(path, contentType, rangeHeader, size)
	if err != nil {
		return err
	}
	writeResponse(w, size, resp)
	return nil
}

func buildResponse(path, contentType, rangeHeader string, size int64) (*response, error) {
	if rangeHeader != "" {
		br, err := ResolveRange(rangeHeader, size)
		switch {
		case err == nil:
			return partialResponse(path, contentType, br, size)
		case errors.Is(err, ErrUnsatisfiable):
			return &response{
				status:       http.StatusRequestedRangeNotSatisfiable,
				contentType:  contentType,
				contentRange: fmt.Sprintf("bytes */%d", size),
			}, nil
		}
		// Malformed header: fall through to full-content serving.
	}

	body, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return &response{
		status:      http.StatusOK,
		contentType: contentType,
		body:        body,
	}, nil
}

func partialResponse(path, contentType string, br ByteRange, size int64) (*response, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	if _, err := f.Seek(br.Start, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek %s: %w", path, err)
	}

	body := make([]byte, br.Length())
	n, err := io.ReadFull(f, body)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	// Short reads happen when the file shrank after the stat; the
	// Content-Range must describe what is actually returned.
	body = body[:n]

	return &response{
		status:       http.StatusPartialContent,
		contentType:  contentType,
		contentRange: fmt.Sprintf("bytes %d-%d/%d", br.Start, br.Start+int64(n)-1, size),
		body:         body,
	}, nil
}

func writeResponse(w http.ResponseWriter, size int64, resp *response) {
	h := w.Header()
	h.Set("Accept-Ranges", "bytes")
	h.Set("Content-Type", resp.contentType)
	if resp.contentRange != "" {
		h.Set("Content-Range", resp.contentRange)
	}
	h.Set("Content-Length", strconv.Itoa(len(resp.body)))
	w.WriteHeader(resp.status)
	if len(resp.body) > 0 {
		_, _ = w.Write(resp.body)
	}
}

package scanner

import (
	"path/filepath"
	"strings"
)

// videoExtensions is the set of file extensions treated as video.
var videoExtensions = map[string]struct{}{
	"mp4": {}, "mkv": {}, "avi": {}, "mov": {}, "wmv": {},
	"m4v": {}, "mpg": {}, "mpeg": {}, "flv": {}, "webm": {},
}

// audioExtensions is the set of file extensions treated as audio.
var audioExtensions = map[string]struct{}{
	"mp3": {}, "flac": {}, "m4a": {}, "wav": {}, "ogg": {},
	"aac": {}, "wma": {}, "aiff": {},
}

func ext(path string) string {
	e := filepath.Ext(path)
	if e == "" {
		return ""
	}
	return strings.ToLower(e[1:])
}

// IsVideoFile reports whether path has a recognized video extension.
func IsVideoFile(path string) bool {
	_, ok := videoExtensions[ext(path)]
	return ok
}

// IsAudioFile reports whether path has a recognized audio extension.
func IsAudioFile(path string) bool {
	_, ok := audioExtensions[ext(path)]
	return ok
}

package scanner

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// MovieInfo is the classification of a file as a movie.
type MovieInfo struct {
	Title string
	Year  *int
}

// EpisodeInfo is the classification of a file as a TV episode.
type EpisodeInfo struct {
	ShowName      string
	SeasonNumber  int
	EpisodeNumber int
	EpisodeTitle  string
}

// ClassifyMovie derives a movie title and optional year from a file path.
// The convention supported is "Title (Year).ext"; without parentheses the
// whole stem is the title and the year is absent.
func ClassifyMovie(path string) (MovieInfo, bool) {
	stem := stripExtension(filepath.Base(path))
	if stem == "" {
		return MovieInfo{}, false
	}

	info := MovieInfo{Title: strings.TrimSpace(stem)}
	if idx := strings.Index(stem, "("); idx >= 0 {
		info.Title = strings.TrimSpace(stem[:idx])
	}
	if info.Title == "" {
		return MovieInfo{}, false
	}
	info.Year = extractYear(stem)
	return info, true
}

// extractYear pulls a 4-digit year out of a "(1999)"-style suffix.
// Anything other than exactly four characters between the parentheses
// means no year.
func extractYear(stem string) *int {
	open := strings.LastIndex(stem, "(")
	if open < 0 {
		return nil
	}
	close := strings.Index(stem[open:], ")")
	if close < 0 {
		return nil
	}
	inner := stem[open+1 : open+close]
	if len(inner) != 4 {
		return nil
	}
	year, err := strconv.Atoi(inner)
	if err != nil {
		return nil
	}
	return &year
}

// ClassifyEpisode derives show, season, and episode from a file path laid out
// as <show>/<season folder>/<episode file>. The season and episode extractors
// are tried in a fixed precedence order; reordering them changes which files
// classify as which episode.
func ClassifyEpisode(path string) (EpisodeInfo, bool) {
	name := filepath.Base(path)
	parent := filepath.Dir(path)
	parentName := filepath.Base(parent)
	showName := filepath.Base(filepath.Dir(parent))
	if showName == "." || showName == string(filepath.Separator) || parentName == "." {
		return EpisodeInfo{}, false
	}

	season, ok := resolveSeason(parentName, name)
	if !ok {
		return EpisodeInfo{}, false
	}

	episode, ok := resolveEpisode(name)
	if !ok {
		return EpisodeInfo{}, false
	}

	return EpisodeInfo{
		ShowName:      showName,
		SeasonNumber:  season,
		EpisodeNumber: episode,
		EpisodeTitle:  episodeTitle(name, episode),
	}, true
}

// resolveSeason applies the season extractors in precedence order:
// season folder digits, then SxxEyy, then AxB.
func resolveSeason(parentName, fileName string) (int, bool) {
	if n, ok := seasonFromFolder(parentName); ok {
		return n, true
	}
	if n, _, ok := findSeasonMarker(fileName); ok {
		return n, true
	}
	if a, _, ok := findAxB(fileName); ok {
		return a, true
	}
	return 0, false
}

// resolveEpisode applies the episode extractors in precedence order:
// E after the season marker, the word "episode", digits after x,
// then a leading digit run.
func resolveEpisode(fileName string) (int, bool) {
	if _, after, ok := findSeasonMarker(fileName); ok {
		if n, ok := episodeAfterMarker(fileName, after); ok {
			return n, true
		}
	}
	if n, ok := episodeFromWord(fileName); ok {
		return n, true
	}
	if _, b, ok := findAxB(fileName); ok {
		return b, true
	}
	if n, ok := leadingDigits(fileName); ok {
		return n, true
	}
	return 0, false
}

// seasonFromFolder extracts the season number from a folder whose name
// contains "season": the concatenation of all digit characters in the name.
func seasonFromFolder(name string) (int, bool) {
	if !strings.Contains(strings.ToLower(name), "season") {
		return 0, false
	}
	var digits strings.Builder
	for _, r := range name {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(digits.String())
	if err != nil {
		return 0, false
	}
	return n, true
}

// findSeasonMarker locates the first "s" immediately followed by two digits
// (the S01E02 convention). Returns the season number and the index just past
// the digits.
func findSeasonMarker(name string) (season, after int, ok bool) {
	lower := strings.ToLower(name)
	for i := 0; i+2 < len(lower); i++ {
		if lower[i] != 's' || !isDigit(lower[i+1]) || !isDigit(lower[i+2]) {
			continue
		}
		n, err := strconv.Atoi(lower[i+1 : i+3])
		if err != nil {
			continue
		}
		return n, i + 3, true
	}
	return 0, 0, false
}

// episodeAfterMarker reads an "e" plus two digits at the position directly
// after the season marker.
func episodeAfterMarker(name string, pos int) (int, bool) {
	lower := strings.ToLower(name)
	if pos+2 >= len(lower) || lower[pos] != 'e' {
		return 0, false
	}
	if !isDigit(lower[pos+1]) || !isDigit(lower[pos+2]) {
		return 0, false
	}
	n, err := strconv.Atoi(lower[pos+1 : pos+3])
	if err != nil {
		return 0, false
	}
	return n, true
}

// episodeFromWord extracts the digit run following the word "episode",
// skipping any separator characters between the word and the digits.
func episodeFromWord(name string) (int, bool) {
	lower := strings.ToLower(name)
	idx := strings.Index(lower, "episode")
	if idx < 0 {
		return 0, false
	}
	i := idx + len("episode")
	for i < len(lower) && (lower[i] == ' ' || lower[i] == '.' || lower[i] == '-' || lower[i] == '_') {
		i++
	}
	start := i
	for i < len(lower) && isDigit(lower[i]) {
		i++
	}
	if i == start {
		return 0, false
	}
	n, err := strconv.Atoi(lower[start:i])
	if err != nil {
		return 0, false
	}
	return n, true
}

// findAxB locates a <digits>x<digits> pattern (the 1x02 convention).
// a is the full digit run before the x, b the two digits after it.
func findAxB(name string) (a, b int, ok bool) {
	lower := strings.ToLower(name)
	for i := 1; i+2 < len(lower); i++ {
		if lower[i] != 'x' || !isDigit(lower[i-1]) || !isDigit(lower[i+1]) || !isDigit(lower[i+2]) {
			continue
		}
		start := i - 1
		for start > 0 && isDigit(lower[start-1]) {
			start--
		}
		season, err := strconv.Atoi(lower[start:i])
		if err != nil {
			continue
		}
		episode, err := strconv.Atoi(lower[i+1 : i+3])
		if err != nil {
			continue
		}
		return season, episode, true
	}
	return 0, 0, false
}

// leadingDigits reads the digit run at the very start of the filename
// (the "01 - Title.ext" convention).
func leadingDigits(name string) (int, bool) {
	i := 0
	for i < len(name) && isDigit(name[i]) {
		i++
	}
	if i == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(name[:i])
	if err != nil {
		return 0, false
	}
	return n, true
}

// episodeTitle extracts a human title from the filename when it follows the
// "<marker> - <title>" convention; otherwise it falls back to "Episode <n>".
func episodeTitle(name string, episode int) string {
	stem := stripExtension(name)
	if idx := strings.Index(stem, " - "); idx >= 0 {
		prefix := stem[:idx]
		title := strings.TrimSpace(stem[idx+len(" - "):])
		if title != "" && looksLikeEpisodeMarker(prefix) {
			return title
		}
	}
	return fmt.Sprintf("Episode %d", episode)
}

// looksLikeEpisodeMarker reports whether the text before a " - " separator is
// an episode marker rather than part of the title: a bare number, the word
// "episode", or something containing an "e" before its final two characters
// (as in S01E02).
func looksLikeEpisodeMarker(prefix string) bool {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return false
	}
	if _, err := strconv.Atoi(prefix); err == nil {
		return true
	}
	lower := strings.ToLower(prefix)
	if strings.Contains(lower, "episode") {
		return true
	}
	if idx := strings.Index(lower, "e"); idx >= 0 && idx < len(lower)-2 {
		return true
	}
	return false
}

func stripExtension(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// Package scanner discovers media files on disk and classifies them by
// filename and path conventions.
package scanner

import (
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/casket-media/casket/internal/library"
	"github.com/casket-media/casket/internal/metrics"
)

// Store is the subset of the library store the scanner writes through.
type Store interface {
	PathsUnderRoot(root string, kind library.MediaKind) (map[string]struct{}, error)
	EpisodePathsUnderRoot(root string) (map[string]struct{}, error)
	AddMedia(m *library.Media) error
	GetMediaByTitleKind(title string, kind library.MediaKind) (*library.Media, error)
	AddSeason(sn *library.Season) error
	GetSeasonByNumber(mediaID string, number int) (*library.Season, error)
	AddEpisode(e *library.Episode) error
}

// Report summarizes one scan run.
type Report struct {
	LibraryID   string `json:"libraryId"`
	LibraryName string `json:"libraryName"`

	Added    int `json:"added,omitempty"`
	Existing int `json:"existing,omitempty"`

	AddedShows       int `json:"addedShows,omitempty"`
	AddedSeasons     int `json:"addedSeasons,omitempty"`
	AddedEpisodes    int `json:"addedEpisodes,omitempty"`
	ExistingEpisodes int `json:"existingEpisodes,omitempty"`

	Message string `json:"message,omitempty"`
}

// Scanner walks library roots and records discovered media.
type Scanner struct {
	store Store
	log   *slog.Logger
}

// New creates a scanner writing through the given store.
func New(store Store, log *slog.Logger) *Scanner {
	if log == nil {
		log = slog.Default()
	}
	return &Scanner{store: store, log: log}
}

// Scan walks the library root and indexes new media files.
// Classification failures are skipped per file; a storage failure aborts the
// scan, keeping any rows already written. A re-run is idempotent because
// already-indexed paths are skipped.
func (s *Scanner) Scan(lib *library.Library) (*Report, error) {
	var (
		report *Report
		err    error
	)
	switch lib.Kind {
	case library.KindMovie:
		report, err = s.scanMovies(lib)
	case library.KindTVShow:
		report, err = s.scanShows(lib)
	case library.KindMusic:
		report = &Report{Message: "music scanning not yet implemented"}
	default:
		return nil, fmt.Errorf("scan library %s: unknown kind %q", lib.ID, lib.Kind)
	}
	if err != nil {
		metrics.ScanRunsTotal.WithLabelValues(string(lib.Kind), "error").Inc()
		return nil, fmt.Errorf("scan library %s (%s): %w", lib.ID, lib.Name, err)
	}
	metrics.ScanRunsTotal.WithLabelValues(string(lib.Kind), "ok").Inc()
	metrics.ScanItemsAdded.WithLabelValues(string(lib.Kind)).Add(float64(report.Added + report.AddedEpisodes))
	report.LibraryID = lib.ID
	report.LibraryName = lib.Name
	return report, nil
}

func (s *Scanner) scanMovies(lib *library.Library) (*Report, error) {
	existing, err := s.store.PathsUnderRoot(lib.Path, library.KindMovie)
	if err != nil {
		return nil, err
	}

	report := &Report{}
	err = walkVideoFiles(lib.Path, func(path string) error {
		if _, ok := existing[path]; ok {
			report.Existing++
			return nil
		}

		info, ok := ClassifyMovie(path)
		if !ok {
			s.log.Debug("skipping unclassifiable file", "path", path)
			return nil
		}

		m := &library.Media{
			ID:    uuid.NewString(),
			Title: info.Title,
			Kind:  library.KindMovie,
			Year:  info.Year,
			Path:  path,
		}
		if err := s.store.AddMedia(m); err != nil {
			return err
		}
		report.Added++
		s.log.Info("added movie", "title", info.Title, "path", path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

func (s *Scanner) scanShows(lib *library.Library) (*Report, error) {
	existing, err := s.store.EpisodePathsUnderRoot(lib.Path)
	if err != nil {
		return nil, err
	}

	// Shows already handled this run, keyed by show name. Scoped to this
	// scan only; the database remains the source of truth across runs.
	processed := make(map[string]string)

	report := &Report{}
	err = walkVideoFiles(lib.Path, func(path string) error {
		if _, ok := existing[path]; ok {
			report.ExistingEpisodes++
			return nil
		}

		info, ok := ClassifyEpisode(path)
		if !ok {
			s.log.Debug("skipping unclassifiable file", "path", path)
			return nil
		}

		showID, ok := processed[info.ShowName]
		if !ok {
			showID, err = s.ensureShow(lib, info, path, report)
			if err != nil {
				return err
			}
			processed[info.ShowName] = showID
		}

		seasonID, err := s.ensureSeason(showID, info.SeasonNumber, report)
		if err != nil {
			return err
		}

		e := &library.Episode{
			ID:            uuid.NewString(),
			MediaID:       showID,
			SeasonID:      seasonID,
			EpisodeNumber: info.EpisodeNumber,
			Title:         info.EpisodeTitle,
			Path:          path,
		}
		if err := s.store.AddEpisode(e); err != nil {
			return err
		}
		report.AddedEpisodes++
		s.log.Info("added episode",
			"show", info.ShowName, "season", info.SeasonNumber, "episode", info.EpisodeNumber)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

// ensureShow returns the media ID for a show, inserting it on first
// encounter. The show's path is its top-level directory, not the episode file.
func (s *Scanner) ensureShow(lib *library.Library, info EpisodeInfo, episodePath string, report *Report) (string, error) {
	m, err := s.store.GetMediaByTitleKind(info.ShowName, library.KindTVShow)
	if err != nil {
		return "", err
	}
	if m != nil {
		return m.ID, nil
	}

	showPath := filepath.Dir(filepath.Dir(episodePath))
	m = &library.Media{
		ID:    uuid.NewString(),
		Title: info.ShowName,
		Kind:  library.KindTVShow,
		Path:  showPath,
	}
	if err := s.store.AddMedia(m); err != nil {
		return "", err
	}
	report.AddedShows++
	s.log.Info("added show", "title", info.ShowName, "path", showPath)
	return m.ID, nil
}

func (s *Scanner) ensureSeason(showID string, number int, report *Report) (string, error) {
	sn, err := s.store.GetSeasonByNumber(showID, number)
	if err != nil {
		return "", err
	}
	if sn != nil {
		return sn.ID, nil
	}

	title := fmt.Sprintf("Season %d", number)
	sn = &library.Season{
		ID:           uuid.NewString(),
		MediaID:      showID,
		SeasonNumber: number,
		Title:        &title,
	}
	if err := s.store.AddSeason(sn); err != nil {
		return "", err
	}
	report.AddedSeasons++
	return sn.ID, nil
}

// walkVideoFiles calls fn for every file with a recognized video extension
// under root. Unreadable directory entries are skipped, not fatal.
func walkVideoFiles(root string, fn func(path string) error) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() || !IsVideoFile(path) {
			return nil
		}
		return fn(path)
	})
}

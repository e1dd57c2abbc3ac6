// Package metadata enriches indexed media with records from the external
// catalog.
package metadata

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/casket-media/casket/internal/library"
	"github.com/casket-media/casket/internal/tmdb"
	"github.com/casket-media/casket/pkg/titles"
)

// maxCastCredits caps how many cast members are stored per media item.
const maxCastCredits = 10

var (
	// ErrNoMatch indicates the catalog returned no acceptable candidate.
	ErrNoMatch = errors.New("no catalog match")

	// ErrUnsupportedKind indicates the media kind cannot be refreshed.
	ErrUnsupportedKind = errors.New("unsupported media kind")
)

// Catalog is the external metadata source consulted by the refresher.
type Catalog interface {
	Search(ctx context.Context, query string) (*tmdb.SearchResult, error)
	GetMovie(ctx context.Context, tmdbID int64) (*tmdb.Movie, error)
	GetTV(ctx context.Context, tmdbID int64) (*tmdb.TV, error)
	GetSeason(ctx context.Context, tvID int64, seasonNumber int) (*tmdb.Season, error)
	ImageURL(imagePath, size string) string
}

// Refresher matches library items against the catalog and stores the results.
type Refresher struct {
	store   *library.Store
	catalog Catalog
	log     *slog.Logger
}

// NewRefresher creates a refresher backed by the given store and catalog.
func NewRefresher(store *library.Store, catalog Catalog, log *slog.Logger) *Refresher {
	if log == nil {
		log = slog.Default()
	}
	return &Refresher{store: store, catalog: catalog, log: log}
}

// Refresh fetches and stores catalog metadata for a media item.
func (r *Refresher) Refresh(ctx context.Context, id string) error {
	m, err := r.store.GetMedia(id)
	if err != nil {
		return err
	}
	switch m.Kind {
	case library.KindMovie:
		return r.refreshMovie(ctx, m)
	case library.KindTVShow:
		return r.refreshShow(ctx, m)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedKind, m.Kind)
	}
}

// pickCandidate finds the search entry of the wanted type best matching title.
func (r *Refresher) pickCandidate(ctx context.Context, title, mediaType string) (*tmdb.SearchEntry, error) {
	result, err := r.catalog.Search(ctx, title)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", title, err)
	}

	var entries []tmdb.SearchEntry
	var names []string
	for _, e := range result.Results {
		if e.MediaType != mediaType {
			continue
		}
		entries = append(entries, e)
		names = append(names, e.DisplayTitle())
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w for %q", ErrNoMatch, title)
	}

	match := titles.Best(title, names)
	if match.Index < 0 {
		return nil, fmt.Errorf("%w for %q", ErrNoMatch, title)
	}
	entry := entries[match.Index]
	r.log.Debug("matched catalog candidate",
		"title", title, "candidate", match.Title, "score", match.Score, "confidence", match.Confidence.String())
	return &entry, nil
}

func (r *Refresher) refreshMovie(ctx context.Context, m *library.Media) error {
	entry, err := r.pickCandidate(ctx, m.Title, "movie")
	if err != nil {
		return err
	}

	movie, err := r.catalog.GetMovie(ctx, entry.ID)
	if err != nil {
		return fmt.Errorf("fetch movie %d: %w", entry.ID, err)
	}

	applyImage(&m.PosterPath, r.catalog.ImageURL(movie.PosterPath, "original"))
	applyImage(&m.BackdropPath, r.catalog.ImageURL(movie.BackdropPath, "original"))
	m.Overview = &movie.Overview
	m.Rating = &movie.VoteAverage
	if year := movie.Year(); year > 0 {
		m.Year = &year
	}
	if err := r.store.UpdateMediaDetails(m); err != nil {
		return err
	}

	if err := r.storeGenres(m.ID, movie.Genres); err != nil {
		return err
	}
	if err := r.storeCredits(m.ID, movie.Credits); err != nil {
		return err
	}

	r.log.Info("refreshed movie metadata", "id", m.ID, "title", m.Title, "tmdb_id", movie.ID)
	return nil
}

func (r *Refresher) refreshShow(ctx context.Context, m *library.Media) error {
	entry, err := r.pickCandidate(ctx, m.Title, "tv")
	if err != nil {
		return err
	}

	tv, err := r.catalog.GetTV(ctx, entry.ID)
	if err != nil {
		return fmt.Errorf("fetch tv %d: %w", entry.ID, err)
	}

	applyImage(&m.PosterPath, r.catalog.ImageURL(tv.PosterPath, "original"))
	applyImage(&m.BackdropPath, r.catalog.ImageURL(tv.BackdropPath, "original"))
	m.Overview = &tv.Overview
	m.Rating = &tv.VoteAverage
	if year := tv.Year(); year > 0 {
		m.Year = &year
	}
	if err := r.store.UpdateMediaDetails(m); err != nil {
		return err
	}

	if err := r.storeGenres(m.ID, tv.Genres); err != nil {
		return err
	}
	if err := r.storeCredits(m.ID, tv.Credits); err != nil {
		return err
	}

	if err := r.refreshSeasons(ctx, m, tv); err != nil {
		return err
	}

	r.log.Info("refreshed show metadata", "id", m.ID, "title", m.Title, "tmdb_id", tv.ID)
	return nil
}

// refreshSeasons enriches the stored seasons and episodes of a show by
// matching season and episode numbers against the catalog record.
func (r *Refresher) refreshSeasons(ctx context.Context, m *library.Media, tv *tmdb.TV) error {
	stored, err := r.store.ListSeasons(m.ID)
	if err != nil {
		return err
	}

	catalogSeasons := make(map[int]tmdb.Season, len(tv.Seasons))
	for _, s := range tv.Seasons {
		catalogSeasons[s.SeasonNumber] = s
	}

	for _, sn := range stored {
		cs, ok := catalogSeasons[sn.SeasonNumber]
		if !ok {
			continue
		}
		if cs.Name != "" {
			sn.Title = &cs.Name
		}
		if cs.Overview != "" {
			sn.Overview = &cs.Overview
		}
		applyImage(&sn.PosterPath, r.catalog.ImageURL(cs.PosterPath, "original"))
		if err := r.store.UpdateSeasonDetails(sn); err != nil {
			return err
		}

		if err := r.refreshEpisodes(ctx, tv.ID, sn); err != nil {
			return err
		}
	}
	return nil
}

func (r *Refresher) refreshEpisodes(ctx context.Context, tvID int64, sn *library.Season) error {
	detail, err := r.catalog.GetSeason(ctx, tvID, sn.SeasonNumber)
	if err != nil {
		if errors.Is(err, tmdb.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("fetch season %d: %w", sn.SeasonNumber, err)
	}

	catalogEpisodes := make(map[int]tmdb.Episode, len(detail.Episodes))
	for _, e := range detail.Episodes {
		catalogEpisodes[e.EpisodeNumber] = e
	}

	stored, err := r.store.ListEpisodes(sn.ID)
	if err != nil {
		return err
	}
	for _, ep := range stored {
		ce, ok := catalogEpisodes[ep.EpisodeNumber]
		if !ok {
			continue
		}
		if ce.Name != "" {
			ep.Title = ce.Name
		}
		if ce.Overview != "" {
			ep.Overview = &ce.Overview
		}
		applyImage(&ep.StillPath, r.catalog.ImageURL(ce.StillPath, "original"))
		if ce.AirDate != "" {
			ep.AirDate = &ce.AirDate
		}
		if ce.Runtime > 0 {
			ep.Runtime = &ce.Runtime
		}
		if err := r.store.UpdateEpisodeDetails(ep); err != nil {
			return err
		}
	}
	return nil
}

func (r *Refresher) storeGenres(mediaID string, genres []tmdb.Genre) error {
	for _, g := range genres {
		if g.Name == "" {
			continue
		}
		id, err := r.store.EnsureGenre(g.Name, uuid.NewString())
		if err != nil {
			return err
		}
		if err := r.store.TagGenre(mediaID, id); err != nil {
			return err
		}
	}
	return nil
}

func (r *Refresher) storeCredits(mediaID string, credits tmdb.Credits) error {
	cast := credits.Cast
	if len(cast) > maxCastCredits {
		cast = cast[:maxCastCredits]
	}
	for _, c := range cast {
		profile := imageOrNil(r.catalog.ImageURL(c.ProfilePath, "w185"))
		id, err := r.store.EnsurePerson(c.Name, profile, uuid.NewString())
		if err != nil {
			return err
		}
		character := c.Character
		if err := r.store.Credit(mediaID, id, "actor", &character); err != nil {
			return err
		}
	}
	for _, c := range credits.Crew {
		if c.Job != "Director" {
			continue
		}
		profile := imageOrNil(r.catalog.ImageURL(c.ProfilePath, "w185"))
		id, err := r.store.EnsurePerson(c.Name, profile, uuid.NewString())
		if err != nil {
			return err
		}
		if err := r.store.Credit(mediaID, id, "director", nil); err != nil {
			return err
		}
	}
	return nil
}

// applyImage sets dst only when the catalog supplied an image.
func applyImage(dst **string, url string) {
	if url != "" {
		*dst = &url
	}
}

func imageOrNil(url string) *string {
	if url == "" {
		return nil
	}
	return &url
}

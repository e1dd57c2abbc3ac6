package library

import (
	"fmt"
)

const episodeColumns = `id, media_id, season_id, episode_number, title, overview, path, still_path, air_date, runtime`

func scanEpisode(row interface{ Scan(...any) error }) (*Episode, error) {
	e := &Episode{}
	err := row.Scan(&e.ID, &e.MediaID, &e.SeasonID, &e.EpisodeNumber, &e.Title,
		&e.Overview, &e.Path, &e.StillPath, &e.AirDate, &e.Runtime)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// AddEpisode inserts a new episode. The caller supplies the ID.
func (s *Store) AddEpisode(e *Episode) error {
	_, err := s.db.Exec(`
		INSERT INTO episodes (id, media_id, season_id, episode_number, title, overview, path, still_path, air_date, runtime)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.MediaID, e.SeasonID, e.EpisodeNumber, e.Title, e.Overview, e.Path, e.StillPath, e.AirDate, e.Runtime,
	)
	if err != nil {
		return fmt.Errorf("insert episode: %w", mapSQLiteError(err))
	}
	return nil
}

// GetEpisode retrieves an episode by ID.
// Returns ErrNotFound if the episode does not exist.
func (s *Store) GetEpisode(id string) (*Episode, error) {
	e, err := scanEpisode(s.db.QueryRow(`SELECT `+episodeColumns+` FROM episodes WHERE id = ?`, id))
	if err != nil {
		return nil, fmt.Errorf("get episode %s: %w", id, mapSQLiteError(err))
	}
	return e, nil
}

// ListEpisodes returns all episodes of a season, ordered by episode number.
func (s *Store) ListEpisodes(seasonID string) ([]*Episode, error) {
	rows, err := s.db.Query(
		`SELECT `+episodeColumns+` FROM episodes WHERE season_id = ? ORDER BY episode_number`, seasonID)
	if err != nil {
		return nil, fmt.Errorf("list episodes of %s: %w", seasonID, err)
	}
	defer func() { _ = rows.Close() }()

	var results []*Episode
	for rows.Next() {
		e, err := scanEpisode(rows)
		if err != nil {
			return nil, fmt.Errorf("scan episode: %w", err)
		}
		results = append(results, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate episodes: %w", err)
	}
	return results, nil
}

// UpdateEpisodeDetails stores metadata fetched from the external catalog.
func (s *Store) UpdateEpisodeDetails(e *Episode) error {
	_, err := s.db.Exec(`
		UPDATE episodes SET title = ?, overview = ?, still_path = ?, air_date = ?, runtime = ?
		WHERE id = ?`,
		e.Title, e.Overview, e.StillPath, e.AirDate, e.Runtime, e.ID,
	)
	if err != nil {
		return fmt.Errorf("update episode %s: %w", e.ID, mapSQLiteError(err))
	}
	return nil
}

// EpisodePathsUnderRoot returns every episode path stored under root.
// Paths are matched by string prefix, exactly as stored.
func (s *Store) EpisodePathsUnderRoot(root string) (map[string]struct{}, error) {
	rows, err := s.db.Query(`SELECT path FROM episodes WHERE path LIKE ?`, root+"%")
	if err != nil {
		return nil, fmt.Errorf("episode paths under %s: %w", root, err)
	}
	defer func() { _ = rows.Close() }()

	paths := make(map[string]struct{})
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("scan path: %w", err)
		}
		paths[p] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate paths: %w", err)
	}
	return paths, nil
}

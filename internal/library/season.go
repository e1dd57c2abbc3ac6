package library

import (
	"fmt"
)

// AddSeason inserts a new season. The caller supplies the ID.
func (s *Store) AddSeason(sn *Season) error {
	_, err := s.db.Exec(`
		INSERT INTO seasons (id, media_id, season_number, title, overview, poster_path)
		VALUES (?, ?, ?, ?, ?, ?)`,
		sn.ID, sn.MediaID, sn.SeasonNumber, sn.Title, sn.Overview, sn.PosterPath,
	)
	if err != nil {
		return fmt.Errorf("insert season: %w", mapSQLiteError(err))
	}
	return nil
}

// GetSeasonByNumber finds a season of a show by its number.
// Returns nil, nil if not found.
func (s *Store) GetSeasonByNumber(mediaID string, number int) (*Season, error) {
	sn := &Season{}
	err := s.db.QueryRow(`
		SELECT id, media_id, season_number, title, overview, poster_path
		FROM seasons WHERE media_id = ? AND season_number = ?`, mediaID, number,
	).Scan(&sn.ID, &sn.MediaID, &sn.SeasonNumber, &sn.Title, &sn.Overview, &sn.PosterPath)
	if err != nil {
		err = mapSQLiteError(err)
		if err == ErrNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("get season %d of %s: %w", number, mediaID, err)
	}
	return sn, nil
}

// ListSeasons returns all seasons of a show, ordered by season number.
func (s *Store) ListSeasons(mediaID string) ([]*Season, error) {
	rows, err := s.db.Query(`
		SELECT id, media_id, season_number, title, overview, poster_path
		FROM seasons WHERE media_id = ? ORDER BY season_number`, mediaID)
	if err != nil {
		return nil, fmt.Errorf("list seasons of %s: %w", mediaID, err)
	}
	defer func() { _ = rows.Close() }()

	var results []*Season
	for rows.Next() {
		sn := &Season{}
		if err := rows.Scan(&sn.ID, &sn.MediaID, &sn.SeasonNumber, &sn.Title, &sn.Overview, &sn.PosterPath); err != nil {
			return nil, fmt.Errorf("scan season: %w", err)
		}
		results = append(results, sn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate seasons: %w", err)
	}
	return results, nil
}

// UpdateSeasonDetails stores metadata fetched from the external catalog.
func (s *Store) UpdateSeasonDetails(sn *Season) error {
	_, err := s.db.Exec(`
		UPDATE seasons SET title = ?, overview = ?, poster_path = ? WHERE id = ?`,
		sn.Title, sn.Overview, sn.PosterPath, sn.ID,
	)
	if err != nil {
		return fmt.Errorf("update season %s: %w", sn.ID, mapSQLiteError(err))
	}
	return nil
}

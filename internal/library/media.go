package library

import (
	"fmt"
	"strings"
	"time"
)

const mediaColumns = `id, title, kind, year, path, poster_path, backdrop_path, overview, rating, added_at, last_watched, watch_count`

func scanMedia(row interface{ Scan(...any) error }) (*Media, error) {
	m := &Media{}
	err := row.Scan(&m.ID, &m.Title, &m.Kind, &m.Year, &m.Path, &m.PosterPath,
		&m.BackdropPath, &m.Overview, &m.Rating, &m.AddedAt, &m.LastWatched, &m.WatchCount)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// AddMedia inserts a new media item. Sets AddedAt on the struct.
// The caller supplies the ID.
func (s *Store) AddMedia(m *Media) error {
	now := time.Now().UTC()
	_, err := s.db.Exec(`
		INSERT INTO media (id, title, kind, year, path, poster_path, backdrop_path, overview, rating, added_at, watch_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0)`,
		m.ID, m.Title, m.Kind, m.Year, m.Path, m.PosterPath, m.BackdropPath, m.Overview, m.Rating, now,
	)
	if err != nil {
		return fmt.Errorf("insert media: %w", mapSQLiteError(err))
	}
	m.AddedAt = now
	return nil
}

// GetMedia retrieves a media item by ID.
// Returns ErrNotFound if the media does not exist.
func (s *Store) GetMedia(id string) (*Media, error) {
	m, err := scanMedia(s.db.QueryRow(`SELECT `+mediaColumns+` FROM media WHERE id = ?`, id))
	if err != nil {
		return nil, fmt.Errorf("get media %s: %w", id, mapSQLiteError(err))
	}
	return m, nil
}

// GetMediaByTitleKind finds a media item by exact title and kind.
// Returns nil, nil if not found.
func (s *Store) GetMediaByTitleKind(title string, kind MediaKind) (*Media, error) {
	m, err := scanMedia(s.db.QueryRow(
		`SELECT `+mediaColumns+` FROM media WHERE title = ? AND kind = ?`, title, kind))
	if err != nil {
		err = mapSQLiteError(err)
		if err == ErrNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("get media by title %q: %w", title, err)
	}
	return m, nil
}

// MediaFilter narrows ListMedia results.
type MediaFilter struct {
	Kind   *MediaKind
	Limit  int
	Offset int
}

// ListMedia returns media items matching the filter, ordered by title.
// Returns (results, totalCount, error).
func (s *Store) ListMedia(f MediaFilter) ([]*Media, int, error) {
	var conditions []string
	var args []any
	if f.Kind != nil {
		conditions = append(conditions, "kind = ?")
		args = append(args, *f.Kind)
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM media "+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count media: %w", err)
	}

	query := `SELECT ` + mediaColumns + ` FROM media ` + whereClause + ` ORDER BY title`
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.Limit, f.Offset)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list media: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []*Media
	for rows.Next() {
		m, err := scanMedia(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan media: %w", err)
		}
		results = append(results, m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate media: %w", err)
	}

	return results, total, nil
}

// UpdateMediaDetails stores metadata fetched from the external catalog.
// Returns ErrNotFound if the media does not exist.
func (s *Store) UpdateMediaDetails(m *Media) error {
	result, err := s.db.Exec(`
		UPDATE media SET title = ?, year = ?, poster_path = ?, backdrop_path = ?, overview = ?, rating = ?
		WHERE id = ?`,
		m.Title, m.Year, m.PosterPath, m.BackdropPath, m.Overview, m.Rating, m.ID,
	)
	if err != nil {
		return fmt.Errorf("update media %s: %w", m.ID, mapSQLiteError(err))
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("update media %s: %w", m.ID, ErrNotFound)
	}
	return nil
}

// RecordWatch bumps the watch counter and last-watched timestamp.
func (s *Store) RecordWatch(id string) error {
	_, err := s.db.Exec(
		`UPDATE media SET watch_count = watch_count + 1, last_watched = ? WHERE id = ?`,
		time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("record watch %s: %w", id, mapSQLiteError(err))
	}
	return nil
}

// DeleteMedia removes a media item by ID.
// This operation is idempotent - no error is returned if the media does not exist.
func (s *Store) DeleteMedia(id string) error {
	_, err := s.db.Exec("DELETE FROM media WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete media %s: %w", id, mapSQLiteError(err))
	}
	return nil
}

// PathsUnderRoot returns every media path stored under root for the given kind.
// Paths are matched by string prefix, exactly as stored.
func (s *Store) PathsUnderRoot(root string, kind MediaKind) (map[string]struct{}, error) {
	rows, err := s.db.Query(`SELECT path FROM media WHERE path LIKE ? AND kind = ?`, root+"%", kind)
	if err != nil {
		return nil, fmt.Errorf("media paths under %s: %w", root, err)
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

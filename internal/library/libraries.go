package library

import (
	"fmt"
)

// AddLibrary inserts a new library root. The caller supplies the ID.
func (s *Store) AddLibrary(l *Library) error {
	_, err := s.db.Exec(`
		INSERT INTO libraries (id, name, path, kind, scan_automatically)
		VALUES (?, ?, ?, ?, ?)`,
		l.ID, l.Name, l.Path, l.Kind, l.ScanAutomatically,
	)
	if err != nil {
		return fmt.Errorf("insert library: %w", mapSQLiteError(err))
	}
	return nil
}

// GetLibrary retrieves a library by ID.
// Returns ErrNotFound if the library does not exist.
func (s *Store) GetLibrary(id string) (*Library, error) {
	l := &Library{}
	err := s.db.QueryRow(`
		SELECT id, name, path, kind, scan_automatically
		FROM libraries WHERE id = ?`, id,
	).Scan(&l.ID, &l.Name, &l.Path, &l.Kind, &l.ScanAutomatically)
	if err != nil {
		return nil, fmt.Errorf("get library %s: %w", id, mapSQLiteError(err))
	}
	return l, nil
}

// ListLibraries returns all configured libraries, ordered by name.
func (s *Store) ListLibraries() ([]*Library, error) {
	rows, err := s.db.Query(`SELECT id, name, path, kind, scan_automatically FROM libraries ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list libraries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []*Library
	for rows.Next() {
		l := &Library{}
		if err := rows.Scan(&l.ID, &l.Name, &l.Path, &l.Kind, &l.ScanAutomatically); err != nil {
			return nil, fmt.Errorf("scan library: %w", err)
		}
		results = append(results, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate libraries: %w", err)
	}
	return results, nil
}

// DeleteLibrary removes a library by ID.
// Indexed media under its root is kept; a later scan of a re-added library
// finds it via the path snapshot.
func (s *Store) DeleteLibrary(id string) error {
	_, err := s.db.Exec("DELETE FROM libraries WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete library %s: %w", id, mapSQLiteError(err))
	}
	return nil
}

package library

import (
	"fmt"
)

// EnsureGenre returns the ID of the genre with the given name,
// inserting it first if necessary. newID is used only on insert.
func (s *Store) EnsureGenre(name, newID string) (string, error) {
	var id string
	err := s.db.QueryRow(`SELECT id FROM genres WHERE name = ?`, name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if mapSQLiteError(err) != ErrNotFound {
		return "", fmt.Errorf("lookup genre %q: %w", name, err)
	}
	if _, err := s.db.Exec(`INSERT INTO genres (id, name) VALUES (?, ?)`, newID, name); err != nil {
		return "", fmt.Errorf("insert genre %q: %w", name, mapSQLiteError(err))
	}
	return newID, nil
}

// TagGenre links a media item to a genre. Idempotent.
func (s *Store) TagGenre(mediaID, genreID string) error {
	_, err := s.db.Exec(
		`INSERT OR IGNORE INTO media_genres (media_id, genre_id) VALUES (?, ?)`, mediaID, genreID)
	if err != nil {
		return fmt.Errorf("tag genre: %w", mapSQLiteError(err))
	}
	return nil
}

// MediaGenres returns the genre names tagged on a media item.
func (s *Store) MediaGenres(mediaID string) ([]Genre, error) {
	rows, err := s.db.Query(`
		SELECT g.id, g.name FROM genres g
		JOIN media_genres mg ON mg.genre_id = g.id
		WHERE mg.media_id = ? ORDER BY g.name`, mediaID)
	if err != nil {
		return nil, fmt.Errorf("media genres: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []Genre
	for rows.Next() {
		var g Genre
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, fmt.Errorf("scan genre: %w", err)
		}
		results = append(results, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate genres: %w", err)
	}
	return results, nil
}

// EnsurePerson returns the ID of the person with the given name,
// inserting them first if necessary. newID is used only on insert.
func (s *Store) EnsurePerson(name string, profilePath *string, newID string) (string, error) {
	var id string
	err := s.db.QueryRow(`SELECT id FROM people WHERE name = ?`, name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if mapSQLiteError(err) != ErrNotFound {
		return "", fmt.Errorf("lookup person %q: %w", name, err)
	}
	if _, err := s.db.Exec(
		`INSERT INTO people (id, name, profile_path) VALUES (?, ?, ?)`, newID, name, profilePath); err != nil {
		return "", fmt.Errorf("insert person %q: %w", name, mapSQLiteError(err))
	}
	return newID, nil
}

// Credit links a person to a media item in a given role. Idempotent.
func (s *Store) Credit(mediaID, personID, role string, character *string) error {
	_, err := s.db.Exec(`
		INSERT OR IGNORE INTO media_people (media_id, person_id, role, character)
		VALUES (?, ?, ?, ?)`, mediaID, personID, role, character)
	if err != nil {
		return fmt.Errorf("credit person: %w", mapSQLiteError(err))
	}
	return nil
}

// MediaCredits returns the cast and crew of a media item.
func (s *Store) MediaCredits(mediaID string) ([]Credit, error) {
	rows, err := s.db.Query(`
		SELECT p.id, p.name, p.profile_path, mp.role, mp.character
		FROM people p
		JOIN media_people mp ON mp.person_id = p.id
		WHERE mp.media_id = ? ORDER BY mp.role, p.name`, mediaID)
	if err != nil {
		return nil, fmt.Errorf("media credits: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []Credit
	for rows.Next() {
		var c Credit
		if err := rows.Scan(&c.Person.ID, &c.Person.Name, &c.Person.ProfilePath, &c.Role, &c.Character); err != nil {
			return nil, fmt.Errorf("scan credit: %w", err)
		}
		results = append(results, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate credits: %w", err)
	}
	return results, nil
}

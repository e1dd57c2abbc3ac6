package library

import (
	"fmt"
	"time"
)

// UpsertProgress creates or updates a watch-progress row for
// (user, media, episode). The caller supplies the ID used on insert.
func (s *Store) UpsertProgress(p *WatchProgress) error {
	now := time.Now().UTC()
	_, err := s.db.Exec(`
		INSERT INTO watch_progress (id, user_id, media_id, episode_id, position, duration, watched_at, completed)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, media_id, COALESCE(episode_id, ''))
		DO UPDATE SET position = excluded.position, duration = excluded.duration,
			watched_at = excluded.watched_at, completed = excluded.completed`,
		p.ID, p.UserID, p.MediaID, p.EpisodeID, p.Position, p.Duration, now, p.Completed,
	)
	if err != nil {
		return fmt.Errorf("upsert progress: %w", mapSQLiteError(err))
	}
	p.WatchedAt = now
	return nil
}

// GetProgress returns a user's progress on a media item.
// Returns nil, nil if no progress is recorded.
func (s *Store) GetProgress(userID, mediaID string) (*WatchProgress, error) {
	p := &WatchProgress{}
	err := s.db.QueryRow(`
		SELECT id, user_id, media_id, episode_id, position, duration, watched_at, completed
		FROM watch_progress WHERE user_id = ? AND media_id = ?
		ORDER BY watched_at DESC LIMIT 1`, userID, mediaID,
	).Scan(&p.ID, &p.UserID, &p.MediaID, &p.EpisodeID, &p.Position, &p.Duration, &p.WatchedAt, &p.Completed)
	if err != nil {
		err = mapSQLiteError(err)
		if err == ErrNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("get progress: %w", err)
	}
	return p, nil
}

// HistoryEntry is one row of a user's watch history with media context.
type HistoryEntry struct {
	Progress      WatchProgress
	MediaTitle    string
	MediaKind     MediaKind
	PosterPath    *string
	EpisodeTitle  *string
	EpisodeNumber *int
	SeasonNumber  *int
}

// WatchHistory returns the user's most recent watch-progress entries,
// newest first, capped at limit.
func (s *Store) WatchHistory(userID string, limit int) ([]*HistoryEntry, error) {
	rows, err := s.db.Query(`
		SELECT wp.id, wp.user_id, wp.media_id, wp.episode_id, wp.position, wp.duration, wp.watched_at, wp.completed,
			m.title, m.kind, m.poster_path,
			e.title, e.episode_number, sn.season_number
		FROM watch_progress wp
		JOIN media m ON wp.media_id = m.id
		LEFT JOIN episodes e ON wp.episode_id = e.id
		LEFT JOIN seasons sn ON e.season_id = sn.id
		WHERE wp.user_id = ?
		ORDER BY wp.watched_at DESC
		LIMIT ?`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("watch history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []*HistoryEntry
	for rows.Next() {
		h := &HistoryEntry{}
		err := rows.Scan(&h.Progress.ID, &h.Progress.UserID, &h.Progress.MediaID, &h.Progress.EpisodeID,
			&h.Progress.Position, &h.Progress.Duration, &h.Progress.WatchedAt, &h.Progress.Completed,
			&h.MediaTitle, &h.MediaKind, &h.PosterPath,
			&h.EpisodeTitle, &h.EpisodeNumber, &h.SeasonNumber)
		if err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		results = append(results, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history: %w", err)
	}
	return results, nil
}

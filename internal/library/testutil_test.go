package library

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/casket-media/casket/internal/migrations"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:?_foreign_keys=on")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if _, err := db.Exec(migrations.InitialSQL); err != nil {
		t.Fatalf("apply schema: %v", err)
	}
	return db
}

// ptr is a helper to create pointer to value
func ptr[T any](v T) *T {
	return &v
}

func addTestMovie(t *testing.T, store *Store, id, title string) *Media {
	t.Helper()
	m := &Media{
		ID:    id,
		Title: title,
		Kind:  KindMovie,
		Year:  ptr(2010),
		Path:  "/movies/" + title + ".mkv",
	}
	if err := store.AddMedia(m); err != nil {
		t.Fatalf("AddMedia: %v", err)
	}
	return m
}

func addTestShow(t *testing.T, store *Store, id, title string) *Media {
	t.Helper()
	m := &Media{
		ID:    id,
		Title: title,
		Kind:  KindTVShow,
		Path:  "/tv/" + title,
	}
	if err := store.AddMedia(m); err != nil {
		t.Fatalf("AddMedia: %v", err)
	}
	return m
}

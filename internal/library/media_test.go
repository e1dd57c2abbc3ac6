package library

import (
	"errors"
	"testing"
	"time"
)

func TestStore_AddMedia(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)

	m := &Media{
		ID:    "m1",
		Title: "Inception",
		Kind:  KindMovie,
		Year:  ptr(2010),
		Path:  "/movies/Inception (2010).mkv",
	}

	before := time.Now().UTC()
	if err := store.AddMedia(m); err != nil {
		t.Fatalf("AddMedia: %v", err)
	}
	after := time.Now().UTC()

	if m.AddedAt.Before(before) || m.AddedAt.After(after) {
		t.Errorf("AddedAt %v not in expected range [%v, %v]", m.AddedAt, before, after)
	}
}

func TestStore_AddMedia_DuplicateID(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)

	addTestMovie(t, store, "m1", "Inception")

	dup := &Media{ID: "m1", Title: "Other", Kind: KindMovie, Path: "/movies/other.mkv"}
	err := store.AddMedia(dup)
	if !errors.Is(err, ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}
}

func TestStore_GetMedia(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)

	original := addTestMovie(t, store, "m1", "Inception")

	got, err := store.GetMedia("m1")
	if err != nil {
		t.Fatalf("GetMedia: %v", err)
	}
	if got.Title != original.Title {
		t.Errorf("Title = %q, want %q", got.Title, original.Title)
	}
	if got.Kind != KindMovie {
		t.Errorf("Kind = %q, want %q", got.Kind, KindMovie)
	}
	if got.Year == nil || *got.Year != 2010 {
		t.Errorf("Year = %v, want 2010", got.Year)
	}
	if got.WatchCount != 0 {
		t.Errorf("WatchCount = %d, want 0", got.WatchCount)
	}
}

func TestStore_GetMedia_NotFound(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)

	_, err := store.GetMedia("missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_GetMediaByTitleKind(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)

	addTestShow(t, store, "s1", "Breaking Bad")

	got, err := store.GetMediaByTitleKind("Breaking Bad", KindTVShow)
	if err != nil {
		t.Fatalf("GetMediaByTitleKind: %v", err)
	}
	if got == nil || got.ID != "s1" {
		t.Fatalf("got %+v, want ID s1", got)
	}

	// Same title under a different kind should miss.
	got, err = store.GetMediaByTitleKind("Breaking Bad", KindMovie)
	if err != nil {
		t.Fatalf("GetMediaByTitleKind: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for wrong kind, got %+v", got)
	}
}

func TestStore_ListMedia(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)

	addTestMovie(t, store, "m1", "Zodiac")
	addTestMovie(t, store, "m2", "Alien")
	addTestShow(t, store, "s1", "Breaking Bad")

	t.Run("all ordered by title", func(t *testing.T) {
		results, total, err := store.ListMedia(MediaFilter{})
		if err != nil {
			t.Fatalf("ListMedia: %v", err)
		}
		if total != 3 {
			t.Errorf("total = %d, want 3", total)
		}
		if len(results) != 3 || results[0].Title != "Alien" || results[2].Title != "Zodiac" {
			t.Errorf("unexpected order: %v", titlesOf(results))
		}
	})

	t.Run("filter by kind", func(t *testing.T) {
		results, total, err := store.ListMedia(MediaFilter{Kind: ptr(KindMovie)})
		if err != nil {
			t.Fatalf("ListMedia: %v", err)
		}
		if total != 2 || len(results) != 2 {
			t.Errorf("total = %d, len = %d, want 2, 2", total, len(results))
		}
	})

	t.Run("pagination", func(t *testing.T) {
		results, total, err := store.ListMedia(MediaFilter{Limit: 2, Offset: 2})
		if err != nil {
			t.Fatalf("ListMedia: %v", err)
		}
		if total != 3 {
			t.Errorf("total = %d, want 3", total)
		}
		if len(results) != 1 || results[0].Title != "Zodiac" {
			t.Errorf("unexpected page: %v", titlesOf(results))
		}
	})
}

func titlesOf(ms []*Media) []string {
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = m.Title
	}
	return out
}

func TestStore_UpdateMediaDetails(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)

	m := addTestMovie(t, store, "m1", "Inception")
	m.PosterPath = ptr("/poster.jpg")
	m.Overview = ptr("A thief who steals corporate secrets.")
	m.Rating = ptr(8.4)

	if err := store.UpdateMediaDetails(m); err != nil {
		t.Fatalf("UpdateMediaDetails: %v", err)
	}

	got, err := store.GetMedia("m1")
	if err != nil {
		t.Fatalf("GetMedia: %v", err)
	}
	if got.PosterPath == nil || *got.PosterPath != "/poster.jpg" {
		t.Errorf("PosterPath = %v, want /poster.jpg", got.PosterPath)
	}
	if got.Rating == nil || *got.Rating != 8.4 {
		t.Errorf("Rating = %v, want 8.4", got.Rating)
	}
}

func TestStore_UpdateMediaDetails_NotFound(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)

	err := store.UpdateMediaDetails(&Media{ID: "missing", Title: "X", Kind: KindMovie})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_RecordWatch(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)

	addTestMovie(t, store, "m1", "Inception")

	if err := store.RecordWatch("m1"); err != nil {
		t.Fatalf("RecordWatch: %v", err)
	}
	if err := store.RecordWatch("m1"); err != nil {
		t.Fatalf("RecordWatch: %v", err)
	}

	got, err := store.GetMedia("m1")
	if err != nil {
		t.Fatalf("GetMedia: %v", err)
	}
	if got.WatchCount != 2 {
		t.Errorf("WatchCount = %d, want 2", got.WatchCount)
	}
	if got.LastWatched == nil {
		t.Error("LastWatched should be set")
	}
}

func TestStore_DeleteMedia(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)

	addTestMovie(t, store, "m1", "Inception")

	if err := store.DeleteMedia("m1"); err != nil {
		t.Fatalf("DeleteMedia: %v", err)
	}
	if _, err := store.GetMedia("m1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}

	// Deleting again is a no-op.
	if err := store.DeleteMedia("m1"); err != nil {
		t.Errorf("repeat DeleteMedia: %v", err)
	}
}

func TestStore_PathsUnderRoot(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)

	for i, path := range []string{
		"/movies/Inception (2010).mkv",
		"/movies/Alien (1979).mp4",
		"/other/Zodiac (2007).mkv",
	} {
		m := &Media{ID: string(rune('a' + i)), Title: path, Kind: KindMovie, Path: path}
		if err := store.AddMedia(m); err != nil {
			t.Fatalf("AddMedia: %v", err)
		}
	}

	paths, err := store.PathsUnderRoot("/movies", KindMovie)
	if err != nil {
		t.Fatalf("PathsUnderRoot: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("len(paths) = %d, want 2", len(paths))
	}
	if _, ok := paths["/movies/Inception (2010).mkv"]; !ok {
		t.Error("missing indexed path")
	}
	if _, ok := paths["/other/Zodiac (2007).mkv"]; ok {
		t.Error("path outside root should be excluded")
	}
}

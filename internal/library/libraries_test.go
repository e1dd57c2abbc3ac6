package library

import (
	"errors"
	"testing"
)

func TestStore_AddLibrary(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)

	l := &Library{
		ID:                "l1",
		Name:              "Movies",
		Path:              "/mnt/movies",
		Kind:              KindMovie,
		ScanAutomatically: true,
	}
	if err := store.AddLibrary(l); err != nil {
		t.Fatalf("AddLibrary: %v", err)
	}

	got, err := store.GetLibrary("l1")
	if err != nil {
		t.Fatalf("GetLibrary: %v", err)
	}
	if got.Name != "Movies" || got.Kind != KindMovie || !got.ScanAutomatically {
		t.Errorf("got %+v", got)
	}
}

func TestStore_AddLibrary_InvalidKind(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)

	l := &Library{ID: "l1", Name: "Books", Path: "/books", Kind: "book"}
	err := store.AddLibrary(l)
	if !errors.Is(err, ErrConstraint) {
		t.Errorf("expected ErrConstraint for unknown kind, got %v", err)
	}
}

func TestStore_GetLibrary_NotFound(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)

	_, err := store.GetLibrary("missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_ListLibraries(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)

	for _, l := range []*Library{
		{ID: "l1", Name: "Shows", Path: "/tv", Kind: KindTVShow},
		{ID: "l2", Name: "Movies", Path: "/movies", Kind: KindMovie},
	} {
		if err := store.AddLibrary(l); err != nil {
			t.Fatalf("AddLibrary: %v", err)
		}
	}

	libs, err := store.ListLibraries()
	if err != nil {
		t.Fatalf("ListLibraries: %v", err)
	}
	if len(libs) != 2 {
		t.Fatalf("len(libs) = %d, want 2", len(libs))
	}
	if libs[0].Name != "Movies" || libs[1].Name != "Shows" {
		t.Errorf("libraries not ordered by name: %q, %q", libs[0].Name, libs[1].Name)
	}
}

func TestStore_DeleteLibrary_KeepsMedia(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)

	l := &Library{ID: "l1", Name: "Movies", Path: "/movies", Kind: KindMovie}
	if err := store.AddLibrary(l); err != nil {
		t.Fatalf("AddLibrary: %v", err)
	}
	addTestMovie(t, store, "m1", "Inception")

	if err := store.DeleteLibrary("l1"); err != nil {
		t.Fatalf("DeleteLibrary: %v", err)
	}
	if _, err := store.GetLibrary("l1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected library gone, got %v", err)
	}
	// Indexed media survives library removal.
	if _, err := store.GetMedia("m1"); err != nil {
		t.Errorf("media should survive library delete: %v", err)
	}
}

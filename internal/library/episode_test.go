package library

import (
	"errors"
	"testing"
)

func setupShowWithSeason(t *testing.T, store *Store) (*Media, *Season) {
	t.Helper()
	show := addTestShow(t, store, "s1", "Breaking Bad")
	sn := &Season{ID: "sn1", MediaID: show.ID, SeasonNumber: 1}
	if err := store.AddSeason(sn); err != nil {
		t.Fatalf("AddSeason: %v", err)
	}
	return show, sn
}

func TestStore_AddEpisode(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)

	show, sn := setupShowWithSeason(t, store)

	e := &Episode{
		ID:            "e1",
		MediaID:       show.ID,
		SeasonID:      sn.ID,
		EpisodeNumber: 1,
		Title:         "Pilot",
		Path:          "/tv/Breaking Bad/Season 1/S01E01.mkv",
	}
	if err := store.AddEpisode(e); err != nil {
		t.Fatalf("AddEpisode: %v", err)
	}

	got, err := store.GetEpisode("e1")
	if err != nil {
		t.Fatalf("GetEpisode: %v", err)
	}
	if got.Title != "Pilot" || got.EpisodeNumber != 1 {
		t.Errorf("got %+v", got)
	}
}

func TestStore_GetEpisode_NotFound(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)

	_, err := store.GetEpisode("missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_AddEpisode_UnknownSeason(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)

	show := addTestShow(t, store, "s1", "Breaking Bad")

	e := &Episode{
		ID:            "e1",
		MediaID:       show.ID,
		SeasonID:      "nope",
		EpisodeNumber: 1,
		Title:         "Pilot",
		Path:          "/tv/x.mkv",
	}
	err := store.AddEpisode(e)
	if !errors.Is(err, ErrConstraint) {
		t.Errorf("expected ErrConstraint for dangling season, got %v", err)
	}
}

func TestStore_ListEpisodes(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)

	show, sn := setupShowWithSeason(t, store)
	for _, tc := range []struct {
		id     string
		number int
	}{{"e3", 3}, {"e1", 1}, {"e2", 2}} {
		e := &Episode{
			ID: tc.id, MediaID: show.ID, SeasonID: sn.ID,
			EpisodeNumber: tc.number,
			Title:         "Episode",
			Path:          "/tv/" + tc.id + ".mkv",
		}
		if err := store.AddEpisode(e); err != nil {
			t.Fatalf("AddEpisode: %v", err)
		}
	}

	episodes, err := store.ListEpisodes(sn.ID)
	if err != nil {
		t.Fatalf("ListEpisodes: %v", err)
	}
	if len(episodes) != 3 {
		t.Fatalf("len(episodes) = %d, want 3", len(episodes))
	}
	for i, e := range episodes {
		if e.EpisodeNumber != i+1 {
			t.Errorf("episodes[%d].EpisodeNumber = %d, want %d", i, e.EpisodeNumber, i+1)
		}
	}
}

func TestStore_UpdateEpisodeDetails(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)

	show, sn := setupShowWithSeason(t, store)
	e := &Episode{
		ID: "e1", MediaID: show.ID, SeasonID: sn.ID,
		EpisodeNumber: 1, Title: "Episode 1", Path: "/tv/e1.mkv",
	}
	if err := store.AddEpisode(e); err != nil {
		t.Fatalf("AddEpisode: %v", err)
	}

	e.Title = "Pilot"
	e.Overview = ptr("Walter White receives a diagnosis.")
	e.AirDate = ptr("2008-01-20")
	e.Runtime = ptr(58)
	if err := store.UpdateEpisodeDetails(e); err != nil {
		t.Fatalf("UpdateEpisodeDetails: %v", err)
	}

	got, err := store.GetEpisode("e1")
	if err != nil {
		t.Fatalf("GetEpisode: %v", err)
	}
	if got.Title != "Pilot" {
		t.Errorf("Title = %q, want Pilot", got.Title)
	}
	if got.Runtime == nil || *got.Runtime != 58 {
		t.Errorf("Runtime = %v, want 58", got.Runtime)
	}
}

func TestStore_EpisodePathsUnderRoot(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)

	show, sn := setupShowWithSeason(t, store)
	for i, path := range []string{
		"/tv/Breaking Bad/Season 1/S01E01.mkv",
		"/tv/Breaking Bad/Season 1/S01E02.mkv",
		"/archive/old.mkv",
	} {
		e := &Episode{
			ID: string(rune('a' + i)), MediaID: show.ID, SeasonID: sn.ID,
			EpisodeNumber: i + 1, Title: "Episode", Path: path,
		}
		if err := store.AddEpisode(e); err != nil {
			t.Fatalf("AddEpisode: %v", err)
		}
	}

	paths, err := store.EpisodePathsUnderRoot("/tv")
	if err != nil {
		t.Fatalf("EpisodePathsUnderRoot: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("len(paths) = %d, want 2", len(paths))
	}
	if _, ok := paths["/archive/old.mkv"]; ok {
		t.Error("path outside root should be excluded")
	}
}

func TestStore_DeleteMedia_CascadesEpisodes(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)

	show, sn := setupShowWithSeason(t, store)
	e := &Episode{
		ID: "e1", MediaID: show.ID, SeasonID: sn.ID,
		EpisodeNumber: 1, Title: "Pilot", Path: "/tv/e1.mkv",
	}
	if err := store.AddEpisode(e); err != nil {
		t.Fatalf("AddEpisode: %v", err)
	}

	if err := store.DeleteMedia(show.ID); err != nil {
		t.Fatalf("DeleteMedia: %v", err)
	}
	if _, err := store.GetEpisode("e1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected episode gone after show delete, got %v", err)
	}
}

package library

import (
	"testing"
)

func TestStore_EnsureGenre(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)

	id, err := store.EnsureGenre("Drama", "g1")
	if err != nil {
		t.Fatalf("EnsureGenre: %v", err)
	}
	if id != "g1" {
		t.Errorf("id = %q, want g1", id)
	}

	// Same name returns the existing ID, the new one is discarded.
	id, err = store.EnsureGenre("Drama", "g2")
	if err != nil {
		t.Fatalf("EnsureGenre: %v", err)
	}
	if id != "g1" {
		t.Errorf("id = %q, want g1", id)
	}
}

func TestStore_TagGenre(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)

	addTestMovie(t, store, "m1", "Inception")
	for _, g := range []struct{ name, id string }{{"Sci-Fi", "g1"}, {"Action", "g2"}} {
		id, err := store.EnsureGenre(g.name, g.id)
		if err != nil {
			t.Fatalf("EnsureGenre: %v", err)
		}
		if err := store.TagGenre("m1", id); err != nil {
			t.Fatalf("TagGenre: %v", err)
		}
	}
	// Re-tagging is a no-op.
	if err := store.TagGenre("m1", "g1"); err != nil {
		t.Fatalf("repeat TagGenre: %v", err)
	}

	genres, err := store.MediaGenres("m1")
	if err != nil {
		t.Fatalf("MediaGenres: %v", err)
	}
	if len(genres) != 2 {
		t.Fatalf("len(genres) = %d, want 2", len(genres))
	}
	if genres[0].Name != "Action" || genres[1].Name != "Sci-Fi" {
		t.Errorf("genres not ordered by name: %q, %q", genres[0].Name, genres[1].Name)
	}
}

func TestStore_Credits(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)

	addTestMovie(t, store, "m1", "Inception")

	actorID, err := store.EnsurePerson("Leonardo DiCaprio", ptr("/leo.jpg"), "pe1")
	if err != nil {
		t.Fatalf("EnsurePerson: %v", err)
	}
	directorID, err := store.EnsurePerson("Christopher Nolan", nil, "pe2")
	if err != nil {
		t.Fatalf("EnsurePerson: %v", err)
	}

	if err := store.Credit("m1", actorID, "actor", ptr("Cobb")); err != nil {
		t.Fatalf("Credit: %v", err)
	}
	if err := store.Credit("m1", directorID, "director", nil); err != nil {
		t.Fatalf("Credit: %v", err)
	}

	credits, err := store.MediaCredits("m1")
	if err != nil {
		t.Fatalf("MediaCredits: %v", err)
	}
	if len(credits) != 2 {
		t.Fatalf("len(credits) = %d, want 2", len(credits))
	}

	var sawActor, sawDirector bool
	for _, c := range credits {
		switch c.Role {
		case "actor":
			sawActor = true
			if c.Person.Name != "Leonardo DiCaprio" {
				t.Errorf("actor name = %q", c.Person.Name)
			}
			if c.Character == nil || *c.Character != "Cobb" {
				t.Errorf("character = %v, want Cobb", c.Character)
			}
		case "director":
			sawDirector = true
			if c.Person.Name != "Christopher Nolan" {
				t.Errorf("director name = %q", c.Person.Name)
			}
		}
	}
	if !sawActor || !sawDirector {
		t.Errorf("missing credits: actor=%v director=%v", sawActor, sawDirector)
	}
}

func TestStore_EnsurePerson_Reuse(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)

	id1, err := store.EnsurePerson("Christopher Nolan", nil, "pe1")
	if err != nil {
		t.Fatalf("EnsurePerson: %v", err)
	}
	id2, err := store.EnsurePerson("Christopher Nolan", nil, "pe2")
	if err != nil {
		t.Fatalf("EnsurePerson: %v", err)
	}
	if id1 != id2 {
		t.Errorf("expected reuse of existing person, got %q and %q", id1, id2)
	}
}

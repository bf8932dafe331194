package places

import (
	"context"
	"database/sql"
	"testing"

	"trip-planner-service/internal/adapters/repositories"

	_ "modernc.org/sqlite"
)

func openSeededDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := repositories.InitSchema(db); err != nil {
		t.Fatalf("init schema: %v", err)
	}

	seed := []struct {
		id, name string
		lat, lng float64
		aliases  []string
	}{
		{"sev", "Sevilla", 37.389, -5.984, []string{"Seville"}},
		{"gra", "Granada", 37.177, -3.598, nil},
		{"gdx", "Guadix", 37.299, -3.139, nil},
		{"lis", "Lisboa", 38.722, -9.139, []string{"Lisbon"}},
	}
	for _, s := range seed {
		if _, err := db.Exec(
			`INSERT INTO places (id, name, lat, lng) VALUES (?, ?, ?, ?)`,
			s.id, s.name, s.lat, s.lng,
		); err != nil {
			t.Fatalf("seed place %s: %v", s.name, err)
		}
		for _, alias := range s.aliases {
			if _, err := db.Exec(
				`INSERT INTO place_aliases (place_id, alias) VALUES (?, ?)`,
				s.id, alias,
			); err != nil {
				t.Fatalf("seed alias %s: %v", alias, err)
			}
		}
	}
	return db
}

func TestSqliteResolveByName(t *testing.T) {
	store := NewSqlitePlaceStore(openSeededDB(t))

	loc, ok, err := store.Resolve(context.Background(), "  granada ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("known place not resolved")
	}
	if loc.ID != "gra" || loc.Name != "Granada" {
		t.Fatalf("resolved %+v, want Granada", loc)
	}
	if loc.Lat != 37.177 || loc.Lng != -3.598 {
		t.Fatalf("coordinates = (%v, %v), want seeded values", loc.Lat, loc.Lng)
	}
}

func TestSqliteResolveByAlias(t *testing.T) {
	store := NewSqlitePlaceStore(openSeededDB(t))

	loc, ok, err := store.Resolve(context.Background(), "LISBON")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok || loc.Name != "Lisboa" {
		t.Fatalf("resolved (%+v, %v), want alias to map to Lisboa", loc, ok)
	}
}

func TestSqliteResolveMisses(t *testing.T) {
	store := NewSqlitePlaceStore(openSeededDB(t))

	if _, ok, err := store.Resolve(context.Background(), "Atlantis"); err != nil || ok {
		t.Fatalf("resolve = (%v, %v), want clean miss", ok, err)
	}
	if _, ok, err := store.Resolve(context.Background(), "   "); err != nil || ok {
		t.Fatalf("blank input = (%v, %v), want clean miss", ok, err)
	}
}

func TestSqliteSearchRanksPrefixFirst(t *testing.T) {
	store := NewSqlitePlaceStore(openSeededDB(t))

	// "Gra" is a prefix of Granada and a substring of nothing else seeded
	// except via aliases; Guadix must not appear.
	locs, err := store.Search(context.Background(), "gra", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(locs) != 1 || locs[0].Name != "Granada" {
		t.Fatalf("search = %+v, want [Granada]", locs)
	}

	// Substring matches rank after prefix matches.
	locs, err = store.Search(context.Background(), "s", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(locs) != 2 {
		t.Fatalf("search = %+v, want Sevilla and Lisboa", locs)
	}
	if locs[0].Name != "Sevilla" {
		t.Fatalf("first result = %s, want prefix match Sevilla first", locs[0].Name)
	}
}

func TestSqliteSearchLimitAndBlank(t *testing.T) {
	store := NewSqlitePlaceStore(openSeededDB(t))

	locs, err := store.Search(context.Background(), "a", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(locs) > 2 {
		t.Fatalf("got %d results, want limit of 2 respected", len(locs))
	}

	locs, err = store.Search(context.Background(), "  ", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(locs) != 0 {
		t.Fatalf("blank query returned %+v, want empty", locs)
	}
}

package store

import (
	"testing"

	"github.com/lox/weatherdash/internal/models"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	store := New(db)
	if err := store.Migrate(); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return store
}

func TestMigrate_Idempotent(t *testing.T) {
	store := setupTestStore(t)

	if err := store.Migrate(); err != nil {
		t.Fatalf("second Migrate: %v", err)
	}
	version, err := store.MigrationVersion()
	if err != nil {
		t.Fatalf("MigrationVersion: %v", err)
	}
	if version != len(migrations) {
		t.Errorf("version = %d, want %d", version, len(migrations))
	}
}

func TestPreferences_Missing(t *testing.T) {
	store := setupTestStore(t)

	v, ok, err := store.GetPreference("weatherUnit")
	if err != nil {
		t.Fatalf("GetPreference: %v", err)
	}
	if ok || v != "" {
		t.Errorf("GetPreference on empty store = (%q, %v), want (\"\", false)", v, ok)
	}
}

func TestPreferences_Upsert(t *testing.T) {
	store := setupTestStore(t)

	if err := store.SetPreference("lastSearchedCity", "Paris"); err != nil {
		t.Fatalf("SetPreference: %v", err)
	}
	if err := store.SetPreference("lastSearchedCity", "Tokyo"); err != nil {
		t.Fatalf("SetPreference update: %v", err)
	}
	if err := store.SetPreference("weatherUnit", "imperial"); err != nil {
		t.Fatalf("SetPreference unit: %v", err)
	}

	city, ok, err := store.GetPreference("lastSearchedCity")
	if err != nil || !ok {
		t.Fatalf("GetPreference = (%q, %v, %v)", city, ok, err)
	}
	if city != "Tokyo" {
		t.Errorf("city = %q, want Tokyo", city)
	}
	unit, _, _ := store.GetPreference("weatherUnit")
	if unit != "imperial" {
		t.Errorf("unit = %q, want imperial", unit)
	}
}

func TestFetchRuns(t *testing.T) {
	store := setupTestStore(t)

	runs := []models.FetchRun{
		{RequestID: "a", Endpoint: "current", City: "Paris", Unit: models.UnitMetric, Manual: true, Success: true, DurationMS: 12},
		{RequestID: "a", Endpoint: "forecast", City: "Paris", Unit: models.UnitMetric, Success: false, Error: "status 500"},
		{RequestID: "b", Endpoint: "current", City: "Tokyo", Unit: models.UnitImperial, Silent: true, Success: true},
	}
	for _, run := range runs {
		if err := store.RecordFetchRun(run); err != nil {
			t.Fatalf("RecordFetchRun: %v", err)
		}
	}

	got, err := store.RecentFetchRuns(2)
	if err != nil {
		t.Fatalf("RecentFetchRuns: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len(got) = %d, want 2", len(got))
	}
	if got[0].City != "Tokyo" || !got[0].Silent || got[0].Unit != models.UnitImperial {
		t.Errorf("got[0] = %+v, want newest Tokyo run", got[0])
	}
	if got[1].Endpoint != "forecast" || got[1].Success || got[1].Error != "status 500" {
		t.Errorf("got[1] = %+v, want failed forecast run", got[1])
	}
}

package postgres

import (
	"errors"
	"os"
	"testing"

	"github.com/julianstephens/traineeline/internal/models"
	"github.com/julianstephens/traineeline/internal/storage"
)

// Set POSTGRES_TEST_URL to run, e.g.
// POSTGRES_TEST_URL="postgres://traineeline@localhost:5432/traineeline_test?sslmode=disable"
func TestStore_Integration(t *testing.T) {
	connStr := os.Getenv("POSTGRES_TEST_URL")
	if connStr == "" {
		t.Skip("POSTGRES_TEST_URL not set, skipping PostgreSQL integration test")
	}

	store := New(connStr)
	if err := store.Init(); err != nil {
		t.Fatalf("Failed to initialize store: %v", err)
	}
	defer store.Close()

	const date = "2099-12-31"
	t.Cleanup(func() {
		if store.db != nil {
			_, _ = store.db.Exec("DELETE FROM holidays WHERE date = $1", date)
		}
	})

	t.Run("Schema", func(t *testing.T) {
		current, latest, err := store.SchemaVersion()
		if err != nil {
			t.Fatalf("SchemaVersion failed: %v", err)
		}
		if current != latest {
			t.Errorf("expected schema up to date, got current=%d latest=%d", current, latest)
		}
	})

	t.Run("Holidays", func(t *testing.T) {
		if err := store.AddHoliday(models.Holiday{Date: date, Name: "Integration"}); err != nil {
			t.Fatalf("AddHoliday failed: %v", err)
		}

		h, err := store.GetHoliday(date)
		if err != nil {
			t.Fatalf("GetHoliday failed: %v", err)
		}
		if h.Name != "Integration" {
			t.Errorf("expected name Integration, got %q", h.Name)
		}

		inRange, err := store.GetHolidays(date, date)
		if err != nil {
			t.Fatalf("GetHolidays failed: %v", err)
		}
		if len(inRange) != 1 {
			t.Errorf("expected 1 holiday in range, got %d", len(inRange))
		}

		if err := store.DeleteHoliday(date); err != nil {
			t.Fatalf("DeleteHoliday failed: %v", err)
		}
		if _, err := store.GetHoliday(date); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound after delete, got %v", err)
		}

		if err := store.RestoreHoliday(date); err != nil {
			t.Fatalf("RestoreHoliday failed: %v", err)
		}
		if _, err := store.GetHoliday(date); err != nil {
			t.Errorf("expected holiday after restore, got %v", err)
		}
	})
}

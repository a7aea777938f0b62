// Package db tests for the local note slot.
package db

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/yilun-hsu/smartnotes/internal/models"
)

func openTestDB(t *testing.T) (*DB, string) {
	t.Helper()
	tmpDir, err := os.MkdirTemp("", "smartnotes_db_test_*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tmpDir) })

	database, err := Open(tmpDir)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database, tmpDir
}

// TestOpen verifies database opening with proper configuration.
func TestOpen(t *testing.T) {
	database, tmpDir := openTestDB(t)

	if _, err := os.Stat(filepath.Join(tmpDir, "smartnotes.db")); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}

	var walMode string
	if err := database.QueryRow("PRAGMA journal_mode").Scan(&walMode); err != nil {
		t.Errorf("Failed to check WAL mode: %v", err)
	}
	if walMode != "wal" {
		t.Errorf("WAL mode not enabled, got: %s", walMode)
	}

	var fkEnabled int
	if err := database.QueryRow("PRAGMA foreign_keys").Scan(&fkEnabled); err != nil {
		t.Errorf("Failed to check foreign keys: %v", err)
	}
	if fkEnabled != 1 {
		t.Errorf("Foreign keys not enabled, got: %d", fkEnabled)
	}
}

// TestOpen_invalidDataDir verifies error when data directory cannot be created.
func TestOpen_invalidDataDir(t *testing.T) {
	_, err := Open("/dev/null/invalid_path/that/cannot/be/created")
	if err == nil {
		t.Error("Open() with invalid path should return error")
	}
}

// TestSaveLoadNotes verifies the slot round-trip.
func TestSaveLoadNotes(t *testing.T) {
	database, _ := openTestDB(t)

	notes := []models.Note{
		{ID: "n1", Text: "buy milk", Tag: "personal", UpdatedAt: 100},
		{ID: "n2", Text: "ship release", Tag: "work", Pinned: true, UpdatedAt: 50},
	}
	if err := database.SaveNotes("local", notes); err != nil {
		t.Fatalf("SaveNotes() failed: %v", err)
	}

	loaded, err := database.LoadNotes("local")
	if err != nil {
		t.Fatalf("LoadNotes() failed: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("LoadNotes() = %d notes, want 2", len(loaded))
	}
	if loaded[0] != notes[0] || loaded[1] != notes[1] {
		t.Errorf("loaded notes differ: %+v", loaded)
	}
}

// TestSaveNotes_wholesale verifies each save replaces the whole slot.
func TestSaveNotes_wholesale(t *testing.T) {
	database, _ := openTestDB(t)

	if err := database.SaveNotes("local", []models.Note{{ID: "n1", Text: "a"}}); err != nil {
		t.Fatalf("first SaveNotes() failed: %v", err)
	}
	if err := database.SaveNotes("local", []models.Note{{ID: "n2", Text: "b"}}); err != nil {
		t.Fatalf("second SaveNotes() failed: %v", err)
	}

	loaded, err := database.LoadNotes("local")
	if err != nil {
		t.Fatalf("LoadNotes() failed: %v", err)
	}
	if len(loaded) != 1 || loaded[0].ID != "n2" {
		t.Errorf("slot was not replaced wholesale: %+v", loaded)
	}
}

// TestLoadNotes_missingSlot verifies a missing slot is an empty collection.
func TestLoadNotes_missingSlot(t *testing.T) {
	database, _ := openTestDB(t)

	loaded, err := database.LoadNotes("nobody")
	if err != nil {
		t.Fatalf("LoadNotes() on missing slot failed: %v", err)
	}
	if len(loaded) != 0 {
		t.Errorf("LoadNotes() = %v, want empty", loaded)
	}
}

// TestSlots_perOwner verifies slots are scoped by owner.
func TestSlots_perOwner(t *testing.T) {
	database, _ := openTestDB(t)

	if err := database.SaveNotes("alice", []models.Note{{ID: "a1", Text: "alice note"}}); err != nil {
		t.Fatalf("SaveNotes(alice) failed: %v", err)
	}
	if err := database.SaveNotes("bob", []models.Note{{ID: "b1", Text: "bob note"}}); err != nil {
		t.Fatalf("SaveNotes(bob) failed: %v", err)
	}

	alice, err := database.LoadNotes("alice")
	if err != nil {
		t.Fatalf("LoadNotes(alice) failed: %v", err)
	}
	if len(alice) != 1 || alice[0].ID != "a1" {
		t.Errorf("alice slot = %+v", alice)
	}
}

// TestNotes_persistAcrossReopen verifies durability across close/reopen.
func TestNotes_persistAcrossReopen(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "smartnotes_db_test_*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	db1, err := Open(tmpDir)
	if err != nil {
		t.Fatalf("first Open() failed: %v", err)
	}
	if err := db1.SaveNotes("local", []models.Note{{ID: "n1", Text: "persisted"}}); err != nil {
		t.Fatalf("SaveNotes() failed: %v", err)
	}
	if err := db1.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}

	db2, err := Open(tmpDir)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer db2.Close()

	loaded, err := db2.LoadNotes("local")
	if err != nil {
		t.Fatalf("LoadNotes() failed: %v", err)
	}
	if len(loaded) != 1 || loaded[0].Text != "persisted" {
		t.Errorf("notes did not survive reopen: %+v", loaded)
	}
}

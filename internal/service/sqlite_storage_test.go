package service

import (
	"errors"
	"testing"

	"github.com/adventcalendar/internal/db"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupStorageTestDB(t *testing.T) func() {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open("file:storage-test?mode=memory&cache=shared"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := gdb.AutoMigrate(&db.StorageItem{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	db.DB = gdb

	return func() {
		gdb.Exec("DELETE FROM storage_items")
		sqlDB, err := gdb.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
}

func TestSQLiteStorageSetGetRemove(t *testing.T) {
	cleanup := setupStorageTestDB(t)
	defer cleanup()

	storage := NewSQLiteStorage(db.DB, "visitor-a")

	if _, ok, err := storage.GetItem(OpenedDoorsStorageKey); err != nil || ok {
		t.Fatalf("expected missing key, got ok=%v err=%v", ok, err)
	}

	if err := storage.SetItem(OpenedDoorsStorageKey, "[1]"); err != nil {
		t.Fatalf("SetItem returned error: %v", err)
	}
	if err := storage.SetItem(OpenedDoorsStorageKey, "[1,2]"); err != nil {
		t.Fatalf("SetItem update returned error: %v", err)
	}

	value, ok, err := storage.GetItem(OpenedDoorsStorageKey)
	if err != nil || !ok {
		t.Fatalf("GetItem failed: ok=%v err=%v", ok, err)
	}
	if value != "[1,2]" {
		t.Fatalf("expected upserted value, got %q", value)
	}

	var count int64
	db.DB.Model(&db.StorageItem{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected a single row after upsert, got %d", count)
	}

	if err := storage.RemoveItem(OpenedDoorsStorageKey); err != nil {
		t.Fatalf("RemoveItem returned error: %v", err)
	}
	if _, ok, _ := storage.GetItem(OpenedDoorsStorageKey); ok {
		t.Fatal("expected key to be removed")
	}
	if err := storage.SetItem(OpenedDoorsStorageKey, "[3]"); err != nil {
		t.Fatalf("SetItem after remove returned error: %v", err)
	}
}

func TestSQLiteStorageIsolatesVisitors(t *testing.T) {
	cleanup := setupStorageTestDB(t)
	defer cleanup()

	alice := NewOpenedDoorStore(NewSQLiteStorage(db.DB, "alice"))
	alice.Toggle(5)

	bob := NewOpenedDoorStore(NewSQLiteStorage(db.DB, "bob"))
	if bob.IsOpened(5) {
		t.Fatal("expected bob's record to be independent from alice's")
	}

	again := NewOpenedDoorStore(NewSQLiteStorage(db.DB, "alice"))
	if !again.IsOpened(5) {
		t.Fatal("expected alice's record to persist")
	}
}

func TestSQLiteStorageRequiresNamespace(t *testing.T) {
	cleanup := setupStorageTestDB(t)
	defer cleanup()

	storage := NewSQLiteStorage(db.DB, "  ")
	if err := storage.SetItem("k", "v"); !errors.Is(err, ErrStorageNamespaceMissing) {
		t.Fatalf("expected ErrStorageNamespaceMissing, got %v", err)
	}
}

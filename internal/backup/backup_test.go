package backup

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mahavak/rhonda/internal/constants"
	"github.com/mahavak/rhonda/internal/storage"
)

func setupJSONStore(t *testing.T) (*Manager, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rhonda.json")
	store := storage.New(storage.NewFileBackend(path))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	return NewManager(path), path
}

func TestCreateBackup(t *testing.T) {
	t.Run("copies a valid store", func(t *testing.T) {
		manager, path := setupJSONStore(t)

		backupPath, err := manager.CreateBackup()
		if err != nil {
			t.Fatalf("CreateBackup() returned unexpected error: %v", err)
		}

		original, _ := os.ReadFile(path)
		copied, err := os.ReadFile(backupPath)
		if err != nil {
			t.Fatalf("failed to read backup: %v", err)
		}
		if string(copied) != string(original) {
			t.Error("backup content differs from the store")
		}
		if !strings.HasPrefix(filepath.Base(backupPath), constants.BackupFilePrefix) {
			t.Errorf("backup name %s is missing the expected prefix", filepath.Base(backupPath))
		}
	})

	t.Run("refuses a missing store", func(t *testing.T) {
		manager := NewManager(filepath.Join(t.TempDir(), "missing.json"))
		if _, err := manager.CreateBackup(); err == nil {
			t.Error("CreateBackup() succeeded without a store file")
		}
	})

	t.Run("refuses a corrupt store", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "rhonda.json")
		if err := os.WriteFile(path, []byte("{broken"), 0600); err != nil {
			t.Fatalf("failed to write corrupt store: %v", err)
		}

		if _, err := NewManager(path).CreateBackup(); err == nil {
			t.Error("CreateBackup() backed up a corrupt store")
		}
	})

	t.Run("collisions get distinct names", func(t *testing.T) {
		manager, _ := setupJSONStore(t)

		first, err := manager.CreateBackup()
		if err != nil {
			t.Fatalf("first CreateBackup() returned unexpected error: %v", err)
		}
		second, err := manager.CreateBackup()
		if err != nil {
			t.Fatalf("second CreateBackup() returned unexpected error: %v", err)
		}
		if first == second {
			t.Error("same-minute backups collided on one filename")
		}
	})
}

func TestListBackups(t *testing.T) {
	t.Run("empty when no backups exist", func(t *testing.T) {
		manager, _ := setupJSONStore(t)
		backups, err := manager.ListBackups()
		if err != nil {
			t.Fatalf("ListBackups() returned unexpected error: %v", err)
		}
		if len(backups) != 0 {
			t.Errorf("got %d backups, want 0", len(backups))
		}
	})

	t.Run("ignores foreign files", func(t *testing.T) {
		manager, _ := setupJSONStore(t)
		if _, err := manager.CreateBackup(); err != nil {
			t.Fatalf("CreateBackup() returned unexpected error: %v", err)
		}
		foreign := filepath.Join(manager.GetBackupDir(), "notes.txt")
		if err := os.WriteFile(foreign, []byte("x"), 0600); err != nil {
			t.Fatalf("failed to write foreign file: %v", err)
		}

		backups, err := manager.ListBackups()
		if err != nil {
			t.Fatalf("ListBackups() returned unexpected error: %v", err)
		}
		if len(backups) != 1 {
			t.Errorf("got %d backups, want 1", len(backups))
		}
	})
}

func TestRotateBackups(t *testing.T) {
	manager, _ := setupJSONStore(t)

	// Plant more dated backups than the retention limit.
	if err := os.MkdirAll(manager.GetBackupDir(), 0700); err != nil {
		t.Fatalf("failed to create backup dir: %v", err)
	}
	for day := 1; day <= constants.MaxBackups+3; day++ {
		name := fmt.Sprintf("%s202608%02d-0900%s", constants.BackupFilePrefix, day, constants.BackupFileSuffix)
		path := filepath.Join(manager.GetBackupDir(), name)
		if err := os.WriteFile(path, []byte(`{"version":2}`), 0600); err != nil {
			t.Fatalf("failed to plant backup: %v", err)
		}
	}

	// Creating one more triggers rotation down to the limit.
	if _, err := manager.CreateBackup(); err != nil {
		t.Fatalf("CreateBackup() returned unexpected error: %v", err)
	}

	backups, err := manager.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups() returned unexpected error: %v", err)
	}
	if len(backups) != constants.MaxBackups {
		t.Fatalf("got %d backups after rotation, want %d", len(backups), constants.MaxBackups)
	}
	// The oldest planted backups are the ones removed.
	for _, b := range backups {
		if strings.Contains(b.Path, "20260801") || strings.Contains(b.Path, "20260802") {
			t.Errorf("old backup %s survived rotation", b.Path)
		}
	}
}

func TestRestoreBackup(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		manager, path := setupJSONStore(t)

		backupPath, err := manager.CreateBackup()
		if err != nil {
			t.Fatalf("CreateBackup() returned unexpected error: %v", err)
		}
		original, _ := os.ReadFile(path)

		// Damage the live store, then restore.
		store := storage.New(storage.NewFileBackend(path))
		if err := store.Load(); err != nil {
			t.Fatalf("Load() returned unexpected error: %v", err)
		}
		if err := store.Reset(); err != nil {
			t.Fatalf("Reset() returned unexpected error: %v", err)
		}

		if err := manager.RestoreBackup(backupPath); err != nil {
			t.Fatalf("RestoreBackup() returned unexpected error: %v", err)
		}

		restored, _ := os.ReadFile(path)
		if string(restored) != string(original) {
			t.Error("restored store differs from the backup")
		}
	})

	t.Run("rejects a corrupt backup", func(t *testing.T) {
		manager, path := setupJSONStore(t)
		before, _ := os.ReadFile(path)

		bad := filepath.Join(t.TempDir(), "bad.bak")
		if err := os.WriteFile(bad, []byte("{nope"), 0600); err != nil {
			t.Fatalf("failed to write corrupt backup: %v", err)
		}

		if err := manager.RestoreBackup(bad); err == nil {
			t.Fatal("RestoreBackup() accepted a corrupt backup")
		}
		after, _ := os.ReadFile(path)
		if string(after) != string(before) {
			t.Error("failed restore modified the live store")
		}
	})

	t.Run("rejects a missing backup", func(t *testing.T) {
		manager, _ := setupJSONStore(t)
		if err := manager.RestoreBackup(filepath.Join(t.TempDir(), "gone.bak")); err == nil {
			t.Error("RestoreBackup() accepted a missing backup path")
		}
	})

	t.Run("backs up the current store first", func(t *testing.T) {
		manager, _ := setupJSONStore(t)
		backupPath, err := manager.CreateBackup()
		if err != nil {
			t.Fatalf("CreateBackup() returned unexpected error: %v", err)
		}

		if err := manager.RestoreBackup(backupPath); err != nil {
			t.Fatalf("RestoreBackup() returned unexpected error: %v", err)
		}

		backups, _ := manager.ListBackups()
		if len(backups) < 2 {
			t.Errorf("got %d backups after restore, want the pre-restore safety copy too", len(backups))
		}
	})
}

func TestSQLiteBackup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rhonda.db")
	backend := storage.NewSQLiteBackend(path)
	if err := backend.Init(); err != nil {
		t.Fatalf("failed to init sqlite store: %v", err)
	}
	if err := backend.Write([]byte(`{"version":2}`)); err != nil {
		t.Fatalf("failed to seed sqlite store: %v", err)
	}
	backend.Close()

	manager := NewManager(path)
	backupPath, err := manager.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup() returned unexpected error: %v", err)
	}

	// The backup must itself be a readable store holding the blob.
	restored := storage.NewSQLiteBackend(backupPath)
	if err := restored.Init(); err != nil {
		t.Fatalf("failed to open backup database: %v", err)
	}
	defer restored.Close()
	data, err := restored.Read()
	if err != nil {
		t.Fatalf("failed to read backup database: %v", err)
	}
	if string(data) != `{"version":2}` {
		t.Errorf("backup blob = %q, want the seeded document", data)
	}
}

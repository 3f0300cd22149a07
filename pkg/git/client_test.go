package git

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestClient_Lock(t *testing.T) {
	tmpDir := t.TempDir()
	client := NewClient(tmpDir, "", nil)

	unlock, err := client.Lock(time.Second)
	if err != nil {
		t.Fatalf("Failed to acquire lock: %v", err)
	}

	lockPath := filepath.Join(tmpDir, DefaultLockName)
	if _, err := os.Stat(lockPath); os.IsNotExist(err) {
		t.Error("Lock file not created")
	}

	// While held, a second attempt must time out.
	if _, err := client.Lock(30 * time.Millisecond); err == nil {
		t.Error("expected contention error while lock is held")
	}

	unlock()

	if _, err := os.Stat(lockPath); !os.IsNotExist(err) {
		t.Error("Lock file not removed after unlock")
	}
}

func TestClient_InitAndCommit(t *testing.T) {
	if !IsInstalled() {
		t.Skip("git not installed")
	}
	tmpDir := t.TempDir()
	client := NewClient(tmpDir, "", nil)

	if err := client.Init(); err != nil {
		t.Fatalf("Failed to init: %v", err)
	}
	if !client.IsRepo() {
		t.Fatal("expected a git work tree after init")
	}

	if err := os.WriteFile(filepath.Join(tmpDir, "1.md"), []byte("hi"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := client.Add("1.md"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := client.Commit("update record 1"); err != nil {
		t.Fatalf("commit: %v", err)
	}

	subjects, err := client.Log(1)
	if err != nil {
		t.Fatalf("log: %v", err)
	}
	if len(subjects) != 1 || subjects[0] != "update record 1" {
		t.Errorf("unexpected log: %v", subjects)
	}
}

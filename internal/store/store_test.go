package store

import (
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func openTemp(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mastery.db")
	s, err := Open(path, zap.NewNop())
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s, path
}

func reopen(t *testing.T, path string) *Store {
	t.Helper()
	s, err := Open(path, zap.NewNop())
	if err != nil {
		t.Fatalf("Failed to reopen store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenInMemory(t *testing.T) {
	s, err := Open(":memory:", nil)
	if err != nil {
		t.Fatalf("Failed to open in-memory store: %v", err)
	}
	defer s.Close()

	// Schema init is idempotent.
	if err := s.InitSchema(); err != nil {
		t.Errorf("Second InitSchema failed: %v", err)
	}
}

func TestLoadAllFirstRun(t *testing.T) {
	s, _ := openTemp(t)
	_, _, ok, err := s.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if ok {
		t.Error("Fresh database file should report no prior data")
	}
}

func TestInsertAndReload(t *testing.T) {
	s, path := openTemp(t)

	if err := s.InsertUser("u1", "alex"); err != nil {
		t.Fatalf("InsertUser failed: %v", err)
	}
	row := ContainerRow{ID: "c1", XPLevel: 42.5, Level: "Novice", Name: "piano", UserUUID: "u1"}
	if err := s.InsertContainer(row); err != nil {
		t.Fatalf("InsertContainer failed: %v", err)
	}
	s.Close()

	s2 := reopen(t, path)
	users, containers, ok, err := s2.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if !ok {
		t.Fatal("Existing database file should report prior data")
	}
	if len(users) != 1 || users[0].ID != "u1" || users[0].Username != "alex" {
		t.Errorf("Unexpected users: %+v", users)
	}
	if len(containers) != 1 || containers[0] != row {
		t.Errorf("Unexpected containers: %+v", containers)
	}
}

func TestInsertUserFirstWriteWins(t *testing.T) {
	s, path := openTemp(t)

	if err := s.InsertUser("u1", "alex"); err != nil {
		t.Fatalf("InsertUser failed: %v", err)
	}
	// Same id again: silently ignored, first row kept.
	if err := s.InsertUser("u1", "sam"); err != nil {
		t.Fatalf("Duplicate InsertUser should be a no-op, got: %v", err)
	}
	s.Close()

	s2 := reopen(t, path)
	users, _, _, err := s2.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if len(users) != 1 || users[0].Username != "alex" {
		t.Errorf("First write should win, got: %+v", users)
	}
}

func TestInsertContainerDuplicateNameIgnored(t *testing.T) {
	s, path := openTemp(t)

	a := ContainerRow{ID: "c1", XPLevel: 1, Level: "New", Name: "piano", UserUUID: "u1"}
	b := ContainerRow{ID: "c2", XPLevel: 9, Level: "New", Name: "piano", UserUUID: "u1"}
	if err := s.InsertContainer(a); err != nil {
		t.Fatalf("InsertContainer failed: %v", err)
	}
	if err := s.InsertContainer(b); err != nil {
		t.Fatalf("Duplicate-name insert should be silently dropped, got: %v", err)
	}
	s.Close()

	_, containers, _, err := reopen(t, path).LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if len(containers) != 1 || containers[0].ID != "c1" {
		t.Errorf("Expected only the first row to survive, got: %+v", containers)
	}
}

func TestUpdateContainer(t *testing.T) {
	s, path := openTemp(t)
	s.InsertContainer(ContainerRow{ID: "c1", XPLevel: 0, Level: "New", Name: "piano", UserUUID: "u1"})

	if err := s.UpdateContainer("c1", 150, "Advanced Beginner"); err != nil {
		t.Fatalf("UpdateContainer failed: %v", err)
	}
	// Absent id: no-op, no error.
	if err := s.UpdateContainer("ghost", 5, "New"); err != nil {
		t.Errorf("Update of absent id should be a no-op, got: %v", err)
	}
	s.Close()

	_, containers, _, err := reopen(t, path).LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if containers[0].XPLevel != 150 || containers[0].Level != "Advanced Beginner" {
		t.Errorf("Update not persisted: %+v", containers[0])
	}
}

func TestUpdateContainerRollback(t *testing.T) {
	s, path := openTemp(t)
	s.InsertContainer(ContainerRow{ID: "c1", XPLevel: 100, Level: "Advanced Beginner", Name: "piano", UserUUID: "u1"})

	// Negative hours violate the CHECK constraint; the transaction must roll
	// back without touching the row.
	err := s.UpdateContainer("c1", -1, "New")
	if err == nil {
		t.Fatal("Expected constraint violation")
	}
	if !strings.Contains(err.Error(), "failed to update container") {
		t.Errorf("Unexpected error: %v", err)
	}
	s.Close()

	_, containers, _, lerr := reopen(t, path).LoadAll()
	if lerr != nil {
		t.Fatalf("LoadAll failed: %v", lerr)
	}
	if containers[0].XPLevel != 100 || containers[0].Level != "Advanced Beginner" {
		t.Errorf("Row changed despite rollback: %+v", containers[0])
	}
}

func TestUpdateUserAndRename(t *testing.T) {
	s, path := openTemp(t)
	s.InsertUser("u1", "alex")
	s.InsertContainer(ContainerRow{ID: "c1", XPLevel: 0, Level: "New", Name: "piano", UserUUID: "u1"})

	if err := s.UpdateUser("u1", "sam"); err != nil {
		t.Fatalf("UpdateUser failed: %v", err)
	}
	if err := s.RenameContainer("c1", "keys"); err != nil {
		t.Fatalf("RenameContainer failed: %v", err)
	}
	s.Close()

	users, containers, _, err := reopen(t, path).LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if users[0].Username != "sam" {
		t.Errorf("Username not updated: %+v", users[0])
	}
	if containers[0].Name != "keys" {
		t.Errorf("Container name not updated: %+v", containers[0])
	}
}

func TestDeleteContainer(t *testing.T) {
	s, path := openTemp(t)
	s.InsertContainer(ContainerRow{ID: "c1", XPLevel: 0, Level: "New", Name: "piano", UserUUID: "u1"})

	if err := s.DeleteContainer("c1"); err != nil {
		t.Fatalf("DeleteContainer failed: %v", err)
	}
	// Absent id: no-op.
	if err := s.DeleteContainer("c1"); err != nil {
		t.Errorf("Delete of absent id should be a no-op, got: %v", err)
	}
	s.Close()

	_, containers, _, err := reopen(t, path).LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if len(containers) != 0 {
		t.Errorf("Container not deleted: %+v", containers)
	}
}

func TestWipeIdempotent(t *testing.T) {
	s, path := openTemp(t)
	s.InsertUser("u1", "alex")

	if err := s.Wipe(); err != nil {
		t.Fatalf("Wipe failed: %v", err)
	}
	if err := s.Wipe(); err != nil {
		t.Errorf("Second Wipe should be a no-op, got: %v", err)
	}

	// A fresh open on the same path is a first run again.
	s2 := reopen(t, path)
	_, _, ok, err := s2.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if ok {
		t.Error("Wiped database should report no prior data")
	}
}

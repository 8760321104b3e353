package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// forceState mirrors the shape of session.json.
type forceState struct {
	Forced bool `json:"forced"`
}

func TestStateFiles_UnderStateDir(t *testing.T) {
	stateDir := filepath.Join(t.TempDir(), "sandbox", "state")
	t.Setenv(EnvStateDir, stateDir)

	for _, name := range []string{"session.json", "history.json"} {
		path, err := File(name)
		if err != nil {
			t.Fatalf("File(%q) error: %v", name, err)
		}
		if path != filepath.Join(stateDir, name) {
			t.Errorf("File(%q) = %q, want it under %q", name, path, stateDir)
		}
	}

	info, err := os.Stat(stateDir)
	if err != nil || !info.IsDir() {
		t.Fatalf("state dir not created: %v", err)
	}
}

func TestDir_HomeFallback(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(EnvStateDir, "")

	dir, err := Dir()
	if err != nil {
		t.Fatalf("Dir() error: %v", err)
	}
	if dir != filepath.Join(home, ".treehop") {
		t.Errorf("Dir() = %q, want ~/.treehop", dir)
	}
}

func TestSaveJSON_ForceFlagRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "state", "session.json")

	for _, forced := range []bool{true, false} {
		if err := SaveJSON(path, forceState{Forced: forced}); err != nil {
			t.Fatalf("SaveJSON(forced=%v) error: %v", forced, err)
		}
		var got forceState
		if err := LoadJSON(path, &got); err != nil {
			t.Fatalf("LoadJSON error: %v", err)
		}
		if got.Forced != forced {
			t.Errorf("forced = %v after saving %v", got.Forced, forced)
		}
	}
}

func TestSaveJSON_PrivateAndNoTempLeft(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "session.json")
	if err := SaveJSON(path, forceState{Forced: true}); err != nil {
		t.Fatalf("SaveJSON error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("state file missing: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("state file mode = %o, want 600", perm)
	}
	if _, err := os.Stat(path + ".tmp"); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("temp file left behind: %v", err)
	}
}

func TestSaveJSON_FailureKeepsPreviousState(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "session.json")
	if err := SaveJSON(path, forceState{Forced: true}); err != nil {
		t.Fatalf("SaveJSON error: %v", err)
	}

	// Channels cannot be encoded, so nothing may be written.
	if err := SaveJSON(path, make(chan int)); err == nil {
		t.Fatal("SaveJSON(chan) error = nil, want marshal error")
	}

	var got forceState
	if err := LoadJSON(path, &got); err != nil {
		t.Fatalf("LoadJSON error: %v", err)
	}
	if !got.Forced {
		t.Error("previous state lost after failed save")
	}
}

func TestLoadJSON_MissingAndCorrupt(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	var state forceState
	if err := LoadJSON(filepath.Join(dir, "none.json"), &state); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("LoadJSON(missing) error = %v, want os.ErrNotExist", err)
	}

	corrupt := filepath.Join(dir, "session.json")
	if err := os.WriteFile(corrupt, []byte(`{"forced":`), 0o600); err != nil {
		t.Fatal(err)
	}
	err := LoadJSON(corrupt, &state)
	if err == nil || errors.Is(err, os.ErrNotExist) {
		t.Errorf("LoadJSON(corrupt) error = %v, want a decode error", err)
	}
}

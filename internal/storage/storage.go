// Package storage provides atomic JSON files for treehop's state in ~/.treehop/.
//
// State is what the CLI carries between invocations: the session force flag
// (session.json) and the switch history (history.json).
package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// EnvStateDir overrides the state directory, mostly for tests and sandboxes.
const EnvStateDir = "TREEHOP_STATE_DIR"

// Dir returns the state directory (~/.treehop/ unless TREEHOP_STATE_DIR is
// set), creating it if needed.
func Dir() (string, error) {
	dir := os.Getenv(EnvStateDir)
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(home, ".treehop")
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	return dir, nil
}

// File returns the path of name inside the state directory.
func File(name string) (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

// SaveJSON atomically writes data as JSON to the specified path.
// It ensures the parent directory exists, writes to a temp file,
// then renames to the final path.
func SaveJSON(path string, data any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	tempPath := path + ".tmp"

	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}

	if err := os.WriteFile(tempPath, jsonData, 0o600); err != nil {
		return err
	}

	return os.Rename(tempPath, path)
}

// LoadJSON reads JSON from the specified path into dest.
// Returns os.ErrNotExist if file doesn't exist (caller should handle).
func LoadJSON(path string, dest any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	return json.Unmarshal(data, dest)
}

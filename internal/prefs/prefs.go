// Package prefs persists the small mutable UI state that should survive
// restarts but doesn't belong in the main database: which motion transforms
// are enabled and whether sticky cards join the animation.
package prefs

import (
	"encoding/json"
	"os"
	"path/filepath"
)

const prefsFile = "prefs.json"

// State is the persisted preference set. A nil or empty Transforms map means
// every registered transform is enabled — the engine treats absence as "all".
type State struct {
	Transforms    map[string]bool `json:"transforms,omitempty"`
	AnimateSticky bool            `json:"animate_sticky"`
}

func prefsPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	dir = filepath.Join(dir, "cardwall")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return filepath.Join(dir, prefsFile), nil
}

// Save writes the state atomically (tmp + rename).
func Save(s State) error {
	path, err := prefsPath()
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// Load reads the state; a missing file yields the zero State without error.
func Load() (State, error) {
	path, err := prefsPath()
	if err != nil {
		return State{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return State{}, nil
		}
		return State{}, err
	}
	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return State{}, err
	}
	return s, nil
}

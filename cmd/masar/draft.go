package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/masar-app/masar/internal/storage"
	"github.com/masar-app/masar/internal/types"
)

// stateDir returns the local store directory, honoring STATE_DIR.
func stateDir() string {
	if dir := os.Getenv("STATE_DIR"); dir != "" {
		return dir
	}
	return "./data"
}

// loadCV reads a CV record from a JSON file, or from the local draft store
// when path is empty.
func loadCV(path string) (*types.CVRecord, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read CV file: %w", err)
		}
		var cv types.CVRecord
		if err := json.Unmarshal(data, &cv); err != nil {
			return nil, fmt.Errorf("failed to parse CV file: %w", err)
		}
		return &cv, nil
	}

	store, err := storage.NewStore(stateDir())
	if err != nil {
		return nil, err
	}
	var cv types.CVRecord
	found, err := store.Load(storage.KeyCV, &cv)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("no saved draft in %s; pass --file or run 'masar generate' first", stateDir())
	}
	return &cv, nil
}

// saveDraft writes a CV record to the local draft store.
func saveDraft(cv *types.CVRecord) error {
	store, err := storage.NewStore(stateDir())
	if err != nil {
		return err
	}
	return store.Save(storage.KeyCV, cv)
}

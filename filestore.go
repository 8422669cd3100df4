package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"safehours/duty"
)

// FileStore keeps a snapshot as a JSON array in a single file.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the snapshot. A missing file is an empty logbook.
func (f *FileStore) Load() ([]duty.Activity, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", f.path, err)
	}

	var records []duty.Activity
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", f.path, err)
	}
	if err := duty.CheckCollection(records); err != nil {
		return nil, fmt.Errorf("%s: %w", f.path, err)
	}
	duty.Sort(records)
	return records, nil
}

// Save writes the snapshot through a temporary file so a failed write never
// leaves a truncated logbook behind.
func (f *FileStore) Save(records []duty.Activity) error {
	if records == nil {
		records = []duty.Activity{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode activities: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(f.path), os.ModePerm); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".safehours-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), f.path)
}

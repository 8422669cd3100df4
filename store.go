package main

import "safehours/duty"

// ActivityStore persists a whole activity snapshot. Load returns records
// newest first; Save replaces everything previously stored.
type ActivityStore interface {
	Load() ([]duty.Activity, error)
	Save([]duty.Activity) error
}

var (
	_ ActivityStore = (*Repo)(nil)
	_ ActivityStore = (*FileStore)(nil)
)

package main

import (
	"bytes"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/fatih/color"
	"github.com/stretchr/testify/require"

	"safehours/duty"
)

// createTestRepo opens a repo in a temp dir with an active "default" logbook.
func createTestRepo(t *testing.T) *Repo {
	t.Helper()

	repo, err := NewRepo(filepath.Join(t.TempDir(), "test.db"), 3, nil)
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	require.NoError(t, repo.EnsureActiveLogbook("default"))
	return repo
}

func newTestApp(t *testing.T) (*App, *bytes.Buffer) {
	t.Helper()
	color.NoColor = true

	repo := createTestRepo(t)
	out := &bytes.Buffer{}
	a := &App{
		repo:   repo,
		store:  repo,
		logger: slog.New(slog.DiscardHandler),
		out:    out,
		in:     strings.NewReader(""),
		now: func() time.Time {
			return time.Date(2025, time.March, 10, 9, 0, 0, 0, time.Local)
		},
		pickKind: func() (string, error) {
			return "", errors.New("no kind picked")
		},
	}
	return a, out
}

func mustDate(t *testing.T, s string) civil.Date {
	t.Helper()
	d, err := civil.ParseDate(s)
	require.NoError(t, err)
	return d
}

// seed adds candidates through the core so every record is valid.
func seed(t *testing.T, cands ...duty.Candidate) []duty.Activity {
	t.Helper()
	var records []duty.Activity
	for i, c := range cands {
		next, _, err := duty.Add(records, c, "seed-"+string(rune('a'+i)))
		require.NoError(t, err)
		records = next
	}
	return records
}

package main

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"cloud.google.com/go/civil"
	"github.com/codeGROOVE-dev/retry"
	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"

	"safehours/duty"
)

const (
	// migration queries
	createLogbooksTableSQL = `
  CREATE TABLE IF NOT EXISTS logbooks (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL UNIQUE,
  active INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME DEFAULT CURRENT_TIMESTAMP
  )`

	createActivitiesTableSQL = `
  CREATE TABLE IF NOT EXISTS activities (
  id TEXT NOT NULL,
  logbook_id INTEGER NOT NULL,
  activity_date TEXT NOT NULL,
  start_time TEXT NOT NULL,
  end_time TEXT NOT NULL,
  duration_hours REAL NOT NULL,
  kind TEXT NOT NULL,
  pre_post_hours REAL NOT NULL DEFAULT 0,
  PRIMARY KEY (logbook_id, id),
  FOREIGN KEY (logbook_id) REFERENCES logbooks(id)
  )`

	createActivitiesIndexSQL = `
  CREATE INDEX IF NOT EXISTS idx_activities_logbook_date ON activities(logbook_id, activity_date)`

	// logbook queries
	createLogbookSQL         = `INSERT INTO logbooks (name) VALUES (?)`
	getAllLogbooksSQL        = `SELECT logbooks.id, logbooks.name, logbooks.active, COUNT(activities.id) FROM logbooks LEFT JOIN activities ON activities.logbook_id = logbooks.id GROUP BY logbooks.id ORDER BY logbooks.name`
	getActiveLogbookSQL      = `SELECT id, name FROM logbooks WHERE active = 1`
	checkLogbookExistsSQL    = `SELECT EXISTS(SELECT 1 FROM logbooks WHERE name = ?)`
	activateLogbookByNameSQL = `UPDATE logbooks SET active = 1 WHERE name = ?`
	deactivateAllLogbooksSQL = `UPDATE logbooks SET active = 0`

	// activity queries
	getActivitiesSQL = `SELECT id, activity_date, start_time, end_time, duration_hours, kind, pre_post_hours
  FROM activities WHERE logbook_id = ? ORDER BY activity_date DESC, start_time DESC`
	deleteActivitiesSQL = `DELETE FROM activities WHERE logbook_id = ?`
	insertActivitySQL   = `INSERT INTO activities (id, logbook_id, activity_date, start_time, end_time, duration_hours, kind, pre_post_hours)
  VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
)

// Repo is the sqlite ActivityStore. Load and Save operate on the active
// logbook.
type Repo struct {
	db      *sql.DB
	retries uint
	logger  *slog.Logger
}

func NewRepo(dbPath string, retries uint, logger *slog.Logger) (*Repo, error) {
	// ensure directory exists
	err := os.MkdirAll(filepath.Dir(dbPath), os.ModePerm)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	// open database
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// verify connection with database
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if retries == 0 {
		retries = 1
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	repo := &Repo{db: db, retries: retries, logger: logger}

	// run migrations
	if err := repo.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return repo, nil
}

func (r *Repo) Close() error {
	return r.db.Close()
}

// runs migrations on initial start
func (r *Repo) runMigrations() error {
	tables := []string{
		createLogbooksTableSQL,
		createActivitiesTableSQL,
		createActivitiesIndexSQL,
	}

	for _, tableSQL := range tables {
		if _, err := r.db.Exec(tableSQL); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	return nil
}

// +---------------------+
// |                     |
// |   Logbook Queries   |
// |                     |
// +---------------------+

// checks if a logbook exists by name
func (r *Repo) CheckLogbookExists(name string) bool {
	var exists bool
	err := r.db.QueryRow(checkLogbookExistsSQL, name).Scan(&exists)
	if err != nil {
		r.logger.Error("error checking if logbook exists", "name", name, "error", err)
		return false
	}
	return exists
}

// creates new logbook
func (r *Repo) CreateLogbook(name string) error {
	_, err := r.db.Exec(createLogbookSQL, name)
	return err
}

// get all logbooks with their activity counts
func (r *Repo) GetAllLogbooks() ([]Logbook, error) {
	rows, err := r.db.Query(getAllLogbooksSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logbooks []Logbook
	for rows.Next() {
		var lb Logbook
		if err := rows.Scan(&lb.ID, &lb.Name, &lb.Active, &lb.Activities); err != nil {
			return nil, err
		}
		logbooks = append(logbooks, lb)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return logbooks, nil
}

// get all logbook names, used for shell completion
func (r *Repo) GetLogbookNames() ([]string, error) {
	logbooks, err := r.GetAllLogbooks()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(logbooks))
	for _, lb := range logbooks {
		names = append(names, lb.Name)
	}
	return names, nil
}

// set active logbook by name
func (r *Repo) SetActiveLogbook(name string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// deactivate all logbooks
	_, err = tx.Exec(deactivateAllLogbooksSQL)
	if err != nil {
		return err
	}

	// activate specified logbook
	_, err = tx.Exec(activateLogbookByNameSQL, name)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// get active logbook, zero value when none is active
func (r *Repo) GetActiveLogbook() (Logbook, error) {
	var lb Logbook
	err := r.db.QueryRow(getActiveLogbookSQL).Scan(&lb.ID, &lb.Name)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Logbook{}, nil
		}
		return Logbook{}, err
	}
	lb.Active = true
	return lb, nil
}

// EnsureActiveLogbook creates and activates fallback when no logbook is
// active yet.
func (r *Repo) EnsureActiveLogbook(fallback string) error {
	active, err := r.GetActiveLogbook()
	if err != nil {
		return err
	}
	if active.ID != 0 {
		return nil
	}
	if !r.CheckLogbookExists(fallback) {
		if err := r.CreateLogbook(fallback); err != nil {
			return fmt.Errorf("failed to create logbook %s: %w", fallback, err)
		}
	}
	return r.SetActiveLogbook(fallback)
}

func (r *Repo) activeLogbookID() (int64, error) {
	active, err := r.GetActiveLogbook()
	if err != nil {
		return 0, err
	}
	if active.ID == 0 {
		return 0, fmt.Errorf("no active logbook selected, use 'logbook' command to select or create one")
	}
	return active.ID, nil
}

// +---------------------+
// |                     |
// |  Activity Queries   |
// |                     |
// +---------------------+

// Load returns the active logbook's activities, newest first.
func (r *Repo) Load() ([]duty.Activity, error) {
	id, err := r.activeLogbookID()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(getActivitiesSQL, id)
	if err != nil {
		return nil, fmt.Errorf("error loading activities: %w", err)
	}
	defer rows.Close()

	var records []duty.Activity
	for rows.Next() {
		var a duty.Activity
		var date, start, end, kind string
		if err := rows.Scan(&a.ID, &date, &start, &end, &a.DurationHours, &kind, &a.PrePostHours); err != nil {
			return nil, err
		}
		if a.Date, err = civil.ParseDate(date); err != nil {
			return nil, fmt.Errorf("activity %s: %w", a.ID, err)
		}
		if a.Start, err = duty.ParseClock(start); err != nil {
			return nil, fmt.Errorf("activity %s: %w", a.ID, err)
		}
		if a.End, err = duty.ParseClock(end); err != nil {
			return nil, fmt.Errorf("activity %s: %w", a.ID, err)
		}
		if a.Kind, err = duty.ParseKind(kind); err != nil {
			return nil, fmt.Errorf("activity %s: %w", a.ID, err)
		}
		records = append(records, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := duty.CheckCollection(records); err != nil {
		return nil, fmt.Errorf("stored logbook is inconsistent: %w", err)
	}
	r.logger.Debug("loaded activities", "logbook_id", id, "count", len(records))
	return records, nil
}

// Save replaces the active logbook's activities with records in a single
// transaction. A busy or locked database is retried.
func (r *Repo) Save(records []duty.Activity) error {
	id, err := r.activeLogbookID()
	if err != nil {
		return err
	}

	err = retry.Do(
		func() error { return r.replace(id, records) },
		retry.Attempts(r.retries),
		retry.Delay(50*time.Millisecond),
		retry.MaxDelay(2*time.Second),
		retry.DelayType(retry.FullJitterBackoffDelay),
		retry.RetryIf(isBusy),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			r.logger.Debug("retrying save", "attempt", n+1, "error", err)
		}),
	)
	if err != nil {
		return fmt.Errorf("error saving activities: %w", err)
	}
	r.logger.Debug("saved activities", "logbook_id", id, "count", len(records))
	return nil
}

func (r *Repo) replace(logbookID int64, records []duty.Activity) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(deleteActivitiesSQL, logbookID); err != nil {
		return err
	}

	stmt, err := tx.Prepare(insertActivitySQL)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, a := range records {
		id := a.ID
		if id == "" {
			id = uuid.NewString()
		}
		_, err := stmt.Exec(id, logbookID, a.Date.String(), a.Start.String(), a.End.String(),
			a.DurationHours, a.Kind.String(), a.PrePostHours)
		if err != nil {
			return fmt.Errorf("error inserting activity %s: %w", id, err)
		}
	}

	return tx.Commit()
}

func isBusy(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked
	}
	return false
}

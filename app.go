package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/nexidian/gocliselect"

	"safehours/config"
	"safehours/duty"
)

type App struct {
	cfg    *config.Config
	repo   *Repo
	store  ActivityStore
	logger *slog.Logger

	out io.Writer
	in  io.Reader
	now func() time.Time

	// pickKind asks for an activity kind when none was given.
	pickKind func() (string, error)
}

func NewApp() *App {
	return &App{
		logger:   slog.New(slog.DiscardHandler),
		out:      os.Stdout,
		in:       os.Stdin,
		now:      time.Now,
		pickKind: selectKind,
	}
}

// Open loads configuration and opens the logbook database. It is a no-op
// once the store is open.
func (a *App) Open(configPath string, verbose bool) error {
	if a.store != nil {
		return nil
	}
	if err := a.LoadConfig(configPath, verbose); err != nil {
		return err
	}

	repo, err := NewRepo(a.cfg.Storage.Path, a.cfg.Storage.BusyRetries, a.logger)
	if err != nil {
		return err
	}
	if err := repo.EnsureActiveLogbook(a.cfg.Storage.Logbook); err != nil {
		repo.Close()
		return err
	}
	a.repo = repo
	a.store = repo
	a.logger.Debug("opened logbook database", "path", a.cfg.Storage.Path)
	return nil
}

// LoadConfig loads configuration and sets up logging and colour output.
func (a *App) LoadConfig(configPath string, verbose bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = newLogger(cfg.Log.Level, verbose)
	if !cfg.Display.Color {
		color.NoColor = true
	}
	return nil
}

func (a *App) Close() error {
	if a.repo == nil {
		return nil
	}
	err := a.repo.Close()
	a.repo = nil
	a.store = nil
	return err
}

func (a *App) ChangeLogbook(name string) error {
	if a.repo.CheckLogbookExists(name) {
		if err := a.repo.SetActiveLogbook(name); err != nil {
			return err
		}

		fmt.Fprintf(a.out, "Changed logbook to: %s\n", name)
	} else {
		if err := a.repo.CreateLogbook(name); err != nil {
			return err
		}
		if err := a.repo.SetActiveLogbook(name); err != nil {
			return err
		}

		fmt.Fprintf(a.out, "Created and changed logbook to: %s\n", name)
	}

	return nil
}

func (a *App) ListLogbooks() error {
	logbooks, err := a.repo.GetAllLogbooks()
	if err != nil {
		return err
	}

	var rows [][]string
	for _, lb := range logbooks {
		marker := ""
		if lb.Active {
			marker = "*"
		}
		rows = append(rows, []string{marker, lb.Name, fmt.Sprintf("%d", lb.Activities)})
	}
	PrintTable(a.out, []string{"", "Logbook", "Activities"}, rows, nil)
	return nil
}

// AddActivity validates c against the stored log and saves it. Missing date
// and start default to now; a missing kind is asked for, as is pre/post time
// for flight and simulator activities.
func (a *App) AddActivity(c duty.Candidate) error {
	now := a.now()
	if c.Date == "" {
		c.Date = civil.DateOf(now).String()
	}
	if c.Start == "" {
		c.Start = now.Format("15:04")
	}
	if c.Kind == "" {
		kind, err := a.pickKind()
		if err != nil {
			return err
		}
		c.Kind = kind
	}
	if kind, err := duty.ParseKind(c.Kind); err == nil && kind.AllowsPrePost() && c.PrePost == "" {
		c.PrePost = a.prompt("Enter Pre&Post hours (press Enter to skip): ")
	}

	records, err := a.store.Load()
	if err != nil {
		return err
	}
	next, added, err := duty.Add(records, c, uuid.NewString())
	if err != nil {
		a.logger.Warn("activity rejected", "date", c.Date, "start", c.Start, "duration", c.Duration, "error", err)
		return err
	}
	if err := a.store.Save(next); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Added %s on %s %s-%s (%s)\n",
		added.Kind, added.Date, added.Start, added.End, FormatHours(added.DurationHours))
	return nil
}

func (a *App) EditActivity(index int, field, value string) error {
	f, ok := duty.ParseField(field)
	if !ok {
		return fmt.Errorf("unknown field %q, use start, end, kind or prepost", field)
	}

	records, err := a.store.Load()
	if err != nil {
		return err
	}
	next, err := duty.Edit(records, index, f, value)
	if err != nil {
		a.logger.Warn("edit rejected", "index", index, "field", f.String(), "value", value, "error", err)
		return err
	}
	if err := a.store.Save(next); err != nil {
		return err
	}

	e := next[index]
	fmt.Fprintf(a.out, "Updated #%d: %s on %s %s-%s (%s, pre/post %.1f)\n",
		index, e.Kind, e.Date, e.Start, e.End, FormatHours(e.DurationHours), e.PrePostHours)
	return nil
}

func (a *App) DeleteActivity(index int) error {
	records, err := a.store.Load()
	if err != nil {
		return err
	}
	next, err := duty.Delete(records, index)
	if err != nil {
		return err
	}
	if err := a.store.Save(next); err != nil {
		return err
	}

	d := records[index]
	fmt.Fprintf(a.out, "Deleted #%d: %s on %s %s-%s\n", index, d.Kind, d.Date, d.Start, d.End)
	return nil
}

// Display lists the activities falling in window around target. The index
// column is the position used by edit and delete.
func (a *App) Display(window Window, target civil.Date) error {
	from, to, bounded, err := window.Range(target)
	if err != nil {
		return err
	}

	records, err := a.store.Load()
	if err != nil {
		return err
	}

	headers := []string{"#", "Day", "Start", "End", "Duration", "Pre&Post", "Activity"}

	var rows [][]string
	var total float64

	var lastDay string
	for i, r := range records {
		if bounded && (r.Date.Before(from) || r.Date.After(to)) {
			continue
		}
		total += r.DurationHours

		day := r.Date.In(time.UTC).Format("Mon Jan 02, 2006")
		if day == lastDay {
			day = ""
		} else {
			lastDay = day
		}
		prePost := ""
		if r.Kind.AllowsPrePost() {
			prePost = fmt.Sprintf("%.1f", r.PrePostHours)
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", i),
			day,
			r.Start.String(),
			r.End.String(),
			fmt.Sprintf("%.2f", r.DurationHours),
			prePost,
			r.Kind.String(),
		})
	}

	if len(rows) == 0 {
		fmt.Fprintln(a.out, "No activities logged.")
		return nil
	}

	footers := []string{"", "", "", "Total:", fmt.Sprintf("%.2f", total), "", ""}
	PrintTable(a.out, headers, rows, footers)
	return nil
}

// Report prints every duty metric for target with its severity.
func (a *App) Report(target civil.Date) error {
	records, err := a.store.Load()
	if err != nil {
		return err
	}

	m := duty.ComputeMetrics(records, target)
	evals := m.Evaluate()

	fmt.Fprintf(a.out, "Target date: %s\n\n", target.In(time.UTC).Format("Mon Jan 02, 2006"))
	for _, e := range evals {
		severityColor(e.Severity).Fprintf(a.out, "%-20s %12s  %s\n", e.Metric, FormatValue(e.Metric, e.Value), e.Severity)
	}

	var flagged []duty.Evaluation
	for _, e := range evals {
		if e.Severity != duty.SeverityNormal {
			flagged = append(flagged, e)
		}
	}
	if len(flagged) > 0 {
		fmt.Fprintln(a.out)
		for _, e := range flagged {
			if r, ok := duty.RuleFor(e.Metric); ok {
				fmt.Fprintf(a.out, "%s (%s): %s\n", e.Metric, r.Citation, r.Text)
			}
		}
	}

	a.logger.Debug("computed report", "date", target.String(), "worst", duty.Worst(evals).String())
	return nil
}

// Rules prints the regulation behind each limit.
func (a *App) Rules() {
	for i, m := range duty.AllMetrics {
		r, ok := duty.RuleFor(m)
		if !ok {
			continue
		}
		if i > 0 {
			fmt.Fprintln(a.out)
		}
		fmt.Fprintf(a.out, "%s - %s\n  %s\n", m, r.Citation, r.Text)
	}
}

// Export writes the active logbook to a JSON file.
func (a *App) Export(path string) error {
	records, err := a.store.Load()
	if err != nil {
		return err
	}
	if err := NewFileStore(path).Save(records); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Exported %d activities to %s\n", len(records), path)
	return nil
}

// Import replaces the active logbook with the snapshot in a JSON file.
func (a *App) Import(path string) (string, error) {
	records, err := NewFileStore(path).Load()
	if err != nil {
		return "", err
	}
	for i := range records {
		if records[i].ID == "" {
			records[i].ID = uuid.NewString()
		}
	}
	if err := a.store.Save(records); err != nil {
		return "", err
	}

	return fmt.Sprintf("Successfully imported %d entries.", len(records)), nil
}

// ParseTarget resolves a --date flag, defaulting to today.
func (a *App) ParseTarget(s string) (civil.Date, error) {
	if strings.TrimSpace(s) == "" {
		return civil.DateOf(a.now()), nil
	}
	d, err := civil.ParseDate(strings.TrimSpace(s))
	if err != nil {
		return civil.Date{}, fmt.Errorf("invalid date %q, use YYYY-MM-DD", s)
	}
	return d, nil
}

func (a *App) prompt(label string) string {
	fmt.Fprint(a.out, label)
	reader := bufio.NewReader(a.in)
	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return ""
	}
	return strings.TrimSpace(line)
}

func selectKind() (string, error) {
	v, err := newKindMenu().Display()
	if err != nil {
		return "", fmt.Errorf("failed to select activity kind: %w", err)
	}
	return kindChoice(v)
}

func newKindMenu() *gocliselect.Menu {
	menu := gocliselect.NewMenu("Select Activity")
	for _, k := range duty.Kinds {
		menu.AddItem(k.String(), k.String())
	}
	return menu
}

// kindChoice converts a menu selection back to a kind name.
func kindChoice(v any) (string, error) {
	choice, ok := v.(string)
	if !ok || choice == "" {
		return "", fmt.Errorf("no activity kind selected")
	}
	return choice, nil
}

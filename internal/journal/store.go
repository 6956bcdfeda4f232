// Package journal keeps a local history of completed journeys in SQLite.
package journal

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"whatfeeling/internal/logging"
	"whatfeeling/internal/wizard"
)

// DefaultListLimit caps List when no limit is given.
const DefaultListLimit = 20

// timeLayout is fixed width so created_at sorts correctly as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Journey is one completed pass through the wizard.
type Journey struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Primary   []string  `json:"primary"`
	Secondary []string  `json:"secondary"`
	Tertiary  []string  `json:"tertiary"`
}

// FromState builds a journey from a completed wizard snapshot.
func FromState(st wizard.State, now time.Time) (Journey, error) {
	if !st.Complete {
		return Journey{}, errors.New("journey is not complete")
	}
	j := Journey{ID: uuid.New(), CreatedAt: now.UTC()}
	lists := []*[]string{&j.Primary, &j.Secondary, &j.Tertiary}
	for i, sel := range st.Selections {
		if i >= len(lists) {
			break
		}
		names := make([]string, len(sel))
		for k, n := range sel {
			names[k] = n.Name
		}
		*lists[i] = names
	}
	return j, nil
}

// Store persists journeys.
type Store struct {
	db     *sql.DB
	mu     sync.RWMutex
	dbPath string
}

// NewStore opens (or creates) the journal database at path. ":memory:" is
// accepted for tests.
func NewStore(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// Every connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)

	s := &Store{db: db, dbPath: path}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	logging.JournalDebug("journal opened at %s", path)
	return s, nil
}

func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS journeys (
		id TEXT PRIMARY KEY,
		created_at TEXT NOT NULL,
		primary_json TEXT NOT NULL,
		secondary_json TEXT NOT NULL,
		tertiary_json TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_journeys_created ON journeys(created_at);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}
	return nil
}

// Path returns the database location.
func (s *Store) Path() string { return s.dbPath }

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record inserts a journey.
func (s *Store) Record(ctx context.Context, j Journey) error {
	timer := logging.StartTimer(logging.CategoryJournal, "Record")
	defer timer.Stop()

	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	if j.CreatedAt.IsZero() {
		j.CreatedAt = time.Now().UTC()
	}

	cols := make([]string, 3)
	for i, names := range [][]string{j.Primary, j.Secondary, j.Tertiary} {
		if names == nil {
			names = []string{}
		}
		data, err := json.Marshal(names)
		if err != nil {
			return fmt.Errorf("failed to encode journey: %w", err)
		}
		cols[i] = string(data)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO journeys (id, created_at, primary_json, secondary_json, tertiary_json)
		 VALUES (?, ?, ?, ?, ?)`,
		j.ID.String(), j.CreatedAt.UTC().Format(timeLayout), cols[0], cols[1], cols[2],
	)
	if err != nil {
		logging.JournalError("failed to record journey %s: %v", j.ID, err)
		return fmt.Errorf("failed to record journey: %w", err)
	}
	logging.Get(logging.CategoryJournal).StructuredLog("info", "recorded journey", map[string]interface{}{
		"id":       j.ID.String(),
		"tertiary": len(j.Tertiary),
	})
	return nil
}

// List returns the most recent journeys, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]Journey, error) {
	timer := logging.StartTimer(logging.CategoryJournal, "List")
	defer timer.Stop()

	if limit <= 0 {
		limit = DefaultListLimit
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, primary_json, secondary_json, tertiary_json
		 FROM journeys
		 ORDER BY created_at DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query journeys: %w", err)
	}
	defer rows.Close()

	var out []Journey
	for rows.Next() {
		var id, created, p, sec, t string
		if err := rows.Scan(&id, &created, &p, &sec, &t); err != nil {
			return nil, fmt.Errorf("failed to scan journey: %w", err)
		}
		j, err := decodeRow(id, created, p, sec, t)
		if err != nil {
			logging.JournalError("skipping unreadable journey %s: %v", id, err)
			continue
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read journeys: %w", err)
	}
	logging.JournalDebug("listed %d journeys", len(out))
	return out, nil
}

// Count returns the number of stored journeys.
func (s *Store) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM journeys`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count journeys: %w", err)
	}
	return n, nil
}

func decodeRow(id, created, p, sec, t string) (Journey, error) {
	var j Journey
	var err error
	if j.ID, err = uuid.Parse(id); err != nil {
		return j, err
	}
	if j.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
		return j, err
	}
	for _, f := range []struct {
		raw string
		dst *[]string
	}{{p, &j.Primary}, {sec, &j.Secondary}, {t, &j.Tertiary}} {
		if err := json.Unmarshal([]byte(f.raw), f.dst); err != nil {
			return j, err
		}
	}
	return j, nil
}

package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	_ "modernc.org/sqlite"

	"remind/internal/task"
)

// taskSlotKey is the single kv slot holding the whole task collection.
const taskSlotKey = "tasks"

// Store persists the full task collection as one JSON blob in a sqlite
// key-value table, alongside loose settings rows. Every mutation reads
// the blob, rewrites it whole, and persists it back; the mutex keeps
// that read-modify-write atomic when goroutines share the store.
type Store struct {
	mu sync.Mutex
	db *sql.DB
}

func Open(dbPath string) (*Store, error) {
	if dbPath == "" {
		return nil, errors.New("db path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, err
	}
	dsn := sqliteDSN(dbPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	const ddl = `
CREATE TABLE IF NOT EXISTS kv (
	key TEXT PRIMARY KEY,
	value BLOB
);`
	_, err := s.db.Exec(ddl)
	return err
}

// RetrieveAll returns every stored task in insertion order. A missing
// or undecodable blob counts as an empty collection, never an error.
func (s *Store) RetrieveAll() []task.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.retrieveLocked()
}

func (s *Store) retrieveLocked() []task.Task {
	var blob []byte
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?;`, taskSlotKey).Scan(&blob)
	if err != nil {
		return nil
	}
	var tasks []task.Task
	if err := json.Unmarshal(blob, &tasks); err != nil {
		return nil
	}
	return tasks
}

// Insert appends t to the collection and persists it.
func (s *Store) Insert(t task.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.storeLocked(append(s.retrieveLocked(), t))
}

// Update replaces the stored task with the same id, keeping its
// position. Unknown ids are a no-op so an update racing a delete
// cannot fail.
func (s *Store) Update(t task.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tasks := s.retrieveLocked()
	for i := range tasks {
		if tasks[i].ID == t.ID {
			tasks[i] = t
			return s.storeLocked(tasks)
		}
	}
	return nil
}

// DeleteByID removes the matching task if present; absent ids are a
// no-op.
func (s *Store) DeleteByID(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tasks := s.retrieveLocked()
	kept := tasks[:0]
	for _, t := range tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	if len(kept) == len(tasks) {
		return nil
	}
	return s.storeLocked(kept)
}

func (s *Store) storeLocked(tasks []task.Task) error {
	if tasks == nil {
		tasks = []task.Task{}
	}
	blob, err := json.Marshal(tasks)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(
		`INSERT INTO kv (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value;`,
		taskSlotKey, blob)
	return err
}

// GetSetting reads a loose string setting such as the display name.
func (s *Store) GetSetting(key string) (string, bool) {
	var value []byte
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?;`, key).Scan(&value)
	if err != nil {
		return "", false
	}
	return string(value), true
}

func (s *Store) SetSetting(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO kv (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value;`,
		key, []byte(value))
	return err
}

func sqliteDSN(path string) string {
	if strings.HasPrefix(path, "file:") {
		return path
	}
	abs, err := filepath.Abs(path)
	if err == nil {
		path = abs
	}
	u := url.URL{
		Scheme: "file",
		Path:   path,
	}
	q := u.Query()
	q.Set("mode", "rwc")
	q.Set("_pragma", "busy_timeout(5000)")
	u.RawQuery = q.Encode()
	return u.String()
}

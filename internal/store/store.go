// Package store persists the user profile and its mastery containers to a
// local SQLite file. One process owns the file; a single connection guarded
// by a mutex serializes access, and every multi-statement write runs in a
// transaction so a failure leaves the previous state visible.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// UserRow mirrors one row of the users table.
type UserRow struct {
	ID       string
	Username string
}

// ContainerRow mirrors one row of the containers table. XPLevel is the
// accumulated hours; Level is the label derived from it at write time.
type ContainerRow struct {
	ID       string
	XPLevel  float64
	Level    string
	Name     string
	UserUUID string
}

// Store wraps the SQLite handle for the mastery database.
type Store struct {
	mu      sync.RWMutex
	db      *sql.DB
	path    string
	existed bool
	logger  *zap.Logger
}

// Open opens (or creates) the database file and applies the connection
// pragmas. Whether the file already existed is recorded before opening: its
// absence is the first-run signal.
func Open(path string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	existed := false
	if path != ":memory:" {
		if _, err := os.Stat(path); err == nil {
			existed = true
		}
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create directory: %w", err)
			}
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	for _, pragma := range []string{
		"PRAGMA busy_timeout = 5000",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA foreign_keys = ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			logger.Debug("pragma failed", zap.String("pragma", pragma), zap.Error(err))
		}
	}

	s := &Store{db: db, path: path, existed: existed, logger: logger}
	if err := s.InitSchema(); err != nil {
		db.Close()
		return nil, err
	}
	logger.Debug("store opened", zap.String("path", path), zap.Bool("existed", existed))
	return s, nil
}

// InitSchema creates the users and containers tables. Idempotent.
func (s *Store) InitSchema() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		username TEXT UNIQUE
	);
	CREATE TABLE IF NOT EXISTS containers (
		id TEXT PRIMARY KEY,
		xp_level REAL CHECK (xp_level >= 0),
		level TEXT,
		name TEXT UNIQUE,
		user_uuid TEXT,
		FOREIGN KEY (user_uuid) REFERENCES users(id)
	);
	`
	if _, err := s.db.Exec(schema); err != nil {
		s.logger.Error("schema init failed", zap.Error(err))
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return nil
}

// LoadAll returns every persisted user and container row. ok is false when
// the database file did not exist before Open, i.e. a first run with nothing
// to reload.
func (s *Store) LoadAll() (users []UserRow, containers []ContainerRow, ok bool, err error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.existed {
		return nil, nil, false, nil
	}

	rows, err := s.db.Query("SELECT id, username FROM users")
	if err != nil {
		return nil, nil, false, fmt.Errorf("failed to load users: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var u UserRow
		if err := rows.Scan(&u.ID, &u.Username); err != nil {
			return nil, nil, false, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, false, fmt.Errorf("failed to load users: %w", err)
	}

	crows, err := s.db.Query("SELECT id, xp_level, level, name, user_uuid FROM containers")
	if err != nil {
		return nil, nil, false, fmt.Errorf("failed to load containers: %w", err)
	}
	defer crows.Close()
	for crows.Next() {
		var c ContainerRow
		if err := crows.Scan(&c.ID, &c.XPLevel, &c.Level, &c.Name, &c.UserUUID); err != nil {
			return nil, nil, false, fmt.Errorf("failed to scan container row: %w", err)
		}
		containers = append(containers, c)
	}
	if err := crows.Err(); err != nil {
		return nil, nil, false, fmt.Errorf("failed to load containers: %w", err)
	}

	s.logger.Debug("loaded store",
		zap.Int("users", len(users)), zap.Int("containers", len(containers)))
	return users, containers, true, nil
}

// InsertUser persists a user row. INSERT OR IGNORE: an existing id wins and
// the call is a no-op.
func (s *Store) InsertUser(id, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		"INSERT OR IGNORE INTO users (id, username) VALUES (?, ?)",
		id, username,
	)
	if err != nil {
		s.logger.Error("insert user failed", zap.String("id", id), zap.Error(err))
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

// InsertContainer persists a container row. The caller supplies the id so the
// persisted identity always matches the in-memory one. INSERT OR IGNORE keeps
// duplicate-name inserts silent at this layer; callers that care check the
// profile first.
func (s *Store) InsertContainer(row ContainerRow) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		"INSERT OR IGNORE INTO containers (id, xp_level, level, name, user_uuid) VALUES (?, ?, ?, ?, ?)",
		row.ID, row.XPLevel, row.Level, row.Name, row.UserUUID,
	)
	if err != nil {
		s.logger.Error("insert container failed", zap.String("name", row.Name), zap.Error(err))
		return fmt.Errorf("failed to insert container: %w", err)
	}
	return nil
}

// UpdateContainer overwrites hours and level for the row matching id inside a
// transaction. A failure rolls back and the previous row stays visible. An
// absent id is a no-op.
func (s *Store) UpdateContainer(id string, hours float64, lvl string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if _, err := tx.Exec(
		"UPDATE containers SET xp_level = ?, level = ? WHERE id = ?",
		hours, lvl, id,
	); err != nil {
		tx.Rollback()
		s.logger.Error("update container failed", zap.String("id", id), zap.Error(err))
		return fmt.Errorf("failed to update container: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit container update: %w", err)
	}
	return nil
}

// RenameContainer overwrites the display name for the row matching id.
func (s *Store) RenameContainer(id, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if _, err := tx.Exec("UPDATE containers SET name = ? WHERE id = ?", name, id); err != nil {
		tx.Rollback()
		s.logger.Error("rename container failed", zap.String("id", id), zap.Error(err))
		return fmt.Errorf("failed to rename container: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit container rename: %w", err)
	}
	return nil
}

// UpdateUser overwrites the username for the row matching id.
func (s *Store) UpdateUser(id, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if _, err := tx.Exec("UPDATE users SET username = ? WHERE id = ?", name, id); err != nil {
		tx.Rollback()
		s.logger.Error("update user failed", zap.String("id", id), zap.Error(err))
		return fmt.Errorf("failed to update user: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit user update: %w", err)
	}
	return nil
}

// DeleteContainer removes the row matching id. Absent ids are a no-op.
func (s *Store) DeleteContainer(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec("DELETE FROM containers WHERE id = ?", id); err != nil {
		s.logger.Error("delete container failed", zap.String("id", id), zap.Error(err))
		return fmt.Errorf("failed to delete container: %w", err)
	}
	return nil
}

// Wipe closes the handle and removes the database file. Idempotent: a missing
// file is not an error.
func (s *Store) Wipe() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db != nil {
		s.db.Close()
		s.db = nil
	}
	if s.path == ":memory:" {
		return nil
	}
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove database file: %w", err)
	}
	s.logger.Info("store wiped", zap.String("path", s.path))
	return nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

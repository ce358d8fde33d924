package chatdb

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// Store provides read-only access to a chat.db file. It is opened by
// the command layer and closed when the command finishes; it is never
// written to.
type Store struct {
	db   *sql.DB
	path string
}

// DefaultPath returns the well-known chat.db location under the user's
// home directory.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, "Library", "Messages", "chat.db"), nil
}

// Open opens chat.db read-only. Missing or unreadable files produce
// errors with remediation text rather than raw sqlite errors.
func Open(path string) (*Store, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("Messages database not found at %s\nMake sure you're running on macOS with Messages.app configured", path)
	}

	dsn := fmt.Sprintf("file:%s?mode=ro&_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open Messages database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		msg := err.Error()
		if strings.Contains(msg, "unable to open") || strings.Contains(msg, "permission denied") {
			return nil, fmt.Errorf("cannot open Messages database. Grant Full Disk Access to your terminal:\nSystem Settings → Privacy & Security → Full Disk Access")
		}
		return nil, fmt.Errorf("failed to open Messages database: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Path returns the chat.db file path this store was opened with.
func (s *Store) Path() string {
	return s.path
}

// Close closes the underlying database connection. Safe on nil stores.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

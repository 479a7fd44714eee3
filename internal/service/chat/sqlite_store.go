package chat

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/uberhub/innovation-hub/backend/internal/model/chat"
)

const sessionSchema = `
CREATE TABLE IF NOT EXISTS sessions (
	session_id TEXT PRIMARY KEY,
	agent_id   TEXT NOT NULL,
	turns      TEXT NOT NULL,
	version    INTEGER NOT NULL,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);`

// SQLiteStore persists sessions in a SQLite database file.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// OpenSQLiteStore opens (or creates) the database at path.
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create session directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("failed to open session database: %w", err)
	}
	// A single writer keeps the version check and the write in one serial stream.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(sessionSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize session schema: %w", err)
	}

	return &SQLiteStore{db: db, now: func() time.Time { return time.Now().UTC() }}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Find implements Store.
func (s *SQLiteStore) Find(ctx context.Context, sessionID string) (chat.Session, bool, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT agent_id, turns, version, created_at, updated_at FROM sessions WHERE session_id = ?`, sessionID)

	var (
		session            chat.Session
		turns              string
		createdAt, updated string
	)
	err := row.Scan(&session.AgentID, &turns, &session.Version, &createdAt, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return chat.Session{}, false, nil
	}
	if err != nil {
		return chat.Session{}, false, fmt.Errorf("query session: %w", err)
	}

	session.ID = sessionID
	if err := json.Unmarshal([]byte(turns), &session.Turns); err != nil {
		return chat.Session{}, false, fmt.Errorf("decode session turns: %w", err)
	}
	if session.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return chat.Session{}, false, fmt.Errorf("decode created_at: %w", err)
	}
	if session.UpdatedAt, err = time.Parse(time.RFC3339Nano, updated); err != nil {
		return chat.Session{}, false, fmt.Errorf("decode updated_at: %w", err)
	}
	return session, true, nil
}

// Upsert implements Store.
func (s *SQLiteStore) Upsert(ctx context.Context, session chat.Session) (chat.Session, error) {
	if strings.TrimSpace(session.ID) == "" {
		return chat.Session{}, ErrInvalidSession
	}

	turns, err := json.Marshal(session.Turns)
	if err != nil {
		return chat.Session{}, fmt.Errorf("encode session turns: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return chat.Session{}, fmt.Errorf("begin session tx: %w", err)
	}
	defer tx.Rollback()

	var (
		currentVersion int64
		createdAt      string
	)
	err = tx.QueryRowContext(ctx,
		`SELECT version, created_at FROM sessions WHERE session_id = ?`, session.ID).Scan(&currentVersion, &createdAt)
	exists := err == nil
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return chat.Session{}, fmt.Errorf("query session version: %w", err)
	}
	if session.Version != currentVersion {
		return chat.Session{}, ErrVersionConflict
	}

	now := s.now()
	stored := session.Clone()
	stored.Version = currentVersion + 1
	stored.UpdatedAt = now

	if exists {
		if stored.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
			return chat.Session{}, fmt.Errorf("decode created_at: %w", err)
		}
		_, err = tx.ExecContext(ctx,
			`UPDATE sessions SET agent_id = ?, turns = ?, version = ?, updated_at = ? WHERE session_id = ? AND version = ?`,
			stored.AgentID, string(turns), stored.Version, now.Format(time.RFC3339Nano), stored.ID, currentVersion)
	} else {
		if stored.CreatedAt.IsZero() {
			stored.CreatedAt = now
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO sessions (session_id, agent_id, turns, version, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
			stored.ID, stored.AgentID, string(turns), stored.Version,
			stored.CreatedAt.UTC().Format(time.RFC3339Nano), now.Format(time.RFC3339Nano))
	}
	if err != nil {
		return chat.Session{}, fmt.Errorf("write session: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return chat.Session{}, fmt.Errorf("commit session: %w", err)
	}
	return stored, nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history persists conversation turns in SQLite so follow-up
// queries can recall recent context across restarts.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/research-assistant/pkg/types"
)

const (
	defaultDBFile = "research-assistant.db"
	defaultWindow = 5
)

// Conversation is one completed query/report exchange.
type Conversation struct {
	ID        string    `json:"id"`
	Query     string    `json:"query"`
	Intent    string    `json:"intent"`
	Summary   string    `json:"summary"`
	Report    string    `json:"report"`
	CreatedAt time.Time `json:"created_at"`
}

// Store manages the conversation history SQLite database.
type Store struct {
	db     *sql.DB
	window int
}

// NewStore opens or creates the history database at cfg.Path, creating
// parent directories and the schema as needed.
func NewStore(cfg types.HistoryConfig) (*Store, error) {
	path := cfg.Path
	if path == "" {
		path = defaultDBFile
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	window := cfg.Window
	if window <= 0 {
		window = defaultWindow
	}

	s := &Store{db: db, window: window}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Window returns the configured recall window.
func (s *Store) Window() int {
	return s.window
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS conversations (
			id TEXT PRIMARY KEY,
			query TEXT NOT NULL,
			intent TEXT,
			summary TEXT,
			report TEXT,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_conversations_created_at ON conversations(created_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Append stores a completed conversation turn. A missing ID or
// timestamp is filled in. Returns the stored record.
func (s *Store) Append(ctx context.Context, conv Conversation) (Conversation, error) {
	if conv.Query == "" {
		return Conversation{}, fmt.Errorf("conversation query is empty")
	}
	if conv.ID == "" {
		conv.ID = uuid.NewString()
	}
	if conv.CreatedAt.IsZero() {
		conv.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO conversations (id, query, intent, summary, report, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		conv.ID, conv.Query, conv.Intent, conv.Summary, conv.Report,
		conv.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return Conversation{}, fmt.Errorf("inserting conversation: %w", err)
	}
	return conv, nil
}

// Recent returns the last window turns, oldest first, for follow-up
// contextualization.
func (s *Store) Recent(ctx context.Context) ([]Conversation, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, query, intent, summary, report, created_at
		 FROM conversations ORDER BY created_at DESC, id LIMIT ?`, s.window)
	if err != nil {
		return nil, fmt.Errorf("querying recent conversations: %w", err)
	}
	defer rows.Close()

	convs, err := scanConversations(rows)
	if err != nil {
		return nil, err
	}

	// Reverse to chronological order.
	for i, j := 0, len(convs)-1; i < j; i, j = i+1, j-1 {
		convs[i], convs[j] = convs[j], convs[i]
	}
	return convs, nil
}

// RecentQueries returns just the query text of the recent turns,
// oldest first.
func (s *Store) RecentQueries(ctx context.Context) ([]string, error) {
	convs, err := s.Recent(ctx)
	if err != nil {
		return nil, err
	}
	queries := make([]string, len(convs))
	for i, c := range convs {
		queries[i] = c.Query
	}
	return queries, nil
}

// List returns up to limit turns, newest first, for display.
func (s *Store) List(ctx context.Context, limit int) ([]Conversation, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, query, intent, summary, report, created_at
		 FROM conversations ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing conversations: %w", err)
	}
	defer rows.Close()
	return scanConversations(rows)
}

func scanConversations(rows *sql.Rows) ([]Conversation, error) {
	var convs []Conversation
	for rows.Next() {
		var c Conversation
		var createdAt string
		if err := rows.Scan(&c.ID, &c.Query, &c.Intent, &c.Summary, &c.Report, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning conversation: %w", err)
		}
		if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			c.CreatedAt = t
		}
		convs = append(convs, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating conversations: %w", err)
	}
	return convs, nil
}

// Package sqlite provides an embedded SQLite implementation of the store
// interfaces. Each card is kept as its JSON document alongside a position
// column that preserves insertion order.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/osaxon/nc-tech-test/pkg/card"
	"github.com/osaxon/nc-tech-test/pkg/logging"
	"github.com/osaxon/nc-tech-test/pkg/store"
)

// DefaultPath is the database location used when none is configured.
const DefaultPath = "data/cards.db"

const schema = `
CREATE TABLE IF NOT EXISTS cards (
	id       TEXT PRIMARY KEY,
	position INTEGER NOT NULL,
	body     TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_cards_position ON cards(position);
CREATE TABLE IF NOT EXISTS templates (
	id        TEXT PRIMARY KEY,
	image_url TEXT NOT NULL,
	body      TEXT NOT NULL
);
`

// Store implements store.Store on top of SQLite.
type Store struct {
	conn *sql.DB
	path string
	log  *slog.Logger
}

var _ store.Store = (*Store)(nil)

// Open opens or creates the database at path and ensures the schema exists.
func Open(ctx context.Context, path string, log *slog.Logger) (*Store, error) {
	if path == "" {
		path = DefaultPath
	}
	if log == nil {
		log = logging.Nop()
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, &store.StorageError{Op: "open", Path: path, Err: err}
		}
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, &store.StorageError{Op: "open", Path: path, Err: err}
	}
	// Pragmas are per connection; a single connection keeps them in force.
	conn.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA temp_store=MEMORY",
	}
	for _, pragma := range pragmas {
		if _, err := conn.ExecContext(ctx, pragma); err != nil {
			conn.Close()
			return nil, &store.StorageError{Op: "open", Path: path, Err: fmt.Errorf("set pragma: %w", err)}
		}
	}

	if _, err := conn.ExecContext(ctx, schema); err != nil {
		conn.Close()
		return nil, &store.StorageError{Op: "open", Path: path, Err: fmt.Errorf("initialize schema: %w", err)}
	}

	log.Debug("sqlite store opened", "path", path)
	return &Store{conn: conn, path: path, log: log}, nil
}

// Path returns the database file path.
func (s *Store) Path() string { return s.path }

// Close closes the database connection.
func (s *Store) Close() error {
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}

// List returns all cards ordered by insertion position.
func (s *Store) List(ctx context.Context) ([]card.Card, error) {
	rows, err := s.conn.QueryContext(ctx, `SELECT body FROM cards ORDER BY position, id`)
	if err != nil {
		return nil, s.queryErr(err)
	}
	defer rows.Close()

	cards := []card.Card{}
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, s.queryErr(err)
		}
		var c card.Card
		if err := json.Unmarshal([]byte(body), &c); err != nil {
			return nil, &store.StorageError{Op: "parse", Path: s.path, Err: err}
		}
		cards = append(cards, c)
	}
	if err := rows.Err(); err != nil {
		return nil, s.queryErr(err)
	}
	return cards, nil
}

// Get returns a single card by id.
func (s *Store) Get(ctx context.Context, id string) (card.Card, error) {
	var body string
	err := s.conn.QueryRowContext(ctx, `SELECT body FROM cards WHERE id = ?`, id).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return card.Card{}, store.ErrNotFound
	}
	if err != nil {
		return card.Card{}, s.queryErr(err)
	}
	var c card.Card
	if err := json.Unmarshal([]byte(body), &c); err != nil {
		return card.Card{}, &store.StorageError{Op: "parse", Path: s.path, Err: err}
	}
	return c, nil
}

// Put inserts c at the end of the list, or replaces the stored card with the
// same id while keeping its position.
func (s *Store) Put(ctx context.Context, c card.Card) error {
	body, err := json.Marshal(c)
	if err != nil {
		return &store.StorageError{Op: "encode", Path: s.path, Err: err}
	}
	return s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `UPDATE cards SET body = ? WHERE id = ?`, string(body), c.ID)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n > 0 {
			return nil
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO cards (id, position, body)
			 VALUES (?, (SELECT COALESCE(MAX(position), -1) + 1 FROM cards), ?)`,
			c.ID, string(body))
		return err
	})
}

// Delete removes the card with the given id.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.conn.ExecContext(ctx, `DELETE FROM cards WHERE id = ?`, id)
	if err != nil {
		return s.queryErr(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return s.queryErr(err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// ReplaceAll overwrites the whole card list in a single transaction.
func (s *Store) ReplaceAll(ctx context.Context, cards []card.Card) error {
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM cards`); err != nil {
			return err
		}
		stmt, err := tx.PrepareContext(ctx, `INSERT INTO cards (id, position, body) VALUES (?, ?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for i, c := range cards {
			body, err := json.Marshal(c)
			if err != nil {
				return err
			}
			if _, err := stmt.ExecContext(ctx, c.ID, i, string(body)); err != nil {
				return fmt.Errorf("insert %s: %w", c.ID, err)
			}
		}
		return nil
	})
	if err == nil {
		s.log.Debug("cards replaced", "path", s.path, "count", len(cards))
	}
	return err
}

// ListTemplates returns all templates ordered by id.
func (s *Store) ListTemplates(ctx context.Context) ([]card.Template, error) {
	rows, err := s.conn.QueryContext(ctx, `SELECT body FROM templates ORDER BY id`)
	if err != nil {
		return nil, s.queryErr(err)
	}
	defer rows.Close()

	templates := []card.Template{}
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, s.queryErr(err)
		}
		var t card.Template
		if err := json.Unmarshal([]byte(body), &t); err != nil {
			return nil, &store.StorageError{Op: "parse", Path: s.path, Err: err}
		}
		templates = append(templates, t)
	}
	if err := rows.Err(); err != nil {
		return nil, s.queryErr(err)
	}
	return templates, nil
}

// ImportTemplates replaces the stored templates with the given set.
func (s *Store) ImportTemplates(ctx context.Context, templates []card.Template) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM templates`); err != nil {
			return err
		}
		for _, t := range templates {
			body, err := json.Marshal(t)
			if err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO templates (id, image_url, body) VALUES (?, ?, ?)`,
				t.ID, t.ImageURL, string(body)); err != nil {
				return fmt.Errorf("insert %s: %w", t.ID, err)
			}
		}
		return nil
	})
}

// withTx runs fn in a transaction, rolling back if fn fails.
func (s *Store) withTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return s.queryErr(fmt.Errorf("begin transaction: %w", err))
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			s.log.Error("failed to rollback transaction", "error", err, "rollback_error", rbErr)
		}
		return s.queryErr(err)
	}

	if err := tx.Commit(); err != nil {
		return s.queryErr(fmt.Errorf("commit transaction: %w", err))
	}
	return nil
}

func (s *Store) queryErr(err error) error {
	return &store.StorageError{Op: "query", Path: s.path, Err: err}
}

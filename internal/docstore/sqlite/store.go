// Package sqlite is a single-file docstore.Store for local use. Documents are
// kept as BSON blobs; filtering and ordering run in Go via docstore.Apply.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"alcyxob/gympumped/internal/docstore"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS documents (
	collection TEXT NOT NULL,
	id         TEXT NOT NULL,
	data       BLOB NOT NULL,
	PRIMARY KEY (collection, id)
)`

const upsertSQL = `INSERT INTO documents (collection, id, data) VALUES (?, ?, ?)
	ON CONFLICT (collection, id) DO UPDATE SET data = excluded.data`

// Store implements docstore.Store on SQLite.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path. ":memory:" gives a
// private in-memory database.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if path == ":memory:" {
		// Every pooled connection would otherwise get its own empty database.
		db.SetMaxOpenConns(1)
	}

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) NewID() string {
	return uuid.NewString()
}

func (s *Store) Get(ctx context.Context, path, id string) (docstore.Document, error) {
	p, err := docstore.ParsePath(path)
	if err != nil {
		return docstore.Document{}, err
	}
	var data []byte
	err = s.db.QueryRowContext(ctx, `SELECT data FROM documents WHERE collection = ? AND id = ?`, p.String(), id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return docstore.Document{}, docstore.ErrNotFound
	}
	if err != nil {
		return docstore.Document{}, fmt.Errorf("reading %s/%s: %w", p, id, err)
	}
	return docstore.Document{ID: id, Data: bson.Raw(data)}, nil
}

func (s *Store) Set(ctx context.Context, path, id string, doc any) error {
	return s.Batch(ctx, []docstore.Op{docstore.SetOp(path, id, doc)})
}

func (s *Store) Merge(ctx context.Context, path, id string, fields map[string]any) error {
	p, err := docstore.ParsePath(path)
	if err != nil {
		return err
	}
	return s.withinTx(ctx, func(tx *sql.Tx) error {
		var data []byte
		err := tx.QueryRowContext(ctx, `SELECT data FROM documents WHERE collection = ? AND id = ?`, p.String(), id).Scan(&data)
		if errors.Is(err, sql.ErrNoRows) {
			return docstore.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("reading %s/%s: %w", p, id, err)
		}
		merged, err := docstore.MergeFields(bson.Raw(data), fields)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `UPDATE documents SET data = ? WHERE collection = ? AND id = ?`, []byte(merged), p.String(), id); err != nil {
			return fmt.Errorf("updating %s/%s: %w", p, id, err)
		}
		return nil
	})
}

func (s *Store) Delete(ctx context.Context, path, id string) error {
	return s.Batch(ctx, []docstore.Op{docstore.DeleteOp(path, id)})
}

func (s *Store) Query(ctx context.Context, path string, q docstore.Query) ([]docstore.Document, error) {
	p, err := docstore.ParsePath(path)
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, `SELECT id, data FROM documents WHERE collection = ?`, p.String())
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", p, err)
	}
	defer rows.Close()

	var docs []docstore.Document
	for rows.Next() {
		var (
			id   string
			data []byte
		)
		if err := rows.Scan(&id, &data); err != nil {
			return nil, fmt.Errorf("scanning %s: %w", p, err)
		}
		docs = append(docs, docstore.Document{ID: id, Data: bson.Raw(data)})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return docstore.Apply(docs, q)
}

func (s *Store) Batch(ctx context.Context, ops []docstore.Op) error {
	type prepared struct {
		coll string
		op   docstore.Op
		data []byte
	}
	ready := make([]prepared, 0, len(ops))
	for _, op := range ops {
		p, err := docstore.ParsePath(op.Path)
		if err != nil {
			return err
		}
		pr := prepared{coll: p.String(), op: op}
		if op.Kind == docstore.OpSet {
			raw, err := docstore.Encode(op.Doc)
			if err != nil {
				return err
			}
			pr.data = raw
		}
		ready = append(ready, pr)
	}

	return s.withinTx(ctx, func(tx *sql.Tx) error {
		for _, pr := range ready {
			var err error
			switch pr.op.Kind {
			case docstore.OpSet:
				_, err = tx.ExecContext(ctx, upsertSQL, pr.coll, pr.op.ID, pr.data)
			case docstore.OpDelete:
				_, err = tx.ExecContext(ctx, `DELETE FROM documents WHERE collection = ? AND id = ?`, pr.coll, pr.op.ID)
			}
			if err != nil {
				return fmt.Errorf("writing %s/%s: %w", pr.coll, pr.op.ID, err)
			}
		}
		return nil
	})
}

func (s *Store) withinTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

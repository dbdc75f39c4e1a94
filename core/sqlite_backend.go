package core

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// SQLiteBackend implements Backend on a single SQLite table. Records keep
// the same tagged shape as the other backends; SQLite only contributes
// durable storage and id assignment via the rowid.
type SQLiteBackend struct {
	db *sql.DB
}

func NewSQLiteBackend(path string) (*SQLiteBackend, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("%w: storage path is required", ErrUnavailable)
	}
	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: open sqlite db: %v", ErrUnavailable, err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: ping sqlite db: %v", ErrUnavailable, err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS objects (
		id   INTEGER PRIMARY KEY AUTOINCREMENT,
		kind TEXT NOT NULL,
		rev  TEXT NOT NULL,
		data TEXT NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: create objects table: %v", ErrUnavailable, err)
	}
	return &SQLiteBackend{db: db}, nil
}

func (b *SQLiteBackend) Save(ctx context.Context, s Storable) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	rev := uuid.NewString()
	id := s.ObjectID()

	if id != 0 {
		data, err := EncodeRecord(s)
		if err != nil {
			return 0, err
		}
		_, err = b.db.ExecContext(ctx,
			`INSERT INTO objects (id, kind, rev, data) VALUES (?, ?, ?, ?)
			 ON CONFLICT(id) DO UPDATE SET kind = excluded.kind, rev = excluded.rev, data = excluded.data`,
			id, string(s.Kind()), rev, string(data))
		if err != nil {
			return 0, fmt.Errorf("%w: upsert object %d: %v", ErrUnavailable, id, err)
		}
		return id, nil
	}

	// Fresh entity: the assigned id has to appear inside the stored record,
	// so claim a rowid first and fill the data in the same transaction.
	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: begin tx: %v", ErrUnavailable, err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO objects (kind, rev, data) VALUES (?, ?, '')`,
		string(s.Kind()), rev)
	if err != nil {
		return 0, fmt.Errorf("%w: insert object: %v", ErrUnavailable, err)
	}
	id, err = res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%w: read assigned id: %v", ErrUnavailable, err)
	}
	s.SetObjectID(id)

	data, err := EncodeRecord(s)
	if err != nil {
		return 0, err
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE objects SET data = ? WHERE id = ?`, string(data), id); err != nil {
		return 0, fmt.Errorf("%w: write object %d: %v", ErrUnavailable, id, err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("%w: commit object %d: %v", ErrUnavailable, id, err)
	}
	return id, nil
}

func (b *SQLiteBackend) Load(ctx context.Context, id int64) (Storable, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var data string
	err := b.db.QueryRowContext(ctx,
		`SELECT data FROM objects WHERE id = ?`, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: query object %d: %v", ErrUnavailable, id, err)
	}
	return DecodeRecord([]byte(data))
}

func (b *SQLiteBackend) Close() error {
	if b == nil || b.db == nil {
		return nil
	}
	return b.db.Close()
}

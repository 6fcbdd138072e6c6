package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/addressbook/pkg/types"
)

// Persister stores the whole address book as one snapshot. Unlike the text
// format it also records the id counter.
type Persister struct {
	db   *sql.DB
	path string
}

// Open creates dataDir if needed, opens the database inside it and applies
// the schema. Failures wrap ErrFileUnavailable.
func Open(dataDir string) (*Persister, error) {
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w: %w", types.ErrFileUnavailable, err)
	}

	path := filepath.Join(dataDir, DBFileName)
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w: %w", path, types.ErrFileUnavailable, err)
	}
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("applying schema: %w: %w", types.ErrFileUnavailable, err)
		}
	}
	return &Persister{db: db, path: path}, nil
}

// Path returns the database file location.
func (p *Persister) Path() string { return p.path }

// Save replaces the stored snapshot inside a single transaction.
func (p *Persister) Save(ctx context.Context, snap types.Snapshot) error {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM contacts"); err != nil {
		return fmt.Errorf("clearing contacts: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO contacts (position, id, name, phone, email) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, c := range snap.Contacts {
		if _, err := stmt.ExecContext(ctx, i, c.ID, c.Name, c.Phone, c.Email); err != nil {
			return fmt.Errorf("inserting contact %d: %w", c.ID, err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO meta (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		metaNextID, snap.NextID,
	); err != nil {
		return fmt.Errorf("storing next id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing snapshot: %w", err)
	}
	return nil
}

// Load returns the stored contacts in position order and the stored id
// counter. An empty database yields an empty snapshot.
func (p *Persister) Load(ctx context.Context) (types.Snapshot, error) {
	rows, err := p.db.QueryContext(ctx,
		"SELECT id, name, phone, email FROM contacts ORDER BY position")
	if err != nil {
		return types.Snapshot{}, fmt.Errorf("querying contacts: %w", err)
	}
	defer rows.Close()

	var snap types.Snapshot
	for rows.Next() {
		var c types.Contact
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.Email); err != nil {
			return types.Snapshot{}, fmt.Errorf("scanning contact: %w", err)
		}
		snap.Contacts = append(snap.Contacts, c)
	}
	if err := rows.Err(); err != nil {
		return types.Snapshot{}, fmt.Errorf("iterating contacts: %w", err)
	}
	snap.Declared = len(snap.Contacts)

	err = p.db.QueryRowContext(ctx, "SELECT value FROM meta WHERE key = ?", metaNextID).Scan(&snap.NextID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return types.Snapshot{}, fmt.Errorf("reading next id: %w", err)
	}
	return snap, nil
}

// Close releases the database handle. It is safe to call more than once.
func (p *Persister) Close() error {
	if p.db == nil {
		return nil
	}
	err := p.db.Close()
	p.db = nil
	return err
}

package codec

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mesh-intelligence/addressbook/pkg/types"
)

// SaveFile writes contacts to path atomically in the text format. A file that
// cannot be created wraps ErrFileUnavailable.
func SaveFile(path string, contacts []types.Contact) error {
	return writeAtomic(path, func(w io.Writer) error { return Encode(w, contacts) })
}

// writeAtomic writes path using the temp-file, fsync, rename pattern so that
// readers see either the old file or the complete new one.
func writeAtomic(path string, write func(io.Writer) error) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".contacts-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file in %s: %w: %w", dir, types.ErrFileUnavailable, err)
	}
	tmpName := tmp.Name()

	if err := write(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w: %w", types.ErrFileUnavailable, err)
	}
	return nil
}

// LoadFile decodes the file at path. A file that cannot be opened wraps both
// ErrFileUnavailable and the underlying os error.
func LoadFile(path string) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("opening %s: %w: %w", path, types.ErrFileUnavailable, err)
	}
	defer f.Close()

	res, err := Decode(f)
	if err != nil {
		return Result{}, fmt.Errorf("decoding %s: %w", path, err)
	}
	return res, nil
}

// FilePersister stores snapshots in a single text file.
type FilePersister struct {
	path string
}

// NewFilePersister returns a persister for the file at path.
func NewFilePersister(path string) *FilePersister {
	return &FilePersister{path: path}
}

// Path returns the backing file location.
func (p *FilePersister) Path() string { return p.path }

// Save writes the snapshot's contacts, creating the parent directory if
// needed. The text format has no slot for the id counter.
func (p *FilePersister) Save(ctx context.Context, snap types.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p.path), 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w: %w", types.ErrFileUnavailable, err)
	}
	return SaveFile(p.path, snap.Contacts)
}

// Load reads the file into a snapshot. NextID is always 0.
func (p *FilePersister) Load(ctx context.Context) (types.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return types.Snapshot{}, err
	}
	res, err := LoadFile(p.path)
	if err != nil {
		return types.Snapshot{}, err
	}
	return types.Snapshot{
		Contacts: res.Contacts,
		Declared: res.Declared,
		Skipped:  res.Skipped,
	}, nil
}

// Close is a no-op; the file is opened per call.
func (p *FilePersister) Close() error { return nil }

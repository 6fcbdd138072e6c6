package book

import (
	"fmt"
	"path/filepath"

	"github.com/mesh-intelligence/addressbook/internal/codec"
	"github.com/mesh-intelligence/addressbook/internal/sqlite"
	"github.com/mesh-intelligence/addressbook/pkg/types"
)

// OpenPersister validates cfg and returns the persister for its backend.
// The caller must Close the result.
func OpenPersister(cfg types.Config) (Persister, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	dataDir := cfg.DataDir
	if dataDir == "" {
		dataDir = "."
	}

	switch cfg.Backend {
	case types.BackendSQLite:
		p, err := sqlite.Open(dataDir)
		if err != nil {
			return nil, fmt.Errorf("open sqlite backend: %w", err)
		}
		return p, nil
	default:
		file := cfg.File
		if file == "" {
			file = types.DefaultFile
		}
		return codec.NewFilePersister(filepath.Join(dataDir, file)), nil
	}
}

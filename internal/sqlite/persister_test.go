package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/addressbook/pkg/types"
)

func TestOpenCreatesDatabase(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")

	p, err := Open(dir)
	require.NoError(t, err)
	defer p.Close()

	_, err = os.Stat(filepath.Join(dir, DBFileName))
	assert.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, DBFileName), p.Path())
}

func TestLoadEmptyDatabase(t *testing.T) {
	p, err := Open(t.TempDir())
	require.NoError(t, err)
	defer p.Close()

	snap, err := p.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, snap.Contacts)
	assert.Equal(t, 0, snap.NextID)
}

func TestSnapshotRoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	want := []types.Contact{
		{ID: 5, Name: "Grace", Phone: "0000000003", Email: "grace@navy.mil"},
		{ID: 1, Name: "Ada", Phone: "0000000001", Email: "ada@engine.org"},
		{ID: 3, Name: "Alan, OBE", Phone: "0000000002", Email: "alan@bletchley.uk"},
	}

	p, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, p.Save(ctx, types.Snapshot{Contacts: want, NextID: 7}))
	require.NoError(t, p.Close())

	// Reopen to prove the data reached disk.
	p, err = Open(dir)
	require.NoError(t, err)
	defer p.Close()

	snap, err := p.Load(ctx)
	require.NoError(t, err)
	if diff := cmp.Diff(want, snap.Contacts); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 7, snap.NextID)
	assert.Equal(t, 3, snap.Declared)
}

func TestSaveReplacesSnapshot(t *testing.T) {
	ctx := context.Background()
	p, err := Open(t.TempDir())
	require.NoError(t, err)
	defer p.Close()

	first := []types.Contact{
		{ID: 1, Name: "Ada", Phone: "0000000001", Email: "ada@engine.org"},
		{ID: 2, Name: "Alan", Phone: "0000000002", Email: "alan@bletchley.uk"},
	}
	require.NoError(t, p.Save(ctx, types.Snapshot{Contacts: first, NextID: 3}))
	require.NoError(t, p.Save(ctx, types.Snapshot{Contacts: first[1:], NextID: 4}))

	snap, err := p.Load(ctx)
	require.NoError(t, err)
	require.Len(t, snap.Contacts, 1)
	assert.Equal(t, 2, snap.Contacts[0].ID)
	assert.Equal(t, 4, snap.NextID)
}

func TestCloseIsIdempotent(t *testing.T) {
	p, err := Open(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, p.Close())
	require.NoError(t, p.Close())
}

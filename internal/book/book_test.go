package book

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/mesh-intelligence/addressbook/internal/validate"
	"github.com/mesh-intelligence/addressbook/pkg/types"
)

// memPersister keeps one snapshot in memory and can be told to fail.
type memPersister struct {
	snap    types.Snapshot
	loadErr error
	saveErr error
	saves   int
	closed  bool
}

func (m *memPersister) Load(context.Context) (types.Snapshot, error) {
	if m.loadErr != nil {
		return types.Snapshot{}, m.loadErr
	}
	return m.snap, nil
}

func (m *memPersister) Save(_ context.Context, snap types.Snapshot) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.snap = snap
	return nil
}

func (m *memPersister) Close() error {
	m.closed = true
	return nil
}

func mustCreate(t *testing.T, b *Book, name, phone, email string) types.Contact {
	t.Helper()
	c, err := b.Create(name, phone, email)
	require.NoError(t, err)
	return c
}

func TestCreate(t *testing.T) {
	b := New(nil)

	c := mustCreate(t, b, "Ada Lovelace", "0000000001", "ada@engine.org")
	assert.Equal(t, types.Contact{ID: 1, Name: "Ada Lovelace", Phone: "0000000001", Email: "ada@engine.org"}, c)
	assert.Equal(t, 1, b.Len())
}

func TestCreateValidation(t *testing.T) {
	b := New(nil)
	mustCreate(t, b, "Ada", "0000000001", "ada@engine.org")

	tests := []struct {
		name              string
		cname, phone, eml string
		field             types.Field
		want              error
	}{
		{"empty name", "", "0000000002", "b@c.d", types.FieldName, types.ErrEmptyInput},
		{"digits in name", "R2D2", "0000000002", "b@c.d", types.FieldName, types.ErrInvalidCharacters},
		{"long name", strings.Repeat("a", types.MaxNameLength+1), "0000000002", "b@c.d", types.FieldName, types.ErrInvalidLength},
		{"short phone", "Bob", "12345", "b@c.d", types.FieldPhone, types.ErrInvalidLength},
		{"duplicate phone", "Bob", "0000000001", "b@c.d", types.FieldPhone, types.ErrDuplicateValue},
		{"bad email", "Bob", "0000000002", "B@c.d", types.FieldEmail, types.ErrInvalidFormat},
		{"long email", "Bob", "0000000002", strings.Repeat("a", types.MaxEmailLength) + "@c.d", types.FieldEmail, types.ErrInvalidLength},
		{"duplicate email", "Bob", "0000000002", "ada@engine.org", types.FieldEmail, types.ErrDuplicateValue},
		{"name checked first", "", "", "", types.FieldName, types.ErrEmptyInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := b.Create(tt.cname, tt.phone, tt.eml)
			require.ErrorIs(t, err, tt.want)
			var fe *types.FieldError
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, tt.field, fe.Field)
			assert.Equal(t, 1, b.Len(), "failed create must not add a contact")
		})
	}
}

func TestCheck(t *testing.T) {
	b := New(nil)
	c := mustCreate(t, b, "Ada", "0000000001", "ada@engine.org")

	assert.Equal(t, validate.Duplicate, b.Check(types.FieldPhone, "0000000001", 0))
	assert.Equal(t, validate.Valid, b.Check(types.FieldPhone, "0000000001", c.ID))
	assert.Equal(t, validate.Valid, b.Check(types.FieldName, "Ada", 0))
}

func TestIDsAreNeverReused(t *testing.T) {
	b := New(nil)
	mustCreate(t, b, "Ada", "0000000001", "a@b.c")
	mustCreate(t, b, "Alan", "0000000002", "b@b.c")
	mustCreate(t, b, "Grace", "0000000003", "c@b.c")

	require.NoError(t, b.Delete(2))
	c := mustCreate(t, b, "Linus", "0000000004", "d@b.c")
	assert.Equal(t, 4, c.ID)
}

func TestSearch(t *testing.T) {
	b := New(nil)
	mustCreate(t, b, "Ada", "0000000001", "a@b.c")
	mustCreate(t, b, "Alan", "0000000002", "b@b.c")
	mustCreate(t, b, "Ada", "0000000003", "c@b.c")

	got := b.Search(types.FieldName, "Ada")
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].ID)
	assert.Equal(t, 3, got[1].ID)
	assert.Empty(t, b.Search(types.FieldEmail, "z@b.c"))
}

func TestEdit(t *testing.T) {
	b := New(nil)
	mustCreate(t, b, "Ada", "0000000001", "ada@engine.org")
	mustCreate(t, b, "Alan", "0000000002", "alan@bletchley.uk")

	t.Run("commits all changes", func(t *testing.T) {
		c, err := b.Edit(1,
			Change{Field: types.FieldName, Value: "Ada King"},
			Change{Field: types.FieldPhone, Value: "0000000001"},
			Change{Field: types.FieldEmail, Value: "ada@king.org"},
		)
		require.NoError(t, err)
		assert.Equal(t, types.Contact{ID: 1, Name: "Ada King", Phone: "0000000001", Email: "ada@king.org"}, c)

		stored, err := b.Get(1)
		require.NoError(t, err)
		assert.Equal(t, c, stored)
	})

	t.Run("one invalid change commits nothing", func(t *testing.T) {
		before, err := b.Get(1)
		require.NoError(t, err)

		_, err = b.Edit(1,
			Change{Field: types.FieldName, Value: "Countess"},
			Change{Field: types.FieldPhone, Value: "0000000002"},
		)
		require.ErrorIs(t, err, types.ErrDuplicateValue)

		after, err := b.Get(1)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	t.Run("missing contact", func(t *testing.T) {
		_, err := b.Edit(42, Change{Field: types.FieldName, Value: "Nobody"})
		assert.ErrorIs(t, err, types.ErrNotFound)
	})
}

func TestImport(t *testing.T) {
	b := New(nil)
	mustCreate(t, b, "Ada", "0000000001", "ada@engine.org")

	report := b.Import([]types.Contact{
		{ID: 40, Name: "Alan", Phone: "0000000002", Email: "alan@bletchley.uk"},
		{ID: 41, Name: "Ada Again", Phone: "0000000001", Email: "ada2@engine.org"},
		{ID: 42, Name: "Grace", Phone: "0000000003", Email: "grace@navy.mil"},
		{ID: 43, Name: "Grace Twin", Phone: "0000000004", Email: "grace@navy.mil"},
		{ID: 44, Name: "", Phone: "0000000005", Email: "x@y.z"},
	})

	require.Len(t, report.Added, 2)
	assert.Equal(t, []int{2, 3}, []int{report.Added[0].ID, report.Added[1].ID}, "imported ids come from the counter")
	require.Len(t, report.Rejected, 3)
	assert.ErrorIs(t, report.Rejected[0], types.ErrDuplicateValue)
	assert.ErrorIs(t, report.Rejected[1], types.ErrDuplicateValue, "duplicates within the batch are rejected")
	assert.ErrorIs(t, report.Rejected[2], types.ErrEmptyInput)
	assert.Contains(t, report.Rejected[0].Error(), "entry 2")
	assert.Equal(t, 3, b.Len())
}

func TestDeleteMissing(t *testing.T) {
	b := New(nil)
	mustCreate(t, b, "Ada", "0000000001", "a@b.c")

	err := b.Delete(9)
	assert.ErrorIs(t, err, types.ErrNotFound)
	assert.Equal(t, 1, b.Len())
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	p := &memPersister{}
	b := New(p)
	mustCreate(t, b, "Ada", "0000000001", "a@b.c")
	mustCreate(t, b, "Alan", "0000000002", "b@b.c")
	mustCreate(t, b, "Grace", "0000000003", "c@b.c")
	require.NoError(t, b.Delete(1))

	require.NoError(t, b.Save(ctx))
	assert.Equal(t, 1, p.saves)
	assert.Equal(t, 4, p.snap.NextID)

	fresh := New(p)
	report, err := fresh.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Loaded)
	if diff := cmp.Diff(b.List(), fresh.List()); diff != "" {
		t.Errorf("mismatch (-saved +loaded):\n%s", diff)
	}
	assert.Equal(t, 4, fresh.NextID())
}

func TestLoadRecomputesNextID(t *testing.T) {
	p := &memPersister{snap: types.Snapshot{
		Contacts: []types.Contact{
			{ID: 3, Name: "Ada", Phone: "0000000001", Email: "a@b.c"},
			{ID: 8, Name: "Alan", Phone: "0000000002", Email: "b@b.c"},
		},
		Declared: 2,
	}}
	b := New(p)
	_, err := b.Load(context.Background())
	require.NoError(t, err)

	c := mustCreate(t, b, "Grace", "0000000003", "c@b.c")
	assert.Equal(t, 9, c.ID)
}

func TestLoadHonoursPersistedNextID(t *testing.T) {
	p := &memPersister{snap: types.Snapshot{
		Contacts: []types.Contact{{ID: 2, Name: "Ada", Phone: "0000000001", Email: "a@b.c"}},
		NextID:   10,
	}}
	b := New(p)
	_, err := b.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 10, b.NextID())
}

func TestLoadFailureLeavesBookUnchanged(t *testing.T) {
	p := &memPersister{loadErr: types.ErrMalformedHeader}
	b := New(p)
	mustCreate(t, b, "Ada", "0000000001", "a@b.c")

	_, err := b.Load(context.Background())
	assert.ErrorIs(t, err, types.ErrMalformedHeader)
	assert.Equal(t, 1, b.Len())
	assert.Equal(t, 2, b.NextID())
}

func TestLoadLogsSkippedRecords(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	p := &memPersister{snap: types.Snapshot{
		Contacts: []types.Contact{{ID: 1, Name: "Ada", Phone: "0000000001", Email: "a@b.c"}},
		Declared: 3,
		Skipped:  2,
	}}
	b := New(p, WithLogger(zap.New(core)))

	report, err := b.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, LoadReport{Loaded: 1, Declared: 3, Skipped: 2}, report)
	assert.Equal(t, 1, logs.FilterMessage("skipped malformed records").Len())
}

func TestLoadSkipsRepeatedIDs(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	p := &memPersister{snap: types.Snapshot{
		Contacts: []types.Contact{
			{ID: 1, Name: "Ada", Phone: "0000000001", Email: "a@b.c"},
			{ID: 1, Name: "Alan", Phone: "0000000002", Email: "b@b.c"},
			{ID: 2, Name: "Grace", Phone: "0000000003", Email: "c@b.c"},
		},
		Declared: 3,
	}}
	b := New(p, WithLogger(zap.New(core)))

	report, err := b.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, LoadReport{Loaded: 2, Declared: 3, Skipped: 1}, report)
	assert.Equal(t, 1, logs.FilterMessage("skipped records with repeated ids").Len())

	require.NoError(t, b.Delete(1))
	assert.Empty(t, b.Search(types.FieldName, "Ada"))
	assert.Empty(t, b.Search(types.FieldName, "Alan"), "no second record shares the deleted id")
	assert.Equal(t, 1, b.Len())
}

func TestLocationWithoutPath(t *testing.T) {
	assert.Empty(t, New(nil).Location())
	assert.Empty(t, New(&memPersister{}).Location())
}

func TestSaveError(t *testing.T) {
	p := &memPersister{saveErr: types.ErrFileUnavailable}
	b := New(p)
	err := b.Save(context.Background())
	assert.ErrorIs(t, err, types.ErrFileUnavailable)
}

func TestNilPersister(t *testing.T) {
	b := New(nil)
	assert.ErrorIs(t, b.Save(context.Background()), types.ErrFileUnavailable)
	_, err := b.Load(context.Background())
	assert.ErrorIs(t, err, types.ErrFileUnavailable)
	assert.NoError(t, b.Close())
}

func TestClose(t *testing.T) {
	p := &memPersister{}
	require.NoError(t, New(p).Close())
	assert.True(t, p.closed)
}

func TestOpenPersister(t *testing.T) {
	ctx := context.Background()

	for _, backend := range []string{types.BackendText, types.BackendSQLite} {
		t.Run(backend, func(t *testing.T) {
			cfg := types.DefaultConfig()
			cfg.Backend = backend
			cfg.DataDir = filepath.Join(t.TempDir(), "data")

			p, err := OpenPersister(cfg)
			require.NoError(t, err)
			b := New(p)
			defer b.Close()

			mustCreate(t, b, "Ada", "0000000001", "a@b.c")
			mustCreate(t, b, "Alan", "0000000002", "b@b.c")
			require.NoError(t, b.Delete(2))
			require.NoError(t, b.Save(ctx))

			p2, err := OpenPersister(cfg)
			require.NoError(t, err)
			fresh := New(p2)
			defer fresh.Close()
			_, err = fresh.Load(ctx)
			require.NoError(t, err)

			assert.Equal(t, b.List(), fresh.List())
			want := filepath.Join(cfg.DataDir, types.DefaultFile)
			if backend == types.BackendSQLite {
				want = filepath.Join(cfg.DataDir, "addressbook.db")
			}
			assert.Equal(t, want, fresh.Location())
			c := mustCreate(t, fresh, "Grace", "0000000003", "c@b.c")
			if backend == types.BackendSQLite {
				assert.Equal(t, 3, c.ID, "sqlite persists the counter")
			} else {
				assert.Equal(t, 2, c.ID, "text format recomputes the counter from loaded ids")
			}
		})
	}

	t.Run("invalid config", func(t *testing.T) {
		_, err := OpenPersister(types.Config{Backend: "csv", MaxAttempts: 4})
		assert.ErrorIs(t, err, types.ErrBackendUnknown)
	})
}

func TestLoadMissingFile(t *testing.T) {
	cfg := types.DefaultConfig()
	cfg.DataDir = t.TempDir()
	p, err := OpenPersister(cfg)
	require.NoError(t, err)

	_, err = New(p).Load(context.Background())
	require.Error(t, err)
	assert.True(t, IsMissing(err))
	assert.ErrorIs(t, err, types.ErrFileUnavailable)
}

func TestLoadMalformedHeaderFromFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, types.DefaultFile), []byte("lots\n"), 0o644))

	cfg := types.DefaultConfig()
	cfg.DataDir = dir
	p, err := OpenPersister(cfg)
	require.NoError(t, err)

	b := New(p)
	_, err = b.Load(context.Background())
	assert.ErrorIs(t, err, types.ErrMalformedHeader)
	assert.Equal(t, 0, b.Len())
	assert.False(t, IsMissing(err))
}

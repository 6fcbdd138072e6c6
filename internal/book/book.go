// Package book is the address book service: it owns the contact store,
// applies field validation before every mutation and moves snapshots to and
// from a persistence backend.
package book

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/addressbook/internal/store"
	"github.com/mesh-intelligence/addressbook/internal/validate"
	"github.com/mesh-intelligence/addressbook/pkg/types"
)

// Persister saves and restores whole address book snapshots.
type Persister interface {
	Load(ctx context.Context) (types.Snapshot, error)
	Save(ctx context.Context, snap types.Snapshot) error
	Close() error
}

// Change sets one field of a contact during an edit.
type Change struct {
	Field types.Field
	Value string
}

// LoadReport summarises a Load.
type LoadReport struct {
	Loaded   int
	Declared int
	Skipped  int
}

// Book is the address book service. It is not safe for concurrent use.
type Book struct {
	store     *store.Store
	persister Persister
	log       *zap.Logger
}

// Option configures a Book.
type Option func(*Book)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(b *Book) {
		if l != nil {
			b.log = l
		}
	}
}

// New returns an empty Book backed by p. p may be nil for a Book that is
// never saved or loaded.
func New(p Persister, opts ...Option) *Book {
	b := &Book{
		store:     store.New(),
		persister: p,
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Check validates value for field f: format first, then the length ceiling,
// then uniqueness against every contact except the one with id except
// (0 checks against all of them).
func (b *Book) Check(f types.Field, value string, except int) validate.Status {
	if st := validate.Field(f, value); st != validate.Valid {
		return st
	}
	if max := f.MaxLength(); max > 0 && len(value) > max {
		return validate.InvalidLength
	}
	return validate.Available(f, value, b.store, except)
}

// Create validates name, phone and email in that order and appends a new
// contact. The first failing field is returned as a *types.FieldError.
func (b *Book) Create(name, phone, email string) (types.Contact, error) {
	c := types.Contact{Name: name, Phone: phone, Email: email}
	for _, f := range types.Fields {
		if st := b.Check(f, c.Value(f), 0); st != validate.Valid {
			return types.Contact{}, &types.FieldError{Field: f, Err: st.Err()}
		}
	}

	id, err := b.store.Create(name, phone, email)
	if err != nil {
		b.log.Error("create contact failed", zap.Error(err))
		return types.Contact{}, fmt.Errorf("create contact: %w", err)
	}
	c.ID = id
	b.log.Debug("contact created", zap.Int("id", id))
	return c, nil
}

// Search returns every contact whose field f exactly equals query, in
// store order.
func (b *Book) Search(f types.Field, query string) []types.Contact {
	return b.store.FindAll(f, query)
}

// Get returns the contact with the given id or ErrNotFound.
func (b *Book) Get(id int) (types.Contact, error) {
	c, ok := b.store.Get(id)
	if !ok {
		return types.Contact{}, fmt.Errorf("contact %d: %w", id, types.ErrNotFound)
	}
	return c, nil
}

// Edit applies changes to a scratch copy of the contact and commits them
// together. If any change is invalid nothing is written. Duplicate checks
// ignore the contact being edited, so re-entering its own phone is fine.
func (b *Book) Edit(id int, changes ...Change) (types.Contact, error) {
	scratch, err := b.Get(id)
	if err != nil {
		return types.Contact{}, err
	}
	for _, ch := range changes {
		if st := b.Check(ch.Field, ch.Value, id); st != validate.Valid {
			return types.Contact{}, &types.FieldError{Field: ch.Field, Err: st.Err()}
		}
		scratch = scratch.With(ch.Field, ch.Value)
	}
	if err := b.store.Update(id, scratch.Name, scratch.Phone, scratch.Email); err != nil {
		return types.Contact{}, fmt.Errorf("update contact %d: %w", id, err)
	}
	b.log.Debug("contact edited", zap.Int("id", id), zap.Int("changes", len(changes)))
	return scratch, nil
}

// ImportReport lists what an Import kept and what it refused.
type ImportReport struct {
	Added    []types.Contact
	Rejected []error
}

// Import creates a new contact for each entry, ignoring the entry's id.
// Entries that fail validation, including duplicates of contacts already in
// the book or earlier in the batch, are rejected and the rest are kept.
func (b *Book) Import(contacts []types.Contact) ImportReport {
	var report ImportReport
	for i, c := range contacts {
		added, err := b.Create(c.Name, c.Phone, c.Email)
		if err != nil {
			report.Rejected = append(report.Rejected, fmt.Errorf("entry %d (%q): %w", i+1, c.Name, err))
			continue
		}
		report.Added = append(report.Added, added)
	}
	b.log.Info("contacts imported",
		zap.Int("added", len(report.Added)), zap.Int("rejected", len(report.Rejected)))
	return report
}

// Delete removes the contact with the given id. A missing id returns
// ErrNotFound and changes nothing.
func (b *Book) Delete(id int) error {
	if !b.store.Delete(id) {
		return fmt.Errorf("contact %d: %w", id, types.ErrNotFound)
	}
	b.log.Debug("contact deleted", zap.Int("id", id))
	return nil
}

// List returns an ordered snapshot of all contacts.
func (b *Book) List() []types.Contact {
	return b.store.All()
}

// Len returns the number of contacts.
func (b *Book) Len() int {
	return b.store.Len()
}

// NextID returns the id the next created contact will get.
func (b *Book) NextID() int {
	return b.store.NextID()
}

// Save writes every contact, in order, to the persister.
func (b *Book) Save(ctx context.Context) error {
	if b.persister == nil {
		return fmt.Errorf("save contacts: %w", types.ErrFileUnavailable)
	}
	snap := types.Snapshot{Contacts: b.store.All(), NextID: b.store.NextID()}
	if err := b.persister.Save(ctx, snap); err != nil {
		b.log.Error("save failed", zap.Error(err))
		return fmt.Errorf("save contacts: %w", err)
	}
	b.log.Info("contacts saved", zap.Int("count", len(snap.Contacts)))
	return nil
}

// Load appends the persisted contacts after any already in the book and
// moves the id counter past every loaded id (and past the persisted counter
// when the backend keeps one). A record whose id is already in the book is
// skipped like a malformed one. On error the book is unchanged.
func (b *Book) Load(ctx context.Context) (LoadReport, error) {
	if b.persister == nil {
		return LoadReport{}, fmt.Errorf("load contacts: %w", types.ErrFileUnavailable)
	}
	snap, err := b.persister.Load(ctx)
	if err != nil {
		return LoadReport{}, fmt.Errorf("load contacts: %w", err)
	}

	dropped := b.store.Append(snap.Contacts...)
	b.store.SetNextID(snap.NextID)

	report := LoadReport{
		Loaded:   len(snap.Contacts) - dropped,
		Declared: snap.Declared,
		Skipped:  snap.Skipped + dropped,
	}
	if dropped > 0 {
		b.log.Warn("skipped records with repeated ids", zap.Int("repeated", dropped))
	}
	if report.Skipped > 0 {
		b.log.Warn("skipped malformed records",
			zap.Int("skipped", report.Skipped), zap.Int("declared", report.Declared))
	}
	b.log.Info("contacts loaded", zap.Int("count", report.Loaded), zap.Int("next_id", b.store.NextID()))
	return report, nil
}

// Location returns where the persister keeps the contacts, or "" when it
// does not say.
func (b *Book) Location() string {
	if p, ok := b.persister.(interface{ Path() string }); ok {
		return p.Path()
	}
	return ""
}

// Close releases the persister.
func (b *Book) Close() error {
	if b.persister == nil {
		return nil
	}
	return b.persister.Close()
}

// IsMissing reports whether err means the backing file does not exist yet,
// which callers treat as a fresh, empty address book.
func IsMissing(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

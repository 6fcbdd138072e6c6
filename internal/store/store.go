// Package store holds the in-memory address book: an ordered, owned sequence
// of contacts and the id counter that numbers them.
package store

import (
	"math"
	"slices"

	"github.com/mesh-intelligence/addressbook/pkg/types"
)

// firstID is the id handed to the first contact of a fresh store.
const firstID = 1

// Store is an insertion-ordered contact collection. Ids are assigned from a
// counter that only moves forward, so a deleted contact's id is never reused.
// A Store is not safe for concurrent use.
type Store struct {
	contacts []types.Contact
	nextID   int
}

// New returns an empty store whose first contact will get id 1.
func New() *Store {
	return &Store{nextID: firstID}
}

// Create appends a contact built from the given fields and returns its id.
// Fields are stored as given; validation is the caller's job.
// Returns ErrResourceExhausted when the id space is used up.
func (s *Store) Create(name, phone, email string) (int, error) {
	if s.nextID == math.MaxInt {
		return 0, types.ErrResourceExhausted
	}
	id := s.nextID
	s.nextID++
	s.contacts = append(s.contacts, types.Contact{ID: id, Name: name, Phone: phone, Email: email})
	return id, nil
}

// Append adds already-identified contacts at the end, in order. Used when
// loading records; ids are kept as given and the counter is moved past the
// largest of them. A contact whose id is already present is dropped so ids
// stay unique; the number dropped is returned.
func (s *Store) Append(cs ...types.Contact) (dropped int) {
	for _, c := range cs {
		if s.index(c.ID) >= 0 {
			dropped++
			continue
		}
		s.contacts = append(s.contacts, c)
		if c.ID >= s.nextID && c.ID < math.MaxInt {
			s.nextID = c.ID + 1
		}
	}
	return dropped
}

// Get returns a copy of the contact with the given id.
func (s *Store) Get(id int) (types.Contact, bool) {
	i := s.index(id)
	if i < 0 {
		return types.Contact{}, false
	}
	return s.contacts[i], true
}

// FindAll returns copies of every contact whose field exactly equals query,
// in store order.
func (s *Store) FindAll(f types.Field, query string) []types.Contact {
	var out []types.Contact
	for _, c := range s.contacts {
		if c.Value(f) == query {
			out = append(out, c)
		}
	}
	return out
}

// Update replaces the mutable fields of the contact with the given id.
// Returns ErrNotFound if there is no such contact.
func (s *Store) Update(id int, name, phone, email string) error {
	i := s.index(id)
	if i < 0 {
		return types.ErrNotFound
	}
	c := &s.contacts[i]
	c.Name, c.Phone, c.Email = name, phone, email
	return nil
}

// Delete removes the contact with the given id, keeping the order of the
// others. It reports whether a contact was removed.
func (s *Store) Delete(id int) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.contacts = slices.Delete(s.contacts, i, i+1)
	return true
}

// Len returns the number of contacts.
func (s *Store) Len() int {
	return len(s.contacts)
}

// All returns an ordered snapshot of every contact.
func (s *Store) All() []types.Contact {
	return slices.Clone(s.contacts)
}

// NextID returns the id the next Create will assign.
func (s *Store) NextID() int {
	return s.nextID
}

// SetNextID moves the id counter forward to n. Values at or below the
// current counter are ignored.
func (s *Store) SetNextID(n int) {
	if n > s.nextID {
		s.nextID = n
	}
}

func (s *Store) index(id int) int {
	return slices.IndexFunc(s.contacts, func(c types.Contact) bool { return c.ID == id })
}

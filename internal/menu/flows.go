package menu

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/addressbook/internal/book"
	"github.com/mesh-intelligence/addressbook/internal/retry"
	"github.com/mesh-intelligence/addressbook/internal/validate"
	"github.com/mesh-intelligence/addressbook/pkg/types"
)

// Search criteria, in menu order. The first three match types.Field.
const (
	searchCancel = 4
)

// Edit menu entries. The first three match types.Field.
const (
	editSave   = 4
	editCancel = 5
)

// collectField prompts for f until the value passes validation or the retry
// controller cancels. except is the id of the contact being edited (0 when
// creating). ok is false when the user cancelled.
func (m *Menu) collectField(f types.Field, except int) (value string, ok bool, err error) {
	ctrl := m.newController()
	st, err := ctrl.Run(func() (bool, error) {
		line, err := m.readLine(fmt.Sprintf("Enter %s: ", f))
		if err != nil {
			return false, err
		}
		if st := m.book.Check(f, line, except); st != validate.Valid {
			m.warn(fmt.Sprintf("Invalid %s: %s.", f, st))
			return false, nil
		}
		value = line
		return true, nil
	})
	if err != nil {
		return "", false, err
	}
	return value, st == retry.Succeeded, nil
}

func (m *Menu) create() error {
	m.println(m.style.Title.Render("CREATE CONTACT"))

	var values [3]string
	for i, f := range types.Fields {
		v, ok, err := m.collectField(f, 0)
		if err != nil {
			return err
		}
		if !ok {
			m.warn("Contact creation cancelled.")
			return nil
		}
		values[i] = v
	}

	c, err := m.book.Create(values[0], values[1], values[2])
	if err != nil {
		m.log.Error("create contact", zap.Error(err))
		m.warn(fmt.Sprintf("Could not create contact: %v", err))
		return nil
	}
	m.info(fmt.Sprintf("Contact %q created with id %d.", c.Name, c.ID))
	return nil
}

// search runs the search dialogue and returns the single contact the user
// settled on. ok is false when the book is empty or the user cancelled.
func (m *Menu) search() (found types.Contact, ok bool, err error) {
	if m.book.Len() == 0 {
		m.warn("The address book is empty.")
		return types.Contact{}, false, nil
	}

	ctrl := m.newController()
	st, err := ctrl.Run(func() (bool, error) {
		m.println("Search by:")
		for _, f := range types.Fields {
			m.printf("  %d. %s\n", int(f), strings.ToUpper(f.String()[:1])+f.String()[1:])
		}
		m.printf("  %d. Cancel\n", searchCancel)

		choice, err := m.readInt("How would you like to search? ")
		if err != nil {
			return false, err
		}
		if choice == searchCancel {
			return false, retry.ErrCancelled
		}
		if choice < int(types.FieldName) || choice > int(types.FieldEmail) {
			m.warn("That is not a search option.")
			return false, nil
		}
		f := types.Field(choice)

		query, err := m.readLine(fmt.Sprintf("Enter %s to search for: ", f))
		if err != nil {
			return false, err
		}
		matches := m.book.Search(f, query)

		switch len(matches) {
		case 0:
			m.warn(fmt.Sprintf("No contact with %s %q.", f, query))
			return false, nil
		case 1:
			found = matches[0]
			return true, nil
		}

		m.info(fmt.Sprintf("Found %d contacts:", len(matches)))
		m.println(m.style.Table(matches, true))
		sel, err := m.readInt("Which one? ")
		if err != nil {
			return false, err
		}
		if sel < 1 || sel > len(matches) {
			m.warn("That is not one of the listed contacts.")
			return false, nil
		}
		found = matches[sel-1]
		return true, nil
	})
	if err != nil {
		return types.Contact{}, false, err
	}
	if st != retry.Succeeded {
		m.warn("Search cancelled.")
		return types.Contact{}, false, nil
	}
	return found, true, nil
}

func (m *Menu) searchAndShow() error {
	m.println(m.style.Title.Render("SEARCH CONTACT"))
	c, ok, err := m.search()
	if err != nil || !ok {
		return err
	}
	m.println(m.style.Table([]types.Contact{c}, false))
	return nil
}

func (m *Menu) edit() error {
	m.println(m.style.Title.Render("EDIT CONTACT"))
	target, ok, err := m.search()
	if err != nil || !ok {
		return err
	}

	scratch := target
	for {
		m.println(m.style.Table([]types.Contact{scratch}, false))
		for _, f := range types.Fields {
			m.printf("  %d. Edit %s\n", int(f), f)
		}
		m.printf("  %d. Save changes\n  %d. Cancel\n", editSave, editCancel)

		choice, err := m.readInt("What would you like to change? ")
		if err != nil {
			return err
		}

		switch choice {
		case int(types.FieldName), int(types.FieldPhone), int(types.FieldEmail):
			f := types.Field(choice)
			v, ok, err := m.collectField(f, target.ID)
			if err != nil {
				return err
			}
			if !ok {
				m.warn("Edit cancelled, no changes saved.")
				return nil
			}
			scratch = scratch.With(f, v)
		case editSave:
			changes := diff(target, scratch)
			if len(changes) == 0 {
				m.info("No changes to save.")
				return nil
			}
			if _, err := m.book.Edit(target.ID, changes...); err != nil {
				m.warn(fmt.Sprintf("Could not save changes: %v", err))
				return nil
			}
			m.info(fmt.Sprintf("Contact %d updated.", target.ID))
			return nil
		case editCancel:
			m.warn("Edit cancelled, no changes saved.")
			return nil
		default:
			m.warn("Pick a number from the edit menu.")
		}
	}
}

// diff returns the changes that turn from into to.
func diff(from, to types.Contact) []book.Change {
	var changes []book.Change
	for _, f := range types.Fields {
		if from.Value(f) != to.Value(f) {
			changes = append(changes, book.Change{Field: f, Value: to.Value(f)})
		}
	}
	return changes
}

func (m *Menu) delete() error {
	m.println(m.style.Title.Render("DELETE CONTACT"))
	target, ok, err := m.search()
	if err != nil || !ok {
		return err
	}
	m.println(m.style.Table([]types.Contact{target}, false))

	ctrl := m.newController()
	st, err := ctrl.Run(func() (bool, error) {
		line, err := m.readLine("Delete this contact? (y/n): ")
		if err != nil {
			return false, err
		}
		answer := strings.TrimSpace(line)
		if answer == "" {
			m.warn("Please answer y or n.")
			return false, nil
		}
		switch answer[0] {
		case 'y', 'Y':
			return true, nil
		case 'n', 'N':
			return false, retry.ErrCancelled
		}
		m.warn("Please answer y or n.")
		return false, nil
	})
	if err != nil {
		return err
	}
	if st != retry.Succeeded {
		m.warn("Deletion cancelled.")
		return nil
	}

	if err := m.book.Delete(target.ID); err != nil {
		m.warn(fmt.Sprintf("Could not delete contact: %v", err))
		return nil
	}
	m.info(fmt.Sprintf("Contact %d deleted.", target.ID))
	return nil
}

func (m *Menu) list() {
	m.println(m.style.Title.Render("ALL CONTACTS"))
	contacts := m.book.List()
	if len(contacts) == 0 {
		m.warn("The address book is empty.")
		return
	}
	m.println(m.style.Table(contacts, false))
	m.printf("%d contact(s).\n", len(contacts))
}

func (m *Menu) save(ctx context.Context) {
	if err := m.book.Save(ctx); err != nil {
		m.warn(fmt.Sprintf("Could not save contacts: %v", err))
		return
	}
	m.info(fmt.Sprintf("Saved %d contact(s).", m.book.Len()))
}

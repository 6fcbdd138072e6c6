package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/addressbook/internal/book"
	"github.com/mesh-intelligence/addressbook/internal/render"
	"github.com/mesh-intelligence/addressbook/pkg/types"
)

// newBook opens the configured backend without loading it.
func (a *app) newBook() (*book.Book, error) {
	p, err := book.OpenPersister(a.cfg)
	if err != nil {
		return nil, err
	}
	return book.New(p, book.WithLogger(a.log)), nil
}

// loadBook opens the configured backend and loads it. A missing data file
// yields an empty book. On error nothing is left open.
func (a *app) loadBook(ctx context.Context) (*book.Book, error) {
	b, err := a.newBook()
	if err != nil {
		return nil, err
	}
	if _, err := b.Load(ctx); err != nil {
		if !book.IsMissing(err) {
			b.Close()
			return nil, err
		}
		a.log.Debug("no saved contacts yet")
	}
	return b, nil
}

// commit saves b and closes it.
func commit(ctx context.Context, b *book.Book) error {
	if err := b.Save(ctx); err != nil {
		b.Close()
		return err
	}
	return b.Close()
}

// printContacts writes contacts as JSON or as a table.
func (a *app) printContacts(cmd *cobra.Command, contacts []types.Contact) error {
	if a.jsonMode {
		if contacts == nil {
			contacts = []types.Contact{}
		}
		return writeJSON(cmd, contacts)
	}
	out := cmd.OutOrStdout()
	if len(contacts) == 0 {
		fmt.Fprintln(out, "No contacts.")
		return nil
	}
	fmt.Fprintln(out, render.New(out).Table(contacts, false))
	return nil
}

// printContact writes a single contact as JSON or as a one-row table.
func (a *app) printContact(cmd *cobra.Command, c types.Contact) error {
	if a.jsonMode {
		return writeJSON(cmd, c)
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, render.New(out).Table([]types.Contact{c}, false))
	return nil
}

func writeJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

// parseID reads a positive contact id argument.
func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, usageError(fmt.Errorf("invalid contact id %q", s))
	}
	return id, nil
}

// fieldFlags registers --name, --phone and --email on cmd.
func fieldFlags(cmd *cobra.Command, values map[types.Field]*string) {
	for _, f := range types.Fields {
		v := new(string)
		values[f] = v
		cmd.Flags().StringVar(v, f.String(), "", fmt.Sprintf("contact %s", f))
	}
}

// changedFields returns a Change for every field flag set on the command
// line, in field order.
func changedFields(cmd *cobra.Command, values map[types.Field]*string) []book.Change {
	var changes []book.Change
	for _, f := range types.Fields {
		if cmd.Flags().Changed(f.String()) {
			changes = append(changes, book.Change{Field: f, Value: *values[f]})
		}
	}
	return changes
}

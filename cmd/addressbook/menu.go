package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/addressbook/internal/book"
	"github.com/mesh-intelligence/addressbook/internal/menu"
	"github.com/mesh-intelligence/addressbook/pkg/types"
)

func newMenuCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Start the interactive menu (default)",
		Long: `Load the address book and show the numbered main menu. Changes are
written only when you choose "Save contacts".`,
		Args: wrapArgs(cobra.NoArgs),
		RunE: a.runMenu,
	}
}

// runMenu loads the book and runs an interactive session on the command's
// input and output. A data file that cannot be parsed is reported and the
// session starts empty.
func (a *app) runMenu(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	b, err := a.newBook()
	if err != nil {
		return err
	}
	defer b.Close()

	report, err := b.Load(ctx)
	switch {
	case err == nil:
		fmt.Fprintf(out, "Loaded %d contact(s).\n", report.Loaded)
		if report.Skipped > 0 {
			fmt.Fprintf(out, "Skipped %d malformed record(s).\n", report.Skipped)
		}
	case book.IsMissing(err):
		fmt.Fprintln(out, "No saved contacts, starting with an empty address book.")
	case errors.Is(err, types.ErrMalformedHeader):
		fmt.Fprintf(out, "Could not read saved contacts: %v\n", err)
	default:
		return err
	}

	m := menu.New(b, cmd.InOrStdin(), out,
		menu.WithMaxAttempts(a.cfg.MaxAttempts),
		menu.WithLogger(a.log))
	return m.Run(ctx)
}

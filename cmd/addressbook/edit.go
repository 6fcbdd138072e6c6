package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/addressbook/pkg/types"
)

func newEditCmd(a *app) *cobra.Command {
	values := map[types.Field]*string{}
	cmd := &cobra.Command{
		Use:   "edit <id> [--name NAME] [--phone PHONE] [--email EMAIL]",
		Short: "Change fields of a contact and save",
		Long: `Apply every given field to the contact with the given id. All changes are
validated first; if any fails nothing is changed.`,
		Args: wrapArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			changes := changedFields(cmd, values)
			if len(changes) == 0 {
				return usageError(errors.New("give at least one of --name, --phone, --email"))
			}

			ctx := cmd.Context()
			b, err := a.loadBook(ctx)
			if err != nil {
				return err
			}
			c, err := b.Edit(id, changes...)
			if err != nil {
				b.Close()
				return err
			}
			if err := commit(ctx, b); err != nil {
				return err
			}
			return a.printContact(cmd, c)
		},
	}
	fieldFlags(cmd, values)
	return cmd
}

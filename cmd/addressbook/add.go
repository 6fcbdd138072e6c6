package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/addressbook/pkg/types"
)

func newAddCmd(a *app) *cobra.Command {
	values := map[types.Field]*string{}
	cmd := &cobra.Command{
		Use:   "add --name NAME --phone PHONE --email EMAIL",
		Short: "Create a contact and save the address book",
		Long: `Validate the three fields, append the contact with the next free id and
save. Phones are exactly 10 digits; emails are local@domain.tld and must be
unique, as must phones.`,
		Example: `  addressbook add --name "Ada Lovelace" --phone 0123456789 --email ada@engine.org`,
		Args:    wrapArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			b, err := a.loadBook(ctx)
			if err != nil {
				return err
			}

			c, err := b.Create(*values[types.FieldName], *values[types.FieldPhone], *values[types.FieldEmail])
			if err != nil {
				b.Close()
				return err
			}
			if err := commit(ctx, b); err != nil {
				return err
			}

			if a.jsonMode {
				return writeJSON(cmd, c)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created contact %d.\n", c.ID)
			return nil
		},
	}
	fieldFlags(cmd, values)
	return cmd
}

package main

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/addressbook/pkg/types"
)

func newSearchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "search <name|phone|email> <query>",
		Short: "Print contacts whose field equals the query exactly",
		Example: `  addressbook search name "Ada Lovelace"
  addressbook search phone 0123456789 --json`,
		Args: wrapArgs(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := types.ParseField(args[0])
			if err != nil {
				return err
			}
			b, err := a.loadBook(cmd.Context())
			if err != nil {
				return err
			}
			defer b.Close()
			return a.printContacts(cmd, b.Search(f, args[1]))
		},
	}
}

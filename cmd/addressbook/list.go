package main

import (
	"github.com/spf13/cobra"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print every contact in store order",
		Args:  wrapArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.loadBook(cmd.Context())
			if err != nil {
				return err
			}
			defer b.Close()
			return a.printContacts(cmd, b.List())
		},
	}
}

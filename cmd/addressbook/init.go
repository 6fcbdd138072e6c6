package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/addressbook/internal/book"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the configuration and data directories",
		Long: `Write a default config.yaml if none exists, create the data directory and
an empty address book in it. Running init again changes nothing.`,
		Args: wrapArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := os.MkdirAll(a.cfg.DataDir, 0o755); err != nil {
				return fmt.Errorf("create data dir: %w", err)
			}

			ctx := cmd.Context()
			b, err := a.newBook()
			if err != nil {
				return err
			}
			if _, err := b.Load(ctx); err != nil {
				// Only a missing file is replaced; anything else is left for
				// the user to inspect.
				if !book.IsMissing(err) {
					b.Close()
					return err
				}
				if err := b.Save(ctx); err != nil {
					b.Close()
					return err
				}
			}
			location := b.Location()
			if err := b.Close(); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Address book initialized.")
			fmt.Fprintf(out, "  config:  %s\n", a.configDir)
			fmt.Fprintf(out, "  data:    %s\n", a.cfg.DataDir)
			fmt.Fprintf(out, "  backend: %s\n", a.cfg.Backend)
			fmt.Fprintf(out, "  file:    %s\n", location)
			return nil
		},
	}
}

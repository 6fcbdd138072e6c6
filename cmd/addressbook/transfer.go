package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/addressbook/internal/codec"
)

// Export formats.
const (
	formatJSONL = "jsonl"
	formatText  = "text"
)

func newExportCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Write every contact to a file or stdout",
		Long: `Write the address book as JSON lines (one contact per line) or in the
count-header text format. Without a file the output goes to stdout. Files
are replaced atomically.`,
		Example: `  addressbook export backup.jsonl
  addressbook export --format text > contacts.csv`,
		Args: wrapArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != formatJSONL && format != formatText {
				return usageError(fmt.Errorf("unknown format %q (valid: %s, %s)", format, formatJSONL, formatText))
			}
			b, err := a.loadBook(cmd.Context())
			if err != nil {
				return err
			}
			defer b.Close()
			contacts := b.List()

			if len(args) == 0 {
				if format == formatText {
					return codec.Encode(cmd.OutOrStdout(), contacts)
				}
				return codec.WriteJSONL(cmd.OutOrStdout(), contacts)
			}

			path := args[0]
			if format == formatText {
				err = codec.SaveFile(path, contacts)
			} else {
				err = codec.SaveJSONL(path, contacts)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d contact(s) to %s.\n", len(contacts), path)
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", formatJSONL, "output format: jsonl or text")
	return cmd
}

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.jsonl>",
		Short: "Add contacts from a JSON lines file and save",
		Long: `Read one JSON contact per line and add each as a new contact with the next
free id. Entries that fail validation or duplicate an existing phone or
email are reported and left out; malformed lines are skipped.`,
		Args: wrapArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := codec.LoadJSONL(args[0])
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			b, err := a.loadBook(ctx)
			if err != nil {
				return err
			}
			report := b.Import(res.Contacts)
			if len(report.Added) > 0 {
				if err := commit(ctx, b); err != nil {
					return err
				}
			} else {
				b.Close()
			}

			errOut := cmd.ErrOrStderr()
			for _, e := range res.Errors {
				fmt.Fprintf(errOut, "Skipped %v\n", e)
			}
			for _, e := range report.Rejected {
				fmt.Fprintf(errOut, "Rejected %v\n", e)
			}
			if a.jsonMode {
				return a.printContacts(cmd, report.Added)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d contact(s), rejected %d, skipped %d malformed line(s).\n",
				len(report.Added), len(report.Rejected), res.Skipped)
			return nil
		},
	}
}

// Package main provides the addressbook CLI: an interactive menu over a
// persistent contact list, plus one-shot subcommands for scripting.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(exitCode(err))
	}
}

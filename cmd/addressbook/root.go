package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/addressbook/internal/logging"
	"github.com/mesh-intelligence/addressbook/internal/paths"
	"github.com/mesh-intelligence/addressbook/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// errUsage marks malformed command lines so they exit as user errors.
var errUsage = errors.New("invalid usage")

func usageError(err error) error {
	return fmt.Errorf("%w: %w", errUsage, err)
}

// exitCode maps an error returned by a command to the process exit code.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitSuccess
	case errors.Is(err, errUsage), types.Classify(err) == types.ClassUser:
		return exitUserError
	default:
		return exitSysError
	}
}

// app holds global flag values and the state PersistentPreRunE builds for
// the subcommands.
type app struct {
	configDir string
	dataDir   string
	jsonMode  bool
	verbose   bool

	cfg types.Config
	log *zap.Logger
}

// newRootCmd creates the top-level "addressbook" command with global flags
// and all subcommands registered. Running it without a subcommand starts the
// interactive menu.
func newRootCmd() *cobra.Command {
	a := &app{log: zap.NewNop()}

	root := &cobra.Command{
		Use:   "addressbook",
		Short: "Keep a small address book of names, phone numbers and emails",
		Long: `addressbook stores contacts in a plain text file (or a SQLite database)
and lets you create, search, edit and delete them from an interactive menu
or from one-shot subcommands.`,
		Args:              wrapArgs(cobra.NoArgs),
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.log.Sync()
		},
		RunE: a.runMenu,
	}
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageError(err)
	})

	root.PersistentFlags().StringVar(&a.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	root.PersistentFlags().StringVar(&a.dataDir, "data-dir", "", "data directory (default: platform data dir)")
	root.PersistentFlags().BoolVar(&a.jsonMode, "json", false, "output in JSON format")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log at debug level")

	root.AddCommand(
		newMenuCmd(a),
		newAddCmd(a),
		newListCmd(a),
		newSearchCmd(a),
		newEditCmd(a),
		newDeleteCmd(a),
		newExportCmd(a),
		newImportCmd(a),
		newInitCmd(a),
		newVersionCmd(),
	)
	return root
}

// setup resolves directories, loads config.yaml and builds the logger.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	if cmd.Name() == "version" {
		return nil
	}

	configDir, err := paths.ResolveConfigDir(a.configDir)
	if err != nil {
		return fmt.Errorf("resolve config dir: %w", err)
	}
	if cmd.Name() == "init" && a.dataDir != "" {
		// init records an explicit data dir in the config it creates.
		dataDir, err := paths.Abs(a.dataDir)
		if err != nil {
			return fmt.Errorf("resolve data dir: %w", err)
		}
		if err := ensureDefaultConfigFile(configDir, dataDir); err != nil {
			return fmt.Errorf("ensure default config: %w", err)
		}
	}
	cfg, err := loadConfig(configDir)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg.DataDir, err = paths.ResolveDataDir(a.dataDir, cfg.DataDir)
	if err != nil {
		return fmt.Errorf("resolve data dir: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger, err := logging.New(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile, Verbose: a.verbose})
	if err != nil {
		return err
	}
	a.configDir = configDir
	a.cfg = cfg
	a.log = logger.With(zap.String("command", cmd.Name()))
	a.log.Debug("configuration loaded",
		zap.String("config_dir", configDir),
		zap.String("data_dir", cfg.DataDir),
		zap.String("backend", cfg.Backend))
	return nil
}

// wrapArgs turns positional argument errors into usage errors.
func wrapArgs(fn cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := fn(cmd, args); err != nil {
			return usageError(err)
		}
		return nil
	}
}

package types

import "errors"

// Config holds backend selection and session parameters for the address book.
type Config struct {
	Backend     string `json:"backend" yaml:"backend" mapstructure:"backend"`
	DataDir     string `json:"data_dir" yaml:"data_dir" mapstructure:"data_dir"`
	File        string `json:"file" yaml:"file" mapstructure:"file"`
	MaxAttempts int    `json:"max_attempts" yaml:"max_attempts" mapstructure:"max_attempts"`
	LogLevel    string `json:"log_level" yaml:"log_level" mapstructure:"log_level"`
	LogFile     string `json:"log_file,omitempty" yaml:"log_file,omitempty" mapstructure:"log_file"`
}

// Supported backend names.
const (
	BackendText   = "text"
	BackendSQLite = "sqlite"
)

// Defaults applied when the config file omits a key.
const (
	DefaultBackend     = BackendText
	DefaultFile        = "contacts.csv"
	DefaultMaxAttempts = 4
	DefaultLogLevel    = "warn"
)

// Config validation errors.
var (
	ErrBackendEmpty       = errors.New("backend must not be empty")
	ErrBackendUnknown     = errors.New("unknown backend")
	ErrMaxAttemptsInvalid = errors.New("max attempts must be positive")
)

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]bool{
	BackendText:   true,
	BackendSQLite: true,
}

// DefaultConfig returns a Config populated with the package defaults and an
// empty DataDir.
func DefaultConfig() Config {
	return Config{
		Backend:     DefaultBackend,
		File:        DefaultFile,
		MaxAttempts: DefaultMaxAttempts,
		LogLevel:    DefaultLogLevel,
	}
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	if c.MaxAttempts <= 0 {
		return ErrMaxAttemptsInvalid
	}
	return nil
}

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/addressbook/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	envPrefix = "ADDRESSBOOK"

	cfgKeyBackend     = "backend"
	cfgKeyDataDir     = "data_dir"
	cfgKeyFile        = "file"
	cfgKeyMaxAttempts = "max_attempts"
	cfgKeyLogLevel    = "log_level"
	cfgKeyLogFile     = "log_file"
)

// configHeader precedes the generated config.yaml.
const configHeader = `# addressbook configuration
# backend: text or sqlite
# data_dir: overridden by --data-dir; ADDRESSBOOK_DATA_DIR applies when unset
`

// loadConfig reads config.yaml from configDir using Viper, creating the
// directory and a default file on first run. Keys other than data_dir may be
// overridden with ADDRESSBOOK_<KEY> environment variables.
func loadConfig(configDir string) (types.Config, error) {
	if err := ensureDefaultConfigFile(configDir, ""); err != nil {
		return types.Config{}, fmt.Errorf("ensure default config: %w", err)
	}

	def := types.DefaultConfig()
	v := viper.New()
	v.SetDefault(cfgKeyBackend, def.Backend)
	v.SetDefault(cfgKeyDataDir, "")
	v.SetDefault(cfgKeyFile, def.File)
	v.SetDefault(cfgKeyMaxAttempts, def.MaxAttempts)
	v.SetDefault(cfgKeyLogLevel, def.LogLevel)
	v.SetDefault(cfgKeyLogFile, "")
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	// data_dir has its own precedence in internal/paths.
	v.SetEnvPrefix(envPrefix)
	for _, key := range []string{cfgKeyBackend, cfgKeyFile, cfgKeyMaxAttempts, cfgKeyLogLevel, cfgKeyLogFile} {
		if err := v.BindEnv(key); err != nil {
			return types.Config{}, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return types.Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// ensureDefaultConfigFile creates configDir and writes a default config.yaml
// into it unless one exists. dataDir is recorded when not empty.
func ensureDefaultConfigFile(configDir, dataDir string) error {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	path := filepath.Join(configDir, configFileExt)
	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	cfg := types.DefaultConfig()
	cfg.DataDir = dataDir
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, append([]byte(configHeader), data...), 0o644)
}

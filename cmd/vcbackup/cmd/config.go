// Copyright © 2018 One Concern

package cmd

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/oneconcern/vcbackup/pkg/naming"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gopkg.in/yaml.v2"
)

const (
	keyLogLevel          = "loglevel"
	keyBackupDirectories = "backup-directories"
	keyVersionControl    = "version-control"
	keyKeptNewVersions   = "kept-new-versions"
	keyKeptOldVersions   = "kept-old-versions"
	keyDeleteOldVersions = "delete-old-versions"
	keyDiffContext       = "diff-context"
)

// CLIConfig describes the CLI configuration.
type CLIConfig struct {
	LogLevel          string        `json:"loglevel" yaml:"loglevel" mapstructure:"loglevel"`
	BackupDirectories []naming.Rule `json:"backup-directories,omitempty" yaml:"backup-directories,omitempty" mapstructure:"backup-directories"`
	VersionControl    string        `json:"version-control" yaml:"version-control" mapstructure:"version-control"`
	KeptNewVersions   int           `json:"kept-new-versions" yaml:"kept-new-versions" mapstructure:"kept-new-versions"`
	KeptOldVersions   int           `json:"kept-old-versions" yaml:"kept-old-versions" mapstructure:"kept-old-versions"`
	DeleteOldVersions bool          `json:"delete-old-versions" yaml:"delete-old-versions" mapstructure:"delete-old-versions"`
	DiffContext       int           `json:"diff-context" yaml:"diff-context" mapstructure:"diff-context"`

	onceLogger sync.Once
	logger     *zap.Logger
}

func newConfig() (*CLIConfig, error) {
	var config CLIConfig
	err := viper.Unmarshal(&config)
	if err != nil {
		return nil, err
	}
	return &config, nil
}

// MarshalConfig renders the configuration as a yaml document
func (c *CLIConfig) MarshalConfig() ([]byte, error) {
	return yaml.Marshal(c)
}

// configFileLocation is where the config file is written by "config set".
// With expectExists, the config file which was read is preferred.
func configFileLocation(expectExists bool) string {
	if env := os.Getenv(envConfigLocation); env != "" {
		return env
	}
	if expectExists && viper.ConfigFileUsed() != "" {
		return viper.ConfigFileUsed()
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return configName + ".yaml"
	}
	return filepath.Join(home, "."+configName, configName+".yaml")
}

// configCmd represents the config related commands
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Commands to manage the configuration",
	Long: `Commands to manage the vcbackup configuration.

The configuration is read from a vcbackup.yaml file, found in the current directory,
in $HOME/.vcbackup or in /etc/vcbackup, or at the location set by the ` + envConfigLocation + ` environment variable.

Every setting may be overridden by an environment variable (e.g. VCBACKUP_VERSION_CONTROL=always)
or by the corresponding flag.

Example of a configuration relocating backups:

	version-control: always
	kept-new-versions: 4
	backup-directories:
	  - pattern: ^/home/me/projects/
	    directory: .backups
	  - pattern: .
	    directory: /var/backups/me
`,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

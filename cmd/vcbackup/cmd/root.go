// Copyright © 2018 One Concern

package cmd

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/oneconcern/vcbackup/pkg/diff"
	"github.com/oneconcern/vcbackup/pkg/dlogger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	envPrefix         = "VCBACKUP"
	envConfigLocation = envPrefix + "_CONFIG"
	configName        = "vcbackup"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "vcbackup",
	Short: "vcbackup browses the revision history kept in editor backup files",
	Long: `vcbackup browses the revision history kept in editor backup files.

Editors keep the previous content of a file when saving it, either in a single
unnumbered backup (notes.txt~) or in numbered backups (notes.txt.~1~, notes.txt.~2~...).
vcbackup treats these files as the history of the file they back up: it lists
revisions, compares them, restores them, and renames or deletes a file along with
its whole history.

Backups may be relocated in other directories, see "vcbackup config".
`,
	SilenceUsage: true,
}

var config *CLIConfig

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		osExit(1)
	}
}

func init() {
	log.SetFlags(0)
	cobra.OnInitialize(initConfig)

	addLogLevel(rootCmd)
	addVersionControlFlag(rootCmd)
	addKeptNewVersionsFlag(rootCmd)
	addKeptOldVersionsFlag(rootCmd)
	addDeleteOldVersionsFlag(rootCmd)
	addBackupDirFlag(rootCmd)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	viper.SetDefault(keyLogLevel, dlogger.LogLevelWarn)
	viper.SetDefault(keyVersionControl, "existing")
	viper.SetDefault(keyKeptNewVersions, 2)
	viper.SetDefault(keyKeptOldVersions, 2)
	viper.SetDefault(keyDeleteOldVersions, false)
	viper.SetDefault(keyDiffContext, diff.DefaultContext)
	viper.SetDefault(keyBackupDirectories, nil)

	// flags override env vars and the config file
	for _, key := range []string{keyLogLevel, keyVersionControl, keyKeptNewVersions, keyKeptOldVersions, keyDeleteOldVersions} {
		_ = viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(key))
	}

	viper.SetFs(appFs)
	if os.Getenv(envConfigLocation) != "" {
		viper.SetConfigFile(os.Getenv(envConfigLocation))
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/." + configName)
		viper.AddConfigPath("/etc/" + configName)
		viper.SetConfigName(configName)
	}

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		infoLogger.Println("Using config file:", viper.ConfigFileUsed())
	}

	var err error
	config, err = newConfig()
	if err != nil {
		wrapFatalln("invalid configuration", err)
		return
	}
	vcFlags.setDefaultsFromConfig(config)
}

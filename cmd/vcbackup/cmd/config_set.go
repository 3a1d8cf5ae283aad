// Copyright © 2018 One Concern

package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var configSet = &cobra.Command{
	Aliases: []string{"create"},
	Use:     "set",
	Short:   "Create a local config file",
	Long: `Creates a local config file holding the settings which do not change across runs,
like the backup directories or the version control policy.

The file is written with the configuration in use, modified by the flags of this invocation.

By default, this configuration file is placed in $HOME/.vcbackup/vcbackup.yaml.

Use the ` + envConfigLocation + ` environment variable to change this default target.
`,
	Example: `# Always make numbered backups
% vcbackup config set --version-control always
config file created in /home/me/.vcbackup/vcbackup.yaml

# Keep backups in a shared directory
% vcbackup config set --backup-dir '.=/var/backups/me'
config file created in /home/me/.vcbackup/vcbackup.yaml
`,
	Run: func(cmd *cobra.Command, args []string) {
		file := configFileLocation(true)

		if ext := filepath.Ext(file); ext != ".yaml" {
			infoLogger.Printf("warning: the generated config file will contain a yaml document, but the file extension is %q", ext)
		}
		o, err := config.MarshalConfig()
		if err != nil {
			wrapFatalln("could not serialize config to yaml", err)
			return
		}

		err = appFs.MkdirAll(filepath.Dir(file), 0700)
		if err != nil && !os.IsExist(err) {
			wrapFatalln("could not create directory to hold config "+filepath.Dir(file), err)
			return
		}

		err = afero.WriteFile(appFs, file, o, 0600)
		if err != nil {
			wrapFatalln("error writing config file "+file, err)
			return
		}

		infoLogger.Printf("config file created in %s", file)
	},
}

func init() {
	configCmd.AddCommand(configSet)
}

// Copyright © 2018 One Concern

package cmd

import (
	"github.com/spf13/cobra"
)

var configShow = &cobra.Command{
	Use:     "show",
	Aliases: []string{"dump"},
	Short:   "Print the configuration in use",
	Long:    `Print the configuration used by the invocation of the vcbackup command, as a yaml document.`,
	Example: `% vcbackup config show
loglevel: warn
version-control: existing
kept-new-versions: 2
kept-old-versions: 2
delete-old-versions: false
diff-context: 3`,
	Run: func(cmd *cobra.Command, args []string) {
		o, err := config.MarshalConfig()
		if err != nil {
			wrapFatalln("could not serialize config to yaml", err)
			return
		}
		printf(cmd.OutOrStdout(), "%s", o)
	},
}

func init() {
	configCmd.AddCommand(configShow)
}

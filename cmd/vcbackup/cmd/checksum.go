// Copyright © 2018 One Concern

package cmd

import (
	"github.com/spf13/cobra"
)

var checksumCmd = &cobra.Command{
	Use:   "checksum FILE",
	Short: "Create a blake2b checksum for a revision of a file",
	Long:  `Print the blake2b tree digest of a revision of a file, followed by the path of the revision.`,
	Example: `% vcbackup checksum notes.txt --rev 1
9c3b...e1f0  /home/me/notes.txt.~1~`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		h, tracked, ok := historyFor(args)
		if !ok {
			return
		}

		path, err := h.Resolve(tracked, vcFlags.rev.tag)
		if err != nil {
			wrapFatalln("checksum", err)
			return
		}
		sum, err := h.Checksum(tracked, vcFlags.rev.tag)
		if err != nil {
			wrapFatalln("checksum", err)
			return
		}
		printf(cmd.OutOrStdout(), "%x  %s\n", sum, path)
	},
}

func init() {
	addRevFlag(checksumCmd, `The revision to checksum: "current", "previous" or a version number`)
	rootCmd.AddCommand(checksumCmd)
}

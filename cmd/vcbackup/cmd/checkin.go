// Copyright © 2018 One Concern

package cmd

import (
	"github.com/spf13/cobra"
)

var checkinCmd = &cobra.Command{
	Use:     "checkin FILE",
	Aliases: []string{"ci"},
	Short:   "Back up the current content of a file",
	Long: `Make a backup of the current content of a file, the way an editor does when saving.

Whether the backup is numbered follows the version-control setting:
  - existing: numbered when the file already has numbered backups, unnumbered otherwise
  - always: numbered
  - never: unnumbered, replacing the previous unnumbered backup

With delete-old-versions, numbered backups in excess of kept-new-versions and kept-old-versions
are removed, keeping the oldest and the newest ones.`,
	Example: `% vcbackup checkin notes.txt --version-control always
3	/home/me/notes.txt.~3~`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		h, tracked, ok := historyFor(args)
		if !ok {
			return
		}

		tag, err := h.Checkin(tracked)
		if err != nil {
			wrapFatalln("checkin", err)
			return
		}
		path, err := h.Resolve(tracked, tag)
		if err != nil {
			wrapFatalln("checkin", err)
			return
		}
		printf(cmd.OutOrStdout(), "%s\t%s\n", tag, path)
	},
}

func init() {
	rootCmd.AddCommand(checkinCmd)
}

// Copyright © 2018 One Concern

package cmd

import (
	"github.com/spf13/cobra"
)

var restoreCmd = &cobra.Command{
	Use:     "restore FILE",
	Aliases: []string{"checkout"},
	Short:   "Restore a revision of a file",
	Long: `Replace the content of a file with one of its revisions.

The current content is lost unless --keep-current is set, in which case it is checked in first.
Without numbered backups, checking in replaces the unnumbered backup: the revision to
restore is read before that happens.`,
	Example: `% vcbackup restore notes.txt --rev 2 --keep-current
notes.txt restored at revision 2`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		h, tracked, ok := historyFor(args)
		if !ok {
			return
		}

		if err := h.Restore(tracked, vcFlags.rev.tag, vcFlags.restore.keepCurrent); err != nil {
			wrapFatalln("restore", err)
			return
		}
		infoLogger.Printf("%s restored at revision %s", tracked, vcFlags.rev.tag)
	},
}

func init() {
	rev := addRevFlag(restoreCmd, `The revision to restore: "previous" or a version number`)
	_ = restoreCmd.MarkFlagRequired(rev)
	addKeepCurrentFlag(restoreCmd)
	rootCmd.AddCommand(restoreCmd)
}

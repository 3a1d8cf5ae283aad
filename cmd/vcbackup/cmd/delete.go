// Copyright © 2018 One Concern

package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

func userConfirm(in io.Reader, action, tracked string) bool {
	infoLogger.Printf("Are you sure you want to %s %q and all its backups [y|n]", action, tracked)
	var answer string
	_, _ = fmt.Fscanln(in, &answer)
	yesno := strings.ToLower(answer)
	return yesno == "y" || yesno == "yes"
}

var deleteCmd = &cobra.Command{
	Use:     "delete FILE",
	Aliases: []string{"rm"},
	Short:   "Delete a file and all its backups",
	Long: `Delete all the backups of a file, then the file itself.

Every backup is attempted. When some backup cannot be deleted, it is reported
and the file is kept: run the command again to finish the job.`,
	Example: `% vcbackup delete notes.txt --force`,
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		h, tracked, ok := historyFor(args)
		if !ok {
			return
		}

		if !vcFlags.delete.forceYes && !userConfirm(cmd.InOrStdin(), "delete", tracked) {
			wrapFatalln("user aborted", nil)
			return
		}

		if err := h.DeleteAll(tracked); err != nil {
			reportPartial(err)
			wrapFatalln("delete", err)
			return
		}
	},
}

func init() {
	addForceYesFlag(deleteCmd)
	rootCmd.AddCommand(deleteCmd)
}

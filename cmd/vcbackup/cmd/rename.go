// Copyright © 2018 One Concern

package cmd

import (
	"github.com/oneconcern/vcbackup/pkg/errors"
	"github.com/oneconcern/vcbackup/pkg/model"
	"github.com/spf13/cobra"
)

// reportPartial lists the items left behind by a change-set operation
func reportPartial(err error) {
	var partial *model.PartialOperationFailure
	if !errors.As(err, &partial) {
		return
	}
	for _, item := range partial.Failed {
		infoLogger.Printf("not processed: %s", item)
	}
}

var renameCmd = &cobra.Command{
	Use:     "rename FILE NEW",
	Aliases: []string{"mv"},
	Short:   "Rename a file and all its backups",
	Long: `Rename a file, then move all its backups along so that they keep their revisions.

The target must not exist. When the file itself cannot be renamed, nothing changes.
Backups which cannot be moved are reported and stay under the old name: there is no rollback.`,
	Example: `% vcbackup rename notes.txt archive/notes-2021.txt`,
	Args:    cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		h, tracked, ok := historyFor(args)
		if !ok {
			return
		}
		target, err := trackedArg(h, args[1])
		if err != nil {
			wrapFatalln("invalid file "+args[1], err)
			return
		}

		if err := h.RenameAll(tracked, target); err != nil {
			reportPartial(err)
			wrapFatalln("rename", err)
			return
		}
	},
}

func init() {
	rootCmd.AddCommand(renameCmd)
}

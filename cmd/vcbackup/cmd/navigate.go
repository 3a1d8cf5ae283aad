// Copyright © 2018 One Concern

package cmd

import (
	"github.com/oneconcern/vcbackup/pkg/core"
	"github.com/oneconcern/vcbackup/pkg/model"
	"github.com/spf13/cobra"
)

// codes returned when navigation goes past the end of the history
const exitNoRevision = 3

type stepFunc func(h *core.History, tracked string, tag model.Tag) (model.Tag, bool, error)

func navigate(cmd *cobra.Command, args []string, direction string, step stepFunc) {
	h, tracked, ok := historyFor(args)
	if !ok {
		return
	}

	// a backup given as argument is the starting point, unless --rev says otherwise
	from := vcFlags.rev.tag
	if !cmd.Flags().Changed("rev") {
		tag, err := h.CurrentTagOf(args[0])
		if err != nil {
			wrapFatalln(direction, err)
			return
		}
		from = tag
	}

	to, found, err := step(h, tracked, from)
	if err != nil {
		wrapFatalln(direction, err)
		return
	}
	if !found {
		wrapFatalWithCodef(exitNoRevision, "no %s revision for %s at revision %s", direction, tracked, from)
		return
	}

	path, err := h.Resolve(tracked, to)
	if err != nil {
		wrapFatalln(direction, err)
		return
	}
	printf(cmd.OutOrStdout(), "%s\t%s\n", to, path)
}

var prevCmd = &cobra.Command{
	Use:     "prev FILE",
	Aliases: []string{"previous"},
	Short:   "Find the revision before some revision",
	Long: `Find the revision right before some revision of a file, and print its tag and path.

The starting point is the file given as argument: a backup file stands for its own revision.
It may be set with --rev instead. Before the current revision comes the most recent backup.

Exits with code 3 when there is no older revision.`,
	Example: `% vcbackup prev notes.txt
previous	/home/me/notes.txt~

% vcbackup prev notes.txt~
2	/home/me/notes.txt.~2~`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		navigate(cmd, args, "previous", (*core.History).Previous)
	},
}

var nextCmd = &cobra.Command{
	Use:   "next FILE",
	Short: "Find the revision after some revision",
	Long: `Find the revision right after some revision of a file, and print its tag and path.

The starting point is the file given as argument: a backup file stands for its own revision.
It may be set with --rev instead. After the most recent backup comes the current revision.

Exits with code 3 when there is no newer revision.`,
	Example: `% vcbackup next notes.txt.~2~
previous	/home/me/notes.txt~`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		navigate(cmd, args, "next", (*core.History).Next)
	},
}

func init() {
	addRevFlag(prevCmd, `The revision to start from: "current", "previous" or a version number`)
	addRevFlag(nextCmd, `The revision to start from: "current", "previous" or a version number`)
	rootCmd.AddCommand(prevCmd)
	rootCmd.AddCommand(nextCmd)
}

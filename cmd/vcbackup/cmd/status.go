// Copyright © 2018 One Concern

package cmd

import (
	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/oneconcern/vcbackup/pkg/core"
	"github.com/spf13/cobra"
)

func statusTable(st core.Status) *uitable.Table {
	table := uitable.New()
	table.AddRow("file:", st.Tracked)

	switch {
	case !st.Trackable:
		table.AddRow("history:", color.HiBlackString("no backups"))
	case st.Modified:
		table.AddRow("history:", st.Revisions, "revisions")
		table.AddRow("last revision:", st.Last)
		table.AddRow("state:", color.YellowString("modified since last revision"))
	default:
		table.AddRow("history:", st.Revisions, "revisions")
		table.AddRow("last revision:", st.Last)
		table.AddRow("state:", color.GreenString("unchanged since last revision"))
	}
	if !st.Exists {
		table.AddRow("", color.RedString("the file does not exist"))
	}
	return table
}

var statusCmd = &cobra.Command{
	Use:     "status FILE",
	Aliases: []string{"st"},
	Short:   "Tell if a file changed since its last backup",
	Long: `Give an overview of the history of a file: its number of revisions, its last revision,
and whether its current content differs from this last revision.`,
	Example: `% vcbackup status notes.txt
file:         	/home/me/notes.txt
history:      	3                            	revisions
last revision:	previous
state:        	modified since last revision`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		h, tracked, ok := historyFor(args)
		if !ok {
			return
		}

		st, err := h.Status(tracked)
		if err != nil {
			wrapFatalln("status", err)
			return
		}
		printf(cmd.OutOrStdout(), "%s\n", statusTable(st))
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

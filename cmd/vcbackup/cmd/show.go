// Copyright © 2018 One Concern

package cmd

import (
	"io"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:     "show FILE",
	Aliases: []string{"cat"},
	Short:   "Print a revision of a file",
	Long:    `Print the content of a revision of a file on the standard output.`,
	Example: `% vcbackup show notes.txt --rev 2
line 1
line 2`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		h, tracked, ok := historyFor(args)
		if !ok {
			return
		}

		f, err := h.Open(tracked, vcFlags.rev.tag)
		if err != nil {
			wrapFatalln("show", err)
			return
		}
		defer func() { _ = f.Close() }()

		if _, err := io.Copy(cmd.OutOrStdout(), f); err != nil {
			wrapFatalln("show", err)
			return
		}
	},
}

func init() {
	addRevFlag(showCmd, `The revision to print: "current", "previous" or a version number`)
	rootCmd.AddCommand(showCmd)
}

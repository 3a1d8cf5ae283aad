// Copyright © 2018 One Concern

package cmd

import (
	"bufio"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/oneconcern/vcbackup/pkg/core"
	"github.com/spf13/cobra"
)

// colorizeDiff writes a unified diff, with colors when writing to a terminal
func colorizeDiff(w io.Writer, text string) {
	header := color.New(color.Bold).SprintFunc()
	hunk := color.New(color.FgCyan).SprintFunc()
	added := color.New(color.FgGreen).SprintFunc()
	removed := color.New(color.FgRed).SprintFunc()

	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "---"), strings.HasPrefix(line, "+++"):
			line = header(line)
		case strings.HasPrefix(line, "@@"):
			line = hunk(line)
		case strings.HasPrefix(line, "+"):
			line = added(line)
		case strings.HasPrefix(line, "-"):
			line = removed(line)
		}
		printf(w, "%s\n", line)
	}
}

var diffCmd = &cobra.Command{
	Use:   "diff FILE",
	Short: "Compare two revisions of a file",
	Long: `Compare two revisions of a file, as a unified diff.

By default, the current content of the file is compared to its most recent backup.
Revisions are designated as "current", "previous" (the unnumbered backup) or by a version number.

Nothing is printed when both revisions have the same content.`,
	Example: `% vcbackup diff notes.txt
--- notes.txt (current)	2021-06-01 14:05:00
+++ notes.txt (previous)	2021-06-01 14:03:00
@@ -1,3 +1,3 @@
 line 1
-line 2 edited
+line 2
 line 3

% vcbackup diff notes.txt --rev-a 1 --rev-b 2`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		h, tracked, ok := historyFor(args)
		if !ok {
			return
		}

		opts := []core.DiffOption{core.DiffContext(vcFlags.diff.context)}
		if cmd.Flags().Changed("rev-a") || cmd.Flags().Changed("rev-b") {
			b := vcFlags.rev.b
			if !cmd.Flags().Changed("rev-b") {
				last, err := h.LastRevision(tracked)
				if err != nil {
					wrapFatalln("diff", err)
					return
				}
				b = last
			}
			opts = append(opts, core.DiffRevisions(vcFlags.rev.a, b))
		}

		res, err := h.Diff(tracked, opts...)
		if err != nil {
			wrapFatalln("diff", err)
			return
		}
		if res.HasDifferences {
			colorizeDiff(cmd.OutOrStdout(), res.Text)
		}
	},
}

func init() {
	addRevisionsFlags(diffCmd)
	addDiffContextFlag(diffCmd)
	rootCmd.AddCommand(diffCmd)
}

// Copyright © 2018 One Concern

package cmd

import (
	"github.com/docker/go-units"
	"github.com/gosuri/uitable"
	"github.com/oneconcern/vcbackup/pkg/core"
	"github.com/oneconcern/vcbackup/pkg/model"
	"github.com/spf13/cobra"
)

func backupsTable(backups model.Backups) *uitable.Table {
	table := uitable.New()
	table.MaxColWidth = 80
	table.AddRow("REVISION", "MODIFIED", "OWNER", "SIZE", "FILE")
	for _, b := range backups {
		owner := b.Owner
		if owner == "" {
			owner = "-"
		}
		table.AddRow(b.Tag, b.ModTime.Local().Format(core.LogTimeFormat), owner, units.HumanSize(float64(b.Size)), b.Path)
	}
	return table
}

var listCmd = &cobra.Command{
	Use:     "list FILE...",
	Aliases: []string{"ls"},
	Short:   "List the backups of files",
	Long: `List the backups of one or several files, most recent first.

Recency is given by the modification time of backups, not by their version numbers.
A file without backups lists nothing.

Version numbers must be positive integers written without leading zeros. Backups
with another suffix (e.g. notes.txt.~007~ or notes.txt.~0~) are not part of the
history: they are skipped, with a warning naming each of them.`,
	Example: `% vcbackup list notes.txt
REVISION	MODIFIED           	OWNER	SIZE	FILE
previous	2021-06-01 14:03:00	me   	21B 	/home/me/notes.txt~
2       	2021-06-01 14:02:00	me   	14B 	/home/me/notes.txt.~2~
1       	2021-06-01 14:01:00	me   	7B  	/home/me/notes.txt.~1~`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		h, err := newCliOptionInputs(config, &vcFlags).history()
		if err != nil {
			wrapFatalln("invalid configuration", err)
			return
		}

		files := make([]string, 0, len(args))
		for _, arg := range args {
			tracked, err := trackedArg(h, arg)
			if err != nil {
				wrapFatalln("invalid file "+arg, err)
				return
			}
			files = append(files, tracked)
		}

		backups, err := h.ListBackups(files...)
		if len(backups) > 0 {
			printf(cmd.OutOrStdout(), "%s\n", backupsTable(backups))
		}
		if err != nil {
			wrapFatalln("list backups", err)
			return
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}

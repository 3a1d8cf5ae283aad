// Copyright © 2018 One Concern

package cmd

import (
	"context"
	"io"
	"os"
	"os/signal"
	"text/template"

	"github.com/fatih/color"
	"github.com/oneconcern/vcbackup/pkg/core"
	"github.com/oneconcern/vcbackup/pkg/model"
	"github.com/oneconcern/vcbackup/pkg/watch"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// the default log template, with colors when writing to a terminal
const coloredLogTemplate = `{{.Name}}  {{yellow (printf "%-8s" .Tag.String)}}  {{.Date}}  {{or .Owner "-"}}  {{.HumanSize}}`

func logTemplate() (*template.Template, error) {
	text := vcFlags.log.template
	if text == "" {
		text = coloredLogTemplate
	}
	return core.NewLogTemplate(text, template.FuncMap{
		"yellow":  color.New(color.FgYellow).SprintFunc(),
		"magenta": color.New(color.FgMagenta).SprintFunc(),
		"faint":   color.New(color.Faint).SprintFunc(),
	})
}

type seenKey struct {
	path string
	tag  model.Tag
}

// followLog prints revisions as they appear, until interrupted
func followLog(ctx context.Context, w io.Writer, h *core.History, tracked string, tmpl *template.Template) error {
	updates, err := watch.New(h, watch.WithLogger(mustGetLogger())).Watch(ctx, tracked)
	if err != nil {
		return err
	}

	seen := make(map[seenKey]int64)
	for backups := range updates {
		var fresh model.Backups
		for _, b := range backups {
			key := seenKey{path: b.Path, tag: b.Tag}
			if modTime, ok := seen[key]; ok && modTime == b.ModTime.UnixNano() {
				continue
			}
			seen[key] = b.ModTime.UnixNano()
			fresh = append(fresh, b)
		}
		if err := core.RenderLog(w, core.LogEntries(fresh), tmpl); err != nil {
			return err
		}
	}
	return nil
}

func mustGetLogger() *zap.Logger {
	logger, err := newCliOptionInputs(config, &vcFlags).getLogger()
	if err != nil {
		wrapFatalln("invalid log level", err)
	}
	return logger
}

var logCmd = &cobra.Command{
	Use:   "log FILE",
	Short: "Show the revision history of a file",
	Long: `Show the revision history of a file, oldest revision first, one line per backup.

The output format may be changed with a go template. The default template starts each
line with the name of the backup file, followed by its revision.

With --follow, new revisions are printed as they appear, until interrupted.`,
	Example: `% vcbackup log notes.txt
notes.txt.~1~  1         2021-06-01 14:01:00  me  7B
notes.txt.~2~  2         2021-06-01 14:02:00  me  14B
notes.txt~     previous  2021-06-01 14:03:00  me  21B

% vcbackup log notes.txt --template '{{ .Tag }} {{ .Path }}'
1 /home/me/notes.txt.~1~
2 /home/me/notes.txt.~2~
previous /home/me/notes.txt~`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		h, tracked, ok := historyFor(args)
		if !ok {
			return
		}
		tmpl, err := logTemplate()
		if err != nil {
			wrapFatalln("invalid template", err)
			return
		}

		if vcFlags.log.follow {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()
			if err := followLog(ctx, cmd.OutOrStdout(), h, tracked, tmpl); err != nil {
				wrapFatalln("follow log", err)
			}
			return
		}

		entries, err := h.Log(tracked)
		if err != nil {
			wrapFatalln("log", err)
			return
		}
		if err := core.RenderLog(cmd.OutOrStdout(), entries, tmpl); err != nil {
			wrapFatalln("render log", err)
			return
		}
	},
}

func init() {
	addTemplateFlag(logCmd)
	addFollowFlag(logCmd)
	rootCmd.AddCommand(logCmd)
}

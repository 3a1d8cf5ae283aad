// Copyright © 2018 One Concern

package core

import (
	"bytes"
	"io"
	"path/filepath"
	"regexp"
	"strconv"
	"text/template"
	"time"

	"github.com/docker/go-units"
	"github.com/oneconcern/vcbackup/pkg/model"
)

const (
	// LogTimeFormat is the layout of modification times in rendered logs
	LogTimeFormat = "2006-01-02 15:04:05"

	// DefaultLogTemplate renders one log line per backup
	DefaultLogTemplate = `{{.Name}}  {{printf "%-8s" .Tag.String}}  {{.Date}}  {{or .Owner "-"}}  {{.HumanSize}}`
)

var (
	numberedLineExp   = regexp.MustCompile(`\.~([0-9]+)~(?:\s|$)`)
	unnumberedLineExp = regexp.MustCompile(`~(?:\s|$)`)
)

// LogEntry describes a revision in a log
type LogEntry struct {
	Name    string
	Path    string
	Tag     model.Tag
	ModTime time.Time
	Owner   string
	Size    int64
}

// HumanSize renders the size of the revision
func (e LogEntry) HumanSize() string {
	return units.HumanSize(float64(e.Size))
}

// Date renders the modification time of the revision, in local time
func (e LogEntry) Date() string {
	return e.ModTime.Local().Format(LogTimeFormat)
}

// Log lists the backups of a tracked file, oldest first
func (h *History) Log(tracked string) ([]LogEntry, error) {
	backups, err := h.ListTaggedBackups(tracked)
	if err != nil {
		return nil, err
	}
	return LogEntries(backups), nil
}

// LogEntries converts backups listed most recent first into log entries, oldest first
func LogEntries(backups model.Backups) []LogEntry {
	entries := make([]LogEntry, 0, len(backups))
	for i := len(backups) - 1; i >= 0; i-- {
		backup := backups[i]
		entries = append(entries, LogEntry{
			Name:    filepath.Base(backup.Path),
			Path:    backup.Path,
			Tag:     backup.Tag,
			ModTime: backup.ModTime,
			Owner:   backup.Owner,
			Size:    backup.Size,
		})
	}
	return entries
}

// NewLogTemplate parses a template for log lines. An empty text means DefaultLogTemplate.
func NewLogTemplate(text string, funcs ...template.FuncMap) (*template.Template, error) {
	if text == "" {
		text = DefaultLogTemplate
	}
	t := template.New("log line")
	for _, fm := range funcs {
		t = t.Funcs(fm)
	}
	return t.Parse(text)
}

// RenderLog writes a line per log entry, using a template (DefaultLogTemplate when nil)
func RenderLog(w io.Writer, entries []LogEntry, tmpl *template.Template) error {
	if tmpl == nil {
		tmpl = template.Must(NewLogTemplate(""))
	}
	var buf bytes.Buffer
	for _, entry := range entries {
		buf.Reset()
		if err := tmpl.Execute(&buf, entry); err != nil {
			return err
		}
		buf.WriteByte('\n')
		if _, err := w.Write(buf.Bytes()); err != nil {
			return err
		}
	}
	return nil
}

// RenderLog writes the log of a tracked file with the default template
func (h *History) RenderLog(w io.Writer, tracked string) error {
	entries, err := h.Log(tracked)
	if err != nil {
		return err
	}
	return RenderLog(w, entries, nil)
}

// ParseLogLine extracts the tag of the revision described by a line rendered with DefaultLogTemplate
func ParseLogLine(line string) (model.Tag, bool) {
	if match := numberedLineExp.FindStringSubmatch(line); len(match) == 2 {
		n, err := strconv.ParseUint(match[1], 10, 64)
		if err != nil || n == 0 {
			return model.Current, false
		}
		return model.Numbered(n), true
	}
	if unnumberedLineExp.MatchString(line) {
		return model.Previous, true
	}
	return model.Current, false
}

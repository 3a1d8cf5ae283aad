// Copyright © 2018 One Concern

package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/oneconcern/vcbackup/pkg/core"
	"github.com/oneconcern/vcbackup/pkg/dlogger"
	"github.com/oneconcern/vcbackup/pkg/model"
	"github.com/oneconcern/vcbackup/pkg/naming"
	"github.com/oneconcern/vcbackup/pkg/saver"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// appFs is the filesystem holding tracked files and their backups. It is patched during tests.
var appFs = afero.NewOsFs()

type flagsT struct {
	root struct {
		logLevel   string
		backupDirs []string
	}
	rev struct {
		tag model.Tag
		a   model.Tag
		b   model.Tag
	}
	diff struct {
		context int
	}
	log struct {
		template string
		follow   bool
	}
	restore struct {
		keepCurrent bool
	}
	delete struct {
		forceYes bool
	}
	doc struct {
		docTarget string
	}
}

var vcFlags = flagsT{}

func addLogLevel(cmd *cobra.Command) string {
	logLevel := keyLogLevel
	cmd.PersistentFlags().StringVar(&vcFlags.root.logLevel, logLevel, dlogger.LogLevelWarn,
		"The logging level. Levels by increasing order of verbosity: none, error, warn, info, debug.")
	return logLevel
}

func addVersionControlFlag(cmd *cobra.Command) string {
	vc := keyVersionControl
	cmd.PersistentFlags().String(vc, string(saver.Existing),
		`When to make numbered backups on checkin: "existing" (when some already exist), "always" or "never"`)
	return vc
}

func addKeptNewVersionsFlag(cmd *cobra.Command) string {
	kept := keyKeptNewVersions
	cmd.PersistentFlags().Int(kept, 2, "The number of newest numbered backups kept when old versions are deleted")
	return kept
}

func addKeptOldVersionsFlag(cmd *cobra.Command) string {
	kept := keyKeptOldVersions
	cmd.PersistentFlags().Int(kept, 2, "The number of oldest numbered backups kept when old versions are deleted")
	return kept
}

func addDeleteOldVersionsFlag(cmd *cobra.Command) string {
	del := keyDeleteOldVersions
	cmd.PersistentFlags().Bool(del, false, "Delete excess numbered backups on checkin")
	return del
}

func addBackupDirFlag(cmd *cobra.Command) string {
	backupDir := "backup-dir"
	cmd.PersistentFlags().StringArrayVar(&vcFlags.root.backupDirs, backupDir, nil,
		`A relocation rule for backups, as PATTERN=DIRECTORY. Backups of the files with a path matching the regular expression `+
			`PATTERN are kept in DIRECTORY: an absolute directory is shared by all these files, a relative one is a subdirectory `+
			`of the directory of each file. May be repeated: the first matching rule applies. Replaces the rules from the config file.`)
	return backupDir
}

func addRevFlag(cmd *cobra.Command, usage string) string {
	rev := "rev"
	vcFlags.rev.tag = model.Current
	cmd.Flags().VarP(&vcFlags.rev.tag, rev, "r", usage)
	return rev
}

func addRevisionsFlags(cmd *cobra.Command) (string, string) {
	revA, revB := "rev-a", "rev-b"
	cmd.Flags().Var(&vcFlags.rev.a, revA, `The first revision to compare: "current", "previous" or a version number. Defaults to the current revision`)
	cmd.Flags().Var(&vcFlags.rev.b, revB, `The second revision to compare. Defaults to the most recent backup`)
	return revA, revB
}

func addDiffContextFlag(cmd *cobra.Command) string {
	c := "context"
	cmd.Flags().IntVarP(&vcFlags.diff.context, c, "U", -1, "The number of context lines. Defaults to the diff-context setting")
	return c
}

func addTemplateFlag(cmd *cobra.Command) string {
	t := "template"
	cmd.Flags().StringVar(&vcFlags.log.template, t, "",
		`A go template to render each revision. Fields are .Name, .Path, .Tag, .ModTime, .Owner, .Size, .Date and .HumanSize`)
	return t
}

func addFollowFlag(cmd *cobra.Command) string {
	f := "follow"
	cmd.Flags().BoolVarP(&vcFlags.log.follow, f, "f", false, "Keep watching for new revisions")
	return f
}

func addKeepCurrentFlag(cmd *cobra.Command) string {
	k := "keep-current"
	cmd.Flags().BoolVar(&vcFlags.restore.keepCurrent, k, false, "Check in the current content before restoring")
	return k
}

func addForceYesFlag(cmd *cobra.Command) string {
	force := "force"
	cmd.Flags().BoolVar(&vcFlags.delete.forceYes, force, false, "Do not ask for a confirmation")
	return force
}

func addTargetFlag(cmd *cobra.Command) string {
	target := "target-dir"
	cmd.Flags().StringVar(&vcFlags.doc.docTarget, target, ".", "The target directory for the generated documentation")
	return target
}

/** parameters struct from other formats */

// apply config file + env vars to structure used to parse cli flags
func (flags *flagsT) setDefaultsFromConfig(c *CLIConfig) {
	if len(flags.root.backupDirs) > 0 {
		rules, err := parseBackupDirs(flags.root.backupDirs)
		if err != nil {
			wrapFatalln("invalid backup directory", err)
			return
		}
		c.BackupDirectories = rules
	}
	if flags.diff.context < 0 {
		flags.diff.context = c.DiffContext
	}
}

// parseBackupDirs parses PATTERN=DIRECTORY rules. Patterns may contain "=", directories may not.
func parseBackupDirs(values []string) ([]naming.Rule, error) {
	rules := make([]naming.Rule, 0, len(values))
	for _, value := range values {
		i := strings.LastIndex(value, "=")
		if i <= 0 || i == len(value)-1 {
			return nil, fmt.Errorf("expected PATTERN=DIRECTORY, got %q", value)
		}
		rules = append(rules, naming.Rule{Pattern: value[:i], Directory: value[i+1:]})
	}
	return rules, nil
}

/** combined config (file + env var) and parameters (pflags) */

type cliOptionInputs struct {
	config *CLIConfig
	params *flagsT
}

func newCliOptionInputs(config *CLIConfig, params *flagsT) *cliOptionInputs {
	return &cliOptionInputs{
		config: config,
		params: params,
	}
}

/** combined config and parameters to internal objects */

func (in *cliOptionInputs) getLogger() (*zap.Logger, error) {
	var err error
	in.config.onceLogger.Do(func() {
		in.config.logger, err = dlogger.GetLogger(in.config.LogLevel)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to set log level: %v", err)
	}
	return in.config.logger, nil
}

func (in *cliOptionInputs) codec() (*naming.Codec, error) {
	return naming.New(in.config.BackupDirectories...)
}

func (in *cliOptionInputs) history() (*core.History, error) {
	logger, err := in.getLogger()
	if err != nil {
		return nil, err
	}
	codec, err := in.codec()
	if err != nil {
		return nil, err
	}
	vc, err := saver.ParseVersionControl(in.config.VersionControl)
	if err != nil {
		return nil, err
	}

	backupSaver := saver.New(appFs, codec,
		saver.WithVersionControl(vc),
		saver.WithKeptVersions(in.config.KeptNewVersions, in.config.KeptOldVersions),
		saver.WithPrune(in.config.DeleteOldVersions),
		saver.WithLogger(logger),
	)

	return core.New(
		core.WithFs(appFs),
		core.WithCodec(codec),
		core.WithSaver(backupSaver),
		core.WithLogger(logger),
	), nil
}

// trackedArg resolves the file argument of a command: a backup stands for its tracked file
func trackedArg(h *core.History, arg string) (string, error) {
	abs, err := filepath.Abs(arg)
	if err != nil {
		return "", err
	}
	return h.TrackedPath(abs)
}

// historyFor builds the history and resolves the tracked file from the command arguments, or exits
func historyFor(args []string) (*core.History, string, bool) {
	h, err := newCliOptionInputs(config, &vcFlags).history()
	if err != nil {
		wrapFatalln("invalid configuration", err)
		return nil, "", false
	}
	tracked, err := trackedArg(h, args[0])
	if err != nil {
		wrapFatalln("invalid file "+args[0], err)
		return nil, "", false
	}
	return h, tracked, true
}

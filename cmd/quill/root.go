package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bethropolis/quill/internal/config"
	"github.com/bethropolis/quill/internal/highlighter"
	"github.com/bethropolis/quill/internal/highlighter/lang"
	"github.com/bethropolis/quill/internal/logger"
	"github.com/spf13/cobra"
)

// cli carries state shared by the subcommands of one invocation.
type cli struct {
	version  string
	flags    config.Flags
	cfg      *config.Config
	closeLog func() error
}

func newRootCmd(version string) *cobra.Command {
	c := &cli{version: version}

	root := &cobra.Command{
		Use:   "quill [file...]",
		Short: "A small terminal text editor with syntax highlighting",
		Long: `Quill edits text files in the terminal, coloring keywords, strings,
characters and comments of Java, C and JavaScript sources.`,
		Version:           version,
		Args:              cobra.ArbitraryArgs,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return c.teardown()
		},
		RunE: c.runView,
	}
	c.flags.DefineFlags(root.PersistentFlags())

	root.AddCommand(c.newViewCmd(), c.newSpansCmd(), c.newVersionCmd())
	return root
}

// setup loads configuration, starts logging and registers the languages.
func (c *cli) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(c.flags.ConfigFilePath, &c.flags)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
	}
	c.cfg = cfg

	logPath := cfg.Logger.LogFilePath
	if logPath == "" && cmd.Name() != "spans" && cmd.Name() != "version" {
		// The terminal UI owns stderr, so logs go to a file by default.
		logPath = defaultLogPath()
	}
	out, closeLog, err := logger.OpenOutput(logPath)
	if err != nil {
		return err
	}
	c.closeLog = closeLog
	logger.Init(cfg.Logger, out)

	highlighter.RegisterLanguages()
	if !lang.SetDefault(cfg.Editor.DefaultLanguage) {
		logger.Warnf("Unknown default language '%s'", cfg.Editor.DefaultLanguage)
	}
	logger.Debugf("Starting quill %s", c.version)
	return nil
}

func (c *cli) teardown() error {
	if c.closeLog == nil {
		return nil
	}
	return c.closeLog()
}

func defaultLogPath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(os.TempDir(), config.DefaultLogFileName)
	}
	dir = filepath.Join(dir, config.AppName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return filepath.Join(os.TempDir(), config.DefaultLogFileName)
	}
	return filepath.Join(dir, config.DefaultLogFileName)
}

func (c *cli) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "quill %s\n", c.version)
			return err
		},
	}
}

package main

import (
	"fmt"
	"path/filepath"

	"github.com/bethropolis/quill/internal/app"
	"github.com/bethropolis/quill/internal/config"
	"github.com/bethropolis/quill/internal/theme"
	"github.com/spf13/cobra"
)

func (c *cli) newViewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view [file...]",
		Short: "Open files in the terminal editor",
		Long: `Open files in the terminal editor. Each file gets its own tab.

Keys:
  Ctrl+S save      Ctrl+Z undo      Ctrl+Y redo
  Ctrl+K cut line  Ctrl+C copy line Ctrl+V paste
  Ctrl+N next tab  Ctrl+Q quit`,
		Args: cobra.ArbitraryArgs,
		RunE: c.runView,
	}
}

func (c *cli) runView(cmd *cobra.Command, args []string) error {
	themes, err := c.loadThemes()
	if err != nil {
		return err
	}

	editor, err := app.New(app.Options{Config: c.cfg, Themes: themes})
	if err != nil {
		return fmt.Errorf("initializing application: %w", err)
	}
	if len(args) == 0 {
		args = []string{""}
	}
	for _, path := range args {
		if err := editor.Open(path); err != nil {
			return fmt.Errorf("opening '%s': %w", path, err)
		}
	}
	return editor.Run()
}

// loadThemes registers user themes and activates the configured one.
func (c *cli) loadThemes() (*theme.Manager, error) {
	themes := theme.NewManager()
	if dir := config.DefaultPath(); dir != "" {
		if _, err := themes.LoadThemesFromDir(filepath.Join(filepath.Dir(dir), config.ThemesDirName)); err != nil {
			return nil, err
		}
	}
	switch {
	case c.cfg.Theme.File != "":
		if err := themes.UseFile(c.cfg.Theme.File); err != nil {
			return nil, err
		}
	case c.cfg.Theme.Name != "":
		if err := themes.SetTheme(c.cfg.Theme.Name); err != nil {
			return nil, err
		}
	}
	return themes, nil
}

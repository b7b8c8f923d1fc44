// internal/config/flags.go
package config

import (
	"fmt"
	"strings"

	"github.com/bethropolis/quill/internal/logger"
	"github.com/spf13/pflag"
)

// Flags holds values parsed from command-line flags.
// Only flags the user actually set override the config file.
type Flags struct {
	set *pflag.FlagSet

	ConfigFilePath  string
	LogLevel        string
	LogFilePath     string
	TabWidth        int
	MaxHistory      int
	SystemClipboard bool
	AsyncHighlight  bool
	Theme           string
	EnableTags      string
	DisableTags     string
	EnablePkgs      string
	DisablePkgs     string
	EnableFiles     string
	DisableFiles    string
}

// DefineFlags registers the flags on fs.
func (f *Flags) DefineFlags(fs *pflag.FlagSet) {
	f.set = fs
	fs.StringVar(&f.ConfigFilePath, "config", "", fmt.Sprintf("Path to TOML configuration file (default ~/.config/%s/%s)", AppName, DefaultConfigFileName))
	fs.StringVar(&f.LogLevel, "loglevel", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&f.LogFilePath, "logfile", "", "Path to write log file (use '-' for stderr)")
	fs.IntVar(&f.TabWidth, "tabwidth", 0, "Number of columns per tab")
	fs.IntVar(&f.MaxHistory, "max-history", 0, "Maximum undo depth (0 for unbounded)")
	fs.BoolVar(&f.SystemClipboard, "system-clipboard", false, "Use the system clipboard")
	fs.BoolVar(&f.AsyncHighlight, "async-highlight", false, "Highlight in the background after a short delay")
	fs.StringVar(&f.Theme, "theme", "", "Theme name or path to a TOML theme file")
	fs.StringVar(&f.EnableTags, "log-tags", "", "Comma-separated list of tags to enable")
	fs.StringVar(&f.DisableTags, "log-disable-tags", "", "Comma-separated list of tags to disable")
	fs.StringVar(&f.EnablePkgs, "log-packages", "", "Comma-separated list of packages to enable")
	fs.StringVar(&f.DisablePkgs, "log-disable-packages", "", "Comma-separated list of packages to disable")
	fs.StringVar(&f.EnableFiles, "log-files", "", "Comma-separated list of files to enable")
	fs.StringVar(&f.DisableFiles, "log-disable-files", "", "Comma-separated list of files to disable")
}

// ApplyOverrides updates cfg with the flags that were set.
func (f *Flags) ApplyOverrides(cfg *Config) {
	if f.set == nil {
		return
	}
	// Changed is shared with the flag sets cobra subcommands merge these flags into.
	f.set.VisitAll(func(fl *pflag.Flag) {
		if !fl.Changed {
			return
		}
		logger.DebugTagf("config", "Applying flag override: %s=%s", fl.Name, fl.Value)
		switch fl.Name {
		case "loglevel":
			if f.LogLevel != "" {
				cfg.Logger.LogLevel = f.LogLevel
			}
		case "logfile":
			cfg.Logger.LogFilePath = f.LogFilePath
		case "tabwidth":
			if f.TabWidth > 0 {
				cfg.Editor.TabWidth = f.TabWidth
			}
		case "max-history":
			if f.MaxHistory >= 0 {
				cfg.Editor.MaxHistory = f.MaxHistory
			}
		case "system-clipboard":
			cfg.Editor.SystemClipboard = f.SystemClipboard
		case "async-highlight":
			cfg.Editor.AsyncHighlight = f.AsyncHighlight
		case "theme":
			if strings.HasSuffix(f.Theme, ".toml") {
				cfg.Theme.File = f.Theme
			} else {
				cfg.Theme.Name = f.Theme
			}
		case "log-tags":
			cfg.Logger.EnabledTags = splitCommaList(f.EnableTags)
		case "log-disable-tags":
			cfg.Logger.DisabledTags = splitCommaList(f.DisableTags)
		case "log-packages":
			cfg.Logger.EnabledPackages = splitCommaList(f.EnablePkgs)
		case "log-disable-packages":
			cfg.Logger.DisabledPackages = splitCommaList(f.DisablePkgs)
		case "log-files":
			cfg.Logger.EnabledFiles = splitCommaList(f.EnableFiles)
		case "log-disable-files":
			cfg.Logger.DisabledFiles = splitCommaList(f.DisableFiles)
		}
	})
}

func splitCommaList(list string) []string {
	if list == "" {
		return nil
	}
	items := strings.Split(list, ",")
	result := make([]string, 0, len(items))
	for _, item := range items {
		trimmed := strings.TrimSpace(item)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

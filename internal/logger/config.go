// Package logger wraps log/slog with tag, package and file filters.
package logger

import (
	"log/slog"
	"strings"
)

// Config controls level and source filtering for the process-wide logger. It is
// decoded from the [logger] table of the config file.
type Config struct {
	LogLevel    string `toml:"log_level"` // debug, info, warn or error
	LogFilePath string `toml:"log_file"`  // Empty or "-" logs to stderr

	// Tag filters match the "tag" attribute set by DebugTagf and WarnTagf.
	// A disabled entry always wins over an enabled one.
	EnabledTags  []string `toml:"enabled_tags"`
	DisabledTags []string `toml:"disabled_tags"`

	// Package filters match the directory of the calling source file, e.g. "history".
	EnabledPackages  []string `toml:"enabled_packages"`
	DisabledPackages []string `toml:"disabled_packages"`

	// File filters match the base name of the calling source file, e.g. "worker.go".
	EnabledFiles  []string `toml:"enabled_files"`
	DisabledFiles []string `toml:"disabled_files"`

	level               slog.Level
	enabledTagsSet      map[string]struct{}
	disabledTagsSet     map[string]struct{}
	enabledPackagesSet  map[string]struct{}
	disabledPackagesSet map[string]struct{}
	enabledFilesSet     map[string]struct{}
	disabledFilesSet    map[string]struct{}
}

// NewConfig returns the defaults: info level on stderr, no filters.
func NewConfig() Config {
	return Config{LogLevel: "info"}
}

// ParseLevel maps a level name to a slog level. Unknown names map to info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error", "err":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// process resolves the level name and builds lookup sets from the filter lists.
func (c *Config) process() {
	c.level = ParseLevel(c.LogLevel)
	c.enabledTagsSet = sliceToSet(c.EnabledTags)
	c.disabledTagsSet = sliceToSet(c.DisabledTags)
	c.enabledPackagesSet = sliceToSet(c.EnabledPackages)
	c.disabledPackagesSet = sliceToSet(c.DisabledPackages)
	c.enabledFilesSet = sliceToSet(c.EnabledFiles)
	c.disabledFilesSet = sliceToSet(c.DisabledFiles)
}

// hasFilters reports whether any filter list is configured.
func (c *Config) hasFilters() bool {
	return c.enabledTagsSet != nil || c.disabledTagsSet != nil ||
		c.enabledPackagesSet != nil || c.disabledPackagesSet != nil ||
		c.enabledFilesSet != nil || c.disabledFilesSet != nil
}

// sliceToSet lowercases items into a set. Blank entries are skipped, and an empty
// result is nil so callers can test for "no filter" with a nil check.
func sliceToSet(items []string) map[string]struct{} {
	var set map[string]struct{}
	for _, item := range items {
		item = strings.ToLower(strings.TrimSpace(item))
		if item == "" {
			continue
		}
		if set == nil {
			set = make(map[string]struct{}, len(items))
		}
		set[item] = struct{}{}
	}
	return set
}

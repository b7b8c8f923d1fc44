package config

import "time"

// Base application details
const AppName = "quill"
const ThemesDirName = "themes"
const DefaultConfigFileName = "config.toml" // Main config file
const DefaultLogFileName = "quill.log"

// Editor defaults
const DefaultTabWidth = 4
const DefaultMaxHistory = 0 // Unbounded
const DefaultSystemClipboard = true
const DefaultAsyncHighlight = false
const DefaultHighlightDebounce = 65 * time.Millisecond
const DefaultLanguage = "Java"

// Status Bar
const StatusBarHeight = 1

// internal/theme/manager.go
package theme

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/bethropolis/quill/internal/logger"
)

// Manager holds loaded themes and the active theme.
type Manager struct {
	mutex       sync.RWMutex
	themes      map[string]*Theme // Lowercase name -> theme
	activeTheme *Theme
}

// NewManager creates a manager with the built-in themes; Dark is active.
func NewManager() *Manager {
	m := &Manager{themes: make(map[string]*Theme)}
	m.add(&Dark)
	m.add(&Light)
	m.activeTheme = &Dark
	return m
}

func (m *Manager) add(t *Theme) {
	key := strings.ToLower(t.Name)
	if existing, ok := m.themes[key]; ok {
		logger.Warnf("Theme '%s' overrides existing theme '%s'", t.Name, existing.Name)
	}
	m.themes[key] = t
}

// LoadThemesFromDir loads every .toml file in dir. A missing dir is not an error;
// a broken file is skipped with a warning.
func (m *Manager) LoadThemesFromDir(dir string) (int, error) {
	files, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Debugf("Theme directory '%s' does not exist", dir)
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read theme directory '%s': %w", dir, err)
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()
	loaded := 0
	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(strings.ToLower(file.Name()), ".toml") {
			continue
		}
		path := filepath.Join(dir, file.Name())
		t, err := LoadThemeFromFile(path)
		if err != nil {
			logger.Warnf("Failed to load theme from '%s': %v", path, err)
			continue
		}
		m.add(t)
		loaded++
	}
	logger.Infof("Loaded %d custom themes from '%s'", loaded, dir)
	return loaded, nil
}

// Current returns the active theme.
func (m *Manager) Current() *Theme {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.activeTheme
}

// SetTheme activates a theme by name (case-insensitive).
func (m *Manager) SetTheme(name string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	t, ok := m.themes[strings.ToLower(name)]
	if !ok {
		return fmt.Errorf("theme '%s' not found", name)
	}
	m.activeTheme = t
	logger.Infof("Active theme set to: %s", t.Name)
	return nil
}

// UseFile loads a theme file, registers it and makes it active.
func (m *Manager) UseFile(path string) error {
	t, err := LoadThemeFromFile(path)
	if err != nil {
		return err
	}
	m.mutex.Lock()
	m.add(t)
	m.activeTheme = t
	m.mutex.Unlock()
	return nil
}

// ListThemes returns the sorted names of all loaded themes.
func (m *Manager) ListThemes() []string {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	names := make([]string, 0, len(m.themes))
	for _, t := range m.themes {
		names = append(names, t.Name)
	}
	sort.Strings(names)
	return names
}

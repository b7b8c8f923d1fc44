package lang

import (
	"path/filepath"
	"strings"
	"sync"

	"github.com/bethropolis/quill/internal/logger"
)

// Global language registry
var registry struct {
	sync.RWMutex
	languages     []*Language
	extToLanguage map[string]*Language
	nameToLang    map[string]*Language
	defaultLang   *Language
}

func init() {
	Reset()
}

// Reset empties the registry.
func Reset() {
	registry.Lock()
	defer registry.Unlock()
	registry.languages = nil
	registry.extToLanguage = make(map[string]*Language)
	registry.nameToLang = make(map[string]*Language)
	registry.defaultLang = nil
}

// Register adds a language to the registry. The first registered language becomes the
// default until SetDefault is called.
func Register(lang *Language) {
	registry.Lock()
	defer registry.Unlock()

	// Re-registering a name replaces the earlier entry
	if old, ok := registry.nameToLang[strings.ToLower(lang.Name)]; ok {
		for i, l := range registry.languages {
			if l == old {
				registry.languages = append(registry.languages[:i], registry.languages[i+1:]...)
				break
			}
		}
		for ext, l := range registry.extToLanguage {
			if l == old {
				delete(registry.extToLanguage, ext)
			}
		}
		if registry.defaultLang == old {
			registry.defaultLang = lang
		}
	}
	registry.languages = append(registry.languages, lang)
	registry.nameToLang[strings.ToLower(lang.Name)] = lang

	for _, ext := range lang.Extensions {
		lowerExt := strings.ToLower(ext)
		if existing, ok := registry.extToLanguage[lowerExt]; ok && existing.Name != lang.Name {
			logger.Warnf("Extension %s already registered to %s, overriding with %s",
				lowerExt, existing.Name, lang.Name)
		}
		registry.extToLanguage[lowerExt] = lang
	}
	if registry.defaultLang == nil {
		registry.defaultLang = lang
	}

	logger.DebugTagf("lang", "Registered language: %s with extensions: %v", lang.Name, lang.Extensions)
}

// SetDefault selects the language used for untitled files and unknown extensions.
// It returns false if no language has that name.
func SetDefault(name string) bool {
	registry.Lock()
	defer registry.Unlock()
	l, ok := registry.nameToLang[strings.ToLower(name)]
	if !ok {
		return false
	}
	registry.defaultLang = l
	return true
}

// Default returns the default language, or nil if nothing is registered.
func Default() *Language {
	registry.RLock()
	defer registry.RUnlock()
	return registry.defaultLang
}

// GetForFile returns the language for a given file path, or nil if none matches.
func GetForFile(filePath string) *Language {
	registry.RLock()
	defer registry.RUnlock()

	ext := strings.ToLower(filepath.Ext(filePath))
	return registry.extToLanguage[ext]
}

// ForFile returns the language for filePath, falling back to the default language.
func ForFile(filePath string) *Language {
	if filePath != "" {
		if l := GetForFile(filePath); l != nil {
			return l
		}
	}
	return Default()
}

// GetByName looks a language up by case-insensitive name.
func GetByName(name string) *Language {
	registry.RLock()
	defer registry.RUnlock()
	return registry.nameToLang[strings.ToLower(name)]
}

// GetAll returns all registered languages
func GetAll() []*Language {
	registry.RLock()
	defer registry.RUnlock()

	result := make([]*Language, len(registry.languages))
	copy(result, registry.languages)
	return result
}

package lang

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/bethropolis/quill/internal/types"
)

// Tokenizer turns text into classified spans.
type Tokenizer interface {
	Tokenize(text string) []types.Span
	TokenizeContext(ctx context.Context, text string) ([]types.Span, error)
}

// Language represents a programming language with its lexical grammar
type Language struct {
	// Name is the display name of the language
	Name string

	// Grammar tokenizes documents of this language
	Grammar Tokenizer

	// Extensions maps file extensions to this language
	Extensions []string
}

// Matches reports whether filePath has one of the language's extensions.
func (l *Language) Matches(filePath string) bool {
	ext := strings.ToLower(filepath.Ext(filePath))
	if ext == "" {
		return false
	}
	for _, e := range l.Extensions {
		if strings.ToLower(e) == ext {
			return true
		}
	}
	return false
}

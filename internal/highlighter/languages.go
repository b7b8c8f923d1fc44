// internal/highlighter/languages.go
package highlighter

import (
	"github.com/bethropolis/quill/internal/highlighter/lang"
	"github.com/bethropolis/quill/internal/logger"
)

// JavaKeywords is the keyword set of the Java grammar.
var JavaKeywords = []string{
	"abstract", "assert", "boolean", "break", "byte", "case", "catch",
	"char", "class", "const", "continue", "default", "do", "double",
	"else", "enum", "extends", "final", "finally", "float", "for",
	"goto", "if", "implements", "import", "instanceof", "int", "interface",
	"long", "native", "new", "package", "private", "protected", "public",
	"return", "short", "static", "strictfp", "super", "switch",
	"synchronized", "this", "throw", "throws", "transient", "try",
	"void", "volatile", "while", "record", "sealed", "permits",
}

// CKeywords is the keyword set of the C grammar.
var CKeywords = []string{
	"auto", "break", "case", "char", "const", "continue", "default", "do",
	"double", "else", "enum", "extern", "float", "for", "goto", "if",
	"inline", "int", "long", "register", "restrict", "return", "short",
	"signed", "sizeof", "static", "struct", "switch", "typedef", "union",
	"unsigned", "void", "volatile", "while",
}

// JavaScriptKeywords is the keyword set of the JavaScript grammar.
var JavaScriptKeywords = []string{
	"async", "await", "break", "case", "catch", "class", "const", "continue",
	"debugger", "default", "delete", "do", "else", "export", "extends",
	"finally", "for", "function", "if", "import", "in", "instanceof", "let",
	"new", "return", "super", "switch", "this", "throw", "try", "typeof",
	"var", "void", "while", "with", "yield",
}

// Java returns a new Java grammar.
func Java() *Grammar {
	return NewGrammar("Java", JavaKeywords)
}

// RegisterLanguages registers the built-in grammars. Java is the default language,
// used for untitled documents and unknown extensions.
func RegisterLanguages() {
	logger.DebugTagf("lang", "Registering languages...")

	lang.Register(&lang.Language{
		Name:       "Java",
		Grammar:    Java(),
		Extensions: []string{".java"},
	})

	lang.Register(&lang.Language{
		Name:       "C",
		Grammar:    NewGrammar("C", CKeywords),
		Extensions: []string{".c", ".h"},
	})

	lang.Register(&lang.Language{
		Name:       "JavaScript",
		Grammar:    NewGrammar("JavaScript", JavaScriptKeywords),
		Extensions: []string{".js", ".mjs", ".cjs"},
	})

	lang.SetDefault("Java")
	logger.DebugTagf("lang", "Registration complete. Registered %d languages.", len(lang.GetAll()))
}

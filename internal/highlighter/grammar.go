package highlighter

import "unicode"

// Grammar describes one C-like lexical grammar: a keyword set plus the comment and literal
// delimiters. The tokenizer state machine is the same for every Grammar.
type Grammar struct {
	Name string

	keywords map[string]struct{}

	lineComment  []rune
	blockStart   []rune
	blockEnd     []rune
	stringQuote  rune
	charQuote    rune
	escape       rune
	isIdentStart func(rune) bool
	isIdentPart  func(rune) bool
}

// Option customizes a Grammar.
type Option func(*Grammar)

// WithLineComment sets the line comment marker (default "//").
func WithLineComment(marker string) Option {
	return func(g *Grammar) { g.lineComment = []rune(marker) }
}

// WithBlockComment sets the block comment delimiters (default "/*" and "*/").
func WithBlockComment(start, end string) Option {
	return func(g *Grammar) {
		g.blockStart = []rune(start)
		g.blockEnd = []rune(end)
	}
}

// WithQuotes sets the string and character literal delimiters (default '"' and '\'').
func WithQuotes(str, char rune) Option {
	return func(g *Grammar) {
		g.stringQuote = str
		g.charQuote = char
	}
}

// WithEscape sets the escape character used inside literals (default '\\').
func WithEscape(escape rune) Option {
	return func(g *Grammar) { g.escape = escape }
}

// NewGrammar creates a grammar with C-like delimiters and the given keywords.
func NewGrammar(name string, keywords []string, opts ...Option) *Grammar {
	g := &Grammar{
		Name:         name,
		keywords:     make(map[string]struct{}, len(keywords)),
		lineComment:  []rune("//"),
		blockStart:   []rune("/*"),
		blockEnd:     []rune("*/"),
		stringQuote:  '"',
		charQuote:    '\'',
		escape:       '\\',
		isIdentStart: isIdentStart,
		isIdentPart:  isIdentPart,
	}
	for _, kw := range keywords {
		if kw != "" {
			g.keywords[kw] = struct{}{}
		}
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// IsKeyword reports whether word is in the grammar's keyword set.
func (g *Grammar) IsKeyword(word string) bool {
	_, ok := g.keywords[word]
	return ok
}

// KeywordCount returns the size of the keyword set.
func (g *Grammar) KeywordCount() int {
	return len(g.keywords)
}

func isIdentStart(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}

package highlighter

import (
	"context"

	"github.com/bethropolis/quill/internal/types"
)

// state is the tokenizer automaton state.
type state int

const (
	stateDefault state = iota
	stateString
	stateChar
	stateLineComment
	stateBlockComment
)

// cancelCheckInterval is how many scan steps run between context checks.
const cancelCheckInterval = 4096

// Tokenize classifies text in a single left-to-right pass.
// Offsets in the returned spans are character (rune) offsets. It never fails.
func (g *Grammar) Tokenize(text string) []types.Span {
	spans, _ := g.TokenizeContext(context.Background(), text)
	return spans
}

// TokenizeContext is Tokenize with cancellation. On cancellation it returns ctx.Err()
// and no spans; the input is never modified, so the caller may simply retry.
func (g *Grammar) TokenizeContext(ctx context.Context, text string) ([]types.Span, error) {
	runes := []rune(text)
	n := len(runes)
	spans := make([]types.Span, 0, n/16)

	st := stateDefault
	start := 0 // Start of the span being built when not in stateDefault

	emit := func(end int, kind types.Kind) {
		if end > start {
			spans = append(spans, types.Span{Start: start, End: end, Kind: kind})
		}
		st = stateDefault
	}

	for i, steps := 0, 0; i < n; steps++ {
		if steps%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		switch st {
		case stateDefault:
			r := runes[i]
			switch {
			case hasPrefixAt(runes, i, g.blockStart):
				st, start = stateBlockComment, i
				i += len(g.blockStart)
			case hasPrefixAt(runes, i, g.lineComment):
				st, start = stateLineComment, i
				i += len(g.lineComment)
			case r == g.stringQuote:
				st, start = stateString, i
				i++
			case r == g.charQuote:
				st, start = stateChar, i
				i++
			case g.isIdentPart(r):
				// Consume the whole identifier-shaped run so keywords only match whole words.
				j := i + 1
				for j < n && g.isIdentPart(runes[j]) {
					j++
				}
				if g.isIdentStart(r) && g.IsKeyword(string(runes[i:j])) {
					spans = append(spans, types.Span{Start: i, End: j, Kind: types.KindKeyword})
				}
				i = j
			default:
				i++
			}

		case stateBlockComment:
			if hasPrefixAt(runes, i, g.blockEnd) {
				i += len(g.blockEnd)
				emit(i, types.KindBlockComment)
				continue
			}
			i++

		case stateLineComment:
			if runes[i] == '\n' || runes[i] == '\r' {
				emit(i, types.KindLineComment)
				continue // The line break itself is plain text
			}
			i++

		case stateString, stateChar:
			quote, kind := g.stringQuote, types.KindString
			if st == stateChar {
				quote, kind = g.charQuote, types.KindChar
			}
			switch runes[i] {
			case g.escape:
				i += 2 // The escaped character never closes the literal
			case quote:
				i++
				emit(i, kind)
			default:
				i++
			}
		}
	}

	// Unterminated constructs run to end of text.
	switch st {
	case stateBlockComment:
		emit(n, types.KindBlockComment)
	case stateLineComment:
		emit(n, types.KindLineComment)
	case stateString:
		emit(n, types.KindString)
	case stateChar:
		emit(n, types.KindChar)
	}

	return spans, nil
}

// hasPrefixAt reports whether runes[i:] starts with prefix. An empty prefix never matches,
// which lets a grammar disable a comment style.
func hasPrefixAt(runes []rune, i int, prefix []rune) bool {
	if len(prefix) == 0 || len(runes)-i < len(prefix) {
		return false
	}
	for k, r := range prefix {
		if runes[i+k] != r {
			return false
		}
	}
	return true
}

package highlighter

import (
	"context"
	"strings"
	"testing"

	"github.com/bethropolis/quill/internal/highlighter/lang"
	"github.com/bethropolis/quill/internal/types"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func span(start, end int, kind types.Kind) types.Span {
	return types.Span{Start: start, End: end, Kind: kind}
}

func TestTokenize(t *testing.T) {
	g := Java()
	tests := []struct {
		name  string
		input string
		want  []types.Span
	}{
		{
			name:  "keyword at start",
			input: "if (x) { }",
			want:  []types.Span{span(0, 2, types.KindKeyword)},
		},
		{
			name:  "whole word only",
			input: "classify",
			want:  []types.Span{},
		},
		{
			name:  "keyword prefixed by digit is not a keyword",
			input: "1if",
			want:  []types.Span{},
		},
		{
			name:  "identifier with dollar",
			input: "$if if_ if",
			want:  []types.Span{span(8, 10, types.KindKeyword)},
		},
		{
			name:  "comment marker inside string",
			input: "\"// not a comment\"\nint x;",
			want: []types.Span{
				span(0, 18, types.KindString),
				span(19, 22, types.KindKeyword),
			},
		},
		{
			name:  "block comment marker inside string",
			input: `s = "/* no";`,
			want:  []types.Span{span(4, 11, types.KindString)},
		},
		{
			name:  "unterminated string",
			input: `"abc`,
			want:  []types.Span{span(0, 4, types.KindString)},
		},
		{
			name:  "escaped quote inside string",
			input: `"a\"b" if`,
			want:  []types.Span{span(0, 6, types.KindString), span(7, 9, types.KindKeyword)},
		},
		{
			name:  "even backslashes close the string",
			input: `"a\\" if`,
			want:  []types.Span{span(0, 5, types.KindString), span(6, 8, types.KindKeyword)},
		},
		{
			name:  "odd backslashes keep the string open",
			input: `"a\\\" if`,
			want:  []types.Span{span(0, 9, types.KindString)},
		},
		{
			name:  "char literal",
			input: `char c = '\'';`,
			want: []types.Span{
				span(0, 4, types.KindKeyword),
				span(9, 13, types.KindChar),
			},
		},
		{
			name:  "unterminated char",
			input: `'x`,
			want:  []types.Span{span(0, 2, types.KindChar)},
		},
		{
			name:  "line comment stops before newline",
			input: "// return\nreturn",
			want: []types.Span{
				span(0, 9, types.KindLineComment),
				span(10, 16, types.KindKeyword),
			},
		},
		{
			name:  "line comment stops before carriage return",
			input: "//x\r\nint",
			want: []types.Span{
				span(0, 3, types.KindLineComment),
				span(5, 8, types.KindKeyword),
			},
		},
		{
			name:  "line comment to end of text",
			input: "x; // done",
			want:  []types.Span{span(3, 10, types.KindLineComment)},
		},
		{
			name:  "block comment spans lines",
			input: "/* if\n while */ for",
			want: []types.Span{
				span(0, 15, types.KindBlockComment),
				span(16, 19, types.KindKeyword),
			},
		},
		{
			name:  "block comment has priority over line comment",
			input: "/*// x */",
			want:  []types.Span{span(0, 9, types.KindBlockComment)},
		},
		{
			name:  "slash star slash does not close",
			input: "/*/ int",
			want:  []types.Span{span(0, 7, types.KindBlockComment)},
		},
		{
			name:  "unterminated block comment",
			input: "int /* open",
			want:  []types.Span{span(0, 3, types.KindKeyword), span(4, 11, types.KindBlockComment)},
		},
		{
			name:  "quote inside comment",
			input: `// it's "fine"`,
			want:  []types.Span{span(0, 14, types.KindLineComment)},
		},
		{
			name:  "offsets count characters",
			input: `"héllo" if`,
			want:  []types.Span{span(0, 7, types.KindString), span(8, 10, types.KindKeyword)},
		},
		{
			name:  "empty",
			input: "",
			want:  []types.Span{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := g.Tokenize(tt.input)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestCustomDelimiters(t *testing.T) {
	g := NewGrammar("Script", []string{"fn"},
		WithLineComment("#"),
		WithBlockComment("", ""),
		WithQuotes('`', 0),
		WithEscape('^'),
	)
	got := g.Tokenize("fn `a^`b` # /* not block")
	require.Equal(t, []types.Span{
		span(0, 2, types.KindKeyword),
		span(3, 9, types.KindString),
		span(10, 24, types.KindLineComment),
	}, got)
}

func TestKeywordSetIsSubstitutable(t *testing.T) {
	c := NewGrammar("C", CKeywords)
	java := Java()

	require.Equal(t, []types.Span{span(0, 6, types.KindKeyword)}, c.Tokenize("struct"))
	require.Empty(t, java.Tokenize("struct"))
	require.Less(t, 0, c.KeywordCount())
}

func TestTokenizeContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	spans, err := Java().TokenizeContext(ctx, strings.Repeat("int x; ", 10))
	require.ErrorIs(t, err, context.Canceled)
	require.Nil(t, spans)
}

func TestRegisterLanguages(t *testing.T) {
	lang.Reset()
	t.Cleanup(lang.Reset)

	RegisterLanguages()
	require.Equal(t, "Java", lang.Default().Name)
	require.Equal(t, "C", lang.ForFile("main.h").Name)
	require.Equal(t, "JavaScript", lang.ForFile("app.js").Name)
	require.Equal(t, "Java", lang.ForFile("notes.txt").Name)
}

func TestTokenizeSpanInvariantsProperty(t *testing.T) {
	g := Java()
	rapid.Check(t, func(t *rapid.T) {
		text := rapid.StringMatching(`[a-z/*"'\\ \n\r{}()é]{0,80}`).Draw(t, "text")
		spans := g.Tokenize(text)
		n := len([]rune(text))

		prevEnd := 0
		for _, s := range spans {
			require.Less(t, s.Start, s.End, "spans are non-empty")
			require.GreaterOrEqual(t, s.Start, prevEnd, "spans are ordered and disjoint")
			require.LessOrEqual(t, s.End, n, "spans stay inside the text")
			require.NotEqual(t, types.KindPlain, s.Kind)
			prevEnd = s.End
		}
	})
}

func TestKeywordSpansAreWholeWordsProperty(t *testing.T) {
	g := Java()
	rapid.Check(t, func(t *rapid.T) {
		text := rapid.StringMatching(`(if|for|class|ify|x|_| |\(|1){0,20}`).Draw(t, "text")
		runes := []rune(text)
		for _, s := range g.Tokenize(text) {
			if s.Kind != types.KindKeyword {
				continue
			}
			require.True(t, g.IsKeyword(string(runes[s.Start:s.End])))
			if s.Start > 0 {
				require.False(t, isIdentPart(runes[s.Start-1]))
			}
			if s.End < len(runes) {
				require.False(t, isIdentPart(runes[s.End]))
			}
		}
	})
}

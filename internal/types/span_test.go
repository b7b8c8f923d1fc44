package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindPlain, "plain"},
		{KindKeyword, "keyword"},
		{KindString, "string"},
		{KindChar, "character"},
		{KindLineComment, "comment.line"},
		{KindBlockComment, "comment.block"},
		{Kind(42), "plain"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			require.Equal(t, tt.want, tt.kind.String())
		})
	}
}

func TestSpanContains(t *testing.T) {
	s := Span{Start: 2, End: 5, Kind: KindKeyword}
	require.Equal(t, 3, s.Len())
	require.False(t, s.Contains(1))
	require.True(t, s.Contains(2))
	require.True(t, s.Contains(4))
	require.False(t, s.Contains(5), "end is exclusive")
}

func TestCover(t *testing.T) {
	tests := []struct {
		name   string
		spans  []Span
		length int
		want   []Span
	}{
		{
			name:   "empty text",
			spans:  []Span{{0, 2, KindKeyword}},
			length: 0,
			want:   nil,
		},
		{
			name:   "no spans",
			length: 4,
			want:   []Span{{0, 4, KindPlain}},
		},
		{
			name:   "gaps filled",
			spans:  []Span{{2, 4, KindKeyword}, {6, 8, KindString}},
			length: 10,
			want: []Span{
				{0, 2, KindPlain},
				{2, 4, KindKeyword},
				{4, 6, KindPlain},
				{6, 8, KindString},
				{8, 10, KindPlain},
			},
		},
		{
			name:   "stale spans clamped",
			spans:  []Span{{0, 3, KindKeyword}, {5, 9, KindLineComment}, {12, 14, KindString}},
			length: 7,
			want:   []Span{{0, 3, KindKeyword}, {3, 5, KindPlain}, {5, 7, KindLineComment}},
		},
		{
			name:   "full coverage untouched",
			spans:  []Span{{0, 2, KindKeyword}, {2, 5, KindBlockComment}},
			length: 5,
			want:   []Span{{0, 2, KindKeyword}, {2, 5, KindBlockComment}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Cover(tt.spans, tt.length))
		})
	}
}

func TestEditInfoDelta(t *testing.T) {
	require.Equal(t, 3, EditInfo{Offset: 0, NewLen: 3}.Delta())
	require.Equal(t, -2, EditInfo{Offset: 1, OldLen: 4, NewLen: 2}.Delta())
	require.True(t, EditInfo{Offset: 7}.IsNoop())
}

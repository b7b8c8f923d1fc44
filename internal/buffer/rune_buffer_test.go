package buffer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInsert(t *testing.T) {
	tests := []struct {
		name    string
		initial string
		offset  int
		text    string
		want    string
		wantErr bool
	}{
		{"into empty", "", 0, "if (x) { }", "if (x) { }", false},
		{"at start", "world", 0, "hello ", "hello world", false},
		{"at end", "hello", 5, "!", "hello!", false},
		{"middle", "helo", 2, "l", "hello", false},
		{"multibyte offsets are characters", "héllo", 2, "X", "héXllo", false},
		{"negative offset", "abc", -1, "x", "abc", true},
		{"past end", "abc", 4, "x", "abc", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewRuneBuffer(tt.initial)
			info, err := b.Insert(tt.offset, tt.text)
			if tt.wantErr {
				require.Error(t, err)
				require.True(t, errors.Is(err, ErrOutOfRange))
				require.False(t, b.IsModified())
				require.Zero(t, b.Version())
			} else {
				require.NoError(t, err)
				require.True(t, b.IsModified())
				require.Equal(t, tt.offset, info.Offset)
				require.Equal(t, len([]rune(tt.text)), info.NewLen)
			}
			require.Equal(t, tt.want, b.Text())
		})
	}
}

func TestDelete(t *testing.T) {
	tests := []struct {
		name        string
		initial     string
		offset      int
		length      int
		want        string
		wantRemoved string
		wantErr     bool
	}{
		{"keyword", "if (x) { }", 0, 2, " (x) { }", "if", false},
		{"whole", "abc", 0, 3, "", "abc", false},
		{"tail", "abcdef", 3, 3, "abc", "def", false},
		{"multibyte", "añb", 1, 1, "ab", "ñ", false},
		{"range past end", "abc", 2, 2, "abc", "", true},
		{"negative length", "abc", 1, -1, "abc", "", true},
		{"offset past end", "abc", 4, 0, "abc", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewRuneBuffer(tt.initial)
			removed, _, err := b.Delete(tt.offset, tt.length)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrOutOfRange)
				require.False(t, b.IsModified())
			} else {
				require.NoError(t, err)
				require.True(t, b.IsModified())
			}
			require.Equal(t, tt.wantRemoved, removed)
			require.Equal(t, tt.want, b.Text())
		})
	}
}

func TestZeroLengthEditsAreNoops(t *testing.T) {
	b := NewRuneBuffer("abc")

	_, err := b.Insert(1, "")
	require.NoError(t, err)
	_, _, err = b.Delete(3, 0)
	require.NoError(t, err)
	_, _, err = b.Replace(0, 0, "")
	require.NoError(t, err)

	require.False(t, b.IsModified())
	require.Zero(t, b.Version())
	require.Equal(t, "abc", b.Text())
}

func TestReplace(t *testing.T) {
	b := NewRuneBuffer("int x = 1;")
	removed, info, err := b.Replace(0, 3, "long")
	require.NoError(t, err)
	require.Equal(t, "int", removed)
	require.Equal(t, "long x = 1;", b.Text())
	require.Equal(t, 1, info.Delta())
	require.Equal(t, uint64(1), b.Version(), "replace is one content change")

	_, _, err = b.Replace(8, 10, "zz")
	require.ErrorIs(t, err, ErrOutOfRange)
	require.Equal(t, "long x = 1;", b.Text(), "failed replace leaves text intact")
}

func TestSliceAndReset(t *testing.T) {
	b := NewRuneBuffer("héllo world")
	s, err := b.Slice(1, 5)
	require.NoError(t, err)
	require.Equal(t, "éllo", s)

	_, err = b.Slice(5, 2)
	require.ErrorIs(t, err, ErrOutOfRange)

	_, err = b.Insert(0, "x")
	require.NoError(t, err)
	require.True(t, b.IsModified())

	b.Reset("fresh")
	require.False(t, b.IsModified())
	require.Equal(t, "fresh", b.Text())
	require.Equal(t, 5, b.Len())
	require.Equal(t, uint64(2), b.Version())
}

// internal/types/span.go
package types

// Kind is the lexical classification of a span of text.
type Kind int

const (
	KindPlain Kind = iota
	KindKeyword
	KindString
	KindChar
	KindLineComment
	KindBlockComment
)

// String returns the theme style name for the kind.
func (k Kind) String() string {
	switch k {
	case KindKeyword:
		return "keyword"
	case KindString:
		return "string"
	case KindChar:
		return "character"
	case KindLineComment:
		return "comment.line"
	case KindBlockComment:
		return "comment.block"
	default:
		return "plain"
	}
}

// Span is a classified half-open character range [Start, End).
// Spans are coordinates into one text snapshot and carry no text themselves.
type Span struct {
	Start int
	End   int
	Kind  Kind
}

// Len returns the number of characters covered by the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// Contains reports whether offset lies inside the span.
func (s Span) Contains(offset int) bool {
	return offset >= s.Start && offset < s.End
}

// Cover returns a gap-free list of spans over [0, length).
// Gaps between the input spans become KindPlain spans; spans reaching past length are
// clamped and spans starting at or past length are dropped, so stale span lists can be
// painted safely against a shorter text.
func Cover(spans []Span, length int) []Span {
	if length <= 0 {
		return nil
	}
	result := make([]Span, 0, len(spans)*2+1)
	pos := 0
	for _, s := range spans {
		if s.Start >= length {
			break
		}
		if s.Start < pos { // Overlaps the previous span, skip what was already covered
			s.Start = pos
		}
		if s.End > length {
			s.End = length
		}
		if s.End <= s.Start {
			continue
		}
		if s.Start > pos {
			result = append(result, Span{Start: pos, End: s.Start, Kind: KindPlain})
		}
		result = append(result, s)
		pos = s.End
	}
	if pos < length {
		result = append(result, Span{Start: pos, End: length, Kind: KindPlain})
	}
	return result
}

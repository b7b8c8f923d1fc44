package render

import "github.com/rivo/uniseg"

// Lines returns the rune offset at which each line of text starts.
// A trailing newline starts an empty last line.
func Lines(text []rune) []int {
	starts := []int{0}
	for i, r := range text {
		if r == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// LineCol converts a rune offset to a zero-based line and rune column.
// Offsets outside the text are clamped.
func LineCol(starts []int, textLen, offset int) (line, col int) {
	offset = clamp(offset, 0, textLen)
	for line+1 < len(starts) && starts[line+1] <= offset {
		line++
	}
	return line, offset - starts[line]
}

// Offset converts a line and rune column back to a rune offset, clamping the
// column to the line's length.
func Offset(starts []int, textLen, line, col int) int {
	line = clamp(line, 0, len(starts)-1)
	end := textLen
	if line+1 < len(starts) {
		end = starts[line+1] - 1 // Exclude the newline
	}
	return clamp(starts[line]+col, starts[line], end)
}

// visualColumn returns the display column of rune index col in line, expanding tabs.
func visualColumn(line []rune, col, tabWidth int) int {
	visual := 0
	runeIndex := 0
	gr := uniseg.NewGraphemes(string(line))
	for gr.Next() && runeIndex < col {
		runes := gr.Runes()
		if runes[0] == '\t' {
			visual += tabStop(visual, tabWidth)
		} else {
			visual += gr.Width()
		}
		runeIndex += len(runes)
	}
	return visual
}

// tabStop returns the width of a tab starting at visual column x.
func tabStop(x, tabWidth int) int {
	if tabWidth <= 0 {
		tabWidth = 4
	}
	return tabWidth - x%tabWidth
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Package render paints document snapshots onto a terminal screen.
package render

import (
	"fmt"
	"math"

	"github.com/bethropolis/quill/internal/theme"
	"github.com/bethropolis/quill/internal/types"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

// View is everything needed to draw one frame of a document.
type View struct {
	Text     string
	Spans    []types.Span // May be stale; clamped to Text
	Title    string
	Language string
	Modified bool
	Cursor   int // Rune offset
	TopLine  int // First visible line
	LeftCol  int // First visible display column
	TabWidth int
	Message  string // Replaces the status line when set
	Theme    *theme.Theme
}

// Document draws the text area and status line of view onto screen.
func Document(screen tcell.Screen, view View) {
	width, height := screen.Size()
	if width <= 0 || height <= 0 {
		return
	}
	th := view.Theme
	if th == nil {
		th = &theme.Dark
	}

	runes := []rune(view.Text)
	starts := Lines(runes)
	spans := types.Cover(view.Spans, len(runes))
	defaultStyle := th.GetStyle(theme.StyleDefault)
	gutterStyle := th.GetStyle("LineNumber")
	textHeight := height - 1

	maxDigits := int(math.Log10(float64(len(starts)))) + 1
	gutterWidth := maxDigits + 1
	if gutterWidth >= width {
		gutterWidth = 0
	}
	textWidth := width - gutterWidth

	span := 0
	for screenY := 0; screenY < textHeight; screenY++ {
		for x := 0; x < width; x++ {
			screen.SetContent(x, screenY, ' ', nil, defaultStyle)
		}
		lineIdx := view.TopLine + screenY
		if lineIdx >= len(starts) {
			continue
		}
		if gutterWidth > 0 {
			drawString(screen, 0, screenY, gutterWidth-1, fmt.Sprintf("%*d", maxDigits, lineIdx+1), gutterStyle)
		}

		lineStart := starts[lineIdx]
		lineEnd := len(runes)
		if lineIdx+1 < len(starts) {
			lineEnd = starts[lineIdx+1] - 1
		}

		offset := lineStart
		visualX := 0
		gr := uniseg.NewGraphemes(string(runes[lineStart:lineEnd]))
		for gr.Next() {
			cluster := gr.Runes()
			clusterWidth := gr.Width()
			if cluster[0] == '\t' {
				clusterWidth = tabStop(visualX, view.TabWidth)
			} else if clusterWidth == 0 {
				// Control characters such as a CR before the newline take no cells.
				offset += len(cluster)
				continue
			}

			for span < len(spans) && spans[span].End <= offset {
				span++
			}
			style := defaultStyle
			if span < len(spans) {
				style = th.StyleForKind(spans[span].Kind)
			}

			screenX := visualX - view.LeftCol + gutterWidth
			if visualX >= view.LeftCol && screenX+clusterWidth <= width {
				if cluster[0] == '\t' {
					for i := 0; i < clusterWidth; i++ {
						screen.SetContent(screenX+i, screenY, ' ', nil, style)
					}
				} else {
					screen.SetContent(screenX, screenY, cluster[0], cluster[1:], style)
					for cw := 1; cw < clusterWidth; cw++ {
						screen.SetContent(screenX+cw, screenY, ' ', nil, style)
					}
				}
			}

			visualX += clusterWidth
			offset += len(cluster)
			if visualX >= view.LeftCol+textWidth {
				break
			}
		}
	}

	drawStatus(screen, width, height-1, view, th)
	placeCursor(screen, runes, starts, view, gutterWidth, textWidth, textHeight)
}

// StatusText builds the default status line.
func StatusText(view View) string {
	modified := ""
	if view.Modified {
		modified = " [+]"
	}
	return fmt.Sprintf("%s%s -- %s -- %d", view.Title, modified, view.Language, view.Cursor)
}

func drawStatus(screen tcell.Screen, width, y int, view View, th *theme.Theme) {
	style := th.GetStyle(theme.StyleStatusBar)
	if view.Modified {
		style = th.GetStyle(theme.StyleStatusBarModified)
	}
	for x := 0; x < width; x++ {
		screen.SetContent(x, y, ' ', nil, style)
	}
	text := view.Message
	if text == "" {
		text = StatusText(view)
	}
	drawString(screen, 0, y, width, text, style)
}

// drawString draws text from x, stopping before maxWidth columns are exceeded.
func drawString(screen tcell.Screen, x, y, maxWidth int, text string, style tcell.Style) {
	currentX := 0
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		clusterWidth := gr.Width()
		if currentX+clusterWidth > maxWidth {
			break
		}
		runes := gr.Runes()
		screen.SetContent(x+currentX, y, runes[0], runes[1:], style)
		currentX += clusterWidth
	}
}

func placeCursor(screen tcell.Screen, runes []rune, starts []int, view View, gutterWidth, textWidth, textHeight int) {
	line, col := LineCol(starts, len(runes), view.Cursor)
	lineEnd := len(runes)
	if line+1 < len(starts) {
		lineEnd = starts[line+1] - 1
	}
	x := visualColumn(runes[starts[line]:lineEnd], col, view.TabWidth) - view.LeftCol
	y := line - view.TopLine
	if x < 0 || x >= textWidth || y < 0 || y >= textHeight {
		screen.HideCursor()
		return
	}
	screen.ShowCursor(x+gutterWidth, y)
}

// ScrollToCursor adjusts view's TopLine and LeftCol so the cursor is inside a
// screen of the given size.
func ScrollToCursor(view *View, width, height int) {
	runes := []rune(view.Text)
	starts := Lines(runes)
	line, col := LineCol(starts, len(runes), view.Cursor)

	textHeight := height - 1
	if textHeight < 1 {
		textHeight = 1
	}
	if line < view.TopLine {
		view.TopLine = line
	} else if line >= view.TopLine+textHeight {
		view.TopLine = line - textHeight + 1
	}

	maxDigits := int(math.Log10(float64(len(starts)))) + 1
	textWidth := width - (maxDigits + 1)
	if textWidth < 1 {
		textWidth = 1
	}
	lineEnd := len(runes)
	if line+1 < len(starts) {
		lineEnd = starts[line+1] - 1
	}
	x := visualColumn(runes[starts[line]:lineEnd], col, view.TabWidth)
	if x < view.LeftCol {
		view.LeftCol = x
	} else if x >= view.LeftCol+textWidth {
		view.LeftCol = x - textWidth + 1
	}
}

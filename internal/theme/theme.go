// internal/theme/theme.go
package theme

import (
	"strings"

	"github.com/bethropolis/quill/internal/logger"
	"github.com/bethropolis/quill/internal/types"
	"github.com/gdamore/tcell/v2"
)

// Style names used by the renderer besides the span kinds.
const (
	StyleDefault           = "Default"
	StyleStatusBar         = "StatusBar"
	StyleStatusBarModified = "StatusBarModified"
	StyleCursor            = "Cursor"
)

// Theme maps style names to terminal styles. Span kinds use Kind.String() as their name.
type Theme struct {
	Name   string
	IsDark bool
	Styles map[string]tcell.Style
}

// GetStyle looks up name, then the part before its first dot, then "Default".
func (t *Theme) GetStyle(name string) tcell.Style {
	if style, ok := t.Styles[name]; ok {
		return style
	}

	if dotIndex := strings.Index(name, "."); dotIndex != -1 {
		if style, ok := t.Styles[name[:dotIndex]]; ok {
			return style
		}
	}

	if defStyle, ok := t.Styles[StyleDefault]; ok {
		return defStyle
	}

	logger.Warnf("Theme '%s': Style '%s' and 'Default' style not found, using tcell default.", t.Name, name)
	return tcell.StyleDefault
}

// StyleForKind returns the style for a span kind. Plain text uses "Default".
func (t *Theme) StyleForKind(kind types.Kind) tcell.Style {
	if kind == types.KindPlain {
		return t.GetStyle(StyleDefault)
	}
	return t.GetStyle(kind.String())
}

// Dark is the default built-in theme.
var Dark Theme

// Light is a built-in theme for light terminals.
var Light Theme

func init() {
	background := tcell.NewHexColor(0x2a2f38)
	foreground := tcell.NewHexColor(0xc5cdd9)
	comment := tcell.NewHexColor(0x5c6370)
	yellow := tcell.NewHexColor(0xe5c07b)
	green := tcell.NewHexColor(0x98c379)
	cyan := tcell.NewHexColor(0x56b6c2)
	blue := tcell.NewHexColor(0x61afef)

	base := tcell.StyleDefault.Background(tcell.ColorReset).Foreground(foreground)
	Dark = Theme{
		Name:   "Quill Dark",
		IsDark: true,
		Styles: map[string]tcell.Style{
			StyleDefault:           base,
			StyleCursor:            base.Reverse(true),
			StyleStatusBar:         tcell.StyleDefault.Background(background).Foreground(foreground),
			StyleStatusBarModified: tcell.StyleDefault.Background(background).Foreground(yellow),

			"keyword":   base.Foreground(blue).Bold(true),
			"string":    base.Foreground(green),
			"character": base.Foreground(cyan),
			"comment":   base.Foreground(comment).Italic(true),
		},
	}

	paper := tcell.NewHexColor(0xfafafa)
	ink := tcell.NewHexColor(0x383a42)
	lightBase := tcell.StyleDefault.Background(paper).Foreground(ink)
	Light = Theme{
		Name:   "Quill Light",
		IsDark: false,
		Styles: map[string]tcell.Style{
			StyleDefault:           lightBase,
			StyleCursor:            lightBase.Reverse(true),
			StyleStatusBar:         tcell.StyleDefault.Background(tcell.NewHexColor(0xe5e5e6)).Foreground(ink),
			StyleStatusBarModified: tcell.StyleDefault.Background(tcell.NewHexColor(0xe5e5e6)).Foreground(tcell.NewHexColor(0xc18401)),

			"keyword":       lightBase.Foreground(tcell.NewHexColor(0xa626a4)).Bold(true),
			"string":        lightBase.Foreground(tcell.NewHexColor(0x50a14f)),
			"character":     lightBase.Foreground(tcell.NewHexColor(0x0184bc)),
			"comment":       lightBase.Foreground(tcell.NewHexColor(0xa0a1a7)).Italic(true),
			"comment.block": lightBase.Foreground(tcell.NewHexColor(0xa0a1a7)),
		},
	}
}

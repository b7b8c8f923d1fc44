package theme

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bethropolis/quill/internal/types"
	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetStyleFallback(t *testing.T) {
	th := &Theme{
		Name: "test",
		Styles: map[string]tcell.Style{
			"Default": tcell.StyleDefault.Foreground(tcell.ColorWhite),
			"comment": tcell.StyleDefault.Foreground(tcell.ColorGray),
		},
	}
	assert.Equal(t, th.Styles["comment"], th.GetStyle("comment.line"), "dotted name falls back to base")
	assert.Equal(t, th.Styles["Default"], th.GetStyle("keyword"))
	assert.Equal(t, tcell.StyleDefault, (&Theme{}).GetStyle("keyword"))
}

func TestStyleForKind(t *testing.T) {
	assert.Equal(t, Dark.Styles["keyword"], Dark.StyleForKind(types.KindKeyword))
	assert.Equal(t, Dark.Styles["comment"], Dark.StyleForKind(types.KindBlockComment))
	assert.Equal(t, Dark.Styles["Default"], Dark.StyleForKind(types.KindPlain))
	assert.Equal(t, Light.Styles["comment.block"], Light.StyleForKind(types.KindBlockComment))
}

func writeTheme(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadThemeFromFile(t *testing.T) {
	path := writeTheme(t, t.TempDir(), "solar.toml", `
is_dark = true

[styles.Default]
fg = "#112233"
bg = "black"

[styles.keyword]
bold = true

[styles.string]
fg = "not-a-color"
`)
	th, err := LoadThemeFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "solar", th.Name, "name defaults to the file name")
	assert.True(t, th.IsDark)

	base := tcell.StyleDefault.Foreground(tcell.NewHexColor(0x112233)).Background(tcell.ColorBlack)
	assert.Equal(t, base, th.Styles["Default"])
	assert.Equal(t, base.Bold(true), th.Styles["keyword"], "styles inherit from Default")
	assert.NotContains(t, th.Styles, "string", "invalid styles are skipped")
}

func TestLoadThemeFromFileErrors(t *testing.T) {
	_, err := LoadThemeFromFile(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)

	path := writeTheme(t, t.TempDir(), "bad.toml", "[styles.Default]\nfg = \"#12\"\n")
	_, err = LoadThemeFromFile(path)
	require.ErrorContains(t, err, "must be #RRGGBB")
}

func TestManager(t *testing.T) {
	dir := t.TempDir()
	writeTheme(t, dir, "a.toml", "name = \"Mono\"\n[styles.Default]\nfg = \"white\"\n")
	writeTheme(t, dir, "broken.toml", "name = ")
	writeTheme(t, dir, "notes.txt", "ignored")

	m := NewManager()
	assert.Equal(t, Dark.Name, m.Current().Name)

	n, err := m.LoadThemesFromDir(dir)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, []string{"Mono", "Quill Dark", "Quill Light"}, m.ListThemes())

	require.NoError(t, m.SetTheme("mono"))
	assert.Equal(t, "Mono", m.Current().Name)
	require.Error(t, m.SetTheme("nope"))

	n, err = m.LoadThemesFromDir(filepath.Join(dir, "absent"))
	require.NoError(t, err)
	assert.Zero(t, n)
}

package app

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/bethropolis/quill/internal/core"
	"github.com/bethropolis/quill/internal/highlighter"
	"github.com/gdamore/tcell/v2"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	highlighter.RegisterLanguages()
	os.Exit(m.Run())
}

type memClipboard struct{ text string }

func (m *memClipboard) ReadAll() (string, error)   { return m.text, nil }
func (m *memClipboard) WriteAll(text string) error { m.text = text; return nil }

func newTestApp(t *testing.T) (*App, tcell.SimulationScreen, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	screen := tcell.NewSimulationScreen("UTF-8")
	a, err := New(Options{
		Screen:    screen,
		Store:     core.NewFileStore(fs),
		Clipboard: &memClipboard{},
	})
	require.NoError(t, err)
	screen.SetSize(40, 5)
	return a, screen, fs
}

func typeText(a *App, text string) {
	for _, r := range text {
		switch r {
		case '\n':
			a.HandleKey(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
		default:
			a.HandleKey(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
		}
	}
}

func press(a *App, key tcell.Key) bool {
	return a.HandleKey(tcell.NewEventKey(key, 0, tcell.ModNone))
}

func rowText(s tcell.SimulationScreen, y int) string {
	w, _ := s.Size()
	var b strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := s.GetContent(x, y)
		b.WriteRune(r)
	}
	return strings.TrimRight(b.String(), " ")
}

func TestTypingAndDrawing(t *testing.T) {
	a, screen, _ := newTestApp(t)
	require.NoError(t, a.Open("/Main.java"))

	typeText(a, "int x;\nif")
	assert.Equal(t, "int x;\nif", a.Active().Text())
	assert.Equal(t, 9, a.Cursor())

	a.Draw()
	assert.Equal(t, "1 int x;", rowText(screen, 0))
	assert.Equal(t, "2 if", rowText(screen, 1))
	assert.Equal(t, "Main.java [+] -- Java -- 9", rowText(screen, 4))
}

func TestCursorMovement(t *testing.T) {
	a, _, _ := newTestApp(t)
	require.NoError(t, a.Open(""))
	typeText(a, "abcd\nxy")

	press(a, tcell.KeyUp)
	assert.Equal(t, 2, a.Cursor(), "column is kept")
	press(a, tcell.KeyEnd)
	assert.Equal(t, 4, a.Cursor())
	press(a, tcell.KeyDown)
	assert.Equal(t, 7, a.Cursor(), "column clamps to the shorter line")
	press(a, tcell.KeyHome)
	assert.Equal(t, 5, a.Cursor())
	press(a, tcell.KeyLeft)
	press(a, tcell.KeyLeft)
	assert.Equal(t, 3, a.Cursor())
}

func TestBackspaceDeleteAndUndo(t *testing.T) {
	a, _, _ := newTestApp(t)
	require.NoError(t, a.Open(""))
	typeText(a, "abc")

	press(a, tcell.KeyBackspace2)
	assert.Equal(t, "ab", a.Active().Text())
	press(a, tcell.KeyHome)
	press(a, tcell.KeyDelete)
	assert.Equal(t, "b", a.Active().Text())

	press(a, tcell.KeyCtrlZ)
	assert.Equal(t, "ab", a.Active().Text())
	assert.Equal(t, 1, a.Cursor(), "cursor follows the undone change")
	press(a, tcell.KeyCtrlY)
	assert.Equal(t, "b", a.Active().Text())

	for a.Active().CanUndo() {
		press(a, tcell.KeyCtrlZ)
	}
	assert.Equal(t, "", a.Active().Text())
	press(a, tcell.KeyCtrlZ)
	assert.Equal(t, "Nothing to undo", a.Message())
}

func TestSave(t *testing.T) {
	a, _, fs := newTestApp(t)
	require.NoError(t, a.Open("/x.c"))
	typeText(a, "int main;")

	press(a, tcell.KeyCtrlS)
	assert.Equal(t, "Saved x.c", a.Message())
	assert.False(t, a.Active().IsModified())

	data, err := afero.ReadFile(fs, "/x.c")
	require.NoError(t, err)
	assert.Equal(t, "int main;", string(data))
}

func TestSaveUntitled(t *testing.T) {
	a, _, _ := newTestApp(t)
	require.NoError(t, a.Open(""))
	typeText(a, "x")
	press(a, tcell.KeyCtrlS)
	assert.Contains(t, a.Message(), "No file name")
	assert.True(t, a.Active().IsModified())
}

func TestCutCopyPasteLine(t *testing.T) {
	a, _, _ := newTestApp(t)
	require.NoError(t, a.Open(""))
	typeText(a, "one\ntwo")
	press(a, tcell.KeyUp)

	press(a, tcell.KeyCtrlK)
	assert.Equal(t, "two", a.Active().Text())
	assert.Equal(t, 0, a.Cursor())

	press(a, tcell.KeyEnd)
	press(a, tcell.KeyCtrlV)
	assert.Equal(t, "twoone\n", a.Active().Text())

	press(a, tcell.KeyCtrlC)
	assert.Equal(t, "Copied line", a.Message())
}

func TestTabs(t *testing.T) {
	a, _, fs := newTestApp(t)
	require.NoError(t, afero.WriteFile(fs, "/a.java", []byte("class A {}"), 0644))
	require.NoError(t, a.Open("/a.java"))
	require.NoError(t, a.Open("/b.js"))
	require.NoError(t, a.Open("/a.java"))
	assert.Equal(t, 2, a.Workspace().Len(), "reopening a file reuses its tab")
	assert.Equal(t, "a.java", a.Active().Title())

	press(a, tcell.KeyCtrlN)
	assert.Equal(t, "b.js", a.Active().Title())
}

func TestRunQuitsAfterConfirm(t *testing.T) {
	a, screen, _ := newTestApp(t)
	require.NoError(t, a.Open(""))

	done := make(chan error, 1)
	go func() { done <- a.Run() }()

	screen.InjectKey(tcell.KeyRune, 'x', tcell.ModNone)
	screen.InjectKey(tcell.KeyCtrlQ, 0, tcell.ModCtrl)
	screen.InjectKey(tcell.KeyCtrlQ, 0, tcell.ModCtrl)

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after Ctrl+Q")
	}
	assert.Zero(t, a.Workspace().Len())
}

func TestQuitConfirmsUnsavedBackgroundTab(t *testing.T) {
	a, _, _ := newTestApp(t)
	require.NoError(t, a.Open("/a.java"))
	typeText(a, "x")
	require.NoError(t, a.Open("/b.java"))
	require.Equal(t, "b.java", a.Active().Title())
	require.False(t, a.Active().IsModified())

	press(a, tcell.KeyCtrlQ)
	assert.False(t, a.quitting, "first Ctrl+Q only warns")
	assert.Contains(t, a.Message(), "Unsaved changes")

	press(a, tcell.KeyCtrlQ)
	assert.True(t, a.quitting)
}

func TestQuitWithoutChangesIsImmediate(t *testing.T) {
	a, _, _ := newTestApp(t)
	require.NoError(t, a.Open("/a.java"))
	require.NoError(t, a.Open("/b.java"))

	press(a, tcell.KeyCtrlQ)
	assert.True(t, a.quitting)
}

// internal/app/app.go
package app

import (
	"errors"
	"fmt"

	"github.com/bethropolis/quill/internal/config"
	"github.com/bethropolis/quill/internal/core"
	"github.com/bethropolis/quill/internal/core/clipboard"
	"github.com/bethropolis/quill/internal/core/highlight"
	"github.com/bethropolis/quill/internal/event"
	"github.com/bethropolis/quill/internal/input"
	"github.com/bethropolis/quill/internal/logger"
	"github.com/bethropolis/quill/internal/render"
	"github.com/bethropolis/quill/internal/theme"
	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
)

// Options configures an App. Zero fields get defaults.
type Options struct {
	Config    *config.Config
	Screen    tcell.Screen      // nil opens the terminal
	Store     *core.FileStore   // nil uses the host filesystem
	Clipboard clipboard.Backend // nil uses the system clipboard when enabled
	Themes    *theme.Manager
}

// viewState is the per-tab cursor and scroll position.
type viewState struct {
	cursor  int
	topLine int
	leftCol int
}

// App is the terminal host: it owns the screen, the workspace and the key loop.
type App struct {
	screen       tcell.Screen
	cfg          *config.Config
	eventManager *event.Manager
	workspace    *Workspace
	clipboard    *clipboard.Manager
	themes       *theme.Manager
	input        *input.InputProcessor

	doc   *core.Document
	views map[uuid.UUID]*viewState

	message       string
	confirmQuit   bool
	quitting      bool
	quit          chan struct{}
	redrawRequest chan struct{}
}

// New creates and initializes the application. Documents are added with Open.
func New(opts Options) (*App, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}

	screen := opts.Screen
	if screen == nil {
		var err error
		if screen, err = tcell.NewScreen(); err != nil {
			return nil, fmt.Errorf("failed to create tcell screen: %w", err)
		}
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize tcell screen: %w", err)
	}

	store := opts.Store
	if store == nil {
		store = core.NewOSFileStore()
	}

	backend := opts.Clipboard
	if backend == nil && cfg.Editor.SystemClipboard {
		backend = clipboard.System()
	}

	themes := opts.Themes
	if themes == nil {
		themes = theme.NewManager()
	}
	screen.SetStyle(themes.Current().GetStyle(theme.StyleDefault))

	a := &App{
		screen:        screen,
		cfg:           cfg,
		eventManager:  event.NewManager(),
		clipboard:     clipboard.NewManager(backend),
		themes:        themes,
		input:         input.NewInputProcessor(),
		views:         make(map[uuid.UUID]*viewState),
		quit:          make(chan struct{}),
		redrawRequest: make(chan struct{}, 1),
	}

	docOpts := []core.Option{core.WithHistoryDepth(cfg.Editor.MaxHistory)}
	if cfg.Editor.AsyncHighlight {
		docOpts = append(docOpts, core.WithAsyncHighlighting(cfg.Editor.HighlightDebounce(), func(*highlight.Snapshot) {
			a.requestRedraw()
		}))
	}
	a.workspace = NewWorkspace(store, a.eventManager, docOpts...)

	a.eventManager.Subscribe(event.TypeBufferModified, a.handleBufferModified)
	a.eventManager.Subscribe(event.TypeBufferSaved, a.handleBufferSaved)
	return a, nil
}

// Workspace exposes the open documents.
func (a *App) Workspace() *Workspace { return a.workspace }

// Active returns the document being edited.
func (a *App) Active() *core.Document { return a.doc }

// Cursor returns the cursor offset in the active document.
func (a *App) Cursor() int { return a.view().cursor }

// Message returns the status message, empty when the status line shows document info.
func (a *App) Message() string { return a.message }

// Open opens path in a new tab and makes it active. An empty path opens an untitled tab.
func (a *App) Open(path string) error {
	var doc *core.Document
	if path == "" {
		doc = a.workspace.New()
	} else {
		var err error
		if doc, err = a.workspace.Open(path); err != nil {
			return err
		}
	}
	a.activate(doc)
	return nil
}

func (a *App) activate(doc *core.Document) {
	a.doc = doc
	if _, ok := a.views[doc.ID()]; !ok {
		a.views[doc.ID()] = &viewState{}
	}
	a.requestRedraw()
}

func (a *App) view() *viewState {
	if a.doc == nil {
		return &viewState{}
	}
	return a.views[a.doc.ID()]
}

// Run starts the application's main event and drawing loop. It returns when the
// user quits; unsaved documents are discarded.
func (a *App) Run() error {
	defer a.screen.Fini()
	if a.doc == nil {
		a.activate(a.workspace.New())
	}

	events := make(chan tcell.Event, 16)
	stop := make(chan struct{})
	defer close(stop)
	go a.screen.ChannelEvents(events, stop)

	a.message = "Quill - Ctrl+S Save | Ctrl+Q Quit"
	a.requestRedraw()

	for {
		select {
		case <-a.quit:
			for _, doc := range a.workspace.Documents() {
				if doc.IsModified() {
					logger.Warnf("Exited with unsaved changes in %s", doc.Title())
				}
			}
			a.workspace.CloseAll()
			logger.Infof("Exiting application.")
			return nil
		case ev, ok := <-events:
			if !ok {
				return errors.New("terminal event stream closed")
			}
			if a.handleEvent(ev) {
				a.requestRedraw()
			}
		case <-a.redrawRequest:
			a.Draw()
		}
	}
}

func (a *App) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
		return true
	case *tcell.EventKey:
		return a.HandleKey(ev)
	}
	return false
}

// Draw paints the active document.
func (a *App) Draw() {
	if a.doc == nil {
		return
	}
	vs := a.view()
	view := render.View{
		Text:     a.doc.Text(),
		Spans:    a.doc.Spans(),
		Title:    a.doc.Title(),
		Language: a.doc.LanguageName(),
		Modified: a.doc.IsModified(),
		Cursor:   vs.cursor,
		TopLine:  vs.topLine,
		LeftCol:  vs.leftCol,
		TabWidth: a.cfg.Editor.TabWidth,
		Message:  a.message,
		Theme:    a.themes.Current(),
	}
	if n := a.workspace.Len(); n > 1 {
		view.Title = fmt.Sprintf("%s (%d tabs)", view.Title, n)
	}

	width, height := a.screen.Size()
	render.ScrollToCursor(&view, width, height)
	vs.topLine, vs.leftCol = view.TopLine, view.LeftCol

	a.screen.Clear()
	render.Document(a.screen, view)
	a.screen.Show()
}

// HandleKey applies one key press. It returns true when the screen needs a redraw.
func (a *App) HandleKey(ev *tcell.EventKey) bool {
	if a.doc == nil {
		return false
	}
	action := a.input.ProcessEvent(ev)
	if action.Action == input.ActionUnknown {
		return false
	}
	if action.Action != input.ActionQuit {
		a.confirmQuit = false
	}
	a.message = ""
	vs := a.view()

	var err error
	switch action.Action {
	case input.ActionInsertRune:
		err = a.insert(string(action.Rune))
	case input.ActionInsertNewLine:
		err = a.insert("\n")
	case input.ActionInsertTab:
		err = a.insert("\t")
	case input.ActionDeleteCharBackward:
		if vs.cursor > 0 {
			if err = a.doc.Delete(vs.cursor-1, 1); err == nil {
				vs.cursor--
			}
		}
	case input.ActionDeleteCharForward:
		if vs.cursor < a.doc.Len() {
			err = a.doc.Delete(vs.cursor, 1)
		}
	case input.ActionMoveLeft:
		vs.cursor = max(vs.cursor-1, 0)
	case input.ActionMoveRight:
		vs.cursor = min(vs.cursor+1, a.doc.Len())
	case input.ActionMoveUp:
		a.moveLine(-1)
	case input.ActionMoveDown:
		a.moveLine(1)
	case input.ActionMovePageUp:
		a.moveLine(-a.pageHeight())
	case input.ActionMovePageDown:
		a.moveLine(a.pageHeight())
	case input.ActionMoveHome:
		a.moveToLineEdge(false)
	case input.ActionMoveEnd:
		a.moveToLineEdge(true)
	case input.ActionUndo:
		if !a.doc.Undo() {
			a.message = "Nothing to undo"
		}
	case input.ActionRedo:
		if !a.doc.Redo() {
			a.message = "Nothing to redo"
		}
	case input.ActionSave:
		a.save()
	case input.ActionCutLine:
		start, end := a.lineBounds()
		if err = a.clipboard.Cut(a.doc, start, end); err == nil {
			vs.cursor = start
		}
	case input.ActionCopyLine:
		start, end := a.lineBounds()
		if err = a.clipboard.Copy(a.doc, start, end); err == nil {
			a.message = "Copied line"
		}
	case input.ActionPaste:
		var n int
		if n, err = a.clipboard.Paste(a.doc, vs.cursor, vs.cursor); err == nil {
			vs.cursor += n
		}
	case input.ActionNextTab:
		if next, ok := a.workspace.Next(a.doc.ID()); ok {
			a.activate(next)
		}
	case input.ActionQuit:
		a.requestQuit()
	}

	if err != nil {
		logger.Errorf("App: %s (%s): %v", action.Action, ev.Name(), err)
		a.message = fmt.Sprintf("Error: %v", err)
	}
	return true
}

// pageHeight is the number of text lines on screen.
func (a *App) pageHeight() int {
	_, height := a.screen.Size()
	return max(height-config.StatusBarHeight, 1)
}

func (a *App) insert(text string) error {
	vs := a.view()
	if err := a.doc.Insert(vs.cursor, text); err != nil {
		return err
	}
	vs.cursor += len([]rune(text))
	return nil
}

func (a *App) save() {
	err := a.workspace.Save(a.doc.ID())
	switch {
	case errors.Is(err, core.ErrNoPath):
		a.message = "No file name; start quill with a path to save"
	case err != nil:
		logger.Errorf("App: save failed: %v", err)
		a.message = fmt.Sprintf("Error saving: %v", err)
	default:
		a.message = fmt.Sprintf("Saved %s", a.doc.Title())
	}
}

func (a *App) requestQuit() {
	if a.quitting {
		return
	}
	if unsaved := a.unsavedCount(); unsaved > 0 && !a.confirmQuit {
		a.confirmQuit = true
		if unsaved == 1 {
			a.message = "Unsaved changes; press Ctrl+Q again to quit"
		} else {
			a.message = fmt.Sprintf("Unsaved changes in %d files; press Ctrl+Q again to quit", unsaved)
		}
		return
	}
	a.quitting = true
	close(a.quit)
}

// unsavedCount counts modified documents across all tabs.
func (a *App) unsavedCount() int {
	n := 0
	for _, doc := range a.workspace.Documents() {
		if doc.IsModified() {
			n++
		}
	}
	return n
}

// moveLine moves the cursor delta lines, keeping its column where possible.
func (a *App) moveLine(delta int) {
	vs := a.view()
	runes := []rune(a.doc.Text())
	starts := render.Lines(runes)
	line, col := render.LineCol(starts, len(runes), vs.cursor)
	vs.cursor = render.Offset(starts, len(runes), line+delta, col)
}

func (a *App) moveToLineEdge(end bool) {
	vs := a.view()
	runes := []rune(a.doc.Text())
	starts := render.Lines(runes)
	line, _ := render.LineCol(starts, len(runes), vs.cursor)
	col := 0
	if end {
		col = len(runes)
	}
	vs.cursor = render.Offset(starts, len(runes), line, col)
}

// lineBounds returns the cursor line including its newline.
func (a *App) lineBounds() (int, int) {
	vs := a.view()
	runes := []rune(a.doc.Text())
	starts := render.Lines(runes)
	line, _ := render.LineCol(starts, len(runes), vs.cursor)
	end := len(runes)
	if line+1 < len(starts) {
		end = starts[line+1]
	}
	return starts[line], end
}

// handleBufferModified moves the cursor to the end of an undone or redone change.
func (a *App) handleBufferModified(e event.Event) bool {
	data, ok := e.Data.(event.BufferModifiedData)
	if !ok {
		logger.Warnf("App: Received BufferModified event with unexpected data type: %T", e.Data)
		return false
	}
	if data.Origin == event.OriginEdit {
		return false
	}
	if vs, ok := a.views[data.DocumentID]; ok {
		vs.cursor = data.Edit.Offset + data.Edit.NewLen
	}
	return false
}

func (a *App) handleBufferSaved(e event.Event) bool {
	if data, ok := e.Data.(event.BufferSavedData); ok {
		logger.Debugf("App: %s saved to %s", data.DocumentID, data.FilePath)
	}
	a.requestRedraw()
	return false
}

// requestRedraw sends a redraw signal non-blockingly.
func (a *App) requestRedraw() {
	select {
	case a.redrawRequest <- struct{}{}:
	default: // A redraw is already pending
	}
}

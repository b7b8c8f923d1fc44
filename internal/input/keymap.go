// internal/input/keymap.go
package input

import (
	"unicode"

	"github.com/gdamore/tcell/v2"
)

// Keymap maps special and control keys to actions.
type Keymap map[tcell.Key]Action

// InputProcessor translates tcell key events into ActionEvents.
type InputProcessor struct {
	keymap Keymap
}

// NewInputProcessor creates a processor with the default bindings.
func NewInputProcessor() *InputProcessor {
	return &InputProcessor{keymap: DefaultKeymap()}
}

// DefaultKeymap returns the built-in bindings.
func DefaultKeymap() Keymap {
	return Keymap{
		tcell.KeyUp:         ActionMoveUp,
		tcell.KeyDown:       ActionMoveDown,
		tcell.KeyLeft:       ActionMoveLeft,
		tcell.KeyRight:      ActionMoveRight,
		tcell.KeyPgUp:       ActionMovePageUp,
		tcell.KeyPgDn:       ActionMovePageDown,
		tcell.KeyHome:       ActionMoveHome,
		tcell.KeyEnd:        ActionMoveEnd,
		tcell.KeyEnter:      ActionInsertNewLine,
		tcell.KeyTab:        ActionInsertTab,
		tcell.KeyBackspace:  ActionDeleteCharBackward,
		tcell.KeyBackspace2: ActionDeleteCharBackward,
		tcell.KeyDelete:     ActionDeleteCharForward,

		// Ctrl+letter arrives as its own key code.
		tcell.KeyCtrlS: ActionSave,
		tcell.KeyCtrlQ: ActionQuit,
		tcell.KeyCtrlZ: ActionUndo,
		tcell.KeyCtrlY: ActionRedo,
		tcell.KeyCtrlK: ActionCutLine,
		tcell.KeyCtrlC: ActionCopyLine,
		tcell.KeyCtrlV: ActionPaste,
		tcell.KeyCtrlN: ActionNextTab,
	}
}

// Bind sets or replaces the action for key.
func (p *InputProcessor) Bind(key tcell.Key, action Action) {
	p.keymap[key] = action
}

// ProcessEvent returns the action for a key event. Printable runes without Ctrl or Alt
// insert themselves.
func (p *InputProcessor) ProcessEvent(ev *tcell.EventKey) ActionEvent {
	if ev.Key() == tcell.KeyRune {
		mod := ev.Modifiers()
		if mod&(tcell.ModCtrl|tcell.ModAlt) == 0 && unicode.IsPrint(ev.Rune()) {
			return ActionEvent{Action: ActionInsertRune, Rune: ev.Rune()}
		}
		return ActionEvent{Action: ActionUnknown}
	}
	if action, ok := p.keymap[ev.Key()]; ok {
		return ActionEvent{Action: action}
	}
	return ActionEvent{Action: ActionUnknown}
}

// internal/input/action.go
package input

// Action is an editor command decoded from a key press.
type Action int

const (
	ActionUnknown Action = iota
	ActionQuit
	ActionSave

	ActionMoveUp
	ActionMoveDown
	ActionMoveLeft
	ActionMoveRight
	ActionMovePageUp
	ActionMovePageDown
	ActionMoveHome // Line start
	ActionMoveEnd  // Line end

	ActionInsertRune // Carries ActionEvent.Rune
	ActionInsertNewLine
	ActionInsertTab
	ActionDeleteCharForward
	ActionDeleteCharBackward
	ActionUndo
	ActionRedo

	ActionCutLine
	ActionCopyLine
	ActionPaste

	ActionNextTab
)

var actionNames = [...]string{
	ActionUnknown:            "unknown",
	ActionQuit:               "quit",
	ActionSave:               "save",
	ActionMoveUp:             "move-up",
	ActionMoveDown:           "move-down",
	ActionMoveLeft:           "move-left",
	ActionMoveRight:          "move-right",
	ActionMovePageUp:         "page-up",
	ActionMovePageDown:       "page-down",
	ActionMoveHome:           "home",
	ActionMoveEnd:            "end",
	ActionInsertRune:         "insert-rune",
	ActionInsertNewLine:      "newline",
	ActionInsertTab:          "tab",
	ActionDeleteCharForward:  "delete",
	ActionDeleteCharBackward: "backspace",
	ActionUndo:               "undo",
	ActionRedo:               "redo",
	ActionCutLine:            "cut-line",
	ActionCopyLine:           "copy-line",
	ActionPaste:              "paste",
	ActionNextTab:            "next-tab",
}

func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return "unknown"
	}
	return actionNames[a]
}

// ActionEvent is a decoded key press.
type ActionEvent struct {
	Action Action
	Rune   rune
}

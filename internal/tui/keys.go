package tui

import (
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
)

// KeyAction represents a logical action triggered by a key press.
type KeyAction int

const (
	ActionNone KeyAction = iota
	ActionQuit
	ActionToggleHelp
	ActionMoveUp
	ActionMoveDown
	ActionGoToTop
	ActionGoToBottom
	ActionToggleSelect
	ActionStageToggle
	ActionPreview
	ActionClearPreview
	ActionRegenerate
	ActionEditMessage
	ActionCommit
	ActionRefresh
	ActionFocusNext
	ActionFocusPrev
	ActionToggleWrap
	ActionToggleSideBySide
	ActionNarrowLeft
	ActionWidenLeft
	ActionPageDown
	ActionPageUp
	ActionHalfPageDown
	ActionHalfPageUp
	ActionLineDown
	ActionLineUp
)

// KeyHandler maps key presses to actions, buffering numeric prefixes as
// repeat counts for movement keys.
type KeyHandler struct {
	buffer string
}

// Handle processes a key message and returns the action plus repeat count.
func (k *KeyHandler) Handle(msg tea.KeyMsg) (KeyAction, int) {
	key := msg.String()

	if len(key) == 1 && key[0] >= '0' && key[0] <= '9' {
		k.buffer += key
		return ActionNone, 0
	}

	count := 1
	if k.buffer != "" {
		if n, err := strconv.Atoi(k.buffer); err == nil && n > 0 {
			count = n
		}
	}
	k.buffer = ""

	return keyToAction(key), count
}

func keyToAction(key string) KeyAction {
	switch key {
	case "ctrl+c", "q":
		return ActionQuit
	case "h", "?":
		return ActionToggleHelp
	case "j", "down":
		return ActionMoveDown
	case "k", "up":
		return ActionMoveUp
	case "g", "home":
		return ActionGoToTop
	case "G", "end":
		return ActionGoToBottom
	case " ":
		return ActionToggleSelect
	case "s":
		return ActionStageToggle
	case "enter", "p":
		return ActionPreview
	case "esc":
		return ActionClearPreview
	case "M":
		return ActionRegenerate
	case "i":
		return ActionEditMessage
	case "c":
		return ActionCommit
	case "r":
		return ActionRefresh
	case "tab":
		return ActionFocusNext
	case "shift+tab":
		return ActionFocusPrev
	case "w":
		return ActionToggleWrap
	case "v":
		return ActionToggleSideBySide
	case "<", "H":
		return ActionNarrowLeft
	case ">", "L":
		return ActionWidenLeft
	case "pgdown":
		return ActionPageDown
	case "pgup":
		return ActionPageUp
	case "J", "ctrl+d":
		return ActionHalfPageDown
	case "K", "ctrl+u":
		return ActionHalfPageUp
	case "ctrl+e":
		return ActionLineDown
	case "ctrl+y":
		return ActionLineUp
	}
	return ActionNone
}

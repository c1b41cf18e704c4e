package editor

// KeyEvent mirrors a browser keydown: Key uses DOM key names.
type KeyEvent struct {
	Key   string `json:"key"`
	Ctrl  bool   `json:"ctrl"`
	Meta  bool   `json:"meta"`
	Shift bool   `json:"shift,omitempty"`
}

const (
	KeyEnter      = "Enter"
	KeyEscape     = "Escape"
	KeyArrowUp    = "ArrowUp"
	KeyArrowDown  = "ArrowDown"
	KeyArrowLeft  = "ArrowLeft"
	KeyArrowRight = "ArrowRight"
)

// Action is what a key combination means to the suggestion pipeline.
type Action int

const (
	ActionNone Action = iota
	ActionAccept
	ActionDismiss
	ActionCycleUp
	ActionCycleDown
	ActionPrevDimension
	ActionNextDimension
)

// ActionFor maps Ctrl/Cmd shortcuts; plain Escape dismisses.
func ActionFor(ev KeyEvent) Action {
	mod := ev.Ctrl || ev.Meta
	switch {
	case ev.Key == KeyEscape:
		return ActionDismiss
	case !mod:
		return ActionNone
	case ev.Key == KeyEnter:
		return ActionAccept
	case ev.Key == KeyArrowUp:
		return ActionCycleUp
	case ev.Key == KeyArrowDown:
		return ActionCycleDown
	case ev.Key == KeyArrowLeft:
		return ActionPrevDimension
	case ev.Key == KeyArrowRight:
		return ActionNextDimension
	}
	return ActionNone
}

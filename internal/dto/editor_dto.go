package dto

import "chameleon-be/pkg/editor"

const (
	EditorFrameChange = "change"
	EditorFrameKey    = "key"
	EditorFrameCopy   = "copy"
	EditorFrameAuth   = "auth"

	EditorFrameState        = "state"
	EditorFrameInsert       = "insert"
	EditorFrameClipboard    = "clipboard"
	EditorFrameAuthRequired = "auth_required"
	EditorFrameSession      = "session"
	EditorFrameError        = "error"
)

// EditorInbound is a frame sent by the editing surface.
// Cursor counts UTF-16 code units, as reported by browser selections.
type EditorInbound struct {
	Type     string           `json:"type"`
	Text     string           `json:"text,omitempty"`
	Cursor   int              `json:"cursor,omitempty"`
	Token    string           `json:"token,omitempty"`
	Geometry *editor.Geometry `json:"geometry,omitempty"`
	Key      string           `json:"key,omitempty"`
	Ctrl     bool             `json:"ctrl,omitempty"`
	Meta     bool             `json:"meta,omitempty"`
	Shift    bool             `json:"shift,omitempty"`
}

// EditorOutbound is a frame pushed to the editing surface. Only the fields
// relevant to Type are set.
type EditorOutbound struct {
	Type    string           `json:"type"`
	State   *editor.Snapshot `json:"state,omitempty"`
	Text    string           `json:"text,omitempty"`
	User    *UserDTO         `json:"user,omitempty"`
	Message string           `json:"message,omitempty"`
}

package editor

import (
	"errors"
	"sync"
)

// ErrAuthRequired is returned by Session.Copy when nobody is signed in.
var ErrAuthRequired = errors.New("authentication required")

// User is the signed-in account as seen by the editor.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// SessionProvider reports the current user, or nil when signed out.
type SessionProvider interface {
	CurrentUser() *User
}

// Clipboard receives the document text on an authorized copy.
type Clipboard interface {
	WriteText(text string) error
}

type ClipboardFunc func(text string) error

func (f ClipboardFunc) WriteText(text string) error { return f(text) }

// UserHolder is a SessionProvider updated by session-change notifications.
type UserHolder struct {
	mu   sync.RWMutex
	user *User
}

func NewUserHolder(u *User) *UserHolder {
	return &UserHolder{user: u}
}

func (h *UserHolder) CurrentUser() *User {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.user
}

func (h *UserHolder) SignIn(u *User) {
	h.mu.Lock()
	h.user = u
	h.mu.Unlock()
}

func (h *UserHolder) SignOut() {
	h.mu.Lock()
	h.user = nil
	h.mu.Unlock()
}

package entity

import (
	"strings"

	"github.com/google/uuid"
)

// User is an account allowed to sign in to the editor.
type User struct {
	Id           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
}

// UserIDFor derives a stable id from the email so every instance agrees on it.
func UserIDFor(email string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("mailto:"+strings.ToLower(email)))
}

package editor

import (
	"regexp"
	"strings"
	"unicode/utf16"
)

// DefaultContextWindow is how many characters before the cursor are considered.
const DefaultContextWindow = 150

var sentenceBreak = regexp.MustCompile(`[.!?]\s+`)

// ExtractContext returns the trailing text before cursorOffset that is sent for completion.
// Offsets count characters, not bytes; an out-of-range cursor is clamped.
func ExtractContext(fullText string, cursorOffset int) string {
	return extractContext(fullText, cursorOffset, DefaultContextWindow)
}

func extractContext(fullText string, cursorOffset, window int) string {
	runes := []rune(fullText)
	if cursorOffset > len(runes) {
		cursorOffset = len(runes)
	}
	if cursorOffset < 0 {
		cursorOffset = 0
	}
	start := cursorOffset - window
	if start < 0 {
		start = 0
	}
	before := string(runes[start:cursorOffset])

	segments := sentenceBreak.Split(before, -1)
	if len(segments) > 1 {
		return strings.TrimSpace(strings.Join(segments[len(segments)-2:], ". "))
	}
	return strings.TrimSpace(before)
}

// CursorFromUTF16 converts a browser cursor, counted in UTF-16 code units,
// to the character offset used by the session. A position inside a
// surrogate pair rounds down to the start of that character.
func CursorFromUTF16(text string, units int) int {
	if units <= 0 {
		return 0
	}
	n := 0
	for _, r := range text {
		units -= utf16.RuneLen(r)
		if units < 0 {
			break
		}
		n++
		if units == 0 {
			break
		}
	}
	return n
}

// Document is the plain-text view of the editing surface.
type Document struct {
	Text   string `json:"text"`
	Cursor int    `json:"cursor"`
}

// InsertAtCursor inserts s at the cursor and moves the cursor past it.
func (d *Document) InsertAtCursor(s string) {
	runes := []rune(d.Text)
	if d.Cursor > len(runes) {
		d.Cursor = len(runes)
	}
	if d.Cursor < 0 {
		d.Cursor = 0
	}
	ins := []rune(s)
	out := make([]rune, 0, len(runes)+len(ins))
	out = append(out, runes[:d.Cursor]...)
	out = append(out, ins...)
	out = append(out, runes[d.Cursor:]...)
	d.Text = string(out)
	d.Cursor += len(ins)
}

package lexical

import (
	"encoding/json"
	"fmt"
	"strings"
)

const (
	FormatPlain    = "plain"
	FormatMarkdown = "markdown"
)

// Decode parses serialized editor state.
func Decode(jsonContent string) (*LexicalRoot, error) {
	var root LexicalRoot
	if err := json.Unmarshal([]byte(jsonContent), &root); err != nil {
		return nil, fmt.Errorf("failed to parse lexical json: %w", err)
	}
	return &root, nil
}

// IsLexical is a cheap check for serialized editor state.
func IsLexical(content string) bool {
	return strings.HasPrefix(strings.TrimSpace(content), `{"root":`)
}

// Export renders content in the requested format. Content that is not editor
// state, or fails to decode, is returned unchanged.
func Export(content, format string) string {
	if !IsLexical(content) {
		return content
	}
	root, err := Decode(strings.TrimSpace(content))
	if err != nil {
		return content
	}
	if format == FormatMarkdown {
		return Markdown(root)
	}
	return PlainText(root)
}

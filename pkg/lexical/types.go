package lexical

// LexicalRoot is the serialized editor state.
type LexicalRoot struct {
	Root Node `json:"root"`
}

// Node is any node in the Lexical tree. Only fields the renderers read are decoded.
type Node struct {
	Type     string `json:"type"`
	Children []Node `json:"children,omitempty"`

	// text
	Text   string      `json:"text,omitempty"`
	Format interface{} `json:"format,omitempty"` // int bitmask on text, alignment string on blocks

	// heading, list
	Tag      string `json:"tag,omitempty"`
	ListType string `json:"listType,omitempty"` // bullet, number, check
	Start    int    `json:"start,omitempty"`

	// listitem
	Checked bool `json:"checked,omitempty"`

	// link
	URL string `json:"url,omitempty"`
}

// Text format bitmask.
const (
	FormatBold          = 1
	FormatItalic        = 2
	FormatStrikethrough = 4
	FormatUnderline     = 8
	FormatCode          = 16
)

func (n Node) formatBits() int {
	switch f := n.Format.(type) {
	case float64:
		return int(f)
	case int:
		return f
	}
	return 0
}

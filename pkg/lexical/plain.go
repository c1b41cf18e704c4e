package lexical

import "strings"

// PlainText mirrors what the editor would put on the clipboard as text:
// top-level blocks separated by a blank line, list items one per line.
func PlainText(root *LexicalRoot) string {
	blocks := make([]string, 0, len(root.Root.Children))
	for _, child := range root.Root.Children {
		var sb strings.Builder
		writePlain(child, &sb)
		blocks = append(blocks, sb.String())
	}
	return strings.Join(blocks, "\n\n")
}

func writePlain(node Node, sb *strings.Builder) {
	switch node.Type {
	case "text":
		sb.WriteString(node.Text)
	case "linebreak":
		sb.WriteString("\n")
	case "tab":
		sb.WriteString("\t")
	case "list":
		for i, item := range node.Children {
			if i > 0 {
				sb.WriteString("\n")
			}
			writePlain(item, sb)
		}
	default:
		for _, child := range node.Children {
			writePlain(child, sb)
		}
	}
}

package lexical

import (
	"fmt"
	"strings"
)

// Markdown renders editor state as CommonMark with GFM tables, strikethrough and task lists.
func Markdown(root *LexicalRoot) string {
	var sb strings.Builder
	for _, child := range root.Root.Children {
		writeBlock(child, &sb)
	}
	return strings.TrimRight(sb.String(), "\n") + "\n"
}

func writeBlock(node Node, sb *strings.Builder) {
	switch node.Type {
	case "heading":
		level := 1
		if len(node.Tag) == 2 && node.Tag[0] == 'h' {
			level = int(node.Tag[1] - '0')
		}
		sb.WriteString(strings.Repeat("#", level) + " ")
		writeInline(node.Children, sb)
		sb.WriteString("\n\n")
	case "quote":
		var inner strings.Builder
		writeInline(node.Children, &inner)
		for _, line := range strings.Split(inner.String(), "\n") {
			sb.WriteString("> " + line + "\n")
		}
		sb.WriteString("\n")
	case "list":
		writeList(node, sb, 0)
		sb.WriteString("\n")
	case "table":
		writeTable(node, sb)
	case "horizontalrule":
		sb.WriteString("---\n\n")
	case "code":
		sb.WriteString("```\n")
		writeInline(node.Children, sb)
		sb.WriteString("\n```\n\n")
	default:
		writeInline(node.Children, sb)
		sb.WriteString("\n\n")
	}
}

func writeInline(nodes []Node, sb *strings.Builder) {
	for _, node := range nodes {
		switch node.Type {
		case "text":
			writeText(node, sb)
		case "linebreak":
			sb.WriteString("  \n")
		case "tab":
			sb.WriteString("\t")
		case "link", "autolink":
			sb.WriteString("[")
			writeInline(node.Children, sb)
			sb.WriteString(fmt.Sprintf("](%s)", node.URL))
		default:
			writeInline(node.Children, sb)
		}
	}
}

func writeText(node Node, sb *strings.Builder) {
	bits := node.formatBits()
	if bits&FormatCode != 0 {
		sb.WriteString("`" + node.Text + "`")
		return
	}

	var open, closers []string
	add := func(mask int, marker, closer string) {
		if bits&mask != 0 {
			open = append(open, marker)
			closers = append([]string{closer}, closers...)
		}
	}
	add(FormatBold, "**", "**")
	add(FormatItalic, "_", "_")
	add(FormatStrikethrough, "~~", "~~")
	add(FormatUnderline, "<u>", "</u>")

	sb.WriteString(strings.Join(open, ""))
	sb.WriteString(node.Text)
	sb.WriteString(strings.Join(closers, ""))
}

func writeList(node Node, sb *strings.Builder, depth int) {
	index := 1
	if node.Start > 0 {
		index = node.Start
	}

	for _, item := range node.Children {
		if item.Type != "listitem" {
			continue
		}

		// A listitem holding only a nested list continues the previous marker.
		if len(item.Children) == 1 && item.Children[0].Type == "list" {
			writeList(item.Children[0], sb, depth+1)
			continue
		}

		sb.WriteString(strings.Repeat("  ", depth))
		switch node.ListType {
		case "number":
			sb.WriteString(fmt.Sprintf("%d. ", index))
			index++
		case "check":
			if item.Checked {
				sb.WriteString("- [x] ")
			} else {
				sb.WriteString("- [ ] ")
			}
		default:
			sb.WriteString("- ")
		}

		var nested []Node
		var inline []Node
		for _, c := range item.Children {
			if c.Type == "list" {
				nested = append(nested, c)
			} else {
				inline = append(inline, c)
			}
		}
		writeInline(inline, sb)
		sb.WriteString("\n")
		for _, n := range nested {
			writeList(n, sb, depth+1)
		}
	}
}

func writeTable(node Node, sb *strings.Builder) {
	var rows [][]string
	cols := 0
	for _, row := range node.Children {
		if row.Type != "tablerow" {
			continue
		}
		var cells []string
		for _, cell := range row.Children {
			var csb strings.Builder
			for _, block := range cell.Children {
				writeInline(block.Children, &csb)
			}
			cells = append(cells, strings.ReplaceAll(csb.String(), "\n", " "))
		}
		rows = append(rows, cells)
		cols = max(cols, len(cells))
	}
	if len(rows) == 0 {
		return
	}

	writeRow := func(cells []string) {
		sb.WriteString("|")
		for i := 0; i < cols; i++ {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			sb.WriteString(" " + cell + " |")
		}
		sb.WriteString("\n")
	}

	writeRow(rows[0])
	sb.WriteString("|" + strings.Repeat("---|", cols) + "\n")
	for _, r := range rows[1:] {
		writeRow(r)
	}
	sb.WriteString("\n")
}

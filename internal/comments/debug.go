package comments

import (
	"fmt"
	"strings"

	"plume/internal/source"
)

// DebugString renders the whole map with the text of every comment, for
// test failures and debugging.
func (c Comments) DebugString(sf *source.File) string {
	m := c.m()
	if m == nil || len(m.order) == 0 {
		return "Comments{}\n"
	}

	var sb strings.Builder
	sb.WriteString("Comments{\n")
	for _, key := range m.order {
		set := m.entries[key]
		fmt.Fprintf(&sb, "  %s {\n", key.node)
		writeBucket(&sb, sf, "leading", set.leading)
		writeBucket(&sb, sf, "dangling", set.dangling)
		writeBucket(&sb, sf, "trailing", set.trailing)
		sb.WriteString("  }\n")
	}
	sb.WriteString("}\n")
	return sb.String()
}

func writeBucket(sb *strings.Builder, sf *source.File, name string, comments []*SourceComment) {
	if len(comments) == 0 {
		return
	}
	fmt.Fprintf(sb, "    %s: [\n", name)
	for _, sc := range comments {
		fmt.Fprintf(sb, "      %s,\n", sc.debugString(sf))
	}
	sb.WriteString("    ]\n")
}

// debugString renders one comment with its source text, not just the range.
func (c *SourceComment) debugString(sf *source.File) string {
	start := sf.Position(c.span.Start)
	return fmt.Sprintf("%q @ %d:%d (%d..%d)", c.Text(sf), start.Line, start.Col, c.span.Start, c.span.End)
}

func renderComments(list []*SourceComment, sf *source.File) string {
	var sb strings.Builder
	for _, sc := range list {
		sb.WriteString(sc.debugString(sf))
		sb.WriteByte('\n')
	}
	return sb.String()
}

package comments

import (
	"plume/internal/source"
)

// SourceComment is a single comment in the source document. It stores only
// the span; the text is recovered from the file on demand so the source
// buffer is never duplicated.
type SourceComment struct {
	span source.Span

	// formatted tracks whether the printer emitted this comment.
	// Only meaningful in debug builds; release builds never read it.
	formatted bool
}

func newSourceComment(span source.Span) *SourceComment {
	return &SourceComment{span: span}
}

// Span returns the location of the comment in the original source.
func (c *SourceComment) Span() source.Span {
	return c.span
}

// Text resolves the comment's literal text against the source file.
func (c *SourceComment) Text(sf *source.File) string {
	return sf.Text(c.span)
}

// MarkFormatted records that the comment was written to the output.
// Marking twice is harmless; the flag never transitions back within a run.
// Compiles to a no-op in release builds.
func (c *SourceComment) MarkFormatted() {
	if debugTracking {
		c.formatted = true
	}
}

func (c *SourceComment) isFormatted() bool {
	return c.formatted
}

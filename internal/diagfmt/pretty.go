package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"plume/internal/diag"
	"plume/internal/source"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan, color.Bold)
	noteColor    = color.New(color.FgBlue)
	caretColor   = color.New(color.FgRed, color.Bold)
)

// Pretty renders diagnostics in a human-readable form. It walks bag.Items()
// in order (call bag.Sort() beforehand). Each diagnostic prints as
//
//	<path>:<line>:<col>: <SEV> <CODE>: <message>
//	    <source line>
//	    ^~~~
//
// followed by its notes in the same shape.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		printHeader(w, fs, d.Primary, d.Severity, d.Code, d.Message, opts)
		printContext(w, fs, d.Primary, opts)
		if opts.ShowNotes {
			for _, note := range d.Notes {
				printNote(w, fs, note, opts)
			}
		}
	}
}

func printHeader(w io.Writer, fs *source.FileSet, sp source.Span, sev diag.Severity, code diag.Code, msg string, opts PrettyOpts) {
	start, _ := fs.Resolve(sp)
	path := fs.Get(sp.File).FormatPath(opts.PathMode.mode(), fs.BaseDir())

	sevText := sev.String()
	codeText := code.String()
	if opts.Color {
		sevText = severityColor(sev).Sprint(sevText)
		codeText = severityColor(sev).Sprint(codeText)
	}
	fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n", path, start.Line, start.Col, sevText, codeText, msg)
}

func printNote(w io.Writer, fs *source.FileSet, note diag.Note, opts PrettyOpts) {
	start, _ := fs.Resolve(note.Span)
	path := fs.Get(note.Span.File).FormatPath(opts.PathMode.mode(), fs.BaseDir())

	label := "note"
	if opts.Color {
		label = noteColor.Sprint(label)
	}
	fmt.Fprintf(w, "%s:%d:%d: %s: %s\n", path, start.Line, start.Col, label, note.Msg)
	printContext(w, fs, note.Span, opts)
}

// printContext shows the first source line of the span with a caret
// underline. Display width is measured with runewidth so wide characters
// keep the underline aligned.
func printContext(w io.Writer, fs *source.FileSet, sp source.Span, opts PrettyOpts) {
	f := fs.Get(sp.File)
	start, end := fs.Resolve(sp)
	line := f.GetLine(start.Line)
	if line == "" && sp.Empty() {
		return
	}

	fmt.Fprintf(w, "    %s\n", line)

	runes := []rune(line)
	startCol := int(start.Col) - 1
	if startCol > len(runes) {
		startCol = len(runes)
	}
	endCol := int(end.Col) - 1
	if end.Line != start.Line || endCol > len(runes) {
		endCol = len(runes)
	}
	if endCol <= startCol {
		endCol = startCol + 1
	}

	pad := displayWidth(runes[:startCol])
	span := displayWidth(runes[startCol:min(endCol, len(runes))])
	if span < 1 {
		span = 1
	}

	underline := "^" + strings.Repeat("~", span-1)
	if opts.Color {
		underline = caretColor.Sprint(underline)
	}
	fmt.Fprintf(w, "    %s%s\n", strings.Repeat(" ", pad), underline)
}

func displayWidth(runes []rune) int {
	width := 0
	for _, r := range runes {
		if r == '\t' {
			width += 4
			continue
		}
		width += runewidth.RuneWidth(r)
	}
	return width
}

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return errorColor
	case diag.SevWarning:
		return warningColor
	default:
		return infoColor
	}
}

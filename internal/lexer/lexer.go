package lexer

import (
	"plume/internal/diag"
	"plume/internal/source"
	"plume/internal/token"
)

// Lexer produces significant tokens with leading trivia attached and keeps
// the ordered list of comment spans encountered along the way. Newlines are
// statement terminators at the top level and plain trivia inside brackets.
type Lexer struct {
	file     *source.File
	cursor   Cursor
	opts     Options
	look     *token.Token   // 1-token lookahead buffer
	hold     []token.Trivia // accumulated leading trivia
	depth    int            // bracket/paren nesting
	comments []source.Span  // every comment span, in source order
}

func New(file *source.File, opts Options) *Lexer {
	if opts.Reporter == nil {
		opts.Reporter = diag.NopReporter{}
	}
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// Comments returns the comment spans collected so far, in source order.
// The slice is only complete once the lexer has returned EOF.
func (lx *Lexer) Comments() []source.Span {
	return lx.comments
}

// Next returns the next significant token with its leading trivia.
// After EOF it keeps returning EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	tok := lx.scan()
	tok.Leading = lx.hold
	lx.hold = nil
	return tok
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	if lx.look == nil {
		tok := lx.Next()
		lx.look = &tok
	}
	return *lx.look
}

func (lx *Lexer) scan() token.Token {
	lx.collectLeadingTrivia()

	if lx.cursor.EOF() {
		return token.Token{Kind: token.EOF, Span: lx.emptySpan()}
	}

	ch := lx.cursor.Peek()
	switch {
	case ch == '\n':
		// significant only at the top level; collectLeadingTrivia consumed
		// nested newlines already
		start := lx.cursor.Mark()
		for lx.cursor.Eat('\n') {
		}
		return token.Token{Kind: token.Newline, Span: lx.cursor.SpanFrom(start), Text: "\n"}

	case isIdentStart(ch):
		return lx.scanIdentOrKeyword()

	case isDigit(ch):
		return lx.scanNumber()

	case ch == '"':
		return lx.scanString()

	default:
		return lx.scanPunct()
	}
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

// collectLeadingTrivia gathers spaces, comments, and (inside brackets)
// newlines that precede the next significant token.
func (lx *Lexer) collectLeadingTrivia() {
	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		b := lx.cursor.Peek()

		if b == ' ' || b == '\t' {
			for {
				b2 := lx.cursor.Peek()
				if b2 != ' ' && b2 != '\t' {
					break
				}
				lx.cursor.Bump()
			}
			sp := lx.cursor.SpanFrom(start)
			lx.hold = append(lx.hold, token.Trivia{Kind: token.TriviaSpace, Span: sp, Text: lx.file.Text(sp)})
			continue
		}

		if b == '\n' && lx.depth > 0 {
			for lx.cursor.Eat('\n') {
			}
			sp := lx.cursor.SpanFrom(start)
			lx.hold = append(lx.hold, token.Trivia{Kind: token.TriviaNewline, Span: sp, Text: lx.file.Text(sp)})
			continue
		}

		if b == '#' {
			for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
				lx.cursor.Bump()
			}
			sp := lx.cursor.SpanFrom(start)
			lx.hold = append(lx.hold, token.Trivia{Kind: token.TriviaLineComment, Span: sp, Text: lx.file.Text(sp)})
			lx.comments = append(lx.comments, sp)
			continue
		}

		break
	}
}

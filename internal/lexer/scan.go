package lexer

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"plume/internal/diag"
	"plume/internal/token"
)

const utf8RuneSelf = 0x80

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b >= utf8RuneSelf
}

func isIdentContinue(b byte) bool {
	return isIdentStart(b) || isDigit(b)
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()
	sawUnicode := false
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b < utf8RuneSelf {
			if !isIdentContinue(b) {
				break
			}
			lx.cursor.Bump()
			continue
		}
		r, size := utf8.DecodeRune(lx.file.Content[lx.cursor.Off:])
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			break
		}
		sawUnicode = true
		for range size {
			lx.cursor.Bump()
		}
	}

	sp := lx.cursor.SpanFrom(start)
	text := lx.file.Text(sp)
	if sawUnicode {
		// identifiers compare NFKC-normalized, the way Python treats them
		text = norm.NFKC.String(text)
	}
	return token.Token{Kind: token.LookupKeyword(text), Span: sp, Text: text}
}

func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	for isDigit(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	if isIdentStart(lx.cursor.Peek()) {
		for isIdentContinue(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		sp := lx.cursor.SpanFrom(start)
		lx.report(diag.LexBadNumber, sp, "malformed number literal")
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.file.Text(sp)}
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.IntLit, Span: sp, Text: lx.file.Text(sp)}
}

func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening quote
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '\n' {
			break
		}
		lx.cursor.Bump()
		if b == '\\' {
			lx.cursor.Bump()
			continue
		}
		if b == '"' {
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: token.StringLit, Span: sp, Text: lx.file.Text(sp)}
		}
	}
	sp := lx.cursor.SpanFrom(start)
	lx.report(diag.LexUnterminatedString, sp, "unterminated string literal")
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.file.Text(sp)}
}

func (lx *Lexer) scanPunct() token.Token {
	start := lx.cursor.Mark()
	b := lx.cursor.Bump()

	kind := token.Invalid
	switch b {
	case '=':
		kind = token.Assign
	case ',':
		kind = token.Comma
	case '(':
		kind = token.LParen
		lx.depth++
	case ')':
		kind = token.RParen
		if lx.depth > 0 {
			lx.depth--
		}
	case '[':
		kind = token.LBracket
		lx.depth++
	case ']':
		kind = token.RBracket
		if lx.depth > 0 {
			lx.depth--
		}
	}

	sp := lx.cursor.SpanFrom(start)
	if kind == token.Invalid {
		lx.report(diag.LexUnknownChar, sp, "unknown character")
	}
	return token.Token{Kind: kind, Span: sp, Text: lx.file.Text(sp)}
}

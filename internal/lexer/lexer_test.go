package lexer

import (
	"testing"

	"plume/internal/diag"
	"plume/internal/source"
	"plume/internal/token"
)

func lexAll(t *testing.T, src string) (*Lexer, []token.Token) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("lex.plm", []byte(src))
	lx := New(fs.Get(id), Options{})

	var toks []token.Token
	for {
		tok := lx.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return lx, toks
		}
	}
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, tk := range toks {
		out[i] = tk.Kind
	}
	return out
}

func TestLexStatement(t *testing.T) {
	_, toks := lexAll(t, "let items = [1, 2]\n")
	want := []token.Kind{
		token.KwLet, token.Ident, token.Assign, token.LBracket,
		token.IntLit, token.Comma, token.IntLit, token.RBracket,
		token.Newline, token.EOF,
	}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("token count: got %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestNewlineInsideBracketsIsTrivia(t *testing.T) {
	_, toks := lexAll(t, "let x = [\n    1,\n    2,\n]\n")
	for _, tk := range toks[:len(toks)-2] {
		if tk.Kind == token.Newline {
			t.Fatalf("newline token inside brackets: %v", tk.Span)
		}
	}
	if toks[len(toks)-2].Kind != token.Newline {
		t.Fatalf("statement terminator missing")
	}
}

func TestCommentsCollectedInSourceOrder(t *testing.T) {
	lx, _ := lexAll(t, "# one\nlet x = 1  # two\n# three\npass\n")
	fileContent := lx.file
	spans := lx.Comments()
	if len(spans) != 3 {
		t.Fatalf("expected 3 comments, got %d", len(spans))
	}
	want := []string{"# one", "# two", "# three"}
	for i, sp := range spans {
		if got := fileContent.Text(sp); got != want[i] {
			t.Fatalf("comment %d: got %q, want %q", i, got, want[i])
		}
		if i > 0 && spans[i-1].Start >= sp.Start {
			t.Fatalf("comments out of source order")
		}
	}
}

func TestCommentAttachedAsLeadingTrivia(t *testing.T) {
	_, toks := lexAll(t, "# doc\npass\n")
	// the comment precedes the newline-free first token via the Newline token
	var passTok *token.Token
	for i := range toks {
		if toks[i].Kind == token.KwPass {
			passTok = &toks[i]
		}
	}
	if passTok == nil {
		t.Fatalf("pass token missing")
	}
	// comment rides as leading trivia on whichever token follows it
	found := false
	for _, tk := range toks {
		for _, tr := range tk.Leading {
			if tr.IsComment() && tr.Text == "# doc" {
				found = true
			}
		}
	}
	if !found {
		t.Fatalf("comment not attached as leading trivia")
	}
}

func TestUnterminatedStringReported(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("bad.plm", []byte("let s = \"oops\n"))
	bag := diag.NewBag(8)
	lx := New(fs.Get(id), Options{Reporter: diag.BagReporter{Bag: bag}})
	for lx.Next().Kind != token.EOF {
	}
	if !bag.HasErrors() {
		t.Fatalf("unterminated string must report an error")
	}
}

func TestNilReporterDropsDiagnostics(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("quiet.plm", []byte("let s = \"oops\n@\n"))
	lx := New(fs.Get(id), Options{})
	count := 0
	for lx.Next().Kind != token.EOF {
		count++
	}
	if count == 0 {
		t.Fatalf("lexing must continue without a reporter")
	}
}

package driver

import (
	"testing"

	"plume/internal/format"
	"plume/internal/source"
)

func TestRunFmtCheckStable(t *testing.T) {
	sources := []string{
		"let   x=[1,2 ,3]\n",
		"# doc\nlet x = 1 # tail\n",
		"let xs = [\n    # dangling\n]\n",
		"configure(\n    host,  # where\n    8080,\n)\n\n# eof\n",
	}
	for _, src := range sources {
		fs := source.NewFileSet()
		id := fs.AddVirtual("check.plm", []byte(src))
		ok, msg, bag := RunFmtCheck(fs.Get(id), format.Options{}, 64)
		if !ok {
			t.Errorf("%q: %s", src, msg)
		}
		if bag.HasErrors() {
			t.Errorf("%q: unexpected diagnostics: %+v", src, bag.Items())
		}
	}
}

func TestRunFmtCheckRejectsBrokenInput(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("broken.plm", []byte("let = [\n"))
	ok, msg, bag := RunFmtCheck(fs.Get(id), format.Options{}, 64)
	if ok {
		t.Fatalf("broken input passed fmt-check: %s", msg)
	}
	if bag == nil || !bag.HasErrors() {
		t.Fatalf("broken input must return its diagnostics")
	}
}

func TestRunFmtCheckPathReportsDiagnostics(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "broken.plm", "let = [\n")

	res, err := RunFmtCheckPath(path, format.Options{}, 64)
	if err != nil {
		t.Fatalf("RunFmtCheckPath: %v", err)
	}
	if res.OK {
		t.Fatalf("broken input passed fmt-check: %s", res.Message)
	}
	if res.Bag == nil || !res.Bag.HasErrors() || res.FileSet == nil {
		t.Fatalf("result missing diagnostics: %+v", res)
	}
}

func TestTokenize(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "tok.plm", "# note\nlet x = 1\n")

	res, err := Tokenize(path, 16)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if res.Bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", res.Bag.Items())
	}
	if len(res.Tokens) == 0 {
		t.Fatalf("no tokens")
	}
	first := res.Tokens[0]
	if len(first.Leading) == 0 {
		t.Fatalf("leading trivia missing on first token")
	}
}

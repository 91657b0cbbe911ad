package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"plume/internal/diag"
	"plume/internal/source"
)

func TestJSONOutput(t *testing.T) {
	bag, fs, fileID := testBag(t)
	items := bag.Items()
	items[0] = items[0].WithNote(source.Span{File: fileID, Start: 22, End: 27}, "string opened here")

	var buf bytes.Buffer
	err := JSON(&buf, bag, fs, JSONOpts{
		IncludePositions: true,
		IncludeNotes:     true,
		PathMode:         PathModeBasename,
	})
	if err != nil {
		t.Fatalf("JSON failed: %v", err)
	}

	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}
	if out.Count != 1 || len(out.Diagnostics) != 1 {
		t.Fatalf("expected 1 diagnostic, got %+v", out)
	}

	d := out.Diagnostics[0]
	if d.Severity != "ERROR" || d.Code != "PLM1002" {
		t.Fatalf("severity/code mismatch: %+v", d)
	}
	if d.Location.File != "test.plm" || d.Location.StartLine != 1 || d.Location.StartCol != 9 {
		t.Fatalf("location mismatch: %+v", d.Location)
	}
	if len(d.Notes) != 1 || d.Notes[0].Message != "string opened here" {
		t.Fatalf("notes mismatch: %+v", d.Notes)
	}
}

func TestJSONMaxTruncates(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("many.plm", []byte("pass\npass\npass\n"))

	bag := diag.NewBag(10)
	for i := range 3 {
		off := uint32(i * 5)
		bag.Add(diag.Diagnostic{
			Severity: diag.SevWarning,
			Code:     diag.SynUnexpectedToken,
			Message:  "example",
			Primary:  source.Span{File: fileID, Start: off, End: off + 4},
		})
	}

	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{Max: 2})
	if out.Count != 2 || len(out.Diagnostics) != 2 {
		t.Fatalf("Max=2 should truncate to 2, got %+v", out.Count)
	}
	if bag.Len() != 3 {
		t.Fatalf("truncation must not touch the bag")
	}
}

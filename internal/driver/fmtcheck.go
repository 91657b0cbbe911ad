package driver

import (
	"bytes"
	"fmt"

	"plume/internal/diag"
	"plume/internal/format"
	"plume/internal/source"
)

// RunFmtCheck verifies the formatter is a fixed point for sf: it formats
// the file, reparses the output, formats again, and compares bytes. This is
// the round trip that catches dropped comments and unstable layout.
// The returned bag carries the diagnostics from both passes merged.
func RunFmtCheck(sf *source.File, opt format.Options, maxDiagnostics int) (success bool, msg string, bag *diag.Bag) {
	first, bag, err := format.Source(sf, opt, maxDiagnostics)
	if err != nil {
		if bag != nil && bag.HasErrors() {
			return false, "fmt-check: initial parse has errors", bag
		}
		return false, fmt.Sprintf("fmt-check: initial format failed: %v", err), bag
	}

	fs2 := source.NewFileSet()
	reID := fs2.AddVirtual(sf.Path, first)
	second, rebag, err := format.Source(fs2.Get(reID), opt, maxDiagnostics)
	if rebag != nil {
		bag.Merge(rebag)
	}
	if err != nil {
		return false, fmt.Sprintf("fmt-check: formatted output failed to reparse: %v", err), bag
	}

	if !bytes.Equal(first, second) {
		return false, "fmt-check: output is not stable under reformatting", bag
	}
	return true, "fmt-check: OK", bag
}

// FmtCheckResult is the outcome of RunFmtCheckPath for one file.
type FmtCheckResult struct {
	OK      bool
	Message string
	Bag     *diag.Bag
	// FileSet resolves the spans in Bag for diagnostics from the initial
	// parse of the file on disk.
	FileSet *source.FileSet
}

// RunFmtCheckPath loads path and runs RunFmtCheck on it.
func RunFmtCheckPath(path string, opt format.Options, maxDiagnostics int) (*FmtCheckResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	ok, msg, bag := RunFmtCheck(fs.Get(fileID), opt, maxDiagnostics)
	return &FmtCheckResult{OK: ok, Message: msg, Bag: bag, FileSet: fs}, nil
}

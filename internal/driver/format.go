// Package driver runs the formatting pipeline over files and directories:
// collection, parallel formatting, caching, and write-back.
package driver

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"plume/internal/ast"
	"plume/internal/comments"
	"plume/internal/diag"
	"plume/internal/format"
	"plume/internal/lexer"
	"plume/internal/parser"
	"plume/internal/pipeline"
	"plume/internal/source"
)

// FormatOptions configures code formatting.
type FormatOptions struct {
	// Check leaves files untouched; Changed reports whether formatting
	// would rewrite the file.
	Check bool
	// Stdout returns formatted content in the results instead of writing
	// files.
	Stdout         bool
	MaxDiagnostics int
	// Jobs bounds formatting parallelism; <= 0 means GOMAXPROCS.
	Jobs    int
	Options format.Options
	// Cache, when non-nil, skips the pipeline for files whose content and
	// options were seen before.
	Cache *DiskCache
	Sink  pipeline.ProgressSink
}

// FormatResult captures the outcome for a single file.
type FormatResult struct {
	Path    string
	Changed bool
	Err     error
	Bag     *diag.Bag
	// FileSet resolves the spans in Bag. Nil when the result came from the
	// cache or the file failed to load.
	FileSet   *source.FileSet
	Formatted []byte
	// Timings records how long each pipeline stage took for this file.
	// Empty for cache hits.
	Timings pipeline.Timings
}

// FormatPaths formats the given files or directories (recursively collecting
// .plm files). Files are processed in parallel; results come back sorted by
// path. Per-file failures land in FormatResult.Err, not in the returned
// error.
func FormatPaths(ctx context.Context, paths []string, opts FormatOptions) ([]FormatResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	files, err := CollectSourceFiles(ctx, paths)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, errors.New("format: no source files found")
	}

	for _, path := range files {
		pipeline.Emit(opts.Sink, pipeline.Event{File: path, Status: pipeline.StatusQueued})
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Each goroutine owns a distinct index, so results needs no mutex.
	results := make([]FormatResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			results[i] = formatOneFile(path, opts)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func formatOneFile(path string, opts FormatOptions) FormatResult {
	started := time.Now()
	result := FormatResult{Path: path}

	formatted, changed, err := formatSource(path, opts, &result)
	if err != nil {
		result.Err = err
		pipeline.Emit(opts.Sink, pipeline.Event{File: path, Status: pipeline.StatusError, Err: err, Elapsed: time.Since(started)})
		return result
	}

	switch {
	case opts.Check, opts.Stdout:
		result.Changed = changed
		if opts.Stdout {
			result.Formatted = formatted
		}
	case changed:
		writeStart := time.Now()
		pipeline.Emit(opts.Sink, pipeline.Event{File: path, Stage: pipeline.StageWrite, Status: pipeline.StatusWorking})
		if err := writeBack(path, formatted); err != nil {
			result.Err = err
			pipeline.Emit(opts.Sink, pipeline.Event{File: path, Status: pipeline.StatusError, Err: err, Elapsed: time.Since(started)})
			return result
		}
		result.Timings.Set(pipeline.StageWrite, time.Since(writeStart))
		result.Changed = true
	}

	pipeline.Emit(opts.Sink, pipeline.Event{File: path, Status: pipeline.StatusDone, Elapsed: time.Since(started)})
	return result
}

// formatSource runs the in-memory stages (parse, attach, print) for one
// file, emitting a working event and recording a duration for each. Cache
// hits skip the stages entirely.
func formatSource(path string, opts FormatOptions, res *FormatResult) (formatted []byte, changed bool, err error) {
	fileSet := source.NewFileSet()
	fileID, err := fileSet.Load(path)
	if err != nil {
		return nil, false, err
	}
	sf := fileSet.Get(fileID)

	key := cacheKey(sf.Hash, opts.Options)
	if opts.Cache != nil {
		var payload FormatPayload
		if ok, cacheErr := opts.Cache.Get(key, &payload); cacheErr == nil && ok && payload.ContentHash == Digest(sf.Hash) {
			return payload.Formatted, payload.Changed, nil
		}
	}
	res.FileSet = fileSet

	maxDiag := opts.MaxDiagnostics
	if maxDiag <= 0 {
		maxDiag = 256
	}

	begin := func(stage pipeline.Stage) time.Time {
		pipeline.Emit(opts.Sink, pipeline.Event{File: path, Stage: stage, Status: pipeline.StatusWorking})
		return time.Now()
	}

	parseStart := begin(pipeline.StageParse)
	bag := diag.NewBag(maxDiag)
	lx := lexer.New(sf, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	arenas := ast.NewBuilder(ast.Hints{})
	parsed := parser.ParseFile(sf, lx, arenas, parser.Options{
		Reporter:  diag.BagReporter{Bag: bag},
		MaxErrors: uint(bag.Cap()),
	})
	res.Timings.Set(pipeline.StageParse, time.Since(parseStart))
	res.Bag = bag
	if bag.HasErrors() {
		return nil, false, errors.New("format: source has syntax errors")
	}

	attachStart := begin(pipeline.StageAttach)
	com := comments.Attach(arenas, parsed.File, sf, parsed.Comments)
	res.Timings.Set(pipeline.StageAttach, time.Since(attachStart))

	printStart := begin(pipeline.StagePrint)
	formatted, err = format.FormatFile(sf, arenas, parsed.File, com, opts.Options)
	res.Timings.Set(pipeline.StagePrint, time.Since(printStart))
	if err != nil {
		return nil, false, err
	}
	changed = !bytes.Equal(sf.Content, formatted)

	if opts.Cache != nil {
		// A cache write failure never fails the format run.
		_ = opts.Cache.Put(key, &FormatPayload{
			Schema:      diskCacheSchemaVersion,
			ContentHash: Digest(sf.Hash),
			Changed:     changed,
			Formatted:   formatted,
		})
	}
	return formatted, changed, nil
}

func writeBack(path string, formatted []byte) error {
	mode := os.FileMode(0o644)
	if info, statErr := os.Stat(path); statErr == nil {
		mode = info.Mode()
	}
	return os.WriteFile(path, formatted, mode.Perm())
}

// CollectSourceFiles resolves files and directories into a sorted,
// de-duplicated list of .plm files.
func CollectSourceFiles(ctx context.Context, paths []string) ([]string, error) {
	var files []string
	seen := make(map[string]struct{})
	addFile := func(path string) {
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if err := ctx.Err(); err != nil {
					return err
				}
				if d.IsDir() {
					return nil
				}
				if filepath.Ext(path) == ".plm" {
					addFile(path)
				}
				return nil
			})
			if err != nil {
				return nil, err
			}
			continue
		}

		if filepath.Ext(p) == ".plm" {
			addFile(p)
		}
	}

	sort.Strings(files)
	return files, nil
}

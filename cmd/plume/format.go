package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"plume/internal/config"
	"plume/internal/diagfmt"
	"plume/internal/driver"
	"plume/internal/format"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [flags] <path> [path...]",
	Short: "Format plume source files",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFmt,
}

func init() {
	fmtCmd.Flags().Bool("check", false, "check if files are properly formatted")
	fmtCmd.Flags().String("format", "text", "output format (text|json)")
	fmtCmd.Flags().Bool("stdout", false, "print formatted code to stdout instead of rewriting files")
	fmtCmd.Flags().String("ui", "off", "interactive progress (auto|on|off)")
	fmtCmd.Flags().Int("jobs", 0, "number of files formatted in parallel (0 = all CPUs)")
	fmtCmd.Flags().Bool("cache", false, "reuse formatted output for unchanged files")
	fmtCmd.Flags().String("cache-dir", "", "cache directory (default: XDG cache)")
	fmtCmd.Flags().Int("indent", 0, "indent width (overrides plume.toml)")
	fmtCmd.Flags().Bool("tabs", false, "indent with tabs (overrides plume.toml)")
}

func runFmt(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	check, err := cmd.Flags().GetBool("check")
	if err != nil {
		return err
	}
	outputFormat, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	writeToStdout, err := cmd.Flags().GetBool("stdout")
	if err != nil {
		return err
	}
	if writeToStdout && check {
		return fmt.Errorf("fmt: --stdout cannot be used with --check")
	}
	if writeToStdout && outputFormat != "text" {
		return fmt.Errorf("fmt: --stdout is only supported with text output")
	}

	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return err
	}
	mode, err := readUIMode(uiValue)
	if err != nil {
		return err
	}
	useTUI := shouldUseTUI(mode) && !writeToStdout && outputFormat == "text"

	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return err
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return err
	}
	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return err
	}

	styleOpts, err := resolveStyle(cmd, args)
	if err != nil {
		return err
	}

	opts := driver.FormatOptions{
		Check:          check,
		Stdout:         writeToStdout,
		MaxDiagnostics: maxDiagnostics,
		Jobs:           jobs,
		Options:        styleOpts,
	}

	useCache, err := cmd.Flags().GetBool("cache")
	if err != nil {
		return err
	}
	if useCache {
		cacheDir, dirErr := cmd.Flags().GetString("cache-dir")
		if dirErr != nil {
			return dirErr
		}
		cache, cacheErr := driver.OpenDiskCache("plume", cacheDir)
		if cacheErr != nil {
			return fmt.Errorf("fmt: failed to open cache: %w", cacheErr)
		}
		opts.Cache = cache
	}

	var formatResults []driver.FormatResult
	if useTUI {
		files, collectErr := driver.CollectSourceFiles(cmd.Context(), args)
		if collectErr != nil {
			return collectErr
		}
		formatResults, err = runFormatWithUI(cmd.Context(), "plume fmt", files, opts)
	} else {
		formatResults, err = driver.FormatPaths(cmd.Context(), args, opts)
	}
	if err != nil {
		return err
	}

	var hasErrors bool
	var hasChanges bool

	switch outputFormat {
	case "text":
		if writeToStdout {
			renderFmtStdout(cmd, formatResults, &hasErrors)
			if hasErrors {
				return fmt.Errorf("fmt: failed to format some files")
			}
			return nil
		}
		renderFmtText(cmd, formatResults, check, quiet, &hasErrors, &hasChanges)
		if showTimings {
			printStageTimings(os.Stdout, sumStageTimings(formatResults))
		}
	case "json":
		if err := renderFmtJSON(formatResults, check); err != nil {
			return err
		}
		for _, res := range formatResults {
			hasErrors = hasErrors || res.Err != nil
			hasChanges = hasChanges || res.Changed
		}
	default:
		return fmt.Errorf("fmt: unsupported output format %q", outputFormat)
	}

	if hasErrors {
		return fmt.Errorf("fmt: failed to format some files")
	}
	if check && hasChanges {
		return fmt.Errorf("fmt: formatting changes required")
	}
	return nil
}

// resolveStyle merges plume.toml settings (discovered from the first path)
// with explicit CLI overrides.
func resolveStyle(cmd *cobra.Command, args []string) (format.Options, error) {
	startDir := args[0]
	if info, err := os.Stat(startDir); err == nil && !info.IsDir() {
		startDir = filepath.Dir(startDir)
	}
	manifest, err := config.Discover(startDir)
	if err != nil {
		return format.Options{}, err
	}

	opts := format.Options{
		IndentWidth: manifest.Config.Format.IndentWidth,
		UseTabs:     manifest.Config.Format.UseTabs,
	}

	if cmd.Flags().Changed("indent") {
		indent, err := cmd.Flags().GetInt("indent")
		if err != nil {
			return format.Options{}, err
		}
		if indent <= 0 {
			return format.Options{}, fmt.Errorf("fmt: --indent must be positive")
		}
		opts.IndentWidth = indent
	}
	if cmd.Flags().Changed("tabs") {
		tabs, err := cmd.Flags().GetBool("tabs")
		if err != nil {
			return format.Options{}, err
		}
		opts.UseTabs = tabs
	}
	return opts, nil
}

func renderFmtStdout(cmd *cobra.Command, results []driver.FormatResult, hasErrors *bool) {
	for _, res := range results {
		if res.Err != nil {
			*hasErrors = true
			reportFileError(cmd, res)
			continue
		}
		_, _ = os.Stdout.Write(res.Formatted)
	}
}

func renderFmtText(cmd *cobra.Command, results []driver.FormatResult, check, quiet bool, hasErrors, hasChanges *bool) {
	for _, res := range results {
		if res.Err != nil {
			*hasErrors = true
			reportFileError(cmd, res)
			continue
		}

		if check {
			if res.Changed {
				*hasChanges = true
				if !quiet {
					fmt.Fprintln(os.Stdout, res.Path)
				}
			}
			continue
		}

		if res.Changed && !quiet {
			fmt.Fprintf(os.Stdout, "reformatted %s\n", res.Path)
		}
	}
}

// reportFileError prints the failure and, when the file carried syntax
// errors, the pretty diagnostics behind it.
func reportFileError(cmd *cobra.Command, res driver.FormatResult) {
	fmt.Fprintf(os.Stderr, "fmt: %s: %v\n", res.Path, res.Err)
	if res.Bag == nil || res.Bag.Len() == 0 || res.FileSet == nil {
		return
	}
	colorFlag, _ := cmd.Root().PersistentFlags().GetString("color")
	useColor := colorFlag == "on" || (colorFlag == "auto" && isTerminal(os.Stderr))
	res.Bag.Sort()
	diagfmt.Pretty(os.Stderr, res.Bag, res.FileSet, diagfmt.PrettyOpts{
		Color:     useColor,
		ShowNotes: true,
	})
}

func renderFmtJSON(results []driver.FormatResult, check bool) error {
	type jsonResult struct {
		Path     string `json:"path"`
		Changed  bool   `json:"changed"`
		Error    string `json:"error,omitempty"`
		CheckRun bool   `json:"check"`
	}

	payload := make([]jsonResult, 0, len(results))
	for _, res := range results {
		jr := jsonResult{Path: res.Path, Changed: res.Changed, CheckRun: check}
		if res.Err != nil {
			jr.Error = res.Err.Error()
		}
		payload = append(payload, jr)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"plume/internal/diagfmt"
	"plume/internal/driver"
	"plume/internal/format"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <path> [path...]",
	Short: "Verify formatting is stable for the given files",
	Long:  `Check formats each file, reparses the output, and formats again; any difference between the two outputs is reported`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return err
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return err
	}

	files, err := driver.CollectSourceFiles(cmd.Context(), args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("check: no source files found")
	}

	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return err
	}
	useColor := colorFlag == "on" || (colorFlag == "auto" && isTerminal(os.Stderr))

	var failed bool
	for _, path := range files {
		res, err := driver.RunFmtCheckPath(path, format.Options{}, maxDiagnostics)
		if err != nil {
			failed = true
			fmt.Fprintf(os.Stderr, "check: %s: %v\n", path, err)
			continue
		}
		if !res.OK {
			failed = true
			fmt.Fprintf(os.Stderr, "check: %s: %s\n", path, res.Message)
			if res.Bag != nil && res.Bag.HasErrors() {
				res.Bag.Sort()
				diagfmt.Pretty(os.Stderr, res.Bag, res.FileSet, diagfmt.PrettyOpts{
					Color:     useColor,
					ShowNotes: true,
				})
			}
			continue
		}
		if !quiet {
			fmt.Fprintf(os.Stdout, "ok %s\n", path)
		}
	}

	if failed {
		return fmt.Errorf("check: some files failed")
	}
	return nil
}

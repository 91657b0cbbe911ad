package main

import (
	"fmt"
	"io"
	"time"

	"plume/internal/driver"
	"plume/internal/pipeline"
)

var timedStages = []pipeline.Stage{
	pipeline.StageParse,
	pipeline.StageAttach,
	pipeline.StagePrint,
	pipeline.StageWrite,
}

// sumStageTimings folds per-file timings into one run-wide total. Cache
// hits contribute nothing.
func sumStageTimings(results []driver.FormatResult) pipeline.Timings {
	var total pipeline.Timings
	for _, res := range results {
		for _, stage := range timedStages {
			if res.Timings.Has(stage) {
				total.Set(stage, total.Duration(stage)+res.Timings.Duration(stage))
			}
		}
	}
	return total
}

// printStageTimings reports the wall-clock time spent in each stage across
// the whole run. Attach and print are folded into one "formatted" line.
func printStageTimings(out io.Writer, timings pipeline.Timings) {
	if out == nil {
		return
	}
	if timings.Has(pipeline.StageParse) {
		fmt.Fprintf(out, "parsed %.1f ms\n", toMillis(timings.Duration(pipeline.StageParse)))
	}
	if timings.Has(pipeline.StageAttach) || timings.Has(pipeline.StagePrint) {
		formatted := timings.Sum(pipeline.StageAttach, pipeline.StagePrint)
		fmt.Fprintf(out, "formatted %.1f ms\n", toMillis(formatted))
	}
	if timings.Has(pipeline.StageWrite) {
		fmt.Fprintf(out, "wrote %.1f ms\n", toMillis(timings.Duration(pipeline.StageWrite)))
	}
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

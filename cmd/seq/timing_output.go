package main

import (
	"fmt"
	"io"

	"seq/internal/observ"
)

// printStageTimings writes the summed per-stage durations of a run.
func printStageTimings(out io.Writer, timer *observ.Timer, files int) {
	if out == nil || timer == nil {
		return
	}
	report := timer.Report()
	if len(report.Phases) == 0 {
		return
	}
	fmt.Fprintf(out, "%d file(s)\n", files)
	fmt.Fprint(out, timer.Summary())
}

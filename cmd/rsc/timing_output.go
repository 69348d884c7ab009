package main

import (
	"fmt"
	"io"
	"time"

	"github.com/waleedyaseen/RuneScript-sub000/internal/buildpipeline"
	"github.com/waleedyaseen/RuneScript-sub000/internal/observ"
)

var stageVerbs = map[buildpipeline.Stage]string{
	buildpipeline.StageParse:   "parsed",
	buildpipeline.StageCheck:   "checked",
	buildpipeline.StageCodegen: "generated",
	buildpipeline.StageEmit:    "wrote",
}

func printStageTimings(out io.Writer, timings buildpipeline.Timings) {
	if out == nil {
		return
	}
	for _, stage := range buildpipeline.Stages {
		if timings.Has(stage) {
			fmt.Fprintf(out, "%s %.1f ms\n", stageVerbs[stage], toMillis(timings.Duration(stage)))
		}
	}
}

// printPhaseReport prints the compiler's own per-phase breakdown.
func printPhaseReport(out io.Writer, report observ.Report) {
	if out == nil || len(report.Phases) == 0 {
		return
	}
	fmt.Fprintln(out, "phases:")
	for _, p := range report.Phases {
		fmt.Fprintf(out, "  %-10s %8.2f ms  x%d", p.Name, p.DurationMS, p.Runs)
		if p.Note != "" {
			fmt.Fprintf(out, "  // %s", p.Note)
		}
		fmt.Fprintln(out)
	}
	fmt.Fprintf(out, "  %-10s %8.2f ms\n", "total", report.TotalMS)
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/waleedyaseen/RuneScript-sub000/internal/buildpipeline"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [file.cs2|directory]...",
	Short: "Report diagnostics without writing objects",
	Long: `Check parses and analyzes the given sources (or the project's source
directory) and reports every diagnostic. Nothing is written.`,
	RunE: runCheck,
}

func init() {
	diagnosticFlags(checkCmd)
	pipelineFlags(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	diags, err := readDiagOutput(cmd)
	if err != nil {
		return err
	}
	pc, err := resolveProject(cmd, args)
	if err != nil {
		return err
	}
	req, err := compileRequest(cmd, pc, diags.max)
	if err != nil {
		return err
	}

	var result buildpipeline.CompileResult
	err = runPipeline(cmd, "check", pc, diags.format == "json", func(ctx context.Context, sink buildpipeline.ProgressSink) error {
		r := *req
		r.Progress = sink
		var runErr error
		result, runErr = buildpipeline.Compile(ctx, &r)
		return runErr
	})
	if err != nil && !errors.Is(err, buildpipeline.ErrDiagnostics) {
		return err
	}
	if result.Compile != nil {
		if emitErr := diags.emit(cmd, result.Compile.Bag, result.Compile.FileSet); emitErr != nil {
			return emitErr
		}
	}
	if showTimings(cmd) {
		printStageTimings(cmd.ErrOrStderr(), result.Timings)
		if result.Compile != nil {
			printPhaseReport(cmd.ErrOrStderr(), result.Compile.Timings)
		}
	}
	if err != nil {
		return exitDiagnostics
	}
	if !quiet(cmd) && diags.format != "json" {
		fmt.Fprintf(cmd.ErrOrStderr(), "checked %d file(s), %d script(s)\n", len(pc.files), len(result.Objects))
	}
	return nil
}

func showTimings(cmd *cobra.Command) bool {
	v, _ := cmd.Root().PersistentFlags().GetBool("timings")
	return v
}

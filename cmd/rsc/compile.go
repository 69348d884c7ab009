package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/waleedyaseen/RuneScript-sub000/internal/buildpipeline"
	"github.com/waleedyaseen/RuneScript-sub000/internal/diagfmt"
	"github.com/waleedyaseen/RuneScript-sub000/internal/driver"
)

var compileCmd = &cobra.Command{
	Use:   "compile [flags] [file.cs2|directory]...",
	Short: "Compile sources into binary script objects",
	Long: `Compile checks the given sources (or the project's source directory) and,
when there are no errors, writes one msgpack object per script to
<out>/<trigger>/<name>.<ext>.`,
	RunE: runCompile,
}

func init() {
	diagnosticFlags(compileCmd)
	pipelineFlags(compileCmd)
	compileCmd.Flags().StringP("out", "o", "", "output directory (default: [project].output)")
	compileCmd.Flags().Bool("listing", false, "print the assembly listing of every script")
	compileCmd.Flags().Bool("cache", false, "reuse objects of unchanged batches from the disk cache")
}

func runCompile(cmd *cobra.Command, args []string) error {
	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	diags, err := readDiagOutput(cmd)
	if err != nil {
		return err
	}
	outDir, err := cmd.Flags().GetString("out")
	if err != nil {
		return fmt.Errorf("failed to get out flag: %w", err)
	}
	listing, err := cmd.Flags().GetBool("listing")
	if err != nil {
		return fmt.Errorf("failed to get listing flag: %w", err)
	}
	useCache, err := cmd.Flags().GetBool("cache")
	if err != nil {
		return fmt.Errorf("failed to get cache flag: %w", err)
	}

	pc, err := resolveProject(cmd, args)
	if err != nil {
		return err
	}
	if outDir == "" {
		outDir = pc.manifest.OutputDir()
	}
	req, err := compileRequest(cmd, pc, diags.max)
	if err != nil {
		return err
	}
	if useCache {
		if req.Cache, err = driver.OpenDiskCache("rsc"); err != nil {
			return fmt.Errorf("failed to open disk cache: %w", err)
		}
	}

	var result buildpipeline.BuildResult
	err = runPipeline(cmd, "compile", pc, diags.format == "json", func(ctx context.Context, sink buildpipeline.ProgressSink) error {
		r := buildpipeline.BuildRequest{CompileRequest: *req, OutputDir: outDir}
		r.Progress = sink
		var runErr error
		result, runErr = buildpipeline.Build(ctx, &r)
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
	if result.CacheErr != nil && !quiet(cmd) {
		fmt.Fprintf(cmd.ErrOrStderr(), "cache: %v\n", result.CacheErr)
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

	if listing {
		if err := printListings(cmd.OutOrStdout(), result.Objects); err != nil {
			return err
		}
	}
	if !quiet(cmd) && diags.format != "json" {
		suffix := ""
		if result.Cached {
			suffix = " (cached)"
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d object(s) to %s%s\n", len(result.Written), outDir, suffix)
	}
	return nil
}

func printListings(w io.Writer, objects []*driver.Object) error {
	for i, o := range objects {
		if i > 0 {
			fmt.Fprintln(w)
		}
		s, err := o.BinaryScript()
		if err != nil {
			return fmt.Errorf("%s: %w", o.Name, err)
		}
		if err := diagfmt.FormatListing(w, objectHeader(o), s); err != nil {
			return err
		}
	}
	return nil
}

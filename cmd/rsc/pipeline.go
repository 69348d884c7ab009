package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/waleedyaseen/RuneScript-sub000/internal/buildpipeline"
	"github.com/waleedyaseen/RuneScript-sub000/internal/driver"
	"github.com/waleedyaseen/RuneScript-sub000/internal/ui"
)

func pipelineFlags(cmd *cobra.Command) {
	cmd.Flags().Int("jobs", 0, "max parallel source readers (0=auto)")
	cmd.Flags().Bool("no-optimize", false, "skip the optimizer passes")
	cmd.Flags().Bool("allow-override", false, "let scripts redefine predefined scripts")
	cmd.Flags().String("ui", "auto", "progress view (auto|on|off)")
}

// compileRequest builds the shared request from the project and the flags.
func compileRequest(cmd *cobra.Command, pc *projectContext, maxDiagnostics int) (*buildpipeline.CompileRequest, error) {
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return nil, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	noOptimize, err := cmd.Flags().GetBool("no-optimize")
	if err != nil {
		return nil, fmt.Errorf("failed to get no-optimize flag: %w", err)
	}
	allowOverride, err := cmd.Flags().GetBool("allow-override")
	if err != nil {
		return nil, fmt.Errorf("failed to get allow-override flag: %w", err)
	}

	opts := driver.OptionsFor(pc.env)
	if noOptimize {
		opts.Optimize = false
	}
	if allowOverride {
		opts.AllowOverride = true
	}
	// без явного флага действует [compiler].max_errors
	if cmd.Root().PersistentFlags().Changed("max-diagnostics") {
		opts.MaxErrors = maxDiagnostics
	}
	return &buildpipeline.CompileRequest{
		Env:     pc.env,
		Files:   pc.files,
		BaseDir: pc.baseDir,
		Options: opts,
		Jobs:    jobs,
	}, nil
}

// runPipeline runs fn with a progress view when one is wanted.
func runPipeline(cmd *cobra.Command, title string, pc *projectContext, jsonOutput bool, fn func(context.Context, buildpipeline.ProgressSink) error) error {
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}
	if !shouldUseTUI(mode, jsonOutput, quiet(cmd)) {
		return fn(cmd.Context(), nil)
	}
	names := make([]string, len(pc.files))
	for i, f := range pc.files {
		names[i] = buildpipeline.DisplayName(f, pc.baseDir)
	}
	return ui.RunWithProgress(cmd.Context(), cmd.ErrOrStderr(), title, names, fn)
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/waleedyaseen/RuneScript-sub000/internal/diagfmt"
	"github.com/waleedyaseen/RuneScript-sub000/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.cs2",
	Short: "Parse a RuneScript source file and print its syntax tree",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().String("output", "pretty", "tree output format (pretty|json)")
	diagnosticFlags(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return fmt.Errorf("failed to get output flag: %w", err)
	}
	if output != "pretty" && output != "json" {
		return fmt.Errorf("unknown output format: %s", output)
	}
	diags, err := readDiagOutput(cmd)
	if err != nil {
		return err
	}
	diags.stderrJSON = true
	manifest, env, err := loadProject(cmd)
	if err != nil {
		return err
	}

	result, err := driver.Parse(args[0], env, manifest.Encoding(), diags.max)
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}
	if err := diags.emit(cmd, result.Bag, result.FileSet); err != nil {
		return err
	}

	if output == "json" {
		err = diagfmt.FormatASTJSON(cmd.OutOrStdout(), result.Builder, result.FileID)
	} else {
		err = diagfmt.FormatASTPretty(cmd.OutOrStdout(), result.Builder, result.FileID, result.FileSet)
	}
	if err != nil {
		return err
	}
	if result.Bag.HasErrors() {
		return exitDiagnostics
	}
	return nil
}

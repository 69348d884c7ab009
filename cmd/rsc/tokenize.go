package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/waleedyaseen/RuneScript-sub000/internal/diagfmt"
	"github.com/waleedyaseen/RuneScript-sub000/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.cs2",
	Short: "Tokenize a RuneScript source file",
	Long:  `Tokenize breaks down a RuneScript source file into its constituent tokens`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("output", "pretty", "token output format (pretty|json)")
	diagnosticFlags(tokenizeCmd)
}

func runTokenize(cmd *cobra.Command, args []string) error {
	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return fmt.Errorf("failed to get output flag: %w", err)
	}
	diags, err := readDiagOutput(cmd)
	if err != nil {
		return err
	}
	diags.stderrJSON = true
	manifest, _, err := loadProject(cmd)
	if err != nil {
		return err
	}

	result, err := driver.Tokenize(args[0], manifest.Encoding(), diags.max)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}
	if err := diags.emit(cmd, result.Bag, result.FileSet); err != nil {
		return err
	}

	switch output {
	case "pretty":
		err = diagfmt.FormatTokensPretty(cmd.OutOrStdout(), result.Tokens, result.FileSet)
	case "json":
		err = diagfmt.FormatTokensJSON(cmd.OutOrStdout(), result.Tokens, result.FileSet)
	default:
		return fmt.Errorf("unknown output format: %s", output)
	}
	if err != nil {
		return err
	}
	if result.Bag.HasErrors() {
		return exitDiagnostics
	}
	return nil
}

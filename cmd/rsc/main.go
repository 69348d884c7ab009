package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/waleedyaseen/RuneScript-sub000/internal/version"
)

var rootCmd = &cobra.Command{
	Use:               "rsc",
	Short:             "RuneScript compiler",
	Long:              `rsc compiles RuneScript (.cs2) sources into binary script objects`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: startProfiling,
	PersistentPostRunE: func(*cobra.Command, []string) error {
		return stopProfiling()
	},
}

func init() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(compileCmd)
	rootCmd.AddCommand(disasmCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	flags := rootCmd.PersistentFlags()
	flags.String("color", "auto", "colorize output (auto|on|off)")
	flags.Bool("quiet", false, "suppress non-essential output")
	flags.Bool("timings", false, "show timing information")
	flags.Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	flags.String("path-mode", "auto", "how diagnostic paths are printed (auto|absolute|relative|basename)")
	flags.String("project", "", "directory to search for rsc.toml (default: working directory)")
	flags.String("trace", "", "write trace events to file ('-' for stderr)")
	flags.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	flags.String("trace-format", "auto", "trace output format (auto|text|ndjson)")
	flags.String("trace-mode", "stream", "trace storage mode (stream|ring)")
	flags.Int("trace-ring-size", 4096, "events kept in ring mode")
	flags.String("cpuprofile", "", "write a CPU profile to file")
	flags.String("memprofile", "", "write a heap profile to file on exit")
	flags.String("runtime-trace", "", "write a Go runtime trace to file")
}

func main() {
	err := rootCmd.Execute()
	if stopErr := stopProfiling(); stopErr != nil {
		fmt.Fprintf(os.Stderr, "rsc: %v\n", stopErr)
	}
	if err == nil {
		return
	}
	var silent exitCode
	if !errors.As(err, &silent) {
		fmt.Fprintf(os.Stderr, "rsc: %v\n", err)
	}
	os.Exit(codeOf(err))
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

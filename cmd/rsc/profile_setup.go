package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/waleedyaseen/RuneScript-sub000/internal/prof"
)

var profiling *prof.Session

func startProfiling(cmd *cobra.Command, _ []string) error {
	flags := cmd.Root().PersistentFlags()
	var cfg prof.Config
	var err error
	if cfg.CPU, err = flags.GetString("cpuprofile"); err != nil {
		return err
	}
	if cfg.Mem, err = flags.GetString("memprofile"); err != nil {
		return err
	}
	if cfg.Trace, err = flags.GetString("runtime-trace"); err != nil {
		return err
	}
	if !cfg.Enabled() {
		return nil
	}
	if profiling, err = prof.Start(cfg); err != nil {
		return fmt.Errorf("failed to start profiling: %w", err)
	}
	return nil
}

// stopProfiling runs after every command, failed ones included.
func stopProfiling() error {
	s := profiling
	profiling = nil
	return s.Stop()
}

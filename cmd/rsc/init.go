package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/waleedyaseen/RuneScript-sub000/internal/driver"
	"github.com/waleedyaseen/RuneScript-sub000/internal/project"
)

var initCmd = &cobra.Command{
	Use:   "init [path|name]",
	Short: "Initialize a new RuneScript project",
	Long: `Initialize a new project by creating a manifest (rsc.toml) and a
hello-world script (src/main.cs2). If [path|name] is omitted, initializes
the current directory. A missing directory is created.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

const helloScript = `// Entry point created by rsc init.
[proc,main]
mes("Hello, world!");
`

func runInit(cmd *cobra.Command, args []string) error {
	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	target := wd
	if len(args) == 1 && args[0] != "." {
		target = args[0]
		if !filepath.IsAbs(target) {
			target = filepath.Join(wd, target)
		}
	}

	if st, err := os.Stat(target); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		if err := os.MkdirAll(target, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %q: %w", target, err)
		}
	} else if !st.IsDir() {
		return fmt.Errorf("%q is not a directory", target)
	}

	name := strings.TrimSpace(filepath.Base(target))
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "rsc-project"
	}

	manifestPath, err := project.WriteManifest(target, name)
	if err != nil {
		return err
	}
	created := []string{manifestPath}

	mainPath := filepath.Join(project.DefaultManifest(target).SourceDir(), "main"+driver.SourceExt)
	if _, err := os.Stat(mainPath); errors.Is(err, os.ErrNotExist) {
		if err := os.MkdirAll(filepath.Dir(mainPath), 0o755); err != nil {
			return fmt.Errorf("failed to create source directory: %w", err)
		}
		if err := os.WriteFile(mainPath, []byte(helloScript), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", mainPath, err)
		}
		created = append(created, mainPath)
	}

	out := cmd.OutOrStdout()
	for _, p := range created {
		rel, err := filepath.Rel(wd, p)
		if err != nil {
			rel = p
		}
		fmt.Fprintf(out, "created %s\n", filepath.ToSlash(rel))
	}
	return nil
}

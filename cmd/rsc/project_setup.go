package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/waleedyaseen/RuneScript-sub000/internal/diag"
	"github.com/waleedyaseen/RuneScript-sub000/internal/driver"
	"github.com/waleedyaseen/RuneScript-sub000/internal/project"
)

// projectContext is what every compiling command needs: the environment
// and the sources it was asked about.
type projectContext struct {
	manifest *project.Manifest
	env      *project.Environment
	files    []string
	baseDir  string
}

// loadProject finds rsc.toml from --project (or the working directory). A
// missing manifest falls back to the embedded tables rooted at the working
// directory.
func loadProject(cmd *cobra.Command) (*project.Manifest, *project.Environment, error) {
	start, err := cmd.Root().PersistentFlags().GetString("project")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get project flag: %w", err)
	}
	if start == "" {
		if start, err = os.Getwd(); err != nil {
			return nil, nil, fmt.Errorf("failed to get working directory: %w", err)
		}
	}

	manifest, warnings, err := project.Open(start)
	switch {
	case errors.Is(err, project.ErrNoManifest):
		manifest = project.DefaultManifest(start)
	case err != nil:
		return nil, nil, err
	}
	env, err := project.LoadEnvironment(manifest)
	if err != nil {
		return nil, nil, err
	}
	if !quiet(cmd) {
		printWarnings(cmd.ErrOrStderr(), append(warnings, env.Warnings...))
	}
	return manifest, env, nil
}

// resolveProject adds the source list: the arguments (files or directories)
// or, without arguments, the manifest's source directory.
func resolveProject(cmd *cobra.Command, args []string) (*projectContext, error) {
	manifest, env, err := loadProject(cmd)
	if err != nil {
		return nil, err
	}
	pc := &projectContext{manifest: manifest, env: env}
	if len(args) == 0 {
		pc.baseDir = manifest.SourceDir()
		pc.files, err = driver.ListSources(pc.baseDir)
		if err != nil {
			return nil, fmt.Errorf("failed to list sources in %s: %w", pc.baseDir, err)
		}
	} else {
		pc.baseDir = manifest.Root
		pc.files, err = driver.ExpandSources(args)
		if err != nil {
			return nil, err
		}
	}
	if len(pc.files) == 0 {
		return nil, fmt.Errorf("no %s sources found", driver.SourceExt)
	}
	return pc, nil
}

func printWarnings(w io.Writer, warnings []project.Warning) {
	code := diag.PrjUnknownKey.ID()
	for _, warn := range warnings {
		fmt.Fprintf(w, "%s: %s %s: %s\n", warn.File, diag.SevWarning, code, warnWithKey(warn))
	}
}

func warnWithKey(w project.Warning) string {
	if w.Key == "" {
		return w.Msg
	}
	return w.Key + ": " + w.Msg
}

func quiet(cmd *cobra.Command) bool {
	q, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	return q
}

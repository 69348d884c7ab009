package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/waleedyaseen/RuneScript-sub000/internal/diag"
	"github.com/waleedyaseen/RuneScript-sub000/internal/diagfmt"
	"github.com/waleedyaseen/RuneScript-sub000/internal/source"
)

type diagOutput struct {
	format   string
	color    bool
	pathMode diagfmt.PathMode
	max      int
	notes    bool
	// stderrJSON sends JSON diagnostics to stderr when stdout carries the
	// command's own output.
	stderrJSON bool
}

func diagnosticFlags(cmd *cobra.Command) {
	cmd.Flags().String("format", "pretty", "diagnostic format (pretty|json|short)")
	cmd.Flags().Bool("with-notes", true, "include diagnostic notes in output")
}

func readDiagOutput(cmd *cobra.Command) (diagOutput, error) {
	var out diagOutput
	var err error
	if out.format, err = cmd.Flags().GetString("format"); err != nil {
		return out, fmt.Errorf("failed to get format flag: %w", err)
	}
	switch out.format {
	case "pretty", "json", "short":
	default:
		return out, fmt.Errorf("unknown format: %s", out.format)
	}
	if out.notes, err = cmd.Flags().GetBool("with-notes"); err != nil {
		return out, fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	root := cmd.Root().PersistentFlags()
	if out.max, err = root.GetInt("max-diagnostics"); err != nil {
		return out, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	mode, err := root.GetString("path-mode")
	if err != nil {
		return out, fmt.Errorf("failed to get path-mode flag: %w", err)
	}
	var ok bool
	if out.pathMode, ok = diagfmt.ParsePathMode(mode); !ok {
		return out, fmt.Errorf("unknown path mode: %s", mode)
	}
	out.color = useColor(cmd, os.Stderr)
	return out, nil
}

func useColor(cmd *cobra.Command, f *os.File) bool {
	colorFlag, _ := cmd.Root().PersistentFlags().GetString("color")
	return colorFlag == "on" || (colorFlag == "auto" && isTerminal(f))
}

// emit prints the bag: JSON to stdout so it can be piped (unless
// stderrJSON), the other formats to stderr.
func (o diagOutput) emit(cmd *cobra.Command, bag *diag.Bag, fs *source.FileSet) error {
	if bag == nil || fs == nil {
		return nil
	}
	switch o.format {
	case "json":
		w := cmd.OutOrStdout()
		if o.stderrJSON {
			w = cmd.ErrOrStderr()
		}
		return diagfmt.JSON(w, bag, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         o.pathMode,
			Max:              o.max,
			IncludeNotes:     o.notes,
		})
	case "short":
		items := bag.Items()
		if o.max > 0 && len(items) > o.max {
			items = items[:o.max]
		}
		text := diag.FormatShort(items, fs)
		if text == "" {
			return nil
		}
		_, err := io.WriteString(cmd.ErrOrStderr(), text+"\n")
		return err
	default:
		if bag.Len() == 0 {
			return nil
		}
		limited := bag
		if o.max > 0 && bag.Len() > o.max {
			limited = diag.NewBag(o.max)
			for _, d := range bag.Items()[:o.max] {
				limited.Add(d)
			}
		}
		diagfmt.Pretty(cmd.ErrOrStderr(), limited, fs, diagfmt.PrettyOpts{
			Color:     o.color,
			Context:   1,
			PathMode:  o.pathMode,
			ShowNotes: o.notes,
		})
		if errs := bag.ErrorCount(); errs > 0 {
			fmt.Fprintf(cmd.ErrOrStderr(), "\n%d error(s)\n", errs)
		}
		return nil
	}
}

package fuzztests

import (
	"context"
	"testing"

	"github.com/waleedyaseen/RuneScript-sub000/internal/driver"
	"github.com/waleedyaseen/RuneScript-sub000/internal/project"
)

// FuzzCompile runs the whole batch pipeline. Sources with errors must
// produce diagnostics, never a panic.
func FuzzCompile(f *testing.F) {
	env, err := project.LoadEnvironment(project.DefaultManifest(f.TempDir()))
	if err != nil {
		f.Fatalf("LoadEnvironment: %v", err)
	}
	opts := driver.OptionsFor(env)
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		res, err := driver.Compile(context.Background(), []driver.Input{{Path: "fuzz.cs2", Content: clampInput(input)}}, env, opts)
		if err != nil {
			t.Fatalf("Compile: %v", err)
		}
		if res.HasErrors() && len(res.Scripts()) != 0 {
			t.Fatalf("scripts generated for a file with errors: %q", truncateForLog(input, 200))
		}
	})
}

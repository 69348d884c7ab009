package driver

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/waleedyaseen/RuneScript-sub000/internal/codegen"
	"github.com/waleedyaseen/RuneScript-sub000/internal/diag"
	"github.com/waleedyaseen/RuneScript-sub000/internal/project"
)

func defaultEnv(t *testing.T) *project.Environment {
	t.Helper()
	env, err := project.LoadEnvironment(project.DefaultManifest(t.TempDir()))
	if err != nil {
		t.Fatalf("LoadEnvironment: %v", err)
	}
	return env
}

// inputs builds a batch from alternating path, source pairs.
func inputs(pairs ...string) []Input {
	out := make([]Input, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, Input{Path: pairs[i], Content: []byte(pairs[i+1])})
	}
	return out
}

func compileOK(t *testing.T, env *project.Environment, opts Options, in []Input) *Result {
	t.Helper()
	res, err := Compile(context.Background(), in, env, opts)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if res.HasErrors() {
		t.Fatalf("unexpected diagnostics:\n%s", diag.FormatShort(res.Bag.Items(), res.FileSet))
	}
	return res
}

func countOp(s *codegen.BinaryScript, op codegen.Opcode) int {
	n := 0
	s.Each(func(_ *codegen.Block, in *codegen.Instruction) {
		if in.Op == op {
			n++
		}
	})
	return n
}

func listing(t *testing.T, s *codegen.BinaryScript) string {
	t.Helper()
	var sb strings.Builder
	if err := codegen.Dump(&sb, s); err != nil {
		t.Fatalf("Dump: %v", err)
	}
	return sb.String()
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func codes(items []diag.Diagnostic) []diag.Code {
	out := make([]diag.Code, len(items))
	for i, d := range items {
		out[i] = d.Code
	}
	return out
}

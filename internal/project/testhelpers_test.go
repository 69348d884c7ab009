package project

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

// loadProject writes the manifest and the extra files into a temp dir and
// loads the environment.
func loadProject(t *testing.T, manifest string, files map[string]string) *Environment {
	t.Helper()
	dir := t.TempDir()
	path := writeFile(t, dir, ManifestName, manifest)
	for name, content := range files {
		writeFile(t, dir, name, content)
	}
	m, warnings, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if len(warnings) > 0 {
		t.Fatalf("manifest warnings: %v", warnings)
	}
	env, err := LoadEnvironment(m)
	if err != nil {
		t.Fatalf("LoadEnvironment: %v", err)
	}
	return env
}

package project

import (
	"errors"
	"strings"
	"testing"

	"github.com/waleedyaseen/RuneScript-sub000/internal/codegen"
	"github.com/waleedyaseen/RuneScript-sub000/internal/source"
	"github.com/waleedyaseen/RuneScript-sub000/internal/symbols"
	"github.com/waleedyaseen/RuneScript-sub000/internal/types"
)

func TestDefaultEnvironment(t *testing.T) {
	env, err := LoadEnvironment(DefaultManifest(t.TempDir()))
	if err != nil {
		t.Fatalf("LoadEnvironment: %v", err)
	}
	if len(env.Warnings) != 0 {
		t.Fatalf("warnings: %v", env.Warnings)
	}
	b := env.Batch()
	if !b.IsTrigger("proc") || b.IsTrigger("nope") {
		t.Fatal("trigger lookup")
	}
	if tr, ok := b.TriggerByOperator("~"); !ok || tr != "proc" {
		t.Fatalf("operator ~ = %q", tr)
	}
	if tr, ok := b.HookTrigger(); !ok || tr != "clientscript" {
		t.Fatalf("hook trigger = %q", tr)
	}
	if !b.IsHookArgument("cc_setonclick", 0) || b.IsHookArgument("mes", 0) {
		t.Fatal("hook argument lookup")
	}
	if b.Extension("clientscript") != "cs2" || b.Extension("proc") != codegen.DefaultExtension {
		t.Fatal("extensions")
	}
	if got := env.Instructions.Code(codegen.OpReturn); got != 21 {
		t.Fatalf("return opcode = %d", got)
	}
	cmd, ok := env.Tables.LookupCommand(b.Table, "cc_setonvartransmit")
	if !ok || cmd.HookType != types.Varp || !cmd.Hook {
		t.Fatalf("command = %+v", cmd)
	}
	if cmd, _ := env.Tables.LookupCommand(b.Table, "mes"); cmd.Type != types.Void {
		t.Fatalf("mes returns %s", cmd.Type)
	}
	if env.Digest == (Digest{}) {
		t.Fatal("digest not computed")
	}
}

func TestProjectTables(t *testing.T) {
	env := loadProject(t, `
[project]
name = "demo"

[compiler]
constants = "constants.toml"
runtime_constants = "runtime.toml"
variables = "variables.toml"
scripts = "scripts.toml"

[compiler.configs]
obj = "configs/obj.toml"
graphic = "configs/graphic.toml"
component = "configs/component.toml"
`, map[string]string{
		"constants.toml": `
[max_stack]
type = "int"
value = 2147483647

[greeting]
type = "string"
value = "hello"

[big]
type = "long"
value = 5000000000

[enabled]
type = "boolean"
value = true
`,
		"runtime.toml": `
[build]
type = "int"
value = 230
`,
		"variables.toml": `
[gold]
id = 1
domain = "player"
type = "int"

[chat_name]
id = 4
domain = "client_string"
type = "STRING"
`,
		"scripts.toml": `
[bank_open]
id = 44
trigger = "proc"
name = "bank_open"
arguments = ["int", "string"]
type = ["int", "int"]
`,
		"configs/obj.toml": `
[coins]
id = 995

[coins_alias]
id = 996
name = "coins_10"
`,
		"configs/graphic.toml": `
[icon]
id = 7
`,
		"configs/component.toml": `
["bank:title"]
id = 786435
`,
	})
	root := env.Root()
	checks := map[string]func() bool{
		"constant":         func() bool { _, ok := env.Tables.LookupConstant(root, "max_stack"); return ok },
		"runtime constant": func() bool { _, ok := env.Tables.LookupRuntimeConstant(root, "build"); return ok },
		"variable":         func() bool { _, ok := env.Tables.LookupVariable(root, "gold"); return ok },
		"config":           func() bool { _, ok := env.Tables.LookupConfig(root, "coins"); return ok },
		"renamed config":   func() bool { _, ok := env.Tables.LookupConfig(root, "coins_10"); return ok },
		"graphic":          func() bool { _, ok := env.Tables.LookupGraphic(root, "icon"); return ok },
		"interface":        func() bool { _, ok := env.Tables.LookupInterface(root, "bank:title"); return ok },
	}
	for name, loaded := range checks {
		if !loaded() {
			t.Errorf("%s not loaded", name)
		}
	}

	if c, _ := env.Tables.LookupConstant(root, "big"); c.Value.Long != 5000000000 {
		t.Fatalf("long constant = %v", c.Value)
	}
	if c, _ := env.Tables.LookupConstant(root, "enabled"); c.Value.Int != 1 || c.Type != types.Boolean {
		t.Fatalf("boolean constant = %+v", c)
	}
	if v, _ := env.Tables.LookupVariable(root, "chat_name"); v.Domain != symbols.DomainClientString || v.Type != types.String {
		t.Fatalf("variable = %+v", v)
	}
	s, ok := env.Tables.LookupScript(root, "proc", "bank_open")
	if !ok || !s.Predefined || s.ID != 44 || len(s.FlatParams()) != 2 || len(types.Flatten(s.Returns)) != 2 {
		t.Fatalf("script = %+v", s)
	}
}

func TestInstructionOverrides(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, ManifestName, "[project]\nname = \"x\"\n[compiler]\ninstructions = \"ins.toml\"\n")
	writeFile(t, dir, "ins.toml", "[return]\nopcode = 99\nlarge = true\n\n[bogus]\nopcode = 1\n")
	m, _, err := LoadManifest(path)
	if err != nil {
		t.Fatal(err)
	}
	env, err := LoadEnvironment(m)
	if err != nil {
		t.Fatal(err)
	}
	if in, ok := env.Instructions.Lookup(codegen.OpReturn); !ok || in.Code != 99 || !in.Large {
		t.Fatalf("return = %+v", in)
	}
	if in, ok := env.Instructions.Lookup(codegen.OpBranch); ok || in.Code != 6 {
		t.Fatalf("branch = %+v", in)
	}
	if len(env.Warnings) != 1 || env.Warnings[0].Key != "bogus" {
		t.Fatalf("warnings = %v", env.Warnings)
	}
}

func TestManifestErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"no project", "[compiler]\noptimize = false\n", "missing [project]"},
		{"no name", "[project]\nsource = \"src\"\n", "missing [project].name"},
		{"bad encoding", "[project]\nname = \"x\"\nencoding = \"ebcdic\"\n", "encoding"},
		{"bad toml", "[project\n", "failed to parse TOML"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), ManifestName, tt.content)
			_, _, err := LoadManifest(path)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestManifestDefaultsAndWarnings(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, ManifestName, "[project]\nname = \"demo\"\nencoding = \"windows-1252\"\ncolour = \"red\"\n[compiler]\noptimize = false\n")
	m, warnings, err := LoadManifest(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(warnings) != 1 || warnings[0].Key != "project.colour" {
		t.Fatalf("warnings = %v", warnings)
	}
	if m.Config.Compiler.OptimizeEnabled() || m.Encoding() != source.EncodingWindows1252 {
		t.Fatalf("config = %+v", m.Config)
	}
	if m.Config.Compiler.Triggers != DefaultTables || m.Config.Compiler.MaxErrors != 100 {
		t.Fatalf("defaults not applied: %+v", m.Config.Compiler)
	}
	if !strings.HasSuffix(m.SourceDir(), "src") || !strings.HasPrefix(m.OutputDir(), dir) {
		t.Fatalf("dirs = %s %s", m.SourceDir(), m.OutputDir())
	}
}

func TestOpenAndWrite(t *testing.T) {
	dir := t.TempDir()
	if _, _, err := Open(dir); !errors.Is(err, ErrNoManifest) {
		t.Fatalf("err = %v", err)
	}
	path, err := WriteManifest(dir, "fresh")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := WriteManifest(dir, "again"); err == nil {
		t.Fatal("existing manifest must not be overwritten")
	}
	sub := writeFile(t, dir, "src/a/.keep", "")
	m, warnings, err := Open(strings.TrimSuffix(sub, ".keep"))
	if err != nil || len(warnings) != 0 {
		t.Fatalf("Open: %v %v", err, warnings)
	}
	if m.Path != path || m.Config.Project.Name != "fresh" || !m.Config.Compiler.OptimizeEnabled() {
		t.Fatalf("manifest = %+v", m)
	}
	if _, err := LoadEnvironment(m); err != nil {
		t.Fatalf("written manifest does not load: %v", err)
	}
}

func TestBatchIsolation(t *testing.T) {
	env, err := LoadEnvironment(DefaultManifest(t.TempDir()))
	if err != nil {
		t.Fatal(err)
	}
	first, second := env.Batch(), env.Batch()
	s := &symbols.Script{Trigger: "proc", Name: "local_only", Returns: types.Void, ID: -1}
	if err := env.Tables.DefineScript(first.Table, s); err != nil {
		t.Fatal(err)
	}
	if _, ok := env.Tables.LookupScript(first.Table, "proc", "local_only"); !ok {
		t.Fatal("batch cannot see its own script")
	}
	if _, ok := env.Tables.LookupScript(second.Table, "proc", "local_only"); ok {
		t.Fatal("script leaked into a sibling batch")
	}
	if _, ok := env.Tables.LookupScript(env.Root(), "proc", "local_only"); ok {
		t.Fatal("script leaked into the root")
	}
}

func TestBadTables(t *testing.T) {
	tests := []struct {
		name string
		key  string
		file string
		want string
	}{
		{"unknown type", "commands", "[x]\nopcode = 1\narguments = [\"widget\"]\n", "unknown type"},
		{"unknown domain", "variables", "[x]\nid = 1\ndomain = \"server\"\ntype = \"int\"\n", "unknown variable domain"},
		{"value mismatch", "constants", "[x]\ntype = \"int\"\nvalue = \"one\"\n", "does not fit"},
		{"int overflow", "constants", "[x]\ntype = \"int\"\nvalue = 5000000000\n", "out of int range"},
		{"unknown trigger", "scripts", "[x]\nid = 1\ntrigger = \"nope\"\n", "unknown trigger"},
		{"missing file", "variables", "", "failed to read"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := writeFile(t, dir, ManifestName, "[project]\nname = \"x\"\n[compiler]\n"+tt.key+" = \"table.toml\"\n")
			if tt.file != "" {
				writeFile(t, dir, "table.toml", tt.file)
			}
			m, _, err := LoadManifest(path)
			if err != nil {
				t.Fatal(err)
			}
			_, err = LoadEnvironment(m)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err = %v, want %q", err, tt.want)
			}
		})
	}
}

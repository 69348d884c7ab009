package project

import (
	"crypto/sha256"
	"embed"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/waleedyaseen/RuneScript-sub000/internal/codegen"
	"github.com/waleedyaseen/RuneScript-sub000/internal/symbols"
	"github.com/waleedyaseen/RuneScript-sub000/internal/types"
)

//go:embed defaults/*.toml
var defaults embed.FS

// Environment is the predefined world scripts compile against: the root
// symbol table plus the instruction map and per-trigger output extensions.
//
// Tables is not safe for concurrent mutation. Batch allocates a sub-table,
// so callers compiling in parallel must serialize Batch calls.
type Environment struct {
	Manifest     *Manifest
	Tables       *symbols.Tables
	Instructions InstructionMap
	Warnings     []Warning
	// Digest covers every table file that was read, for cache keys.
	Digest Digest

	extensions map[string]string
}

type loader struct {
	env  *Environment
	root symbols.TableID
	dir  string
	hash []byte
}

// LoadEnvironment reads every table the manifest names into a fresh root
// table. A nil manifest loads the embedded defaults.
func LoadEnvironment(m *Manifest) (*Environment, error) {
	if m == nil {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		m = DefaultManifest(wd)
	}
	env := &Environment{
		Manifest:   m,
		Tables:     symbols.NewTables(),
		extensions: make(map[string]string),
	}
	l := &loader{env: env, root: env.Tables.Root(), dir: m.Root}
	c := m.Config.Compiler

	if err := l.instructions(c.Instructions); err != nil {
		return nil, err
	}
	if err := l.triggers(c.Triggers); err != nil {
		return nil, err
	}
	if err := l.commands(c.Commands); err != nil {
		return nil, err
	}
	for _, name := range slices.Sorted(maps.Keys(c.Configs)) {
		kind, err := parseType(name)
		if err != nil {
			return nil, fmt.Errorf("[compiler.configs].%s: %w", name, err)
		}
		if err := l.configs(kind, c.Configs[name]); err != nil {
			return nil, err
		}
	}
	if err := l.variables(c.Variables); err != nil {
		return nil, err
	}
	if err := l.constants(c.Constants, false); err != nil {
		return nil, err
	}
	if err := l.constants(c.RuntimeConstants, true); err != nil {
		return nil, err
	}
	if err := l.scripts(c.Scripts); err != nil {
		return nil, err
	}
	env.Digest = sha256.Sum256(l.hash)
	return env, nil
}

// decode reads one table file into out. An empty path skips the table and
// DefaultTables reads the embedded copy of kind.
func (l *loader) decode(kind, path string, out any) error {
	if path == "" {
		return nil
	}
	data, name, err := l.read(kind, path)
	if err != nil {
		return err
	}
	meta, err := toml.Decode(string(data), out)
	if err != nil {
		return fmt.Errorf("%s: failed to parse TOML: %w", name, err)
	}
	l.env.Warnings = append(l.env.Warnings, undecoded(name, meta)...)
	l.hash = append(l.hash, kind...)
	l.hash = append(l.hash, data...)
	return nil
}

func (l *loader) read(kind, path string) ([]byte, string, error) {
	if strings.HasPrefix(path, "*") {
		if path != DefaultTables {
			return nil, path, fmt.Errorf("unknown table macro %q", path)
		}
		name := "defaults/" + kind + ".toml"
		data, err := defaults.ReadFile(name)
		if err != nil {
			return nil, name, fmt.Errorf("no embedded %s table: %w", kind, err)
		}
		return data, name, nil
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(l.dir, filepath.FromSlash(path))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("failed to read %s table: %w", kind, err)
	}
	return data, path, nil
}

func (l *loader) warn(file, key, msg string) {
	l.env.Warnings = append(l.env.Warnings, Warning{File: file, Key: key, Msg: msg})
}

// Root is the predefined table.
func (e *Environment) Root() symbols.TableID { return e.Tables.Root() }

// Extension returns the output extension configured for trigger, or
// codegen.DefaultExtension.
func (e *Environment) Extension(trigger string) string {
	if ext, ok := e.extensions[trigger]; ok {
		return ext
	}
	return codegen.DefaultExtension
}

// Batch allocates a sub-table of the root for one compilation batch.
func (e *Environment) Batch() *Batch {
	return &Batch{env: e, Table: e.Tables.Sub(e.Root())}
}

// Batch is the view of an environment one compilation sees: lookups start
// at its own sub-table, so scripts declared by the batch never reach the
// predefined root.
type Batch struct {
	env   *Environment
	Table symbols.TableID
}

func (b *Batch) Tables() *symbols.Tables { return b.env.Tables }

func (b *Batch) Environment() *Environment { return b.env }

func (b *Batch) IsTrigger(name string) bool {
	_, ok := b.env.Tables.LookupTrigger(b.Table, name)
	return ok
}

func (b *Batch) TriggerByOperator(op string) (string, bool) {
	tr, ok := b.env.Tables.LookupTriggerByOperator(b.Table, op)
	return tr.Name, ok
}

// IsHookArgument reports whether argument index of command takes a hook.
func (b *Batch) IsHookArgument(command string, index int) bool {
	cmd, ok := b.env.Tables.LookupCommand(b.Table, command)
	if !ok || !cmd.Hook {
		return false
	}
	args := types.FlattenAll(cmd.Args)
	return index >= 0 && index < len(args) && types.IsPrimitive(args[index], types.Hook)
}

func (b *Batch) HookTrigger() (string, bool) {
	tr, ok := b.env.Tables.HookTrigger(b.Table)
	return tr.Name, ok
}

func (b *Batch) Extension(trigger string) string { return b.env.Extension(trigger) }

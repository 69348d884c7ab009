package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/waleedyaseen/RuneScript-sub000/internal/source"
)

// ErrNoManifest is returned by Open when no rsc.toml exists up the tree.
var ErrNoManifest = errors.New("no " + ManifestName + " found")

// DefaultTables names the embedded table set in place of a file path.
const DefaultTables = "*default"

// Manifest is a decoded rsc.toml together with where it was found.
type Manifest struct {
	Path   string // пусто для встроенного манифеста
	Root   string
	Config Config
}

type Config struct {
	Project  ProjectSection  `toml:"project"`
	Compiler CompilerSection `toml:"compiler"`
}

type ProjectSection struct {
	Name     string `toml:"name"`
	Source   string `toml:"source"`
	Output   string `toml:"output"`
	Encoding string `toml:"encoding"`
}

type CompilerSection struct {
	Instructions     string            `toml:"instructions"`
	Triggers         string            `toml:"triggers"`
	Commands         string            `toml:"commands"`
	Scripts          string            `toml:"scripts"`
	Constants        string            `toml:"constants"`
	RuntimeConstants string            `toml:"runtime_constants"`
	Variables        string            `toml:"variables"`
	AllowOverride    bool              `toml:"allow_override"`
	Optimize         *bool             `toml:"optimize"`
	MaxErrors        uint              `toml:"max_errors"`
	Configs          map[string]string `toml:"configs"`
}

// OptimizeEnabled reports the optimize switch, on unless set to false.
func (c CompilerSection) OptimizeEnabled() bool {
	return c.Optimize == nil || *c.Optimize
}

// Warning is a non-fatal problem found while loading configuration.
type Warning struct {
	File string
	Key  string
	Msg  string
}

func (w Warning) String() string {
	if w.Key == "" {
		return w.File + ": " + w.Msg
	}
	return fmt.Sprintf("%s: %s: %s", w.File, w.Key, w.Msg)
}

// DefaultManifest describes a project rooted at dir that uses only the
// embedded tables.
func DefaultManifest(dir string) *Manifest {
	m := &Manifest{Root: dir}
	m.Config.Project.Name = filepath.Base(dir)
	m.Config.applyDefaults()
	return m
}

func (c *Config) applyDefaults() {
	if c.Project.Source == "" {
		c.Project.Source = "src"
	}
	if c.Project.Output == "" {
		c.Project.Output = "build"
	}
	if c.Project.Encoding == "" {
		c.Project.Encoding = source.EncodingUTF8.String()
	}
	if c.Compiler.Instructions == "" {
		c.Compiler.Instructions = DefaultTables
	}
	if c.Compiler.Triggers == "" {
		c.Compiler.Triggers = DefaultTables
	}
	if c.Compiler.Commands == "" {
		c.Compiler.Commands = DefaultTables
	}
	if c.Compiler.MaxErrors == 0 {
		c.Compiler.MaxErrors = 100
	}
}

// Open finds rsc.toml from startDir upwards and loads it.
func Open(startDir string) (*Manifest, []Warning, error) {
	path, ok, err := FindManifest(startDir)
	if err != nil {
		return nil, nil, err
	}
	if !ok {
		return nil, nil, ErrNoManifest
	}
	return LoadManifest(path)
}

// LoadManifest decodes and validates the manifest at path. Unknown keys are
// returned as warnings.
func LoadManifest(path string) (*Manifest, []Warning, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("project") {
		return nil, nil, fmt.Errorf("%s: missing [project]", path)
	}
	if !meta.IsDefined("project", "name") || strings.TrimSpace(cfg.Project.Name) == "" {
		return nil, nil, fmt.Errorf("%s: missing [project].name", path)
	}
	if _, err := source.ParseEncoding(cfg.Project.Encoding); err != nil {
		return nil, nil, fmt.Errorf("%s: [project].encoding: %w", path, err)
	}
	cfg.applyDefaults()
	return &Manifest{
		Path:   path,
		Root:   filepath.Dir(path),
		Config: cfg,
	}, undecoded(path, meta), nil
}

func undecoded(path string, meta toml.MetaData) []Warning {
	var out []Warning
	for _, key := range meta.Undecoded() {
		out = append(out, Warning{File: path, Key: key.String(), Msg: "unknown key"})
	}
	return out
}

// Encoding is the parsed [project].encoding.
func (m *Manifest) Encoding() source.Encoding {
	enc, _ := source.ParseEncoding(m.Config.Project.Encoding)
	return enc
}

// SourceDir is the absolute script directory.
func (m *Manifest) SourceDir() string { return m.resolve(m.Config.Project.Source) }

// OutputDir is the absolute object output directory.
func (m *Manifest) OutputDir() string { return m.resolve(m.Config.Project.Output) }

func (m *Manifest) resolve(p string) string {
	if p == "" || filepath.IsAbs(p) || strings.HasPrefix(p, "*") {
		return p
	}
	return filepath.Join(m.Root, filepath.FromSlash(p))
}

// WriteManifest creates dir/rsc.toml for a new project named name. An
// existing manifest is never overwritten.
func WriteManifest(dir, name string) (string, error) {
	path := filepath.Join(dir, ManifestName)
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("%s already exists", path)
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("failed to stat %q: %w", path, err)
	}
	cfg := DefaultManifest(dir).Config
	if name != "" {
		cfg.Project.Name = name
	}
	optimize := true
	cfg.Compiler.Optimize = &optimize
	cfg.Compiler.Configs = map[string]string{}
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

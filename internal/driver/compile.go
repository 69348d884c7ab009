package driver

import (
	"context"
	"errors"
	"fmt"

	"fortio.org/safecast"

	"github.com/waleedyaseen/RuneScript-sub000/internal/ast"
	"github.com/waleedyaseen/RuneScript-sub000/internal/codegen"
	"github.com/waleedyaseen/RuneScript-sub000/internal/diag"
	"github.com/waleedyaseen/RuneScript-sub000/internal/observ"
	"github.com/waleedyaseen/RuneScript-sub000/internal/optimize"
	"github.com/waleedyaseen/RuneScript-sub000/internal/parser"
	"github.com/waleedyaseen/RuneScript-sub000/internal/project"
	"github.com/waleedyaseen/RuneScript-sub000/internal/sema"
	"github.com/waleedyaseen/RuneScript-sub000/internal/source"
	"github.com/waleedyaseen/RuneScript-sub000/internal/trace"
)

// ErrNoEnvironment is returned by Compile when it is given no usable
// environment.
var ErrNoEnvironment = errors.New("driver: missing compiler environment")

// Input is one source file of a batch. Content holds the raw bytes as read
// from disk; decoding happens inside Compile.
type Input struct {
	Path    string
	Content []byte
}

// Options configures one Compile call.
type Options struct {
	Encoding      source.Encoding
	MaxErrors     int // лимит диагностик на файл, <= 0 без лимита
	AllowOverride bool
	Optimize      bool
	// Passes replaces optimize.Default() when Optimize is set.
	Passes   *optimize.Pipeline
	Observer PhaseObserver
}

// OptionsFor returns the options the manifest of env asks for.
func OptionsFor(env *project.Environment) Options {
	opts := Options{Encoding: source.EncodingUTF8, Optimize: true}
	if env == nil || env.Manifest == nil {
		return opts
	}
	cfg := env.Manifest.Config
	opts.Encoding = env.Manifest.Encoding()
	if n, err := safecast.Conv[int](cfg.Compiler.MaxErrors); err == nil {
		opts.MaxErrors = n
	}
	opts.AllowOverride = cfg.Compiler.AllowOverride
	opts.Optimize = cfg.Compiler.OptimizeEnabled()
	return opts
}

// FileResult is the outcome for one input. Scripts is empty when the file
// has errors.
type FileResult struct {
	Path        string
	FileID      source.FileID
	Loaded      bool
	Scripts     []*codegen.BinaryScript
	Diagnostics []diag.Diagnostic

	bag  *diag.Bag
	rep  diag.Reporter // общий для parse и sema, без повторов
	tree ast.FileID
}

// HasErrors reports whether any diagnostic of the file is an error.
func (f *FileResult) HasErrors() bool {
	for _, d := range f.Diagnostics {
		if d.Severity >= diag.SevError {
			return true
		}
	}
	return f.bag != nil && f.bag.HasErrors()
}

// Result is the outcome of a batch. Bag holds the diagnostics of every file,
// sorted.
type Result struct {
	Files   []FileResult
	FileSet *source.FileSet
	Bag     *diag.Bag
	Builder *ast.Builder
	Sema    *sema.Result
	Stats   []optimize.Stat
	Timings observ.Report
}

// HasErrors reports whether any file failed.
func (r *Result) HasErrors() bool {
	return r != nil && r.Bag != nil && r.Bag.HasErrors()
}

// Scripts lists every generated script in file order.
func (r *Result) Scripts() []*codegen.BinaryScript {
	var out []*codegen.BinaryScript
	for i := range r.Files {
		out = append(out, r.Files[i].Scripts...)
	}
	return out
}

// Compile runs the whole pipeline over one batch: decode, parse, declare,
// check, then codegen and optimization for each file without errors. All
// files share one sub-table of env, so scripts may call each other across
// files while the predefined root stays untouched.
//
// The returned error is only set for a cancelled context or a missing
// environment; everything else is reported as diagnostics.
func Compile(ctx context.Context, inputs []Input, env *project.Environment, opts Options) (*Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if env == nil || env.Tables == nil {
		return nil, ErrNoEnvironment
	}

	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeDriver, "compile", trace.CurrentSpan(ctx))
	timer := observ.NewTimer()
	res := &Result{
		Files:   make([]FileResult, len(inputs)),
		FileSet: source.NewFileSet(),
		Bag:     diag.NewBag(0),
		Builder: ast.NewBuilder(ast.Hints{}),
	}
	defer func() {
		res.Timings = timer.Report()
		span.End(fmt.Sprintf("%d files, %d errors", len(inputs), res.Bag.ErrorCount()))
	}()
	if len(inputs) == 0 {
		return res, nil
	}

	c := &compilation{
		res:    res,
		env:    env,
		batch:  env.Batch(),
		opts:   opts,
		tracer: tracer,
		parent: span.ID(),
		timer:  timer,
	}
	if opts.Optimize {
		c.passes = opts.Passes
		if c.passes == nil {
			def := optimize.Default()
			c.passes = &def
		}
	}

	c.load(inputs)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.parse()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.analyze()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.generate(ctx)

	for i := range res.Files {
		f := &res.Files[i]
		f.bag.Sort()
		f.Diagnostics = f.bag.Items()
		res.Bag.Merge(f.bag)
	}
	res.Bag.Sort()
	res.Stats = c.stats
	return res, nil
}

type compilation struct {
	res    *Result
	env    *project.Environment
	batch  *project.Batch
	opts   Options
	passes *optimize.Pipeline
	stats  []optimize.Stat
	tracer trace.Tracer
	parent uint64
	timer  *observ.Timer
}

func (c *compilation) phase(name string) (*trace.Span, func(note string)) {
	s := trace.Begin(c.tracer, trace.ScopePass, name, c.parent)
	idx := c.timer.Begin(name)
	return s, func(note string) {
		c.timer.End(idx, note)
		s.End(note)
	}
}

func (c *compilation) load(inputs []Input) {
	_, done := c.phase(PhaseLoad)
	failed := 0
	for i, in := range inputs {
		f := &c.res.Files[i]
		f.Path = in.Path
		f.bag = diag.NewBag(c.opts.MaxErrors)
		f.rep = diag.NewDedupReporter(diag.BagReporter{Bag: f.bag})
		began := c.opts.Observer.start(PhaseLoad, in.Path)
		id, err := c.res.FileSet.AddSource(in.Path, in.Content, c.opts.Encoding)
		if err != nil {
			// пустой файл-заглушка, чтобы у диагностики был путь
			failed++
			f.FileID = c.res.FileSet.Add(in.Path, nil, source.FileVirtual)
			f.bag.Add(diag.NewError(diag.IOReadFailed, source.Span{File: f.FileID}, err.Error()))
		} else {
			f.FileID = id
			f.Loaded = true
		}
		c.opts.Observer.end(PhaseLoad, in.Path, began, err != nil)
	}
	done(fmt.Sprintf("%d files, %d failed", len(inputs), failed))
}

func (c *compilation) parse() {
	pass, done := c.phase(PhaseParse)
	maxErrors, err := safecast.Conv[uint](max(c.opts.MaxErrors, 0))
	if err != nil {
		maxErrors = 0
	}
	for i := range c.res.Files {
		f := &c.res.Files[i]
		if !f.Loaded {
			continue
		}
		fspan := trace.Begin(c.tracer, trace.ScopeFile, "parse:"+f.Path, pass.ID())
		began := c.opts.Observer.start(PhaseParse, f.Path)
		pr := parser.ParseFile(c.res.FileSet, f.FileID, c.res.Builder, parser.Options{
			Env:       c.batch,
			Reporter:  f.rep,
			MaxErrors: maxErrors,
		})
		f.tree = pr.File
		c.opts.Observer.end(PhaseParse, f.Path, began, pr.Errors > 0)
		fspan.End(fmt.Sprintf("%d errors", pr.Errors))
	}
	done("")
}

func (c *compilation) analyze() {
	batch := &sema.Batch{
		Builder: c.res.Builder,
		Tables:  c.batch.Tables(),
		Table:   c.batch.Table,
		Env:     c.batch,
		Options: sema.Options{
			AllowOverride:   c.opts.AllowOverride,
			TriggersChecked: true,
		},
		Tracer: c.tracer,
	}
	for i := range c.res.Files {
		f := &c.res.Files[i]
		if !f.Loaded {
			continue
		}
		batch.Files = append(batch.Files, sema.FileInput{File: f.tree, Reporter: f.rep})
	}

	// спаны declare/check открывает сам sema
	idx := c.timer.Begin(PhaseDeclare)
	began := c.opts.Observer.start(PhaseDeclare, "")
	res := sema.Declare(batch)
	c.opts.Observer.end(PhaseDeclare, "", began, false)
	c.timer.End(idx, "")

	idx = c.timer.Begin(PhaseCheck)
	began = c.opts.Observer.start(PhaseCheck, "")
	sema.Check(batch, res)
	c.opts.Observer.end(PhaseCheck, "", began, false)
	c.timer.End(idx, "")

	c.res.Sema = res
}

func (c *compilation) generate(ctx context.Context) {
	pass, done := c.phase(PhaseCodegen)
	scripts := 0
	for i := range c.res.Files {
		if ctx.Err() != nil {
			break
		}
		f := &c.res.Files[i]
		if !f.Loaded || f.bag.HasErrors() {
			continue
		}
		file := c.res.Builder.Files.Get(f.tree)
		if file == nil {
			continue
		}
		fspan := trace.Begin(c.tracer, trace.ScopeFile, "codegen:"+f.Path, pass.ID())
		began := c.opts.Observer.start(PhaseCodegen, f.Path)
		var out []*codegen.BinaryScript
		for _, sid := range file.Scripts {
			if s := c.script(sid, f, fspan.ID()); s != nil {
				out = append(out, s)
			}
		}
		// один сбойный скрипт отменяет вывод всего файла
		failed := f.bag.HasErrors()
		if !failed {
			f.Scripts = out
			scripts += len(out)
		}
		c.opts.Observer.end(PhaseCodegen, f.Path, began, failed)
		fspan.End(fmt.Sprintf("%d scripts", len(out)))
	}
	done(fmt.Sprintf("%d scripts", scripts))
}

// script generates and optimizes one script. An invariant panic becomes a
// diagnostic on the script and nil is returned.
func (c *compilation) script(sid ast.ScriptID, f *FileResult, parent uint64) *codegen.BinaryScript {
	node := c.res.Builder.Scripts.Get(sid)
	s, err := generateScript(c.res.Builder, sid, c.res.Sema, c.batch)
	if err != nil {
		f.bag.Add(diag.NewError(diag.GenInternal, node.HeaderSpan, err.Error()))
		return nil
	}
	span := trace.Begin(c.tracer, trace.ScopeScript, "script:"+s.Name, parent)
	defer func() { span.End(fmt.Sprintf("%d instructions", s.Instructions())) }()
	if c.passes == nil {
		return s
	}

	idx := c.timer.Begin(PhaseOptimize)
	stats, err := optimizeScript(c.passes, s)
	c.timer.End(idx, "")
	if err != nil {
		f.bag.Add(diag.NewError(diag.GenDanglingLabel, node.HeaderSpan, err.Error()))
		return nil
	}
	for _, st := range stats {
		span.WithExtra(st.Pass, fmt.Sprint(st.Rewrites))
	}
	c.stats = mergeStats(c.stats, stats)
	return s
}

func generateScript(b *ast.Builder, sid ast.ScriptID, res *sema.Result, env codegen.Environment) (s *codegen.BinaryScript, err error) {
	defer codegen.Recover(&err)
	return codegen.Generate(b, sid, res, env), nil
}

func optimizeScript(p *optimize.Pipeline, s *codegen.BinaryScript) (stats []optimize.Stat, err error) {
	defer codegen.Recover(&err)
	return p.RunStats(s), nil
}

func mergeStats(total, run []optimize.Stat) []optimize.Stat {
	if total == nil {
		return append([]optimize.Stat(nil), run...)
	}
	for i, st := range run {
		if i < len(total) && total[i].Pass == st.Pass {
			total[i].Rewrites += st.Rewrites
		}
	}
	return total
}

package driver

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/waleedyaseen/RuneScript-sub000/internal/codegen"
	"github.com/waleedyaseen/RuneScript-sub000/internal/diag"
	"github.com/waleedyaseen/RuneScript-sub000/internal/optimize"
	"github.com/waleedyaseen/RuneScript-sub000/internal/trace"
)

func TestCompileEmpty(t *testing.T) {
	res, err := Compile(context.Background(), nil, defaultEnv(t), Options{})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if len(res.Files) != 0 || res.Bag.Len() != 0 {
		t.Fatalf("files=%d diagnostics=%d", len(res.Files), res.Bag.Len())
	}
}

func TestCompileErrors(t *testing.T) {
	if _, err := Compile(context.Background(), inputs("a.cs2", ""), nil, Options{}); !errors.Is(err, ErrNoEnvironment) {
		t.Fatalf("nil env: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Compile(ctx, inputs("a.cs2", ""), defaultEnv(t), Options{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("cancelled: %v", err)
	}
}

func TestCompileAcrossFiles(t *testing.T) {
	res := compileOK(t, defaultEnv(t), Options{}, inputs(
		"main.cs2", `[proc,main] ~greet("world");`,
		"greet.cs2", `[proc,greet](string $name) mes($name);`,
	))
	if len(res.Files) != 2 {
		t.Fatalf("files = %d", len(res.Files))
	}
	main := res.Files[0]
	if main.Path != "main.cs2" || len(main.Scripts) != 1 {
		t.Fatalf("main = %+v", main)
	}
	if got := countOp(main.Scripts[0], codegen.OpGosubWithParams); got != 1 {
		t.Fatalf("gosub count = %d", got)
	}
	if names := []string{res.Scripts()[0].Name, res.Scripts()[1].Name}; !slices.Equal(names, []string{"[proc,main]", "[proc,greet]"}) {
		t.Fatalf("scripts = %v", names)
	}
}

func TestCompileIsolatesFailingFile(t *testing.T) {
	res, err := Compile(context.Background(), inputs(
		"good.cs2", `[proc,good] mes("ok");`,
		"bad.cs2", `[proc,bad] mes(1);`,
	), defaultEnv(t), Options{})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	good, bad := res.Files[0], res.Files[1]
	if good.HasErrors() || len(good.Scripts) != 1 {
		t.Fatalf("good = %+v", good)
	}
	if !bad.HasErrors() || len(bad.Scripts) != 0 {
		t.Fatalf("bad = %+v", bad)
	}
	if !res.HasErrors() || res.Bag.Len() != len(bad.Diagnostics) {
		t.Fatalf("batch bag has %d items, bad file %d", res.Bag.Len(), len(bad.Diagnostics))
	}
}

func TestCompileDuplicateScript(t *testing.T) {
	res, err := Compile(context.Background(), inputs(
		"a.cs2", `[proc,dup] mes("a");`,
		"b.cs2", `[proc,dup] mes("b");`,
	), defaultEnv(t), Options{})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if len(res.Files[0].Scripts) != 1 || res.Files[0].HasErrors() {
		t.Fatalf("first declaration must win: %+v", res.Files[0])
	}
	if got := codes(res.Files[1].Diagnostics); !slices.Equal(got, []diag.Code{diag.SemaScriptAlreadyDefined}) {
		t.Fatalf("second file codes = %v", got)
	}
}

func TestCompileKeepsRootClean(t *testing.T) {
	env := defaultEnv(t)
	src := inputs("a.cs2", `[proc,once] mes("a");`)
	compileOK(t, env, Options{}, src)
	compileOK(t, env, Options{}, src)
	if _, ok := env.Tables.LookupScript(env.Root(), "proc", "once"); ok {
		t.Fatal("batch script leaked into the predefined table")
	}
}

func TestCompileOptimize(t *testing.T) {
	env := defaultEnv(t)
	src := inputs("t.cs2", `[proc,t] if (1 = 2) mes("x");`)

	plain := compileOK(t, env, Options{}, src).Scripts()[0]
	if countOp(plain, codegen.OpCommand) != 1 {
		t.Fatalf("unoptimized body lost:\n%s", listing(t, plain))
	}

	res := compileOK(t, env, Options{Optimize: true}, src)
	opt := res.Scripts()[0]
	if countOp(opt, codegen.OpCommand) != 0 || opt.Instructions() >= plain.Instructions() {
		t.Fatalf("optimized:\n%s", listing(t, opt))
	}
	var names []string
	total := 0
	for _, st := range res.Stats {
		names = append(names, st.Pass)
		total += st.Rewrites
	}
	if !slices.Equal(names, optimize.Default().Names()) || total == 0 {
		t.Fatalf("stats = %+v", res.Stats)
	}

	// явный конвейер заменяет стандартный
	only := optimize.Pipeline{Passes: []optimize.Pass{optimize.ConstantFolding{}}}
	res = compileOK(t, env, Options{Optimize: true, Passes: &only}, src)
	if len(res.Stats) != 1 || res.Stats[0].Pass != only.Names()[0] {
		t.Fatalf("custom stats = %+v", res.Stats)
	}
}

func TestCompileObserver(t *testing.T) {
	var events []PhaseEvent
	opts := Options{Observer: func(ev PhaseEvent) { events = append(events, ev) }}
	compileOK(t, defaultEnv(t), opts, inputs(
		"a.cs2", `[proc,a] mes("a");`,
		"b.cs2", `[proc,b] mes("b");`,
	))

	count := func(name, file string, status PhaseStatus) int {
		n := 0
		for _, ev := range events {
			if ev.Name == name && ev.File == file && ev.Status == status {
				n++
			}
		}
		return n
	}
	for _, file := range []string{"a.cs2", "b.cs2"} {
		for _, phase := range []string{PhaseLoad, PhaseParse, PhaseCodegen} {
			if count(phase, file, PhaseStart) != 1 || count(phase, file, PhaseEnd) != 1 {
				t.Errorf("%s %s: events missing", phase, file)
			}
		}
	}
	if count(PhaseDeclare, "", PhaseEnd) != 1 || count(PhaseCheck, "", PhaseEnd) != 1 {
		t.Fatalf("batch phases missing: %+v", events)
	}
	if events[0].Name != PhaseLoad || events[len(events)-1].Name != PhaseCodegen {
		t.Fatalf("order: first %s, last %s", events[0].Name, events[len(events)-1].Name)
	}
}

func TestCompileTrace(t *testing.T) {
	ring := trace.NewRingTracer(256, trace.LevelDebug)
	ctx := trace.WithTracer(context.Background(), ring)
	res, err := Compile(ctx, inputs("t.cs2", `[proc,t] mes("x");`), defaultEnv(t), Options{Optimize: true})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if len(res.Timings.Phases) == 0 {
		t.Fatal("no timings recorded")
	}
	if _, ok := res.Timings.Phase(PhaseOptimize); !ok {
		t.Fatal("optimize phase not timed")
	}

	seen := make(map[string]bool)
	for _, ev := range ring.Snapshot() {
		if ev.Kind == trace.KindSpanEnd {
			seen[ev.Name] = true
		}
	}
	for _, name := range []string{"compile", PhaseLoad, PhaseParse, "declare", "check", PhaseCodegen, "script:[proc,t]"} {
		if !seen[name] {
			t.Errorf("span %q not traced", name)
		}
	}
}

func TestOptionsFor(t *testing.T) {
	env := defaultEnv(t)
	opts := OptionsFor(env)
	if !opts.Optimize || opts.MaxErrors != 100 || opts.AllowOverride {
		t.Fatalf("opts = %+v", opts)
	}
	if got := OptionsFor(nil); !got.Optimize {
		t.Fatalf("nil env opts = %+v", got)
	}
}

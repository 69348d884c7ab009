package sema

import (
	"testing"

	"github.com/waleedyaseen/RuneScript-sub000/internal/ast"
	"github.com/waleedyaseen/RuneScript-sub000/internal/diag"
	"github.com/waleedyaseen/RuneScript-sub000/internal/parser"
	"github.com/waleedyaseen/RuneScript-sub000/internal/source"
	"github.com/waleedyaseen/RuneScript-sub000/internal/symbols"
	"github.com/waleedyaseen/RuneScript-sub000/internal/testkit"
)

type analyzed struct {
	fs     *source.FileSet
	b      *ast.Builder
	tables *symbols.Tables
	table  symbols.TableID
	bag    *diag.Bag
	res    *Result
	files  []ast.FileID
}

func analyze(t *testing.T, srcs ...string) *analyzed {
	t.Helper()
	return analyzeWith(t, Options{TriggersChecked: true}, srcs...)
}

// analyzeWith parses every source into one batch over a sub-table of the
// fixture root, then runs both passes.
func analyzeWith(t *testing.T, opts Options, srcs ...string) *analyzed {
	t.Helper()
	return build(t, opts, true, srcs)
}

// analyzeLoose keeps going after parse errors; they land in the same bag.
func analyzeLoose(t *testing.T, opts Options, srcs ...string) *analyzed {
	t.Helper()
	return build(t, opts, false, srcs)
}

func build(t *testing.T, opts Options, strict bool, srcs []string) *analyzed {
	t.Helper()
	tables := testkit.StandardTables()
	table := tables.Sub(tables.Root())
	env := testkit.Env{Tables: tables, Table: table}
	fs := source.NewFileSet()
	b := ast.NewBuilder(ast.Hints{})
	bag := diag.NewBag(100)
	rep := diag.BagReporter{Bag: bag}

	a := &analyzed{fs: fs, b: b, tables: tables, table: table, bag: bag}
	batch := &Batch{Builder: b, Tables: tables, Table: table, Env: env, Options: opts}
	for i, src := range srcs {
		id := fs.AddVirtual("test"+string(rune('a'+i))+".cs2", []byte(src))
		res := parser.ParseFile(fs, id, b, parser.Options{Env: env, Reporter: rep})
		if strict && res.Errors > 0 {
			t.Fatalf("parse errors:\n%s", diag.FormatShort(bag.Items(), fs))
		}
		a.files = append(a.files, res.File)
		batch.Files = append(batch.Files, FileInput{File: res.File, Reporter: rep})
	}
	a.res = Analyze(batch)
	return a
}

func (a *analyzed) count(code diag.Code) int {
	n := 0
	for _, d := range a.bag.Items() {
		if d.Code == code {
			n++
		}
	}
	return n
}

func (a *analyzed) dump() string {
	return diag.FormatShort(a.bag.Items(), a.fs)
}

func (a *analyzed) noErrors(t *testing.T) {
	t.Helper()
	if a.bag.HasErrors() {
		t.Fatalf("unexpected diagnostics:\n%s", a.dump())
	}
}

// expectOnly fails unless the batch produced exactly n diagnostics, all with
// code.
func (a *analyzed) expectOnly(t *testing.T, code diag.Code, n int) {
	t.Helper()
	if a.bag.Len() != n || a.count(code) != n {
		t.Fatalf("want %d x %d, got:\n%s", n, code, a.dump())
	}
}

func (a *analyzed) script(t *testing.T, file, i int) (ast.ScriptID, *ScriptInfo) {
	t.Helper()
	f := a.b.Files.Get(a.files[file])
	if i >= len(f.Scripts) {
		t.Fatalf("file %d has %d scripts", file, len(f.Scripts))
	}
	sid := f.Scripts[i]
	return sid, a.res.Scripts[sid]
}

// stmtExpr returns the expression of the n-th top-level statement.
func (a *analyzed) stmtExpr(t *testing.T, sid ast.ScriptID, n int) ast.ExprID {
	t.Helper()
	body := a.b.Scripts.Get(sid).Body
	st, ok := a.b.Stmts.Expr(body[n])
	if !ok {
		t.Fatalf("statement %d is %v", n, a.b.Stmts.Get(body[n]).Kind)
	}
	return st.Expr
}

package parser

import (
	"strconv"
	"strings"
	"testing"

	"github.com/waleedyaseen/RuneScript-sub000/internal/ast"
	"github.com/waleedyaseen/RuneScript-sub000/internal/diag"
	"github.com/waleedyaseen/RuneScript-sub000/internal/source"
)

type testEnv struct{}

func (testEnv) IsTrigger(name string) bool {
	switch name {
	case "proc", "label", "clientscript", "opnpc1":
		return true
	}
	return false
}

func (testEnv) TriggerByOperator(op string) (string, bool) {
	switch op {
	case "~":
		return "proc", true
	case "@":
		return "label", true
	}
	return "", false
}

func (testEnv) IsHookArgument(command string, index int) bool {
	return command == "cc_setonclick" && index == 0
}

// testReporter собирает все диагностики парсера
type testReporter struct {
	diags []diag.Diagnostic
}

func (r *testReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note) {
	r.diags = append(r.diags, diag.Diagnostic{Severity: sev, Code: code, Message: msg, Primary: primary, Notes: notes})
}

func (r *testReporter) count(code diag.Code) int {
	n := 0
	for _, d := range r.diags {
		if d.Code == code {
			n++
		}
	}
	return n
}

type parsed struct {
	fs     *source.FileSet
	file   *source.File
	b      *ast.Builder
	res    Result
	rep    *testReporter
	fileID ast.FileID
}

func parseSource(t *testing.T, src string) *parsed {
	t.Helper()
	return parseWith(t, src, 0)
}

func parseWith(t *testing.T, src string, maxErrors uint) *parsed {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.cs2", []byte(src))
	b := ast.NewBuilder(ast.Hints{})
	rep := &testReporter{}
	res := ParseFile(fs, id, b, Options{Env: testEnv{}, Reporter: rep, MaxErrors: maxErrors})
	return &parsed{fs: fs, file: fs.Get(id), b: b, res: res, rep: rep, fileID: res.File}
}

func (p *parsed) noErrors(t *testing.T) {
	t.Helper()
	if len(p.rep.diags) != 0 {
		t.Fatalf("unexpected diagnostics: %s", diag.FormatShort(p.rep.diags, p.fs))
	}
}

func (p *parsed) script(t *testing.T, i int) *ast.Script {
	t.Helper()
	f := p.b.Files.Get(p.fileID)
	if i >= len(f.Scripts) {
		t.Fatalf("script %d missing, have %d", i, len(f.Scripts))
	}
	return p.b.Scripts.Get(f.Scripts[i])
}

// firstExpr returns the expression of the first expression statement.
func (p *parsed) firstExpr(t *testing.T) ast.ExprID {
	t.Helper()
	s := p.script(t, 0)
	if len(s.Body) == 0 {
		t.Fatal("empty body")
	}
	if st, ok := p.b.Stmts.If(s.Body[0]); ok {
		return st.Cond
	}
	st, ok := p.b.Stmts.Expr(s.Body[0])
	if !ok {
		t.Fatalf("first statement is %v", p.b.Stmts.Get(s.Body[0]).Kind)
	}
	return st.Expr
}

// render prints an expression as an s-expression; bitwise ops print as band/bor.
func render(b *ast.Builder, id ast.ExprID) string {
	e := b.Exprs.Get(id)
	switch e.Kind {
	case ast.ExprInt:
		lit, _ := b.Exprs.Literal(id)
		return strconv.Itoa(int(lit.Int))
	case ast.ExprBool:
		lit, _ := b.Exprs.Literal(id)
		return strconv.FormatBool(lit.Bool)
	case ast.ExprLocalVar:
		n, _ := b.Exprs.Name(id)
		return "$" + n.Name.Text
	case ast.ExprIdent, ast.ExprDynamic:
		n, _ := b.Exprs.Name(id)
		return n.Name.Text
	case ast.ExprParen:
		in, _ := b.Exprs.Inner(id)
		return render(b, in.Inner)
	case ast.ExprCalc:
		in, _ := b.Exprs.Inner(id)
		return "calc" + render(b, in.Inner)
	case ast.ExprBinary:
		d, _ := b.Exprs.Binary(id)
		op := d.Op.String()
		switch d.Op {
		case ast.OpBitAnd:
			op = "band"
		case ast.OpBitOr:
			op = "bor"
		}
		return "(" + op + " " + render(b, d.Left) + " " + render(b, d.Right) + ")"
	case ast.ExprCommand:
		d, _ := b.Exprs.Command(id)
		parts := make([]string, len(d.Args))
		for i, a := range d.Args {
			parts[i] = render(b, a)
		}
		return d.Name.Text + "(" + strings.Join(parts, ",") + ")"
	}
	return e.Kind.String()
}

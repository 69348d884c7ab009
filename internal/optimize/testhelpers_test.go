package optimize

import (
	"fmt"
	"strings"
	"testing"

	"github.com/waleedyaseen/RuneScript-sub000/internal/ast"
	"github.com/waleedyaseen/RuneScript-sub000/internal/codegen"
	"github.com/waleedyaseen/RuneScript-sub000/internal/diag"
	"github.com/waleedyaseen/RuneScript-sub000/internal/parser"
	"github.com/waleedyaseen/RuneScript-sub000/internal/sema"
	"github.com/waleedyaseen/RuneScript-sub000/internal/source"
	"github.com/waleedyaseen/RuneScript-sub000/internal/testkit"
)

// generate compiles a single-script source and returns its unoptimized form.
func generate(t *testing.T, src string) *codegen.BinaryScript {
	t.Helper()
	tables := testkit.StandardTables()
	table := tables.Sub(tables.Root())
	env := testkit.Env{Tables: tables, Table: table}
	fs := source.NewFileSet()
	b := ast.NewBuilder(ast.Hints{})
	bag := diag.NewBag(100)
	rep := diag.BagReporter{Bag: bag}

	id := fs.AddVirtual("test.cs2", []byte(src))
	res := parser.ParseFile(fs, id, b, parser.Options{Env: env, Reporter: rep})
	batch := &sema.Batch{
		Builder: b,
		Files:   []sema.FileInput{{File: res.File, Reporter: rep}},
		Tables:  tables,
		Table:   table,
		Env:     env,
		Options: sema.Options{TriggersChecked: true},
	}
	checked := sema.Analyze(batch)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics:\n%s", diag.FormatShort(bag.Items(), fs))
	}
	scripts := b.Files.Get(res.File).Scripts
	if len(scripts) != 1 {
		t.Fatalf("want one script, got %d", len(scripts))
	}
	return codegen.Generate(b, scripts[0], checked, nil)
}

func label(i int) codegen.Label {
	return codegen.Label{ID: i, Name: fmt.Sprintf("b%d", i)}
}

func ins(op codegen.Opcode, operand codegen.Operand) *codegen.Instruction {
	return &codegen.Instruction{Op: op, Operand: operand}
}

func push(v int32) *codegen.Instruction {
	return ins(codegen.OpPushIntConstant, codegen.IntOperand(v))
}

func pushLong(v int64) *codegen.Instruction {
	return ins(codegen.OpPushLongConstant, codegen.LongOperand(v))
}

func branch(op codegen.Opcode, to int) *codegen.Instruction {
	return ins(op, label(to))
}

func ret() *codegen.Instruction { return ins(codegen.OpReturn, nil) }

// handmade builds a script whose i-th block is labelled b<i>.
func handmade(blocks ...[]*codegen.Instruction) *codegen.BinaryScript {
	list := codegen.NewBlockList()
	for i, body := range blocks {
		b := list.Generate(label(i))
		for _, in := range body {
			b.Add(in)
		}
	}
	return &codegen.BinaryScript{Extension: "cs2", Name: "[proc,test]", Blocks: list}
}

func blockNames(s *codegen.BinaryScript) []string {
	var names []string
	for _, b := range s.Blocks.Blocks() {
		names = append(names, b.Label.Name)
	}
	return names
}

func lines(b *codegen.Block) []string {
	out := make([]string, len(b.Instructions))
	for i, in := range b.Instructions {
		out[i] = in.String()
	}
	return out
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

func listing(s *codegen.BinaryScript) string {
	var sb strings.Builder
	_ = codegen.Dump(&sb, s)
	return sb.String()
}

package codegen

import (
	"strings"
	"testing"

	"github.com/waleedyaseen/RuneScript-sub000/internal/ast"
	"github.com/waleedyaseen/RuneScript-sub000/internal/diag"
	"github.com/waleedyaseen/RuneScript-sub000/internal/parser"
	"github.com/waleedyaseen/RuneScript-sub000/internal/sema"
	"github.com/waleedyaseen/RuneScript-sub000/internal/source"
	"github.com/waleedyaseen/RuneScript-sub000/internal/testkit"
)

type compiled struct {
	fs      *source.FileSet
	b       *ast.Builder
	res     *sema.Result
	bag     *diag.Bag
	file    ast.FileID
	scripts []*BinaryScript
}

// compile runs the front end over src and generates every script. Any
// diagnostic fails the test.
func compile(t *testing.T, src string) *compiled {
	t.Helper()
	c := analyzeOnly(t, src)
	if c.bag.HasErrors() {
		t.Fatalf("unexpected diagnostics:\n%s", diag.FormatShort(c.bag.Items(), c.fs))
	}
	for _, f := range c.b.Files.Get(c.file).Scripts {
		c.scripts = append(c.scripts, Generate(c.b, f, c.res, nil))
	}
	return c
}

func analyzeOnly(t *testing.T, src string) *compiled {
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
	if res.Errors > 0 {
		t.Fatalf("parse errors:\n%s", diag.FormatShort(bag.Items(), fs))
	}
	batch := &sema.Batch{
		Builder: b,
		Files:   []sema.FileInput{{File: res.File, Reporter: rep}},
		Tables:  tables,
		Table:   table,
		Env:     env,
		Options: sema.Options{TriggersChecked: true},
	}
	return &compiled{fs: fs, b: b, res: sema.Analyze(batch), bag: bag, file: res.File}
}

func (c *compiled) script(t *testing.T, i int) *BinaryScript {
	t.Helper()
	if i >= len(c.scripts) {
		t.Fatalf("only %d scripts generated", len(c.scripts))
	}
	return c.scripts[i]
}

func countOp(s *BinaryScript, op Opcode) int {
	n := 0
	s.Each(func(_ *Block, in *Instruction) {
		if in.Op == op {
			n++
		}
	})
	return n
}

func countConditional(s *BinaryScript) int {
	n := 0
	s.Each(func(_ *Block, in *Instruction) {
		if in.Op.IsConditionalBranch() {
			n++
		}
	})
	return n
}

func blockNames(s *BinaryScript) []string {
	var names []string
	for _, b := range s.Blocks.Blocks() {
		names = append(names, b.Label.Name)
	}
	return names
}

// lines renders each instruction of block as "op operand".
func lines(b *Block) []string {
	out := make([]string, len(b.Instructions))
	for i, in := range b.Instructions {
		out[i] = in.String()
	}
	return out
}

func listing(s *BinaryScript) string {
	var sb strings.Builder
	_ = Dump(&sb, s)
	return sb.String()
}

func lastBlock(s *BinaryScript) *Block {
	blocks := s.Blocks.Blocks()
	return blocks[len(blocks)-1]
}

func expectPanic(t *testing.T, fn func()) *InvariantError {
	t.Helper()
	var err error
	func() {
		defer Recover(&err)
		fn()
	}()
	ie, ok := err.(*InvariantError)
	if !ok {
		t.Fatalf("expected an invariant panic, got %v", err)
	}
	return ie
}

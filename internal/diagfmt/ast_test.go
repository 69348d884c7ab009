package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/waleedyaseen/RuneScript-sub000/internal/ast"
	"github.com/waleedyaseen/RuneScript-sub000/internal/diag"
	"github.com/waleedyaseen/RuneScript-sub000/internal/parser"
	"github.com/waleedyaseen/RuneScript-sub000/internal/project"
	"github.com/waleedyaseen/RuneScript-sub000/internal/source"
)

func parseSource(t *testing.T, src string) (*ast.Builder, ast.FileID, *source.FileSet) {
	t.Helper()
	env, err := project.LoadEnvironment(project.DefaultManifest(t.TempDir()))
	if err != nil {
		t.Fatalf("LoadEnvironment: %v", err)
	}
	fs := source.NewFileSet()
	id := fs.AddVirtual("tree.cs2", []byte(src))
	bag := diag.NewBag(0)
	b := ast.NewBuilder(ast.Hints{})
	res := parser.ParseFile(fs, id, b, parser.Options{Env: env.Batch(), Reporter: diag.BagReporter{Bag: bag}})
	if bag.HasErrors() {
		t.Fatalf("parse errors: %+v", bag.Items())
	}
	return b, res.File, fs
}

const treeSource = `[proc,max](int $a, int $b)(int)
if ($a > $b) {
	return($a);
}
return($b);
`

func TestFormatASTPretty(t *testing.T) {
	b, fileID, fs := parseSource(t, treeSource)

	var buf bytes.Buffer
	if err := FormatASTPretty(&buf, b, fileID, fs); err != nil {
		t.Fatalf("FormatASTPretty: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"tree.cs2 (span: ",
		"└─ Script [proc,max] (span: 1:1-",
		"├─ Param:int a",
		"├─ Returns int",
		"Stmt:If",
		"Expr:Binary >",
		"Expr:LocalVar a",
		"└─ Stmt:Return",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestFormatASTJSON(t *testing.T) {
	b, fileID, _ := parseSource(t, `[proc,x] mes("hi");`+"\n"+`[label,y] ~x;`)

	var buf bytes.Buffer
	if err := FormatASTJSON(&buf, b, fileID); err != nil {
		t.Fatalf("FormatASTJSON: %v", err)
	}
	var root ASTNodeOutput
	if err := json.Unmarshal(buf.Bytes(), &root); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if root.Type != "File" || len(root.Children) != 2 {
		t.Fatalf("root = %+v", root)
	}
	if root.Children[0].Text != "[proc,x]" || root.Children[1].Text != "[label,y]" {
		t.Fatalf("scripts = %q, %q", root.Children[0].Text, root.Children[1].Text)
	}
}

func TestBuildASTMissingFile(t *testing.T) {
	if _, err := BuildAST(ast.NewBuilder(ast.Hints{}), ast.FileID(42)); err == nil {
		t.Fatal("missing file accepted")
	}
}

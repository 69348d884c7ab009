package driver

import (
	"fortio.org/safecast"

	"github.com/waleedyaseen/RuneScript-sub000/internal/ast"
	"github.com/waleedyaseen/RuneScript-sub000/internal/diag"
	"github.com/waleedyaseen/RuneScript-sub000/internal/parser"
	"github.com/waleedyaseen/RuneScript-sub000/internal/project"
	"github.com/waleedyaseen/RuneScript-sub000/internal/source"
)

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Builder *ast.Builder
	FileID  ast.FileID
	Bag     *diag.Bag
}

// Parse parses one file from disk against the triggers and commands of env.
// Nothing is declared: the result is only the syntax tree.
func Parse(filePath string, env *project.Environment, enc source.Encoding, maxDiagnostics int) (*ParseResult, error) {
	if env == nil {
		return nil, ErrNoEnvironment
	}
	fs := source.NewFileSet()
	fileID, err := fs.LoadWith(filePath, enc)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	bag := diag.NewBag(maxDiagnostics)
	builder := ast.NewBuilder(ast.Hints{})

	var maxErrors uint
	maxErrors, err = safecast.Conv[uint](max(maxDiagnostics, 0))
	if err != nil {
		return nil, err
	}

	opts := parser.Options{
		Env:       env.Batch(),
		Reporter:  diag.BagReporter{Bag: bag},
		MaxErrors: maxErrors,
	}
	result := parser.ParseFile(fs, fileID, builder, opts)

	return &ParseResult{
		FileSet: fs,
		File:    file,
		Builder: builder,
		FileID:  result.File,
		Bag:     bag,
	}, nil
}

package parser

import (
	"fmt"
	"slices"

	"fortio.org/safecast"

	"github.com/waleedyaseen/RuneScript-sub000/internal/ast"
	"github.com/waleedyaseen/RuneScript-sub000/internal/diag"
	"github.com/waleedyaseen/RuneScript-sub000/internal/lexer"
	"github.com/waleedyaseen/RuneScript-sub000/internal/source"
	"github.com/waleedyaseen/RuneScript-sub000/internal/token"
)

// Environment is the little semantic knowledge the parser needs: which
// trigger names exist, which call operators map to which trigger, and
// which command arguments are hooks.
type Environment interface {
	IsTrigger(name string) bool
	TriggerByOperator(op string) (trigger string, ok bool)
	IsHookArgument(command string, index int) bool
}

type Options struct {
	Env           Environment
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	File   ast.FileID
	Errors uint
}

// Parser: состояние парсера на один файл (или на одну строку хука)
type Parser struct {
	ts        *lexer.Stream
	arenas    *ast.Builder
	src       *source.File
	opts      *Options
	lastSpan  source.Span
	calcDepth int
	caseKeys  int // >0 пока разбираем ключи case: `a:b` там не ссылка на компонент
}

// New creates a parser over the whole of file.
func New(file *source.File, arenas *ast.Builder, opts *Options) *Parser {
	lx := lexer.New(file, lexer.Options{Reporter: opts.Reporter})
	return newParser(lx, file, arenas, opts)
}

func newParser(lx *lexer.Lexer, file *source.File, arenas *ast.Builder, opts *Options) *Parser {
	return &Parser{
		ts:       lexer.NewStream(lx),
		arenas:   arenas,
		src:      file,
		opts:     opts,
		lastSpan: source.Span{File: file.ID},
	}
}

// ParseFile: входная точка для разбора одного файла.
func ParseFile(fs *source.FileSet, fileID source.FileID, arenas *ast.Builder, opts Options) Result {
	file := fs.Get(fileID)
	p := New(file, arenas, &opts)
	start := p.peek().Span
	id := arenas.NewFile(start)
	for !p.at(token.EOF) {
		before := p.peek().Span
		if script, ok := p.ParseScript(); ok {
			arenas.PushScript(id, script)
		}
		if p.peek().Span == before && !p.at(token.EOF) {
			p.advance()
		}
	}
	end, err := safecast.Conv[uint32](len(file.Content))
	if err != nil {
		panic(fmt.Errorf("file length overflow: %w", err))
	}
	arenas.Files.Get(id).Span = source.Span{File: file.ID, Start: 0, End: end}
	return Result{File: id, Errors: opts.CurrentErrors}
}

func (p *Parser) peek() token.Token { return p.ts.Peek(0) }

func (p *Parser) at(k token.Kind) bool {
	return p.ts.Kind(0) == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.ts.Kind(0))
}

// atBoundary reports whether the next token starts a new script or ends input.
func (p *Parser) atBoundary() bool {
	return p.atOr(token.LBracket, token.Hash, token.EOF)
}
